package render

import "fmt"

type recordedProgram string

func (p recordedProgram) Name() string { return string(p) }

// Recorder is a Device that keeps copies of every pass. Frame N's passes
// are grouped by Flush.
type Recorder struct {
	W, H int

	Programs []string
	Points   []PointPass
	Quads    []QuadPass
	Clears   int
	Flushes  int
	// Calls logs Clear, DrawPoints and DrawQuads in submission order.
	Calls []string

	// FailProgram makes Program fail for that name.
	FailProgram string
	FailErr     error
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Resize(w, h int) { r.W, r.H = w, h }

func (r *Recorder) Backing() (int, int) { return r.W, r.H }

func (r *Recorder) Program(name, vertex, fragment string) (Program, error) {
	if name == r.FailProgram {
		err := r.FailErr
		if err == nil {
			err = ErrShaderCompile
		}
		return nil, &ShaderError{Program: name, Stage: "vertex", Log: "recorder: forced failure", Wrapped: err}
	}
	if vertex == "" || fragment == "" {
		return nil, &ShaderError{Program: name, Log: "empty source", Wrapped: ErrShaderCompile}
	}
	r.Programs = append(r.Programs, name)
	return recordedProgram(name), nil
}

func (r *Recorder) Clear() {
	r.Clears++
	r.Calls = append(r.Calls, "clear")
}

func (r *Recorder) DrawPoints(p PointPass) {
	p.Positions = append([]float32(nil), p.Positions...)
	p.Speeds = append([]float32(nil), p.Speeds...)
	r.Points = append(r.Points, p)
	r.Calls = append(r.Calls, "points")
}

func (r *Recorder) DrawQuads(p QuadPass) {
	p.Instances = append([]QuadInstance(nil), p.Instances...)
	r.Quads = append(r.Quads, p)
	r.Calls = append(r.Calls, "quads")
}

func (r *Recorder) Flush() error {
	r.Flushes++
	return nil
}

// Draws is the total number of recorded passes.
func (r *Recorder) Draws() int { return len(r.Points) + len(r.Quads) }

func (r *Recorder) String() string {
	return fmt.Sprintf("recorder %dx%d: %d point passes, %d quad passes", r.W, r.H, len(r.Points), len(r.Quads))
}
