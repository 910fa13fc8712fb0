package render

type Blend int

const (
	// BlendAlpha is src-alpha, one-minus-src-alpha.
	BlendAlpha Blend = iota
	// BlendAdditive is src-alpha, one.
	BlendAdditive
)

// Program is a linked shader program owned by a Device.
type Program interface {
	Name() string
}

// PointPass draws Count point sprites. Positions is interleaved xy and
// may alias simulation storage: devices must consume it before returning.
type PointPass struct {
	Program    Program
	Positions  []float32
	Speeds     []float32
	Count      int
	Resolution [2]float32
	Blend      Blend
}

// QuadInstance is one instanced unit quad in content pixels.
type QuadInstance struct {
	X, Y, W, H float32
	Variant    int32
}

type QuadUniforms struct {
	Resolution [2]float32
	// Scroll is subtracted from instance Y in the vertex stage.
	Scroll float32
	Phase  float32
}

type QuadPass struct {
	Program   Program
	Instances []QuadInstance
	Uniforms  QuadUniforms
}

// Device is one drawing surface. Draw calls are recorded during a frame
// and presented by Flush, which the host calls once per frame.
type Device interface {
	// Resize sets the backing store in device pixels.
	Resize(w, h int)
	Backing() (w, h int)
	Program(name, vertex, fragment string) (Program, error)
	Clear()
	DrawPoints(PointPass)
	DrawQuads(QuadPass)
	Flush() error
}

// BackingSize is the device pixel size of a viewport at a pixel ratio.
func BackingSize(vw, vh, dpr float64) (int, int) {
	if dpr <= 0 {
		dpr = 1
	}
	return int(vw*dpr + 0.5), int(vh*dpr + 0.5)
}
