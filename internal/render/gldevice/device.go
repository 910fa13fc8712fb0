package gldevice

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/san-kum/scrollfield/internal/render"
)

var unitQuad = []float32{
	0, 0, 1, 0, 0, 1,
	0, 1, 1, 0, 1, 1,
}

const instanceStride = int32(unsafe.Sizeof(render.QuadInstance{}))

type program struct {
	name     string
	id       uint32
	uniforms map[string]int32
}

func (p *program) Name() string { return p.name }

func (p *program) uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// Device draws into the framebuffer of the current GL context. Vertex data
// is uploaded when a pass is submitted; the draw calls run on Flush so the
// host can interleave its own drawing between layers.
type Device struct {
	w, h int

	pointVAO, posVBO, speedVBO  uint32
	quadVAO, cornerVBO, instVBO uint32

	pending []func()
}

// New loads GL entry points and allocates vertex state. A GL context must
// be current on the calling thread.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gldevice: init opengl: %w", err)
	}
	d := &Device{}

	gl.GenVertexArrays(1, &d.pointVAO)
	gl.BindVertexArray(d.pointVAO)
	gl.GenBuffers(1, &d.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.posVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 0, 0)
	gl.GenBuffers(1, &d.speedVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.speedVBO)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 1, gl.FLOAT, false, 0, 0)

	gl.GenVertexArrays(1, &d.quadVAO)
	gl.BindVertexArray(d.quadVAO)
	gl.GenBuffers(1, &d.cornerVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.cornerVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(unitQuad)*4, gl.Ptr(unitQuad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 0, 0)
	gl.GenBuffers(1, &d.instVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.instVBO)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, instanceStride, 0)
	gl.VertexAttribDivisor(1, 1)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribIPointerWithOffset(2, 1, gl.INT, instanceStride, 16)
	gl.VertexAttribDivisor(2, 1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return d, nil
}

func (d *Device) Resize(w, h int) { d.w, d.h = w, h }

func (d *Device) Backing() (int, int) { return d.w, d.h }

func (d *Device) Program(name, vertex, fragment string) (render.Program, error) {
	vs, err := compile(name, "vertex", gl.VERTEX_SHADER, vertex)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compile(name, "fragment", gl.FRAGMENT_SHADER, fragment)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(id, n, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, &render.ShaderError{Program: name, Log: strings.TrimRight(log, "\x00"), Wrapped: render.ErrShaderLink}
	}
	return &program{name: name, id: id, uniforms: make(map[string]int32)}, nil
}

func compile(name, stage string, kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(shader, n, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, &render.ShaderError{Program: name, Stage: stage, Log: strings.TrimRight(log, "\x00"), Wrapped: render.ErrShaderCompile}
	}
	return shader, nil
}

// Clear drops draws submitted earlier in the frame. The host clears the
// framebuffer itself since both layers share it.
func (d *Device) Clear() { d.pending = d.pending[:0] }

func (d *Device) DrawPoints(p render.PointPass) {
	if p.Count == 0 {
		return
	}
	prog := p.Program.(*program)

	gl.BindBuffer(gl.ARRAY_BUFFER, d.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, p.Count*2*4, gl.Ptr(p.Positions), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.speedVBO)
	gl.BufferData(gl.ARRAY_BUFFER, p.Count*4, gl.Ptr(p.Speeds), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	count, res, blend := int32(p.Count), p.Resolution, p.Blend
	d.pending = append(d.pending, func() {
		gl.UseProgram(prog.id)
		gl.Uniform2f(prog.uniform("u_resolution"), res[0], res[1])
		setBlend(blend)
		gl.Enable(gl.PROGRAM_POINT_SIZE)
		gl.BindVertexArray(d.pointVAO)
		gl.DrawArrays(gl.POINTS, 0, count)
	})
}

func (d *Device) DrawQuads(q render.QuadPass) {
	if len(q.Instances) == 0 {
		return
	}
	prog := q.Program.(*program)

	gl.BindBuffer(gl.ARRAY_BUFFER, d.instVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(q.Instances)*int(instanceStride), gl.Ptr(q.Instances), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	n, u := int32(len(q.Instances)), q.Uniforms
	d.pending = append(d.pending, func() {
		gl.UseProgram(prog.id)
		gl.Uniform2f(prog.uniform("u_resolution"), u.Resolution[0], u.Resolution[1])
		gl.Uniform1f(prog.uniform("u_scroll"), u.Scroll)
		gl.Uniform1f(prog.uniform("u_phase"), u.Phase)
		setBlend(render.BlendAlpha)
		gl.BindVertexArray(d.quadVAO)
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, n)
	})
}

// Flush runs the frame's draws and leaves GL state the way the host
// expects it: alpha blending, no program, no vertex array.
func (d *Device) Flush() error {
	if len(d.pending) == 0 {
		return nil
	}
	gl.Viewport(0, 0, int32(d.w), int32(d.h))
	gl.Enable(gl.BLEND)
	for _, draw := range d.pending {
		draw()
	}
	d.pending = d.pending[:0]

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	setBlend(render.BlendAlpha)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gldevice: gl error 0x%x", code)
	}
	return nil
}

func (d *Device) Close() {
	gl.DeleteBuffers(1, &d.posVBO)
	gl.DeleteBuffers(1, &d.speedVBO)
	gl.DeleteBuffers(1, &d.cornerVBO)
	gl.DeleteBuffers(1, &d.instVBO)
	gl.DeleteVertexArrays(1, &d.pointVAO)
	gl.DeleteVertexArrays(1, &d.quadVAO)
}

func setBlend(b render.Blend) {
	switch b {
	case render.BlendAdditive:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	default:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}
