// Package gputest provides a recording gpu.Device for tests that need to
// observe GPU command streams without a GL context.
package gputest

import (
	"fmt"
	"reflect"

	"github.com/Faultbox/umbra/internal/engine/gpu"
)

// Call is one recorded device command.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Is reports whether the call has the given name and, when args are
// provided, matching leading arguments.
func (c Call) Is(name string, args ...any) bool {
	if c.Name != name || len(args) > len(c.Args) {
		return false
	}
	for i, a := range args {
		if !reflect.DeepEqual(a, c.Args[i]) {
			return false
		}
	}
	return true
}

// Recorder implements gpu.Device. Object names come from one counter
// shared by every object kind, so a name identifies one object.
type Recorder struct {
	Calls []Call

	// Status, when non-zero, is returned by every CheckFramebufferStatus.
	Status gpu.Enum
	// Anisotropy is reported by MaxAnisotropy.
	Anisotropy float32

	next        uint32
	live        map[uint32]string
	released    map[uint32]bool
	doubleFrees []uint32

	boundBuffer map[gpu.Enum]uint32
	storage     map[uint32][]byte
	mapped      map[gpu.Enum]bool

	boundFBO    map[gpu.Enum]uint32
	attachments map[uint32]map[gpu.Enum]uint32

	locations map[string]int32
}

var _ gpu.Device = (*Recorder)(nil)

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{
		Anisotropy:  16,
		live:        map[uint32]string{},
		released:    map[uint32]bool{},
		boundBuffer: map[gpu.Enum]uint32{},
		storage:     map[uint32][]byte{},
		mapped:      map[gpu.Enum]bool{},
		boundFBO:    map[gpu.Enum]uint32{},
		attachments: map[uint32]map[gpu.Enum]uint32{},
		locations:   map[string]int32{},
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) alloc(kind string) uint32 {
	r.next++
	r.live[r.next] = kind
	r.record("Gen"+kind, r.next)
	return r.next
}

func (r *Recorder) free(kind string, name uint32) {
	r.record("Delete"+kind, name)
	if name == 0 {
		return
	}
	if r.live[name] != kind {
		r.doubleFrees = append(r.doubleFrees, name)
		return
	}
	delete(r.live, name)
	r.released[name] = true
}

// ResetCalls drops the call log but keeps object state.
func (r *Recorder) ResetCalls() {
	r.Calls = nil
}

// Live returns how many objects of kind ("Texture", "Buffer", ...) exist.
// An empty kind counts every live object.
func (r *Recorder) Live(kind string) int {
	n := 0
	for _, k := range r.live {
		if kind == "" || k == kind {
			n++
		}
	}
	return n
}

// IsLive reports whether name refers to an object that was not deleted.
func (r *Recorder) IsLive(name uint32) bool {
	_, ok := r.live[name]
	return ok
}

// Released reports whether name was deleted.
func (r *Recorder) Released(name uint32) bool {
	return r.released[name]
}

// DoubleFrees lists names deleted while not live.
func (r *Recorder) DoubleFrees() []uint32 {
	return r.doubleFrees
}

// Storage returns the contents of a buffer object.
func (r *Recorder) Storage(buffer uint32) []byte {
	return r.storage[buffer]
}

// Attachment returns the object attached to fbo at the attachment point.
func (r *Recorder) Attachment(fbo uint32, attachment gpu.Enum) uint32 {
	return r.attachments[fbo][attachment]
}

// Find returns every call with the given name and leading args.
func (r *Recorder) Find(name string, args ...any) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Is(name, args...) {
			out = append(out, c)
		}
	}
	return out
}

// Index returns the position of the first matching call at or after from,
// or -1.
func (r *Recorder) Index(from int, name string, args ...any) int {
	for i := from; i < len(r.Calls); i++ {
		if r.Calls[i].Is(name, args...) {
			return i
		}
	}
	return -1
}

// Indices returns the positions of every matching call.
func (r *Recorder) Indices(name string, args ...any) []int {
	var out []int
	for i, c := range r.Calls {
		if c.Is(name, args...) {
			out = append(out, i)
		}
	}
	return out
}

func (r *Recorder) Enable(c gpu.Enum)               { r.record("Enable", c) }
func (r *Recorder) Disable(c gpu.Enum)              { r.record("Disable", c) }
func (r *Recorder) DepthFunc(fn gpu.Enum)           { r.record("DepthFunc", fn) }
func (r *Recorder) DepthMask(write bool)            { r.record("DepthMask", write) }
func (r *Recorder) ColorMask(cr, cg, cb, ca bool)   { r.record("ColorMask", cr, cg, cb, ca) }
func (r *Recorder) CullFace(face gpu.Enum)          { r.record("CullFace", face) }
func (r *Recorder) PolygonMode(face, mode gpu.Enum) { r.record("PolygonMode", face, mode) }
func (r *Recorder) BlendEquation(mode gpu.Enum)     { r.record("BlendEquation", mode) }
func (r *Recorder) BlendFunc(src, dst gpu.Enum)     { r.record("BlendFunc", src, dst) }
func (r *Recorder) ClearColor(cr, cg, cb, ca float32) {
	r.record("ClearColor", cr, cg, cb, ca)
}
func (r *Recorder) Clear(mask gpu.Enum)       { r.record("Clear", mask) }
func (r *Recorder) Viewport(x, y, w, h int32) { r.record("Viewport", x, y, w, h) }
func (r *Recorder) PointSize(size float32)    { r.record("PointSize", size) }

func (r *Recorder) StencilFunc(fn gpu.Enum, ref int32, mask uint32) {
	r.record("StencilFunc", fn, ref, mask)
}

func (r *Recorder) StencilOp(sf, dpf, dpp gpu.Enum) { r.record("StencilOp", sf, dpf, dpp) }

func (r *Recorder) StencilOpSeparate(face, sf, dpf, dpp gpu.Enum) {
	r.record("StencilOpSeparate", face, sf, dpf, dpp)
}

func (r *Recorder) UseProgram(p uint32) { r.record("UseProgram", p) }

// UniformLocation hands out a stable location per (program, name).
func (r *Recorder) UniformLocation(p uint32, name string) int32 {
	key := fmt.Sprintf("%d/%s", p, name)
	loc, ok := r.locations[key]
	if !ok {
		loc = int32(len(r.locations))
		r.locations[key] = loc
	}
	r.record("UniformLocation", p, name)
	return loc
}

// LocationOf returns the location UniformLocation handed out, or -1.
func (r *Recorder) LocationOf(p uint32, name string) int32 {
	if loc, ok := r.locations[fmt.Sprintf("%d/%s", p, name)]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) Uniform1i(loc int32, v int32)            { r.record("Uniform1i", loc, v) }
func (r *Recorder) Uniform1f(loc int32, v float32)          { r.record("Uniform1f", loc, v) }
func (r *Recorder) Uniform3f(loc int32, x, y, z float32)    { r.record("Uniform3f", loc, x, y, z) }
func (r *Recorder) Uniform4f(loc int32, x, y, z, w float32) { r.record("Uniform4f", loc, x, y, z, w) }

func (r *Recorder) UniformMatrix4fv(loc int32, m [16]float32) {
	r.record("UniformMatrix4fv", loc, m)
}

func (r *Recorder) UniformMatrix4x3fv(loc int32, m [12]float32) {
	r.record("UniformMatrix4x3fv", loc, m)
}

func (r *Recorder) GenBuffer() uint32     { return r.alloc("Buffer") }
func (r *Recorder) DeleteBuffer(b uint32) { r.free("Buffer", b) }

func (r *Recorder) BindBuffer(target gpu.Enum, b uint32) {
	r.boundBuffer[target] = b
	r.record("BindBuffer", target, b)
}

func (r *Recorder) BindBufferBase(target gpu.Enum, index, b uint32) {
	r.boundBuffer[target] = b
	r.record("BindBufferBase", target, index, b)
}

func (r *Recorder) BufferData(target gpu.Enum, size int, data []byte, usage gpu.Enum) {
	buf := make([]byte, size)
	copy(buf, data)
	r.storage[r.boundBuffer[target]] = buf
	r.record("BufferData", target, size, usage)
}

func (r *Recorder) BufferSubData(target gpu.Enum, offset int, data []byte) {
	buf := r.storage[r.boundBuffer[target]]
	if offset+len(data) > len(buf) {
		panic(fmt.Sprintf("gputest: BufferSubData [%d, %d) outside buffer of %d bytes", offset, offset+len(data), len(buf)))
	}
	copy(buf[offset:], data)
	r.record("BufferSubData", target, offset, len(data))
}

func (r *Recorder) MapBuffer(target, access gpu.Enum, size int) []byte {
	r.record("MapBuffer", target, access, size)
	buf := r.storage[r.boundBuffer[target]]
	if r.mapped[target] || size > len(buf) {
		return nil
	}
	r.mapped[target] = true
	return buf[:size]
}

func (r *Recorder) UnmapBuffer(target gpu.Enum) bool {
	r.record("UnmapBuffer", target)
	ok := r.mapped[target]
	r.mapped[target] = false
	return ok
}

func (r *Recorder) GenVertexArray() uint32           { return r.alloc("VertexArray") }
func (r *Recorder) DeleteVertexArray(v uint32)       { r.free("VertexArray", v) }
func (r *Recorder) BindVertexArray(v uint32)         { r.record("BindVertexArray", v) }
func (r *Recorder) EnableVertexAttribArray(i uint32) { r.record("EnableVertexAttribArray", i) }

func (r *Recorder) VertexAttribPointer(i uint32, size int32, xtype gpu.Enum, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer", i, size, xtype, normalized, stride, offset)
}

func (r *Recorder) DrawArrays(mode gpu.Enum, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode gpu.Enum, count int32, xtype gpu.Enum, offset int) {
	r.record("DrawElements", mode, count, xtype, offset)
}

func (r *Recorder) DrawElementsInstanced(mode gpu.Enum, count int32, xtype gpu.Enum, offset int, instances int32) {
	r.record("DrawElementsInstanced", mode, count, xtype, offset, instances)
}

func (r *Recorder) GenTexture() uint32                    { return r.alloc("Texture") }
func (r *Recorder) DeleteTexture(t uint32)                { r.free("Texture", t) }
func (r *Recorder) ActiveTexture(unit gpu.Enum)           { r.record("ActiveTexture", unit) }
func (r *Recorder) BindTexture(target gpu.Enum, t uint32) { r.record("BindTexture", target, t) }

func (r *Recorder) TexImage2D(target gpu.Enum, level int32, internalFormat gpu.Enum, w, h int32, format, xtype gpu.Enum, pixels []byte) {
	r.record("TexImage2D", target, level, internalFormat, w, h, format, xtype, len(pixels))
}

func (r *Recorder) TexImage2DMultisample(target gpu.Enum, samples int32, internalFormat gpu.Enum, w, h int32, fixed bool) {
	r.record("TexImage2DMultisample", target, samples, internalFormat, w, h, fixed)
}

func (r *Recorder) TexParameteri(target, pname gpu.Enum, param int32) {
	r.record("TexParameteri", target, pname, param)
}

func (r *Recorder) GenerateMipmap(target gpu.Enum) { r.record("GenerateMipmap", target) }

func (r *Recorder) GenSampler() uint32         { return r.alloc("Sampler") }
func (r *Recorder) DeleteSampler(s uint32)     { r.free("Sampler", s) }
func (r *Recorder) BindSampler(unit, s uint32) { r.record("BindSampler", unit, s) }

func (r *Recorder) SamplerParameteri(s uint32, pname gpu.Enum, param int32) {
	r.record("SamplerParameteri", s, pname, param)
}

func (r *Recorder) SamplerParameterf(s uint32, pname gpu.Enum, param float32) {
	r.record("SamplerParameterf", s, pname, param)
}

func (r *Recorder) MaxAnisotropy() float32 { return r.Anisotropy }

func (r *Recorder) GenFramebuffer() uint32 { return r.alloc("Framebuffer") }

func (r *Recorder) DeleteFramebuffer(f uint32) {
	r.free("Framebuffer", f)
	delete(r.attachments, f)
}

func (r *Recorder) BindFramebuffer(target gpu.Enum, f uint32) {
	if target == gpu.FramebufferTarget {
		r.boundFBO[gpu.DrawFramebuffer] = f
		r.boundFBO[gpu.ReadFramebuffer] = f
	} else {
		r.boundFBO[target] = f
	}
	r.record("BindFramebuffer", target, f)
}

func (r *Recorder) attach(target, attachment gpu.Enum, name uint32) {
	if target == gpu.FramebufferTarget {
		target = gpu.DrawFramebuffer
	}
	fbo := r.boundFBO[target]
	if r.attachments[fbo] == nil {
		r.attachments[fbo] = map[gpu.Enum]uint32{}
	}
	r.attachments[fbo][attachment] = name
}

func (r *Recorder) FramebufferTexture2D(target, attachment, texTarget gpu.Enum, t uint32, level int32) {
	r.attach(target, attachment, t)
	r.record("FramebufferTexture2D", target, attachment, texTarget, t, level)
}

func (r *Recorder) FramebufferRenderbuffer(target, attachment, rbTarget gpu.Enum, rbo uint32) {
	r.attach(target, attachment, rbo)
	r.record("FramebufferRenderbuffer", target, attachment, rbTarget, rbo)
}

// CheckFramebufferStatus reports complete when the bound framebuffer has at
// least one attachment and every attachment is live.
func (r *Recorder) CheckFramebufferStatus(target gpu.Enum) gpu.Enum {
	r.record("CheckFramebufferStatus", target)
	if r.Status != 0 {
		return r.Status
	}
	if target == gpu.FramebufferTarget {
		target = gpu.DrawFramebuffer
	}
	att := r.attachments[r.boundFBO[target]]
	if len(att) == 0 {
		return gpu.FramebufferIncompleteMissingAttachment
	}
	for _, name := range att {
		if !r.IsLive(name) {
			return gpu.FramebufferIncompleteAttachment
		}
	}
	return gpu.FramebufferComplete
}

func (r *Recorder) DrawBuffers(bufs ...gpu.Enum) { r.record("DrawBuffers", bufs) }
func (r *Recorder) ReadBuffer(mode gpu.Enum)     { r.record("ReadBuffer", mode) }

func (r *Recorder) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int32, mask, filter gpu.Enum) {
	r.record("BlitFramebuffer", sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1, mask, filter)
}

// ReadPixels fills dst with a gradient so captures are non-trivial.
func (r *Recorder) ReadPixels(x, y, w, h int32, format, xtype gpu.Enum, dst []byte) {
	for i := range dst {
		dst[i] = byte(i)
	}
	r.record("ReadPixels", x, y, w, h, format, xtype)
}

func (r *Recorder) GenRenderbuffer() uint32                     { return r.alloc("Renderbuffer") }
func (r *Recorder) DeleteRenderbuffer(rb uint32)                { r.free("Renderbuffer", rb) }
func (r *Recorder) BindRenderbuffer(target gpu.Enum, rb uint32) { r.record("BindRenderbuffer", target, rb) }

func (r *Recorder) RenderbufferStorage(target, internalFormat gpu.Enum, w, h int32) {
	r.record("RenderbufferStorage", target, internalFormat, w, h)
}

func (r *Recorder) RenderbufferStorageMultisample(target gpu.Enum, samples int32, internalFormat gpu.Enum, w, h int32) {
	r.record("RenderbufferStorageMultisample", target, samples, internalFormat, w, h)
}
