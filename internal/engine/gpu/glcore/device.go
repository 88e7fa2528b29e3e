// Package glcore implements gpu.Device on an OpenGL 4.1 core context.
package glcore

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/logger"
)

// Device forwards every call to the current GL context.
type Device struct{}

var _ gpu.Device = (*Device)(nil)

// New loads the GL function pointers and logs the driver strings.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("vendor", gl.GoStr(gl.GetString(gl.VENDOR))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)
	return &Device{}, nil
}

func (*Device) Enable(c gpu.Enum)               { gl.Enable(c) }
func (*Device) Disable(c gpu.Enum)              { gl.Disable(c) }
func (*Device) DepthFunc(fn gpu.Enum)           { gl.DepthFunc(fn) }
func (*Device) DepthMask(write bool)            { gl.DepthMask(write) }
func (*Device) ColorMask(r, g, b, a bool)       { gl.ColorMask(r, g, b, a) }
func (*Device) CullFace(face gpu.Enum)          { gl.CullFace(face) }
func (*Device) PolygonMode(face, mode gpu.Enum) { gl.PolygonMode(face, mode) }
func (*Device) BlendEquation(mode gpu.Enum)     { gl.BlendEquation(mode) }
func (*Device) BlendFunc(src, dst gpu.Enum)     { gl.BlendFunc(src, dst) }
func (*Device) ClearColor(r, g, b, a float32)   { gl.ClearColor(r, g, b, a) }
func (*Device) Clear(mask gpu.Enum)             { gl.Clear(mask) }
func (*Device) Viewport(x, y, w, h int32)       { gl.Viewport(x, y, w, h) }
func (*Device) PointSize(size float32)          { gl.PointSize(size) }
func (*Device) StencilOp(sf, dpf, dpp gpu.Enum) { gl.StencilOp(sf, dpf, dpp) }
func (*Device) StencilFunc(fn gpu.Enum, ref int32, mask uint32) {
	gl.StencilFunc(fn, ref, mask)
}
func (*Device) StencilOpSeparate(face, sf, dpf, dpp gpu.Enum) {
	gl.StencilOpSeparate(face, sf, dpf, dpp)
}

func (*Device) UseProgram(p uint32) { gl.UseProgram(p) }

func (*Device) UniformLocation(p uint32, name string) int32 {
	return gl.GetUniformLocation(p, gl.Str(name+"\x00"))
}

func (*Device) Uniform1i(loc int32, v int32)            { gl.Uniform1i(loc, v) }
func (*Device) Uniform1f(loc int32, v float32)          { gl.Uniform1f(loc, v) }
func (*Device) Uniform3f(loc int32, x, y, z float32)    { gl.Uniform3f(loc, x, y, z) }
func (*Device) Uniform4f(loc int32, x, y, z, w float32) { gl.Uniform4f(loc, x, y, z, w) }

func (*Device) UniformMatrix4fv(loc int32, m [16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (*Device) UniformMatrix4x3fv(loc int32, m [12]float32) {
	gl.UniformMatrix4x3fv(loc, 1, false, &m[0])
}

func (*Device) GenBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (*Device) DeleteBuffer(b uint32)                  { gl.DeleteBuffers(1, &b) }
func (*Device) BindBuffer(target gpu.Enum, b uint32)   { gl.BindBuffer(target, b) }
func (*Device) BindBufferBase(t gpu.Enum, i, b uint32) { gl.BindBufferBase(t, i, b) }

func (*Device) BufferData(target gpu.Enum, size int, data []byte, usage gpu.Enum) {
	gl.BufferData(target, size, ptr(data), usage)
}

func (*Device) BufferSubData(target gpu.Enum, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(target, offset, len(data), gl.Ptr(data))
}

func (*Device) MapBuffer(target, access gpu.Enum, size int) []byte {
	p := gl.MapBuffer(target, access)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), size)
}

func (*Device) UnmapBuffer(target gpu.Enum) bool { return gl.UnmapBuffer(target) }

func (*Device) GenVertexArray() uint32 {
	var v uint32
	gl.GenVertexArrays(1, &v)
	return v
}

func (*Device) DeleteVertexArray(v uint32)       { gl.DeleteVertexArrays(1, &v) }
func (*Device) BindVertexArray(v uint32)         { gl.BindVertexArray(v) }
func (*Device) EnableVertexAttribArray(i uint32) { gl.EnableVertexAttribArray(i) }

func (*Device) VertexAttribPointer(i uint32, size int32, xtype gpu.Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(i, size, xtype, normalized, stride, uintptr(offset))
}

func (*Device) DrawArrays(mode gpu.Enum, first, count int32) { gl.DrawArrays(mode, first, count) }

func (*Device) DrawElements(mode gpu.Enum, count int32, xtype gpu.Enum, offset int) {
	gl.DrawElementsWithOffset(mode, count, xtype, uintptr(offset))
}

func (*Device) DrawElementsInstanced(mode gpu.Enum, count int32, xtype gpu.Enum, offset int, instances int32) {
	gl.DrawElementsInstanced(mode, count, xtype, gl.PtrOffset(offset), instances)
}

func (*Device) GenTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (*Device) DeleteTexture(t uint32)                { gl.DeleteTextures(1, &t) }
func (*Device) ActiveTexture(unit gpu.Enum)           { gl.ActiveTexture(unit) }
func (*Device) BindTexture(target gpu.Enum, t uint32) { gl.BindTexture(target, t) }

func (*Device) TexImage2D(target gpu.Enum, level int32, internalFormat gpu.Enum, w, h int32, format, xtype gpu.Enum, pixels []byte) {
	gl.TexImage2D(target, level, int32(internalFormat), w, h, 0, format, xtype, ptr(pixels))
}

func (*Device) TexImage2DMultisample(target gpu.Enum, samples int32, internalFormat gpu.Enum, w, h int32, fixed bool) {
	gl.TexImage2DMultisample(target, samples, internalFormat, w, h, fixed)
}

func (*Device) TexParameteri(target, pname gpu.Enum, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (*Device) GenerateMipmap(target gpu.Enum) { gl.GenerateMipmap(target) }

func (*Device) GenSampler() uint32 {
	var s uint32
	gl.GenSamplers(1, &s)
	return s
}

func (*Device) DeleteSampler(s uint32)     { gl.DeleteSamplers(1, &s) }
func (*Device) BindSampler(unit, s uint32) { gl.BindSampler(unit, s) }

func (*Device) SamplerParameteri(s uint32, pname gpu.Enum, param int32) {
	gl.SamplerParameteri(s, pname, param)
}

func (*Device) SamplerParameterf(s uint32, pname gpu.Enum, param float32) {
	gl.SamplerParameterf(s, pname, param)
}

func (*Device) MaxAnisotropy() float32 {
	var v float32
	gl.GetFloatv(gpu.MaxTextureMaxAnisotropy, &v)
	return v
}

func (*Device) GenFramebuffer() uint32 {
	var f uint32
	gl.GenFramebuffers(1, &f)
	return f
}

func (*Device) DeleteFramebuffer(f uint32)                { gl.DeleteFramebuffers(1, &f) }
func (*Device) BindFramebuffer(target gpu.Enum, f uint32) { gl.BindFramebuffer(target, f) }

func (*Device) FramebufferTexture2D(target, attachment, texTarget gpu.Enum, t uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, t, level)
}

func (*Device) FramebufferRenderbuffer(target, attachment, rbTarget gpu.Enum, rbo uint32) {
	gl.FramebufferRenderbuffer(target, attachment, rbTarget, rbo)
}

func (*Device) CheckFramebufferStatus(target gpu.Enum) gpu.Enum {
	return gl.CheckFramebufferStatus(target)
}

func (*Device) DrawBuffers(bufs ...gpu.Enum) {
	if len(bufs) == 0 {
		return
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (*Device) ReadBuffer(mode gpu.Enum) { gl.ReadBuffer(mode) }

func (*Device) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int32, mask, filter gpu.Enum) {
	gl.BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1, mask, filter)
}

func (*Device) ReadPixels(x, y, w, h int32, format, xtype gpu.Enum, dst []byte) {
	gl.ReadPixels(x, y, w, h, format, xtype, gl.Ptr(dst))
}

func (*Device) GenRenderbuffer() uint32 {
	var r uint32
	gl.GenRenderbuffers(1, &r)
	return r
}

func (*Device) DeleteRenderbuffer(r uint32)                { gl.DeleteRenderbuffers(1, &r) }
func (*Device) BindRenderbuffer(target gpu.Enum, r uint32) { gl.BindRenderbuffer(target, r) }

func (*Device) RenderbufferStorage(target, internalFormat gpu.Enum, w, h int32) {
	gl.RenderbufferStorage(target, internalFormat, w, h)
}

func (*Device) RenderbufferStorageMultisample(target gpu.Enum, samples int32, internalFormat gpu.Enum, w, h int32) {
	gl.RenderbufferStorageMultisample(target, samples, internalFormat, w, h)
}

// ptr returns nil for empty slices so allocations without initial data
// pass a null pointer, as GL expects.
func ptr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return gl.Ptr(b)
}
