// Package gpu is the command surface the renderer records OpenGL work
// through. The Device interface mirrors the GL 4.1 core entry points the
// engine uses; glcore implements it on a live context and gputest records
// it for tests.
package gpu

// Device issues GPU commands. All methods must be called from the thread
// that owns the GL context.
type Device interface {
	// Fixed-function state.
	Enable(capability Enum)
	Disable(capability Enum)
	DepthFunc(fn Enum)
	DepthMask(write bool)
	ColorMask(r, g, b, a bool)
	CullFace(face Enum)
	PolygonMode(face, mode Enum)
	StencilFunc(fn Enum, ref int32, mask uint32)
	StencilOp(sfail, dpfail, dppass Enum)
	StencilOpSeparate(face, sfail, dpfail, dppass Enum)
	BlendEquation(mode Enum)
	BlendFunc(src, dst Enum)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Viewport(x, y, width, height int32)
	PointSize(size float32)

	// Programs and uniforms.
	UseProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	UniformMatrix4fv(location int32, m [16]float32)
	UniformMatrix4x3fv(location int32, m [12]float32)

	// Buffers.
	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target Enum, buffer uint32)
	BindBufferBase(target Enum, index, buffer uint32)
	BufferData(target Enum, size int, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)
	// MapBuffer returns size bytes of the buffer bound to target, or nil
	// when mapping fails. The slice is invalid after UnmapBuffer.
	MapBuffer(target, access Enum, size int) []byte
	UnmapBuffer(target Enum) bool

	// Vertex arrays and draws.
	GenVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype Enum, normalized bool, stride int32, offset int)
	DrawArrays(mode Enum, first, count int32)
	DrawElements(mode Enum, count int32, xtype Enum, offset int)
	DrawElementsInstanced(mode Enum, count int32, xtype Enum, offset int, instances int32)

	// Textures.
	GenTexture() uint32
	DeleteTexture(texture uint32)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, texture uint32)
	TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, xtype Enum, pixels []byte)
	TexImage2DMultisample(target Enum, samples int32, internalFormat Enum, width, height int32, fixedSampleLocations bool)
	TexParameteri(target, pname Enum, param int32)
	GenerateMipmap(target Enum)

	// Samplers.
	GenSampler() uint32
	DeleteSampler(sampler uint32)
	BindSampler(unit, sampler uint32)
	SamplerParameteri(sampler uint32, pname Enum, param int32)
	SamplerParameterf(sampler uint32, pname Enum, param float32)
	MaxAnisotropy() float32

	// Framebuffers.
	GenFramebuffer() uint32
	DeleteFramebuffer(fbo uint32)
	BindFramebuffer(target Enum, fbo uint32)
	FramebufferTexture2D(target, attachment, texTarget Enum, texture uint32, level int32)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, rbo uint32)
	CheckFramebufferStatus(target Enum) Enum
	DrawBuffers(buffers ...Enum)
	ReadBuffer(mode Enum)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter Enum)
	ReadPixels(x, y, width, height int32, format, xtype Enum, dst []byte)

	// Renderbuffers.
	GenRenderbuffer() uint32
	DeleteRenderbuffer(rbo uint32)
	BindRenderbuffer(target Enum, rbo uint32)
	RenderbufferStorage(target, internalFormat Enum, width, height int32)
	RenderbufferStorageMultisample(target Enum, samples int32, internalFormat Enum, width, height int32)
}
