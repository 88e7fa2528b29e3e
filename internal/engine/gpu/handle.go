package gpu

// object owns one GL name and knows how to delete it.
type object struct {
	dev  Device
	name uint32
	del  func(Device, uint32)
}

// Name returns the GL name, 0 once released.
func (o *object) Name() uint32 {
	return o.name
}

// Valid reports whether the handle still owns a GL object.
func (o *object) Valid() bool {
	return o.name != 0
}

// Release deletes the GL object. Safe to call more than once.
func (o *object) Release() {
	if o.name == 0 {
		return
	}
	o.del(o.dev, o.name)
	o.name = 0
}

// Buffer is an owned buffer object.
type Buffer struct{ object }

// NewBuffer allocates a buffer name.
func NewBuffer(dev Device) *Buffer {
	return &Buffer{object{dev: dev, name: dev.GenBuffer(), del: Device.DeleteBuffer}}
}

// VertexArray is an owned vertex array object.
type VertexArray struct{ object }

// NewVertexArray allocates a vertex array name.
func NewVertexArray(dev Device) *VertexArray {
	return &VertexArray{object{dev: dev, name: dev.GenVertexArray(), del: Device.DeleteVertexArray}}
}

// Texture is an owned texture object.
type Texture struct{ object }

// NewTexture allocates a texture name.
func NewTexture(dev Device) *Texture {
	return &Texture{object{dev: dev, name: dev.GenTexture(), del: Device.DeleteTexture}}
}

// Reset releases the current texture and allocates a fresh name.
func (t *Texture) Reset() {
	t.Release()
	t.name = t.dev.GenTexture()
}

// Sampler is an owned sampler object.
type Sampler struct{ object }

// NewSampler allocates a sampler name.
func NewSampler(dev Device) *Sampler {
	return &Sampler{object{dev: dev, name: dev.GenSampler(), del: Device.DeleteSampler}}
}

// Framebuffer is an owned framebuffer object.
type Framebuffer struct{ object }

// NewFramebuffer allocates a framebuffer name.
func NewFramebuffer(dev Device) *Framebuffer {
	return &Framebuffer{object{dev: dev, name: dev.GenFramebuffer(), del: Device.DeleteFramebuffer}}
}

// Reset releases the current framebuffer and allocates a fresh name.
func (f *Framebuffer) Reset() {
	f.Release()
	f.name = f.dev.GenFramebuffer()
}

// Renderbuffer is an owned renderbuffer object.
type Renderbuffer struct{ object }

// NewRenderbuffer allocates a renderbuffer name.
func NewRenderbuffer(dev Device) *Renderbuffer {
	return &Renderbuffer{object{dev: dev, name: dev.GenRenderbuffer(), del: Device.DeleteRenderbuffer}}
}

// Reset releases the current renderbuffer and allocates a fresh name.
func (r *Renderbuffer) Reset() {
	r.Release()
	r.name = r.dev.GenRenderbuffer()
}
