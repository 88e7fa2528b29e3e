package ubo

import (
	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/pkg/math"
)

// TransformBlock owns the GPU buffer behind TransformLayout.
type TransformBlock struct {
	dev gpu.Device
	buf *gpu.Buffer

	view [Mat3x4Size]byte
	proj [Mat4Size]byte
}

// NewTransformBlock allocates the block storage and attaches it to its
// binding point.
func NewTransformBlock(dev gpu.Device) *TransformBlock {
	b := &TransformBlock{dev: dev, buf: gpu.NewBuffer(dev)}

	dev.BindBuffer(gpu.UniformBuffer, b.buf.Name())
	dev.BufferData(gpu.UniformBuffer, TransformLayout.Size, nil, gpu.DynamicDraw)
	dev.BindBufferBase(gpu.UniformBuffer, TransformLayout.Binding, b.buf.Name())
	return b
}

// Update overwrites the whole block: the transposed world-to-view matrix,
// then the projection.
func (b *TransformBlock) Update(worldToView, projection math.Mat4) {
	EncodeMat3x4(b.view[:], worldToView.Mat3x4())
	EncodeMat4(b.proj[:], projection)

	view, _ := TransformLayout.Field("worldToView")
	proj, _ := TransformLayout.Field("projection")

	b.dev.BindBufferBase(gpu.UniformBuffer, TransformLayout.Binding, b.buf.Name())
	b.dev.BufferSubData(gpu.UniformBuffer, view.Offset, b.view[:])
	b.dev.BufferSubData(gpu.UniformBuffer, proj.Offset, b.proj[:])
}

// Buffer returns the GL buffer name.
func (b *TransformBlock) Buffer() uint32 {
	return b.buf.Name()
}

// Release frees the GPU buffer.
func (b *TransformBlock) Release() {
	b.buf.Release()
}
