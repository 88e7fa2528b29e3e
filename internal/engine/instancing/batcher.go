// Package instancing builds the per-instance transform array that the
// instanced programs read from the InstanceBuffer uniform block.
package instancing

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/ubo"
	"github.com/Faultbox/umbra/internal/logger"
	"github.com/Faultbox/umbra/pkg/math"
)

// MaxInstances is the capacity of the instance block.
const MaxInstances = ubo.MaxInstances

// InstanceSize is the std140 size of one InstanceData element.
const InstanceSize = ubo.Mat3x4Size

// Degrees of rotation added per instance index.
const rotationStep = 20

// ErrCapacityExceeded is returned when more instances are requested than the
// uniform block holds. Nothing is uploaded in that case.
var ErrCapacityExceeded = errors.New("instance count exceeds block capacity")

var rotationAxis = math.Vec3{X: 1, Y: 1, Z: 1}.Normalize()

// InstanceData is one element of the GPU instance array.
type InstanceData struct {
	ModelToWorld math.Mat3x4
}

// Transform returns the model-to-world matrix for the instance at index i
// placed at position: translation followed by i*20 degrees about (1,1,1).
func Transform(i int, position math.Vec3) math.Mat4 {
	return math.Translate(position).Mul(math.RotateAxis(rotationAxis, math.Radians(float32(i*rotationStep))))
}

// Batcher owns the instance uniform buffer and its CPU staging copy.
type Batcher struct {
	dev       gpu.Device
	log       *zap.Logger
	buf       *gpu.Buffer
	capacity  int
	instances []InstanceData
	staging   []byte
	count     int
}

// New allocates a buffer for capacity instances. capacity is clamped to
// MaxInstances.
func New(dev gpu.Device, capacity int) *Batcher {
	if capacity <= 0 || capacity > MaxInstances {
		capacity = MaxInstances
	}
	b := &Batcher{
		dev:       dev,
		log:       logger.Named("instancing"),
		buf:       gpu.NewBuffer(dev),
		capacity:  capacity,
		instances: make([]InstanceData, capacity),
		staging:   make([]byte, capacity*InstanceSize),
	}

	dev.BindBuffer(gpu.UniformBuffer, b.buf.Name())
	dev.BufferData(gpu.UniformBuffer, len(b.staging), nil, gpu.DynamicDraw)
	dev.BindBuffer(gpu.UniformBuffer, 0)
	return b
}

// Capacity returns the maximum number of instances per draw.
func (b *Batcher) Capacity() int {
	return b.capacity
}

// Count returns the number of instances written by the last Update.
func (b *Batcher) Count() int {
	return b.count
}

// Instance returns the CPU copy of instance i.
func (b *Batcher) Instance(i int) InstanceData {
	return b.instances[i]
}

// Update rebuilds the instance array from positions and uploads it,
// returning the number of bytes copied to the GPU.
func (b *Batcher) Update(positions []math.Vec3) (int, error) {
	if len(positions) > b.capacity {
		b.log.Warn("instance upload refused",
			zap.Int("count", len(positions)),
			zap.Int("capacity", b.capacity))
		return 0, fmt.Errorf("%w: %d > %d", ErrCapacityExceeded, len(positions), b.capacity)
	}

	for i, p := range positions {
		b.instances[i].ModelToWorld = Transform(i, p).Mat3x4()
		ubo.EncodeMat3x4(b.staging[i*InstanceSize:], b.instances[i].ModelToWorld)
	}
	b.count = len(positions)

	n := b.count * InstanceSize
	if n == 0 {
		return 0, nil
	}

	b.Bind()
	dst := b.dev.MapBuffer(gpu.UniformBuffer, gpu.WriteOnly, n)
	if dst == nil {
		b.log.Warn("instance buffer map failed", zap.Int("bytes", n))
		return 0, errors.New("mapping instance buffer failed")
	}
	copied := copy(dst, b.staging[:n])
	if !b.dev.UnmapBuffer(gpu.UniformBuffer) {
		return 0, errors.New("instance buffer contents lost during unmap")
	}
	return copied, nil
}

// Bind attaches the instance buffer to its uniform binding point.
func (b *Batcher) Bind() {
	b.dev.BindBufferBase(gpu.UniformBuffer, ubo.InstanceLayout.Binding, b.buf.Name())
}

// Unbind detaches the instance binding point.
func (b *Batcher) Unbind() {
	b.dev.BindBufferBase(gpu.UniformBuffer, ubo.InstanceLayout.Binding, 0)
}

// Buffer returns the GL buffer name.
func (b *Batcher) Buffer() uint32 {
	return b.buf.Name()
}

// Release frees the GPU buffer.
func (b *Batcher) Release() {
	b.buf.Release()
}
