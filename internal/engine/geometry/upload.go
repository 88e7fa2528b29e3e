package geometry

import (
	"encoding/binary"
	stdmath "math"

	"github.com/Faultbox/umbra/internal/engine/gpu"
)

const (
	floatSize      = 4
	vertexFloats   = 11
	positionFloats = 3
)

// Handle is what a draw call needs: the vertex array and its index count.
type Handle struct {
	VAO        uint32
	IndexCount int32
}

// Buffers owns the GPU objects of one uploaded mesh.
type Buffers struct {
	vao        *gpu.VertexArray
	vbo        *gpu.Buffer
	ebo        *gpu.Buffer
	indexCount int32
}

// Upload creates a vertex array with vertex and index buffers for mesh.
func Upload(dev gpu.Device, mesh Mesh) *Buffers {
	b := &Buffers{
		vao:        gpu.NewVertexArray(dev),
		indexCount: int32(len(mesh.Indices)),
	}
	dev.BindVertexArray(b.vao.Name())

	b.vbo = gpu.NewBuffer(dev)
	dev.BindBuffer(gpu.ArrayBuffer, b.vbo.Name())
	data, stride := encodeVertices(mesh)
	dev.BufferData(gpu.ArrayBuffer, len(data), data, gpu.StaticDraw)

	// Position
	dev.VertexAttribPointer(AttribPosition, 3, gpu.Float, false, stride, 0)
	dev.EnableVertexAttribArray(AttribPosition)
	if !mesh.PositionOnly {
		// Normal
		dev.VertexAttribPointer(AttribNormal, 3, gpu.Float, false, stride, 3*floatSize)
		dev.EnableVertexAttribArray(AttribNormal)
		// Tangent
		dev.VertexAttribPointer(AttribTangent, 3, gpu.Float, false, stride, 6*floatSize)
		dev.EnableVertexAttribArray(AttribTangent)
		// TexCoord
		dev.VertexAttribPointer(AttribTexCoord, 2, gpu.Float, false, stride, 9*floatSize)
		dev.EnableVertexAttribArray(AttribTexCoord)
	}

	b.ebo = gpu.NewBuffer(dev)
	dev.BindBuffer(gpu.ElementArrayBuffer, b.ebo.Name())
	dev.BufferData(gpu.ElementArrayBuffer, len(mesh.Indices)*4, encodeIndices(mesh.Indices), gpu.StaticDraw)

	// The element buffer binding is VAO state, so unbind the VAO first.
	dev.BindVertexArray(0)
	return b
}

// Handle returns the draw handle, zero once released.
func (b *Buffers) Handle() Handle {
	if !b.vao.Valid() {
		return Handle{}
	}
	return Handle{VAO: b.vao.Name(), IndexCount: b.indexCount}
}

// Release deletes the vertex array and both buffers.
func (b *Buffers) Release() {
	b.vao.Release()
	b.vbo.Release()
	b.ebo.Release()
}

func encodeVertices(mesh Mesh) ([]byte, int32) {
	n := vertexFloats
	if mesh.PositionOnly {
		n = positionFloats
	}
	out := make([]byte, 0, len(mesh.Vertices)*n*floatSize)
	put := func(fs ...float32) {
		for _, f := range fs {
			out = binary.LittleEndian.AppendUint32(out, stdmath.Float32bits(f))
		}
	}
	for _, v := range mesh.Vertices {
		put(v.Position[:]...)
		if mesh.PositionOnly {
			continue
		}
		put(v.Normal[:]...)
		put(v.Tangent[:]...)
		put(v.TexCoord[:]...)
	}
	return out, int32(n * floatSize)
}

func encodeIndices(indices []uint32) []byte {
	out := make([]byte, 0, len(indices)*4)
	for _, i := range indices {
		out = binary.LittleEndian.AppendUint32(out, i)
	}
	return out
}
