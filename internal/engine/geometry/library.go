package geometry

import (
	"go.uber.org/zap"

	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/logger"
)

// Library holds the uploaded meshes the scene draws.
type Library struct {
	quad          *Buffers
	cube          *Buffers
	cubeAdjacency *Buffers
}

// NewLibrary builds and uploads the quad, the lit cube and the adjacency cube.
func NewLibrary(dev gpu.Device) *Library {
	l := &Library{
		quad:          Upload(dev, Quad()),
		cube:          Upload(dev, Cube()),
		cubeAdjacency: Upload(dev, CubeAdjacency()),
	}
	logger.Named("geometry").Debug("meshes uploaded",
		zap.Int32("quadIndices", l.quad.indexCount),
		zap.Int32("cubeIndices", l.cube.indexCount),
		zap.Int32("adjacencyIndices", l.cubeAdjacency.indexCount),
	)
	return l
}

// Quad returns the unit floor/wall quad.
func (l *Library) Quad() Handle { return l.quad.Handle() }

// Cube returns the textured unit cube.
func (l *Library) Cube() Handle { return l.cube.Handle() }

// CubeAdjacency returns the position-only cube with adjacency indices.
func (l *Library) CubeAdjacency() Handle { return l.cubeAdjacency.Handle() }

// Release deletes every mesh.
func (l *Library) Release() {
	l.quad.Release()
	l.cube.Release()
	l.cubeAdjacency.Release()
}
