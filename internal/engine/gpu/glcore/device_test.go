package glcore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/umbra/internal/engine/gpu"
)

// Building this package checks every forwarded call against the bindings;
// no context is needed for that.
func TestDeviceImplementsGPUDevice(t *testing.T) {
	assert.Implements(t, (*gpu.Device)(nil), new(Device))
}
