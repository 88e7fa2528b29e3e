package instancing

import (
	"encoding/binary"
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/gpu/gputest"
	"github.com/Faultbox/umbra/pkg/math"
)

func positions(n int) []math.Vec3 {
	out := make([]math.Vec3, n)
	for i := range out {
		out[i] = math.Vec3{X: float32(i%10) - 5, Y: float32(i%5) + 1, Z: float32(i%7) - 3}
	}
	return out
}

func TestUpdateAtCapacityCopiesWholeBlock(t *testing.T) {
	dev := gputest.New()
	b := New(dev, MaxInstances)

	n, err := b.Update(positions(MaxInstances))
	require.NoError(t, err)
	assert.Equal(t, MaxInstances*48, n)
	assert.Equal(t, 49152, n)

	maps := dev.Find("MapBuffer")
	require.Len(t, maps, 1)
	assert.True(t, maps[0].Is("MapBuffer", gpu.UniformBuffer, gpu.WriteOnly, 49152))
	assert.Len(t, dev.Find("UnmapBuffer"), 1)
}

func TestUpdateOverCapacityFailsWithoutUpload(t *testing.T) {
	dev := gputest.New()
	b := New(dev, MaxInstances)
	core, logs := observer.New(zapcore.WarnLevel)
	b.log = zap.New(core)

	n, err := b.Update(positions(MaxInstances + 1))
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Zero(t, n)
	assert.Empty(t, dev.Find("MapBuffer"))

	entries := logs.FilterMessage("instance upload refused").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(MaxInstances+1), entries[0].ContextMap()["count"])
}

func TestUpdateWritesTransposedTransforms(t *testing.T) {
	dev := gputest.New()
	b := New(dev, 8)

	pos := []math.Vec3{{X: 0, Y: 0.5, Z: 0}, {X: 2, Y: 3, Z: -1}}
	n, err := b.Update(pos)
	require.NoError(t, err)
	assert.Equal(t, 2*48, n)
	assert.Equal(t, 2, b.Count())

	data := dev.Storage(b.Buffer())
	for i := range pos {
		want := Transform(i, pos[i]).Mat3x4()
		for k := 0; k < 12; k++ {
			got := stdmath.Float32frombits(binary.LittleEndian.Uint32(data[i*48+k*4:]))
			assert.Equal(t, want[k], got, "instance %d float %d", i, k)
		}
		// Translation sits in the w of each row.
		assert.Equal(t, pos[i].X, want[3])
		assert.Equal(t, pos[i].Y, want[7])
		assert.Equal(t, pos[i].Z, want[11])
	}
}

func TestFirstInstanceIsUnrotated(t *testing.T) {
	m := Transform(0, math.Vec3{Y: 0.5})
	assert.Equal(t, math.Translate(math.Vec3{Y: 0.5}), m)
}

func TestInstanceRoundTrip(t *testing.T) {
	dev := gputest.New()
	b := New(dev, 64)
	pos := positions(64)
	_, err := b.Update(pos)
	require.NoError(t, err)

	for i := range pos {
		assert.Equal(t, Transform(i, pos[i]), b.Instance(i).ModelToWorld.Mat4(), "instance %d", i)
	}
}

func TestNewClampsCapacity(t *testing.T) {
	dev := gputest.New()
	assert.Equal(t, MaxInstances, New(dev, 5000).Capacity())
	assert.Equal(t, 16, New(dev, 16).Capacity())
}

func TestEmptyUpdateSkipsMapping(t *testing.T) {
	dev := gputest.New()
	b := New(dev, 4)
	n, err := b.Update(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, dev.Find("MapBuffer"))
}
