package lighting

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/umbra/pkg/math"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestLissajousDeterministic(t *testing.T) {
	p := math.Vec4{X: 1.3, Y: -0.7, Z: 1.9, W: 0.4}
	for _, tm := range []float32{0, 0.016, 1, 12.5, 1000} {
		assert.Equal(t, Lissajous(p, tm), Lissajous(p, tm), "t=%v", tm)
	}
}

func TestLissajousAtZero(t *testing.T) {
	assert.Equal(t, math.Vec3{X: 0, Y: 1, Z: 0}, Lissajous(math.Vec4{X: 3, Y: 2, Z: 1, W: 5}, 0))
}

func TestLissajousBounded(t *testing.T) {
	p := math.Vec4{X: 2, Y: -2, Z: 1.5, W: -0.5}
	for i := 0; i < 500; i++ {
		v := Lissajous(p, float32(i)*0.37)
		assert.LessOrEqual(t, v.X*v.X, float32(1.0001))
		assert.LessOrEqual(t, v.Y*v.Y, float32(1.0001))
		assert.LessOrEqual(t, v.Z*v.Z, float32(1.0001))
	}
}

func TestHeroLightAfterFirstUpdate(t *testing.T) {
	s := NewStore(1, newRNG(1))
	s.Update(0)

	require.Equal(t, 1, s.Len())
	hero := s.Lights()[0]
	assert.Equal(t, math.Vec3{X: -3, Y: 3, Z: 0}, hero.Position)
	assert.Equal(t, math.Vec4{X: 10, Y: 10, Z: 10, W: AmbientBudget}, hero.Color)
	assert.Equal(t, float32(0), s.Time())
}

func TestUpdateUsesClockBeforeAdvancing(t *testing.T) {
	s := NewStore(3, newRNG(7))
	s.Update(0.5)
	assert.Equal(t, float32(0.5), s.Time())

	// Positions now reflect t=0.5.
	s.Update(0.25)
	hero := s.Lights()[0]
	want := math.Vec3{X: -3, Y: 2, Z: 0}.Add(Lissajous(math.Vec4{Y: 1}, 0.5))
	assert.InDelta(t, want.Y, hero.Position.Y, 1e-6)
	assert.Equal(t, float32(0.75), s.Time())

	s.Reset()
	assert.Zero(t, s.Time())
}

func TestRandomLightsWithinRanges(t *testing.T) {
	const n = 64
	s := NewStore(n, newRNG(42))
	require.Equal(t, n, s.Len())

	for i, l := range s.Lights()[1:] {
		for _, c := range []float32{l.Movement.X, l.Movement.Y, l.Movement.Z, l.Movement.W} {
			assert.GreaterOrEqual(t, c, float32(-2), "light %d", i+1)
			assert.Less(t, c, float32(2), "light %d", i+1)
		}
		for _, c := range []float32{l.Color.X, l.Color.Y, l.Color.Z} {
			assert.GreaterOrEqual(t, c, float32(0))
			assert.Less(t, c, float32(5))
		}
		assert.InDelta(t, AmbientBudget/n, l.Color.W, 1e-9)

		// Initial position sits on the orbit at t=0.
		want := math.Vec3{Y: 3}.Add(Lissajous(l.Movement, 0).Mul(math.Vec3{X: 13, Y: 2, Z: 13}))
		assert.Equal(t, want, l.Position)
	}
}

func TestSameSeedSameLights(t *testing.T) {
	a := NewStore(10, newRNG(99))
	b := NewStore(10, newRNG(99))
	for i := 0; i < 10; i++ {
		a.Update(0.1)
		b.Update(0.1)
	}
	assert.Equal(t, a.Lights(), b.Lights())
}

func TestStoreHasAtLeastOneLight(t *testing.T) {
	assert.Equal(t, 1, NewStore(0, newRNG(1)).Len())
}

func TestSpotLightAimsAtOrigin(t *testing.T) {
	s := NewStore(1, newRNG(1))
	for i := 0; i < 20; i++ {
		s.Update(0.3)
		spot := s.Spot()
		assert.InDelta(t, 1, spot.Direction.Length(), 1e-5)

		toOrigin := spot.Position.Negate().Normalize()
		assert.InDelta(t, 1, spot.Direction.Dot(toOrigin), 1e-5)
		assert.Greater(t, spot.Position.Y, float32(5))
	}
}

func TestSpotConeCosines(t *testing.T) {
	spot := NewStore(1, newRNG(1)).Spot()
	assert.Greater(t, spot.CosInner(), spot.CosOuter())
	assert.InDelta(t, 0.9396926, spot.CosInner(), 1e-6)
	assert.InDelta(t, 0.8660254, spot.CosOuter(), 1e-6)
}
