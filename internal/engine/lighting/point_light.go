// Package lighting owns the animated lights of the scene.
package lighting

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/umbra/pkg/math"
)

// AmbientBudget is the total ambient intensity shared by all point lights.
const AmbientBudget = 1e-3

var (
	heroBase     = math.Vec3{X: -3, Y: 2, Z: 0}
	heroMovement = math.Vec4{X: 0, Y: 1, Z: 0, W: 0}
	heroColor    = math.Vec3{X: 10, Y: 10, Z: 10}

	orbitOffset = math.Vec3{X: 0, Y: 3, Z: 0}
	orbitScale  = math.Vec3{X: 13, Y: 2, Z: 13}
)

// Light is a point light. Position is derived from Movement every Update;
// Color.W is the ambient contribution of the light.
type Light struct {
	Position math.Vec3
	Color    math.Vec4
	Movement math.Vec4
}

// Lissajous evaluates the closed-form light path
// (sin(p.x t), cos(p.y t), sin(p.z t) cos(p.w t)).
func Lissajous(p math.Vec4, t float32) math.Vec3 {
	return math.Vec3{
		X: math32.Sin(p.X * t),
		Y: math32.Cos(p.Y * t),
		Z: math32.Sin(p.Z*t) * math32.Cos(p.W*t),
	}
}

// Store holds the point lights and the spotlight and advances one clock
// for all of them.
type Store struct {
	lights  []Light
	spot    SpotLight
	ambient float32
	t       float32
}

// NewStore creates count point lights: the fixed hero light first, then
// count-1 lights with random movement and color drawn from rng. count is
// raised to 1 if smaller.
func NewStore(count int, rng *rand.Rand) *Store {
	if count < 1 {
		count = 1
	}
	s := &Store{
		lights:  make([]Light, 0, count),
		ambient: AmbientBudget / float32(count),
	}

	s.lights = append(s.lights, Light{
		Position: heroBase.Add(Lissajous(heroMovement, 0)),
		Color:    heroColor.Vec4(s.ambient),
		Movement: heroMovement,
	})

	for i := 1; i < count; i++ {
		m := math.Vec4{
			X: uniform(rng, -2, 2),
			Y: uniform(rng, -2, 2),
			Z: uniform(rng, -2, 2),
			W: uniform(rng, -2, 2),
		}
		c := math.Vec3{
			X: uniform(rng, 0, 5),
			Y: uniform(rng, 0, 5),
			Z: uniform(rng, 0, 5),
		}
		s.lights = append(s.lights, Light{
			Position: orbit(m, 0),
			Color:    c.Vec4(s.ambient),
			Movement: m,
		})
	}

	s.spot = newSpotLight()
	return s
}

func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

func orbit(m math.Vec4, t float32) math.Vec3 {
	return orbitOffset.Add(Lissajous(m, t).Mul(orbitScale))
}

// Update moves every light to its position at the current time and then
// advances the clock by dt.
func (s *Store) Update(dt float32) {
	for i := range s.lights {
		l := &s.lights[i]
		if i == 0 {
			l.Position = heroBase.Add(Lissajous(l.Movement, s.t))
			continue
		}
		l.Position = orbit(l.Movement, s.t)
	}
	s.spot.update(s.t)
	s.t += dt
}

// Lights returns the point lights. The slice is owned by the store.
func (s *Store) Lights() []Light {
	return s.lights
}

// Len returns the number of point lights.
func (s *Store) Len() int {
	return len(s.lights)
}

// Spot returns the spotlight.
func (s *Store) Spot() SpotLight {
	return s.spot
}

// Ambient returns the ambient intensity carried by each point light.
func (s *Store) Ambient() float32 {
	return s.ambient
}

// Time returns the light clock.
func (s *Store) Time() float32 {
	return s.t
}

// Reset rewinds the light clock to zero.
func (s *Store) Reset() {
	s.t = 0
}
