package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/umbra/pkg/math"
)

var (
	spotBase     = math.Vec3{X: 0, Y: 6, Z: 0}
	spotMovement = math.Vec4{X: 0.3, Y: 0.2, Z: 0.4, W: 0.1}
	spotScale    = math.Vec3{X: 2, Y: 0.5, Z: 2}
	spotColor    = math.Vec3{X: 20, Y: 20, Z: 18}
)

// SpotLight is a cone light aimed at the world origin. Its shadows come
// from a shadow map rather than stencil volumes.
type SpotLight struct {
	Light
	Direction   math.Vec3
	InnerAngle  float32 // half-angle in degrees, full intensity inside
	OuterAngle  float32 // half-angle in degrees, no light outside
	MaxDistance float32
}

func newSpotLight() SpotLight {
	s := SpotLight{
		Light: Light{
			Color:    spotColor.Vec4(0),
			Movement: spotMovement,
		},
		InnerAngle:  20,
		OuterAngle:  30,
		MaxDistance: 25,
	}
	s.update(0)
	return s
}

func (s *SpotLight) update(t float32) {
	s.Position = spotBase.Add(Lissajous(s.Movement, t).Mul(spotScale))
	s.Direction = s.Position.Negate().Normalize()
}

// CosInner returns the cosine of the inner cone angle.
func (s SpotLight) CosInner() float32 {
	return math32.Cos(math.Radians(s.InnerAngle))
}

// CosOuter returns the cosine of the outer cone angle.
func (s SpotLight) CosOuter() float32 {
	return math32.Cos(math.Radians(s.OuterAngle))
}
