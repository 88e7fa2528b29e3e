package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/umbra/pkg/math"
)

// LightCamera is the viewpoint a shadow map is rendered from.
type LightCamera struct {
	worldToView math.Mat4
	viewToWorld math.Mat4
	projection  math.Mat4
	near, far   float32
}

// NewLightCamera places a camera at eye aimed at target with the given
// projection. The scene passes the view camera's projection so the light
// frustum matches the one the shadows are looked at through.
func NewLightCamera(eye, target math.Vec3, projection math.Mat4, near, far float32) LightCamera {
	view := LightView(eye, target)
	return LightCamera{
		worldToView: view,
		viewToWorld: view.Inverse(),
		projection:  projection,
		near:        near,
		far:         far,
	}
}

// LightView computes the world-to-view matrix of a light at eye aimed at
// target.
func LightView(eye, target math.Vec3) math.Mat4 {
	dir := target.Sub(eye).Normalize()

	// Avoid an up vector parallel to the light direction.
	up := math.Vec3{Y: 1}
	if math32.Abs(dir.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}
	return math.LookAt(eye, target, up)
}

func (c LightCamera) WorldToView() math.Mat4 { return c.worldToView }
func (c LightCamera) ViewToWorld() math.Mat4 { return c.viewToWorld }
func (c LightCamera) Projection() math.Mat4  { return c.projection }
func (c LightCamera) Near() float32          { return c.near }
func (c LightCamera) Far() float32           { return c.far }

// Position returns the light position.
func (c LightCamera) Position() math.Vec3 {
	return c.viewToWorld.Column(3).XYZ()
}

// ViewProjection returns projection * worldToView, the matrix that maps
// world positions into shadow map clip space.
func (c LightCamera) ViewProjection() math.Mat4 {
	return c.projection.Mul(c.worldToView)
}
