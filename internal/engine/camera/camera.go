// Package camera provides the free-fly camera used to view the scene.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/umbra/pkg/math"
)

// Pitch is kept inside +-89 degrees so the view never flips.
var maxPitch = math.Radians(89)

// FOV limits in degrees.
const (
	MinFOV = 5
	MaxFOV = 179
)

var worldUp = math.Vec3{Y: 1}

// Config holds the camera tunables.
type Config struct {
	FOV         float32 // vertical, degrees
	Near        float32
	Far         float32
	Speed       float32 // units per second
	TurboSpeed  float32
	Sensitivity float32 // radians per pixel of mouse motion
}

// Camera is a value type; copies are independent cameras.
type Camera struct {
	position   math.Vec3
	yaw, pitch float32

	viewToWorld math.Mat4
	worldToView math.Mat4

	fov, defaultFOV float32
	aspect          float32
	near, far       float32
	projection      math.Mat4

	speed, turbo, sensitivity float32
}

// New creates a camera at the origin looking down -Z.
func New(cfg Config, aspect float32) Camera {
	c := Camera{
		defaultFOV:  cfg.FOV,
		speed:       cfg.Speed,
		turbo:       cfg.TurboSpeed,
		sensitivity: cfg.Sensitivity,
	}
	c.SetProjection(cfg.FOV, aspect, cfg.Near, cfg.Far)
	c.rebuild()
	return c
}

// SetProjection replaces the perspective parameters.
func (c *Camera) SetProjection(fovDeg, aspect, near, far float32) {
	c.fov = math.Clamp(fovDeg, MinFOV, MaxFOV)
	if aspect <= 0 {
		aspect = 1
	}
	c.aspect, c.near, c.far = aspect, near, far
	c.projection = math.Perspective(math.Radians(c.fov), c.aspect, c.near, c.far)
}

// SetAspect updates the aspect ratio after a resize.
func (c *Camera) SetAspect(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.SetProjection(c.fov, float32(width)/float32(height), c.near, c.far)
}

// Zoom changes the field of view by delta degrees.
func (c *Camera) Zoom(delta float32) {
	c.SetProjection(c.fov+delta, c.aspect, c.near, c.far)
}

// ResetFOV restores the configured field of view.
func (c *Camera) ResetFOV() {
	c.SetProjection(c.defaultFOV, c.aspect, c.near, c.far)
}

// LookAt places the camera at eye facing target.
func (c *Camera) LookAt(eye, target math.Vec3) {
	f := target.Sub(eye).Normalize()
	c.position = eye
	c.pitch = math.Clamp(math32.Asin(f.Y), -maxPitch, maxPitch)
	c.yaw = math32.Atan2(-f.X, -f.Z)
	c.rebuild()
}

// SetTransformation sets the view-to-world matrix directly. Yaw and pitch
// are not updated; the next Rotate or Move starts from the previous angles.
func (c *Camera) SetTransformation(viewToWorld math.Mat4) {
	c.viewToWorld = viewToWorld
	c.worldToView = viewToWorld.Inverse()
	c.position = viewToWorld.Column(3).XYZ()
}

// Rotate applies a mouse delta in pixels.
func (c *Camera) Rotate(dx, dy float32) {
	c.yaw -= dx * c.sensitivity
	c.pitch = math.Clamp(c.pitch-dy*c.sensitivity, -maxPitch, maxPitch)
	c.rebuild()
}

// Move translates the camera. forward and right follow the view direction,
// up follows the world Y axis; each is -1, 0 or 1.
func (c *Camera) Move(forward, right, up, dt float32, turbo bool) {
	speed := c.speed
	if turbo {
		speed = c.turbo
	}
	step := speed * dt

	delta := c.Forward().Scale(forward).
		Add(c.Right().Scale(right)).
		Add(worldUp.Scale(up))
	if delta.Length() == 0 {
		return
	}
	c.position = c.position.Add(delta.Normalize().Scale(step))
	c.rebuild()
}

func (c *Camera) orientation() math.Quat {
	yaw := math.QuatFromAxisAngle(worldUp, c.yaw)
	pitch := math.QuatFromAxisAngle(math.Vec3{X: 1}, c.pitch)
	return yaw.Mul(pitch)
}

func (c *Camera) rebuild() {
	c.viewToWorld = math.Translate(c.position).Mul(c.orientation().ToMat4())
	c.worldToView = c.viewToWorld.Inverse()
}

// Forward returns the view direction in world space.
func (c Camera) Forward() math.Vec3 {
	return c.viewToWorld.TransformDirection(math.Vec3{Z: -1})
}

// Right returns the camera's right vector in world space.
func (c Camera) Right() math.Vec3 {
	return c.viewToWorld.TransformDirection(math.Vec3{X: 1})
}

// Position returns the eye position.
func (c Camera) Position() math.Vec3 { return c.position }

// WorldToView returns the view matrix.
func (c Camera) WorldToView() math.Mat4 { return c.worldToView }

// ViewToWorld returns the inverse view matrix.
func (c Camera) ViewToWorld() math.Mat4 { return c.viewToWorld }

// Projection returns the projection matrix.
func (c Camera) Projection() math.Mat4 { return c.projection }

// Near returns the near clip distance.
func (c Camera) Near() float32 { return c.near }

// Far returns the far clip distance.
func (c Camera) Far() float32 { return c.far }

// FOV returns the vertical field of view in degrees.
func (c Camera) FOV() float32 { return c.fov }
