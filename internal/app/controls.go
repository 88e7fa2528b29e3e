package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/umbra/internal/engine/camera"
	"github.com/Faultbox/umbra/internal/engine/input"
	"github.com/Faultbox/umbra/internal/engine/scene"
	"github.com/Faultbox/umbra/pkg/math"
)

// Camera reset pose.
var (
	homeEye    = math.Vec3{X: -3, Y: 3, Z: -5}
	homeTarget = math.Vec3{}
)

// Holding this button enables mouse look.
const mouseLook = sdl.BUTTON_RIGHT

// Zoom step in degrees per key press.
const zoomStep = 5

// msaaFallback is used when multisampling is switched on but the configured
// sample count is 1.
const msaaFallback = 4

// change lists the side effects a key press needs beyond updating the
// toggles themselves.
type change uint8

const (
	changeTargets change = 1 << iota
	changeVSync
	changeSpotlight
	changeScreenshot
	changeQuit
)

// toggles is the runtime render state switched by function keys.
type toggles struct {
	settings   scene.RenderSettings
	msaa       bool
	samples    int32 // used while msaa is on
	convention scene.Convention
	animate    bool
	spotlight  bool
}

func (t *toggles) activeSamples() int32 {
	if t.msaa {
		return t.samples
	}
	return 1
}

// apply handles the function keys pressed this frame.
func (t *toggles) apply(st *input.State) change {
	var c change
	if st.Pressed(sdl.SCANCODE_F1) {
		t.msaa = !t.msaa
		t.settings.MSAASamples = t.activeSamples()
		c |= changeTargets
	}
	if st.Pressed(sdl.SCANCODE_F2) {
		t.settings.Wireframe = !t.settings.Wireframe
	}
	if st.Pressed(sdl.SCANCODE_F3) {
		t.settings.VSync = !t.settings.VSync
		c |= changeVSync
	}
	if st.Pressed(sdl.SCANCODE_F4) {
		t.settings.Tonemapping = !t.settings.Tonemapping
	}
	if st.Pressed(sdl.SCANCODE_F5) {
		t.animate = !t.animate
	}
	if st.Pressed(sdl.SCANCODE_F6) {
		if t.convention == scene.ConventionDepthFail {
			t.convention = scene.ConventionDepthPass
		} else {
			t.convention = scene.ConventionDepthFail
		}
	}
	if st.Pressed(sdl.SCANCODE_F7) {
		t.spotlight = !t.spotlight
		c |= changeSpotlight
	}
	if st.Pressed(sdl.SCANCODE_F12) {
		c |= changeScreenshot
	}
	if st.Pressed(sdl.SCANCODE_ESCAPE) {
		c |= changeQuit
	}
	return c
}

func axis(st *input.State, neg, pos sdl.Scancode) float32 {
	var v float32
	if st.Down(pos) {
		v++
	}
	if st.Down(neg) {
		v--
	}
	return v
}

// driveCamera applies fly controls: WASD to move, R/F up and down, Shift for
// turbo, right mouse to look, +/- to zoom, Backspace to reset the FOV and
// Enter to return home.
func driveCamera(cam *camera.Camera, st *input.State, dt float32) {
	if st.Pressed(sdl.SCANCODE_RETURN) {
		cam.ResetFOV()
		cam.LookAt(homeEye, homeTarget)
	}
	if st.Button(mouseLook) {
		dx, dy := st.MouseDelta()
		if dx != 0 || dy != 0 {
			cam.Rotate(float32(dx), float32(dy))
		}
	}

	turbo := st.Down(sdl.SCANCODE_LSHIFT) || st.Down(sdl.SCANCODE_RSHIFT)
	cam.Move(
		axis(st, sdl.SCANCODE_S, sdl.SCANCODE_W),
		axis(st, sdl.SCANCODE_A, sdl.SCANCODE_D),
		axis(st, sdl.SCANCODE_F, sdl.SCANCODE_R),
		dt, turbo)

	if st.Pressed(sdl.SCANCODE_EQUALS) || st.Pressed(sdl.SCANCODE_KP_PLUS) {
		cam.Zoom(-zoomStep)
	}
	if st.Pressed(sdl.SCANCODE_MINUS) || st.Pressed(sdl.SCANCODE_KP_MINUS) {
		cam.Zoom(zoomStep)
	}
	if st.Pressed(sdl.SCANCODE_BACKSPACE) {
		cam.ResetFOV()
	}
}
