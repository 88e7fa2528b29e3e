package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestStatePressedOncePerHold(t *testing.T) {
	s := NewState()
	s.BeginFrame()
	s.Apply(Event{Type: EventKeyDown, Key: sdl.SCANCODE_F1})
	assert.True(t, s.Pressed(sdl.SCANCODE_F1))
	assert.True(t, s.Down(sdl.SCANCODE_F1))

	s.BeginFrame()
	s.Apply(Event{Type: EventKeyDown, Key: sdl.SCANCODE_F1, Repeat: true})
	assert.False(t, s.Pressed(sdl.SCANCODE_F1))
	assert.True(t, s.Down(sdl.SCANCODE_F1))

	s.Apply(Event{Type: EventKeyUp, Key: sdl.SCANCODE_F1})
	assert.False(t, s.Down(sdl.SCANCODE_F1))

	s.BeginFrame()
	s.Apply(Event{Type: EventKeyDown, Key: sdl.SCANCODE_F1})
	assert.True(t, s.Pressed(sdl.SCANCODE_F1))
}

func TestStateMouse(t *testing.T) {
	s := NewState()
	s.Apply(Event{Type: EventMouseDown, Button: sdl.BUTTON_RIGHT})
	s.Apply(Event{Type: EventMouseMove, DeltaX: 3, DeltaY: -2})
	s.Apply(Event{Type: EventMouseMove, DeltaX: 1, DeltaY: 5})

	dx, dy := s.MouseDelta()
	assert.Equal(t, 4, dx)
	assert.Equal(t, 3, dy)
	assert.True(t, s.Button(sdl.BUTTON_RIGHT))

	s.BeginFrame()
	dx, dy = s.MouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.True(t, s.Button(sdl.BUTTON_RIGHT))

	s.Apply(Event{Type: EventMouseUp, Button: sdl.BUTTON_RIGHT})
	assert.False(t, s.Button(sdl.BUTTON_RIGHT))
}

func TestStateResize(t *testing.T) {
	s := NewState()
	_, _, ok := s.Resized()
	assert.False(t, ok)

	s.Apply(Event{Type: EventWindowResize, Width: 100, Height: 50})
	s.Apply(Event{Type: EventWindowResize, Width: 1280, Height: 720})
	w, h, ok := s.Resized()
	assert.True(t, ok)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)

	s.BeginFrame()
	_, _, ok = s.Resized()
	assert.False(t, ok)
}
