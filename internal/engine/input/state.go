package input

import "github.com/veandco/go-sdl2/sdl"

// State tracks held keys and buttons across frames, plus what happened
// during the current frame.
type State struct {
	down    map[sdl.Scancode]bool
	pressed map[sdl.Scancode]bool
	buttons map[uint8]bool

	mouseDX, mouseDY int
	resized          bool
	width, height    int
}

// NewState returns an empty state.
func NewState() State {
	return State{
		down:    map[sdl.Scancode]bool{},
		pressed: map[sdl.Scancode]bool{},
		buttons: map[uint8]bool{},
	}
}

// BeginFrame clears per-frame data. Held keys and buttons persist.
func (s *State) BeginFrame() {
	clear(s.pressed)
	s.mouseDX, s.mouseDY = 0, 0
	s.resized = false
}

// Apply folds one event into the state. Key repeats never count as
// presses.
func (s *State) Apply(e Event) {
	switch e.Type {
	case EventKeyDown:
		if !e.Repeat && !s.down[e.Key] {
			s.pressed[e.Key] = true
		}
		s.down[e.Key] = true
	case EventKeyUp:
		delete(s.down, e.Key)
	case EventMouseDown:
		s.buttons[e.Button] = true
	case EventMouseUp:
		delete(s.buttons, e.Button)
	case EventMouseMove:
		s.mouseDX += e.DeltaX
		s.mouseDY += e.DeltaY
	case EventWindowResize:
		s.resized = true
		s.width, s.height = e.Width, e.Height
	}
}

// Down reports whether key is held.
func (s *State) Down(key sdl.Scancode) bool { return s.down[key] }

// Pressed reports whether key went down this frame.
func (s *State) Pressed(key sdl.Scancode) bool { return s.pressed[key] }

// Button reports whether a mouse button is held.
func (s *State) Button(b uint8) bool { return s.buttons[b] }

// MouseDelta returns the summed relative motion of this frame.
func (s *State) MouseDelta() (dx, dy int) { return s.mouseDX, s.mouseDY }

// Resized returns the latest window size if a resize happened this frame.
func (s *State) Resized() (width, height int, ok bool) {
	return s.width, s.height, s.resized
}
