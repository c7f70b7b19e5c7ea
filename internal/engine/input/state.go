package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Key identifies a keyboard key used by the camera controllers.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyUp
	KeyDown
	KeyLeftShift
	KeyLeftCtrl
)

// State exposes polled input device state. Camera controllers read it
// once per frame instead of consuming events, which matches how SDL
// reports held buttons and keys.
type State interface {
	// ButtonDown reports whether the given mouse button is held.
	ButtonDown(b Button) bool
	// KeyDown reports whether the given key is held.
	KeyDown(k Key) bool
	// CursorPos returns the cursor position in window coordinates.
	CursorPos() (x, y float32)
}

var scancodes = map[Key]sdl.Scancode{
	KeyW:         sdl.SCANCODE_W,
	KeyA:         sdl.SCANCODE_A,
	KeyS:         sdl.SCANCODE_S,
	KeyD:         sdl.SCANCODE_D,
	KeyQ:         sdl.SCANCODE_Q,
	KeyE:         sdl.SCANCODE_E,
	KeyUp:        sdl.SCANCODE_UP,
	KeyDown:      sdl.SCANCODE_DOWN,
	KeyLeftShift: sdl.SCANCODE_LSHIFT,
	KeyLeftCtrl:  sdl.SCANCODE_LCTRL,
}

// SDLState implements State on top of SDL's polled device queries.
type SDLState struct{}

// NewSDLState returns a State backed by SDL.
func NewSDLState() *SDLState {
	return &SDLState{}
}

// ButtonDown reports whether the given mouse button is held.
func (s *SDLState) ButtonDown(b Button) bool {
	_, _, mask := sdl.GetMouseState()
	switch b {
	case ButtonLeft:
		return mask&sdl.Button(sdl.BUTTON_LEFT) != 0
	case ButtonMiddle:
		return mask&sdl.Button(sdl.BUTTON_MIDDLE) != 0
	case ButtonRight:
		return mask&sdl.Button(sdl.BUTTON_RIGHT) != 0
	}
	return false
}

// KeyDown reports whether the given key is held.
func (s *SDLState) KeyDown(k Key) bool {
	sc, ok := scancodes[k]
	if !ok {
		return false
	}
	keys := sdl.GetKeyboardState()
	return keys[sc] != 0
}

// CursorPos returns the cursor position in window coordinates.
func (s *SDLState) CursorPos() (float32, float32) {
	x, y, _ := sdl.GetMouseState()
	return float32(x), float32(y)
}
