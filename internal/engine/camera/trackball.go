package camera

import (
	"github.com/Faultbox/gltf-viewer/internal/engine/input"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// zoomEpsilon keeps the eye strictly in front of the orbit center.
const zoomEpsilon = 1e-4

// Trackball is the orbit controller. Dragging with the middle mouse
// button orbits the eye around the look-at center; Shift pans, Ctrl
// zooms toward or away from the center.
type Trackball struct {
	state input.State

	camera  Camera
	worldUp math.Vec3

	dragging   bool
	lastCursor math.Vec2
}

// NewTrackball creates an orbit controller.
func NewTrackball(state input.State) *Trackball {
	return &Trackball{
		state:   state,
		worldUp: worldUp,
	}
}

// Camera returns the current camera value.
func (tb *Trackball) Camera() Camera {
	return tb.camera
}

// SetCamera replaces the current camera value.
func (tb *Trackball) SetCamera(c Camera) {
	tb.camera = c
}

// Update advances the camera by one frame of polled input. Returns
// true if the camera changed.
func (tb *Trackball) Update(elapsed float32) bool {
	delta := tb.trackCursor()
	if delta.IsZero() {
		return false
	}

	horizontal := 0.01 * delta.X
	vertical := 0.01 * delta.Y

	if tb.state.KeyDown(input.KeyLeftShift) {
		// Pan: slide eye and center together along the local left axis.
		if horizontal == 0 {
			return false
		}
		tb.camera = tb.camera.MoveLocal(horizontal, 0, 0)
		return true
	}

	if tb.state.KeyDown(input.KeyLeftCtrl) {
		// Zoom: dolly the eye along the view axis, center fixed.
		if horizontal == 0 {
			return false
		}
		view := tb.camera.Center.Sub(tb.camera.Eye)
		viewLen := view.Length()
		offset := horizontal
		if offset > 0 && offset > viewLen-zoomEpsilon {
			offset = viewLen - zoomEpsilon
		}
		newEye := tb.camera.Eye.Add(view.Scale(offset / viewLen))
		tb.camera = New(newEye, tb.camera.Center, tb.worldUp)
		return true
	}

	// Orbit: latitude about the local left axis, longitude about the
	// world up axis. Rightward drag orbits rightward, hence the
	// negated horizontal angle.
	depth := tb.camera.Eye.Sub(tb.camera.Center)
	rot := math.RotateAxis(tb.worldUp, -horizontal).
		Mul(math.RotateAxis(tb.camera.Left(), vertical))
	newEye := tb.camera.Center.Add(rot.TransformDirection(depth))
	tb.camera = New(newEye, tb.camera.Center, tb.worldUp)
	return true
}

// trackCursor samples the drag state and returns the cursor delta
// since the previous update, or zero when not dragging.
func (tb *Trackball) trackCursor() math.Vec2 {
	down := tb.state.ButtonDown(input.ButtonMiddle)
	x, y := tb.state.CursorPos()
	cursor := math.Vec2{X: x, Y: y}

	if down && !tb.dragging {
		tb.dragging = true
		tb.lastCursor = cursor
		return math.Vec2{}
	}
	if !down {
		tb.dragging = false
		return math.Vec2{}
	}

	delta := cursor.Sub(tb.lastCursor)
	tb.lastCursor = cursor
	return delta
}
