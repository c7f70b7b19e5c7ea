package camera

import (
	"github.com/Faultbox/gltf-viewer/internal/engine/input"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// rollStep is the fixed roll increment per update while Q or E is
// held. It is deliberately not scaled by elapsed time.
const rollStep = 0.001

// FirstPerson is the free-fly controller. Holding the left mouse
// button and dragging looks around; W/S dolly, A/D truck, Up/Down
// pedestal, Q/E roll.
type FirstPerson struct {
	state input.State
	speed float32

	camera  Camera
	worldUp math.Vec3

	dragging   bool
	lastCursor math.Vec2
}

// NewFirstPerson creates a free-fly controller. speed scales keyboard
// translation in world units per second.
func NewFirstPerson(state input.State, speed float32) *FirstPerson {
	return &FirstPerson{
		state:   state,
		speed:   speed,
		worldUp: worldUp,
	}
}

// Camera returns the current camera value.
func (fp *FirstPerson) Camera() Camera {
	return fp.camera
}

// SetCamera replaces the current camera value.
func (fp *FirstPerson) SetCamera(c Camera) {
	fp.camera = c
}

// Speed returns the keyboard translation speed.
func (fp *FirstPerson) Speed() float32 {
	return fp.speed
}

// SetSpeed sets the keyboard translation speed.
func (fp *FirstPerson) SetSpeed(speed float32) {
	fp.speed = speed
}

// Update advances the camera by one frame of polled input. Returns
// true if the camera changed.
func (fp *FirstPerson) Update(elapsed float32) bool {
	delta := fp.trackCursor()

	var truckLeft, pedestalUp, dollyIn, rollRight float32

	if fp.state.KeyDown(input.KeyW) {
		dollyIn += fp.speed * elapsed
	}
	if fp.state.KeyDown(input.KeyS) {
		dollyIn -= fp.speed * elapsed
	}
	if fp.state.KeyDown(input.KeyA) {
		truckLeft += fp.speed * elapsed
	}
	if fp.state.KeyDown(input.KeyD) {
		truckLeft -= fp.speed * elapsed
	}
	if fp.state.KeyDown(input.KeyUp) {
		pedestalUp += fp.speed * elapsed
	}
	if fp.state.KeyDown(input.KeyDown) {
		pedestalUp -= fp.speed * elapsed
	}
	if fp.state.KeyDown(input.KeyQ) {
		rollRight -= rollStep
	}
	if fp.state.KeyDown(input.KeyE) {
		rollRight += rollStep
	}

	// Cursor moving right pans the view left.
	panLeft := -0.01 * delta.X
	tiltDown := 0.01 * delta.Y

	if truckLeft == 0 && pedestalUp == 0 && dollyIn == 0 &&
		rollRight == 0 && panLeft == 0 && tiltDown == 0 {
		return false
	}

	c := fp.camera.MoveLocal(truckLeft, pedestalUp, dollyIn)
	c = c.RotateLocal(rollRight, tiltDown, 0)
	c = c.RotateWorld(panLeft, fp.worldUp)
	fp.camera = c
	return true
}

// trackCursor samples the drag state and returns the cursor delta
// since the previous update, or zero when not dragging. The press
// edge captures the cursor as baseline so the first dragged frame
// produces no jump.
func (fp *FirstPerson) trackCursor() math.Vec2 {
	down := fp.state.ButtonDown(input.ButtonLeft)
	x, y := fp.state.CursorPos()
	cursor := math.Vec2{X: x, Y: y}

	if down && !fp.dragging {
		fp.dragging = true
		fp.lastCursor = cursor
		return math.Vec2{}
	}
	if !down {
		fp.dragging = false
		return math.Vec2{}
	}

	delta := cursor.Sub(fp.lastCursor)
	fp.lastCursor = cursor
	return delta
}
