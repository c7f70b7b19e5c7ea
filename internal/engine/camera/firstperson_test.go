package camera

import (
	"testing"

	"github.com/Faultbox/gltf-viewer/internal/engine/input"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// fakeState is a scriptable input.State for controller tests.
type fakeState struct {
	buttons map[input.Button]bool
	keys    map[input.Key]bool
	x, y    float32
}

func newFakeState() *fakeState {
	return &fakeState{
		buttons: make(map[input.Button]bool),
		keys:    make(map[input.Key]bool),
	}
}

func (f *fakeState) ButtonDown(b input.Button) bool { return f.buttons[b] }
func (f *fakeState) KeyDown(k input.Key) bool       { return f.keys[k] }
func (f *fakeState) CursorPos() (float32, float32)  { return f.x, f.y }

func startCamera() Camera {
	return New(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
}

func TestFirstPersonIdleIsNoOp(t *testing.T) {
	st := newFakeState()
	fp := NewFirstPerson(st, 1)
	fp.SetCamera(startCamera())

	before := fp.Camera()
	if fp.Update(0.016) {
		t.Error("update with no input should report no change")
	}
	if fp.Camera() != before {
		t.Error("camera must be identical after a no-op update")
	}
}

func TestFirstPersonSeededCamera(t *testing.T) {
	st := newFakeState()
	fp := NewFirstPerson(st, 1)
	seed := New(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
	fp.SetCamera(seed)

	if fp.Camera() != seed {
		t.Error("controller must return the seeded camera before any update")
	}
}

func TestFirstPersonDollyForward(t *testing.T) {
	st := newFakeState()
	fp := NewFirstPerson(st, 3)
	fp.SetCamera(startCamera())

	st.keys[input.KeyW] = true
	old := fp.Camera()
	if !fp.Update(1.0) {
		t.Fatal("update should report a change")
	}

	wantEye := old.Eye.Add(old.Front().Scale(3))
	if !vecNear(fp.Camera().Eye, wantEye) {
		t.Errorf("eye = %v, want %v", fp.Camera().Eye, wantEye)
	}
	wantCenter := old.Center.Add(old.Front().Scale(3))
	if !vecNear(fp.Camera().Center, wantCenter) {
		t.Errorf("center = %v, want %v", fp.Camera().Center, wantCenter)
	}
	if fp.Camera().Up != old.Up {
		t.Error("dolly must not change up")
	}
}

func TestFirstPersonTruckAndPedestalKeys(t *testing.T) {
	st := newFakeState()
	fp := NewFirstPerson(st, 2)
	fp.SetCamera(startCamera())
	old := fp.Camera()

	st.keys[input.KeyA] = true
	st.keys[input.KeyUp] = true
	if !fp.Update(0.5) {
		t.Fatal("update should report a change")
	}

	wantEye := old.Eye.Add(old.Left().Scale(1)).Add(old.UpVector().Scale(1))
	if !vecNear(fp.Camera().Eye, wantEye) {
		t.Errorf("eye = %v, want %v", fp.Camera().Eye, wantEye)
	}
}

func TestFirstPersonOpposedKeysCancel(t *testing.T) {
	st := newFakeState()
	fp := NewFirstPerson(st, 1)
	fp.SetCamera(startCamera())

	st.keys[input.KeyW] = true
	st.keys[input.KeyS] = true
	before := fp.Camera()
	if fp.Update(1.0) {
		t.Error("opposed keys should cancel to a no-op")
	}
	if fp.Camera() != before {
		t.Error("camera must be unchanged")
	}
}

func TestFirstPersonRollStepIgnoresElapsed(t *testing.T) {
	run := func(elapsed float32) Camera {
		st := newFakeState()
		fp := NewFirstPerson(st, 1)
		fp.SetCamera(startCamera())
		st.keys[input.KeyE] = true
		if !fp.Update(elapsed) {
			t.Fatal("roll key should report a change")
		}
		return fp.Camera()
	}

	fast := run(0.001)
	slow := run(10.0)
	if fast != slow {
		t.Error("roll step must not scale with elapsed time")
	}

	// Small-angle measurement via the cross product, acos is too
	// coarse in float32 at this scale.
	got := startCamera().Up.Cross(fast.Up).Length()
	if !near(got, rollStep) {
		t.Errorf("roll angle = %v, want %v", got, rollStep)
	}
}

func TestFirstPersonPressEdgeCapturesBaseline(t *testing.T) {
	st := newFakeState()
	fp := NewFirstPerson(st, 1)
	fp.SetCamera(startCamera())

	// Press with the cursor already far from the origin. The first
	// frame must not interpret the position as a huge delta.
	st.x, st.y = 400, 300
	st.buttons[input.ButtonLeft] = true
	if fp.Update(0.016) {
		t.Error("press edge alone should not move the camera")
	}

	// Now an actual drag produces a rotation.
	st.x = 410
	if !fp.Update(0.016) {
		t.Error("drag should move the camera")
	}
}

func TestFirstPersonDragPansAboutWorldUp(t *testing.T) {
	st := newFakeState()
	fp := NewFirstPerson(st, 1)
	fp.SetCamera(startCamera())
	old := fp.Camera()

	st.buttons[input.ButtonLeft] = true
	fp.Update(0.016) // press edge
	st.x += 10
	if !fp.Update(0.016) {
		t.Fatal("drag should report a change")
	}

	got := fp.Camera()
	if got.Eye != old.Eye {
		t.Error("pan must not move the eye")
	}
	angle := angleBetween(old.Front(), got.Front())
	if !near(angle, 0.1) {
		t.Errorf("pan angle = %v, want 0.1", angle)
	}
	// Pan about world up keeps the view level.
	if !near(got.Front().Y, old.Front().Y) {
		t.Error("horizontal drag must not tilt the view")
	}
}

func TestFirstPersonReleaseStopsDrag(t *testing.T) {
	st := newFakeState()
	fp := NewFirstPerson(st, 1)
	fp.SetCamera(startCamera())

	st.buttons[input.ButtonLeft] = true
	fp.Update(0.016)
	st.buttons[input.ButtonLeft] = false
	st.x += 50 // cursor keeps moving after release
	before := fp.Camera()
	if fp.Update(0.016) {
		t.Error("cursor motion without the button held must be ignored")
	}
	if fp.Camera() != before {
		t.Error("camera must be unchanged after release")
	}
}
