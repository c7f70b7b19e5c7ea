package viewer

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/gltf-viewer/internal/config"
	"github.com/Faultbox/gltf-viewer/internal/engine/input"
)

func TestStillModeFollowsOutputPath(t *testing.T) {
	cfg := config.Default()
	if stillMode(cfg) {
		t.Error("no output path must mean interactive mode")
	}
	cfg.Output = "render.png"
	if !stillMode(cfg) {
		t.Error("an output path must select still-image mode")
	}
}

func TestInterpretEventsQuit(t *testing.T) {
	acts := interpretEvents([]input.Event{{Type: input.EventQuit}})
	if !acts.quit {
		t.Error("quit event must request quit")
	}

	acts = interpretEvents([]input.Event{
		{Type: input.EventKeyDown, Key: sdl.SCANCODE_ESCAPE},
	})
	if !acts.quit {
		t.Error("escape must request quit")
	}
}

func TestInterpretEventsKeys(t *testing.T) {
	acts := interpretEvents([]input.Event{
		{Type: input.EventKeyDown, Key: sdl.SCANCODE_TAB},
		{Type: input.EventKeyDown, Key: sdl.SCANCODE_L},
		{Type: input.EventKeyDown, Key: sdl.SCANCODE_F12},
	})
	if !acts.switchMode || !acts.toggleLamp || !acts.screenshot {
		t.Errorf("actions = %+v, want switch, lamp toggle and screenshot", acts)
	}
	if acts.quit || acts.resized {
		t.Errorf("actions = %+v, unexpected quit or resize", acts)
	}
}

func TestInterpretEventsResize(t *testing.T) {
	acts := interpretEvents([]input.Event{
		{Type: input.EventWindowResize, Width: 800, Height: 600},
	})
	if !acts.resized || acts.width != 800 || acts.height != 600 {
		t.Errorf("actions = %+v, want 800x600 resize", acts)
	}
}

func TestResizeRebuildsProjection(t *testing.T) {
	// A still render targets the configured size even when the window's
	// drawable size differs (HiDPI); resize must retarget both the
	// viewport dimensions and the projection aspect.
	v := &Viewer{fovY: 1.2, near: 0.1, far: 100, width: 2560, height: 1440}
	v.updateProjection()
	wide := v.proj

	v.resize(640, 480)
	if v.width != 640 || v.height != 480 {
		t.Fatalf("size = %dx%d, want 640x480", v.width, v.height)
	}
	if v.proj == wide {
		t.Error("projection must change with the aspect ratio")
	}
	// proj[0] = f/aspect, proj[5] = f
	aspect := v.proj[5] / v.proj[0]
	if absf(aspect-640.0/480.0) > 1e-5 {
		t.Errorf("projection aspect = %v, want 4:3", aspect)
	}
}

func TestWindowTitleNamesController(t *testing.T) {
	got := windowTitle("assets/duck.gltf", ModeFirstPerson)
	if got != "gltf-viewer - duck.gltf [fly]" {
		t.Errorf("title = %q", got)
	}
	got = windowTitle("assets/duck.gltf", ModeTrackball)
	if got != "gltf-viewer - duck.gltf [orbit]" {
		t.Errorf("title = %q", got)
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestInterpretEventsIgnoresOtherKeys(t *testing.T) {
	acts := interpretEvents([]input.Event{
		{Type: input.EventKeyDown, Key: sdl.SCANCODE_W},
		{Type: input.EventKeyUp, Key: sdl.SCANCODE_TAB},
	})
	if acts != (frameActions{}) {
		t.Errorf("actions = %+v, want none", acts)
	}
}
