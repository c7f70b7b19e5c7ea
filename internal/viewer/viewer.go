// Package viewer wires the scene, camera controllers and device layer
// into the interactive render loop and the still-image path.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/qmuntal/gltf"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/config"
	"github.com/Faultbox/gltf-viewer/internal/engine/camera"
	"github.com/Faultbox/gltf-viewer/internal/engine/capture"
	"github.com/Faultbox/gltf-viewer/internal/engine/framebuffer"
	"github.com/Faultbox/gltf-viewer/internal/engine/input"
	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/internal/engine/window"
	"github.com/Faultbox/gltf-viewer/internal/logger"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// ControllerMode selects the active camera controller.
type ControllerMode int

const (
	ModeFirstPerson ControllerMode = iota
	ModeTrackball
)

// Viewer owns the window, the loaded scene and the render loop state.
type Viewer struct {
	cfg    *config.Config
	window *window.Window
	input  *input.Input
	state  input.State

	doc      *gltf.Document
	roots    []int
	meshes   *scene.Meshes
	renderer *scene.Renderer
	light    scene.Light

	mode       ControllerMode
	controller camera.Controller
	speed      float32

	fovY, near, far float32
	width, height   int
	proj            math.Mat4
}

// New builds a viewer from the configuration: window and GL context,
// scene upload, and the initial camera. With cfg.Output set the window
// stays hidden; the run renders one offscreen frame instead of a loop.
func New(cfg *config.Config) (*Viewer, error) {
	if cfg.ScenePath == "" {
		return nil, fmt.Errorf("no scene file given")
	}

	v := &Viewer{
		cfg:   cfg,
		light: scene.DefaultLight(),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      windowTitle(cfg.ScenePath, ModeFirstPerson),
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Hidden:     stillMode(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	if err := gl.Init(); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	v.doc, err = scene.Load(cfg.ScenePath)
	if err != nil {
		v.window.Close()
		return nil, err
	}
	v.roots = scene.ActiveRoots(v.doc)

	v.meshes, err = scene.NewMeshes(v.doc)
	if err != nil {
		v.window.Close()
		return nil, err
	}
	v.renderer, err = scene.NewRenderer(v.meshes)
	if err != nil {
		v.meshes.Destroy()
		v.window.Close()
		return nil, err
	}

	v.input = input.New()
	v.state = input.NewSDLState()
	v.width, v.height = v.window.GetSize()

	v.setupCamera()
	return v, nil
}

// setupCamera sizes the projection from the scene bounds and seeds the
// first-person controller, either with the user's explicit look-at or
// with the bounds-derived default.
func (v *Viewer) setupCamera() {
	bounds := scene.Bounds(v.doc)
	v.fovY, v.near, v.far = scene.ProjectionParams(bounds)
	v.updateProjection()

	maxDistance := bounds.Diagonal().Length()
	if maxDistance <= 0 {
		maxDistance = 100
	}
	v.speed = 0.5 * maxDistance

	var cam camera.Camera
	if la := v.cfg.LookAt; la != nil {
		cam = camera.New(
			math.Vec3{X: la[0], Y: la[1], Z: la[2]},
			math.Vec3{X: la[3], Y: la[4], Z: la[5]},
			math.Vec3{X: la[6], Y: la[7], Z: la[8]},
		)
		logger.Info("using camera from command line")
	} else {
		cam = scene.DefaultCamera(bounds)
		logger.Debug("default camera from scene bounds",
			zap.Any("eye", cam.Eye), zap.Any("center", cam.Center))
	}

	fp := camera.NewFirstPerson(v.state, v.speed)
	fp.SetCamera(cam)
	v.controller = fp
	v.mode = ModeFirstPerson
}

func (v *Viewer) updateProjection() {
	aspect := float32(v.width) / float32(v.height)
	v.proj = math.Perspective(v.fovY, aspect, v.near, v.far)
}

// resize retargets the viewport and projection to a new render size.
func (v *Viewer) resize(width, height int) {
	v.width, v.height = width, height
	v.updateProjection()
}

// stillMode reports whether the run should produce a single image
// instead of an interactive window.
func stillMode(cfg *config.Config) bool {
	return cfg.Output != ""
}

// CurrentCamera returns the camera the next frame will use. Exposed
// for an overlay.
func (v *Viewer) CurrentCamera() camera.Camera {
	return v.controller.Camera()
}

// Light returns the current light settings.
func (v *Viewer) Light() scene.Light {
	return v.light
}

// SetLight replaces the light settings.
func (v *Viewer) SetLight(l scene.Light) {
	v.light = l
}

// Mode returns the active controller mode.
func (v *Viewer) Mode() ControllerMode {
	return v.mode
}

// SetMode switches the camera controller, carrying the current camera
// over so the view does not jump.
func (v *Viewer) SetMode(mode ControllerMode) {
	if mode == v.mode {
		return
	}
	cam := v.controller.Camera()
	switch mode {
	case ModeTrackball:
		v.controller = camera.NewTrackball(v.state)
	default:
		v.controller = camera.NewFirstPerson(v.state, v.speed)
		mode = ModeFirstPerson
	}
	v.controller.SetCamera(cam)
	v.mode = mode
	v.window.SetTitle(windowTitle(v.cfg.ScenePath, mode))
	logger.Debug("controller switched", zap.Int("mode", int(mode)))
}

// windowTitle names the loaded scene and the active controller.
func windowTitle(scenePath string, mode ControllerMode) string {
	name := "fly"
	if mode == ModeTrackball {
		name = "orbit"
	}
	return "gltf-viewer - " + filepath.Base(scenePath) + " [" + name + "]"
}

// Run renders until the window closes, or renders exactly one
// offscreen frame when an output path is configured.
func (v *Viewer) Run() error {
	if stillMode(v.cfg) {
		return v.renderStill()
	}
	return v.loop()
}

// renderStill draws one frame into an offscreen framebuffer sized to
// the configured dimensions and encodes it to the output path. The
// interactive loop is never entered.
func (v *Viewer) renderStill() error {
	w, h := int32(v.cfg.Graphics.Width), int32(v.cfg.Graphics.Height)
	fb, err := framebuffer.New(w, h)
	if err != nil {
		return err
	}
	defer fb.Destroy()

	// The offscreen target has its own size; viewport and aspect must
	// follow it, not the window's drawable size.
	v.resize(int(w), int(h))

	fb.Bind()
	v.drawFrame()
	pixels := fb.ReadPixels()
	fb.Unbind()

	if err := capture.Write(v.cfg.Output, pixels, int(w), int(h)); err != nil {
		return fmt.Errorf("writing output image: %w", err)
	}
	logger.Info("still image written", zap.String("path", v.cfg.Output))
	return nil
}

func (v *Viewer) loop() error {
	logger.Info("entering render loop")
	lastTime := time.Now()

	for {
		if v.input.Update() {
			return nil
		}
		acts := interpretEvents(v.input.Events())
		if acts.quit {
			return nil
		}
		v.applyActions(acts)

		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		v.drawFrame()
		if acts.screenshot {
			v.captureWindow()
		}
		v.window.SwapBuffers()

		v.controller.Update(dt)
	}
}

// frameActions is the per-frame interpretation of the event queue.
type frameActions struct {
	quit       bool
	resized    bool
	width      int
	height     int
	switchMode bool
	toggleLamp bool
	screenshot bool
}

// interpretEvents folds the event queue into the actions the loop
// applies this frame: Escape quits, Tab switches the controller, L
// toggles light-from-camera, F12 captures a screenshot.
func interpretEvents(events []input.Event) frameActions {
	var acts frameActions
	for _, e := range events {
		switch e.Type {
		case input.EventQuit:
			acts.quit = true
		case input.EventWindowResize:
			acts.resized = true
			acts.width, acts.height = e.Width, e.Height
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				acts.quit = true
			case sdl.SCANCODE_TAB:
				acts.switchMode = true
			case sdl.SCANCODE_L:
				acts.toggleLamp = true
			case sdl.SCANCODE_F12:
				acts.screenshot = true
			}
		}
	}
	return acts
}

func (v *Viewer) applyActions(acts frameActions) {
	if acts.resized && acts.width > 0 && acts.height > 0 {
		v.resize(acts.width, acts.height)
	}
	if acts.switchMode {
		if v.mode == ModeFirstPerson {
			v.SetMode(ModeTrackball)
		} else {
			v.SetMode(ModeFirstPerson)
		}
	}
	if acts.toggleLamp {
		v.light.FromCamera = !v.light.FromCamera
	}
}

// drawFrame walks the active scene with the current camera and
// executes every emitted draw command.
func (v *Viewer) drawFrame() {
	view := v.controller.Camera().ViewMatrix()
	v.renderer.BeginFrame(int32(v.width), int32(v.height), v.light, view)
	scene.Walk(v.doc, v.roots, math.Identity(), view, v.proj, v.renderer.Execute)
}

// captureWindow saves the just-rendered back buffer to a timestamped
// screenshot file.
func (v *Viewer) captureWindow() {
	w, h := v.window.GetSize()
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path := capture.ScreenshotPath("screenshots")
	if err := capture.Write(path, pixels, w, h); err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	if v.renderer != nil {
		v.renderer.Destroy()
	}
	if v.meshes != nil {
		v.meshes.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}
