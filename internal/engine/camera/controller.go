package camera

import (
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// Controller owns the current camera and advances it from polled input.
// Implementations are switchable at runtime: construct the new variant
// and seed it with the old camera via SetCamera.
type Controller interface {
	// Camera returns the current camera value.
	Camera() Camera
	// SetCamera replaces the current camera value.
	SetCamera(c Camera)
	// Update advances the camera by one frame of input. elapsed is in
	// seconds. Returns true if the camera changed.
	Update(elapsed float32) bool
}

// worldUp is the fixed world up axis used for pan and orbit rotations.
var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}
