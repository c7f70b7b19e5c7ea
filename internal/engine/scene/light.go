package scene

import (
	stdmath "math"

	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// Light is a directional light. Direction is expressed as spherical
// angles so an overlay can drive it with two sliders: Theta is the
// inclination from the +Y axis, Phi the azimuth around it.
type Light struct {
	Theta     float32
	Phi       float32
	Intensity math.Vec3
	// FromCamera pins the light to the view direction, which always
	// illuminates whatever the camera faces.
	FromCamera bool
}

// DefaultLight returns a white light shining straight down.
func DefaultLight() Light {
	return Light{
		Intensity: math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Direction returns the world-space unit direction toward the light.
func (l Light) Direction() math.Vec3 {
	sinTheta := float32(stdmath.Sin(float64(l.Theta)))
	cosTheta := float32(stdmath.Cos(float64(l.Theta)))
	sinPhi := float32(stdmath.Sin(float64(l.Phi)))
	cosPhi := float32(stdmath.Cos(float64(l.Phi)))
	return math.Vec3{
		X: sinTheta * cosPhi,
		Y: cosTheta,
		Z: sinTheta * sinPhi,
	}
}

// ViewSpaceDirection returns the unit light direction in camera space,
// ready for the shader. In FromCamera mode the light comes from the
// eye, straight along +Z in view space.
func (l Light) ViewSpaceDirection(view math.Mat4) math.Vec3 {
	if l.FromCamera {
		return math.Vec3{Z: 1}
	}
	return view.TransformDirection(l.Direction()).Normalize()
}
