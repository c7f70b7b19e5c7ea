// Package camera implements the viewer camera and its controllers.
package camera

import (
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// Camera is an immutable look-at camera. Every operation returns a
// fresh value; a camera handed to the renderer is never mutated.
type Camera struct {
	Eye    math.Vec3
	Center math.Vec3
	Up     math.Vec3
}

// New builds a camera from eye, center and an up hint. The stored up
// vector is re-derived so that front, left and up form a right-handed
// orthonormal basis even when the hint is not orthogonal to the view
// direction. The hint must not be collinear with center-eye.
func New(eye, center, up math.Vec3) Camera {
	front := center.Sub(eye)
	left := up.Cross(front)
	return Camera{
		Eye:    eye,
		Center: center,
		Up:     front.Cross(left).Normalize(),
	}
}

// ViewMatrix returns the world-to-camera transform.
func (c Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Center, c.Up)
}

// Front returns the unit vector from eye toward center.
func (c Camera) Front() math.Vec3 {
	return c.Center.Sub(c.Eye).Normalize()
}

// Left returns the unit vector pointing to the camera's left.
func (c Camera) Left() math.Vec3 {
	return c.Up.Cross(c.Front()).Normalize()
}

// UpVector returns the camera's up axis.
func (c Camera) UpVector() math.Vec3 {
	return c.Up
}

// MoveLocal translates eye and center together along the camera's own
// axes: truckLeft along left, pedestalUp along up, dollyIn along front.
func (c Camera) MoveLocal(truckLeft, pedestalUp, dollyIn float32) Camera {
	t := c.Left().Scale(truckLeft).
		Add(c.Up.Scale(pedestalUp)).
		Add(c.Front().Scale(dollyIn))
	return Camera{
		Eye:    c.Eye.Add(t),
		Center: c.Center.Add(t),
		Up:     c.Up,
	}
}

// RotateLocal rotates the camera in place: roll about the front axis,
// then tilt about the local left axis and pan about the (rolled) up
// axis. The eye stays put and the eye-to-center distance is preserved.
func (c Camera) RotateLocal(rollRight, tiltDown, panLeft float32) Camera {
	up := math.RotateAxis(c.Front(), rollRight).TransformDirection(c.Up)
	rolled := Camera{Eye: c.Eye, Center: c.Center, Up: up}

	rot := math.RotateAxis(up, panLeft).Mul(math.RotateAxis(rolled.Left(), tiltDown))
	front := rot.TransformDirection(c.Center.Sub(c.Eye))
	return Camera{
		Eye:    c.Eye,
		Center: c.Eye.Add(front),
		Up:     up,
	}
}

// RotateWorld rotates the view direction and the up axis about an
// arbitrary world-space axis through the eye. The eye stays put.
func (c Camera) RotateWorld(angle float32, axis math.Vec3) Camera {
	rot := math.RotateAxis(axis, angle)
	front := rot.TransformDirection(c.Center.Sub(c.Eye))
	return Camera{
		Eye:    c.Eye,
		Center: c.Eye.Add(front),
		Up:     rot.TransformDirection(c.Up),
	}
}
