package scene

import (
	stdmath "math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/gltf-viewer/internal/engine/camera"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// AABB is a world-space axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
	ok  bool
}

// Valid reports whether the box encloses at least one point.
func (b AABB) Valid() bool {
	return b.ok
}

// Center returns the midpoint of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Diagonal returns the min-to-max corner vector.
func (b AABB) Diagonal() math.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b *AABB) extend(p math.Vec3) {
	if !b.ok {
		b.Min, b.Max = p, p
		b.ok = true
		return
	}
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}

// Bounds computes the world-space bounding box of every scene in the
// document. It runs once after load; the result sizes the default
// camera and the projection planes.
func Bounds(doc *gltf.Document) AABB {
	var box AABB
	for _, sc := range doc.Scenes {
		for _, root := range sc.Nodes {
			boundsNode(doc, int(root), math.Identity(), &box)
		}
	}
	return box
}

func boundsNode(doc *gltf.Document, nodeIdx int, parent math.Mat4, box *AABB) {
	node := doc.Nodes[nodeIdx]
	world := parent.Mul(LocalMatrix(node))

	if node.Mesh != nil {
		for _, prim := range doc.Meshes[int(*node.Mesh)].Primitives {
			extendPrimitive(doc, prim, world, box)
		}
	}

	for _, child := range node.Children {
		boundsNode(doc, int(child), world, box)
	}
}

// extendPrimitive grows the box by the primitive's POSITION extent.
// The accessor's min/max are used when the file carries them, which
// well-formed exporters always do for positions; otherwise the
// positions are read and scanned.
func extendPrimitive(doc *gltf.Document, prim *gltf.Primitive, world math.Mat4, box *AABB) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return
	}
	acc := doc.Accessors[int(posIdx)]

	if len(acc.Min) == 3 && len(acc.Max) == 3 {
		lo := math.Vec3{X: float32(acc.Min[0]), Y: float32(acc.Min[1]), Z: float32(acc.Min[2])}
		hi := math.Vec3{X: float32(acc.Max[0]), Y: float32(acc.Max[1]), Z: float32(acc.Max[2])}
		// All eight corners: the world transform may rotate the box.
		for i := 0; i < 8; i++ {
			corner := math.Vec3{X: lo.X, Y: lo.Y, Z: lo.Z}
			if i&1 != 0 {
				corner.X = hi.X
			}
			if i&2 != 0 {
				corner.Y = hi.Y
			}
			if i&4 != 0 {
				corner.Z = hi.Z
			}
			box.extend(world.TransformVec3(corner))
		}
		return
	}

	positions, err := modeler.ReadPosition(doc, acc, nil)
	if err != nil {
		return
	}
	for _, p := range positions {
		box.extend(world.TransformVec3(math.Vec3{X: p[0], Y: p[1], Z: p[2]}))
	}
}

// DefaultCamera derives a camera that frames the bounds: looking at
// the box center from one diagonal away. A scene flat in Z is instead
// viewed from the side, two diagonal-cross-up lengths out.
func DefaultCamera(b AABB) camera.Camera {
	up := math.Vec3{Y: 1}
	if !b.Valid() {
		return camera.New(math.Vec3{}, math.Vec3{Z: -1}, up)
	}

	center := b.Center()
	diag := b.Diagonal()
	var eye math.Vec3
	if diag.Z > 0 {
		eye = center.Add(diag)
	} else {
		eye = center.Add(diag.Cross(up).Scale(2))
	}
	return camera.New(eye, center, up)
}

// ProjectionParams sizes the perspective projection from the scene
// extent: near and far hug the scene so depth precision is not wasted.
func ProjectionParams(b AABB) (fovY, near, far float32) {
	maxDistance := b.Diagonal().Length()
	if maxDistance <= 0 {
		maxDistance = 100
	}
	return 70 * stdmath.Pi / 180, 0.001 * maxDistance, 1.5 * maxDistance
}
