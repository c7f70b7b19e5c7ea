package scene

import (
	"sort"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// identity is the glTF default node matrix. A node carrying it falls
// back to its translation/rotation/scale fields.
var identity = [16]float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// DrawCommand is one primitive to draw, with the matrices the shader
// needs. Node, Mesh and Primitive are document indices; the device
// layer resolves them to the bound vertex source.
type DrawCommand struct {
	Node      int
	Mesh      int
	Primitive int

	ModelView     math.Mat4
	ModelViewProj math.Mat4
	Normal        math.Mat4
}

// LocalMatrix resolves a node's local transform. An explicit matrix
// wins; otherwise translation, rotation and scale compose as T*R*S.
func LocalMatrix(node *gltf.Node) math.Mat4 {
	if node.Matrix != identity {
		var m math.Mat4
		for i, v := range node.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := math.Translate(
		float32(node.Translation[0]),
		float32(node.Translation[1]),
		float32(node.Translation[2]),
	)
	r := math.Quat{
		X: float32(node.Rotation[0]),
		Y: float32(node.Rotation[1]),
		Z: float32(node.Rotation[2]),
		W: float32(node.Rotation[3]),
	}.ToMat4()
	s := math.Scale(
		float32(node.Scale[0]),
		float32(node.Scale[1]),
		float32(node.Scale[2]),
	)
	return t.Mul(r).Mul(s)
}

// Walk traverses the node forest depth first, roots in list order then
// children in list order, and emits one DrawCommand per primitive of
// every node carrying a mesh. Nodes without meshes still recurse, they
// group their children. parent is the world transform above the roots,
// identity for a plain scene.
//
// The document is trusted to be loader-validated: out-of-range node or
// mesh indices fault instead of being re-checked here.
func Walk(doc *gltf.Document, roots []int, parent, view, proj math.Mat4, emit func(DrawCommand)) {
	for _, root := range roots {
		walkNode(doc, root, parent, view, proj, emit)
	}
}

func walkNode(doc *gltf.Document, nodeIdx int, parent, view, proj math.Mat4, emit func(DrawCommand)) {
	node := doc.Nodes[nodeIdx]
	world := parent.Mul(LocalMatrix(node))

	if node.Mesh != nil {
		meshIdx := int(*node.Mesh)
		mv := view.Mul(world)
		mvp := proj.Mul(mv)
		normal := mv.Inverse().Transpose()

		for p := range doc.Meshes[meshIdx].Primitives {
			emit(DrawCommand{
				Node:          nodeIdx,
				Mesh:          meshIdx,
				Primitive:     p,
				ModelView:     mv,
				ModelViewProj: mvp,
				Normal:        normal,
			})
		}
	}

	for _, child := range node.Children {
		walkNode(doc, int(child), world, view, proj, emit)
	}
}

// DrawInfo returns the element count and draw mode for a primitive.
// An indexed primitive draws its index accessor's count; otherwise
// the count comes from the lexicographically first attribute. That
// fallback is a fixed policy, not an arbitrary pick: the attribute
// order must be deterministic across runs.
func DrawInfo(doc *gltf.Document, prim *gltf.Primitive) (count int32, indexed bool) {
	if prim.Indices != nil {
		return int32(doc.Accessors[int(*prim.Indices)].Count), true
	}

	names := make([]string, 0, len(prim.Attributes))
	for name := range prim.Attributes {
		names = append(names, name)
	}
	if len(names) == 0 {
		return 0, false
	}
	sort.Strings(names)
	return int32(doc.Accessors[int(prim.Attributes[names[0]])].Count), false
}
