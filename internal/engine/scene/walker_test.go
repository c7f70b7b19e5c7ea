package scene

import (
	stdmath "math"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/gltf-viewer/pkg/math"
)

const eps = 1e-5

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func matNear(a, b math.Mat4) bool {
	for i := range a {
		if absf(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// defaultNode returns a node with the glTF default transform fields,
// as the loader produces for a node that does not set them.
func defaultNode() *gltf.Node {
	return &gltf.Node{
		Matrix: [16]float64{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		},
		Rotation: [4]float64{0, 0, 0, 1},
		Scale:    [3]float64{1, 1, 1},
	}
}

func meshNode(mesh int) *gltf.Node {
	n := defaultNode()
	n.Mesh = gltf.Index(mesh)
	return n
}

// triangleDoc is a minimal document: one root node with one mesh of
// one indexed triangle primitive.
func triangleDoc() *gltf.Document {
	return &gltf.Document{
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
		Nodes:  []*gltf.Node{meshNode(0)},
		Meshes: []*gltf.Mesh{{Primitives: []*gltf.Primitive{{
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: 0},
			Indices:    gltf.Index(1),
		}}}},
		Accessors: []*gltf.Accessor{{Count: 3}, {Count: 3}},
	}
}

func collect(doc *gltf.Document, view, proj math.Mat4) []DrawCommand {
	var cmds []DrawCommand
	Walk(doc, ActiveRoots(doc), math.Identity(), view, proj, func(c DrawCommand) {
		cmds = append(cmds, c)
	})
	return cmds
}

func TestWalkSingleTriangle(t *testing.T) {
	doc := triangleDoc()
	view := math.LookAt(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(1.2, 1.5, 0.1, 100)

	cmds := collect(doc, view, proj)
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	cmd := cmds[0]

	// Identity local transform: model-view is the view matrix itself.
	if !matNear(cmd.ModelView, view) {
		t.Error("modelView should equal the view matrix for an identity root")
	}
	if !matNear(cmd.ModelViewProj, proj.Mul(view)) {
		t.Error("modelViewProj should be proj * modelView")
	}

	count, indexed := DrawInfo(doc, doc.Meshes[cmd.Mesh].Primitives[cmd.Primitive])
	if count != 3 || !indexed {
		t.Errorf("draw info = (%d, %v), want (3, true)", count, indexed)
	}
}

func TestWalkComposesParentTransforms(t *testing.T) {
	parent := meshNode(0)
	parent.Translation = [3]float64{1, 0, 0}
	parent.Children = []int{1}
	child := meshNode(0)
	child.Translation = [3]float64{0, 2, 0}

	doc := triangleDoc()
	doc.Nodes = []*gltf.Node{parent, child}

	cmds := collect(doc, math.Identity(), math.Identity())
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}

	// With an identity view, modelView is the world transform.
	if !matNear(cmds[0].ModelView, math.Translate(1, 0, 0)) {
		t.Error("parent world transform should be its local translation")
	}
	if !matNear(cmds[1].ModelView, math.Translate(1, 2, 0)) {
		t.Error("child world transform should compose parent then child")
	}
}

func TestWalkDepthFirstOrder(t *testing.T) {
	// Roots [0, 1]; node 0 has children [2, 3]; node 2 has child [4].
	// Expected visit order: 0, 2, 4, 3, 1.
	nodes := make([]*gltf.Node, 5)
	for i := range nodes {
		nodes[i] = meshNode(0)
	}
	nodes[0].Children = []int{2, 3}
	nodes[2].Children = []int{4}

	doc := triangleDoc()
	doc.Nodes = nodes
	doc.Scenes = []*gltf.Scene{{Nodes: []int{0, 1}}}

	cmds := collect(doc, math.Identity(), math.Identity())
	want := []int{0, 2, 4, 3, 1}
	if len(cmds) != len(want) {
		t.Fatalf("got %d commands, want %d", len(cmds), len(want))
	}
	for i, cmd := range cmds {
		if cmd.Node != want[i] {
			t.Errorf("visit %d = node %d, want %d", i, cmd.Node, want[i])
		}
	}
}

func TestWalkGroupingNodesRecurse(t *testing.T) {
	// Root without a mesh still descends into its children.
	group := defaultNode()
	group.Children = []int{1}

	doc := triangleDoc()
	doc.Nodes = []*gltf.Node{group, meshNode(0)}

	cmds := collect(doc, math.Identity(), math.Identity())
	if len(cmds) != 1 || cmds[0].Node != 1 {
		t.Fatalf("got %v, want exactly the child's command", cmds)
	}
}

func TestWalkEmitsPerPrimitive(t *testing.T) {
	doc := triangleDoc()
	doc.Meshes[0].Primitives = append(doc.Meshes[0].Primitives, &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{gltf.POSITION: 0},
	})

	cmds := collect(doc, math.Identity(), math.Identity())
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want one per primitive", len(cmds))
	}
	if cmds[0].Primitive != 0 || cmds[1].Primitive != 1 {
		t.Error("primitive indices should follow mesh order")
	}
	if cmds[0].ModelView != cmds[1].ModelView {
		t.Error("primitives of one node share their matrices")
	}
}

func TestWalkNormalMatrix(t *testing.T) {
	node := meshNode(0)
	node.Scale = [3]float64{2, 1, 1}

	doc := triangleDoc()
	doc.Nodes = []*gltf.Node{node}

	cmds := collect(doc, math.Identity(), math.Identity())
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}

	// transpose(inverse(scale(2,1,1))) scales normals by 0.5 in X.
	want := math.Scale(0.5, 1, 1)
	if !matNear(cmds[0].Normal, want) {
		t.Errorf("normal matrix = %v, want %v", cmds[0].Normal, want)
	}
}

func TestLocalMatrixComposesTRS(t *testing.T) {
	s := stdmath.Sqrt2 / 2
	node := defaultNode()
	node.Translation = [3]float64{1, 2, 3}
	node.Rotation = [4]float64{0, 0, s, s} // 90 degrees about Z
	node.Scale = [3]float64{2, 2, 2}

	// Point (1,0,0): scale -> (2,0,0), rotate -> (0,2,0),
	// translate -> (1,4,3).
	got := LocalMatrix(node).TransformVec3(math.Vec3{X: 1})
	want := math.Vec3{X: 1, Y: 4, Z: 3}
	if absf(got.X-want.X) > eps || absf(got.Y-want.Y) > eps || absf(got.Z-want.Z) > eps {
		t.Errorf("transformed point = %v, want %v", got, want)
	}
}

func TestLocalMatrixExplicitMatrixWins(t *testing.T) {
	node := defaultNode()
	node.Matrix[12] = 5 // translation X in column-major layout
	node.Translation = [3]float64{9, 9, 9}

	got := LocalMatrix(node)
	if !matNear(got, math.Translate(5, 0, 0)) {
		t.Errorf("matrix = %v, want pure X translation by 5", got)
	}
}

func TestDrawInfoFallbackUsesFirstAttributeName(t *testing.T) {
	// No indices: the count comes from the lexicographically first
	// attribute, NORMAL here, not from POSITION.
	doc := &gltf.Document{
		Accessors: []*gltf.Accessor{{Count: 5}, {Count: 7}},
	}
	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: 0,
			gltf.NORMAL:   1,
		},
	}

	count, indexed := DrawInfo(doc, prim)
	if indexed {
		t.Error("primitive without indices must draw non-indexed")
	}
	if count != 7 {
		t.Errorf("count = %d, want 7 (NORMAL accessor)", count)
	}
}

func TestDrawInfoNoAttributes(t *testing.T) {
	doc := &gltf.Document{}
	count, indexed := DrawInfo(doc, &gltf.Primitive{})
	if count != 0 || indexed {
		t.Errorf("got (%d, %v), want (0, false)", count, indexed)
	}
}

func TestActiveRoots(t *testing.T) {
	doc := &gltf.Document{
		Scenes: []*gltf.Scene{
			{Nodes: []int{3, 4}},
			{Nodes: []int{7}},
		},
	}

	// No designated default: first scene.
	if got := ActiveRoots(doc); len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("ActiveRoots = %v, want [3 4]", got)
	}

	doc.Scene = gltf.Index(1)
	if got := ActiveRoots(doc); len(got) != 1 || got[0] != 7 {
		t.Errorf("ActiveRoots = %v, want [7]", got)
	}

	if got := ActiveRoots(&gltf.Document{}); got != nil {
		t.Errorf("ActiveRoots of empty document = %v, want nil", got)
	}
}
