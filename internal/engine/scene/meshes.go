package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/logger"
)

// vertexStride is pos3 + nrm3 + uv2, in bytes.
const vertexStride = 8 * 4

// primitiveBuffers is the GPU form of one glTF primitive.
type primitiveBuffers struct {
	vao     uint32
	vbo     uint32
	ebo     uint32
	count   int32
	indexed bool
	mode    uint32
}

// Meshes owns the GPU buffers for every primitive in a document,
// addressable by mesh and primitive index, mirroring the indices a
// DrawCommand carries.
type Meshes struct {
	meshes [][]primitiveBuffers
}

// NewMeshes uploads every primitive of the document to the GPU.
// Vertex data is interleaved position, normal and texture coordinate;
// primitives without normals get a flat up normal and positions
// double as texture coordinates when none are present.
func NewMeshes(doc *gltf.Document) (*Meshes, error) {
	m := &Meshes{
		meshes: make([][]primitiveBuffers, len(doc.Meshes)),
	}

	for mi, mesh := range doc.Meshes {
		m.meshes[mi] = make([]primitiveBuffers, len(mesh.Primitives))
		for pi, prim := range mesh.Primitives {
			buf, err := uploadPrimitive(doc, prim)
			if err != nil {
				m.Destroy()
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			m.meshes[mi][pi] = buf
		}
	}

	logger.Debug("meshes uploaded", zap.Int("meshes", len(doc.Meshes)))
	return m, nil
}

func uploadPrimitive(doc *gltf.Document, prim *gltf.Primitive) (primitiveBuffers, error) {
	var buf primitiveBuffers

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return buf, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[int(posIdx)], nil)
	if err != nil {
		return buf, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if normalIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[int(normalIdx)], nil)
		if err != nil {
			return buf, fmt.Errorf("read normals: %w", err)
		}
	}

	var texCoords [][2]float32
	if texIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		texCoords, err = modeler.ReadTextureCoord(doc, doc.Accessors[int(texIdx)], nil)
		if err != nil {
			return buf, fmt.Errorf("read texture coordinates: %w", err)
		}
	}

	vertexData := make([]float32, 0, len(positions)*8)
	for i, pos := range positions {
		vertexData = append(vertexData, pos[0], pos[1], pos[2])

		if i < len(normals) {
			vertexData = append(vertexData, normals[i][0], normals[i][1], normals[i][2])
		} else {
			vertexData = append(vertexData, 0, 1, 0)
		}

		if i < len(texCoords) {
			vertexData = append(vertexData, texCoords[i][0], texCoords[i][1])
		} else {
			vertexData = append(vertexData, (pos[0]+1)/2, (pos[1]+1)/2)
		}
	}

	gl.GenVertexArrays(1, &buf.vao)
	gl.BindVertexArray(buf.vao)

	gl.GenBuffers(1, &buf.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertexData)*4, gl.Ptr(vertexData), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 6*4)
	gl.EnableVertexAttribArray(2)

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[int(*prim.Indices)], nil)
		if err != nil {
			gl.BindVertexArray(0)
			return buf, fmt.Errorf("read indices: %w", err)
		}
		gl.GenBuffers(1, &buf.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	buf.count, buf.indexed = DrawInfo(doc, prim)
	buf.mode = glMode(prim.Mode)

	gl.BindVertexArray(0)
	return buf, nil
}

// glMode maps a glTF topology to the OpenGL draw mode.
func glMode(mode gltf.PrimitiveMode) uint32 {
	switch mode {
	case gltf.PrimitivePoints:
		return gl.POINTS
	case gltf.PrimitiveLines:
		return gl.LINES
	case gltf.PrimitiveLineLoop:
		return gl.LINE_LOOP
	case gltf.PrimitiveLineStrip:
		return gl.LINE_STRIP
	case gltf.PrimitiveTriangleStrip:
		return gl.TRIANGLE_STRIP
	case gltf.PrimitiveTriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

// primitive returns the GPU buffers for a mesh/primitive pair.
func (m *Meshes) primitive(mesh, prim int) *primitiveBuffers {
	return &m.meshes[mesh][prim]
}

// Destroy releases all GPU buffers.
func (m *Meshes) Destroy() {
	for _, mesh := range m.meshes {
		for i := range mesh {
			buf := &mesh[i]
			if buf.vao != 0 {
				gl.DeleteVertexArrays(1, &buf.vao)
			}
			if buf.vbo != 0 {
				gl.DeleteBuffers(1, &buf.vbo)
			}
			if buf.ebo != 0 {
				gl.DeleteBuffers(1, &buf.ebo)
			}
		}
	}
	m.meshes = nil
}
