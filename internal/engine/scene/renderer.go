package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gltf-viewer/internal/engine/shader"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

const vertexShaderSrc = `#version 410 core

layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aTexCoords;

uniform mat4 uModelViewProjMatrix;
uniform mat4 uModelViewMatrix;
uniform mat4 uNormalMatrix;

out vec3 vViewSpacePosition;
out vec3 vViewSpaceNormal;
out vec2 vTexCoords;

void main() {
    vViewSpacePosition = vec3(uModelViewMatrix * vec4(aPosition, 1.0));
    vViewSpaceNormal = normalize(vec3(uNormalMatrix * vec4(aNormal, 0.0)));
    vTexCoords = aTexCoords;
    gl_Position = uModelViewProjMatrix * vec4(aPosition, 1.0);
}
`

const fragmentShaderSrc = `#version 410 core

in vec3 vViewSpacePosition;
in vec3 vViewSpaceNormal;
in vec2 vTexCoords;

uniform vec3 uLightDirection;
uniform vec3 uLightIntensity;

out vec4 fColor;

const float INV_PI = 0.31830988618;

void main() {
    vec3 normal = normalize(vViewSpaceNormal);
    vec3 diffuse = vec3(INV_PI) * uLightIntensity *
        max(0.0, dot(normal, uLightDirection));
    fColor = vec4(diffuse, 1.0);
}
`

// Renderer executes draw commands against the GPU buffers uploaded
// by NewMeshes, with a diffuse directional lighting program.
type Renderer struct {
	program uint32
	meshes  *Meshes

	locMVP            int32
	locMV             int32
	locNormal         int32
	locLightDirection int32
	locLightIntensity int32
}

// NewRenderer compiles the lighting program. The meshes must outlive
// the renderer.
func NewRenderer(meshes *Meshes) (*Renderer, error) {
	program, err := shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling scene program: %w", err)
	}

	return &Renderer{
		program:           program,
		meshes:            meshes,
		locMVP:            shader.MustGetUniform(program, "uModelViewProjMatrix"),
		locMV:             shader.MustGetUniform(program, "uModelViewMatrix"),
		locNormal:         shader.MustGetUniform(program, "uNormalMatrix"),
		locLightDirection: shader.MustGetUniform(program, "uLightDirection"),
		locLightIntensity: shader.MustGetUniform(program, "uLightIntensity"),
	}, nil
}

// BeginFrame prepares the render target for a new frame and binds the
// lighting state. The light direction is taken in view space.
func (r *Renderer) BeginFrame(width, height int32, light Light, view math.Mat4) {
	gl.Viewport(0, 0, width, height)
	gl.ClearColor(0.1, 0.1, 0.1, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	gl.UseProgram(r.program)

	dir := light.ViewSpaceDirection(view)
	gl.Uniform3f(r.locLightDirection, dir.X, dir.Y, dir.Z)
	gl.Uniform3f(r.locLightIntensity, light.Intensity.X, light.Intensity.Y, light.Intensity.Z)
}

// Execute draws one command. The command's mesh and primitive indices
// select the vertex source; the matrices go to the shader as-is.
func (r *Renderer) Execute(cmd DrawCommand) {
	mvp, mv, normal := cmd.ModelViewProj, cmd.ModelView, cmd.Normal
	gl.UniformMatrix4fv(r.locMVP, 1, false, mvp.Ptr())
	gl.UniformMatrix4fv(r.locMV, 1, false, mv.Ptr())
	gl.UniformMatrix4fv(r.locNormal, 1, false, normal.Ptr())

	buf := r.meshes.primitive(cmd.Mesh, cmd.Primitive)
	gl.BindVertexArray(buf.vao)
	if buf.indexed {
		gl.DrawElements(buf.mode, buf.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(buf.mode, 0, buf.count)
	}
	gl.BindVertexArray(0)
}

// Destroy releases the program. Mesh buffers are owned by Meshes.
func (r *Renderer) Destroy() {
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
