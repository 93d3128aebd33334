package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"ml-universe/internal/topology"
)

const (
	sphereRings  = 12
	sphereSlices = 12
)

// cached holds mesh and material for a node shape. Created lazily on first Draw.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps node shapes to mesh+material. Meshes are created on first use so that GPU
// resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache       map[topology.Shape]cached
	shader      rl.Shader
	viewPos     [3]float32
	lightDir    [3]float32
	emissiveLoc int32
}

// NewRegistry returns a registry with no meshes.
func NewRegistry() *Registry {
	return &Registry{
		cache:       make(map[topology.Shape]cached),
		lightDir:    [3]float32{0.5, 1, 0.5},
		emissiveLoc: -1,
	}
}

// SetView sets camera position and direction-to-light for this frame.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

func (r *Registry) ensure(shape topology.Shape) (cached, bool) {
	if c, ok := r.cache[shape]; ok {
		return c, true
	}
	var mesh rl.Mesh
	switch shape {
	case topology.ShapeSphere, topology.ShapePoint:
		// Diameter 1 so the node size is the scale.
		mesh = rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	case topology.ShapeBox:
		mesh = rl.GenMeshCube(1, 1, 1)
	default:
		return cached{}, false
	}
	if r.shader.ID == 0 {
		r.shader = rl.LoadShaderFromMemory(litVS, litFS)
		if rl.IsShaderValid(r.shader) {
			r.emissiveLoc = rl.GetShaderLocation(r.shader, "emissive")
		}
	}
	mtl := rl.LoadMaterialDefault()
	if rl.IsShaderValid(r.shader) {
		mtl.Shader = r.shader
	}
	c := cached{mesh: mesh, mtl: mtl}
	r.cache[shape] = c
	return c, true
}

// Draw draws one node of the given shape at pos with diameter size. The current rlgl
// matrix applies, so callers push the diagram transform first.
func (r *Registry) Draw(shape topology.Shape, pos rl.Vector3, size float32, tint color.RGBA, emissive float32) {
	r.DrawScaled(shape, pos, rl.NewVector3(size, size, size), tint, emissive)
}

// DrawScaled is Draw with a separate extent per axis.
func (r *Registry) DrawScaled(shape topology.Shape, pos, size rl.Vector3, tint color.RGBA, emissive float32) {
	c, ok := r.ensure(shape)
	if !ok {
		return
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setUniforms(c.mtl.Shader, emissive)
	transform := rl.MatrixMultiply(rl.MatrixScale(size.X, size.Y, size.Z), rl.MatrixTranslate(pos.X, pos.Y, pos.Z))
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// setUniforms uses local arrays so cgo never sees Go-heap pointers that outlive the call.
func (r *Registry) setUniforms(shader rl.Shader, emissive float32) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{ambient[0], ambient[1], ambient[2], ambient[3]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if r.emissiveLoc >= 0 {
		rl.SetShaderValue(shader, r.emissiveLoc, []float32{emissive}, rl.ShaderUniformFloat)
	}
}

// Unload releases every cached mesh and the shared shader.
func (r *Registry) Unload() {
	for shape, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, shape)
	}
	if r.shader.ID != 0 {
		rl.UnloadShader(r.shader)
		r.shader = rl.Shader{}
	}
}

var ambient = [4]float32{0.2, 0.22, 0.26, 1.0}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	// Emissive adds the base color on top of the lit term, so glowing nodes stay bright
	// on the dark side.
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform float emissive;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * 0.75;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), 48.0) * 0.35 * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + vec3(spec) + colDiffuse.rgb * emissive * 0.5, colDiffuse.a);
}
`
)
