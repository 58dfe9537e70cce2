// Package renderer draws particle clouds and the scene backdrop with raylib.
package renderer

import (
	_ "embed"
	"image/color"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/morph/morph"
)

//go:embed shaders/morph.vs
var morphVS string

//go:embed shaders/morph.fs
var morphFS string

// MorphRenderer draws one particle cloud as additive point sprites.
// Current positions go in the vertex slot, target positions in the normal
// slot, and (size, noise) pairs in the texcoord slots. The GPU buffers are
// rebuilt only when the current/target pair changes; per-frame state travels
// as uniforms.
type MorphRenderer struct {
	shader        rl.Shader
	progressLoc   int32
	timeLoc       int32
	sizeLoc       int32
	staggerLoc    int32
	resolutionLoc int32
	colorALoc     int32
	colorBLoc     int32

	model  rl.Model
	loaded bool
	bound  [2]int

	initialized bool
}

// NewMorphRenderer creates a new morph renderer.
func NewMorphRenderer() *MorphRenderer {
	return &MorphRenderer{}
}

// Init initializes the renderer (must be called after raylib window is created).
func (r *MorphRenderer) Init() {
	if r.initialized {
		return
	}

	r.shader = rl.LoadShaderFromMemory(morphVS, morphFS)
	r.progressLoc = rl.GetShaderLocation(r.shader, "uProgress")
	r.timeLoc = rl.GetShaderLocation(r.shader, "uTime")
	r.sizeLoc = rl.GetShaderLocation(r.shader, "uSize")
	r.staggerLoc = rl.GetShaderLocation(r.shader, "uStagger")
	r.resolutionLoc = rl.GetShaderLocation(r.shader, "uResolution")
	r.colorALoc = rl.GetShaderLocation(r.shader, "uColorA")
	r.colorBLoc = rl.GetShaderLocation(r.shader, "uColorB")

	r.initialized = true
}

// Bind uploads the engine's current/target pair if it differs from the one
// on the GPU. It reports whether an upload happened.
func (r *MorphRenderer) Bind(e *morph.Engine) bool {
	if !r.initialized {
		r.Init()
	}
	cur, tgt := e.Pair()
	if r.loaded && r.bound == [2]int{cur, tgt} {
		return false
	}
	if r.loaded {
		rl.UnloadModel(r.model)
	}

	set := e.Set()
	mesh := buildMesh(
		set.Shapes[cur].Positions, set.Shapes[tgt].Positions,
		set.Sizes[cur], set.Sizes[tgt], e.Noise(cur),
	)
	r.model = rl.LoadModelFromMesh(mesh)
	r.model.GetMaterials()[0].Shader = r.shader
	r.bound = [2]int{cur, tgt}
	r.loaded = true
	return true
}

// Draw renders the bound cloud with the given uniforms and model matrix.
// Must be called between BeginCamera and EndMode3D.
func (r *MorphRenderer) Draw(u morph.Uniforms, model mgl32.Mat4) {
	if !r.loaded {
		return
	}

	rl.SetShaderValue(r.shader, r.progressLoc, []float32{u.Progress}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.shader, r.timeLoc, []float32{u.Time}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.shader, r.sizeLoc, []float32{u.Size}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.shader, r.staggerLoc, []float32{u.Stagger}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.shader, r.resolutionLoc, u.Resolution[:], rl.ShaderUniformVec2)
	rl.SetShaderValue(r.shader, r.colorALoc, colorVec3(u.ColorA), rl.ShaderUniformVec3)
	rl.SetShaderValue(r.shader, r.colorBLoc, colorVec3(u.ColorB), rl.ShaderUniformVec3)

	r.model.Transform = rlMatrix(model)

	// Additive, no depth writes: overlapping sprites accumulate
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DisableDepthMask()
	rl.DrawModelPoints(r.model, rl.NewVector3(0, 0, 0), 1, rl.White)
	rl.EnableDepthMask()
	rl.EndBlendMode()
}

// Unload frees GPU resources.
func (r *MorphRenderer) Unload() {
	if r.loaded {
		rl.UnloadModel(r.model)
		r.loaded = false
	}
	if r.initialized {
		rl.UnloadShader(r.shader)
		r.initialized = false
	}
}

// buildMesh packs a current/target pair into a mesh whose arrays live in
// raylib-owned memory, so UnloadModel can free them. Point drawing walks
// triangles, so the vertex count is padded to a multiple of three with
// zero-size copies of the last slot.
func buildMesh(cur, tgt []mgl32.Vec3, curSize, tgtSize, noise []float32) rl.Mesh {
	n := len(cur)
	count := n + (3-n%3)%3

	verts := allocFloats(count * 3)
	normals := allocFloats(count * 3)
	tex := allocFloats(count * 2)
	tex2 := allocFloats(count * 2)

	for i := 0; i < count; i++ {
		j := i
		if j >= n {
			j = n - 1
		}
		copy(verts[i*3:i*3+3], cur[j][:])
		copy(normals[i*3:i*3+3], tgt[j][:])
		if i < n {
			tex[i*2] = curSize[j]
			tex2[i*2] = tgtSize[j]
		}
		tex[i*2+1] = noise[j]
	}

	mesh := rl.Mesh{
		VertexCount:   int32(count),
		TriangleCount: int32(count / 3),
		Vertices:      &verts[0],
		Normals:       &normals[0],
		Texcoords:     &tex[0],
		Texcoords2:    &tex2[0],
	}
	rl.UploadMesh(&mesh, false)
	return mesh
}

// rlMatrix converts a column-major mgl32 matrix; raylib stores columns in
// the same order.
func rlMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func allocFloats(n int) []float32 {
	p := rl.MemAlloc(uint32(n * 4))
	return unsafe.Slice((*float32)(p), n)
}

func colorVec3(c color.RGBA) []float32 {
	return []float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
