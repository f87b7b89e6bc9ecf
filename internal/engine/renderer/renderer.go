// Package renderer draws the gallery scene with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/plastic-gallery/internal/engine/camera"
	"github.com/Faultbox/plastic-gallery/internal/engine/lighting"
	"github.com/Faultbox/plastic-gallery/internal/engine/model"
	"github.com/Faultbox/plastic-gallery/internal/engine/renderer/shaders"
	"github.com/Faultbox/plastic-gallery/internal/engine/scene"
	"github.com/Faultbox/plastic-gallery/internal/engine/shader"
	"github.com/Faultbox/plastic-gallery/internal/logger"
	"github.com/Faultbox/plastic-gallery/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	meshProgram  *shader.Program
	labelProgram *shader.Program

	objects []*gpuObject
	labels  []*gpuLabel
	ground  *gpuMesh
	quad    *gpuQuad
	lights  *lighting.SpotLightBuffer
}

type gpuObject struct {
	object *scene.Object
	mesh   *gpuMesh
}

type gpuLabel struct {
	label   *scene.Label
	texture uint32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		lights: lighting.NewSpotLightBuffer(),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	if err := r.createPrograms(); err != nil {
		r.Close()
		return nil, err
	}
	r.quad = newQuad()

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

func (r *Renderer) createPrograms() error {
	var err error
	r.meshProgram, err = shader.Compile("mesh", shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return err
	}
	r.labelProgram, err = shader.Compile("label", shaders.LabelVertexShader, shaders.LabelFragmentShader)
	if err != nil {
		return err
	}

	logger.Debug("shader programs created",
		zap.Uint32("mesh", r.meshProgram.ID),
		zap.Uint32("label", r.labelProgram.ID))
	return nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, m := range uniqueMeshes(r.objects) {
		m.destroy()
	}
	r.objects = nil
	for _, l := range r.labels {
		gl.DeleteTextures(1, &l.texture)
	}
	r.labels = nil
	if r.ground != nil {
		r.ground.destroy()
		r.ground = nil
	}
	if r.quad != nil {
		r.quad.destroy()
		r.quad = nil
	}
	if r.meshProgram != nil {
		r.meshProgram.Delete()
		r.meshProgram = nil
	}
	if r.labelProgram != nil {
		r.labelProgram.Delete()
		r.labelProgram = nil
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ReadPixels returns the current back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// uniqueMeshes returns each mesh shared by objects once, in first-use order.
func uniqueMeshes(objects []*gpuObject) []*gpuMesh {
	seen := make(map[*gpuMesh]struct{}, len(objects))
	out := make([]*gpuMesh, 0, len(objects))
	for _, o := range objects {
		if _, ok := seen[o.mesh]; ok {
			continue
		}
		seen[o.mesh] = struct{}{}
		out = append(out, o.mesh)
	}
	return out
}

// Upload creates GPU resources for newly added scene items.
func (r *Renderer) Upload(b scene.Batch) {
	meshes := make(map[*model.Mesh]*gpuMesh, len(r.objects))
	for _, o := range r.objects {
		meshes[o.object.Mesh] = o.mesh
	}

	for _, obj := range b.Objects {
		m, ok := meshes[obj.Mesh]
		if !ok {
			m = uploadMesh(obj.Mesh)
			meshes[obj.Mesh] = m
		}
		r.objects = append(r.objects, &gpuObject{object: obj, mesh: m})
	}
	for _, l := range b.Labels {
		r.labels = append(r.labels, &gpuLabel{label: l, texture: uploadTexture(l.Image)})
	}

	if len(b.Objects)+len(b.Labels) > 0 {
		logger.Debug("scene items uploaded",
			zap.Int("objects", len(b.Objects)),
			zap.Int("labels", len(b.Labels)))
	}
}

// Render draws one frame of the scene from the camera.
func (r *Renderer) Render(sc *scene.Scene, cam *camera.Camera) {
	gl.ClearColor(sc.ClearColor[0], sc.ClearColor[1], sc.ClearColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.ground == nil && sc.Ground.Size > 0 {
		r.ground = uploadMesh(model.Plane(sc.Ground.Size))
	}

	viewProj := cam.ViewProjection()
	r.lights.SetNearest(sc.Lights(), cam.Position)

	r.renderMeshes(sc, viewProj)
	r.renderLabels(viewProj)
}

func (r *Renderer) renderMeshes(sc *scene.Scene, viewProj math.Mat4) {
	p := r.meshProgram
	p.Use()
	gl.UniformMatrix4fv(p.Uniform("uViewProj"), 1, false, &viewProj[0])

	ambient := [3]float32{
		sc.AmbientColor[0] * sc.Ambient,
		sc.AmbientColor[1] * sc.Ambient,
		sc.AmbientColor[2] * sc.Ambient,
	}
	gl.Uniform3f(p.Uniform("uAmbient"), ambient[0], ambient[1], ambient[2])

	// Spot lights
	gl.Uniform1i(p.Uniform("uSpotCount"), int32(r.lights.Count))
	if r.lights.Count > 0 {
		positions := r.lights.GetPositions()
		directions := r.lights.GetDirections()
		colors := r.lights.GetColors()
		cones := r.lights.GetCones()
		attenuation := r.lights.GetAttenuation()
		gl.Uniform3fv(p.Uniform("uSpotPositions"), lighting.MaxSpotLights, &positions[0])
		gl.Uniform3fv(p.Uniform("uSpotDirections"), lighting.MaxSpotLights, &directions[0])
		gl.Uniform3fv(p.Uniform("uSpotColors"), lighting.MaxSpotLights, &colors[0])
		gl.Uniform2fv(p.Uniform("uSpotCones"), lighting.MaxSpotLights, &cones[0])
		gl.Uniform2fv(p.Uniform("uSpotAttenuation"), lighting.MaxSpotLights, &attenuation[0])
	}

	if r.ground != nil {
		identity := math.Identity()
		gl.UniformMatrix4fv(p.Uniform("uModel"), 1, false, &identity[0])
		c := sc.Ground.Color
		gl.Uniform3f(p.Uniform("uColor"), c[0], c[1], c[2])
		r.ground.draw()
	}

	for _, o := range r.objects {
		modelMatrix := o.object.ModelMatrix()
		gl.UniformMatrix4fv(p.Uniform("uModel"), 1, false, &modelMatrix[0])
		c := o.object.Color
		gl.Uniform3f(p.Uniform("uColor"), c[0], c[1], c[2])
		o.mesh.draw()
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) renderLabels(viewProj math.Mat4) {
	if len(r.labels) == 0 {
		return
	}

	p := r.labelProgram
	p.Use()
	gl.UniformMatrix4fv(p.Uniform("uViewProj"), 1, false, &viewProj[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(p.Uniform("uTexture"), 0)

	for _, l := range r.labels {
		gl.BindTexture(gl.TEXTURE_2D, l.texture)
		gl.Uniform3f(p.Uniform("uMin"), l.label.Min.X, l.label.Min.Y, l.label.Min.Z)
		gl.Uniform2f(p.Uniform("uSize"), l.label.Width, l.label.Height)
		c := l.label.Color
		gl.Uniform3f(p.Uniform("uColor"), c[0], c[1], c[2])
		r.quad.draw()
	}
	gl.BindVertexArray(0)
}
