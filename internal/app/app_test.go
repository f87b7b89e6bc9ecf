package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/plastic-gallery/internal/engine/camera"
	"github.com/Faultbox/plastic-gallery/internal/engine/capture"
	"github.com/Faultbox/plastic-gallery/internal/engine/model"
	"github.com/Faultbox/plastic-gallery/internal/engine/scene"
)

type fakeSurface struct {
	uploads []scene.Batch
	frames  int
	w, h    int
	closed  bool
}

func (s *fakeSurface) Resize(w, h int)                     { s.w, s.h = w, h }
func (s *fakeSurface) Upload(b scene.Batch)                { s.uploads = append(s.uploads, b) }
func (s *fakeSurface) Render(*scene.Scene, *camera.Camera) { s.frames++ }
func (s *fakeSurface) Close()                              { s.closed = true }
func (s *fakeSurface) ReadPixels() ([]byte, int, int) {
	return make([]byte, 2*2*4), 2, 2
}

func TestRenderUploadsEachBatchOnce(t *testing.T) {
	surface := &fakeSurface{}
	a := &App{renderer: surface, scene: scene.New(), camera: camera.New(45, 800, 600)}

	a.render()
	assert.Empty(t, surface.uploads, "nothing posted yet")

	obj := &scene.Object{Name: "cube", Mesh: model.Box(1, 1, 1), Scale: 1}
	a.scene.Post(scene.Batch{Objects: []*scene.Object{obj}})
	a.render()
	a.render()

	require.Len(t, surface.uploads, 1)
	assert.Same(t, obj, surface.uploads[0].Objects[0])
	assert.Equal(t, 3, surface.frames)
}

func TestScreenshotSavesSurfacePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	a := &App{renderer: &fakeSurface{}, capture: capture.New(dir, "gallery"), shoot: true}

	a.screenshot()

	assert.False(t, a.shoot)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".png", filepath.Ext(entries[0].Name()))
}

func TestCloseReleasesSurface(t *testing.T) {
	surface := &fakeSurface{}
	a := &App{renderer: surface}

	a.Close()
	assert.True(t, surface.closed)
}
