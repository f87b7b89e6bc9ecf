package gallery

import (
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/opentype"

	"github.com/Faultbox/plastic-gallery/internal/assets"
	"github.com/Faultbox/plastic-gallery/internal/engine/model"
	"github.com/Faultbox/plastic-gallery/pkg/math"
)

var errMissing = errors.New("no such asset")

// fakeSource serves box-shaped meshes of fixed raw sizes.
type fakeSource struct {
	sizes     map[string]math.Vec3
	badFonts  map[string]bool
	gate      chan struct{} // when set, loads block until it is closed
	loads     atomic.Int32
	fontOnce  sync.Once
	font      *opentype.Font
	fontError error
}

func newFakeSource(sizes map[string]math.Vec3) *fakeSource {
	return &fakeSource{sizes: sizes, badFonts: map[string]bool{}}
}

func (f *fakeSource) LoadGeometry(id string) (*model.Mesh, error) {
	f.loads.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	size, ok := f.sizes[id]
	if !ok {
		return nil, &assets.AssetLoadError{AssetID: id, Err: errMissing}
	}
	mesh := model.Box(size.X, size.Y, size.Z)
	if size.Y == 0 {
		mesh.Bounds.Max.Y = mesh.Bounds.Min.Y
	}
	return mesh, nil
}

func (f *fakeSource) LoadFont(id string) (*opentype.Font, error) {
	if f.badFonts[id] {
		return nil, &assets.FontLoadError{FontID: id, Err: errMissing}
	}
	f.fontOnce.Do(func() {
		f.font, f.fontError = opentype.Parse(gomedium.TTF)
	})
	return f.font, f.fontError
}

func cube(name string, h float32) ModelDescriptor {
	return ModelDescriptor{Name: name, AssetID: CubeAssetID, TargetHeight: h, Label: name + " label"}
}
