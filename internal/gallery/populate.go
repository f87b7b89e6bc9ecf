package gallery

import (
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font/opentype"

	"github.com/Faultbox/plastic-gallery/internal/assets"
	"github.com/Faultbox/plastic-gallery/internal/engine/lighting"
	"github.com/Faultbox/plastic-gallery/internal/engine/model"
	"github.com/Faultbox/plastic-gallery/internal/engine/scene"
	"github.com/Faultbox/plastic-gallery/internal/engine/text"
	"github.com/Faultbox/plastic-gallery/internal/logger"
	"github.com/Faultbox/plastic-gallery/pkg/math"
)

// Label proportions relative to model height.
const (
	NameSizeRatio           = 1.0 / 12
	CharacteristicSizeRatio = 1.0 / 15
	NameDepth               = 0.03
	CharacteristicDepth     = 0.01
)

var (
	// CubeColor tints the analytic unit boxes (#ade8f4).
	CubeColor = [3]float32{0xad / 255.0, 0xe8 / 255.0, 0xf4 / 255.0}
	// ModelColor tints loaded geometry.
	ModelColor = [3]float32{0.9, 0.9, 0.9}
	// LabelColor is the label ink color.
	LabelColor = [3]float32{1, 1, 1}
)

// FontSource loads fonts by id.
type FontSource interface {
	LoadFont(id string) (*opentype.Font, error)
}

// LabelLine returns the reference height the two labels straddle.
func LabelLine(height float32) float32 {
	return height + height/6
}

// NameBaseline returns the baseline height of the name label whose ink is
// textHeight tall. It sits above the reference line.
func NameBaseline(height, textHeight float32) float32 {
	return LabelLine(height) + textHeight/2 + textHeight/10
}

// CharacteristicBaseline returns the baseline height of the characteristic
// label, mirrored below the reference line.
func CharacteristicBaseline(height, textHeight float32) float32 {
	return LabelLine(height) - textHeight/2 - textHeight/10
}

// Populator adds exhibits to a scene in the background. Each model is
// handled independently: a failure affects only that model or label.
type Populator struct {
	geometry           GeometrySource
	fonts              FontSource
	nameFont           string
	characteristicFont string

	wg sync.WaitGroup
}

// NewPopulator creates a populator using the given font ids for the name
// and characteristic labels.
func NewPopulator(geometry GeometrySource, fonts FontSource, nameFont, characteristicFont string) *Populator {
	return &Populator{
		geometry:           geometry,
		fonts:              fonts,
		nameFont:           nameFont,
		characteristicFont: characteristicFont,
	}
}

// Populate starts one goroutine per model and returns immediately. Each
// finished exhibit is posted to the scene as a single batch.
func (p *Populator) Populate(sc *scene.Scene, placed []PlacedModel) {
	for _, m := range placed {
		m := m
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			if b, ok := p.Exhibit(m); ok {
				sc.Post(b)
			}
		}()
	}
}

// Wait blocks until all outstanding populate work has finished.
func (p *Populator) Wait() {
	p.wg.Wait()
}

// Exhibit builds the scene items for one model: the geometry, its spot
// light and up to two labels. It reports false if the geometry could not
// be loaded, in which case nothing is returned for the model.
func (p *Populator) Exhibit(m PlacedModel) (scene.Batch, bool) {
	log := logger.Named("populator").With(zap.String("model", m.Name))

	obj, err := p.object(m)
	if err != nil {
		log.Error("skipping model, geometry unavailable", zap.Error(err))
		return scene.Batch{}, false
	}

	b := scene.Batch{
		Objects: []*scene.Object{obj},
		Lights:  []lighting.SpotLight{lighting.ModelSpot(m.Position, m.TargetHeight, m.Width, m.Depth)},
	}

	h := m.TargetHeight
	if l, err := p.label(m, m.Name, p.nameFont, h*NameSizeRatio, NameDepth, NameBaseline); err != nil {
		logLabelError(log, "name", err)
	} else {
		b.Labels = append(b.Labels, l)
	}
	if l, err := p.label(m, m.Label, p.characteristicFont, h*CharacteristicSizeRatio, CharacteristicDepth, CharacteristicBaseline); err != nil {
		logLabelError(log, "characteristic", err)
	} else {
		b.Labels = append(b.Labels, l)
	}

	log.Debug("exhibit ready", zap.Int("labels", len(b.Labels)))
	return b, true
}

func (p *Populator) object(m PlacedModel) (*scene.Object, error) {
	if m.IsCube() {
		return &scene.Object{
			Name:     m.Name,
			Mesh:     model.Box(m.Width, m.TargetHeight, m.Depth),
			Position: m.Position,
			Scale:    1,
			Color:    CubeColor,
		}, nil
	}

	mesh, err := p.geometry.LoadGeometry(m.AssetID)
	if err != nil {
		return nil, err
	}
	return &scene.Object{
		Name:     m.Name,
		Mesh:     mesh,
		Position: m.Position,
		Scale:    m.ScaleFactor,
		Color:    ModelColor,
	}, nil
}

type baselineFunc func(height, textHeight float32) float32

func (p *Populator) label(m PlacedModel, s, fontID string, size, depth float32, baseline baselineFunc) (*scene.Label, error) {
	f, err := p.fonts.LoadFont(fontID)
	if err != nil {
		var fontErr *assets.FontLoadError
		if !errors.As(err, &fontErr) {
			err = &assets.FontLoadError{FontID: fontID, Err: err}
		}
		return nil, err
	}

	ext, err := text.Measure(f, s, size)
	if err != nil {
		return nil, err
	}
	img, err := text.Rasterize(f, s)
	if err != nil {
		return nil, err
	}

	y := baseline(m.TargetHeight, ext.Height)
	return &scene.Label{
		Text:  s,
		Image: img,
		Min: math.Vec3{
			X: m.Position.X - ext.Width/2,
			Y: y - ext.Descent,
			Z: m.Position.Z + depth,
		},
		Width:  ext.Width,
		Height: ext.Height,
		Color:  LabelColor,
	}, nil
}

func logLabelError(log *zap.Logger, which string, err error) {
	if errors.Is(err, text.ErrEmptyText) {
		log.Debug("label has no text", zap.String("label", which))
		return
	}
	log.Warn("label omitted", zap.String("label", which), zap.Error(err))
}
