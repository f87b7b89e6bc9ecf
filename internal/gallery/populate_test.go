package gallery

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/plastic-gallery/internal/engine/scene"
	"github.com/Faultbox/plastic-gallery/internal/engine/text"
	"github.com/Faultbox/plastic-gallery/pkg/math"
)

func TestLabelBaselines(t *testing.T) {
	h := float32(12)
	th := float32(1)

	assert.InDelta(t, 14, LabelLine(h), 1e-5)
	assert.InDelta(t, 14+0.5+0.1, NameBaseline(h, th), 1e-5)
	assert.InDelta(t, 14-0.5-0.1, CharacteristicBaseline(h, th), 1e-5)
}

func TestExhibitCube(t *testing.T) {
	src := newFakeSource(nil)
	p := NewPopulator(src, src, "builtin:medium", "builtin:regular")
	m := placedCubes(2, 6)[1]

	b, ok := p.Exhibit(m)
	require.True(t, ok)

	require.Len(t, b.Objects, 1)
	obj := b.Objects[0]
	assert.Equal(t, float32(1), obj.Scale)
	assert.Equal(t, CubeColor, obj.Color)
	assert.Equal(t, m.Position, obj.Position)
	size := obj.Mesh.Bounds.Size()
	assert.Equal(t, math.Vec3{X: 6, Y: 6, Z: 6}, size)

	require.Len(t, b.Lights, 1)
	light := b.Lights[0]
	assert.Equal(t, math.Vec3{X: m.Position.X, Y: 12, Z: 3}, light.Position)
	assert.Equal(t, m.Position, light.Target)
	assert.InDelta(t, 180, light.Intensity, 1e-4)
	assert.InDelta(t, 18, light.Distance, 1e-5)
	assert.InDelta(t, gomath.Atan(2), float64(light.Angle), 1e-5)

	require.Len(t, b.Labels, 2)
	name, characteristic := b.Labels[0], b.Labels[1]
	assert.Equal(t, m.Name, name.Text)
	assert.Equal(t, m.Label, characteristic.Text)

	for _, l := range b.Labels {
		assert.InDelta(t, m.Position.X, l.Min.X+l.Width/2, 1e-4, "%q is centered on the model", l.Text)
		assert.NotNil(t, l.Image)
	}
	assert.Greater(t, name.Min.Y, LabelLine(6), "name sits above the line")
	assert.Less(t, characteristic.Min.Y, LabelLine(6), "characteristic hangs from below the line")
	assert.Greater(t, name.Min.Z, characteristic.Min.Z, "name is extruded further")
}

func TestExhibitLabelSizes(t *testing.T) {
	src := newFakeSource(nil)
	p := NewPopulator(src, src, "builtin:medium", "builtin:medium")
	m := placedCubes(30)[0]
	m.Label = m.Name

	b, ok := p.Exhibit(m)
	require.True(t, ok)
	require.Len(t, b.Labels, 2)

	f, err := src.LoadFont("builtin:medium")
	require.NoError(t, err)
	nameExt, err := text.Measure(f, m.Name, 30*NameSizeRatio)
	require.NoError(t, err)

	assert.InDelta(t, nameExt.Width, b.Labels[0].Width, 1e-4)
	assert.InDelta(t, NameBaseline(30, nameExt.Height)-nameExt.Descent, b.Labels[0].Min.Y, 1e-4)
	// Same text, smaller size
	assert.InDelta(t, b.Labels[0].Width*12/15, b.Labels[1].Width, 1e-3)
}

func TestExhibitLoadedModel(t *testing.T) {
	src := newFakeSource(map[string]math.Vec3{"bottle": {X: 1, Y: 4, Z: 1}})
	p := NewPopulator(src, src, "builtin:medium", "builtin:regular")

	m := PlacedModel{
		ResolvedModel: ResolvedModel{
			ModelDescriptor: ModelDescriptor{Name: "Bottle", AssetID: "bottle", TargetHeight: 2, Label: "1 L"},
			ScaleFactor:     0.5,
			Width:           0.5,
			Depth:           0.5,
			GroundOffsetY:   1,
		},
		Position: math.Vec3{X: 3, Y: 1},
	}

	b, ok := p.Exhibit(m)
	require.True(t, ok)
	require.Len(t, b.Objects, 1)
	assert.Equal(t, float32(0.5), b.Objects[0].Scale)
	assert.Equal(t, ModelColor, b.Objects[0].Color)

	obj := b.Objects[0]
	height := obj.Mesh.Bounds.Size().Y * obj.Scale
	assert.InDelta(t, 2, height, 1e-5, "scaled geometry reaches the target height")
}

func TestExhibitFontFailureOmitsOnlyThatLabel(t *testing.T) {
	src := newFakeSource(nil)
	src.badFonts["broken"] = true
	p := NewPopulator(src, src, "builtin:medium", "broken")

	b, ok := p.Exhibit(placedCubes(3)[0])
	require.True(t, ok)

	assert.Len(t, b.Objects, 1)
	assert.Len(t, b.Lights, 1)
	require.Len(t, b.Labels, 1)
	assert.Equal(t, "m", b.Labels[0].Text)
}

func TestExhibitEmptyLabel(t *testing.T) {
	src := newFakeSource(nil)
	p := NewPopulator(src, src, "builtin:medium", "builtin:regular")
	m := placedCubes(3)[0]
	m.Label = ""

	b, ok := p.Exhibit(m)
	require.True(t, ok)
	assert.Len(t, b.Labels, 1)
}

func TestExhibitGeometryFailureSkipsModel(t *testing.T) {
	src := newFakeSource(nil)
	p := NewPopulator(src, src, "builtin:medium", "builtin:regular")

	m := PlacedModel{ResolvedModel: ResolvedModel{
		ModelDescriptor: ModelDescriptor{Name: "Gone", AssetID: "gone", TargetHeight: 1},
		ScaleFactor:     1, Width: 1, Depth: 1,
	}}
	b, ok := p.Exhibit(m)
	assert.False(t, ok)
	assert.True(t, b.Empty())
}

func TestPopulatePostsEveryExhibit(t *testing.T) {
	src := newFakeSource(nil)
	p := NewPopulator(src, src, "builtin:medium", "builtin:regular")
	sc := scene.New()

	p.Populate(sc, placedCubes(1, 2, 3, 4))
	p.Wait()

	assert.Equal(t, 4, sc.Posted())
	added := sc.Drain()
	assert.Len(t, added.Objects, 4)
	assert.Len(t, added.Lights, 4)
	assert.Len(t, added.Labels, 8)
}
