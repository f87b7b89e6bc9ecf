package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/Faultbox/plastic-gallery/internal/gallery"
)

const lineupJSON = `[
  {"name": "Bottle", "fileName": "bottle", "height": 0.25, "characteristic": "500 ml", "isCenterDown": false},
  {"name": "Malta", "fileName": "cube", "height": 12.5, "characteristic": "1 953 t", "isCenterDown": true}
]`

func TestParseJSONList(t *testing.T) {
	descs, err := Parse([]byte(lineupJSON), FormatJSON)
	require.NoError(t, err)
	require.Len(t, descs, 2)

	assert.Equal(t, gallery.ModelDescriptor{
		Name:         "Bottle",
		AssetID:      "bottle",
		TargetHeight: 0.25,
		Label:        "500 ml",
	}, descs[0])
	assert.True(t, descs[1].IsCube())
	assert.True(t, descs[1].CenterAtGround)
}

func TestParseYAMLAliases(t *testing.T) {
	data := `
models:
  - name: Can
    asset: can
    height: 0.12
    label: "330 ml"
    centerAtGround: true
  - name: Crate
    fileName: crate
    asset: ignored
    height: 0.4
`
	descs, err := Parse([]byte(data), FormatYAML)
	require.NoError(t, err)
	require.Len(t, descs, 2)

	assert.Equal(t, "can", descs[0].AssetID)
	assert.Equal(t, "330 ml", descs[0].Label)
	assert.True(t, descs[0].CenterAtGround)
	assert.Equal(t, "crate", descs[1].AssetID, "fileName takes precedence over asset")
	assert.False(t, descs[1].CenterAtGround)
}

func TestParseYAMLAcceptsJSON(t *testing.T) {
	descs, err := Parse([]byte(lineupJSON), FormatYAML)
	require.NoError(t, err)
	assert.Len(t, descs, 2)
}

func TestParseTOML(t *testing.T) {
	data := `
[[models]]
name = "Bottle"
fileName = "bottle"
height = 0.25
characteristic = "500 ml"

[[models]]
name = "Malta"
fileName = "cube"
height = 12.5
isCenterDown = true
`
	descs, err := Parse([]byte(data), FormatTOML)
	require.NoError(t, err)
	require.Len(t, descs, 2)
	assert.Equal(t, "Malta", descs[1].Name)
	assert.Equal(t, float32(12.5), descs[1].TargetHeight)
	assert.True(t, descs[1].CenterAtGround)
}

func TestParsePreservesOrder(t *testing.T) {
	data := `[{"name":"c","fileName":"cube","height":3},{"name":"a","fileName":"cube","height":1},{"name":"b","fileName":"cube","height":2}]`
	descs, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err)

	var names []string
	for _, d := range descs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"broken json", `[{"name": }]`, FormatJSON},
		{"broken yaml", "models: [\n  - name", FormatYAML},
		{"broken toml", "[[models]\nname=", FormatTOML},
		{"unknown format", "", Format("xml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"lineup.yaml", FormatYAML},
		{"lineup.YML", FormatYAML},
		{"/srv/lineup.json", FormatJSON},
		{"lineup.toml", FormatTOML},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if err != nil {
			t.Errorf("FormatOf(%q): %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatOf(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}

	_, err := FormatOf("lineup.xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSaveLoad(t *testing.T) {
	descs := []gallery.ModelDescriptor{
		{Name: "Bottle", AssetID: "bottle", TargetHeight: 0.25, Label: "500 ml"},
		{Name: "Malta", AssetID: "cube", TargetHeight: 12.5, Label: "1 953 t", CenterAtGround: true},
	}

	for _, ext := range []string{"yaml", "json", "toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "lineup."+ext)
			require.NoError(t, Save(path, descs))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, descs, loaded)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

type fakeResolver map[string]bool

func (f fakeResolver) ResolveModel(id string) (string, error) {
	if f[id] {
		return id + ".glb", nil
	}
	return "", os.ErrNotExist
}

func TestValidate(t *testing.T) {
	resolver := fakeResolver{"bottle": true}

	valid := []gallery.ModelDescriptor{
		{Name: "Bottle", AssetID: "bottle", TargetHeight: 1},
		{Name: "Box", AssetID: "cube", TargetHeight: 2},
	}
	assert.NoError(t, Validate(valid, resolver))
	assert.NoError(t, Validate(nil, resolver))

	invalid := []gallery.ModelDescriptor{
		{Name: "Bottle", AssetID: "bottle", TargetHeight: 1},
		{Name: "Bottle", AssetID: "cube", TargetHeight: 0},
		{Name: "", AssetID: "ghost", TargetHeight: 1},
		{Name: "NoAsset", TargetHeight: 1},
	}
	err := Validate(invalid, resolver)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "already used")
	assert.Contains(t, msg, "height must be finite and > 0")
	assert.Contains(t, msg, "missing name")
	assert.Contains(t, msg, "missing asset")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidateNonFiniteHeights(t *testing.T) {
	data := []byte(`
- {name: Small, fileName: cube, height: 2}
- {name: Unknown, fileName: cube, height: .nan}
- {name: Endless, fileName: cube, height: .inf}
`)
	descs, err := Parse(data, FormatYAML)
	require.NoError(t, err)
	require.Len(t, descs, 3)

	err = Validate(descs, nil)
	require.Error(t, err)
	problems := multierr.Errors(err)
	require.Len(t, problems, 2)
	assert.Contains(t, problems[0].Error(), "model 1 (Unknown)")
	assert.Contains(t, problems[1].Error(), "model 2 (Endless)")
}

func TestValidateWithoutResolver(t *testing.T) {
	descs := []gallery.ModelDescriptor{{Name: "Ghost", AssetID: "ghost", TargetHeight: 1}}
	assert.NoError(t, Validate(descs, nil))
}
