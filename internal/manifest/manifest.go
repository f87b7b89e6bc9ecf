// Package manifest reads and writes lineup files: ordered lists of
// exhibits in YAML, JSON or TOML.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/plastic-gallery/internal/gallery"
)

// Format is a manifest serialization.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for file extensions with no known format.
var ErrUnknownFormat = errors.New("unknown manifest format")

// entry is the on-disk shape of one exhibit. The primary keys follow the
// established lineup.json layout; the alternates are accepted on read.
type entry struct {
	Name           string  `yaml:"name" json:"name" toml:"name"`
	FileName       string  `yaml:"fileName,omitempty" json:"fileName,omitempty" toml:"fileName,omitempty"`
	Asset          string  `yaml:"asset,omitempty" json:"asset,omitempty" toml:"asset,omitempty"`
	Height         float32 `yaml:"height" json:"height" toml:"height"`
	Characteristic string  `yaml:"characteristic,omitempty" json:"characteristic,omitempty" toml:"characteristic,omitempty"`
	Label          string  `yaml:"label,omitempty" json:"label,omitempty" toml:"label,omitempty"`
	IsCenterDown   *bool   `yaml:"isCenterDown,omitempty" json:"isCenterDown,omitempty" toml:"isCenterDown,omitempty"`
	CenterAtGround *bool   `yaml:"centerAtGround,omitempty" json:"centerAtGround,omitempty" toml:"centerAtGround,omitempty"`
}

type document struct {
	Models []entry `yaml:"models" json:"models" toml:"models"`
}

func (e entry) descriptor() gallery.ModelDescriptor {
	d := gallery.ModelDescriptor{
		Name:         e.Name,
		AssetID:      firstNonEmpty(e.FileName, e.Asset),
		TargetHeight: e.Height,
		Label:        firstNonEmpty(e.Characteristic, e.Label),
	}
	switch {
	case e.IsCenterDown != nil:
		d.CenterAtGround = *e.IsCenterDown
	case e.CenterAtGround != nil:
		d.CenterAtGround = *e.CenterAtGround
	}
	return d
}

func fromDescriptor(d gallery.ModelDescriptor) entry {
	centered := d.CenterAtGround
	return entry{
		Name:           d.Name,
		FileName:       d.AssetID,
		Height:         d.TargetHeight,
		Characteristic: d.Label,
		IsCenterDown:   &centered,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Load reads a manifest file. The format is chosen by extension.
func Load(path string) ([]gallery.ModelDescriptor, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	descs, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return descs, nil
}

// Parse decodes manifest data. YAML and JSON accept either a bare list of
// exhibits or a document with a "models" list; TOML requires the latter.
func Parse(data []byte, format Format) ([]gallery.ModelDescriptor, error) {
	var entries []entry
	var err error

	switch format {
	case FormatYAML:
		entries, err = parseYAML(data)
	case FormatJSON:
		entries, err = parseJSON(data)
	case FormatTOML:
		var doc document
		err = toml.Unmarshal(data, &doc)
		entries = doc.Models
	default:
		err = fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}

	descs := make([]gallery.ModelDescriptor, len(entries))
	for i, e := range entries {
		descs[i] = e.descriptor()
	}
	return descs, nil
}

func parseYAML(data []byte) ([]entry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	if node.Kind == yaml.SequenceNode {
		var entries []entry
		err := node.Decode(&entries)
		return entries, err
	}

	var doc document
	err := node.Decode(&doc)
	return doc.Models, err
}

func parseJSON(data []byte) ([]entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []entry
		err := json.Unmarshal(trimmed, &entries)
		return entries, err
	}

	var doc document
	err := json.Unmarshal(trimmed, &doc)
	return doc.Models, err
}

// Encode serializes descriptors in the given format using the primary
// key names. JSON is written as a bare list, matching lineup.json.
func Encode(descs []gallery.ModelDescriptor, format Format) ([]byte, error) {
	entries := make([]entry, len(descs))
	for i, d := range descs {
		entries[i] = fromDescriptor(d)
	}

	switch format {
	case FormatYAML:
		return yaml.Marshal(entries)
	case FormatJSON:
		return json.MarshalIndent(entries, "", "  ")
	case FormatTOML:
		return toml.Marshal(document{Models: entries})
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// Save writes descriptors to path in the format matching its extension.
func Save(path string, descs []gallery.ModelDescriptor) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	data, err := Encode(descs, format)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
