package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// BuiltinPrefix marks font ids served from the embedded Go fonts.
const BuiltinPrefix = "builtin:"

var builtinFonts = map[string][]byte{
	"regular": goregular.TTF,
	"medium":  gomedium.TTF,
	"bold":    gobold.TTF,
}

// LoadFont loads a TrueType/OpenType font. The id is either a builtin
// ("builtin:medium") or a file path, relative paths resolving under the
// asset root. Errors are returned as *FontLoadError.
func (m *Manager) LoadFont(id string) (*opentype.Font, error) {
	key := "font:" + id
	if v, ok := m.cache.Get(key); ok {
		return v.(*opentype.Font), nil
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		data, err := m.fontData(id)
		if err != nil {
			return nil, err
		}

		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing: %w", err)
		}

		m.cache.Set(key, f)
		return f, nil
	})
	if err != nil {
		return nil, &FontLoadError{FontID: id, Err: err}
	}
	return v.(*opentype.Font), nil
}

func (m *Manager) fontData(id string) ([]byte, error) {
	if name, ok := strings.CutPrefix(id, BuiltinPrefix); ok {
		data, found := builtinFonts[name]
		if !found {
			return nil, fmt.Errorf("unknown builtin font %q: %w", name, ErrNotFound)
		}
		return data, nil
	}

	path := id
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.root, path)
	}
	return os.ReadFile(path)
}
