// Package assets resolves model and font ids against an asset directory and
// caches what it loads.
package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Faultbox/plastic-gallery/internal/engine/model"
	"github.com/Faultbox/plastic-gallery/internal/logger"
)

// CubeID is the reserved asset id for the analytic unit box.
const CubeID = "cube"

// Manager handles asset loading from a directory root.
// It is safe for concurrent use; concurrent loads of one id share a
// single read.
type Manager struct {
	root  string
	cache *Cache
	group singleflight.Group
}

// NewManager creates a new asset manager rooted at dir.
func NewManager(root string) *Manager {
	return &Manager{
		root:  root,
		cache: NewCache(),
	}
}

// ModelCandidates returns the paths tried, in order, for a model id.
func (m *Manager) ModelCandidates(id string) []string {
	return []string{
		filepath.Join(m.root, id, id+".gltf"),
		filepath.Join(m.root, id, id+".glb"),
		filepath.Join(m.root, id+".glb"),
	}
}

// ResolveModel returns the first existing file for a model id.
func (m *Manager) ResolveModel(id string) (string, error) {
	for _, path := range m.ModelCandidates(id) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// LoadGeometry loads and flattens the default scene of a model asset.
// Errors are returned as *AssetLoadError.
func (m *Manager) LoadGeometry(id string) (*model.Mesh, error) {
	key := "model:" + id
	if v, ok := m.cache.Get(key); ok {
		return v.(*model.Mesh), nil
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		path, err := m.ResolveModel(id)
		if err != nil {
			return nil, err
		}

		doc, err := gltf.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}

		mesh, err := model.FromGLTF(doc)
		if err != nil {
			return nil, fmt.Errorf("building mesh from %s: %w", path, err)
		}

		logger.Debug("model loaded",
			zap.String("id", id),
			zap.String("path", path),
			zap.Int("triangles", mesh.TriangleCount()))

		m.cache.Set(key, mesh)
		return mesh, nil
	})
	if err != nil {
		return nil, &AssetLoadError{AssetID: id, Err: err}
	}
	return v.(*model.Mesh), nil
}

// Stats returns cache hit and miss counts.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops everything cached.
func (m *Manager) Close() {
	m.cache.Clear()
}
