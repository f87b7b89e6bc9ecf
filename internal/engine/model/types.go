// Package model builds renderable triangle meshes from glTF documents and
// analytic primitives.
package model

import "github.com/Faultbox/plastic-gallery/pkg/math"

// Vertex represents a mesh vertex with position and normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh holds the complete mesh data ready for GPU upload.
// Positions are in the model's own space with node transforms applied.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   math.Box3
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}
