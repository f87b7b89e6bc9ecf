package model

import "github.com/Faultbox/plastic-gallery/pkg/math"

// boxFaces lists each face as its outward normal and the two in-plane axes
// used to span it, ordered so (u x v) == normal.
var boxFaces = [6]struct {
	normal, u, v math.Vec3
}{
	{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.Vec3{Y: 1}},
	{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
	{math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: -1}},
	{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
	{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
	{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.Vec3{Y: 1}},
}

// Box builds an axis-aligned box of the given size centred on the origin.
// Each face has its own four vertices so normals stay flat.
func Box(width, height, depth float32) *Mesh {
	half := math.Vec3{X: width / 2, Y: height / 2, Z: depth / 2}
	mesh := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
		Bounds: math.Box3{
			Min: half.Scale(-1),
			Max: half,
		},
	}

	for _, f := range boxFaces {
		base := uint32(len(mesh.Vertices))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := f.normal.Add(f.u.Scale(c[0])).Add(f.v.Scale(c[1]))
			pos := math.Vec3{X: p.X * half.X, Y: p.Y * half.Y, Z: p.Z * half.Z}
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos.Array(),
				Normal:   f.normal.Array(),
			})
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return mesh
}

// Plane builds a horizontal square of the given side length at y = 0,
// facing +Y.
func Plane(size float32) *Mesh {
	h := size / 2
	up := [3]float32{0, 1, 0}
	return &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-h, 0, h}, Normal: up},
			{Position: [3]float32{h, 0, h}, Normal: up},
			{Position: [3]float32{h, 0, -h}, Normal: up},
			{Position: [3]float32{-h, 0, -h}, Normal: up},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Bounds: math.Box3{
			Min: math.Vec3{X: -h, Z: -h},
			Max: math.Vec3{X: h, Z: h},
		},
	}
}
