package model

import (
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/plastic-gallery/pkg/math"
)

// quadDocument returns a document with one 2x4 quad in the XY plane,
// spanning x in [-1, 1] and y in [0, 4].
func quadDocument(t *testing.T) *gltf.Document {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{
		{-1, 0, 0}, {1, 0, 0}, {1, 4, 0}, {-1, 4, 0},
	})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})
	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	return doc
}

func TestFromGLTFSingleNode(t *testing.T) {
	doc := quadDocument(t)
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []int{0}

	mesh, err := FromGLTF(doc)
	require.NoError(t, err)

	assert.Equal(t, 2, mesh.TriangleCount())
	assert.Equal(t, math.Vec3{X: -1, Y: 0, Z: 0}, mesh.Bounds.Min)
	assert.Equal(t, math.Vec3{X: 1, Y: 4, Z: 0}, mesh.Bounds.Max)
	for _, v := range mesh.Vertices {
		assert.InDelta(t, 1, v.Normal[2], 1e-6, "quad faces +Z")
	}
}

func TestFromGLTFAppliesHierarchy(t *testing.T) {
	doc := quadDocument(t)
	doc.Nodes = []*gltf.Node{
		{Translation: [3]float64{10, 0, 0}, Children: []int{1}},
		{Mesh: gltf.Index(0), Scale: [3]float64{2, 2, 2}},
	}
	doc.Scenes[0].Nodes = []int{0}

	mesh, err := FromGLTF(doc)
	require.NoError(t, err)

	size := mesh.Bounds.Size()
	assert.InDelta(t, 4, size.X, 1e-5)
	assert.InDelta(t, 8, size.Y, 1e-5)
	assert.InDelta(t, 8, mesh.Bounds.Min.X, 1e-5)
	assert.InDelta(t, 12, mesh.Bounds.Max.X, 1e-5)
}

func TestFromGLTFMatrixNode(t *testing.T) {
	doc := quadDocument(t)
	doc.Nodes = []*gltf.Node{{
		Mesh: gltf.Index(0),
		// Column-major translation by (0, 5, 0)
		Matrix: [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 5, 0, 1},
	}}
	doc.Scenes[0].Nodes = []int{0}

	mesh, err := FromGLTF(doc)
	require.NoError(t, err)
	assert.InDelta(t, 5, mesh.Bounds.Min.Y, 1e-5)
	assert.InDelta(t, 9, mesh.Bounds.Max.Y, 1e-5)
}

func TestFromGLTFMirroredKeepsOutwardNormals(t *testing.T) {
	doc := quadDocument(t)
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0), Scale: [3]float64{-1, 1, 1}}}
	doc.Scenes[0].Nodes = []int{0}

	mesh, err := FromGLTF(doc)
	require.NoError(t, err)
	for _, v := range mesh.Vertices {
		assert.InDelta(t, 1, v.Normal[2], 1e-6, "winding is reversed under mirroring")
	}
}

func TestFromGLTFIgnoresNodesOutsideScene(t *testing.T) {
	doc := quadDocument(t)
	doc.Nodes = []*gltf.Node{
		{Mesh: gltf.Index(0)},
		{Mesh: gltf.Index(0), Translation: [3]float64{100, 0, 0}},
	}
	doc.Scenes[0].Nodes = []int{0}

	mesh, err := FromGLTF(doc)
	require.NoError(t, err)
	assert.InDelta(t, 1, mesh.Bounds.Max.X, 1e-5)
}

func TestFromGLTFSmoothsSharedEdges(t *testing.T) {
	doc := gltf.NewDocument()
	// Two triangles folded along the Y axis: one faces +Z, the other +X
	pos := modeler.WritePosition(doc, [][3]float32{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{0, 0, 0}, {0, 1, 0}, {0, 0, 1},
	})
	doc.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []int{0}

	mesh, err := FromGLTF(doc)
	require.NoError(t, err)
	require.Len(t, mesh.Vertices, 6)

	for _, v := range mesh.Vertices {
		switch v.Position {
		case [3]float32{0, 0, 0}, [3]float32{0, 1, 0}:
			assert.InDelta(t, 0.7071, v.Normal[0], 1e-3, "ridge at %v", v.Position)
			assert.InDelta(t, 0.7071, v.Normal[2], 1e-3, "ridge at %v", v.Position)
		case [3]float32{1, 0, 0}:
			assert.Equal(t, [3]float32{0, 0, 1}, v.Normal)
		case [3]float32{0, 0, 1}:
			assert.Equal(t, [3]float32{1, 0, 0}, v.Normal)
		}
	}
}

func TestFromGLTFEmpty(t *testing.T) {
	doc := gltf.NewDocument()
	_, err := FromGLTF(doc)
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestBox(t *testing.T) {
	mesh := Box(2, 4, 6)

	assert.Len(t, mesh.Vertices, 24)
	assert.Equal(t, 12, mesh.TriangleCount())
	assert.Equal(t, math.Vec3{X: 2, Y: 4, Z: 6}, mesh.Bounds.Size())
	assert.Equal(t, math.Vec3{X: -1, Y: -2, Z: -3}, mesh.Bounds.Min, "centered on the origin")

	for i := 0; i < len(mesh.Indices); i += 3 {
		a := mesh.Vertices[mesh.Indices[i]]
		b := mesh.Vertices[mesh.Indices[i+1]]
		c := mesh.Vertices[mesh.Indices[i+2]]
		pa := math.Vec3{X: a.Position[0], Y: a.Position[1], Z: a.Position[2]}
		pb := math.Vec3{X: b.Position[0], Y: b.Position[1], Z: b.Position[2]}
		pc := math.Vec3{X: c.Position[0], Y: c.Position[1], Z: c.Position[2]}
		n := math.Vec3{X: a.Normal[0], Y: a.Normal[1], Z: a.Normal[2]}

		if pb.Sub(pa).Cross(pc.Sub(pa)).Dot(n) <= 0 {
			t.Errorf("triangle %d winds against its normal %v", i/3, n)
		}
	}
}

func TestSmoothNormals(t *testing.T) {
	vertices := []Vertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{5, 0, 0}, Normal: [3]float32{0, 0, 1}},
	}
	SmoothNormals(vertices)

	assert.InDelta(t, 0.7071, vertices[0].Normal[0], 1e-3)
	assert.InDelta(t, 0.7071, vertices[0].Normal[1], 1e-3)
	assert.Equal(t, vertices[0].Normal, vertices[1].Normal)
	assert.Equal(t, [3]float32{0, 0, 1}, vertices[2].Normal)
}

func TestPlane(t *testing.T) {
	mesh := Plane(10)

	assert.Equal(t, 2, mesh.TriangleCount())
	assert.Equal(t, math.Vec3{X: 10, Y: 0, Z: 10}, mesh.Bounds.Size())

	a, b, c := mesh.Vertices[0].Position, mesh.Vertices[1].Position, mesh.Vertices[2].Position
	e1 := math.Vec3{X: b[0] - a[0], Y: b[1] - a[1], Z: b[2] - a[2]}
	e2 := math.Vec3{X: c[0] - a[0], Y: c[1] - a[1], Z: c[2] - a[2]}
	assert.Greater(t, e1.Cross(e2).Y, float32(0), "counter-clockwise seen from above")
}
