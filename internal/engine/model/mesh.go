package model

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/plastic-gallery/pkg/math"
)

// ErrNoGeometry is returned when a document's default scene holds no
// triangle primitives.
var ErrNoGeometry = errors.New("scene has no triangle geometry")

// FromGLTF flattens the default scene of a glTF document into a single
// mesh. Every node transform down the hierarchy is applied to the vertex
// positions, and the bounds cover all of them. Normals are smoothed across
// triangles that share a position.
func FromGLTF(doc *gltf.Document) (*Mesh, error) {
	b := &builder{doc: doc, bounds: math.EmptyBox(), visited: make(map[int]bool)}
	for _, root := range sceneRoots(doc) {
		if err := b.visit(root, math.Identity()); err != nil {
			return nil, err
		}
	}

	if len(b.vertices) == 0 {
		return nil, ErrNoGeometry
	}

	SmoothNormals(b.vertices)

	return &Mesh{
		Vertices: b.vertices,
		Indices:  b.indices,
		Bounds:   b.bounds,
	}, nil
}

type builder struct {
	doc      *gltf.Document
	vertices []Vertex
	indices  []uint32
	bounds   math.Box3
	visited  map[int]bool
}

func (b *builder) visit(nodeIdx int, parent math.Mat4) error {
	if nodeIdx < 0 || nodeIdx >= len(b.doc.Nodes) {
		return fmt.Errorf("node %d out of range", nodeIdx)
	}
	// Prevent infinite recursion on malformed hierarchies
	if b.visited[nodeIdx] {
		return nil
	}
	b.visited[nodeIdx] = true

	node := b.doc.Nodes[nodeIdx]
	world := parent.Mul(NodeMatrix(node))

	if node.Mesh != nil {
		if *node.Mesh >= len(b.doc.Meshes) {
			return fmt.Errorf("node %d: mesh %d out of range", nodeIdx, *node.Mesh)
		}
		for i, prim := range b.doc.Meshes[*node.Mesh].Primitives {
			if err := b.addPrimitive(prim, world); err != nil {
				return fmt.Errorf("mesh %d primitive %d: %w", *node.Mesh, i, err)
			}
		}
	}

	for _, child := range node.Children {
		if err := b.visit(child, world); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addPrimitive(prim *gltf.Primitive, world math.Mat4) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	positions, err := modeler.ReadPosition(b.doc, b.doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("reading positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(b.doc, b.doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	world3 := make([]math.Vec3, len(positions))
	for i, p := range positions {
		world3[i] = world.TransformVec3(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
		b.bounds = b.bounds.ExpandByPoint(world3[i])
	}

	// Mirroring transforms flip the winding
	reverse := world.Determinant3() < 0

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		if int(i0) >= len(world3) || int(i1) >= len(world3) || int(i2) >= len(world3) {
			continue
		}
		if reverse {
			i1, i2 = i2, i1
		}
		b.addTriangle(world3[i0], world3[i1], world3[i2])
	}
	return nil
}

func (b *builder) addTriangle(v0, v1, v2 math.Vec3) {
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	// Degenerate triangle detection
	if n.Length() < 1e-8 {
		return
	}
	normal := n.Normalize().Array()

	base := uint32(len(b.vertices))
	b.vertices = append(b.vertices,
		Vertex{Position: v0.Array(), Normal: normal},
		Vertex{Position: v1.Array(), Normal: normal},
		Vertex{Position: v2.Array(), Normal: normal},
	)
	b.indices = append(b.indices, base, base+1, base+2)
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance on scanned or low-poly models.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum math.Vec3
		for _, idx := range idxs {
			n := vertices[idx].Normal
			sum = sum.Add(math.Vec3{X: n[0], Y: n[1], Z: n[2]})
		}
		// Opposing faces cancel out; keep their own normals
		if sum.Length() < 1e-6 {
			continue
		}

		avg := sum.Normalize().Array()
		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}
