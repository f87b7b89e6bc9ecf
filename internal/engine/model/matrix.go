package model

import (
	"github.com/qmuntal/gltf"

	"github.com/Faultbox/plastic-gallery/pkg/math"
)

// NodeMatrix returns the local transform of a glTF node.
// A node carries either a matrix or TRS properties; the unused form
// defaults to identity, so composing both is always correct.
func NodeMatrix(node *gltf.Node) math.Mat4 {
	var m math.Mat4
	for i, v := range node.MatrixOrDefault() {
		m[i] = float32(v)
	}

	t := node.Translation
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	trs := math.TRS(
		math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		math.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])},
		math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	)
	return m.Mul(trs)
}

// sceneRoots returns the root nodes of the document's default scene.
// Documents without scenes fall back to every node that has no parent.
func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}
