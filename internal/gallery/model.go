// Package gallery turns an ordered lineup of model descriptors into a
// walkable exhibition: it measures every model, places them along the X
// axis, populates the scene and drives the camera from stop to stop.
package gallery

import "github.com/Faultbox/plastic-gallery/pkg/math"

// ModelDescriptor is one exhibit as declared in the lineup manifest.
// The order of descriptors is the display order.
type ModelDescriptor struct {
	Name           string
	AssetID        string
	TargetHeight   float32
	Label          string
	CenterAtGround bool
}

// IsCube reports whether the descriptor uses the analytic unit box.
func (d ModelDescriptor) IsCube() bool {
	return d.AssetID == CubeAssetID
}

// ResolvedModel is a descriptor with its measured on-stage dimensions.
type ResolvedModel struct {
	ModelDescriptor

	// ScaleFactor maps raw asset units to world units; always > 0.
	ScaleFactor float32
	// Width and Depth are the scaled bounding box extents.
	Width float32
	Depth float32
	// GroundOffsetY lifts the model origin so its base rests on y = 0.
	GroundOffsetY float32
}

// PlacedModel is a resolved model with its final world position.
type PlacedModel struct {
	ResolvedModel
	Position math.Vec3
}

// CameraStop is where the camera rests while presenting one model.
// The camera always looks at the model it stops for.
type CameraStop struct {
	Position math.Vec3
	Target   math.Vec3
}
