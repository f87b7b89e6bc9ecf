// Package camera provides the perspective camera that walks the gallery.
package camera

import (
	"github.com/Faultbox/plastic-gallery/pkg/math"
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FOV    float32 // vertical field of view, degrees
	Aspect float32 // width / height
	Near   float32
	Far    float32
}

// New creates a camera with the given vertical FOV in degrees and the
// gallery's clip range.
func New(fov float32, width, height int) *Camera {
	c := &Camera{
		Target: math.Vec3{Z: -1},
		Up:     math.Vec3{Y: 1},
		FOV:    fov,
		Aspect: 1,
		Near:   1,
		Far:    100000,
	}
	c.Resize(width, height)
	return c
}

// MoveTo places the camera and aims it.
func (c *Camera) MoveTo(position, target math.Vec3) {
	c.Position = position
	c.Target = target
}

// Resize updates the aspect ratio for a new viewport size.
// Degenerate sizes (minimized windows) are ignored.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
