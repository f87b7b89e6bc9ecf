// Package lighting provides spot light support for exhibit rendering.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/plastic-gallery/pkg/math"
)

// MaxSpotLights is the maximum number of spot lights supported in shaders.
const MaxSpotLights = 32

// SpotLight is a cone light aimed at a target point.
type SpotLight struct {
	Position  math.Vec3
	Target    math.Vec3
	Color     [3]float32 // RGB color (0-1 range)
	Intensity float32
	Distance  float32 // range after which light is zero; 0 = unlimited
	Angle     float32 // cone half-angle, radians
	Penumbra  float32 // fraction of the cone that is softened, 0-1
	Decay     float32 // distance attenuation exponent
}

// White is the default exhibit light color.
var White = [3]float32{1, 1, 1}

// ModelSpot derives the spot light for an exhibit standing at pos with the
// given height, width and depth. The light hangs at twice the model height,
// shifted onto the model's front face, and its cone is wide enough to cover
// the model's base from that height.
func ModelSpot(pos math.Vec3, height, width, depth float32) SpotLight {
	return SpotLight{
		Position:  math.Vec3{X: pos.X, Y: 2 * height, Z: pos.Z + depth/2},
		Target:    pos,
		Color:     White,
		Intensity: 5 * height * height,
		Distance:  3 * height,
		Angle:     float32(gomath.Atan(float64(height / (width / 2)))),
		Penumbra:  0.3,
		Decay:     2,
	}
}

// Direction returns the unit vector from the light toward its target.
func (s SpotLight) Direction() math.Vec3 {
	return s.Target.Sub(s.Position).Normalize()
}

// SpotLightBuffer holds lights for GPU upload.
type SpotLightBuffer struct {
	Lights []SpotLight
	Count  int
}

// NewSpotLightBuffer creates an empty spot light buffer.
func NewSpotLightBuffer() *SpotLightBuffer {
	return &SpotLightBuffer{
		Lights: make([]SpotLight, 0, MaxSpotLights),
	}
}

// Clear removes all lights from the buffer.
func (b *SpotLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a spot light to the buffer.
// Returns false if buffer is full.
func (b *SpotLightBuffer) AddLight(light SpotLight) bool {
	if b.Count >= MaxSpotLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxSpotLights if necessary.
func (b *SpotLightBuffer) SetLights(lights []SpotLight) {
	b.Clear()
	for _, l := range lights {
		if !b.AddLight(l) {
			return
		}
	}
}

// SetNearest fills the buffer with the lights closest to eye, so large
// lineups keep the exhibits around the camera lit.
func (b *SpotLightBuffer) SetNearest(lights []SpotLight, eye math.Vec3) {
	if len(lights) <= MaxSpotLights {
		b.SetLights(lights)
		return
	}

	// Partial selection sort; lineups are small
	sorted := append([]SpotLight(nil), lights...)
	for i := 0; i < MaxSpotLights; i++ {
		best := i
		bestDist := sorted[i].Target.Distance(eye)
		for j := i + 1; j < len(sorted); j++ {
			if d := sorted[j].Target.Distance(eye); d < bestDist {
				best, bestDist = j, d
			}
		}
		sorted[i], sorted[best] = sorted[best], sorted[i]
	}
	b.SetLights(sorted[:MaxSpotLights])
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *SpotLightBuffer) GetPositions() []float32 {
	result := make([]float32, MaxSpotLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Position.X
		result[i*3+1] = light.Position.Y
		result[i*3+2] = light.Position.Z
	}
	return result
}

// GetDirections returns normalized aim directions as a flat slice.
func (b *SpotLightBuffer) GetDirections() []float32 {
	result := make([]float32, MaxSpotLights*3)
	for i, light := range b.Lights {
		d := light.Direction()
		result[i*3+0] = d.X
		result[i*3+1] = d.Y
		result[i*3+2] = d.Z
	}
	return result
}

// GetColors returns colors premultiplied by intensity as a flat slice.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (b *SpotLightBuffer) GetColors() []float32 {
	result := make([]float32, MaxSpotLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Color[0] * light.Intensity
		result[i*3+1] = light.Color[1] * light.Intensity
		result[i*3+2] = light.Color[2] * light.Intensity
	}
	return result
}

// GetCones returns per-light cone parameters for GPU upload.
// Format: [cosOuter0, cosInner0, cosOuter1, cosInner1, ...]
// The inner angle shrinks the cone by the penumbra fraction.
func (b *SpotLightBuffer) GetCones() []float32 {
	result := make([]float32, MaxSpotLights*2)
	for i, light := range b.Lights {
		outer := float64(light.Angle)
		inner := outer * float64(1-light.Penumbra)
		result[i*2+0] = float32(gomath.Cos(outer))
		result[i*2+1] = float32(gomath.Cos(inner))
	}
	return result
}

// GetAttenuation returns per-light distance and decay for GPU upload.
// Format: [distance0, decay0, distance1, decay1, ...]
func (b *SpotLightBuffer) GetAttenuation() []float32 {
	result := make([]float32, MaxSpotLights*2)
	for i, light := range b.Lights {
		result[i*2+0] = light.Distance
		result[i*2+1] = light.Decay
	}
	return result
}
