// Package tween interpolates values over time with easing curves.
package tween

import (
	gomath "math"

	"github.com/Faultbox/plastic-gallery/pkg/math"
)

// Ease maps normalized progress t in [0, 1] to eased progress.
type Ease func(t float64) float64

// Linear is constant speed.
func Linear(t float64) float64 { return t }

// Power1In accelerates from rest.
func Power1In(t float64) float64 { return t * t }

// Power1Out decelerates to rest (quadratic ease-out).
func Power1Out(t float64) float64 { return 1 - (1-t)*(1-t) }

// Power1InOut accelerates then decelerates.
func Power1InOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - gomath.Pow(-2*t+2, 2)/2
}

// Power2Out is a cubic ease-out.
func Power2Out(t float64) float64 { return 1 - gomath.Pow(1-t, 3) }

// SineInOut follows half a cosine wave.
func SineInOut(t float64) float64 { return -(gomath.Cos(gomath.Pi*t) - 1) / 2 }

// ByName returns the easing curve for a name, defaulting to Power1Out.
func ByName(name string) Ease {
	switch name {
	case "linear", "none":
		return Linear
	case "power1.in":
		return Power1In
	case "power1.inOut":
		return Power1InOut
	case "power2.out":
		return Power2Out
	case "sine.inOut":
		return SineInOut
	default:
		return Power1Out
	}
}

// Vec3 animates a vector from From to To over Duration seconds.
type Vec3 struct {
	From, To math.Vec3
	Duration float64
	Ease     Ease

	elapsed float64
}

// NewVec3 creates a vector tween. A nil ease uses Power1Out.
func NewVec3(from, to math.Vec3, duration float64, ease Ease) *Vec3 {
	if ease == nil {
		ease = Power1Out
	}
	return &Vec3{From: from, To: to, Duration: duration, Ease: ease}
}

// Advance moves the tween forward by dt seconds and returns the current
// value. Time beyond the end is clamped; the overshoot is reported so
// callers can carry it into the next step.
func (tw *Vec3) Advance(dt float64) (value math.Vec3, overshoot float64) {
	tw.elapsed += dt
	if tw.elapsed >= tw.Duration {
		overshoot = tw.elapsed - tw.Duration
		tw.elapsed = tw.Duration
	}
	return tw.Value(), overshoot
}

// Value returns the current interpolated value.
func (tw *Vec3) Value() math.Vec3 {
	return tw.From.Lerp(tw.To, float32(tw.Ease(tw.Progress())))
}

// Progress returns normalized time in [0, 1].
func (tw *Vec3) Progress() float64 {
	if tw.Duration <= 0 {
		return 1
	}
	return gomath.Min(tw.elapsed/tw.Duration, 1)
}

// Done reports whether the tween has reached its end.
func (tw *Vec3) Done() bool {
	return tw.Progress() >= 1
}
