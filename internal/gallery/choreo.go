package gallery

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/plastic-gallery/internal/engine/tween"
	"github.com/Faultbox/plastic-gallery/internal/logger"
	"github.com/Faultbox/plastic-gallery/pkg/math"
)

// Framing controls where the camera stands for each model.
type Framing struct {
	FOV    float32 // vertical field of view, degrees
	Margin float32 // distance multiplier, > 1 keeps the model inside the frustum
	Height float32 // eye height as a fraction of model height
}

// DefaultFraming matches the gallery's tuned look.
func DefaultFraming() Framing {
	return Framing{FOV: 45, Margin: 1.2, Height: 0.55}
}

// StopFor computes the camera stop presenting one model. The camera stands
// in front of the model on +Z and looks straight down -Z.
func StopFor(m PlacedModel, f Framing) CameraStop {
	h := m.TargetHeight
	extent := h
	if m.Width > extent {
		extent = m.Width
	}
	half := float64(math.Radians(f.FOV)) / 2
	z := f.Margin * extent / float32(gomath.Tan(half))
	y := f.Height * h

	return CameraStop{
		Position: math.Vec3{X: m.Position.X, Y: y, Z: m.Position.Z + z},
		Target:   math.Vec3{X: m.Position.X, Y: y, Z: m.Position.Z},
	}
}

// ComputeStops returns one stop per placed model, in order.
func ComputeStops(placed []PlacedModel, f Framing) []CameraStop {
	stops := make([]CameraStop, len(placed))
	for i, m := range placed {
		stops[i] = StopFor(m, f)
	}
	return stops
}

// Timings shape the walk. The hop into stop i lasts
// Base + Scale*(h[i]/h[i-1])/Speed seconds.
type Timings struct {
	Base  float64
	Scale float64
	Speed float64
	Dwell float64 // pause at each stop before walking on
}

// DefaultTimings returns the standard walking pace.
func DefaultTimings() Timings {
	return Timings{Base: 1.6, Scale: 1.0, Speed: 5}
}

// HopDuration returns the seconds needed to walk from a model of height
// prevHeight to one of height curHeight. Taller next exhibits take longer.
func (t Timings) HopDuration(prevHeight, curHeight float32) float64 {
	ratio := float64(curHeight) / float64(prevHeight)
	return t.Base + t.Scale*ratio/t.Speed
}

// State is the choreographer's phase.
type State int

const (
	StateIdle State = iota
	StateWalking
	StateAtStop
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalking:
		return "walking"
	case StateAtStop:
		return "at-stop"
	default:
		return "unknown"
	}
}

// CameraRig is whatever the choreographer moves.
type CameraRig interface {
	MoveTo(position, target math.Vec3)
}

// Choreographer walks the camera through the stops in order, once.
// Update must be called from the thread that owns the camera.
type Choreographer struct {
	stops     []CameraStop
	durations []float64
	timings   Timings
	ease      tween.Ease
	rig       CameraRig
	autoplay  bool

	state    State
	index    int
	position *tween.Vec3
	target   *tween.Vec3
	dwell    float64
	elapsed  float64

	// OnArrive, when set, is called each time the camera settles at a stop.
	OnArrive func(index int)
}

// ChoreoOption configures a Choreographer.
type ChoreoOption func(*Choreographer)

// WithEase replaces the default power1.out easing.
func WithEase(e tween.Ease) ChoreoOption {
	return func(c *Choreographer) { c.ease = e }
}

// WithArrival sets the OnArrive callback.
func WithArrival(fn func(index int)) ChoreoOption {
	return func(c *Choreographer) { c.OnArrive = fn }
}

// WithAutoplay controls whether the camera leaves the first stop at all.
func WithAutoplay(on bool) ChoreoOption {
	return func(c *Choreographer) { c.autoplay = on }
}

// NewChoreographer prepares a walk over placed models.
func NewChoreographer(placed []PlacedModel, framing Framing, timings Timings, rig CameraRig, opts ...ChoreoOption) *Choreographer {
	c := &Choreographer{
		stops:     ComputeStops(placed, framing),
		durations: make([]float64, len(placed)),
		timings:   timings,
		ease:      tween.Power1Out,
		rig:       rig,
		autoplay:  true,
	}
	for i := 1; i < len(placed); i++ {
		c.durations[i] = timings.HopDuration(placed[i-1].TargetHeight, placed[i].TargetHeight)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stops returns the camera stops.
func (c *Choreographer) Stops() []CameraStop {
	return append([]CameraStop(nil), c.stops...)
}

// TotalDuration is the length of the full walk including dwells.
func (c *Choreographer) TotalDuration() float64 {
	var total float64
	for i := 1; i < len(c.durations); i++ {
		total += c.timings.Dwell + c.durations[i]
	}
	return total
}

// State returns the current phase and stop index. While walking, the
// index is the stop being walked to.
func (c *Choreographer) State() (State, int) {
	return c.state, c.index
}

// Elapsed returns the seconds of walk time consumed so far.
func (c *Choreographer) Elapsed() float64 {
	return c.elapsed
}

// Done reports whether the camera stands at the final stop.
func (c *Choreographer) Done() bool {
	return c.state == StateAtStop && c.index == len(c.stops)-1
}

// Start places the camera at the first stop. It does nothing for an
// empty lineup or if the walk has already started.
func (c *Choreographer) Start() {
	if c.state != StateIdle || len(c.stops) == 0 {
		return
	}
	c.index = 0
	c.arrive()
}

// Update advances the walk by dt seconds. Time left over after reaching a
// stop carries into the dwell and the next hop.
func (c *Choreographer) Update(dt float64) {
	for {
		switch c.state {
		case StateAtStop:
			if c.index == len(c.stops)-1 || !c.autoplay {
				return
			}
			if c.dwell > dt {
				c.dwell -= dt
				c.elapsed += dt
				return
			}
			dt -= c.dwell
			c.elapsed += c.dwell
			c.dwell = 0
			c.walkTo(c.index + 1)

		case StateWalking:
			pos, over := c.position.Advance(dt)
			target, _ := c.target.Advance(dt)
			c.rig.MoveTo(pos, target)
			c.elapsed += dt - over
			if !c.position.Done() {
				return
			}
			c.arrive()
			dt = over

		default:
			return
		}
	}
}

// Restart jumps back to the first stop and begins the walk again.
func (c *Choreographer) Restart() {
	c.state = StateIdle
	c.elapsed = 0
	c.position, c.target = nil, nil
	c.Start()
}

// Step walks on to the next stop when the camera stands at one. It
// reports whether a walk started.
func (c *Choreographer) Step() bool {
	if c.state != StateAtStop || c.index == len(c.stops)-1 {
		return false
	}
	c.dwell = 0
	c.walkTo(c.index + 1)
	return true
}

// Autoplay reports whether the walk moves on without Step.
func (c *Choreographer) Autoplay() bool {
	return c.autoplay
}

// SetAutoplay switches between walking on unattended and waiting for Step.
func (c *Choreographer) SetAutoplay(on bool) {
	c.autoplay = on
}

func (c *Choreographer) walkTo(next int) {
	from := c.stops[c.index]
	to := c.stops[next]
	d := c.durations[next]

	c.position = tween.NewVec3(from.Position, to.Position, d, c.ease)
	c.target = tween.NewVec3(from.Target, to.Target, d, c.ease)
	c.index = next
	c.state = StateWalking

	logger.Named("choreographer").Debug("walking",
		zap.Int("to", next),
		zap.Float64("duration", d))
}

func (c *Choreographer) arrive() {
	stop := c.stops[c.index]
	c.rig.MoveTo(stop.Position, stop.Target)
	c.state = StateAtStop
	c.dwell = c.timings.Dwell

	logger.Named("choreographer").Debug("arrived",
		zap.Int("stop", c.index),
		zap.Float32("x", stop.Position.X),
		zap.Float32("z", stop.Position.Z))

	if c.OnArrive != nil {
		c.OnArrive(c.index)
	}
}
