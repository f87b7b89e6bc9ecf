package gallery

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/plastic-gallery/internal/config"
	"github.com/Faultbox/plastic-gallery/internal/engine/scene"
	"github.com/Faultbox/plastic-gallery/internal/engine/tween"
	"github.com/Faultbox/plastic-gallery/internal/logger"
)

// Settings gathers the tunables of every pipeline stage.
type Settings struct {
	Framing            Framing
	Timings            Timings
	Gap                GapRule
	Ease               tween.Ease
	Autoplay           bool
	MaxConcurrentLoads int
	NameFont           string
	CharacteristicFont string
}

// DefaultSettings returns the standard gallery behavior.
func DefaultSettings() Settings {
	return Settings{
		Framing:            DefaultFraming(),
		Timings:            DefaultTimings(),
		Gap:                ProportionalGap{Factor: DefaultGapFactor},
		Ease:               tween.Power1Out,
		Autoplay:           true,
		MaxConcurrentLoads: 8,
		NameFont:           "builtin:medium",
		CharacteristicFont: "builtin:regular",
	}
}

// SettingsFromConfig maps loaded configuration onto pipeline settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	g := cfg.Gallery
	s := DefaultSettings()
	s.Framing = Framing{
		FOV:    g.FOV,
		Margin: g.FramingMargin,
		Height: g.FramingHeight,
	}
	s.Timings = Timings{
		Base:  g.WalkBase,
		Scale: g.WalkScale,
		Speed: g.WalkSpeed,
		Dwell: g.Dwell,
	}
	s.Ease = tween.ByName(g.Ease)
	s.Autoplay = g.Autoplay
	s.MaxConcurrentLoads = g.MaxConcurrentLoads
	if cfg.Assets.NameFont != "" {
		s.NameFont = cfg.Assets.NameFont
	}
	if cfg.Assets.CharacteristicFont != "" {
		s.CharacteristicFont = cfg.Assets.CharacteristicFont
	}
	if g.GapRule == config.GapConstant {
		s.Gap = ConstantGap{Distance: g.GapConstant}
	} else {
		s.Gap = ProportionalGap{Factor: g.GapFactor}
	}
	return s
}

// Source provides both model geometry and fonts.
type Source interface {
	GeometrySource
	FontSource
}

// Plan is the outcome of resolving and laying out a lineup.
type Plan struct {
	Placed    []PlacedModel
	Stops     []CameraStop
	Durations []float64
}

// Total returns the length of the walk without dwells.
func (p Plan) Total() float64 {
	var t float64
	for _, d := range p.Durations {
		t += d
	}
	return t
}

// Pipeline carries the stages and their shared state through one run.
type Pipeline struct {
	Settings  Settings
	Resolver  *Resolver
	Planner   *Planner
	Populator *Populator
	Scene     *scene.Scene
	Rig       CameraRig

	// OnArrive, when set before Run, is called on every arrival at a stop,
	// including the first placement.
	OnArrive func(index int)

	Placed []PlacedModel
	Choreo *Choreographer
}

// NewPipeline wires the stages to an asset source, a scene and a camera.
// Scene and rig may be nil when only planning.
func NewPipeline(settings Settings, src Source, sc *scene.Scene, rig CameraRig) *Pipeline {
	return &Pipeline{
		Settings:  settings,
		Resolver:  NewResolver(src, settings.MaxConcurrentLoads),
		Planner:   NewPlanner(settings.Gap),
		Populator: NewPopulator(src, src, settings.NameFont, settings.CharacteristicFont),
		Scene:     sc,
		Rig:       rig,
	}
}

// Plan resolves and places every model and derives the camera walk,
// without touching the scene.
func (p *Pipeline) Plan(ctx context.Context, descs []ModelDescriptor) (Plan, error) {
	resolved, err := p.Resolver.ResolveBatch(ctx, descs)
	if err != nil {
		return Plan{}, fmt.Errorf("resolving lineup: %w", err)
	}

	placed := p.Planner.Place(NewLineup(resolved))
	plan := Plan{
		Placed:    placed,
		Stops:     ComputeStops(placed, p.Settings.Framing),
		Durations: make([]float64, len(placed)),
	}
	for i := 1; i < len(placed); i++ {
		plan.Durations[i] = p.Settings.Timings.HopDuration(placed[i-1].TargetHeight, placed[i].TargetHeight)
	}
	return plan, nil
}

// Run executes the whole pipeline once: resolve, place, start populating
// the scene and start the camera walk. Population continues in the
// background; the walk starts without waiting for it. If any model fails
// to resolve nothing else happens.
func (p *Pipeline) Run(ctx context.Context, descs []ModelDescriptor) error {
	if p.Choreo != nil {
		return fmt.Errorf("pipeline already ran")
	}

	plan, err := p.Plan(ctx, descs)
	if err != nil {
		return err
	}
	p.Placed = plan.Placed

	p.Populator.Populate(p.Scene, p.Placed)

	p.Choreo = NewChoreographer(p.Placed, p.Settings.Framing, p.Settings.Timings, p.Rig,
		WithEase(p.Settings.Ease),
		WithAutoplay(p.Settings.Autoplay),
		WithArrival(p.OnArrive))

	logger.Info("lineup placed",
		zap.Int("models", len(plan.Placed)),
		zap.Float64("walk_seconds", p.Choreo.TotalDuration()))

	p.Choreo.Start()
	return nil
}
