package gallery

import "github.com/Faultbox/plastic-gallery/pkg/math"

// GapRule computes the empty space between two adjacent models.
type GapRule interface {
	Gap(prev, cur ResolvedModel) float32
}

// ProportionalGap spaces neighbors by a fraction of their mean width.
type ProportionalGap struct {
	Factor float32
}

// DefaultGapFactor is a quarter of the mean neighbor width.
const DefaultGapFactor = 0.25

// Gap implements GapRule.
func (g ProportionalGap) Gap(prev, cur ResolvedModel) float32 {
	return g.Factor * (prev.Width + cur.Width) / 2
}

// ConstantGap spaces neighbors by a fixed distance.
type ConstantGap struct {
	Distance float32
}

// Gap implements GapRule.
func (g ConstantGap) Gap(_, _ ResolvedModel) float32 {
	return g.Distance
}

// Planner lays resolved models out left to right along +X.
type Planner struct {
	Rule GapRule
}

// NewPlanner creates a planner with the given gap rule; nil selects the
// proportional rule with DefaultGapFactor.
func NewPlanner(rule GapRule) *Planner {
	if rule == nil {
		rule = ProportionalGap{Factor: DefaultGapFactor}
	}
	return &Planner{Rule: rule}
}

// Place assigns each model its world position. The first model sits at
// x = 0 and every following one is pushed right by half of each width
// plus the gap, so centers strictly increase. Placement is pure: the same
// lineup always yields the same positions.
func (p *Planner) Place(lineup Lineup) []PlacedModel {
	if lineup.Len() == 0 {
		return []PlacedModel{}
	}

	placed := make([]PlacedModel, 0, lineup.Len())
	first := lineup.At(0)
	placed = append(placed, PlacedModel{
		ResolvedModel: first,
		Position:      math.Vec3{X: 0, Y: first.GroundOffsetY, Z: 0},
	})

	lineup.Pairs(func(prev, cur ResolvedModel) bool {
		x := placed[len(placed)-1].Position.X + prev.Width/2 + cur.Width/2 + p.Rule.Gap(prev, cur)
		placed = append(placed, PlacedModel{
			ResolvedModel: cur,
			Position:      math.Vec3{X: x, Y: cur.GroundOffsetY, Z: 0},
		})
		return true
	})
	return placed
}
