package waste

import (
	"math"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/plastic-gallery/internal/gallery"
)

// DefaultDensity is the bulk density of the waste pile in tonnes per m³.
const DefaultDensity = 1.0

// LineupOptions controls which countries make it into a lineup.
type LineupOptions struct {
	Top        int     // keep the N largest producers, 0 keeps all
	Density    float64 // tonnes per m³, 0 means DefaultDensity
	References []gallery.ModelDescriptor
}

var tonnes = message.NewPrinter(language.English)

// FormatTonnes renders a yearly amount with thousands separators.
func FormatTonnes(t int64) string {
	return tonnes.Sprintf("%d tonnes/year", t)
}

// CubeSide returns the edge of a cube holding the given mass.
func CubeSide(waste int64, density float64) float32 {
	if density <= 0 {
		density = DefaultDensity
	}
	return float32(math.Cbrt(float64(waste) / density))
}

// Lineup turns entries into cube descriptors, smallest first, after any
// reference models. Countries with no waste are dropped since a model
// needs a positive height.
func Lineup(entries []Entry, opts LineupOptions) []gallery.ModelDescriptor {
	ranked := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Waste > 0 {
			ranked = append(ranked, e)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Waste != ranked[j].Waste {
			return ranked[i].Waste > ranked[j].Waste
		}
		return ranked[i].Country < ranked[j].Country
	})
	if opts.Top > 0 && len(ranked) > opts.Top {
		ranked = ranked[:opts.Top]
	}

	// Ascending so the walk grows
	for i, j := 0, len(ranked)-1; i < j; i, j = i+1, j-1 {
		ranked[i], ranked[j] = ranked[j], ranked[i]
	}

	out := make([]gallery.ModelDescriptor, 0, len(opts.References)+len(ranked))
	out = append(out, opts.References...)
	for _, e := range ranked {
		out = append(out, gallery.ModelDescriptor{
			Name:         e.Country,
			AssetID:      gallery.CubeAssetID,
			TargetHeight: CubeSide(e.Waste, opts.Density),
			Label:        FormatTonnes(e.Waste),
		})
	}
	return out
}
