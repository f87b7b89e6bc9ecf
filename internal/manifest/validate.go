package manifest

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/plastic-gallery/internal/gallery"
)

// ModelResolver locates model files by asset id.
type ModelResolver interface {
	ResolveModel(id string) (string, error)
}

// Validate checks a lineup before anything is loaded: names must be
// present and unique, heights positive, and every non-cube asset must
// resolve to a file. A nil resolver skips the file check. All problems
// are reported together.
func Validate(descs []gallery.ModelDescriptor, resolver ModelResolver) error {
	var err error
	seen := make(map[string]int, len(descs))

	for i, d := range descs {
		if d.Name == "" {
			err = multierr.Append(err, fmt.Errorf("model %d: missing name", i))
		} else if first, dup := seen[d.Name]; dup {
			err = multierr.Append(err, fmt.Errorf("model %d: name %q already used by model %d", i, d.Name, first))
		} else {
			seen[d.Name] = i
		}

		if !gallery.ValidHeight(d.TargetHeight) {
			err = multierr.Append(err, fmt.Errorf("model %d (%s): height must be finite and > 0, got %g", i, d.Name, d.TargetHeight))
		}

		if d.AssetID == "" {
			err = multierr.Append(err, fmt.Errorf("model %d (%s): missing asset", i, d.Name))
			continue
		}
		if resolver != nil && !d.IsCube() {
			if _, rerr := resolver.ResolveModel(d.AssetID); rerr != nil {
				err = multierr.Append(err, fmt.Errorf("model %d (%s): asset %q: %w", i, d.Name, d.AssetID, rerr))
			}
		}
	}
	return err
}
