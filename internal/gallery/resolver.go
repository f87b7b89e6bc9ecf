package gallery

import (
	"context"
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/plastic-gallery/internal/assets"
	"github.com/Faultbox/plastic-gallery/internal/engine/model"
	"github.com/Faultbox/plastic-gallery/internal/logger"
)

// CubeAssetID is the reserved asset id for the analytic unit box.
const CubeAssetID = assets.CubeID

var (
	// ErrInvalidHeight is returned for descriptors whose target height is not positive.
	ErrInvalidHeight = errors.New("target height must be finite and > 0")
	// ErrDegenerateBounds is wrapped in an AssetLoadError when a model's
	// bounding box has no height to scale from.
	ErrDegenerateBounds = errors.New("bounding box has zero height")
)

// ValidHeight reports whether h is a usable target height: finite and
// positive.
func ValidHeight(h float32) bool {
	return h > 0 && !gomath.IsInf(float64(h), 0)
}

// GeometrySource loads model geometry by asset id.
type GeometrySource interface {
	LoadGeometry(id string) (*model.Mesh, error)
}

// Resolver measures models and derives their on-stage dimensions.
type Resolver struct {
	source GeometrySource
	limit  int
}

// NewResolver creates a resolver. limit caps concurrent loads in a batch;
// zero or less means no cap.
func NewResolver(source GeometrySource, limit int) *Resolver {
	return &Resolver{source: source, limit: limit}
}

// Resolve loads one model's geometry and computes its scale and footprint.
// It blocks until the geometry is available.
func (r *Resolver) Resolve(ctx context.Context, d ModelDescriptor) (ResolvedModel, error) {
	if !ValidHeight(d.TargetHeight) {
		return ResolvedModel{}, fmt.Errorf("model %q: %w (got %g)", d.Name, ErrInvalidHeight, d.TargetHeight)
	}
	if err := ctx.Err(); err != nil {
		return ResolvedModel{}, err
	}

	resolved := ResolvedModel{ModelDescriptor: d}
	if !d.CenterAtGround {
		resolved.GroundOffsetY = d.TargetHeight / 2
	}

	if d.IsCube() {
		resolved.ScaleFactor = 1
		resolved.Width = d.TargetHeight
		resolved.Depth = d.TargetHeight
		return resolved, nil
	}

	mesh, err := r.source.LoadGeometry(d.AssetID)
	if err != nil {
		var loadErr *assets.AssetLoadError
		if errors.As(err, &loadErr) {
			return ResolvedModel{}, err
		}
		return ResolvedModel{}, &assets.AssetLoadError{AssetID: d.AssetID, Err: err}
	}

	size := mesh.Bounds.Size()
	if mesh.Bounds.IsEmpty() || size.Y <= 0 {
		return ResolvedModel{}, &assets.AssetLoadError{AssetID: d.AssetID, Err: ErrDegenerateBounds}
	}

	resolved.ScaleFactor = d.TargetHeight / size.Y
	resolved.Width = size.X * resolved.ScaleFactor
	resolved.Depth = size.Z * resolved.ScaleFactor
	return resolved, nil
}

// Future is a pending resolution.
type Future struct {
	Descriptor ModelDescriptor
	result     ResolvedModel
	err        error
}

// Result returns the outcome. It is only meaningful after the owning
// barrier's Wait has returned.
func (f *Future) Result() (ResolvedModel, error) {
	return f.result, f.err
}

// Barrier joins a set of in-flight resolutions. Wait returns only once
// every one of them has settled, successfully or not.
type Barrier struct {
	group   *errgroup.Group
	futures []*Future
}

// Start launches one resolution per descriptor and returns the barrier
// joining them. Failures do not cancel siblings; every future settles.
func (r *Resolver) Start(ctx context.Context, descs []ModelDescriptor) *Barrier {
	b := &Barrier{
		group:   new(errgroup.Group),
		futures: make([]*Future, len(descs)),
	}
	if r.limit > 0 {
		b.group.SetLimit(r.limit)
	}

	for i, d := range descs {
		f := &Future{Descriptor: d}
		b.futures[i] = f
		b.group.Go(func() error {
			f.result, f.err = r.Resolve(ctx, f.Descriptor)
			return nil
		})
	}
	return b
}

// Wait blocks until all resolutions have settled. It returns the resolved
// models in input order, or the combined error of every failure and no
// models at all.
func (b *Barrier) Wait() ([]ResolvedModel, error) {
	_ = b.group.Wait()

	var err error
	resolved := make([]ResolvedModel, len(b.futures))
	for i, f := range b.futures {
		m, ferr := f.Result()
		if ferr != nil {
			err = multierr.Append(err, fmt.Errorf("model %d (%s): %w", i, f.Descriptor.Name, ferr))
			continue
		}
		resolved[i] = m
	}
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// ResolveBatch resolves every descriptor concurrently and joins on a
// barrier. If any resolution fails the whole batch fails.
func (r *Resolver) ResolveBatch(ctx context.Context, descs []ModelDescriptor) ([]ResolvedModel, error) {
	log := logger.Named("resolver")
	log.Debug("resolving lineup", zap.Int("models", len(descs)), zap.Int("limit", r.limit))

	resolved, err := r.Start(ctx, descs).Wait()
	if err != nil {
		log.Error("lineup resolution failed", zap.Error(err))
		return nil, err
	}

	for _, m := range resolved {
		log.Debug("model resolved",
			zap.String("name", m.Name),
			zap.Float32("scale", m.ScaleFactor),
			zap.Float32("width", m.Width),
			zap.Float32("depth", m.Depth))
	}
	return resolved, nil
}
