package assets

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no candidate file exists for an asset id.
var ErrNotFound = errors.New("asset not found")

// AssetLoadError reports a model asset that could not be loaded or measured.
type AssetLoadError struct {
	AssetID string
	Err     error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("loading asset %q: %v", e.AssetID, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// FontLoadError reports a font that could not be loaded or parsed.
type FontLoadError struct {
	FontID string
	Err    error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("loading font %q: %v", e.FontID, e.Err)
}

func (e *FontLoadError) Unwrap() error {
	return e.Err
}
