// error.go defines the typed errors of the scaler package.

package scaler

import (
	"fmt"

	"github.com/xaionaro-go/imgscaler/types"
)

// ErrInvalidDimensions is returned when a source or requested dimension
// is not positive.
type ErrInvalidDimensions struct {
	Source    types.Resolution
	Requested types.Resolution
}

func (e ErrInvalidDimensions) Error() string {
	return fmt.Sprintf("invalid dimensions: source %s, requested %s: every dimension must be positive", e.Source, e.Requested)
}

// ErrUnsupportedFormat is returned when the pixel format is not handled
// by the resolved code path.
type ErrUnsupportedFormat struct {
	PixelFormat types.PixelFormat
}

func (e ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported pixel format: '%s'", e.PixelFormat)
}

// ErrUnsupportedInterpolation is returned when the interpolation mode is not
// implemented by the resolved code path.
type ErrUnsupportedInterpolation struct {
	Mode types.InterpolationMode
}

func (e ErrUnsupportedInterpolation) Error() string {
	return fmt.Sprintf("unsupported interpolation mode: '%s'", e.Mode)
}
