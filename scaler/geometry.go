// geometry.go implements the geometry resolution: requested dimensions plus
// a scale mode turn into concrete target geometry.

// Package scaler implements the geometry and pixel-resampling rules of the
// rescaling node. Everything here is pure computation; backends (memory or
// GPU) only differ in where the bytes live, not in what is computed.
package scaler

import (
	"fmt"
	"math"

	"github.com/xaionaro-go/imgscaler/types"
)

// Geometry is the result of the dimension calculation: the output is always
// exactly Target; the source is conceptually rescaled to Intermediate and
// the (CropX, CropY)-offset window of Target size is what gets emitted.
//
// Under ScaleModeStretch, Intermediate == Target and the crop offsets are
// zero. Under ScaleModeFit, Intermediate preserves the source aspect ratio
// and covers Target, so the crop is centered and never pads.
type Geometry struct {
	Source       types.Resolution
	Intermediate types.Resolution
	Target       types.Resolution
	CropX        uint32
	CropY        uint32
}

func (g Geometry) String() string {
	if g.Intermediate == g.Target {
		return fmt.Sprintf("Geometry(%s -> %s)", g.Source, g.Target)
	}
	return fmt.Sprintf("Geometry(%s -> %s, crop %s+%d+%d)", g.Source, g.Intermediate, g.Target, g.CropX, g.CropY)
}

// ScaleX returns the effective horizontal source-to-intermediate scale factor.
func (g Geometry) ScaleX() float64 {
	return float64(g.Intermediate.Width) / float64(g.Source.Width)
}

// ScaleY returns the effective vertical source-to-intermediate scale factor.
func (g Geometry) ScaleY() float64 {
	return float64(g.Intermediate.Height) / float64(g.Source.Height)
}

// roundHalfUp is the single rounding rule applied to non-integer intermediate
// dimensions, identically on both axes.
func roundHalfUp(v float64) uint32 {
	return uint32(math.Floor(v + 0.5))
}

// CalcGeometry computes the target geometry for rescaling src to requested
// under the given scale mode.
//
// ScaleModeFit preserves the source aspect ratio while still producing
// exactly the requested output size. The reconciliation policy is
// cover-scale-then-center-crop: the source is scaled uniformly by
// max(reqW/srcW, reqH/srcH) and the overhang on the one axis that exceeds
// the request is cropped symmetrically. Letterbox padding is deliberately
// not used: cropping keeps the output pixel values a subset of the input
// pixel values, padding would synthesize a border value.
func CalcGeometry(
	src types.Resolution,
	requested types.Resolution,
	mode types.ScaleMode,
) (Geometry, error) {
	if !src.IsValid() || !requested.IsValid() {
		return Geometry{}, ErrInvalidDimensions{Source: src, Requested: requested}
	}

	switch mode {
	case types.ScaleModeStretch:
		return Geometry{
			Source:       src,
			Intermediate: requested,
			Target:       requested,
		}, nil
	case types.ScaleModeFit:
		scale := math.Max(
			float64(requested.Width)/float64(src.Width),
			float64(requested.Height)/float64(src.Height),
		)
		intermediate := types.Resolution{
			Width:  max(roundHalfUp(float64(src.Width)*scale), requested.Width),
			Height: max(roundHalfUp(float64(src.Height)*scale), requested.Height),
		}
		return Geometry{
			Source:       src,
			Intermediate: intermediate,
			Target:       requested,
			CropX:        (intermediate.Width - requested.Width) / 2,
			CropY:        (intermediate.Height - requested.Height) / 2,
		}, nil
	}
	return Geometry{}, fmt.Errorf("unable to calculate the geometry: unexpected scale mode: %v", mode)
}
