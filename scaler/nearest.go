// nearest.go implements the NEAREST resampling rule. The per-pixel mapping
// here is THE definition both backends must agree on: the GPU device pass
// is required to produce the same source index per output pixel.

package scaler

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/logger"
	"github.com/xaionaro-go/observability"
)

// parallelizeThreshold is the output pixel count starting from which the
// row loop is spread over multiple goroutines. Purely a performance knob:
// rows are disjoint, so the result does not depend on it.
const parallelizeThreshold = 1 << 16

// NearestIndex maps an output coordinate to a source coordinate along one
// axis: floor((i + 0.5) * srcDim / dstDim), clamped to [0, srcDim-1].
func NearestIndex(i, srcDim, dstDim uint32) uint32 {
	v := uint32(math.Floor((float64(i) + 0.5) * float64(srcDim) / float64(dstDim)))
	if v >= srcDim {
		v = srcDim - 1
	}
	return v
}

// SourceX returns the source column sampled by output column x under the
// given geometry (the crop offset shifts into intermediate space first).
func (g Geometry) SourceX(x uint32) uint32 {
	return NearestIndex(x+g.CropX, g.Source.Width, g.Intermediate.Width)
}

// SourceY returns the source row sampled by output row y.
func (g Geometry) SourceY(y uint32) uint32 {
	return NearestIndex(y+g.CropY, g.Source.Height, g.Intermediate.Height)
}

// ResampleNearest produces a Target-sized buffer of the same pixel format
// where every output pixel is a verbatim copy of exactly one source pixel.
func ResampleNearest(
	ctx context.Context,
	src *frame.Buffer,
	geom Geometry,
) (_ret *frame.Buffer, _err error) {
	logger.Tracef(ctx, "ResampleNearest(%s, %s)", src, geom)
	defer func() { logger.Tracef(ctx, "/ResampleNearest: %v %v", _ret, _err) }()

	if src.Resolution != geom.Source {
		return nil, ErrInvalidDimensions{Source: src.Resolution, Requested: geom.Source}
	}
	if !src.PixelFormat.IsSupported() {
		return nil, ErrUnsupportedFormat{PixelFormat: src.PixelFormat}
	}

	dst, err := frame.NewBuffer(geom.Target, src.PixelFormat)
	if err != nil {
		return nil, err
	}

	// the column map is the same for every row, so it is computed once
	srcXs := make([]uint32, geom.Target.Width)
	for x := range srcXs {
		srcXs[x] = geom.SourceX(uint32(x))
	}

	resampleRows := func(yBegin, yEnd uint32) {
		bpp := uint64(src.BytesPerPixel())
		srcRowStride := uint64(src.Resolution.Width) * bpp
		dstRowStride := uint64(geom.Target.Width) * bpp
		for y := yBegin; y < yEnd; y++ {
			srcRowOffset := uint64(geom.SourceY(y)) * srcRowStride
			dstRowOffset := uint64(y) * dstRowStride
			for x := uint32(0); x < geom.Target.Width; x++ {
				srcOffset := srcRowOffset + uint64(srcXs[x])*bpp
				dstOffset := dstRowOffset + uint64(x)*bpp
				copy(dst.Data[dstOffset:dstOffset+bpp], src.Data[srcOffset:srcOffset+bpp])
			}
		}
	}

	if geom.Target.PixelCount() < parallelizeThreshold {
		resampleRows(0, geom.Target.Height)
		return dst, nil
	}

	workerCount := uint32(runtime.NumCPU())
	if workerCount > geom.Target.Height {
		workerCount = geom.Target.Height
	}
	rowsPerWorker := (geom.Target.Height + workerCount - 1) / workerCount
	var wg sync.WaitGroup
	for yBegin := uint32(0); yBegin < geom.Target.Height; yBegin += rowsPerWorker {
		yEnd := min(yBegin+rowsPerWorker, geom.Target.Height)
		wg.Add(1)
		observability.Go(ctx, func(ctx context.Context) {
			defer wg.Done()
			resampleRows(yBegin, yEnd)
		})
	}
	wg.Wait()
	return dst, nil
}
