// linear.go implements the LINEAR interpolation extension point on top of
// bild. Unlike NEAREST, this rule has no bit-level cross-backend contract;
// it is only provided by the memory-resident code path and only for the
// 8-bit formats.

package scaler

import (
	"context"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/logger"
	"github.com/xaionaro-go/imgscaler/types"
)

// ResampleLinear produces a Target-sized buffer of the same pixel format
// using bilinear filtering. Supported for gray8 and rgba only.
func ResampleLinear(
	ctx context.Context,
	src *frame.Buffer,
	geom Geometry,
) (_ret *frame.Buffer, _err error) {
	logger.Tracef(ctx, "ResampleLinear(%s, %s)", src, geom)
	defer func() { logger.Tracef(ctx, "/ResampleLinear: %v %v", _ret, _err) }()

	if src.Resolution != geom.Source {
		return nil, ErrInvalidDimensions{Source: src.Resolution, Requested: geom.Source}
	}

	var srcImg image.Image
	switch src.PixelFormat {
	case types.PixelFormatGray8:
		srcImg = &image.Gray{
			Pix:    src.Data,
			Stride: int(src.Resolution.Width),
			Rect:   image.Rect(0, 0, int(src.Resolution.Width), int(src.Resolution.Height)),
		}
	case types.PixelFormatRGBA:
		srcImg = &image.RGBA{
			Pix:    src.Data,
			Stride: int(src.Resolution.Width) * 4,
			Rect:   image.Rect(0, 0, int(src.Resolution.Width), int(src.Resolution.Height)),
		}
	default:
		return nil, ErrUnsupportedFormat{PixelFormat: src.PixelFormat}
	}

	intermediate := transform.Resize(
		srcImg,
		int(geom.Intermediate.Width),
		int(geom.Intermediate.Height),
		transform.Linear,
	)

	dst, err := frame.NewBuffer(geom.Target, src.PixelFormat)
	if err != nil {
		return nil, err
	}
	for y := uint32(0); y < geom.Target.Height; y++ {
		for x := uint32(0); x < geom.Target.Width; x++ {
			pixOffset := intermediate.PixOffset(int(x+geom.CropX), int(y+geom.CropY))
			switch src.PixelFormat {
			case types.PixelFormatGray8:
				dst.Data[uint64(y)*uint64(geom.Target.Width)+uint64(x)] = intermediate.Pix[pixOffset]
			case types.PixelFormatRGBA:
				dstOffset := (uint64(y)*uint64(geom.Target.Width) + uint64(x)) * 4
				copy(dst.Data[dstOffset:dstOffset+4], intermediate.Pix[pixOffset:pixOffset+4])
			}
		}
	}
	return dst, nil
}
