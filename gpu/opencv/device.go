//go:build with_cv
// +build with_cv

// device.go implements a gpu.Device on top of OpenCV mats.

// Package opencv provides a gpu.Device whose textures are OpenCV mats and
// whose resampling pass is executed by OpenCV. The per-pixel rounding of
// OpenCV's nearest-neighbor resize differs from scaler.NearestIndex, so
// this device satisfies the value-set-equivalence contract of the
// backends, not bit-for-bit equality (which is explicitly non-binding).
package opencv

import (
	"context"
	"fmt"
	"image"

	"github.com/xaionaro-go/imgscaler/gpu"
	"github.com/xaionaro-go/imgscaler/helpers/closuresignaler"
	"github.com/xaionaro-go/imgscaler/logger"
	"github.com/xaionaro-go/imgscaler/scaler"
	"github.com/xaionaro-go/imgscaler/types"
	"github.com/xaionaro-go/xsync"
	"gocv.io/x/gocv"
)

type texture struct {
	Mat         gocv.Mat
	PixelFormat types.PixelFormat
}

type Device struct {
	*closuresignaler.ClosureSignaler

	locker      xsync.Mutex
	textures    map[types.TextureID]*texture
	nextTexture types.TextureID
}

var _ gpu.Device = (*Device)(nil)

func NewDevice() *Device {
	return &Device{
		ClosureSignaler: closuresignaler.New(),
		textures:        map[types.TextureID]*texture{},
	}
}

func (d *Device) String() string {
	return "OpenCVDevice"
}

func matTypeFor(pixFmt types.PixelFormat) (gocv.MatType, error) {
	switch pixFmt {
	case types.PixelFormatGray8:
		return gocv.MatTypeCV8UC1, nil
	case types.PixelFormatGrayF32:
		return gocv.MatTypeCV32FC1, nil
	case types.PixelFormatRGBA:
		return gocv.MatTypeCV8UC4, nil
	}
	return 0, scaler.ErrUnsupportedFormat{PixelFormat: pixFmt}
}

func (d *Device) AllocTexture(
	ctx context.Context,
	res types.Resolution,
	pixFmt types.PixelFormat,
) (_ret types.TextureID, _err error) {
	logger.Tracef(ctx, "AllocTexture(%s, %s)", res, pixFmt)
	defer func() { logger.Tracef(ctx, "/AllocTexture: %v %v", _ret, _err) }()
	if d.IsClosed() {
		return types.TextureIDInvalid, fmt.Errorf("the device is closed")
	}
	if !res.IsValid() {
		return types.TextureIDInvalid, fmt.Errorf("unable to allocate a texture of resolution %s: dimensions must be positive", res)
	}
	matType, err := matTypeFor(pixFmt)
	if err != nil {
		return types.TextureIDInvalid, err
	}
	return xsync.DoR2(ctx, &d.locker, func() (types.TextureID, error) {
		d.nextTexture++
		id := d.nextTexture
		d.textures[id] = &texture{
			Mat:         gocv.NewMatWithSize(int(res.Height), int(res.Width), matType),
			PixelFormat: pixFmt,
		}
		return id, nil
	})
}

func (d *Device) FreeTexture(
	ctx context.Context,
	id types.TextureID,
) (_err error) {
	logger.Tracef(ctx, "FreeTexture(%s)", id)
	defer func() { logger.Tracef(ctx, "/FreeTexture: %v", _err) }()
	return xsync.DoR1(ctx, &d.locker, func() error {
		tex, ok := d.textures[id]
		if !ok {
			return fmt.Errorf("texture %s is not known to this device", id)
		}
		delete(d.textures, id)
		return tex.Mat.Close()
	})
}

func (d *Device) Upload(
	ctx context.Context,
	id types.TextureID,
	data []byte,
) (_err error) {
	logger.Tracef(ctx, "Upload(%s, %d bytes)", id, len(data))
	defer func() { logger.Tracef(ctx, "/Upload: %v", _err) }()
	return xsync.DoR1(ctx, &d.locker, func() error {
		tex, ok := d.textures[id]
		if !ok {
			return fmt.Errorf("texture %s is not known to this device", id)
		}
		mat, err := gocv.NewMatFromBytes(tex.Mat.Rows(), tex.Mat.Cols(), tex.Mat.Type(), data)
		if err != nil {
			return fmt.Errorf("unable to wrap %d bytes into a mat: %w", len(data), err)
		}
		oldMat := tex.Mat
		tex.Mat = mat
		return oldMat.Close()
	})
}

func (d *Device) Download(
	ctx context.Context,
	id types.TextureID,
) (_ret []byte, _err error) {
	logger.Tracef(ctx, "Download(%s)", id)
	defer func() { logger.Tracef(ctx, "/Download: %d bytes, %v", len(_ret), _err) }()
	return xsync.DoR2(ctx, &d.locker, func() ([]byte, error) {
		tex, ok := d.textures[id]
		if !ok {
			return nil, fmt.Errorf("texture %s is not known to this device", id)
		}
		return tex.Mat.ToBytes(), nil
	})
}

func (d *Device) ResamplePass(
	ctx context.Context,
	src, dst types.TextureID,
	geom scaler.Geometry,
	interp types.InterpolationMode,
) (_err error) {
	logger.Tracef(ctx, "ResamplePass(%s -> %s, %s, %s)", src, dst, geom, interp)
	defer func() { logger.Tracef(ctx, "/ResamplePass: %v", _err) }()

	var interpFlag gocv.InterpolationFlags
	switch interp {
	case types.InterpolationModeNearest:
		interpFlag = gocv.InterpolationNearestNeighbor
	case types.InterpolationModeLinear:
		interpFlag = gocv.InterpolationLinear
	default:
		return scaler.ErrUnsupportedInterpolation{Mode: interp}
	}

	return xsync.DoR1(ctx, &d.locker, func() error {
		srcTex, ok := d.textures[src]
		if !ok {
			return fmt.Errorf("texture %s is not known to this device", src)
		}
		dstTex, ok := d.textures[dst]
		if !ok {
			return fmt.Errorf("texture %s is not known to this device", dst)
		}
		if srcTex.PixelFormat != dstTex.PixelFormat {
			return fmt.Errorf("unable to resample: src is %s while dst is %s; implicit format conversion is not allowed", srcTex.PixelFormat, dstTex.PixelFormat)
		}

		intermediate := gocv.NewMat()
		defer intermediate.Close()
		gocv.Resize(
			srcTex.Mat,
			&intermediate,
			image.Pt(int(geom.Intermediate.Width), int(geom.Intermediate.Height)),
			0, 0,
			interpFlag,
		)

		window := intermediate.Region(image.Rect(
			int(geom.CropX),
			int(geom.CropY),
			int(geom.CropX+geom.Target.Width),
			int(geom.CropY+geom.Target.Height),
		))
		defer window.Close()

		oldMat := dstTex.Mat
		dstTex.Mat = window.Clone()
		return oldMat.Close()
	})
}

// WaitIdle is trivial: OpenCV executes the pass synchronously.
func (d *Device) WaitIdle(ctx context.Context) error {
	return nil
}

func (d *Device) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()
	d.ClosureSignaler.Close(ctx)
	d.locker.Do(ctx, func() {
		for id, tex := range d.textures {
			if err := tex.Mat.Close(); err != nil {
				logger.Errorf(ctx, "unable to close the mat of %s: %v", id, err)
			}
			delete(d.textures, id)
		}
	})
	return nil
}
