// device.go implements an in-process emulation of a GPU device.

// Package emulated provides a gpu.Device that executes every pass on the
// host, using exactly the same per-pixel mapping as the memory-resident
// code path. It exists for tests and for environments without a usable
// GPU; since it shares scaler.NearestIndex with the software backend, the
// two backends agree bit-for-bit on NEAREST output.
package emulated

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/gpu"
	"github.com/xaionaro-go/imgscaler/helpers/closuresignaler"
	"github.com/xaionaro-go/imgscaler/logger"
	"github.com/xaionaro-go/imgscaler/scaler"
	"github.com/xaionaro-go/imgscaler/types"
	"github.com/xaionaro-go/xsync"
)

type texture struct {
	Resolution  types.Resolution
	PixelFormat types.PixelFormat
	Data        []byte
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
	return "EmulatedGPU"
}

// ErrTextureNotFound is returned when a texture handle is not known to
// this device (it was freed, or belongs to another device).
type ErrTextureNotFound struct {
	ID types.TextureID
}

func (e ErrTextureNotFound) Error() string {
	return fmt.Sprintf("texture %s is not known to this device", e.ID)
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
	bpp := pixFmt.BytesPerPixel()
	if bpp == 0 {
		return types.TextureIDInvalid, scaler.ErrUnsupportedFormat{PixelFormat: pixFmt}
	}
	return xsync.DoR2(ctx, &d.locker, func() (types.TextureID, error) {
		d.nextTexture++
		id := d.nextTexture
		d.textures[id] = &texture{
			Resolution:  res,
			PixelFormat: pixFmt,
			Data:        make([]byte, res.PixelCount()*uint64(bpp)),
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
	return xsync.DoA1R1(ctx, &d.locker, func(id types.TextureID) error {
		if _, ok := d.textures[id]; !ok {
			return ErrTextureNotFound{ID: id}
		}
		delete(d.textures, id)
		return nil
	}, id)
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
			return ErrTextureNotFound{ID: id}
		}
		if len(data) != len(tex.Data) {
			return fmt.Errorf("unable to upload into %s: expected %d bytes, got %d", id, len(tex.Data), len(data))
		}
		copy(tex.Data, data)
		return nil
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
			return nil, ErrTextureNotFound{ID: id}
		}
		dataCopy := make([]byte, len(tex.Data))
		copy(dataCopy, tex.Data)
		return dataCopy, nil
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
	if interp != types.InterpolationModeNearest {
		return scaler.ErrUnsupportedInterpolation{Mode: interp}
	}
	return xsync.DoR1(ctx, &d.locker, func() error {
		srcTex, ok := d.textures[src]
		if !ok {
			return ErrTextureNotFound{ID: src}
		}
		dstTex, ok := d.textures[dst]
		if !ok {
			return ErrTextureNotFound{ID: dst}
		}
		if srcTex.PixelFormat != dstTex.PixelFormat {
			return fmt.Errorf("unable to resample: src is %s while dst is %s; implicit format conversion is not allowed", srcTex.PixelFormat, dstTex.PixelFormat)
		}
		if srcTex.Resolution != geom.Source || dstTex.Resolution != geom.Target {
			return fmt.Errorf("unable to resample: texture geometry (%s -> %s) does not match %s", srcTex.Resolution, dstTex.Resolution, geom)
		}
		srcBuf, err := frame.BuildBuffer(srcTex.Resolution, srcTex.PixelFormat, srcTex.Data)
		if err != nil {
			return err
		}
		result, err := scaler.ResampleNearest(ctx, srcBuf, geom)
		if err != nil {
			return err
		}
		copy(dstTex.Data, result.Data)
		return nil
	})
}

// WaitIdle is trivial: this device executes passes synchronously, so by
// the time ResamplePass returned there is nothing in flight.
func (d *Device) WaitIdle(ctx context.Context) error {
	return nil
}

func (d *Device) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()
	d.ClosureSignaler.Close(ctx)
	d.locker.Do(ctx, func() {
		d.textures = map[types.TextureID]*texture{}
	})
	return nil
}

// TextureCount reports how many textures are currently allocated; it
// exists for leak checks in tests.
func (d *Device) TextureCount(ctx context.Context) int {
	return xsync.DoR1(ctx, &d.locker, func() int {
		return len(d.textures)
	})
}
