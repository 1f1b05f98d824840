// gpu.go implements the GPU-resident backend variant.

package backend

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/gpu"
	"github.com/xaionaro-go/imgscaler/helpers/closuresignaler"
	"github.com/xaionaro-go/imgscaler/logger"
	"github.com/xaionaro-go/imgscaler/packet"
	"github.com/xaionaro-go/imgscaler/scaler"
	"github.com/xaionaro-go/imgscaler/types"
)

// GPU operates on opaque device-side textures. The device context is an
// explicitly passed handle shared with other nodes; every submission is a
// scoped acquisition of its queue (see gpu.Context.WithQueue), so the lock
// is released on every exit path, including error paths.
type GPU struct {
	*closuresignaler.ClosureSignaler
	Context *gpu.Context
}

var _ Abstract = (*GPU)(nil)

func NewGPU(
	ctx context.Context,
	gpuCtx *gpu.Context,
) (*GPU, error) {
	if gpuCtx == nil || gpuCtx.Device == nil {
		return nil, ErrBackendUnavailable{Err: fmt.Errorf("no device context provided")}
	}
	return &GPU{
		ClosureSignaler: closuresignaler.New(),
		Context:         gpuCtx,
	}, nil
}

func (b *GPU) String() string {
	return fmt.Sprintf("GPUBackend(%s)", b.Context)
}

func (b *GPU) InputTag() packet.Tag {
	return packet.TagImageGPU
}

func (b *GPU) Load(
	ctx context.Context,
	input packet.Input,
) (_ret Representation, _err error) {
	logger.Tracef(ctx, "Load(%s)", &input)
	defer func() { logger.Tracef(ctx, "/Load: %v %v", _ret, _err) }()
	if b.IsClosed() {
		return Representation{}, fmt.Errorf("the backend is closed")
	}
	if tag := input.Tag(); tag != packet.TagImageGPU {
		return Representation{}, ErrUnexpectedTag{Expected: packet.TagImageGPU, Received: tag}
	}
	if !input.ImageGPU.PixelFormat.IsSupported() {
		return Representation{}, scaler.ErrUnsupportedFormat{PixelFormat: input.ImageGPU.PixelFormat}
	}
	if !input.ImageGPU.Texture.IsValid() {
		return Representation{}, fmt.Errorf("the input carries an invalid texture handle")
	}
	return Representation{GPUBuffer: input.ImageGPU}, nil
}

func (b *GPU) Resample(
	ctx context.Context,
	repr Representation,
	geom scaler.Geometry,
	interp types.InterpolationMode,
) (_ret Representation, _err error) {
	logger.Tracef(ctx, "Resample(%s, %s, %s)", repr, geom, interp)
	defer func() { logger.Tracef(ctx, "/Resample: %v %v", _ret, _err) }()
	if b.IsClosed() {
		return Representation{}, fmt.Errorf("the backend is closed")
	}
	if repr.GPUBuffer == nil {
		return Representation{}, fmt.Errorf("the representation does not contain a GPU buffer")
	}

	var dstTexture types.TextureID
	err := b.Context.WithQueue(ctx, func(ctx context.Context, device gpu.Device) error {
		tex, err := device.AllocTexture(ctx, geom.Target, repr.GPUBuffer.PixelFormat)
		if err != nil {
			return fmt.Errorf("unable to allocate the destination texture: %w", err)
		}
		if err := device.ResamplePass(ctx, repr.GPUBuffer.Texture, tex, geom, interp); err != nil {
			if freeErr := device.FreeTexture(ctx, tex); freeErr != nil {
				logger.Errorf(ctx, "unable to free texture %s after a failed pass: %v", tex, freeErr)
			}
			return fmt.Errorf("unable to execute the resample pass: %w", err)
		}
		dstTexture = tex
		return nil
	})
	if err != nil {
		return Representation{}, err
	}

	result, err := frame.BuildGPUBuffer(geom.Target, repr.GPUBuffer.PixelFormat, dstTexture)
	if err != nil {
		return Representation{}, err
	}
	return Representation{GPUBuffer: result}, nil
}

func (b *GPU) Store(
	ctx context.Context,
	repr Representation,
	ts types.Timestamp,
) (_ret packet.Output, _err error) {
	logger.Tracef(ctx, "Store(%s, %s)", repr, ts)
	defer func() { logger.Tracef(ctx, "/Store: %v", _err) }()
	if repr.GPUBuffer == nil {
		return packet.Output{}, fmt.Errorf("the representation does not contain a GPU buffer")
	}
	return packet.BuildGPUImageOutput(ts, repr.GPUBuffer), nil
}

// Close drains the in-flight device work. The device context itself is NOT
// closed: it is owned by the provider that constructed it and may still be
// shared with other nodes.
func (b *GPU) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()
	b.ClosureSignaler.Close(ctx)
	if err := b.Context.Drain(ctx); err != nil {
		return fmt.Errorf("unable to drain the device context: %w", err)
	}
	return nil
}
