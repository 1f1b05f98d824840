// software.go implements the memory-resident backend variant.

package backend

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgscaler/helpers/closuresignaler"
	"github.com/xaionaro-go/imgscaler/logger"
	"github.com/xaionaro-go/imgscaler/packet"
	"github.com/xaionaro-go/imgscaler/scaler"
	"github.com/xaionaro-go/imgscaler/types"
)

// Software operates on directly addressable row-major pixel arrays.
type Software struct {
	*closuresignaler.ClosureSignaler
}

var _ Abstract = (*Software)(nil)

func NewSoftware() *Software {
	return &Software{
		ClosureSignaler: closuresignaler.New(),
	}
}

func (b *Software) String() string {
	return "SoftwareBackend"
}

func (b *Software) InputTag() packet.Tag {
	return packet.TagImage
}

func (b *Software) Load(
	ctx context.Context,
	input packet.Input,
) (_ret Representation, _err error) {
	logger.Tracef(ctx, "Load(%s)", &input)
	defer func() { logger.Tracef(ctx, "/Load: %v %v", _ret, _err) }()
	if b.IsClosed() {
		return Representation{}, fmt.Errorf("the backend is closed")
	}
	if tag := input.Tag(); tag != packet.TagImage {
		return Representation{}, ErrUnexpectedTag{Expected: packet.TagImage, Received: tag}
	}
	if !input.Image.PixelFormat.IsSupported() {
		return Representation{}, scaler.ErrUnsupportedFormat{PixelFormat: input.Image.PixelFormat}
	}
	return Representation{Buffer: input.Image}, nil
}

func (b *Software) Resample(
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
	if repr.Buffer == nil {
		return Representation{}, fmt.Errorf("the representation does not contain a memory-resident buffer")
	}
	switch interp {
	case types.InterpolationModeNearest:
		result, err := scaler.ResampleNearest(ctx, repr.Buffer, geom)
		if err != nil {
			return Representation{}, fmt.Errorf("unable to resample: %w", err)
		}
		return Representation{Buffer: result}, nil
	case types.InterpolationModeLinear:
		result, err := scaler.ResampleLinear(ctx, repr.Buffer, geom)
		if err != nil {
			return Representation{}, fmt.Errorf("unable to resample: %w", err)
		}
		return Representation{Buffer: result}, nil
	}
	return Representation{}, scaler.ErrUnsupportedInterpolation{Mode: interp}
}

func (b *Software) Store(
	ctx context.Context,
	repr Representation,
	ts types.Timestamp,
) (_ret packet.Output, _err error) {
	logger.Tracef(ctx, "Store(%s, %s)", repr, ts)
	defer func() { logger.Tracef(ctx, "/Store: %v", _err) }()
	if repr.Buffer == nil {
		return packet.Output{}, fmt.Errorf("the representation does not contain a memory-resident buffer")
	}
	return packet.BuildImageOutput(ts, repr.Buffer), nil
}

func (b *Software) Close(ctx context.Context) error {
	logger.Debugf(ctx, "Close")
	defer logger.Debugf(ctx, "/Close")
	b.ClosureSignaler.Close(ctx)
	return nil
}
