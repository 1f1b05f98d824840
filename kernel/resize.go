// resize.go implements the rescaling kernel: the streaming node that pairs
// an image packet with a dimension request and emits the rescaled image.

package kernel

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-ng/xatomic"
	"github.com/xaionaro-go/imgscaler/backend"
	"github.com/xaionaro-go/imgscaler/gpu"
	"github.com/xaionaro-go/imgscaler/helpers/closuresignaler"
	"github.com/xaionaro-go/imgscaler/internal"
	"github.com/xaionaro-go/imgscaler/logger"
	"github.com/xaionaro-go/imgscaler/packet"
	"github.com/xaionaro-go/imgscaler/scaler"
	"github.com/xaionaro-go/imgscaler/types"
	"github.com/xaionaro-go/typing"
	"github.com/xaionaro-go/xsync"
)

type ResizeConfig struct {
	// InputTag selects the backend variant: packet.TagImage wires the
	// memory-resident backend, packet.TagImageGPU wires the GPU-resident
	// one. The output is emitted on the same tag.
	InputTag packet.Tag

	ScaleMode         types.ScaleMode
	InterpolationMode types.InterpolationMode

	// OutputDimensions, if set, is used whenever no dimension-request
	// packet applies (which also makes the dimension stream optional).
	OutputDimensions typing.Optional[types.Resolution]

	// DimensionsPolicy decides the missing-dimension-request case; see the
	// enum. Must be set explicitly unless OutputDimensions is set.
	DimensionsPolicy DimensionsPolicy
}

func (cfg ResizeConfig) Validate() error {
	if !cfg.InputTag.IsImageTag() {
		return fmt.Errorf("'%s' is not an image port tag", cfg.InputTag)
	}
	switch cfg.ScaleMode {
	case types.ScaleModeFit, types.ScaleModeStretch:
	default:
		return fmt.Errorf("unexpected scale mode: %v", cfg.ScaleMode)
	}
	switch cfg.InterpolationMode {
	case types.InterpolationModeNearest, types.InterpolationModeLinear:
	default:
		return fmt.Errorf("unexpected interpolation mode: %v", cfg.InterpolationMode)
	}
	if cfg.OutputDimensions.IsSet() {
		if dims := cfg.OutputDimensions.Get(); !dims.IsValid() {
			return scaler.ErrInvalidDimensions{Requested: dims}
		}
	}
	switch cfg.DimensionsPolicy {
	case DimensionsPolicyStrict, DimensionsPolicyReuseLast:
	case DimensionsPolicyUndefined:
		if !cfg.OutputDimensions.IsSet() {
			return fmt.Errorf("the dimensions policy must be chosen explicitly (or static output dimensions must be configured)")
		}
	default:
		return fmt.Errorf("unexpected dimensions policy: %v", cfg.DimensionsPolicy)
	}
	return nil
}

type dimensionRequest struct {
	Timestamp  types.Timestamp
	Dimensions types.Resolution
}

// Resize consumes a timestamped image packet and a timestamped dimension
// request, and emits exactly one output image packet per image packet,
// carrying the same timestamp.
//
// A per-packet error halts the kernel (it transitions to closed): the
// computation is deterministic, so a failure signals a systemic input
// problem, and retrying the same input cannot change the outcome.
type Resize struct {
	*closuresignaler.ClosureSignaler
	Config  ResizeConfig
	Backend backend.Abstract
	Locker  xsync.Mutex

	lastDims    *dimensionRequest
	lastImageTS types.Timestamp
}

var _ Abstract = (*Resize)(nil)

// NewResize validates the configuration and statically resolves the
// backend variant. Any error here is fatal: the graph must not start.
func NewResize(
	ctx context.Context,
	cfg ResizeConfig,
	gpuCtx *gpu.Context,
) (*Resize, error) {
	logger.Debugf(ctx, "NewResize: %s", spew.Sdump(cfg))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	b, err := backend.New(ctx, cfg.InputTag, gpuCtx)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve the backend: %w", err)
	}
	return &Resize{
		ClosureSignaler: closuresignaler.New(),
		Config:          cfg,
		Backend:         b,
		lastImageTS:     types.TimestampUndefined,
	}, nil
}

func (k *Resize) String() string {
	return fmt.Sprintf("Resize(%s, %s, %s)", k.Config.ScaleMode, k.Config.InterpolationMode, k.Backend)
}

func (k *Resize) State() State {
	if k == nil {
		return StateUninitialized
	}
	if k.IsClosed() {
		return StateClosed
	}
	return StateReady
}

func (k *Resize) SendInput(
	ctx context.Context,
	input packet.Input,
	outputCh chan<- packet.Output,
) (_err error) {
	logger.Tracef(ctx, "SendInput(%s)", &input)
	defer func() { logger.Tracef(ctx, "/SendInput: %v", _err) }()

	if k.IsClosed() {
		return ErrClosed{}
	}
	err := xsync.DoA3R1(ctx, &k.Locker, k.processInput, ctx, input, outputCh)
	if err != nil {
		if closeErr := k.Close(ctx); closeErr != nil {
			logger.Errorf(ctx, "unable to close the kernel after a processing error: %v", closeErr)
		}
		return err
	}
	return nil
}

func (k *Resize) processInput(
	ctx context.Context,
	input packet.Input,
	outputCh chan<- packet.Output,
) error {
	switch tag := input.Tag(); tag {
	case packet.TagOutputDimensions:
		return k.processDimensions(ctx, input)
	case k.Config.InputTag:
		return k.processImage(ctx, input, outputCh)
	default:
		return backend.ErrUnexpectedTag{Expected: k.Config.InputTag, Received: tag}
	}
}

func (k *Resize) processDimensions(
	ctx context.Context,
	input packet.Input,
) error {
	dims := *input.OutputDimensions
	if !dims.IsValid() {
		return scaler.ErrInvalidDimensions{Requested: dims}
	}
	if k.lastImageTS.IsDefined() && input.Timestamp <= k.lastImageTS {
		return ErrMismatchedTimestamp{
			Timestamp: input.Timestamp,
			Reason:    fmt.Sprintf("the dimension request is stale: an image at timestamp %s was already processed", k.lastImageTS),
		}
	}
	xatomic.StorePointer(&k.lastDims, &dimensionRequest{
		Timestamp:  input.Timestamp,
		Dimensions: dims,
	})
	return nil
}

func (k *Resize) processImage(
	ctx context.Context,
	input packet.Input,
	outputCh chan<- packet.Output,
) error {
	if k.lastImageTS.IsDefined() && input.Timestamp <= k.lastImageTS {
		return ErrMismatchedTimestamp{
			Timestamp: input.Timestamp,
			Reason:    fmt.Sprintf("timestamps must be monotonically increasing (the previous image was at %s)", k.lastImageTS),
		}
	}

	requested, err := k.resolveDimensions(input.Timestamp)
	if err != nil {
		return err
	}

	repr, err := k.Backend.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("unable to load the input image: %w", err)
	}
	geom, err := scaler.CalcGeometry(repr.Resolution(), requested, k.Config.ScaleMode)
	if err != nil {
		return fmt.Errorf("unable to calculate the geometry: %w", err)
	}
	resampled, err := k.Backend.Resample(ctx, repr, geom, k.Config.InterpolationMode)
	if err != nil {
		return err
	}
	output, err := k.Backend.Store(ctx, resampled, input.Timestamp)
	if err != nil {
		return fmt.Errorf("unable to store the output image: %w", err)
	}
	internal.Assert(ctx, output.Timestamp == input.Timestamp, output.Timestamp, input.Timestamp)

	k.lastImageTS = input.Timestamp
	select {
	case <-ctx.Done():
		return ctx.Err()
	case outputCh <- output:
	}
	return nil
}

func (k *Resize) resolveDimensions(
	ts types.Timestamp,
) (types.Resolution, error) {
	last := xatomic.LoadPointer(&k.lastDims)
	if last != nil && last.Timestamp == ts {
		return last.Dimensions, nil
	}
	if k.Config.DimensionsPolicy == DimensionsPolicyReuseLast && last != nil {
		return last.Dimensions, nil
	}
	if k.Config.OutputDimensions.IsSet() {
		return k.Config.OutputDimensions.Get(), nil
	}
	return types.Resolution{}, ErrMismatchedTimestamp{
		Timestamp: ts,
		Reason:    "no dimension request is available for this timestamp",
	}
}

// Close drains any in-flight backend work and releases the adapter
// resources; it is idempotent.
func (k *Resize) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()
	var err error
	k.Locker.Do(ctx, func() {
		if k.ClosureSignaler.IsClosed() {
			return
		}
		k.ClosureSignaler.Close(ctx)
		err = k.Backend.Close(ctx)
	})
	return err
}
