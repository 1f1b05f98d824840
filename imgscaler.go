// Package imgscaler implements a dataflow node that rescales images to
// caller-requested dimensions under FIT/STRETCH scaling policies, with
// interchangeable memory-resident and GPU-resident backends.
package imgscaler

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgscaler/gpu"
	"github.com/xaionaro-go/imgscaler/kernel"
	"github.com/xaionaro-go/imgscaler/processor"
)

// NewResizeNode constructs a Resize kernel and wraps it into a processor
// the surrounding scheduler can drive through channels.
func NewResizeNode(
	ctx context.Context,
	cfg kernel.ResizeConfig,
	gpuCtx *gpu.Context,
	opts ...processor.Option,
) (*processor.FromKernel[*kernel.Resize], error) {
	k, err := kernel.NewResize(ctx, cfg, gpuCtx)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize the resize kernel: %w", err)
	}
	return processor.NewFromKernel(ctx, k, opts...), nil
}
