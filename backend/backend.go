// backend.go resolves which backend variant serves a given image port tag.

package backend

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgscaler/gpu"
	"github.com/xaionaro-go/imgscaler/logger"
	"github.com/xaionaro-go/imgscaler/packet"
)

// New statically resolves the backend variant for the given image port
// tag. gpuCtx is required for packet.TagImageGPU and ignored otherwise.
func New(
	ctx context.Context,
	tag packet.Tag,
	gpuCtx *gpu.Context,
) (_ret Abstract, _err error) {
	logger.Debugf(ctx, "New(%s)", tag)
	defer func() { logger.Debugf(ctx, "/New: %v %v", _ret, _err) }()
	switch tag {
	case packet.TagImage:
		return NewSoftware(), nil
	case packet.TagImageGPU:
		return NewGPU(ctx, gpuCtx)
	}
	return nil, fmt.Errorf("unable to resolve a backend: '%s' is not an image port tag", tag)
}
