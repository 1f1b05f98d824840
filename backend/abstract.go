// abstract.go defines the backend adapter contract.

// Package backend provides the two interchangeable execution strategies of
// the scaling node: memory-resident (Software) and GPU-resident (GPU).
//
// Both variants execute the same load -> resample -> store sequence; for
// identical input content, geometry and interpolation mode they must yield
// the same output geometry and the same set of distinct pixel values. The
// variant is selected statically, at node construction, by which image
// port tag is wired; it is never re-decided per packet.
package backend

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/packet"
	"github.com/xaionaro-go/imgscaler/scaler"
	"github.com/xaionaro-go/imgscaler/types"
)

// Representation is a backend's internal view of an image: exactly one of
// the members is set, matching the backend variant that produced it.
type Representation struct {
	Buffer    *frame.Buffer
	GPUBuffer *frame.GPUBuffer
}

func (r Representation) Resolution() types.Resolution {
	switch {
	case r.Buffer != nil:
		return r.Buffer.Resolution
	case r.GPUBuffer != nil:
		return r.GPUBuffer.Resolution
	}
	return types.Resolution{}
}

func (r Representation) PixelFormat() types.PixelFormat {
	switch {
	case r.Buffer != nil:
		return r.Buffer.PixelFormat
	case r.GPUBuffer != nil:
		return r.GPUBuffer.PixelFormat
	}
	return types.PixelFormatUnknown
}

func (r Representation) String() string {
	switch {
	case r.Buffer != nil:
		return r.Buffer.String()
	case r.GPUBuffer != nil:
		return r.GPUBuffer.String()
	}
	return "Representation(<empty>)"
}

type Abstract interface {
	fmt.Stringer
	types.Closer

	// InputTag is the image port tag this backend consumes (and emits on).
	InputTag() packet.Tag

	// Load unwraps an image packet into the backend's internal representation.
	Load(ctx context.Context, input packet.Input) (Representation, error)

	// Resample produces a new representation of geometry geom.Target from
	// repr, according to the interpolation mode.
	Resample(ctx context.Context, repr Representation, geom scaler.Geometry, interp types.InterpolationMode) (Representation, error)

	// Store wraps a representation back into an output packet carrying
	// the given timestamp.
	Store(ctx context.Context, repr Representation, ts types.Timestamp) (packet.Output, error)
}
