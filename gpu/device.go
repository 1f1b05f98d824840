// device.go defines the capability interface a GPU device has to provide
// for the GPU-resident backend to work.

// Package gpu abstracts the device-side collaborators of the scaling node:
// a Device that owns textures and executes resampling passes, and a Context
// that serializes access to the device's submission queue.
//
// Creating real device contexts (and bridging pixel data between host and
// device memory) is the job of external providers; this package only pins
// down the contract they implement. The emulated sub-package provides an
// in-process implementation used by tests and GPU-less environments.
package gpu

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgscaler/scaler"
	"github.com/xaionaro-go/imgscaler/types"
)

type Device interface {
	fmt.Stringer
	types.Closer

	// AllocTexture allocates a device texture of the given geometry and
	// format and returns its opaque handle.
	AllocTexture(ctx context.Context, res types.Resolution, pixFmt types.PixelFormat) (types.TextureID, error)

	// FreeTexture releases a texture previously allocated by this device.
	FreeTexture(ctx context.Context, id types.TextureID) error

	// Upload fills a texture with row-major pixel bytes. It exists for
	// CPU->GPU bridging collaborators and tests; the scaling node itself
	// never moves pixel data across the boundary.
	Upload(ctx context.Context, id types.TextureID, data []byte) error

	// Download reads a texture back into row-major pixel bytes.
	Download(ctx context.Context, id types.TextureID) ([]byte, error)

	// ResamplePass executes the device-side resampling pass from src into
	// dst. For types.InterpolationModeNearest the pass must sample exactly
	// the source index defined by scaler.NearestIndex for every output
	// pixel (see Geometry.SourceX/SourceY).
	ResamplePass(ctx context.Context, src, dst types.TextureID, geom scaler.Geometry, interp types.InterpolationMode) error

	// WaitIdle blocks until every submitted pass has completed.
	WaitIdle(ctx context.Context) error
}
