// gpu_buffer.go defines the GPU-resident image buffer.

package frame

import (
	"fmt"

	"github.com/xaionaro-go/imgscaler/types"
)

// GPUBuffer is a GPU-resident image: geometry and format are known on the
// host side, while the pixel storage is an opaque device-side texture.
//
// Filling and reading the texture is the job of CPU<->GPU bridging
// collaborators (see gpu.Device's Upload/Download); this node only ever
// hands the handle to the device that allocated it.
type GPUBuffer struct {
	Resolution  types.Resolution
	PixelFormat types.PixelFormat
	Texture     types.TextureID
}

// BuildGPUBuffer wraps an already-allocated device texture.
func BuildGPUBuffer(
	res types.Resolution,
	pixFmt types.PixelFormat,
	tex types.TextureID,
) (*GPUBuffer, error) {
	if !res.IsValid() {
		return nil, fmt.Errorf("unable to build a GPU buffer of resolution %s: dimensions must be positive", res)
	}
	if !pixFmt.IsSupported() {
		return nil, fmt.Errorf("unable to build a GPU buffer of pixel format '%s': the format is not supported", pixFmt)
	}
	if !tex.IsValid() {
		return nil, fmt.Errorf("unable to build a GPU buffer: the texture handle is invalid")
	}
	return &GPUBuffer{
		Resolution:  res,
		PixelFormat: pixFmt,
		Texture:     tex,
	}, nil
}

func (b *GPUBuffer) String() string {
	return fmt.Sprintf("GPUBuffer(%s, %s, %s)", b.Resolution, b.PixelFormat, b.Texture)
}
