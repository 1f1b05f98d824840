// texture_id.go defines the opaque handle for device-resident textures.

package types

import (
	"fmt"
)

// TextureID is an opaque handle to a device-resident texture/buffer object.
// The handle is meaningful only to the gpu.Device that allocated it.
// The zero value is never a valid texture.
type TextureID uint64

const (
	TextureIDInvalid = TextureID(0)
)

func (id TextureID) String() string {
	if id == TextureIDInvalid {
		return "invalid"
	}
	return fmt.Sprintf("tex:%d", uint64(id))
}

func (id TextureID) IsValid() bool {
	return id != TextureIDInvalid
}
