// pixel_format.go defines the PixelFormat type and the formats the scaler supports.

package types

type PixelFormat string

func (pf PixelFormat) String() string {
	return string(pf)
}

const (
	PixelFormatUnknown PixelFormat = "unknown"

	// PixelFormatGray8 is a single 8-bit channel per pixel.
	PixelFormatGray8 PixelFormat = "gray8"

	// PixelFormatGrayF32 is a single 32-bit floating-point channel per pixel,
	// stored little-endian.
	PixelFormatGrayF32 PixelFormat = "grayf32"

	// PixelFormatRGBA is four 8-bit channels per pixel.
	PixelFormatRGBA PixelFormat = "rgba"
)

func PixelFormats() []PixelFormat {
	return []PixelFormat{
		PixelFormatGray8,
		PixelFormatGrayF32,
		PixelFormatRGBA,
	}
}

// BytesPerPixel returns the pixel stride of the format, or 0 if the format
// is not supported.
func (pf PixelFormat) BytesPerPixel() uint32 {
	switch pf {
	case PixelFormatGray8:
		return 1
	case PixelFormatGrayF32:
		return 4
	case PixelFormatRGBA:
		return 4
	}
	return 0
}

func (pf PixelFormat) IsSupported() bool {
	return pf.BytesPerPixel() != 0
}
