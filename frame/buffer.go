// buffer.go defines the memory-resident image buffer.

// Package frame provides the image buffer representations that flow through
// the scaling node: memory-resident (Buffer) and GPU-resident (GPUBuffer).
package frame

import (
	"fmt"

	"github.com/xaionaro-go/imgscaler/types"
)

// Buffer is a memory-resident image: row-major pixel bytes with no row
// padding (stride == Width*BytesPerPixel).
//
// A Buffer is exclusively owned by the packet that carries it and must be
// treated as immutable once the packet was published downstream.
type Buffer struct {
	Resolution  types.Resolution
	PixelFormat types.PixelFormat
	Data        []byte
}

// NewBuffer allocates a zeroed buffer of the given geometry and format.
func NewBuffer(
	res types.Resolution,
	pixFmt types.PixelFormat,
) (*Buffer, error) {
	if !res.IsValid() {
		return nil, fmt.Errorf("unable to allocate a buffer of resolution %s: dimensions must be positive", res)
	}
	bpp := pixFmt.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("unable to allocate a buffer of pixel format '%s': the format is not supported", pixFmt)
	}
	return &Buffer{
		Resolution:  res,
		PixelFormat: pixFmt,
		Data:        make([]byte, res.PixelCount()*uint64(bpp)),
	}, nil
}

// BuildBuffer wraps already-existing pixel data without copying it.
func BuildBuffer(
	res types.Resolution,
	pixFmt types.PixelFormat,
	data []byte,
) (*Buffer, error) {
	if !res.IsValid() {
		return nil, fmt.Errorf("unable to build a buffer of resolution %s: dimensions must be positive", res)
	}
	bpp := pixFmt.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("unable to build a buffer of pixel format '%s': the format is not supported", pixFmt)
	}
	if expected := res.PixelCount() * uint64(bpp); uint64(len(data)) != expected {
		return nil, fmt.Errorf("unable to build a %s/%s buffer: expected %d bytes of pixel data, got %d", res, pixFmt, expected, len(data))
	}
	return &Buffer{
		Resolution:  res,
		PixelFormat: pixFmt,
		Data:        data,
	}, nil
}

func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(%s, %s)", b.Resolution, b.PixelFormat)
}

// BytesPerPixel returns the pixel stride of the buffer's format.
func (b *Buffer) BytesPerPixel() uint32 {
	return b.PixelFormat.BytesPerPixel()
}

// PixelBytes returns the bytes of the pixel at (x, y); the slice aliases
// the buffer's storage. The coordinates are not range-checked.
func (b *Buffer) PixelBytes(x, y uint32) []byte {
	bpp := uint64(b.BytesPerPixel())
	offset := (uint64(y)*uint64(b.Resolution.Width) + uint64(x)) * bpp
	return b.Data[offset : offset+bpp]
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	dataCopy := make([]byte, len(b.Data))
	copy(dataCopy, b.Data)
	return &Buffer{
		Resolution:  b.Resolution,
		PixelFormat: b.PixelFormat,
		Data:        dataCopy,
	}
}
