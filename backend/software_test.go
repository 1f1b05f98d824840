package backend

import (
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/packet"
	"github.com/xaionaro-go/imgscaler/scaler"
	"github.com/xaionaro-go/imgscaler/types"
)

// buildBinaryMask builds a gray8 buffer that contains only the values 0 and
// 255, laid out as wide horizontal bands so that any downscale still samples
// both of them.
func buildBinaryMask(t *testing.T, res types.Resolution) *frame.Buffer {
	t.Helper()
	buf, err := frame.NewBuffer(res, types.PixelFormatGray8)
	require.NoError(t, err)
	bandHeight := res.Height / 4
	require.NotZero(t, bandHeight)
	for y := uint32(0); y < res.Height; y++ {
		value := byte(0)
		if (y/bandHeight)%2 == 1 {
			value = 255
		}
		rowOffset := y * res.Width
		for x := uint32(0); x < res.Width; x++ {
			buf.Data[rowOffset+x] = value
		}
	}
	return buf
}

func valueSet(t *testing.T, buf *frame.Buffer) map[string]struct{} {
	t.Helper()
	bpp := buf.BytesPerPixel()
	set := map[string]struct{}{}
	for offset := uint32(0); offset < uint32(len(buf.Data)); offset += bpp {
		set[string(buf.Data[offset:offset+bpp])] = struct{}{}
	}
	return set
}

func resampleViaBackend(
	t *testing.T,
	b Abstract,
	src *frame.Buffer,
	requested types.Resolution,
	scaleMode types.ScaleMode,
	interp types.InterpolationMode,
) *frame.Buffer {
	t.Helper()
	ctx := context.Background()

	repr, err := b.Load(ctx, packet.BuildImageInput(0, src))
	require.NoError(t, err)

	geom, err := scaler.CalcGeometry(src.Resolution, requested, scaleMode)
	require.NoError(t, err)

	resampled, err := b.Resample(ctx, repr, geom, interp)
	require.NoError(t, err)

	output, err := b.Store(ctx, resampled, 0)
	require.NoError(t, err)
	require.NotNil(t, output.Image)
	require.Equal(t, requested, output.Image.Resolution)
	require.Equal(t, src.PixelFormat, output.Image.PixelFormat)
	return output.Image
}

func TestSoftwareNearestPreservesMaskValues(t *testing.T) {
	b := NewSoftware()
	defer b.Close(context.Background())

	src := buildBinaryMask(t, types.Resolution{Width: 512, Height: 512})
	srcValues := valueSet(t, src)
	require.Len(t, srcValues, 2)

	tests := []struct {
		name      string
		requested types.Resolution
		scaleMode types.ScaleMode
	}{
		{
			name:      "FitDownscale",
			requested: types.Resolution{Width: 256, Height: 333},
			scaleMode: types.ScaleModeFit,
		},
		{
			name:      "StretchIdentity",
			requested: types.Resolution{Width: 512, Height: 512},
			scaleMode: types.ScaleModeStretch,
		},
		{
			name:      "StretchUpscale",
			requested: types.Resolution{Width: 800, Height: 600},
			scaleMode: types.ScaleModeStretch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := resampleViaBackend(t, b, src, tt.requested, tt.scaleMode, types.InterpolationModeNearest)
			require.Equal(t, srcValues, valueSet(t, dst))
		})
	}
}

func TestSoftwareNearestIdempotent(t *testing.T) {
	b := NewSoftware()
	defer b.Close(context.Background())

	src := buildBinaryMask(t, types.Resolution{Width: 64, Height: 64})
	res := src.Resolution

	first := resampleViaBackend(t, b, src, res, types.ScaleModeStretch, types.InterpolationModeNearest)
	second := resampleViaBackend(t, b, first, res, types.ScaleModeStretch, types.InterpolationModeNearest)
	require.Equal(t, first.Data, second.Data)
}

// TestSoftwareNearestFormatIndependent checks that NEAREST is a pure index
// remap: the same mask rendered as gray8 and as grayf32 must select the same
// source pixels.
func TestSoftwareNearestFormatIndependent(t *testing.T) {
	b := NewSoftware()
	defer b.Close(context.Background())

	res := types.Resolution{Width: 128, Height: 128}
	mask8 := buildBinaryMask(t, res)

	maskF32, err := frame.NewBuffer(res, types.PixelFormatGrayF32)
	require.NoError(t, err)
	for i, v := range mask8.Data {
		var f float32
		if v != 0 {
			f = 1.0
		}
		binary.LittleEndian.PutUint32(maskF32.Data[i*4:], math.Float32bits(f))
	}

	requested := types.Resolution{Width: 48, Height: 57}
	dst8 := resampleViaBackend(t, b, mask8, requested, types.ScaleModeFit, types.InterpolationModeNearest)
	dstF32 := resampleViaBackend(t, b, maskF32, requested, types.ScaleModeFit, types.InterpolationModeNearest)

	for i, v := range dst8.Data {
		f := math.Float32frombits(binary.LittleEndian.Uint32(dstF32.Data[i*4:]))
		if v != 0 {
			require.Equal(t, float32(1.0), f, "pixel %d", i)
		} else {
			require.Equal(t, float32(0.0), f, "pixel %d", i)
		}
	}
}

func TestSoftwareLinear(t *testing.T) {
	b := NewSoftware()
	defer b.Close(context.Background())

	t.Run("Gray8", func(t *testing.T) {
		src := buildBinaryMask(t, types.Resolution{Width: 64, Height: 64})
		dst := resampleViaBackend(t, b, src, types.Resolution{Width: 32, Height: 32}, types.ScaleModeStretch, types.InterpolationModeLinear)
		require.Equal(t, types.Resolution{Width: 32, Height: 32}, dst.Resolution)
	})

	t.Run("GrayF32Unsupported", func(t *testing.T) {
		ctx := context.Background()
		src, err := frame.NewBuffer(types.Resolution{Width: 8, Height: 8}, types.PixelFormatGrayF32)
		require.NoError(t, err)
		repr, err := b.Load(ctx, packet.BuildImageInput(0, src))
		require.NoError(t, err)
		geom, err := scaler.CalcGeometry(src.Resolution, types.Resolution{Width: 4, Height: 4}, types.ScaleModeStretch)
		require.NoError(t, err)
		_, err = b.Resample(ctx, repr, geom, types.InterpolationModeLinear)
		require.ErrorAs(t, err, &scaler.ErrUnsupportedFormat{})
	})
}

func TestSoftwareLoadErrors(t *testing.T) {
	ctx := context.Background()
	b := NewSoftware()
	defer b.Close(ctx)

	t.Run("WrongTag", func(t *testing.T) {
		gpuBuf, err := frame.BuildGPUBuffer(types.Resolution{Width: 8, Height: 8}, types.PixelFormatGray8, 1)
		require.NoError(t, err)
		_, err = b.Load(ctx, packet.BuildGPUImageInput(0, gpuBuf))
		require.ErrorAs(t, err, &ErrUnexpectedTag{})
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		src := &frame.Buffer{
			Resolution:  types.Resolution{Width: 2, Height: 2},
			PixelFormat: types.PixelFormat("nv12"),
			Data:        make([]byte, 4),
		}
		_, err := b.Load(ctx, packet.BuildImageInput(0, src))
		require.ErrorAs(t, err, &scaler.ErrUnsupportedFormat{})
	})
}

func TestSoftwareUnsupportedInterpolation(t *testing.T) {
	ctx := context.Background()
	b := NewSoftware()
	defer b.Close(ctx)

	src := buildBinaryMask(t, types.Resolution{Width: 8, Height: 8})
	repr, err := b.Load(ctx, packet.BuildImageInput(0, src))
	require.NoError(t, err)
	geom, err := scaler.CalcGeometry(src.Resolution, types.Resolution{Width: 4, Height: 4}, types.ScaleModeStretch)
	require.NoError(t, err)
	_, err = b.Resample(ctx, repr, geom, types.InterpolationModeUndefined)
	require.ErrorAs(t, err, &scaler.ErrUnsupportedInterpolation{})
}

func TestSoftwareClosed(t *testing.T) {
	ctx := context.Background()
	b := NewSoftware()
	require.NoError(t, b.Close(ctx))

	src := buildBinaryMask(t, types.Resolution{Width: 8, Height: 8})
	_, err := b.Load(ctx, packet.BuildImageInput(0, src))
	require.Error(t, err)
}
