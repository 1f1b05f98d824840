package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/gpu"
	"github.com/xaionaro-go/imgscaler/gpu/emulated"
	"github.com/xaionaro-go/imgscaler/packet"
	"github.com/xaionaro-go/imgscaler/scaler"
	"github.com/xaionaro-go/imgscaler/types"
)

func newEmulatedBackend(t *testing.T) (*GPU, *emulated.Device) {
	t.Helper()
	ctx := context.Background()
	device := emulated.NewDevice()
	t.Cleanup(func() { device.Close(ctx) })
	b, err := NewGPU(ctx, gpu.NewContext(device))
	require.NoError(t, err)
	t.Cleanup(func() { b.Close(ctx) })
	return b, device
}

// uploadMask moves a host buffer into a fresh device texture and wraps it
// into a GPU-resident frame.
func uploadMask(
	t *testing.T,
	device *emulated.Device,
	src *frame.Buffer,
) *frame.GPUBuffer {
	t.Helper()
	ctx := context.Background()
	tex, err := device.AllocTexture(ctx, src.Resolution, src.PixelFormat)
	require.NoError(t, err)
	require.NoError(t, device.Upload(ctx, tex, src.Data))
	gpuBuf, err := frame.BuildGPUBuffer(src.Resolution, src.PixelFormat, tex)
	require.NoError(t, err)
	return gpuBuf
}

func TestGPUUnavailable(t *testing.T) {
	ctx := context.Background()

	_, err := NewGPU(ctx, nil)
	require.ErrorAs(t, err, &ErrBackendUnavailable{})

	_, err = NewGPU(ctx, &gpu.Context{})
	require.ErrorAs(t, err, &ErrBackendUnavailable{})
}

// TestGPUMatchesSoftware is the cross-backend contract: the same source
// pixels pushed through the GPU-resident path and through the
// memory-resident path must produce bit-identical NEAREST output.
func TestGPUMatchesSoftware(t *testing.T) {
	ctx := context.Background()
	gpuBackend, device := newEmulatedBackend(t)
	softBackend := NewSoftware()
	defer softBackend.Close(ctx)

	src := buildBinaryMask(t, types.Resolution{Width: 512, Height: 512})

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
			name:      "StretchDownscale",
			requested: types.Resolution{Width: 100, Height: 200},
			scaleMode: types.ScaleModeStretch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := resampleViaBackend(t, softBackend, src, tt.requested, tt.scaleMode, types.InterpolationModeNearest)

			gpuSrc := uploadMask(t, device, src)
			repr, err := gpuBackend.Load(ctx, packet.BuildGPUImageInput(0, gpuSrc))
			require.NoError(t, err)

			geom, err := scaler.CalcGeometry(src.Resolution, tt.requested, tt.scaleMode)
			require.NoError(t, err)

			resampled, err := gpuBackend.Resample(ctx, repr, geom, types.InterpolationModeNearest)
			require.NoError(t, err)

			output, err := gpuBackend.Store(ctx, resampled, 0)
			require.NoError(t, err)
			require.NotNil(t, output.ImageGPU)
			require.Equal(t, tt.requested, output.ImageGPU.Resolution)
			require.Equal(t, src.PixelFormat, output.ImageGPU.PixelFormat)

			actual, err := device.Download(ctx, output.ImageGPU.Texture)
			require.NoError(t, err)
			require.Equal(t, expected.Data, actual)
		})
	}
}

func TestGPULoadErrors(t *testing.T) {
	ctx := context.Background()
	b, _ := newEmulatedBackend(t)

	t.Run("WrongTag", func(t *testing.T) {
		src := buildBinaryMask(t, types.Resolution{Width: 8, Height: 8})
		_, err := b.Load(ctx, packet.BuildImageInput(0, src))
		require.ErrorAs(t, err, &ErrUnexpectedTag{})
	})

	t.Run("InvalidTexture", func(t *testing.T) {
		_, err := b.Load(ctx, packet.BuildGPUImageInput(0, &frame.GPUBuffer{
			Resolution:  types.Resolution{Width: 8, Height: 8},
			PixelFormat: types.PixelFormatGray8,
			Texture:     types.TextureIDInvalid,
		}))
		require.Error(t, err)
	})
}

func TestGPUFailedPassFreesTexture(t *testing.T) {
	ctx := context.Background()
	b, device := newEmulatedBackend(t)

	src := buildBinaryMask(t, types.Resolution{Width: 16, Height: 16})
	gpuSrc := uploadMask(t, device, src)
	countBefore := device.TextureCount(ctx)

	repr, err := b.Load(ctx, packet.BuildGPUImageInput(0, gpuSrc))
	require.NoError(t, err)
	geom, err := scaler.CalcGeometry(src.Resolution, types.Resolution{Width: 8, Height: 8}, types.ScaleModeStretch)
	require.NoError(t, err)

	// the emulated device only implements NEAREST, so this pass fails
	_, err = b.Resample(ctx, repr, geom, types.InterpolationModeLinear)
	require.ErrorAs(t, err, &scaler.ErrUnsupportedInterpolation{})

	// the pre-allocated destination texture must not leak
	require.Equal(t, countBefore, device.TextureCount(ctx))
}

func TestGPUCloseKeepsContextUsable(t *testing.T) {
	ctx := context.Background()
	device := emulated.NewDevice()
	defer device.Close(ctx)
	gpuCtx := gpu.NewContext(device)

	b, err := NewGPU(ctx, gpuCtx)
	require.NoError(t, err)
	require.NoError(t, b.Close(ctx))

	// the device context is provider-owned and survives the backend
	tex, err := device.AllocTexture(ctx, types.Resolution{Width: 4, Height: 4}, types.PixelFormatGray8)
	require.NoError(t, err)
	require.NoError(t, device.FreeTexture(ctx, tex))
}
