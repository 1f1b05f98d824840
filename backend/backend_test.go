package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/imgscaler/gpu"
	"github.com/xaionaro-go/imgscaler/gpu/emulated"
	"github.com/xaionaro-go/imgscaler/packet"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("Software", func(t *testing.T) {
		b, err := New(ctx, packet.TagImage, nil)
		require.NoError(t, err)
		require.IsType(t, (*Software)(nil), b)
		require.Equal(t, packet.TagImage, b.InputTag())
		require.NoError(t, b.Close(ctx))
	})

	t.Run("GPU", func(t *testing.T) {
		device := emulated.NewDevice()
		defer device.Close(ctx)
		b, err := New(ctx, packet.TagImageGPU, gpu.NewContext(device))
		require.NoError(t, err)
		require.IsType(t, (*GPU)(nil), b)
		require.Equal(t, packet.TagImageGPU, b.InputTag())
		require.NoError(t, b.Close(ctx))
	})

	t.Run("GPUWithoutContext", func(t *testing.T) {
		_, err := New(ctx, packet.TagImageGPU, nil)
		require.ErrorAs(t, err, &ErrBackendUnavailable{})
	})

	t.Run("UnknownTag", func(t *testing.T) {
		_, err := New(ctx, packet.Tag("VIDEO"), nil)
		require.Error(t, err)
	})
}
