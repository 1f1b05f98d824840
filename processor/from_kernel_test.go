package processor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/kernel"
	"github.com/xaionaro-go/imgscaler/packet"
	"github.com/xaionaro-go/imgscaler/types"
	"github.com/xaionaro-go/observability"
)

func newServedProcessor(
	t *testing.T,
	cfg kernel.ResizeConfig,
) *FromKernel[*kernel.Resize] {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	k, err := kernel.NewResize(ctx, cfg, nil)
	require.NoError(t, err)

	p := NewFromKernel(ctx, k, OptionQueueSizeInput(4), OptionQueueSizeOutput(4))
	served := make(chan struct{})
	observability.Go(ctx, func(ctx context.Context) {
		defer close(served)
		p.Serve(ctx)
	})
	t.Cleanup(func() {
		cancel()
		<-served
	})
	return p
}

func testImage(t *testing.T, res types.Resolution) *frame.Buffer {
	t.Helper()
	buf, err := frame.NewBuffer(res, types.PixelFormatGray8)
	require.NoError(t, err)
	for i := range buf.Data {
		buf.Data[i] = byte(i % 256)
	}
	return buf
}

func TestFromKernelServe(t *testing.T) {
	p := newServedProcessor(t, kernel.ResizeConfig{
		InputTag:          packet.TagImage,
		ScaleMode:         types.ScaleModeStretch,
		InterpolationMode: types.InterpolationModeNearest,
		DimensionsPolicy:  kernel.DimensionsPolicyStrict,
	})

	src := testImage(t, types.Resolution{Width: 32, Height: 32})
	p.InputChan() <- packet.BuildDimensionsInput(100, types.Resolution{Width: 16, Height: 16})
	p.InputChan() <- packet.BuildImageInput(100, src)

	select {
	case output := <-p.OutputChan():
		require.Equal(t, types.Timestamp(100), output.Timestamp)
		require.Equal(t, types.Resolution{Width: 16, Height: 16}, output.Image.Resolution)
	case err := <-p.ErrorChan():
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the output")
	}

	// the Sent counter is bumped after the kernel call returns, which may
	// be slightly after the output became receivable
	require.Eventually(t, func() bool {
		return p.Counters.Sent.Load() == 1
	}, 5*time.Second, 10*time.Millisecond)
	require.EqualValues(t, 2, p.Counters.Received.Load())
	require.EqualValues(t, 0, p.Counters.Errored.Load())
}

func TestFromKernelErrorHaltsServing(t *testing.T) {
	p := newServedProcessor(t, kernel.ResizeConfig{
		InputTag:          packet.TagImage,
		ScaleMode:         types.ScaleModeStretch,
		InterpolationMode: types.InterpolationModeNearest,
		DimensionsPolicy:  kernel.DimensionsPolicyStrict,
	})

	// no dimension request was ever delivered: the image cannot be paired
	src := testImage(t, types.Resolution{Width: 8, Height: 8})
	p.InputChan() <- packet.BuildImageInput(100, src)

	select {
	case err := <-p.ErrorChan():
		require.ErrorAs(t, err, &kernel.ErrMismatchedTimestamp{})
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the error")
	}

	// the serve loop shut down and closed the channels
	_, ok := <-p.OutputChan()
	require.False(t, ok)
	require.EqualValues(t, 1, p.Counters.Errored.Load())
	require.Equal(t, kernel.StateClosed, p.Kernel.State())
}

func TestFromKernelClose(t *testing.T) {
	ctx := context.Background()

	k, err := kernel.NewResize(ctx, kernel.ResizeConfig{
		InputTag:          packet.TagImage,
		ScaleMode:         types.ScaleModeStretch,
		InterpolationMode: types.InterpolationModeNearest,
		DimensionsPolicy:  kernel.DimensionsPolicyStrict,
	}, nil)
	require.NoError(t, err)

	p := NewFromKernel(ctx, k)
	require.NoError(t, p.Close(ctx))
	require.NoError(t, p.Close(ctx))
	require.Equal(t, kernel.StateClosed, k.State())

	_, ok := <-p.OutputChan()
	require.False(t, ok)
	_, ok2 := <-p.ErrorChan()
	require.False(t, ok2)
}
