package packet

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/types"
)

func TestTagDerivation(t *testing.T) {
	buf, err := frame.NewBuffer(types.Resolution{Width: 2, Height: 2}, types.PixelFormatGray8)
	require.NoError(t, err)
	gpuBuf, err := frame.BuildGPUBuffer(types.Resolution{Width: 2, Height: 2}, types.PixelFormatGray8, 1)
	require.NoError(t, err)

	tests := []struct {
		name        string
		input       Input
		expectedTag Tag
	}{
		{"Image", BuildImageInput(10, buf), TagImage},
		{"ImageGPU", BuildGPUImageInput(10, gpuBuf), TagImageGPU},
		{"Dimensions", BuildDimensionsInput(10, types.Resolution{Width: 4, Height: 4}), TagOutputDimensions},
		{"Empty", Input{}, TagUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expectedTag, tt.input.Tag())
			require.Equal(t, tt.expectedTag.IsImageTag(), tt.expectedTag == TagImage || tt.expectedTag == TagImageGPU)
		})
	}
}

func TestBuildDimensionsInputCopiesValue(t *testing.T) {
	dims := types.Resolution{Width: 4, Height: 4}
	input := BuildDimensionsInput(10, dims)
	dims.Width = 999
	require.Equal(t, uint32(4), input.OutputDimensions.Width)
}
