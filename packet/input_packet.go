package packet

import (
	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/types"
)

type Input struct {
	Commons
}

func BuildImageInput(
	ts types.Timestamp,
	buf *frame.Buffer,
) Input {
	return Input{
		Commons: Commons{
			Timestamp: ts,
			Image:     buf,
		},
	}
}

func BuildGPUImageInput(
	ts types.Timestamp,
	buf *frame.GPUBuffer,
) Input {
	return Input{
		Commons: Commons{
			Timestamp: ts,
			ImageGPU:  buf,
		},
	}
}

func BuildDimensionsInput(
	ts types.Timestamp,
	dims types.Resolution,
) Input {
	return Input{
		Commons: Commons{
			Timestamp:        ts,
			OutputDimensions: &dims,
		},
	}
}
