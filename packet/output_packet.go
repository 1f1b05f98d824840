package packet

import (
	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/types"
)

type Output struct {
	Commons
}

func BuildImageOutput(
	ts types.Timestamp,
	buf *frame.Buffer,
) Output {
	return Output{
		Commons: Commons{
			Timestamp: ts,
			Image:     buf,
		},
	}
}

func BuildGPUImageOutput(
	ts types.Timestamp,
	buf *frame.GPUBuffer,
) Output {
	return Output{
		Commons: Commons{
			Timestamp: ts,
			ImageGPU:  buf,
		},
	}
}
