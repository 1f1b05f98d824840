// packet_commons.go defines the fields shared by input and output packets.

package packet

import (
	"fmt"

	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/types"
)

// Commons is the payload of a packet: a timestamp plus exactly one of the
// union members below (which one is set determines the port tag).
type Commons struct {
	Timestamp types.Timestamp

	Image            *frame.Buffer
	ImageGPU         *frame.GPUBuffer
	OutputDimensions *types.Resolution
}

// Tag derives the port tag from which union member is set.
func (c *Commons) Tag() Tag {
	switch {
	case c.Image != nil:
		return TagImage
	case c.ImageGPU != nil:
		return TagImageGPU
	case c.OutputDimensions != nil:
		return TagOutputDimensions
	}
	return TagUndefined
}

func (c *Commons) String() string {
	switch tag := c.Tag(); tag {
	case TagImage:
		return fmt.Sprintf("Packet(%s@%s: %s)", tag, c.Timestamp, c.Image)
	case TagImageGPU:
		return fmt.Sprintf("Packet(%s@%s: %s)", tag, c.Timestamp, c.ImageGPU)
	case TagOutputDimensions:
		return fmt.Sprintf("Packet(%s@%s: %s)", tag, c.Timestamp, c.OutputDimensions)
	}
	return fmt.Sprintf("Packet(<empty>@%s)", c.Timestamp)
}
