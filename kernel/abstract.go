// Package kernel provides the processing units of the scaling graph.
package kernel

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgscaler/packet"
	"github.com/xaionaro-go/imgscaler/types"
)

type Abstract interface {
	SendInputer
	fmt.Stringer
	types.Closer
	CloseChaner
}

type SendInputer interface {
	SendInput(
		ctx context.Context,
		input packet.Input,
		outputCh chan<- packet.Output,
	) error
}

type CloseChaner interface {
	CloseChan() <-chan struct{}
}
