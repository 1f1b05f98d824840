// from_kernel.go wraps a kernel into channels an external scheduler can
// drive.

package processor

import (
	"context"
	"fmt"
	"sync"

	"github.com/facebookincubator/go-belt/tool/experimental/errmon"
	"github.com/xaionaro-go/imgscaler/helpers/closuresignaler"
	"github.com/xaionaro-go/imgscaler/kernel"
	"github.com/xaionaro-go/imgscaler/logger"
	"github.com/xaionaro-go/imgscaler/packet"
)

// FromKernel drives a kernel from an input channel: the scheduler is
// expected to deliver timestamp-paired packets into InputChan (the
// cross-stream matching itself happens outside of this node) and to
// consume OutputChan and ErrorChan.
type FromKernel[T kernel.Abstract] struct {
	*closuresignaler.ClosureSignaler
	Kernel   T
	Counters Counters

	inputCh  chan packet.Input
	outputCh chan packet.Output
	errorCh  chan error

	closeOnce sync.Once
}

func NewFromKernel[T kernel.Abstract](
	ctx context.Context,
	k T,
	opts ...Option,
) *FromKernel[T] {
	cfg := config{
		QueueSizeInput:  1,
		QueueSizeOutput: 1,
		QueueSizeError:  1,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return &FromKernel[T]{
		ClosureSignaler: closuresignaler.New(),
		Kernel:          k,
		inputCh:         make(chan packet.Input, cfg.QueueSizeInput),
		outputCh:        make(chan packet.Output, cfg.QueueSizeOutput),
		errorCh:         make(chan error, cfg.QueueSizeError),
	}
}

func (p *FromKernel[T]) String() string {
	return fmt.Sprintf("Processor(%s)", p.Kernel)
}

func (p *FromKernel[T]) InputChan() chan<- packet.Input {
	return p.inputCh
}

func (p *FromKernel[T]) OutputChan() <-chan packet.Output {
	return p.outputCh
}

func (p *FromKernel[T]) ErrorChan() <-chan error {
	return p.errorCh
}

// Serve pumps packets from the input channel through the kernel until the
// context is cancelled, the processor is closed, or the kernel halts. It
// is blocking; spawn it the way cmd/imgscale does if needed.
func (p *FromKernel[T]) Serve(ctx context.Context) {
	logger.Debugf(ctx, "Serve")
	defer logger.Debugf(ctx, "/Serve")
	defer func() {
		err := p.Close(ctx)
		errmon.ObserveErrorCtx(ctx, err)
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.CloseChan():
			return
		case <-p.Kernel.CloseChan():
			return
		case input, ok := <-p.inputCh:
			if !ok {
				return
			}
			p.Counters.Received.Add(1)
			isImage := input.Tag().IsImageTag()
			if err := p.Kernel.SendInput(ctx, input, p.outputCh); err != nil {
				p.Counters.Errored.Add(1)
				select {
				case p.errorCh <- err:
				case <-ctx.Done():
				}
				return
			}
			// the kernel emits exactly one output per image packet
			if isImage {
				p.Counters.Sent.Add(1)
			}
		}
	}
}

// Close closes the processor and the kernel underneath it.
func (p *FromKernel[T]) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()
	var err error
	p.closeOnce.Do(func() {
		p.ClosureSignaler.Close(ctx)
		err = p.Kernel.Close(ctx)
		close(p.outputCh)
		close(p.errorCh)
	})
	return err
}
