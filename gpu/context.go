// context.go implements the shared device context with a serialized
// submission queue.

package gpu

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgscaler/logger"
	"github.com/xaionaro-go/xsync"
)

// Context is an explicitly passed handle to a shared device. Multiple graph
// nodes may share one Context; every submission to the device goes through
// WithQueue, which provides the scoped acquire/release of the submission
// queue (the lock is released on every exit path, including error paths).
type Context struct {
	Device Device

	queueLocker xsync.Mutex
}

func NewContext(device Device) *Context {
	return &Context{
		Device: device,
	}
}

func (c *Context) String() string {
	if c == nil || c.Device == nil {
		return "GPUContext(<nil>)"
	}
	return fmt.Sprintf("GPUContext(%s)", c.Device)
}

// WithQueue runs fn while holding the device submission queue.
func (c *Context) WithQueue(
	ctx context.Context,
	fn func(ctx context.Context, device Device) error,
) (_err error) {
	logger.Tracef(ctx, "WithQueue")
	defer func() { logger.Tracef(ctx, "/WithQueue: %v", _err) }()
	return xsync.DoR1(ctx, &c.queueLocker, func() error {
		return fn(ctx, c.Device)
	})
}

// Drain waits (under the submission queue) until the device has no
// in-flight work. It is used on teardown paths so that no submission
// outlives the code that issued it.
func (c *Context) Drain(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Drain")
	defer func() { logger.Debugf(ctx, "/Drain: %v", _err) }()
	return c.WithQueue(ctx, func(ctx context.Context, device Device) error {
		return device.WaitIdle(ctx)
	})
}

// Close drains the device and closes it. Only the owner of the Context
// (the device-context provider) is supposed to call this; nodes that
// merely borrowed the Context must not.
func (c *Context) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()
	if err := c.Drain(ctx); err != nil {
		return fmt.Errorf("unable to drain the device: %w", err)
	}
	return c.Device.Close(ctx)
}
