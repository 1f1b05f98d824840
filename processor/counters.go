// counters.go defines the processing counters of a processor.

package processor

import (
	"fmt"

	"go.uber.org/atomic"
)

type Counters struct {
	Received atomic.Uint64
	Sent     atomic.Uint64
	Errored  atomic.Uint64
}

func (c *Counters) String() string {
	return fmt.Sprintf(
		"Counters(received: %d, sent: %d, errored: %d)",
		c.Received.Load(), c.Sent.Load(), c.Errored.Load(),
	)
}
