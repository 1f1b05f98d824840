// error.go defines the typed errors of the backend package.

package backend

import (
	"fmt"

	"github.com/xaionaro-go/imgscaler/packet"
)

// ErrBackendUnavailable is returned when the GPU-resident variant was
// selected, but no usable device context was provided.
type ErrBackendUnavailable struct {
	Err error
}

func (e ErrBackendUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("the backend is unavailable: %v", e.Err)
	}
	return "the backend is unavailable"
}

func (e ErrBackendUnavailable) Unwrap() error {
	return e.Err
}

// ErrUnexpectedTag is returned when a packet arrives on a tag the resolved
// backend variant is not wired to.
type ErrUnexpectedTag struct {
	Expected packet.Tag
	Received packet.Tag
}

func (e ErrUnexpectedTag) Error() string {
	return fmt.Sprintf("unexpected port tag: expected '%s', received '%s'", e.Expected, e.Received)
}
