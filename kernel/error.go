// error.go defines the typed errors of the kernel package.

package kernel

import (
	"fmt"

	"github.com/xaionaro-go/imgscaler/types"
)

type ErrClosed struct{}

func (ErrClosed) Error() string {
	return "the kernel is closed"
}

// ErrMismatchedTimestamp is returned when an image packet cannot be paired
// with a dimension-request packet under the configured pairing policy.
type ErrMismatchedTimestamp struct {
	Timestamp types.Timestamp
	Reason    string
}

func (e ErrMismatchedTimestamp) Error() string {
	return fmt.Sprintf("unable to pair the packet at timestamp %s: %s", e.Timestamp, e.Reason)
}

type ErrNotImplemented struct {
	Err error
}

func (e ErrNotImplemented) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("not implemented: %v", e.Err)
	}
	return "not implemented"
}

func (e ErrNotImplemented) Unwrap() error {
	return e.Err
}
