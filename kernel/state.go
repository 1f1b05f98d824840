// state.go defines the lifecycle states of a kernel.

package kernel

import (
	"fmt"
)

type State int

const (
	StateUninitialized = State(0x0)
	StateReady         = State(0x1)
	StateClosed        = State(0x2)
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("unknown_%X", int64(s))
}
