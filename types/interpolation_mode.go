// interpolation_mode.go defines the InterpolationMode enum and its methods.

package types

import (
	"fmt"
	"strings"
)

type InterpolationMode int

const (
	InterpolationModeUndefined = InterpolationMode(0x0)

	// InterpolationModeNearest copies the value of exactly one source pixel
	// per output pixel; no blending, no new values synthesized. This is the
	// only mode both backends are required to implement, and the only one
	// with a bit-level contract (see scaler.NearestIndex).
	InterpolationModeNearest = InterpolationMode(0x1)

	// InterpolationModeLinear is an extension point; it is supported by the
	// memory-resident backend for 8-bit formats only and carries no
	// cross-backend bit-level contract.
	InterpolationModeLinear = InterpolationMode(0x2)
)

func InterpolationModes() []InterpolationMode {
	return []InterpolationMode{
		InterpolationModeNearest,
		InterpolationModeLinear,
	}
}

func (m InterpolationMode) String() string {
	switch m {
	case InterpolationModeUndefined:
		return "undefined"
	case InterpolationModeNearest:
		return "nearest"
	case InterpolationModeLinear:
		return "linear"
	}
	return fmt.Sprintf("unknown_%X", int64(m))
}

func InterpolationModeFromString(s string) InterpolationMode {
	switch strings.Trim(strings.ToLower(s), " \n\r\t") {
	case "nearest":
		return InterpolationModeNearest
	case "linear":
		return InterpolationModeLinear
	}
	return -1
}

func (m *InterpolationMode) Parse(s string) error {
	v := InterpolationModeFromString(s)
	if v < 0 {
		return fmt.Errorf("unable to parse interpolation mode '%s'", s)
	}
	*m = v
	return nil
}
