// dimensions_policy.go defines the DimensionsPolicy enum and its methods.

package kernel

import (
	"fmt"
	"strings"
)

// DimensionsPolicy decides what the kernel does with an image packet whose
// timestamp has no matching dimension-request packet. There is no implicit
// default: the zero value is rejected at construction (unless static output
// dimensions are configured, in which case the dimension stream is purely
// an override and the policy may stay undefined).
type DimensionsPolicy int

const (
	DimensionsPolicyUndefined = DimensionsPolicy(0x0)

	// DimensionsPolicyStrict requires a dimension request with exactly the
	// image packet's timestamp; otherwise processing fails with
	// ErrMismatchedTimestamp.
	DimensionsPolicyStrict = DimensionsPolicy(0x1)

	// DimensionsPolicyReuseLast reuses the most recently received dimension
	// request when there is no exact-timestamp match.
	DimensionsPolicyReuseLast = DimensionsPolicy(0x2)
)

func (p DimensionsPolicy) String() string {
	switch p {
	case DimensionsPolicyUndefined:
		return "undefined"
	case DimensionsPolicyStrict:
		return "strict"
	case DimensionsPolicyReuseLast:
		return "reuse_last"
	}
	return fmt.Sprintf("unknown_%X", int64(p))
}

func DimensionsPolicyFromString(s string) DimensionsPolicy {
	switch strings.Trim(strings.ToLower(s), " \n\r\t") {
	case "strict":
		return DimensionsPolicyStrict
	case "reuse_last":
		return DimensionsPolicyReuseLast
	}
	return -1
}

func (p *DimensionsPolicy) Parse(s string) error {
	v := DimensionsPolicyFromString(s)
	if v < 0 {
		return fmt.Errorf("unable to parse dimensions policy '%s'", s)
	}
	*p = v
	return nil
}
