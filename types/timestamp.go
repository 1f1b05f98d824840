// timestamp.go defines the logical Timestamp used to pair packets across streams.

// Package types provides common types and interfaces used throughout the imgscaler project.
package types

import (
	"fmt"
	"math"
)

// Timestamp is a monotonically increasing logical tag. Packets that belong to
// the same graph tick carry equal Timestamps, which is what allows an image
// packet to be paired with a concurrent dimension-request packet.
type Timestamp int64

const (
	TimestampUndefined = Timestamp(math.MinInt64)
)

func (ts Timestamp) String() string {
	if ts == TimestampUndefined {
		return "undefined"
	}
	return fmt.Sprintf("%d", int64(ts))
}

func (ts Timestamp) IsDefined() bool {
	return ts != TimestampUndefined
}
