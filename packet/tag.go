// tag.go defines the port tags of the scaling node.

// Package packet provides the timestamped units of data flowing through
// the scaling node's ports.
package packet

// Tag is a named port identifier. Which image tag is wired at node
// construction statically selects the backend variant (memory-resident
// for TagImage, GPU-resident for TagImageGPU); the selection is never
// re-evaluated per packet.
type Tag string

const (
	TagUndefined = Tag("")

	// TagImage carries memory-resident image buffers.
	TagImage = Tag("IMAGE")

	// TagImageGPU carries GPU-resident image buffers.
	TagImageGPU = Tag("IMAGE_GPU")

	// TagOutputDimensions carries dimension requests: the (width, height)
	// the paired image should be rescaled to.
	TagOutputDimensions = Tag("OUTPUT_DIMENSIONS")
)

func (t Tag) String() string {
	if t == TagUndefined {
		return "<undefined>"
	}
	return string(t)
}

// IsImageTag reports whether the tag carries image buffers (of either
// residency).
func (t Tag) IsImageTag() bool {
	return t == TagImage || t == TagImageGPU
}
