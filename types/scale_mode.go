// scale_mode.go defines the ScaleMode enum and its methods.

package types

import (
	"fmt"
	"strings"
)

type ScaleMode int

const (
	ScaleModeUndefined = ScaleMode(0x0)

	// ScaleModeFit preserves the aspect ratio of the source content, while
	// still producing exactly the requested output size: the source is scaled
	// uniformly until it covers the requested box and the excess is cropped
	// symmetrically (see scaler.CalcGeometry).
	ScaleModeFit = ScaleMode(0x1)

	// ScaleModeStretch maps the source dimensions directly onto the requested
	// dimensions, ignoring the aspect ratio.
	ScaleModeStretch = ScaleMode(0x2)
)

func ScaleModes() []ScaleMode {
	return []ScaleMode{
		ScaleModeFit,
		ScaleModeStretch,
	}
}

func (m ScaleMode) String() string {
	switch m {
	case ScaleModeUndefined:
		return "undefined"
	case ScaleModeFit:
		return "fit"
	case ScaleModeStretch:
		return "stretch"
	}
	return fmt.Sprintf("unknown_%X", int64(m))
}

func ScaleModeFromString(s string) ScaleMode {
	switch strings.Trim(strings.ToLower(s), " \n\r\t") {
	case "fit":
		return ScaleModeFit
	case "stretch":
		return ScaleModeStretch
	}
	return -1
}

func (m *ScaleMode) Parse(s string) error {
	v := ScaleModeFromString(s)
	if v < 0 {
		return fmt.Errorf("unable to parse scale mode '%s'", s)
	}
	*m = v
	return nil
}
