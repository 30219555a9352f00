package facehires

import (
	"face_hires/entities"
)

// Fixed region-filter policy. Regions below the lower bound are noise;
// regions above the upper bound cover almost the whole frame, which means
// the detector failed, not that the frame is one giant face.
const (
	minRelativeSize = 0.0002
	maxRelativeSize = 0.8
)

// accept reports whether a detection is worth an inpainting pass. The lower
// bound is exclusive and the upper bound inclusive; a detection without a
// mask is unusable regardless of size.
func accept(face entities.Detection) bool {
	if face.Mask == nil {
		return false
	}
	return face.RelativeSize > minRelativeSize && face.RelativeSize <= maxRelativeSize
}
