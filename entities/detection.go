package entities

import "image"

// Detection is one face candidate located by the detector. Detections are
// created fresh per predict call, consumed by one inpainting pass and
// discarded; they are never persisted.
type Detection struct {
	// Score is the detector's raw confidence in [0,1].
	Score float64

	// Box is the face bounding box in source-image pixel coordinates,
	// truncated to integers. Unlike the usual half-open Go rectangle, the
	// pixel column at Max.X and the row at Max.Y belong to the face region.
	Box image.Rectangle

	// Mask is a single-channel render of Box on a canvas matching the source
	// image: 0 excludes a pixel, 255 includes it. Nil when masks were not
	// requested.
	Mask *image.Gray

	// RelativeSize is the box area divided by the source-image area, in (0,1].
	RelativeSize float64
}
