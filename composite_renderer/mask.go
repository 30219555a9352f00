package composite_renderer

import (
	"image"
	"image/color"
	"image/draw"
)

// RegionMask renders box as a binary inclusion mask on a fresh single-channel
// canvas of the given bounds: 0 everywhere except the box, which is filled
// 255 inclusive of its border. No anti-aliasing or feathering; blur is the
// generation backend's job via the mask-blur parameter.
//
// Deterministic, pure function of its inputs.
func RegionMask(bounds image.Rectangle, box image.Rectangle) *image.Gray {
	mask := image.NewGray(bounds)

	// Detection boxes treat Max as the last included pixel, Go rectangles
	// treat it as one past. Widen by one before intersecting with the canvas.
	fill := image.Rect(box.Min.X, box.Min.Y, box.Max.X+1, box.Max.Y+1).Intersect(bounds)
	draw.Draw(mask, fill, image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)

	return mask
}
