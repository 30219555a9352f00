package composite_renderer

import (
	"errors"
	"image"
	"image/draw"
	"math"
)

type compositor struct{}

// TileImages lays the images out on a grid, row-major. Used for before/after
// preview sheets, so the common case is two images side by side.
func (c *compositor) TileImages(images []image.Image) (image.Image, error) {
	numImages := len(images)
	if numImages == 0 {
		return nil, errors.New("no images provided")
	}

	if numImages == 1 {
		return images[0], nil
	}

	rows, cols := determineLayout(numImages, images)
	canvasWidth, canvasHeight := calculateCanvasSize(images, rows, cols)

	canvas := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))

	var x, y, maxHeightInRow int
	for i, img := range images {
		if i%cols == 0 && i != 0 {
			x = 0
			y += maxHeightInRow
			maxHeightInRow = 0
		}

		bounds := img.Bounds()
		maxHeightInRow = max(maxHeightInRow, bounds.Dy())
		draw.Draw(canvas, image.Rect(x, y, x+bounds.Dx(), y+bounds.Dy()), img, bounds.Min, draw.Over)
		x += bounds.Dx()
	}

	return canvas, nil
}

func determineLayout(numImages int, images []image.Image) (rows, cols int) {
	cols = int(math.Ceil(math.Sqrt(float64(numImages))))
	rows = int(math.Ceil(float64(numImages) / float64(cols)))

	// Mostly-landscape sets read better stacked, mostly-portrait sets side by side.
	var portrait, landscape int
	for _, img := range images {
		bounds := img.Bounds()
		if bounds.Dx() > bounds.Dy() {
			landscape++
		} else if bounds.Dx() < bounds.Dy() {
			portrait++
		}
	}
	if landscape > portrait && landscape > numImages/2 {
		rows, cols = cols, rows
	}

	return
}

func calculateCanvasSize(images []image.Image, rows, cols int) (width, height int) {
	maxWidthPerColumn := make([]int, cols)
	maxHeightPerRow := make([]int, rows)

	for i, img := range images {
		row := i / cols
		col := i % cols
		bounds := img.Bounds()
		maxWidthPerColumn[col] = max(maxWidthPerColumn[col], bounds.Dx())
		maxHeightPerRow[row] = max(maxHeightPerRow[row], bounds.Dy())
	}

	for _, w := range maxWidthPerColumn {
		width += w
	}
	for _, h := range maxHeightPerRow {
		height += h
	}

	return
}
