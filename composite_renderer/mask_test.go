package composite_renderer

import (
	"image"
	"testing"
)

func TestRegionMask(t *testing.T) {
	bounds := image.Rect(0, 0, 1000, 1000)
	box := image.Rect(100, 100, 300, 300)

	mask := RegionMask(bounds, box)

	if mask.Bounds() != bounds {
		t.Fatalf("mask bounds %v, want %v", mask.Bounds(), bounds)
	}

	inside := []image.Point{{100, 100}, {300, 300}, {200, 200}, {100, 300}, {300, 100}}
	for _, pt := range inside {
		if got := mask.GrayAt(pt.X, pt.Y).Y; got != 255 {
			t.Fatalf("pixel %v = %d, want 255", pt, got)
		}
	}

	outside := []image.Point{{99, 100}, {100, 99}, {301, 300}, {300, 301}, {0, 0}, {999, 999}}
	for _, pt := range outside {
		if got := mask.GrayAt(pt.X, pt.Y).Y; got != 0 {
			t.Fatalf("pixel %v = %d, want 0", pt, got)
		}
	}

	var included int
	for y := 0; y < 1000; y++ {
		for x := 0; x < 1000; x++ {
			if mask.GrayAt(x, y).Y == 255 {
				included++
			}
		}
	}
	if want := 201 * 201; included != want {
		t.Fatalf("included pixel count %d, want %d", included, want)
	}
}

func TestRegionMaskClampsToCanvas(t *testing.T) {
	bounds := image.Rect(0, 0, 50, 50)
	mask := RegionMask(bounds, image.Rect(40, 40, 80, 80))

	if got := mask.GrayAt(49, 49).Y; got != 255 {
		t.Fatalf("pixel inside canvas not filled: %d", got)
	}
	if got := mask.GrayAt(39, 40).Y; got != 0 {
		t.Fatalf("pixel left of box filled: %d", got)
	}
}

func TestTileImagesSideBySide(t *testing.T) {
	left := image.NewRGBA(image.Rect(0, 0, 10, 20))
	right := image.NewRGBA(image.Rect(0, 0, 10, 20))

	sheet, err := Compositor().TileImages([]image.Image{left, right})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bounds := sheet.Bounds()
	if bounds.Dx() != 20 || bounds.Dy() != 20 {
		t.Fatalf("sheet is %dx%d, want 20x20", bounds.Dx(), bounds.Dy())
	}
}

func TestTileImagesEmpty(t *testing.T) {
	if _, err := Compositor().TileImages(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}
