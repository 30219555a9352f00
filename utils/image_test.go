package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	return img
}

func TestImageBase64RoundTrip(t *testing.T) {
	src := testImage(8, 6)

	encoded, err := ImageToBase64(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(encoded) == 0 {
		t.Fatalf("empty base64 output")
	}

	decoded, err := DecodeBase64Image(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != 8 || bounds.Dy() != 6 {
		t.Fatalf("decoded size %dx%d, want 8x6", bounds.Dx(), bounds.Dy())
	}

	r, _, _, a := decoded.At(0, 0).RGBA()
	if r == 0 || a == 0 {
		t.Fatalf("decoded pixel lost its color: r=%d a=%d", r, a)
	}
}

func TestDecodeBase64ImageWithDataPrefix(t *testing.T) {
	encoded, err := ImageToBase64(testImage(2, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := DecodeBase64Image("data:image/png;base64," + encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Bounds().Dx() != 2 {
		t.Fatalf("unexpected decoded width: %d", decoded.Bounds().Dx())
	}
}

func TestDecodeBase64ImageRejectsGarbage(t *testing.T) {
	if _, err := DecodeBase64Image("not base64 at all!"); err == nil {
		t.Fatalf("expected error for invalid input")
	}
}

func TestGetImageSize(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(20, 30)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, h, err := GetImageSize(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 20 || h != 30 {
		t.Fatalf("size %dx%d, want 20x30", w, h)
	}
}
