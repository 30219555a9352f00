//go:build !gocv
// +build !gocv

package detector

import (
	"errors"
	"image"
	"testing"
)

func TestStubPredictReportsModelUnavailable(t *testing.T) {
	yolo := NewYolo(t.TempDir())

	if yolo.Name() != "Face HiRes" {
		t.Fatalf("unexpected name: %q", yolo.Name())
	}

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	_, err := yolo.Predict(img, DefaultPredictOptions())
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}
