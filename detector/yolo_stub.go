//go:build !gocv
// +build !gocv

package detector

import (
	"fmt"
	"image"

	"face_hires/entities"
)

// Yolo without the gocv build tag has no inference backend; Predict reports
// the model as unavailable so callers fall back to pass-through.
type Yolo struct {
	modelDir  string
	modelName string
	modelURL  string
}

func NewYolo(modelDir string) *Yolo {
	return &Yolo{
		modelDir:  modelDir,
		modelName: DefaultModelName,
		modelURL:  DefaultModelURL,
	}
}

func (y *Yolo) Name() string {
	return "Face HiRes"
}

func (y *Yolo) Predict(img image.Image, opts PredictOptions) ([]entities.Detection, error) {
	_ = img
	_ = opts
	return nil, fmt.Errorf("%w: gocv build tag is not enabled", ErrModelUnavailable)
}
