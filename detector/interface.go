package detector

import (
	"errors"
	"image"

	"face_hires/entities"
)

// Device selects where detector inference runs.
type Device string

const (
	DeviceCUDA Device = "cuda"
	DeviceCPU  Device = "cpu"
)

const (
	DefaultModelName = "yolov8n-face.onnx"
	DefaultModelURL  = "https://github.com/akanametov/yolov8-face/releases/download/v0.0.0/yolov8n-face.onnx"
)

// ErrModelUnavailable means the detection weights are missing, undownloadable
// or unreadable. The adapter never degrades to a silent empty result; the
// caller decides the degradation policy.
var ErrModelUnavailable = errors.New("face detection model unavailable")

type FaceDetector interface {
	Name() string

	// Predict runs the detector on img and returns normalized detections in
	// the detector's native order. Callers must not assume the result is
	// sorted by score.
	Predict(img image.Image, opts PredictOptions) ([]entities.Detection, error)
}

type PredictOptions struct {
	Confidence    float64
	IoU           float64
	InputSize     int
	Half          bool
	Device        Device
	MaxDetections int
	Augment       bool
	AgnosticNMS   bool
	RetinaMasks   bool

	// BuildMasks renders a region mask per detection.
	BuildMasks bool

	// Offload moves the model to a low-power device after the call to free
	// shared accelerator memory. Resource policy, not correctness.
	Offload bool
}

func DefaultPredictOptions() PredictOptions {
	return PredictOptions{
		Confidence:    0.5,
		IoU:           0.5,
		InputSize:     640,
		Half:          true,
		Device:        DeviceCUDA,
		MaxDetections: 5,
		Augment:       true,
		BuildMasks:    true,
	}
}
