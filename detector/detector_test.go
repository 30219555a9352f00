package detector

import (
	"testing"
)

func TestDefaultPredictOptions(t *testing.T) {
	opts := DefaultPredictOptions()

	if opts.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want 0.5", opts.Confidence)
	}
	if opts.IoU != 0.5 {
		t.Fatalf("iou = %v, want 0.5", opts.IoU)
	}
	if opts.InputSize != 640 {
		t.Fatalf("input size = %d, want 640", opts.InputSize)
	}
	if !opts.Half {
		t.Fatalf("half precision should default on")
	}
	if opts.Device != DeviceCUDA {
		t.Fatalf("device = %q, want %q", opts.Device, DeviceCUDA)
	}
	if opts.MaxDetections != 5 {
		t.Fatalf("max detections = %d, want 5", opts.MaxDetections)
	}
	if !opts.Augment {
		t.Fatalf("augment should default on")
	}
	if opts.AgnosticNMS || opts.RetinaMasks {
		t.Fatalf("agnostic nms and retina masks should default off")
	}
	if !opts.BuildMasks {
		t.Fatalf("build masks should default on")
	}
	if opts.Offload {
		t.Fatalf("offload should default off")
	}
}
