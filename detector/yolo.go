//go:build gocv
// +build gocv

package detector

import (
	"fmt"
	"image"
	"log"
	"strings"
	"sync"

	"gocv.io/x/gocv"

	"face_hires/composite_renderer"
	"face_hires/entities"
	"face_hires/modelloader"
)

// Yolo runs a YOLOv8 face model through OpenCV's DNN module. The model is
// loaded lazily, once per process.
type Yolo struct {
	mu        sync.Mutex
	net       *gocv.Net
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

func (y *Yolo) load() error {
	if y.net != nil {
		return nil
	}

	files, err := modelloader.LoadModels(y.modelDir, y.modelURL, y.modelName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	for _, file := range files {
		if !strings.Contains(file, y.modelName) {
			continue
		}
		log.Printf("Loading: type=FaceHires model=%s", file)
		net := gocv.ReadNetFromONNX(file)
		if net.Empty() {
			return fmt.Errorf("%w: unreadable model %s", ErrModelUnavailable, file)
		}
		y.net = &net
		return nil
	}

	return fmt.Errorf("%w: model=%s dir=%s url=%s", ErrModelUnavailable, y.modelName, y.modelDir, y.modelURL)
}

func (y *Yolo) toDevice(device Device, half bool) {
	backend, target := gocv.NetBackendDefault, gocv.NetTargetCPU
	if device == DeviceCUDA {
		backend = gocv.NetBackendCUDA
		target = gocv.NetTargetCUDA
		if half {
			target = gocv.NetTargetCUDAFP16
		}
	}
	_ = y.net.SetPreferableBackend(backend)
	_ = y.net.SetPreferableTarget(target)
}

func (y *Yolo) Predict(img image.Image, opts PredictOptions) ([]entities.Detection, error) {
	if img == nil {
		return nil, nil
	}

	y.mu.Lock()
	defer y.mu.Unlock()

	if err := y.load(); err != nil {
		return nil, err
	}

	y.toDevice(opts.Device, opts.Half)

	boxes, scores, err := y.forward(img, opts)
	if err != nil {
		return nil, err
	}

	if opts.Offload {
		y.toDevice(DeviceCPU, false)
		if memory, err := entities.CurrentMemory(); err == nil {
			log.Printf("FaceHires offload: ram=%v", memory.RAM.Readable())
		}
	}

	keep := gocv.NMSBoxes(boxes, scores, float32(opts.Confidence), float32(opts.IoU))
	if opts.MaxDetections > 0 && len(keep) > opts.MaxDetections {
		keep = keep[:opts.MaxDetections]
	}

	bounds := img.Bounds()
	imageArea := float64(bounds.Dx() * bounds.Dy())

	var result []entities.Detection
	for _, idx := range keep {
		// Detection boxes treat Max as the last included pixel; clamp to the
		// canvas accordingly.
		raw := boxes[idx]
		x0, y0 := max(raw.Min.X, bounds.Min.X), max(raw.Min.Y, bounds.Min.Y)
		x1, y1 := min(raw.Max.X, bounds.Max.X-1), min(raw.Max.Y, bounds.Max.Y-1)
		if x1 <= x0 || y1 <= y0 {
			continue
		}

		detection := entities.Detection{
			Score:        float64(scores[idx]),
			Box:          image.Rect(x0, y0, x1, y1),
			RelativeSize: float64((x1-x0)*(y1-y0)) / imageArea,
		}
		if opts.BuildMasks {
			detection.Mask = composite_renderer.RegionMask(bounds, detection.Box)
		}
		result = append(result, detection)
	}

	return result, nil
}

// forward runs one DNN pass and decodes the raw YOLOv8 output (a 1x5xN
// tensor of cx, cy, w, h, confidence rows) into candidate boxes. No boxes in
// the output means zero detections, not an error.
func (y *Yolo) forward(img image.Image, opts PredictOptions) ([]image.Rectangle, []float32, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, nil, fmt.Errorf("error converting image: %w", err)
	}
	defer mat.Close()

	inputSize := opts.InputSize
	if inputSize <= 0 {
		inputSize = 640
	}

	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(inputSize, inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	y.net.SetInput(blob, "")
	output := y.net.Forward("")
	defer output.Close()

	rows := output.Reshape(1, 5)
	defer rows.Close()

	bounds := img.Bounds()
	scaleX := float32(bounds.Dx()) / float32(inputSize)
	scaleY := float32(bounds.Dy()) / float32(inputSize)

	var boxes []image.Rectangle
	var scores []float32
	for i := 0; i < rows.Cols(); i++ {
		confidence := rows.GetFloatAt(4, i)
		if float64(confidence) < opts.Confidence {
			continue
		}

		cx := rows.GetFloatAt(0, i) * scaleX
		cy := rows.GetFloatAt(1, i) * scaleY
		w := rows.GetFloatAt(2, i) * scaleX
		h := rows.GetFloatAt(3, i) * scaleY

		// Truncate to integers, matching the adapter contract.
		boxes = append(boxes, image.Rect(
			int(cx-w/2), int(cy-h/2),
			int(cx+w/2), int(cy+h/2),
		))
		scores = append(scores, confidence)
	}

	return boxes, scores, nil
}
