package facehires

import (
	"context"
	"errors"
	"image"
	"log"
	"time"

	"face_hires/detector"
	"face_hires/entities"
	"face_hires/options"
	"face_hires/pipeline"
	"face_hires/repositories/restorations"
)

// DefaultDenoisingStrength is used when the caller has not configured one.
const DefaultDenoisingStrength = 0.3

// Inpainting parameters for a face pass. Large enough to blend the restored
// region, small enough to leave the rest of the frame alone.
const (
	faceMaskBlur       = 10
	faceInpaintPadding = 15
)

// Debug enables per-detection logging for skipped and processed regions.
var Debug = false

// Restorer chains one inpainting pass per detected face over a shared
// processing context. Not safe for concurrent use on the same context; the
// context guard is a reentrancy check, not a lock.
type Restorer struct {
	detector        detector.FaceDetector
	pipeline        pipeline.Pipeline
	opts            options.Store
	restorationRepo restorations.Repository
	onProgress      func(done, total int)
}

type Config struct {
	Detector detector.FaceDetector
	Pipeline pipeline.Pipeline
	Options  options.Store

	// RestorationRepo records completed passes. Optional; recording is
	// best-effort and never fails a restoration.
	RestorationRepo restorations.Repository

	// OnProgress is called after each completed pass. Optional.
	OnProgress func(done, total int)
}

func New(cfg Config) (*Restorer, error) {
	if cfg.Detector == nil {
		return nil, errors.New("missing detector")
	}
	if cfg.Pipeline == nil {
		return nil, errors.New("missing pipeline")
	}
	if cfg.Options == nil {
		return nil, errors.New("missing options store")
	}

	return &Restorer{
		detector:        cfg.Detector,
		pipeline:        cfg.Pipeline,
		opts:            cfg.Options,
		restorationRepo: cfg.RestorationRepo,
		onProgress:      cfg.OnProgress,
	}, nil
}

func (r *Restorer) Name() string {
	return "Face HiRes"
}

// Restore locates faces in img and re-runs the generation pipeline once per
// accepted region, each pass inpainting on the previous pass's output. The
// context is returned to its pre-call variant and field values on every exit
// path. Restoration is best-effort: a missing detection model degrades to
// returning img unchanged, while a pipeline failure propagates to the caller
// after cleanup.
func (r *Restorer) Restore(img image.Image, p *entities.ImageProcessing) (image.Image, error) {
	if img == nil || p == nil {
		return img, nil
	}
	if p.FaceHiresActive() {
		// Already restoring on this context; nested invocations short-circuit.
		return img, nil
	}

	predictOpts := detector.DefaultPredictOptions()
	predictOpts.Device = r.pipeline.Device()
	predictOpts.Offload = r.opts.RestorationUnload()

	faces, err := r.detector.Predict(img, predictOpts)
	if err != nil {
		log.Printf("Model load: type=FaceHires error=%v", err)
		return img, nil
	}
	if len(faces) == 0 {
		return img, nil
	}

	t := transmute(p, r.opts)
	if t == nil {
		return img, nil
	}
	defer t.exit()

	denoising := t.snapshot.DenoisingStrength
	if denoising == 0 {
		denoising = DefaultDenoisingStrength
	}

	var total int
	for _, face := range faces {
		if accept(face) {
			total++
		}
	}

	working := img
	var done int
	for _, face := range faces {
		if !accept(face) {
			if Debug {
				log.Printf("Face HiRes skip: score=%.2f box=%v size=%.5f", face.Score, face.Box, face.RelativeSize)
			}
			continue
		}

		p.InitImages = []image.Image{working}
		p.ImageMask = face.Mask
		p.InpaintFullRes = true
		p.InpaintingMaskInvert = 0
		p.InpaintingFill = entities.InpaintingFillOriginal
		p.DenoisingStrength = denoising
		p.MaskBlur = faceMaskBlur
		p.InpaintFullResPadding = faceInpaintPadding
		p.RestoreFaces = true

		if Debug {
			log.Printf("Face HiRes: score=%.2f box=%v size=%.5f strength=%v blur=%d padding=%d",
				face.Score, face.Box, face.RelativeSize, p.DenoisingStrength, p.MaskBlur, p.InpaintFullResPadding)
		}

		started := time.Now()
		processed, err := r.pipeline.ProcessOnePass(p)
		if err != nil {
			return working, err
		}

		// The base-image overlay must not be composited twice across
		// chained passes.
		p.OverlayImages = nil

		if processed != nil && len(processed.Images) > 0 {
			working = processed.Images[0]
		}

		r.record(face, denoising, time.Since(started))

		done++
		if r.onProgress != nil {
			r.onProgress(done, total)
		}
	}

	return working, nil
}

func (r *Restorer) record(face entities.Detection, denoising float64, duration time.Duration) {
	if r.restorationRepo == nil {
		return
	}

	_, err := r.restorationRepo.Create(context.Background(), &entities.FaceRestoration{
		Score:             face.Score,
		BoxX0:             face.Box.Min.X,
		BoxY0:             face.Box.Min.Y,
		BoxX1:             face.Box.Max.X,
		BoxY1:             face.Box.Max.Y,
		RelativeSize:      face.RelativeSize,
		DenoisingStrength: denoising,
		MaskBlur:          faceMaskBlur,
		InpaintPadding:    faceInpaintPadding,
		DurationMs:        duration.Milliseconds(),
	})
	if err != nil {
		log.Printf("Error recording face restoration: %v", err)
	}
}
