package pipeline

import (
	"image"

	"face_hires/detector"
	"face_hires/entities"
)

// Processed is the output of one generation pass.
type Processed struct {
	Images []image.Image
	Info   string
}

// Pipeline is the external generation collaborator. ProcessOnePass consumes
// the context's inpainting fields and may be slow and blocking; no timeout is
// applied at this layer.
type Pipeline interface {
	ProcessOnePass(p *entities.ImageProcessing) (*Processed, error)
	Device() detector.Device
}
