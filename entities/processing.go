package entities

import "image"

// ProcessingType tags which variant of the generation request an
// ImageProcessing currently describes.
type ProcessingType int

const (
	ProcessingTxt2Img ProcessingType = iota
	ProcessingImg2Img
)

func (t ProcessingType) String() string {
	switch t {
	case ProcessingTxt2Img:
		return "txt2img"
	case ProcessingImg2Img:
		return "img2img"
	default:
		return "unknown"
	}
}

// Inpainting fill modes, matching the generation backend's enum.
const (
	InpaintingFillFill = iota
	InpaintingFillOriginal // "no fill": keep masked content as the starting point
	InpaintingFillLatentNoise
	InpaintingFillLatentNothing
)

// ImageProcessing is the shared, mutable generation request handed to the
// pipeline. The caller owns it; face restoration borrows it for the duration
// of one call and must hand it back in its original variant with its original
// field values.
type ImageProcessing struct {
	Type ProcessingType

	Prompt         string
	NegativePrompt string
	Width          int
	Height         int
	Seed           int64
	Steps          int
	CFGScale       float64
	SamplerName    string
	BatchSize      int
	NIter          int

	DenoisingStrength float64
	RestoreFaces      bool

	// Inpainting fields, meaningful for the img2img variant.
	InitImages            []image.Image
	ImageMask             *image.Gray
	InpaintFullRes        bool
	InpaintFullResPadding int
	InpaintingFill        int
	InpaintingMaskInvert  int
	MaskBlur              int

	// OverlayImages accumulates base images the backend composites the
	// inpainted region back onto.
	OverlayImages []image.Image

	faceHires bool
}

// BeginFaceHires marks p as owned by an active face-restoration call and
// reports whether the acquisition succeeded. A false return means restoration
// is already running on p and the caller must back off without touching it.
func (p *ImageProcessing) BeginFaceHires() bool {
	if p.faceHires {
		return false
	}
	p.faceHires = true
	return true
}

// EndFaceHires releases the guard taken by BeginFaceHires.
func (p *ImageProcessing) EndFaceHires() {
	p.faceHires = false
}

// FaceHiresActive reports whether a face-restoration call currently owns p.
func (p *ImageProcessing) FaceHiresActive() bool {
	return p.faceHires
}

// ToInpainting switches p to the img2img inpainting variant. Field values are
// preserved; only the variant tag changes.
func (p *ImageProcessing) ToInpainting() {
	p.Type = ProcessingImg2Img
}

// ProcessingSnapshot carries the variant tag and exactly the fields face
// restoration mutates, so the restore contract is statically checkable.
type ProcessingSnapshot struct {
	Type                  ProcessingType
	InitImages            []image.Image
	ImageMask             *image.Gray
	InpaintFullRes        bool
	InpaintFullResPadding int
	InpaintingFill        int
	InpaintingMaskInvert  int
	MaskBlur              int
	DenoisingStrength     float64
	RestoreFaces          bool
	OverlayImages         []image.Image
}

// Snapshot captures the pre-mutation state of every field face restoration is
// allowed to touch.
func (p *ImageProcessing) Snapshot() ProcessingSnapshot {
	return ProcessingSnapshot{
		Type:                  p.Type,
		InitImages:            p.InitImages,
		ImageMask:             p.ImageMask,
		InpaintFullRes:        p.InpaintFullRes,
		InpaintFullResPadding: p.InpaintFullResPadding,
		InpaintingFill:        p.InpaintingFill,
		InpaintingMaskInvert:  p.InpaintingMaskInvert,
		MaskBlur:              p.MaskBlur,
		DenoisingStrength:     p.DenoisingStrength,
		RestoreFaces:          p.RestoreFaces,
		OverlayImages:         p.OverlayImages,
	}
}

// RestoreSnapshot overwrites every snapshotted field from s. It is a full
// overwrite, not a merge.
func (p *ImageProcessing) RestoreSnapshot(s ProcessingSnapshot) {
	p.Type = s.Type
	p.InitImages = s.InitImages
	p.ImageMask = s.ImageMask
	p.InpaintFullRes = s.InpaintFullRes
	p.InpaintFullResPadding = s.InpaintFullResPadding
	p.InpaintingFill = s.InpaintingFill
	p.InpaintingMaskInvert = s.InpaintingMaskInvert
	p.MaskBlur = s.MaskBlur
	p.DenoisingStrength = s.DenoisingStrength
	p.RestoreFaces = s.RestoreFaces
	p.OverlayImages = s.OverlayImages
}
