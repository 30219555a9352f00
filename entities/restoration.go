package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

// FaceRestoration records one completed inpainting pass. Scalar metadata
// only; masks and images are never persisted.
type FaceRestoration struct {
	ID                int64     `json:"id"`
	Score             float64   `json:"score"`
	BoxX0             int       `json:"box_x0"`
	BoxY0             int       `json:"box_y0"`
	BoxX1             int       `json:"box_x1"`
	BoxY1             int       `json:"box_y1"`
	RelativeSize      float64   `json:"relative_size"`
	DenoisingStrength float64   `json:"denoising_strength"`
	MaskBlur          int       `json:"mask_blur"`
	InpaintPadding    int       `json:"inpaint_padding"`
	DurationMs        int64     `json:"duration_ms"`
	CreatedAt         time.Time `json:"created_at"`
}

func (r *FaceRestoration) PrintJson() {
	p, _ := json.MarshalIndent(r, "", "    ")
	fmt.Println("restoration: ", string(p))
}
