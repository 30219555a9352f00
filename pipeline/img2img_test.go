package pipeline

import (
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"face_hires/composite_renderer"
	"face_hires/detector"
	"face_hires/entities"
	"face_hires/options"
	"face_hires/utils"
)

func TestNewMissingConfig(t *testing.T) {
	if _, err := New(Config{Options: options.NewStore()}); err == nil {
		t.Fatalf("expected error for missing host")
	}
	if _, err := New(Config{Host: "http://localhost:7860"}); err == nil {
		t.Fatalf("expected error for missing options store")
	}
}

func TestDeviceDefaultsToCUDA(t *testing.T) {
	api, err := New(Config{Host: "http://localhost:7860", Options: options.NewStore()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.Device() != detector.DeviceCUDA {
		t.Fatalf("device = %q, want cuda", api.Device())
	}
}

func TestProcessOnePass(t *testing.T) {
	output, err := utils.ImageToBase64(image.NewRGBA(image.Rect(0, 0, 16, 16)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var captured img2imgJSONRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sdapi/v1/img2img" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("unexpected error decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(img2imgJSONResponse{Images: []string{output}, Info: "ok"})
	}))
	defer server.Close()

	store := options.NewStore()
	store.SetApplyOverlay(true)

	api, err := New(Config{Host: server.URL, Options: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := image.NewRGBA(image.Rect(0, 0, 32, 32))
	mask := composite_renderer.RegionMask(base.Bounds(), image.Rect(4, 4, 12, 12))

	p := &entities.ImageProcessing{
		Type:                  entities.ProcessingImg2Img,
		InitImages:            []image.Image{base},
		ImageMask:             mask,
		DenoisingStrength:     0.3,
		InpaintFullRes:        true,
		InpaintFullResPadding: 15,
		InpaintingFill:        entities.InpaintingFillOriginal,
		MaskBlur:              10,
		RestoreFaces:          true,
	}

	processed, err := api.ProcessOnePass(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(processed.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(processed.Images))
	}
	if processed.Images[0].Bounds().Dx() != 16 {
		t.Fatalf("unexpected output size: %v", processed.Images[0].Bounds())
	}

	if len(captured.InitImages) != 1 || captured.Mask == nil {
		t.Fatalf("request missing init image or mask")
	}
	if captured.DenoisingStrength != 0.3 || captured.MaskBlur != 10 || captured.InpaintFullResPadding != 15 {
		t.Fatalf("inpainting parameters not forwarded: %+v", captured)
	}
	if !captured.InpaintFullRes || !captured.RestoreFaces || captured.InpaintingMaskInvert != 0 {
		t.Fatalf("inpainting flags not forwarded: %+v", captured)
	}
	if captured.InpaintingFill != entities.InpaintingFillOriginal {
		t.Fatalf("fill mode = %d, want original", captured.InpaintingFill)
	}
	if overlay, ok := captured.OverrideSettings["mask_apply_overlay"].(bool); !ok || !overlay {
		t.Fatalf("overlay flag not threaded into override settings: %v", captured.OverrideSettings)
	}

	decodedMask, err := utils.DecodeBase64Image(*captured.Mask)
	if err != nil {
		t.Fatalf("unexpected error decoding mask: %v", err)
	}
	if decodedMask.Bounds() != base.Bounds() {
		t.Fatalf("mask bounds %v, want %v", decodedMask.Bounds(), base.Bounds())
	}
}

func TestProcessOnePassBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "out of memory", http.StatusInternalServerError)
	}))
	defer server.Close()

	api, err := New(Config{Host: server.URL, Options: options.NewStore()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := &entities.ImageProcessing{
		InitImages: []image.Image{image.NewRGBA(image.Rect(0, 0, 8, 8))},
	}
	if _, err := api.ProcessOnePass(p); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestProcessOnePassMissingInputs(t *testing.T) {
	api, err := New(Config{Host: "http://localhost:7860", Options: options.NewStore()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := api.ProcessOnePass(nil); err == nil {
		t.Fatalf("expected error for nil context")
	}
	if _, err := api.ProcessOnePass(&entities.ImageProcessing{}); err == nil {
		t.Fatalf("expected error for missing init images")
	}
}
