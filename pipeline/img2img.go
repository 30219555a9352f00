package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"face_hires/detector"
	"face_hires/entities"
	"face_hires/options"
	"face_hires/utils"
)

type apiImplementation struct {
	host   string
	device detector.Device
	opts   options.Store
	client *http.Client
}

type Config struct {
	Host    string
	Device  detector.Device
	Options options.Store
}

func New(cfg Config) (Pipeline, error) {
	if cfg.Host == "" {
		return nil, errors.New("missing host")
	}
	if cfg.Options == nil {
		return nil, errors.New("missing options store")
	}

	device := cfg.Device
	if device == "" {
		device = detector.DeviceCUDA
	}

	return &apiImplementation{
		host:   cfg.Host,
		device: device,
		opts:   cfg.Options,
		client: &http.Client{},
	}, nil
}

func (api *apiImplementation) Device() detector.Device {
	return api.device
}

type img2imgJSONRequest struct {
	Prompt                string         `json:"prompt"`
	NegativePrompt        string         `json:"negative_prompt,omitempty"`
	InitImages            []string       `json:"init_images"`
	Mask                  *string        `json:"mask,omitempty"`
	DenoisingStrength     float64        `json:"denoising_strength"`
	InpaintFullRes        bool           `json:"inpaint_full_res"`
	InpaintFullResPadding int            `json:"inpaint_full_res_padding"`
	InpaintingFill        int            `json:"inpainting_fill"`
	InpaintingMaskInvert  int            `json:"inpainting_mask_invert"`
	MaskBlur              int            `json:"mask_blur"`
	RestoreFaces          bool           `json:"restore_faces"`
	Width                 int            `json:"width,omitempty"`
	Height                int            `json:"height,omitempty"`
	Seed                  int64          `json:"seed,omitempty"`
	Steps                 int            `json:"steps,omitempty"`
	CFGScale              float64        `json:"cfg_scale,omitempty"`
	SamplerName           string         `json:"sampler_name,omitempty"`
	BatchSize             int            `json:"batch_size,omitempty"`
	NIter                 int            `json:"n_iter,omitempty"`
	OverrideSettings      map[string]any `json:"override_settings,omitempty"`
}

type img2imgJSONResponse struct {
	Images []string `json:"images"`
	Info   string   `json:"info"`
}

func (api *apiImplementation) ProcessOnePass(p *entities.ImageProcessing) (*Processed, error) {
	if p == nil {
		return nil, errors.New("missing processing context")
	}
	if len(p.InitImages) == 0 {
		return nil, errors.New("missing init images")
	}

	request, err := api.buildRequest(p)
	if err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	postURL := api.host + "/sdapi/v1/img2img"

	httpRequest, err := http.NewRequest("POST", postURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	httpRequest.Header.Set("Content-Type", "application/json; charset=UTF-8")

	response, err := api.client.Do(httpRequest)
	if err != nil {
		log.Printf("API URL: %s", postURL)
		log.Printf("Error with API Request: %v", err)

		return nil, err
	}

	defer response.Body.Close()

	body, _ := io.ReadAll(response.Body)

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("img2img pass failed: %s: %s", response.Status, string(body))
	}

	respStruct := &img2imgJSONResponse{}
	if err := json.Unmarshal(body, respStruct); err != nil {
		log.Printf("API URL: %s", postURL)
		log.Printf("Unexpected API response: %s", string(body))

		return nil, err
	}

	processed := &Processed{Info: respStruct.Info}
	for _, encoded := range respStruct.Images {
		img, err := utils.DecodeBase64Image(encoded)
		if err != nil {
			return nil, fmt.Errorf("error decoding response image: %w", err)
		}
		processed.Images = append(processed.Images, img)
	}

	return processed, nil
}

func (api *apiImplementation) buildRequest(p *entities.ImageProcessing) (*img2imgJSONRequest, error) {
	request := &img2imgJSONRequest{
		Prompt:                p.Prompt,
		NegativePrompt:        p.NegativePrompt,
		DenoisingStrength:     p.DenoisingStrength,
		InpaintFullRes:        p.InpaintFullRes,
		InpaintFullResPadding: p.InpaintFullResPadding,
		InpaintingFill:        p.InpaintingFill,
		InpaintingMaskInvert:  p.InpaintingMaskInvert,
		MaskBlur:              p.MaskBlur,
		RestoreFaces:          p.RestoreFaces,
		Width:                 p.Width,
		Height:                p.Height,
		Seed:                  p.Seed,
		Steps:                 p.Steps,
		CFGScale:              p.CFGScale,
		SamplerName:           p.SamplerName,
		BatchSize:             p.BatchSize,
		NIter:                 p.NIter,
		// The overlay flag is process-wide state; thread it through
		// per-request override settings instead of mutating the backend.
		OverrideSettings: map[string]any{
			"mask_apply_overlay": api.opts.ApplyOverlay(),
		},
	}

	for _, img := range p.InitImages {
		encoded, err := utils.ImageToBase64(img)
		if err != nil {
			return nil, fmt.Errorf("error encoding init image: %w", err)
		}
		request.InitImages = append(request.InitImages, encoded)
	}

	if p.ImageMask != nil {
		encoded, err := utils.ImageToBase64(p.ImageMask)
		if err != nil {
			return nil, fmt.Errorf("error encoding mask: %w", err)
		}
		request.Mask = &encoded
	}

	return request, nil
}
