package main

import (
	"context"
	"flag"
	"image"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"face_hires/composite_renderer"
	"face_hires/databases/sqlite"
	"face_hires/detector"
	"face_hires/entities"
	"face_hires/facehires"
	"face_hires/gui/progress"
	"face_hires/options"
	"face_hires/pipeline"
	"face_hires/repositories/restorations"
	"face_hires/utils"
)

var (
	apiHost      = flag.String("host", "", "Host for the Automatic1111 API")
	imagePath    = flag.String("image", "", "Path to the image to restore")
	outputPath   = flag.String("output", "restored.png", "Path to write the restored image to")
	modelDirFlag = flag.String("model-dir", "models", "Directory the detection weights are stored in")
	deviceFlag   = flag.String("device", string(detector.DeviceCUDA), "Inference device, \"cuda\" or \"cpu\"")
	denoiseFlag  = flag.Float64("denoise", 0, "Denoising strength per face pass. 0 uses the default")
	unloadFlag   = flag.Bool("unload", false, "Offload the detection model after each call")
	previewFlag  = flag.Bool("preview", false, "Also write a before/after tile next to the output")
	guiFlag      = flag.Bool("gui", false, "Show a progress bar while restoring")
	debugFlag    = flag.Bool("debug", false, "Log per-detection decisions")
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	if apiHost == nil || *apiHost == "" {
		hostEnv := os.Getenv("API_HOST")
		if hostEnv != "" {
			apiHost = &hostEnv
		}
	}

	if modelDirFlag == nil || *modelDirFlag == "models" {
		modelDirEnv := os.Getenv("MODEL_DIR")
		if modelDirEnv != "" {
			modelDirFlag = &modelDirEnv
		}
	}

	if unloadFlag != nil && !*unloadFlag {
		unloadEnv := os.Getenv("RESTORATION_UNLOAD")
		if unloadEnv != "" {
			parsed, err := strconv.ParseBool(unloadEnv)
			if err == nil {
				unloadFlag = &parsed
			}
		}
	}
}

func main() {
	flag.Parse()

	if apiHost == nil || *apiHost == "" {
		log.Fatalf("API host flag is required")
	}

	if imagePath == nil || *imagePath == "" {
		log.Fatalf("Image flag is required")
	}

	img, err := utils.OpenImage(*imagePath)
	if err != nil {
		log.Fatalf("Failed to open image: %v", err)
	}

	ctx := context.Background()

	sqliteDB, err := sqlite.New(ctx)
	if err != nil {
		log.Fatalf("Failed to create sqlite database: %v", err)
	}

	restorationRepo, err := restorations.NewRepository(&restorations.Config{DB: sqliteDB})
	if err != nil {
		log.Fatalf("Failed to create restoration repository: %v", err)
	}

	opts := options.NewStore()
	opts.SetRestorationUnload(*unloadFlag)

	pipe, err := pipeline.New(pipeline.Config{
		Host:    *apiHost,
		Device:  detector.Device(*deviceFlag),
		Options: opts,
	})
	if err != nil {
		log.Fatalf("Failed to create generation pipeline: %v", err)
	}

	facehires.Debug = *debugFlag

	var ui *progress.Program
	var onProgress func(done, total int)
	if *guiFlag {
		ui = progress.Start()
		onProgress = ui.Update
	}

	restorer, err := facehires.New(facehires.Config{
		Detector:        detector.NewYolo(*modelDirFlag),
		Pipeline:        pipe,
		Options:         opts,
		RestorationRepo: restorationRepo,
		OnProgress:      onProgress,
	})
	if err != nil {
		log.Fatalf("Failed to create face restorer: %v", err)
	}

	p := &entities.ImageProcessing{
		Type:              entities.ProcessingImg2Img,
		DenoisingStrength: *denoiseFlag,
	}

	restored, err := restorer.Restore(img, p)
	if ui != nil {
		ui.Quit()
	}
	if err != nil {
		log.Fatalf("Face restoration failed: %v", err)
	}

	if err := utils.SavePNG(*outputPath, restored); err != nil {
		log.Fatalf("Failed to save restored image: %v", err)
	}
	log.Printf("Saved restored image to %s", *outputPath)

	if *previewFlag {
		tiled, err := composite_renderer.Compositor().TileImages([]image.Image{img, restored})
		if err != nil {
			log.Printf("Failed to tile preview: %v", err)
		} else if err := utils.SavePNG(*outputPath+".preview.png", tiled); err != nil {
			log.Printf("Failed to save preview: %v", err)
		}
	}
}
