package modelloader

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"face_hires/utils"

	"github.com/dustin/go-humanize"
	"github.com/sahilm/fuzzy"
)

// LoadModels makes sure downloadName is present under modelPath, downloading
// it from modelURL on first use, and returns the matching local files, best
// match first. An empty modelURL disables downloading.
func LoadModels(modelPath, modelURL, downloadName string) ([]string, error) {
	if err := os.MkdirAll(modelPath, 0755); err != nil {
		return nil, fmt.Errorf("error creating model directory %s: %w", modelPath, err)
	}

	files, err := localModels(modelPath)
	if err != nil {
		return nil, err
	}

	found := matches(downloadName, files)
	if len(found) == 0 && modelURL != "" {
		target := filepath.Join(modelPath, downloadName)
		if err := download(modelURL, target); err != nil {
			return nil, err
		}
		found = []string{target}
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("no model files matching %q in %s", downloadName, modelPath)
	}

	return found, nil
}

func localModels(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}

// matches ranks candidate files against the requested model name with the
// same fuzzy matcher used for checkpoint titles.
func matches(name string, candidates []string) []string {
	var found []string
	for _, match := range fuzzy.Find(name, candidates) {
		found = append(found, match.Str)
	}
	return found
}

func download(url, target string) error {
	log.Printf("Downloading model: url=%s", url)

	data, err := utils.GetDataFromUrl(url)
	if err != nil {
		return fmt.Errorf("error downloading model from %s: %w", url, err)
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return err
	}

	log.Printf("Downloaded model: file=%s size=%s", filepath.Base(target), humanize.IBytes(uint64(len(data))))

	return nil
}
