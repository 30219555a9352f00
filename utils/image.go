package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"
)

func GetDataFromUrl(url string) ([]byte, error) {
	response, err := http.Get(url)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, response.Status)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	return data, nil
}

var pngBuffers = NewPool(func() *bytes.Buffer { return new(bytes.Buffer) })

// ImageToBase64 encodes img as PNG and returns it base64 encoded, the form
// the generation backend expects for init images and masks.
func ImageToBase64(img image.Image) (string, error) {
	buf := pngBuffers.Get()
	defer pngBuffers.Put(buf)
	buf.Reset()

	if err := png.Encode(buf, img); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeBase64Image decodes a base64 payload into an image, tolerating an
// optional "data:image/*;base64," prefix.
func DecodeBase64Image(base64Str string) (image.Image, error) {
	before, after, found := strings.Cut(base64Str, ";base64,")

	trimmed := after
	if !found {
		trimmed = before
	}

	data, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return img, nil
}

func GetImageSize(r io.Reader) (int, int, error) {
	img, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, err
	}

	return img.Width, img.Height, nil
}

// SavePNG writes img to path, creating or truncating the file.
func SavePNG(path string, img image.Image) error {
	handle, err := os.Create(path)
	if err != nil {
		return err
	}
	defer handle.Close()

	return png.Encode(handle, img)
}

// OpenImage decodes the image file at path.
func OpenImage(path string) (image.Image, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	img, _, err := image.Decode(handle)
	if err != nil {
		return nil, err
	}

	return img, nil
}
