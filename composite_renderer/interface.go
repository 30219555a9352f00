package composite_renderer

import (
	"image"
)

type Renderer interface {
	TileImages(images []image.Image) (image.Image, error)
}

func Compositor() Renderer {
	return &compositor{}
}
