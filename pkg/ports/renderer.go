package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image decoding and canvas creation.
type Renderer interface {
	// CreateCanvas creates a new drawing surface with the specified
	// dimensions, cleared to the background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data into an image.Image.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	// The result always has bounds starting at (0,0).
	ResizeImage(img image.Image, width, height int) *image.RGBA
}

// Canvas is a compositing surface. The render loop is its sole writer.
type Canvas interface {
	// Fill clears the whole surface with the given color.
	Fill(c color.Color)

	// DrawImageAlpha draws an image scaled into the destination rectangle,
	// blended over the existing content at the given alpha (0..1).
	// An alpha of 0 or less draws nothing.
	DrawImageAlpha(img image.Image, x, y, width, height int, alpha float64)

	// DrawRect draws a filled rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// ToImage returns the surface content as an image.Image.
	ToImage() image.Image

	// Size returns the surface dimensions.
	Size() (width, height int)
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
