// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/user/scenemix/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// CreateCanvas creates a new drawing surface cleared to bg.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	rgba, _ := dc.Image().(*image.RGBA)
	return &Canvas{dc: dc, rgba: rgba}
}

// DecodeImage decodes image data into an image.Image.
func (r *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	reader := bytes.NewReader(data)

	switch format {
	case ports.FormatJPEG:
		return jpeg.Decode(reader)
	case ports.FormatPNG:
		return png.Decode(reader)
	default:
		// Try to auto-detect
		img, _, err := image.Decode(reader)
		return img, err
	}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
// ApproxBiLinear keeps per-tick scaling cheap; the surface refreshes many
// times per second, so filter quality matters less than throughput.
func (r *Renderer) ResizeImage(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas on a gg.Context.
type Canvas struct {
	dc   *gg.Context
	rgba *image.RGBA
}

// Fill clears the whole surface with the given color.
func (c *Canvas) Fill(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

// DrawImageAlpha draws img scaled to width x height at (x, y), blended
// over the current content at the given alpha.
func (c *Canvas) DrawImageAlpha(img image.Image, x, y, width, height int, alpha float64) {
	if img == nil || width <= 0 || height <= 0 || alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}

	src := img
	bounds := img.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height || bounds.Min != (image.Point{}) {
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Src, nil)
		src = scaled
	}

	rect := image.Rect(x, y, x+width, y+height)
	if alpha >= 1 {
		stddraw.Draw(c.rgba, rect, src, image.Point{}, stddraw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})
	stddraw.DrawMask(c.rgba, rect, src, image.Point{}, mask, image.Point{}, stddraw.Over)
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// ToImage returns the surface content as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

// Size returns the surface dimensions.
func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
