// Package mocks provides mock implementations for testing.
package mocks

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"sync"

	"github.com/user/scenemix/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) *image.RGBA
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return NewCanvas(width, height)
}

func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) *image.RGBA {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// DrawCall records one DrawImageAlpha call on a mock Canvas.
type DrawCall struct {
	X, Y, Width, Height int
	Alpha               float64
}

// Canvas is a mock implementation of ports.Canvas. It records draw
// calls for verification and keeps a real RGBA backing so pixel checks
// are possible.
type Canvas struct {
	mu     sync.Mutex
	width  int
	height int
	img    *image.RGBA

	FillCalls []color.Color
	DrawCalls []DrawCall
}

// NewCanvas creates a mock canvas with an RGBA backing.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (m *Canvas) Fill(c color.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FillCalls = append(m.FillCalls, c)
	stddraw.Draw(m.img, m.img.Bounds(), image.NewUniform(c), image.Point{}, stddraw.Src)
}

func (m *Canvas) DrawImageAlpha(img image.Image, x, y, width, height int, alpha float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DrawCalls = append(m.DrawCalls, DrawCall{X: x, Y: y, Width: width, Height: height, Alpha: alpha})
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stddraw.Draw(m.img, image.Rect(x, y, x+w, y+h), image.NewUniform(c), image.Point{}, stddraw.Over)
}

func (m *Canvas) ToImage() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.img
}

func (m *Canvas) Size() (int, int) {
	return m.width, m.height
}

// Draws returns a copy of the recorded DrawImageAlpha calls.
func (m *Canvas) Draws() []DrawCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]DrawCall, len(m.DrawCalls))
	copy(out, m.DrawCalls)
	return out
}

var _ ports.Canvas = (*Canvas)(nil)
