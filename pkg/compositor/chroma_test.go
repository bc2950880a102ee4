package compositor

import (
	"image"
	"image/color"
	"testing"
)

func uniformImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestChromaKeyFilter_KeysMatchingPixels(t *testing.T) {
	f := NewChromaKeyFilter()
	src := uniformImage(4, 4, color.RGBA{R: 0, G: 255, B: 0, A: 255})

	out := f.Apply("layout-1", src, 4, 4, RGB{R: 0, G: 255, B: 0}, 120)

	_, _, _, a := out.At(2, 2).RGBA()
	if a != 0 {
		t.Errorf("green pixel should be transparent, got alpha %d", a)
	}
}

func TestChromaKeyFilter_KeepsDistantPixels(t *testing.T) {
	f := NewChromaKeyFilter()
	src := uniformImage(4, 4, color.RGBA{R: 255, G: 0, B: 0, A: 255})

	out := f.Apply("layout-1", src, 4, 4, RGB{R: 0, G: 255, B: 0}, 120)

	_, _, _, a := out.At(2, 2).RGBA()
	if a == 0 {
		t.Error("red pixel should survive a green key")
	}
}

func TestChromaKeyFilter_ToleranceIsStrict(t *testing.T) {
	f := NewChromaKeyFilter()
	key := RGB{R: 0, G: 255, B: 0}
	src := uniformImage(4, 4, color.RGBA{R: 0, G: 255, B: 0, A: 255})

	// Zero tolerance keys nothing: the comparison is strictly below
	// tolerance squared, and distance 0 is not below 0.
	out := f.Apply("layout-1", src, 4, 4, key, 0)
	_, _, _, a := out.At(1, 1).RGBA()
	if a == 0 {
		t.Error("tolerance 0 must not key even an exact match")
	}

	// Any positive tolerance keys the exact match.
	out = f.Apply("layout-1", src, 4, 4, key, 1)
	_, _, _, a = out.At(1, 1).RGBA()
	if a != 0 {
		t.Error("tolerance 1 must key an exact match")
	}
}

func TestChromaKeyFilter_ToleranceBoundary(t *testing.T) {
	f := NewChromaKeyFilter()
	key := RGB{R: 0, G: 255, B: 0}
	// Distance from key: dg = 10, squared distance 100.
	src := uniformImage(2, 2, color.RGBA{R: 0, G: 245, B: 0, A: 255})

	// tolerance^2 == 100: 100 < 100 is false, pixel survives.
	out := f.Apply("layout-1", src, 2, 2, key, 10)
	if _, _, _, a := out.At(0, 0).RGBA(); a == 0 {
		t.Error("pixel exactly at tolerance distance must survive")
	}

	// tolerance^2 == 121: keyed.
	out = f.Apply("layout-1", src, 2, 2, key, 11)
	if _, _, _, a := out.At(0, 0).RGBA(); a != 0 {
		t.Error("pixel inside tolerance distance must be keyed")
	}
}

func TestChromaKeyFilter_ScalesToLayoutSize(t *testing.T) {
	f := NewChromaKeyFilter()
	src := uniformImage(8, 8, color.RGBA{R: 255, G: 0, B: 0, A: 255})

	out := f.Apply("layout-1", src, 4, 2, RGB{R: 0, G: 255, B: 0}, 120)

	if out.Bounds().Dx() != 4 || out.Bounds().Dy() != 2 {
		t.Errorf("expected 4x2 buffer, got %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestChromaKeyFilter_ReusesBufferPerLayout(t *testing.T) {
	f := NewChromaKeyFilter()
	src := uniformImage(4, 4, color.RGBA{R: 255, G: 0, B: 0, A: 255})

	first := f.Apply("layout-1", src, 4, 4, RGB{}, 0)
	second := f.Apply("layout-1", src, 4, 4, RGB{}, 0)
	if first != second {
		t.Error("same layout and size should reuse the scratch buffer")
	}

	resized := f.Apply("layout-1", src, 8, 8, RGB{}, 0)
	if resized == first {
		t.Error("resizing the layout must allocate a new buffer")
	}

	other := f.Apply("layout-2", src, 4, 4, RGB{}, 0)
	if other == first {
		t.Error("each layout owns its own buffer")
	}
}

func TestChromaKeyFilter_DropReleasesBuffer(t *testing.T) {
	f := NewChromaKeyFilter()
	src := uniformImage(4, 4, color.RGBA{R: 255, G: 0, B: 0, A: 255})

	first := f.Apply("layout-1", src, 4, 4, RGB{}, 0)
	f.Drop("layout-1")
	second := f.Apply("layout-1", src, 4, 4, RGB{}, 0)
	if first == second {
		t.Error("Drop should release the scratch buffer")
	}
}
