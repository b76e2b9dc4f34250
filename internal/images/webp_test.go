package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
)

func pngBytes(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x % 256), A: 255})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return &buf
}

func TestEncodeWebP(t *testing.T) {
	out, err := EncodeWebP(pngBytes(t, 64, 48))
	if err != nil {
		t.Fatalf("EncodeWebP() error = %v", err)
	}

	decoded, err := webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("small images must keep their size, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestEncodeWebP_DownscalesLargeImages(t *testing.T) {
	out, err := EncodeWebP(pngBytes(t, 2048, 512))
	if err != nil {
		t.Fatalf("EncodeWebP() error = %v", err)
	}

	decoded, err := webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != MaxDimension {
		t.Errorf("expected longest edge %d, got %d", MaxDimension, b.Dx())
	}
	if b.Dy() != 256 {
		t.Errorf("expected aspect ratio kept (256), got %d", b.Dy())
	}
}

func TestEncodeWebP_RejectsGarbage(t *testing.T) {
	if _, err := EncodeWebP(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected an error for non-image input")
	}
}
