package images

import (
	"bytes"
	"fmt"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	// MaxDimension is the longest edge kept after downscaling.
	MaxDimension = 1024

	webpQuality = 85
)

// EncodeWebP decodes an uploaded image (jpeg, png or gif), downscales it
// to at most MaxDimension on the longest edge and re-encodes it as webp.
func EncodeWebP(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	src = downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}

	return buf.Bytes(), nil
}

func downscale(src image.Image) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= MaxDimension && h <= MaxDimension {
		return src
	}

	if w >= h {
		h = h * MaxDimension / w
		w = MaxDimension
	} else {
		w = w * MaxDimension / h
		h = MaxDimension
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	return dst
}
