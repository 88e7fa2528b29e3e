package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// DecodeFile reads and decodes an image. TGA is picked by extension since
// it has no magic number; every other format goes through image.Decode.
func DecodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ToNRGBA converts img to tightly packed NRGBA pixels, downscaling it with a
// Catmull-Rom filter so neither side exceeds maxSize. maxSize <= 0 keeps the
// original size.
func ToNRGBA(img image.Image, maxSize int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}
	return dst
}

// Checkerboard renders a size x size checkerboard with checker-sized squares.
// Squares where (x/checker + y/checker) is odd get the odd color.
func Checkerboard(size, checker int, odd, even color.NRGBA) *image.NRGBA {
	if checker < 1 {
		checker = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := even
			if (x/checker+y/checker)&1 == 1 {
				c = odd
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Color converts a linear [0,1] triple to 8-bit, rounding to nearest.
func Color(r, g, b float32) color.NRGBA {
	conv := func(v float32) uint8 {
		return uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	return color.NRGBA{R: conv(r), G: conv(g), B: conv(b), A: 255}
}
