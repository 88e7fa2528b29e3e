// Package texture creates the 2D textures and sampler objects the scene
// binds: procedural solid colors and checkerboards, and images loaded from
// disk.
package texture

import (
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/logger"
)

// Default checkerboard colors.
var (
	CheckerOdd  = Color(0.15, 0.15, 0.6)
	CheckerEven = Color(0.85, 0.75, 0.3)
)

// Library owns every texture and sampler it creates.
type Library struct {
	dev      gpu.Device
	maxSize  int
	textures []*gpu.Texture
	samplers [numSamplers]*gpu.Sampler
	log      *zap.Logger
}

// NewLibrary creates the sampler objects. Loaded images larger than maxSize
// on either side are downscaled.
func NewLibrary(dev gpu.Device, maxSize int) *Library {
	l := &Library{
		dev:     dev,
		maxSize: maxSize,
		log:     logger.Named("texture"),
	}
	aniso := dev.MaxAnisotropy()
	for k, p := range samplerTable {
		l.samplers[k] = newSampler(dev, p, aniso)
	}
	l.log.Debug("samplers created", zap.Float32("maxAnisotropy", aniso))
	return l
}

// SolidColor returns a 1x1 texture of the given color.
func (l *Library) SolidColor(r, g, b uint8) uint32 {
	px := []byte{r, g, b, 255}
	return l.upload(1, 1, px, false, false)
}

// Checkerboard returns a mipmapped sRGB checkerboard in the default colors.
func (l *Library) Checkerboard(size, checker int) uint32 {
	img := Checkerboard(size, checker, CheckerOdd, CheckerEven)
	return l.upload(int32(size), int32(size), img.Pix, true, true)
}

// Load decodes the image at path into a mipmapped texture. srgb marks color
// data that must be linearized when sampled.
func (l *Library) Load(path string, srgb bool) (uint32, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return 0, err
	}
	src := img.Bounds()
	rgba := ToNRGBA(img, l.maxSize)
	if rgba.Bounds() != src.Sub(src.Min) {
		l.log.Info("texture downscaled",
			zap.String("path", path),
			zap.Int("width", src.Dx()),
			zap.Int("height", src.Dy()),
			zap.Int("maxSize", l.maxSize),
		)
	}
	return l.uploadImage(rgba, srgb), nil
}

// Sampler returns the sampler object of the given kind.
func (l *Library) Sampler(kind SamplerKind) uint32 {
	if kind < 0 || kind >= numSamplers {
		return 0
	}
	return l.samplers[kind].Name()
}

// Len returns the number of live textures.
func (l *Library) Len() int {
	return len(l.textures)
}

func (l *Library) uploadImage(img *image.NRGBA, srgb bool) uint32 {
	b := img.Bounds()
	return l.upload(int32(b.Dx()), int32(b.Dy()), img.Pix, srgb, true)
}

func (l *Library) upload(w, h int32, pixels []byte, srgb, mipmaps bool) uint32 {
	t := gpu.NewTexture(l.dev)
	l.textures = append(l.textures, t)

	internal := gpu.RGBA8
	if srgb {
		internal = gpu.SRGB8Alpha8
	}
	l.dev.BindTexture(gpu.Texture2D, t.Name())
	l.dev.TexImage2D(gpu.Texture2D, 0, internal, w, h, gpu.RGBA, gpu.UnsignedByte, pixels)
	if mipmaps {
		l.dev.GenerateMipmap(gpu.Texture2D)
	}
	l.dev.BindTexture(gpu.Texture2D, 0)
	return t.Name()
}

// Release deletes every texture and sampler.
func (l *Library) Release() {
	for _, t := range l.textures {
		t.Release()
	}
	l.textures = nil
	for _, s := range l.samplers {
		if s != nil {
			s.Release()
		}
	}
}
