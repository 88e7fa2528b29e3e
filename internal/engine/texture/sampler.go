package texture

import "github.com/Faultbox/umbra/internal/engine/gpu"

// SamplerKind selects one of the shared sampler objects.
type SamplerKind int

const (
	Nearest SamplerKind = iota
	Bilinear
	Trilinear
	Anisotropic
	AnisotropicClamp
	AnisotropicMirrored
	numSamplers
)

var samplerNames = [numSamplers]string{
	"nearest", "bilinear", "trilinear", "anisotropic", "anisotropic-clamp", "anisotropic-mirrored",
}

func (k SamplerKind) String() string {
	if k < 0 || k >= numSamplers {
		return "unknown"
	}
	return samplerNames[k]
}

type samplerParams struct {
	minFilter, magFilter gpu.Enum
	wrap                 gpu.Enum
	anisotropic          bool
}

var samplerTable = [numSamplers]samplerParams{
	Nearest:             {gpu.Nearest, gpu.Nearest, gpu.Repeat, false},
	Bilinear:            {gpu.Linear, gpu.Linear, gpu.Repeat, false},
	Trilinear:           {gpu.LinearMipmapLinear, gpu.Linear, gpu.Repeat, false},
	Anisotropic:         {gpu.LinearMipmapLinear, gpu.Linear, gpu.Repeat, true},
	AnisotropicClamp:    {gpu.LinearMipmapLinear, gpu.Linear, gpu.ClampToEdge, true},
	AnisotropicMirrored: {gpu.LinearMipmapLinear, gpu.Linear, gpu.MirroredRepeat, true},
}

func newSampler(dev gpu.Device, p samplerParams, maxAnisotropy float32) *gpu.Sampler {
	s := gpu.NewSampler(dev)
	dev.SamplerParameteri(s.Name(), gpu.TextureMagFilter, int32(p.magFilter))
	dev.SamplerParameteri(s.Name(), gpu.TextureMinFilter, int32(p.minFilter))
	dev.SamplerParameteri(s.Name(), gpu.TextureWrapS, int32(p.wrap))
	dev.SamplerParameteri(s.Name(), gpu.TextureWrapT, int32(p.wrap))
	if p.anisotropic {
		dev.SamplerParameterf(s.Name(), gpu.TextureMaxAnisotropy, maxAnisotropy)
	}
	return s
}
