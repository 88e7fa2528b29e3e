package gpu

// Enum is an OpenGL enumerant. Values match the GL 4.1 core headers so the
// glcore device can pass them through unchanged.
type Enum = uint32

// Capabilities.
const (
	CullFace        Enum = 0x0B44
	DepthTest       Enum = 0x0B71
	StencilTest     Enum = 0x0B90
	Blend           Enum = 0x0BE2
	Multisample     Enum = 0x809D
	DepthClamp      Enum = 0x864F
	FramebufferSRGB Enum = 0x8DB9
)

// Comparison functions.
const (
	Never   Enum = 0x0200
	Less    Enum = 0x0201
	Equal   Enum = 0x0202
	LEqual  Enum = 0x0203
	Greater Enum = 0x0204
	Always  Enum = 0x0207
)

// Stencil operations.
const (
	Keep     Enum = 0x1E00
	Replace  Enum = 0x1E01
	Incr     Enum = 0x1E02
	Decr     Enum = 0x1E03
	Invert   Enum = 0x150A
	IncrWrap Enum = 0x8507
	DecrWrap Enum = 0x8508
)

// Faces and polygon modes.
const (
	Front        Enum = 0x0404
	Back         Enum = 0x0405
	FrontAndBack Enum = 0x0408
	Line         Enum = 0x1B01
	Fill         Enum = 0x1B02
)

// Blending.
const (
	Zero    Enum = 0
	One     Enum = 1
	FuncAdd Enum = 0x8006
)

// Clear masks.
const (
	DepthBufferBit   Enum = 0x0100
	StencilBufferBit Enum = 0x0400
	ColorBufferBit   Enum = 0x4000
)

// Buffer targets, usages and access.
const (
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	UniformBuffer      Enum = 0x8A11
	StaticDraw         Enum = 0x88E4
	DynamicDraw        Enum = 0x88E8
	WriteOnly          Enum = 0x88B9
)

// Primitive topologies.
const (
	Points             Enum = 0x0000
	Triangles          Enum = 0x0004
	TrianglesAdjacency Enum = 0x000C
)

// Data types.
const (
	UnsignedByte Enum = 0x1401
	UnsignedInt  Enum = 0x1405
	Float        Enum = 0x1406
	HalfFloat    Enum = 0x140B
)

// Texture targets and units.
const (
	Texture2D            Enum = 0x0DE1
	Texture2DMultisample Enum = 0x9100
	Texture0             Enum = 0x84C0
)

// Pixel formats.
const (
	DepthComponent   Enum = 0x1902
	RGB              Enum = 0x1907
	RGBA             Enum = 0x1908
	RGB8             Enum = 0x8051
	RGBA8            Enum = 0x8058
	RGB16F           Enum = 0x881B
	SRGB8            Enum = 0x8C41
	SRGB8Alpha8      Enum = 0x8C43
	DepthComponent24 Enum = 0x81A6
	Depth24Stencil8  Enum = 0x88F0
)

// Texture and sampler parameters.
const (
	TextureMagFilter        Enum = 0x2800
	TextureMinFilter        Enum = 0x2801
	TextureWrapS            Enum = 0x2802
	TextureWrapT            Enum = 0x2803
	TextureCompareMode      Enum = 0x884C
	TextureCompareFunc      Enum = 0x884D
	TextureMaxAnisotropy    Enum = 0x84FE
	MaxTextureMaxAnisotropy Enum = 0x84FF

	Nearest              Enum = 0x2600
	Linear               Enum = 0x2601
	NearestMipmapNearest Enum = 0x2700
	LinearMipmapNearest  Enum = 0x2701
	LinearMipmapLinear   Enum = 0x2703
	Repeat               Enum = 0x2901
	ClampToEdge          Enum = 0x812F
	MirroredRepeat       Enum = 0x8370
	CompareRefToTexture  Enum = 0x884E
)

// Framebuffers and renderbuffers.
const (
	FramebufferTarget      Enum = 0x8D40
	ReadFramebuffer        Enum = 0x8CA8
	DrawFramebuffer        Enum = 0x8CA9
	RenderbufferTarget     Enum = 0x8D41
	ColorAttachment0       Enum = 0x8CE0
	DepthAttachment        Enum = 0x8D00
	DepthStencilAttachment Enum = 0x821A
	None                   Enum = 0

	FramebufferComplete                    Enum = 0x8CD5
	FramebufferIncompleteAttachment        Enum = 0x8CD6
	FramebufferIncompleteMissingAttachment Enum = 0x8CD7
	FramebufferUnsupported                 Enum = 0x8CDD
	FramebufferIncompleteMultisample       Enum = 0x8D56
)
