// Package config handles renderer configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Render   RenderConfig   `yaml:"render"`
	Scene    SceneConfig    `yaml:"scene"`
	Camera   CameraConfig   `yaml:"camera"`
	Textures TexturesConfig `yaml:"textures"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// RenderConfig holds the initial render mode. Every field except
// ScreenshotDir can be toggled at runtime.
type RenderConfig struct {
	MSAASamples      int    `yaml:"msaa_samples"`
	Wireframe        bool   `yaml:"wireframe"`
	Tonemapping      bool   `yaml:"tonemapping"`
	ShadowConvention string `yaml:"shadow_convention"` // "depth-fail" or "depth-pass"
	Spotlight        bool   `yaml:"spotlight"`
	ScreenshotDir    string `yaml:"screenshot_dir"`
}

// SceneConfig holds scene population settings. Counts are fixed once the
// scene is initialized.
type SceneConfig struct {
	Cubes   int    `yaml:"cubes"`
	Lights  int    `yaml:"lights"`
	Seed    uint64 `yaml:"seed"`
	Animate bool   `yaml:"animate"`
}

// CameraConfig holds the fly camera settings.
type CameraConfig struct {
	FOV         float32 `yaml:"fov"` // degrees
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	Speed       float32 `yaml:"speed"`
	TurboSpeed  float32 `yaml:"turbo_speed"`
	Sensitivity float32 `yaml:"sensitivity"`
}

// TexturesConfig points at the cube material images.
type TexturesConfig struct {
	Dir       string `yaml:"dir"`
	Diffuse   string `yaml:"diffuse"`
	Normal    string `yaml:"normal"`
	Specular  string `yaml:"specular"`
	Occlusion string `yaml:"occlusion"`
	MaxSize   int    `yaml:"max_size"` // larger images are downscaled on load
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Render: RenderConfig{
			MSAASamples:      4,
			Tonemapping:      true,
			ShadowConvention: "depth-fail",
			ScreenshotDir:    "screenshots",
		},
		Scene: SceneConfig{
			Cubes:  5,
			Lights: 1,
			Seed:   1,
		},
		Camera: CameraConfig{
			FOV:         45,
			Near:        0.1,
			Far:         1000.1,
			Speed:       5,
			TurboSpeed:  50,
			Sensitivity: 0.002,
		},
		Textures: TexturesConfig{
			Dir:       "data",
			Diffuse:   "Terracotta_Tiles_002_Base_Color.jpg",
			Normal:    "Terracotta_Tiles_002_Normal.jpg",
			Specular:  "Terracotta_Tiles_002_Roughness.jpg",
			Occlusion: "Terracotta_Tiles_002_ambientOcclusion.jpg",
			MaxSize:   2048,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
