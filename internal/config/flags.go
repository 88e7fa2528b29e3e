package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagMSAA       = flag.Int("msaa", 0, "MSAA sample count (1 disables multisampling)")
	flagCubes      = flag.Int("cubes", 0, "Number of shadow casting cubes")
	flagLights     = flag.Int("lights", 0, "Number of point lights")
	flagDepthPass  = flag.Bool("depth-pass", false, "Use depth-pass stencil counting instead of Carmack's reverse")
	flagSpotlight  = flag.Bool("spotlight", false, "Enable the shadow mapped spotlight")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagMSAA > 0 {
		cfg.Render.MSAASamples = *flagMSAA
	}
	if *flagCubes > 0 {
		cfg.Scene.Cubes = *flagCubes
	}
	if *flagLights > 0 {
		cfg.Scene.Lights = *flagLights
	}
	if *flagDepthPass {
		cfg.Render.ShadowConvention = "depth-pass"
	}
	if *flagSpotlight {
		cfg.Render.Spotlight = true
	}
}
