package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// MaxCubes is the number of instance slots the GPU instance block holds.
const MaxCubes = 1024

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var err error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}

	switch c.Render.MSAASamples {
	case 1, 2, 4, 8, 16:
	default:
		err = multierr.Append(err, fmt.Errorf("render: msaa_samples %d must be one of 1, 2, 4, 8, 16", c.Render.MSAASamples))
	}
	switch c.Render.ShadowConvention {
	case "depth-fail", "depth-pass":
	default:
		err = multierr.Append(err, fmt.Errorf("render: unknown shadow_convention %q", c.Render.ShadowConvention))
	}

	if c.Scene.Cubes < 1 || c.Scene.Cubes > MaxCubes {
		err = multierr.Append(err, fmt.Errorf("scene: cubes %d out of range [1, %d]", c.Scene.Cubes, MaxCubes))
	}
	if c.Scene.Lights < 1 {
		err = multierr.Append(err, fmt.Errorf("scene: lights %d must be at least 1", c.Scene.Lights))
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		err = multierr.Append(err, fmt.Errorf("camera: fov %.1f out of range (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		err = multierr.Append(err, fmt.Errorf("camera: invalid clip range near=%g far=%g", c.Camera.Near, c.Camera.Far))
	}

	if c.Textures.MaxSize < 0 {
		err = multierr.Append(err, fmt.Errorf("textures: max_size %d must not be negative", c.Textures.MaxSize))
	}

	return err
}
