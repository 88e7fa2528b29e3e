// Package app drives the window, input and scene: one frame per loop
// iteration.
package app

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/umbra/internal/config"
	"github.com/Faultbox/umbra/internal/engine/camera"
	"github.com/Faultbox/umbra/internal/engine/debug"
	"github.com/Faultbox/umbra/internal/engine/framebuffer"
	"github.com/Faultbox/umbra/internal/engine/geometry"
	"github.com/Faultbox/umbra/internal/engine/gpu/glcore"
	"github.com/Faultbox/umbra/internal/engine/input"
	"github.com/Faultbox/umbra/internal/engine/renderer"
	"github.com/Faultbox/umbra/internal/engine/scene"
	"github.com/Faultbox/umbra/internal/engine/shader"
	"github.com/Faultbox/umbra/internal/engine/texture"
	"github.com/Faultbox/umbra/internal/engine/window"
	"github.com/Faultbox/umbra/internal/logger"
)

const title = "umbra"

// App owns every subsystem for the lifetime of the window.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window      *window.Window
	input       *input.Input
	dev         *glcore.Device
	shaders     *shader.Library
	textures    *texture.Library
	geometry    *geometry.Library
	scene       *scene.Scene
	presenter   *renderer.Renderer
	screenshots *debug.ScreenshotCapture

	camera  camera.Camera
	toggles toggles
	width   int32
	height  int32
	running bool
	// Set by F12; the capture happens after the next present.
	captureNext bool
}

// New opens the window and builds the scene. Shader failures are returned
// here; nothing is drawn with a partial program set.
func New(cfg *config.Config) (*App, error) {
	conv, err := scene.ParseConvention(cfg.Render.ShadowConvention)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: logger.Named("app")}
	a.log.Info("initializing",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("cubes", cfg.Scene.Cubes),
		zap.Int("lights", cfg.Scene.Lights),
	)

	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Everything below needs the GL context created with the window.
	if a.dev, err = glcore.New(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if a.shaders, err = shader.NewLibrary(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build shaders: %w", err)
	}
	a.textures = texture.NewLibrary(a.dev, cfg.Textures.MaxSize)
	a.geometry = geometry.NewLibrary(a.dev)
	a.presenter = renderer.New(a.dev, a.shaders)
	a.screenshots = debug.NewScreenshotCapture(cfg.Render.ScreenshotDir, title)
	a.input = input.New()

	a.toggles = newToggles(cfg, conv)
	a.scene = scene.New(a.dev, scene.Providers{
		Geometry: a.geometry,
		Textures: a.textures,
		Shaders:  a.shaders,
	}, scene.Options{
		TextureDir: cfg.Textures.Dir,
		Diffuse:    cfg.Textures.Diffuse,
		Normal:     cfg.Textures.Normal,
		Specular:   cfg.Textures.Specular,
		Occlusion:  cfg.Textures.Occlusion,
		Seed:       cfg.Scene.Seed,
		Spotlight:  a.toggles.spotlight,
	})
	if err := a.scene.Init(cfg.Scene.Cubes, cfg.Scene.Lights); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize scene: %w", err)
	}

	w, h := a.window.GetSize()
	a.width, a.height = int32(w), int32(h)
	a.camera = camera.New(camera.Config{
		FOV:         cfg.Camera.FOV,
		Near:        cfg.Camera.Near,
		Far:         cfg.Camera.Far,
		Speed:       cfg.Camera.Speed,
		TurboSpeed:  cfg.Camera.TurboSpeed,
		Sensitivity: cfg.Camera.Sensitivity,
	}, float32(w)/float32(max(h, 1)))
	a.camera.LookAt(homeEye, homeTarget)
	a.configureTargets()

	a.log.Info("initialized", zap.Stringer("convention", conv))
	return a, nil
}

func newToggles(cfg *config.Config, conv scene.Convention) toggles {
	samples := int32(cfg.Render.MSAASamples)
	msaa := samples > 1
	if !msaa {
		samples = msaaFallback
	}
	t := toggles{
		settings: scene.RenderSettings{
			VSync:       cfg.Window.VSync,
			Wireframe:   cfg.Render.Wireframe,
			Tonemapping: cfg.Render.Tonemapping,
		},
		msaa:       msaa,
		samples:    samples,
		convention: conv,
		animate:    cfg.Scene.Animate,
		spotlight:  cfg.Render.Spotlight,
	}
	t.settings.MSAASamples = t.activeSamples()
	return t
}

// configureTargets rebuilds the offscreen targets for the current size and
// sample count. Incomplete targets are reported and rendering continues.
func (a *App) configureTargets() {
	err := a.scene.ConfigureTargets(a.width, a.height, a.toggles.activeSamples())
	if err == nil {
		return
	}
	var incomplete *framebuffer.IncompleteError
	if errors.As(err, &incomplete) {
		a.log.Warn("render target incomplete",
			zap.String("target", incomplete.Target),
			zap.Uint32("status", incomplete.Status),
			zap.Error(err))
		return
	}
	a.log.Warn("render target setup failed", zap.Error(err))
}

// Run runs the frame loop until the window closes or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleInput(float32(dt))
		if !a.running {
			break
		}

		a.frame(float32(dt))

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			ms := elapsed.Seconds() * 1000 / float64(frameCount)
			a.window.SetTitle(fmt.Sprintf("%s | %.2f ms | %d FPS | %s", title, ms, frameCount, a.toggles.convention))
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("frameMs", ms))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleInput(dt float32) {
	st := a.input.State()

	if w, h, ok := st.Resized(); ok && w > 0 && h > 0 {
		a.width, a.height = int32(w), int32(h)
		a.camera.SetAspect(a.width, a.height)
		a.configureTargets()
	}

	c := a.toggles.apply(st)
	if c&changeQuit != 0 {
		a.running = false
		return
	}
	if c&changeTargets != 0 {
		a.log.Info("msaa toggled", zap.Int32("samples", a.toggles.activeSamples()))
		a.configureTargets()
	}
	if c&changeVSync != 0 {
		a.window.SetVSync(a.toggles.settings.VSync)
	}
	if c&changeSpotlight != 0 {
		a.scene.SetSpotlight(a.toggles.spotlight)
	}

	a.window.SetRelativeMouse(st.Button(mouseLook))
	driveCamera(&a.camera, st, dt)

	if c&changeScreenshot != 0 {
		a.captureNext = true
	}
}

// frame updates the lights, draws the scene and presents it.
func (a *App) frame(dt float32) {
	if !a.toggles.animate {
		dt = 0
	}
	a.scene.Update(dt)
	a.scene.Draw(a.camera, a.toggles.settings, a.toggles.convention)
	a.presenter.Present(a.scene.Targets(), a.width, a.height, a.toggles.settings.Tonemapping)

	if a.captureNext {
		a.captureNext = false
		name, err := a.screenshots.Capture(a.dev, int(a.width), int(a.height))
		if err != nil {
			a.log.Warn("screenshot failed", zap.Error(err))
		} else {
			a.log.Info("screenshot saved", zap.String("file", name))
		}
	}

	a.window.SwapBuffers()
}

// Close releases GPU resources in reverse creation order and closes the
// window. Safe on a partially constructed App.
func (a *App) Close() {
	a.log.Info("closing")

	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.presenter != nil {
		a.presenter.Close()
	}
	if a.geometry != nil {
		a.geometry.Release()
	}
	if a.textures != nil {
		a.textures.Release()
	}
	if a.shaders != nil {
		a.shaders.Release()
	}
	if a.window != nil {
		a.window.Close()
	}
}
