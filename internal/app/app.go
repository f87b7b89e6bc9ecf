// Package app runs the gallery window: the frame loop that ties input,
// the camera walk and the renderer together.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/plastic-gallery/internal/assets"
	"github.com/Faultbox/plastic-gallery/internal/config"
	"github.com/Faultbox/plastic-gallery/internal/engine/audio"
	"github.com/Faultbox/plastic-gallery/internal/engine/camera"
	"github.com/Faultbox/plastic-gallery/internal/engine/capture"
	"github.com/Faultbox/plastic-gallery/internal/engine/input"
	"github.com/Faultbox/plastic-gallery/internal/engine/renderer"
	"github.com/Faultbox/plastic-gallery/internal/engine/scene"
	"github.com/Faultbox/plastic-gallery/internal/engine/window"
	"github.com/Faultbox/plastic-gallery/internal/gallery"
	"github.com/Faultbox/plastic-gallery/internal/logger"
)

// Title is the window caption prefix.
const Title = "Plastic Gallery"

// Surface is where frames are drawn. *renderer.Renderer is the OpenGL one.
type Surface interface {
	Viewport
	Upload(b scene.Batch)
	Render(sc *scene.Scene, cam *camera.Camera)
	ReadPixels() ([]byte, int, int)
	Close()
}

// App is the running gallery.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer Surface
	input    *input.Input
	camera   *camera.Camera
	scene    *scene.Scene
	assets   *assets.Manager
	pipeline *gallery.Pipeline
	capture  *capture.Capturer
	audio    *audio.Player

	caption  string
	shoot    bool
	paused   bool
	finished bool
}

// NewScene builds the stage described by the scene config.
func NewScene(cfg config.SceneConfig) *scene.Scene {
	sc := scene.New()
	sc.ClearColor = cfg.ClearColor
	sc.Ambient = cfg.Ambient
	sc.Ground.Color = cfg.GroundColor
	sc.Ground.Size = cfg.GroundSize
	return sc
}

// New opens the window and prepares every stage of the gallery.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing gallery",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("assets", cfg.Assets.Root),
	)

	a := &App{cfg: cfg}

	// Window first, the renderer needs its GL context
	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.Size()
	r, err := renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer = r

	a.input = input.New(nil)
	a.camera = camera.New(cfg.Gallery.FOV, width, height)
	a.scene = NewScene(cfg.Scene)
	a.assets = assets.NewManager(cfg.Assets.Root)
	a.pipeline = gallery.NewPipeline(gallery.SettingsFromConfig(cfg), a.assets, a.scene, a.camera)
	a.capture = capture.New(cfg.Graphics.ScreenshotDir, "gallery")
	a.audio = openAudio(cfg)
	if a.audio != nil {
		a.pipeline.OnArrive = func(int) { a.audio.Chime() }
	}

	logger.Info("gallery initialized")
	return a, nil
}

// Open resolves and lays out the lineup and starts the walk. Labels and
// models keep arriving in the scene while the loop runs.
func (a *App) Open(ctx context.Context, descs []gallery.ModelDescriptor) error {
	return a.pipeline.Run(ctx, descs)
}

// Run starts the frame loop and returns when the window closes.
func (a *App) Run() error {
	if a.pipeline.Choreo == nil {
		return fmt.Errorf("no lineup opened")
	}
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		for _, ev := range a.input.Events() {
			switch ev.Action {
			case input.ActionScreenshot:
				a.shoot = true
			case input.ActionResize:
				// Event sizes are in window points, GL wants pixels
				ev.Width, ev.Height = a.window.Size()
			}
			if handle(ev, a.pipeline.Choreo, a.camera, a.renderer) {
				a.running = false
			}
		}

		a.update(dt)
		a.render()
		if a.shoot {
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			hits, misses := a.assets.Stats()
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float64("dt_ms", dt*1000),
				zap.Int("objects", len(a.scene.Objects())),
				zap.Int("exhibits_posted", a.scene.Posted()),
				zap.Int("cache_hits", hits),
				zap.Int("cache_misses", misses))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close waits for scene population to settle and releases everything.
func (a *App) Close() {
	logger.Info("closing gallery")

	if a.pipeline != nil {
		a.pipeline.Populator.Wait()
	}
	if a.assets != nil {
		a.assets.Close()
	}
	if a.audio != nil {
		a.audio.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) update(dt float64) {
	walk := a.pipeline.Choreo
	walk.Update(dt)

	if done := walk.Done(); done != a.finished {
		a.finished = done
		if done {
			logger.Info("walk complete", zap.Float64("seconds", walk.Elapsed()))
		}
	}
	if paused := !walk.Autoplay(); a.audio != nil && paused != a.paused {
		a.paused = paused
		a.audio.SetPaused(paused)
	}

	if c := title(Title, a.pipeline.Placed, a.pipeline.Choreo); c != a.caption {
		a.caption = c
		a.window.SetTitle(c)
	}
}

func (a *App) render() {
	if added := a.scene.Drain(); !added.Empty() {
		a.renderer.Upload(added)
	}
	a.renderer.Render(a.scene, a.camera)
}

func (a *App) screenshot() {
	a.shoot = false
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.capture.SavePixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// openAudio starts the ambience player. Audio is optional: any failure
// is logged and the gallery runs silent.
func openAudio(cfg *config.Config) *audio.Player {
	ac := cfg.Audio
	if !ac.Enabled || (ac.Music == "" && ac.Chime == "") {
		return nil
	}

	p := audio.New(ac.Volume)
	if err := p.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
		return nil
	}

	if ac.Chime != "" {
		if err := withAsset(cfg.Assets.Root, ac.Chime, p.LoadChime); err != nil {
			logger.Warn("chime not loaded", zap.String("path", ac.Chime), zap.Error(err))
		}
	}
	if ac.Music != "" {
		f, err := os.Open(assetPath(cfg.Assets.Root, ac.Music))
		if err == nil {
			err = p.PlayMusic(f)
			if err != nil {
				f.Close()
			}
		}
		if err != nil {
			logger.Warn("music not started", zap.String("path", ac.Music), zap.Error(err))
		}
	}

	logger.Info("audio ready",
		zap.Float64("volume", p.Volume()),
		zap.Duration("chime", p.ChimeLength()))
	return p
}

func assetPath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func withAsset(root, p string, fn func(io.Reader) error) error {
	f, err := os.Open(assetPath(root, p))
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}
