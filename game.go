package trex

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	runClipLength  = 1.0
	idleClipLength = 2.0
)

// CharacterOptions converts the player section into controller options.
func (p PlayerConfig) CharacterOptions() CharacterOptions {
	return CharacterOptions{
		Position: p.Position,
		Rotation: p.Rotation,
		Scale:    p.Scale,
		Visuals: CharacterVisuals{
			Shader:        p.Shader,
			Mesh:          p.Mesh,
			BaseTexture:   p.BaseTexture,
			NormalTexture: p.NormalTexture,
		},
		Animator: NewClipAnimator(p.Bones, map[string]float32{
			AnimRun:  runClipLength,
			AnimIdle: idleClipLength,
		}),
	}
}

// NewGame assembles a session from cfg. A nil sink falls back to
// LogRenderSink. A headless game opens no window; its Input resource is left
// for the caller to drive.
//
// If a module fails to install, the hooks registered so far are run and the
// failure is returned.
func NewGame(cfg Config, sink RenderSink, headless bool) (game *App, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := NewApp()
	defer func() {
		if r := recover(); r != nil {
			app.runShutdown()
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			game, err = nil, fmt.Errorf("build game: %w", cause)
		}
	}()

	app.UseModules(LoggingModule{
		Prefix:     cfg.Log.Prefix,
		Debug:      cfg.Log.Debug || cfg.Session.Debug,
		StatsEvery: cfg.Log.StatsEvery,
	})
	if headless {
		app.Commands().AddResources(&Input{})
	} else {
		app.UseModules(
			NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title),
			InputModule{},
		)
	}

	app.UseModules(
		TimeModule{
			MaxFrameRate:   cfg.Frame.MaxFPS,
			SpikeThreshold: cfg.Frame.SpikeThreshold,
			SpikeDt:        cfg.Frame.SpikeDt,
		},
		CameraModule{
			Viewport: mgl32.Vec2{float32(cfg.Window.Width), float32(cfg.Window.Height)},
			Position: cfg.Camera.Position,
			Rotation: cfg.Camera.Rotation,
			Near:     cfg.Camera.Near,
			Far:      cfg.Camera.Far,
		},
		CollisionModule{},
		RenderModule{Sink: sink, Debug: cfg.Session.Debug},
		LevelModule{Boxes: cfg.Level.Boxes},
		HudModule{},
		SessionModule{},
	)

	app.UseModules(CharacterModule{
		Options:  cfg.Player.CharacterOptions(),
		Detached: cfg.Session.FreeLook,
	})
	if cfg.Session.FreeLook {
		app.UseModules(FreeLookModule{})
	}

	return app, nil
}
