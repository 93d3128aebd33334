package render

import (
	"context"
	"math/rand/v2"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"ml-universe/internal/audio"
	"ml-universe/internal/config"
	"ml-universe/internal/loading"
	"ml-universe/internal/logger"
	"ml-universe/internal/nav"
	"ml-universe/internal/universe"
)

// Options configures Run.
type Options struct {
	Logger *logger.Logger
	// Reload delivers configs from the file watcher; nil disables hot reload.
	Reload <-chan *config.Config
	// Fullscreen overrides the config's window mode.
	Fullscreen bool
}

// Run opens the window and drives the frame loop until the window closes or ctx is done.
// It must be called from the main goroutine. Each frame it polls input, the load sequence,
// the audio retry and config reloads, then steps the universe and draws.
func Run(ctx context.Context, u *universe.Universe, opts Options) error {
	cfg := u.Config()
	log := zap.NewNop()
	if opts.Logger != nil {
		log = opts.Logger.Zap().Named("render")
	}

	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if cfg.Window.Fullscreen || opts.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	defer rl.CloseWindow()
	// Escape closes the content panel; the window closes via its button.
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(cfg.Window.FPS)

	scene := NewScene(cfg)
	defer scene.Unload()
	overlay := NewOverlay(opts.Logger)
	defer overlay.Unload()
	applyDebug(overlay, cfg)
	if cfg.Window.Font != "" {
		if font, err := loadFont(cfg.Window.Font); err != nil {
			log.Warn("overlay font unavailable, using default", zap.String("font", cfg.Window.Font), zap.Error(err))
		} else {
			overlay.SetFont(font)
		}
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(uint64(cfg.Seed), 0))
	}
	seq := loading.Start(ctx, cfg.Loading, rng, log.Named("loading"))
	defer seq.Stop()

	var player audio.Player
	if m, err := OpenMusic(cfg.Audio.Path, cfg.Audio.Volume); err != nil {
		log.Debug("ambient audio unavailable", zap.Error(err))
	} else {
		player = m
	}
	amb := audio.NewAmbient(player, log.Named("audio"))
	defer amb.Close()
	ctrl := u.Controller()
	amb.Start(cfg.Audio.Autoplay, ctrl.FirstInteraction())

	in := &input{u: u, scene: scene, amb: amb, hovered: nav.SectionNone}
	u.Resize(rl.GetScreenWidth())
	start := rl.GetTime()
	log.Info("window open", zap.Int("width", rl.GetScreenWidth()), zap.Int("height", rl.GetScreenHeight()))

	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		case next := <-opts.Reload:
			if err := u.Reconfigure(next); err != nil {
				log.Warn("config not applied", zap.Error(err))
			} else {
				scene.Apply(u.Config())
				applyDebug(overlay, u.Config())
				rl.SetTargetFPS(u.Config().Window.FPS)
			}
		default:
		}

		elapsed := float32(rl.GetTime() - start)
		if rl.IsWindowResized() {
			u.Resize(rl.GetScreenWidth())
		}
		select {
		case <-seq.Done():
			ctrl.MarkLoaded(elapsed)
		default:
		}
		in.poll(elapsed, u.Frame())
		amb.Poll()

		frame := u.Step(elapsed)
		scene.SetDistance(ctrl.Viewport().CameraDistance)

		rl.BeginDrawing()
		rl.ClearBackground(scene.Background)
		scene.Draw(u, frame)
		if !frame.Visible {
			overlay.Loading(seq.Percent())
		} else {
			overlay.Heading(scene, u.Heading(frame))
			overlay.Labels(scene, frame)
			panel, open := u.Panel()
			if open {
				overlay.Panel(panel, ctrl.State().Narrow)
			}
			overlay.Hint(open, amb.Playing())
		}
		overlay.Debug()
		rl.EndDrawing()
	}
	log.Info("window closed")
	return nil
}

func applyDebug(o *Overlay, cfg *config.Config) {
	o.ShowFPS = cfg.Debug.ShowFPS
	o.ShowMemAlloc = cfg.Debug.ShowMemAlloc
	o.ShowLog = cfg.Debug.ShowLog
}
