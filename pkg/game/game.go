// Package game wires input, locomotion, the camera and the debug panel into a
// per-frame step, and runs it either in a window or headless on a ticker.
package game

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-roam/internal/config"
	"github.com/leterax/go-roam/internal/logger"
	"github.com/leterax/go-roam/pkg/debug"
	"github.com/leterax/go-roam/pkg/input"
	"github.com/leterax/go-roam/pkg/locomotion"
	"github.com/leterax/go-roam/pkg/render"
)

// Debug panel slider range and resolution for the camera position
const (
	panelMin  = -15
	panelMax  = 15
	panelStep = 0.001
)

// Game holds the walker's state between frames. It is not safe for concurrent
// use; every method must be called from the frame thread.
type Game struct {
	cfg    *config.Config
	keys   *input.KeyState
	state  *locomotion.PlayerState
	walker *locomotion.Walker
	camera *render.Camera
	panel  *debug.Panel

	console      *debug.Console
	reloads      <-chan *config.Config
	reloadErrors <-chan error

	log       *slog.Logger
	lastState locomotion.State
	locked    bool
	fps       float32
	now       func() time.Time
}

// Option customizes a Game
type Option func(*Game)

// WithReloads applies configs received on updates between frames and logs
// the failures received on errs
func WithReloads(updates <-chan *config.Config, errs <-chan error) Option {
	return func(g *Game) {
		g.reloads = updates
		g.reloadErrors = errs
	}
}

// WithLogger replaces the default logger
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.log = l }
}

// New creates a game standing on the ground at the origin of the play area
func New(cfg *config.Config, camera *render.Camera, opts ...Option) (*Game, error) {
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, err
	}

	walker := locomotion.NewWalker(cfg.Params(), cfg.Boundary())
	walker.Bindings = bindings

	g := &Game{
		cfg:    cfg,
		keys:   input.NewKeyState(),
		state:  locomotion.NewPlayerState(),
		walker: walker,
		camera: camera,
		panel:  debug.NewPanel(),
		log:    logger.L(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}

	camera.SetPosition(mgl32.Vec3{0, cfg.Physics.GroundHeight, 0})
	if cfg.Window.MouseSensitivity > 0 {
		camera.SetRotateSpeed(cfg.Window.MouseSensitivity)
	}
	g.panel.AddPositionFolder("camera", camera, panelMin, panelMax, panelStep)
	g.lastState = g.state.State()

	return g, nil
}

// Keys returns the key state fed by input events
func (g *Game) Keys() *input.KeyState { return g.keys }

// Player returns the kinematic state
func (g *Game) Player() *locomotion.PlayerState { return g.state }

// Camera returns the camera moved by the walker
func (g *Game) Camera() *render.Camera { return g.camera }

// Panel returns the debug panel
func (g *Game) Panel() *debug.Panel { return g.panel }

// AttachConsole runs c's queued commands and refreshes its status line every step.
// c should be built over Panel().
func (g *Game) AttachConsole(c *debug.Console) {
	g.console = c
}

// Config returns the active configuration
func (g *Game) Config() *config.Config { return g.cfg }

// Step advances the game by one frame of delta seconds
func (g *Game) Step(delta float32) {
	g.applyReloads()
	if g.console != nil {
		g.console.Poll()
	}

	g.walker.Update(delta, g.keys, g.state, g.camera)

	if st := g.state.State(); st != g.lastState {
		g.log.Debug("state changed", "from", g.lastState, "to", st, "vy", g.state.VelocityY)
		g.lastState = st
	}

	g.trackFPS(delta)
	if g.console != nil {
		g.console.Refresh(g.Status(), g.now())
	}
}

// Status returns the values shown on the debug status line
func (g *Game) Status() debug.Status {
	return debug.Status{
		Position:  g.camera.Position(),
		VelocityY: g.state.VelocityY,
		State:     g.state.State().String(),
		FPS:       g.fps,
		Locked:    g.locked,
	}
}

// ApplyConfig swaps in new physics, boundary, bindings and log level.
// Window settings only take effect on the next start.
func (g *Game) ApplyConfig(cfg *config.Config) error {
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}

	g.walker.Params = cfg.Params()
	g.walker.Boundary = cfg.Boundary()
	g.walker.Bindings = bindings
	if cfg.Window.MouseSensitivity > 0 {
		g.camera.SetRotateSpeed(cfg.Window.MouseSensitivity)
	}
	logger.SetLevel(cfg.Logging.Level)
	g.cfg = cfg
	return nil
}

func (g *Game) applyReloads() {
	for {
		select {
		case err, ok := <-g.reloadErrors:
			if !ok {
				g.reloadErrors = nil
				continue
			}
			g.log.Warn("config reload failed", "error", err)
		case cfg, ok := <-g.reloads:
			if !ok {
				g.reloads = nil
				continue
			}
			if err := g.ApplyConfig(cfg); err != nil {
				g.log.Warn("config reload rejected", "error", err)
				continue
			}
			g.log.Info("config reloaded",
				"gravity", cfg.Physics.Gravity,
				"boundary", cfg.Boundary())
		default:
			return
		}
	}
}

// trackFPS keeps an exponential moving average of the frame rate
func (g *Game) trackFPS(delta float32) {
	if delta <= 0 {
		return
	}
	instant := 1 / delta
	if g.fps == 0 {
		g.fps = instant
		return
	}
	g.fps += (instant - g.fps) * 0.1
}

// Frame implements render.Handler
func (g *Game) Frame(deltaTime float32) {
	g.Step(deltaTime)
}

// KeyEvent implements render.Handler
func (g *Game) KeyEvent(code string, pressed bool) {
	if pressed {
		g.keys.KeyDown(code)
	} else {
		g.keys.KeyUp(code)
	}
}

// PointerLockChanged implements render.Handler
func (g *Game) PointerLockChanged(locked bool) {
	g.locked = locked
	if locked {
		g.log.Info("pointer locked")
	} else {
		g.log.Info("pointer unlocked")
	}
}

// FocusLost implements render.Handler. Keys held while focus leaves the window
// never get a release event, so they are released here.
func (g *Game) FocusLost() {
	g.keys.ReleaseAll()
}

var _ render.Handler = (*Game)(nil)
