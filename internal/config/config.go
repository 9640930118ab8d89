// Package config loads the walker's window, world, physics and control settings
// from YAML or TOML files layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leterax/go-roam/pkg/input"
	"github.com/leterax/go-roam/pkg/locomotion"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window   WindowConfig   `yaml:"window" toml:"window"`
	World    WorldConfig    `yaml:"world" toml:"world"`
	Physics  PhysicsConfig  `yaml:"physics" toml:"physics"`
	Controls ControlsConfig `yaml:"controls" toml:"controls"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

type WindowConfig struct {
	Width            int     `yaml:"width" toml:"width"`
	Height           int     `yaml:"height" toml:"height"`
	Title            string  `yaml:"title" toml:"title"`
	VSync            bool    `yaml:"vsync" toml:"vsync"`
	FOV              float32 `yaml:"fov" toml:"fov"`
	Near             float32 `yaml:"near" toml:"near"`
	Far              float32 `yaml:"far" toml:"far"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity" toml:"mouse_sensitivity"`
}

type BoundaryConfig struct {
	MinX float32 `yaml:"min_x" toml:"min_x"`
	MaxX float32 `yaml:"max_x" toml:"max_x"`
	MinZ float32 `yaml:"min_z" toml:"min_z"`
	MaxZ float32 `yaml:"max_z" toml:"max_z"`
}

type WorldConfig struct {
	Boundary   BoundaryConfig `yaml:"boundary" toml:"boundary"`
	CubeCount  int            `yaml:"cube_count" toml:"cube_count"`
	CubeSpread float32        `yaml:"cube_spread" toml:"cube_spread"`
	FloorSize  float32        `yaml:"floor_size" toml:"floor_size"`
	Seed       int64          `yaml:"seed" toml:"seed"` // 0 picks a time-based seed
}

type PhysicsConfig struct {
	Gravity      float32 `yaml:"gravity" toml:"gravity"`
	Step         float32 `yaml:"step" toml:"step"`
	JumpImpulse  float32 `yaml:"jump_impulse" toml:"jump_impulse"`
	GroundHeight float32 `yaml:"ground_height" toml:"ground_height"`
	MaxDelta     float32 `yaml:"max_delta" toml:"max_delta"`
}

// ControlsConfig lists the key codes bound to each action
type ControlsConfig struct {
	Forward  []string `yaml:"forward" toml:"forward"`
	Backward []string `yaml:"backward" toml:"backward"`
	Left     []string `yaml:"left" toml:"left"`
	Right    []string `yaml:"right" toml:"right"`
	Jump     []string `yaml:"jump" toml:"jump"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the stock scene: an 800x600 window, 20 cubes and a ±15 play area
func Default() *Config {
	params := locomotion.DefaultParams()
	bounds := locomotion.DefaultBoundary()
	bindings := input.DefaultBindings()

	return &Config{
		Window: WindowConfig{
			Width:            800,
			Height:           600,
			Title:            "Go-Roam",
			VSync:            true,
			FOV:              75,
			Near:             0.1,
			Far:              1000,
			MouseSensitivity: 0.1,
		},
		World: WorldConfig{
			Boundary: BoundaryConfig{
				MinX: bounds.MinX,
				MaxX: bounds.MaxX,
				MinZ: bounds.MinZ,
				MaxZ: bounds.MaxZ,
			},
			CubeCount:  20,
			CubeSpread: 5,
			FloorSize:  200,
		},
		Physics: PhysicsConfig{
			Gravity:      params.Gravity,
			Step:         params.Step,
			JumpImpulse:  params.JumpImpulse,
			GroundHeight: params.GroundHeight,
			MaxDelta:     params.MaxDelta,
		},
		Controls: ControlsConfig{
			Forward:  bindings[input.Forward],
			Backward: bindings[input.Backward],
			Left:     bindings[input.Left],
			Right:    bindings[input.Right],
			Jump:     bindings[input.Jump],
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults. The format is picked from the extension:
// .yaml/.yml or .toml. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config: unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges that would make the scene or the physics meaningless
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.FOV > 0 && c.Window.FOV < 180, "window.fov %g", c.Window.FOV)
	check(c.Window.Near > 0 && c.Window.Near < c.Window.Far, "window near/far %g/%g", c.Window.Near, c.Window.Far)

	if err := c.Boundary().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: world.boundary: %w", ErrInvalid, err))
	}
	check(c.World.CubeCount >= 0, "world.cube_count %d", c.World.CubeCount)
	check(c.World.FloorSize > 0, "world.floor_size %g", c.World.FloorSize)

	check(c.Physics.Gravity >= 0, "physics.gravity %g", c.Physics.Gravity)
	check(c.Physics.Step >= 0, "physics.step %g", c.Physics.Step)
	check(c.Physics.MaxDelta >= 0, "physics.max_delta %g", c.Physics.MaxDelta)

	if _, err := c.Bindings(); err != nil {
		errs = append(errs, fmt.Errorf("%w: controls: %w", ErrInvalid, err))
	}

	return errors.Join(errs...)
}

// Params converts the physics section for the walker
func (c *Config) Params() locomotion.Params {
	return locomotion.Params{
		Gravity:      c.Physics.Gravity,
		Step:         c.Physics.Step,
		JumpImpulse:  c.Physics.JumpImpulse,
		GroundHeight: c.Physics.GroundHeight,
		MaxDelta:     c.Physics.MaxDelta,
	}
}

// Boundary converts the play area
func (c *Config) Boundary() locomotion.Boundary {
	b := c.World.Boundary
	return locomotion.Boundary{MinX: b.MinX, MaxX: b.MaxX, MinZ: b.MinZ, MaxZ: b.MaxZ}
}

// Bindings converts the controls section. Every action needs at least one key.
func (c *Config) Bindings() (input.Bindings, error) {
	bindings := input.Bindings{
		input.Forward:  c.Controls.Forward,
		input.Backward: c.Controls.Backward,
		input.Left:     c.Controls.Left,
		input.Right:    c.Controls.Right,
		input.Jump:     c.Controls.Jump,
	}
	for action, codes := range bindings {
		if len(codes) == 0 {
			return nil, fmt.Errorf("no keys bound to %s", action)
		}
		for _, code := range codes {
			if strings.TrimSpace(code) == "" {
				return nil, fmt.Errorf("empty key code bound to %s", action)
			}
		}
	}
	return bindings, nil
}
