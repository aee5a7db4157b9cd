// Package config resolves user settings: defaults, then DICE_* environment, then command-line flags
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/dice-tray/calibration"
	"github.com/lixenwraith/dice-tray/engine"
	"github.com/lixenwraith/dice-tray/event"
	"github.com/lixenwraith/dice-tray/parameter"
	"github.com/lixenwraith/dice-tray/physics"
	"github.com/lixenwraith/dice-tray/settle"
	"github.com/lixenwraith/dice-tray/status"
	"github.com/lixenwraith/dice-tray/throw"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the persisted user configuration
// Unset environment variables keep the value already in the struct
type Config struct {
	Die         string `env:"DICE_DIE"`
	Calibration string `env:"DICE_CALIBRATION"` // JSON table path, overrides Die
	Seed        int64  `env:"DICE_SEED"`        // 0 seeds from the clock

	Radius    float64 `env:"DICE_RADIUS"`
	TrayWidth float64 `env:"DICE_TRAY_WIDTH"`
	TrayDepth float64 `env:"DICE_TRAY_DEPTH"`
	Gravity   float64 `env:"DICE_GRAVITY"`

	ThrowScale    float64 `env:"DICE_THROW_SCALE"`
	ThrowMinLift  float64 `env:"DICE_THROW_MIN_LIFT"`
	ThrowMaxSpeed float64 `env:"DICE_THROW_MAX_SPEED"`

	SettleLinear    float64       `env:"DICE_SETTLE_LINEAR"`
	SettleAngular   float64       `env:"DICE_SETTLE_ANGULAR"`
	SettleConfirm   time.Duration `env:"DICE_SETTLE_CONFIRM"`
	SettleCeiling   time.Duration `env:"DICE_SETTLE_CEILING"`
	SnapBlend       float64       `env:"DICE_SNAP_BLEND"`
	PresentDuration time.Duration `env:"DICE_PRESENT_DURATION"`

	DieColor  string `env:"DICE_COLOR"`
	TrayColor string `env:"DICE_TRAY_COLOR"`

	HistoryPath string `env:"DICE_HISTORY"` // empty disables history
	Audio       bool   `env:"DICE_AUDIO"`
	Debug       bool   `env:"DICE_DEBUG"`
}

// Default returns the tuned configuration
func Default() Config {
	return Config{
		Die:             "d20",
		Radius:          parameter.DieRadius,
		TrayWidth:       2 * parameter.TrayHalfWidth,
		TrayDepth:       2 * parameter.TrayHalfDepth,
		Gravity:         parameter.Gravity,
		ThrowScale:      parameter.ThrowScale,
		ThrowMinLift:    parameter.ThrowMinLift,
		ThrowMaxSpeed:   parameter.ThrowMaxSpeed,
		SettleLinear:    parameter.SettleLinearThreshold,
		SettleAngular:   parameter.SettleAngularThreshold,
		SettleConfirm:   parameter.SettleConfirm,
		SettleCeiling:   parameter.SettleCeiling,
		SnapBlend:       parameter.SnapBlend,
		PresentDuration: parameter.PresentDuration,
		DieColor:        "#f5f5dc",
		TrayColor:       "#2e6b3a",
		Audio:           true,
	}
}

// Load applies DICE_* environment overrides to the defaults and validates
func Load() (Config, error) {
	cfg := Default()
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv overlays environment variables onto cfg
func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects values no component can run with
func (c Config) Validate() error {
	switch {
	case c.Calibration == "" && !knownDie(c.Die):
		return fmt.Errorf("%w: unknown die %q (have %v)", ErrInvalidConfig, c.Die, calibration.BuiltinNames())
	case c.Radius <= 0:
		return fmt.Errorf("%w: radius must be positive", ErrInvalidConfig)
	case c.TrayWidth <= 2*c.Radius || c.TrayDepth <= 2*c.Radius:
		return fmt.Errorf("%w: tray %.2fx%.2f too small for radius %.2f", ErrInvalidConfig, c.TrayWidth, c.TrayDepth, c.Radius)
	case c.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive", ErrInvalidConfig)
	case c.ThrowScale <= 0 || c.ThrowMinLift <= 0 || c.ThrowMaxSpeed < c.ThrowMinLift:
		return fmt.Errorf("%w: throw scale, lift and max speed", ErrInvalidConfig)
	case c.SettleLinear <= 0 || c.SettleAngular <= 0:
		return fmt.Errorf("%w: settle thresholds must be positive", ErrInvalidConfig)
	case c.SettleConfirm <= 0 || c.SettleCeiling <= 0 || c.PresentDuration <= 0:
		return fmt.Errorf("%w: durations must be positive", ErrInvalidConfig)
	case c.SnapBlend <= 0 || c.SnapBlend > 1:
		return fmt.Errorf("%w: snap blend %.3f outside (0,1]", ErrInvalidConfig, c.SnapBlend)
	}
	return nil
}

func knownDie(name string) bool {
	for _, n := range calibration.BuiltinNames() {
		if n == name {
			return true
		}
	}
	return false
}

// === Component parameters ===

// TrayParams returns integrator parameters
func (c Config) TrayParams() physics.TrayParams {
	p := physics.DefaultTrayParams()
	p.HalfWidth = c.TrayWidth / 2
	p.HalfDepth = c.TrayDepth / 2
	p.Gravity = c.Gravity
	return p
}

// ThrowParams returns throw controller parameters
func (c Config) ThrowParams() throw.Params {
	p := throw.DefaultParams()
	p.Scale = c.ThrowScale
	p.MinLift = c.ThrowMinLift
	p.MaxSpeed = c.ThrowMaxSpeed
	return p
}

// SettleParams returns settle detector parameters
func (c Config) SettleParams() settle.Params {
	p := settle.DefaultParams(c.Radius)
	p.LinearThreshold = c.SettleLinear
	p.AngularThreshold = c.SettleAngular
	p.Confirm = c.SettleConfirm
	p.Ceiling = c.SettleCeiling
	return p
}

// EngineParams returns state machine parameters
// Heights scale with the radius so large dice still clear the floor
func (c Config) EngineParams() engine.Params {
	p := engine.DefaultParams()
	p.SnapBlend = c.SnapBlend
	p.PresentDuration = c.PresentDuration
	scale := c.Radius / parameter.DieRadius
	p.DragHeight *= scale
	p.DropHeight *= scale
	p.PresentLift *= scale
	return p
}

// Table loads the calibration file when set, else the built-in table for Die
// Tables with faces too close to tell apart are rejected
func (c Config) Table() (*calibration.Table, error) {
	var (
		table *calibration.Table
		err   error
	)
	if c.Calibration != "" {
		table, err = calibration.LoadFile(c.Calibration)
	} else {
		table, err = calibration.Builtin(c.Die)
	}
	if err != nil {
		return nil, err
	}
	if err := table.CheckSeparation(parameter.CalibrationSeparationMin); err != nil {
		return nil, fmt.Errorf("calibration %s: %w", c.DieLabel(), err)
	}
	return table, nil
}

// Rand returns the random source for throws
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// DieLabel names the die for display and history
func (c Config) DieLabel() string {
	if c.Calibration != "" {
		return strings.TrimSuffix(filepath.Base(c.Calibration), filepath.Ext(c.Calibration))
	}
	return c.Die
}

// NewDie builds a die from the configuration on the given clock and device size
func (c Config) NewDie(clock engine.TimeProvider, bus *event.Bus, reg *status.Registry, width, height float64) (*engine.Die, error) {
	table, err := c.Table()
	if err != nil {
		return nil, err
	}
	resolver, err := calibration.NewResolver(table)
	if err != nil {
		return nil, err
	}
	tray, err := physics.NewTray(c.TrayParams())
	if err != nil {
		return nil, err
	}
	thrower, err := throw.NewController(c.ThrowParams(), c.Rand())
	if err != nil {
		return nil, err
	}
	return engine.New(engine.Options{
		Integrator: tray,
		Resolver:   resolver,
		Thrower:    thrower,
		Radius:     c.Radius,
		Params:     c.EngineParams(),
		Settle:     c.SettleParams(),
		Clock:      clock,
		Bus:        bus,
		Status:     reg,
		ViewWidth:  width,
		ViewHeight: height,
	})
}
