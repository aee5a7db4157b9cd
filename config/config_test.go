package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/dice-tray/calibration"
	"github.com/lixenwraith/dice-tray/engine"
	"github.com/lixenwraith/dice-tray/event"
	"github.com/lixenwraith/dice-tray/parameter"
	"github.com/lixenwraith/dice-tray/status"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DICE_DIE", "d6")
	t.Setenv("DICE_SEED", "42")
	t.Setenv("DICE_SETTLE_CEILING", "4s")
	t.Setenv("DICE_AUDIO", "false")
	t.Setenv("DICE_HISTORY", "/tmp/rolls.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Die != "d6" || cfg.Seed != 42 || cfg.Audio || cfg.HistoryPath != "/tmp/rolls.db" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.SettleCeiling != 4*time.Second {
		t.Fatalf("expected 4s ceiling, got %v", cfg.SettleCeiling)
	}
	if cfg.Radius != parameter.DieRadius {
		t.Fatalf("unset variables must keep defaults, radius %v", cfg.Radius)
	}
}

func TestLoadEnvError(t *testing.T) {
	t.Setenv("DICE_RADIUS", "not-a-number")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown die", func(c *Config) { c.Die = "d7" }},
		{"zero radius", func(c *Config) { c.Radius = 0 }},
		{"tray too small", func(c *Config) { c.TrayWidth = 1.5 }},
		{"zero threshold", func(c *Config) { c.SettleLinear = 0 }},
		{"negative confirm", func(c *Config) { c.SettleConfirm = -time.Second }},
		{"snap blend above one", func(c *Config) { c.SnapBlend = 1.2 }},
		{"snap blend zero", func(c *Config) { c.SnapBlend = 0 }},
		{"max speed under lift", func(c *Config) { c.ThrowMaxSpeed = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestCalibrationOverridesDie(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coin.json")
	if err := os.WriteFile(path, []byte(`[{"face":1,"angles":[0,0,0]},{"face":2,"angles":[3.14,0,0]}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Die = "custom"
	cfg.Calibration = path
	if err := cfg.Validate(); err != nil {
		t.Fatalf("calibration file should bypass die name check: %v", err)
	}
	table, err := cfg.Table()
	if err != nil {
		t.Fatal(err)
	}
	if table.Faces() != 2 {
		t.Fatalf("expected 2 faces, got %d", table.Faces())
	}
}

func TestComponentParams(t *testing.T) {
	cfg := Default()
	cfg.Radius = 2
	cfg.TrayWidth = 30
	cfg.SnapBlend = 0.8

	if err := cfg.TrayParams().Validate(); err != nil {
		t.Errorf("tray params: %v", err)
	}
	if got := cfg.TrayParams().HalfWidth; got != 15 {
		t.Errorf("expected half width 15, got %v", got)
	}
	if err := cfg.ThrowParams().Validate(); err != nil {
		t.Errorf("throw params: %v", err)
	}
	sp := cfg.SettleParams()
	if err := sp.Validate(); err != nil {
		t.Errorf("settle params: %v", err)
	}
	if sp.RestPlane <= cfg.Radius {
		t.Errorf("rest plane %v must sit above radius %v", sp.RestPlane, cfg.Radius)
	}
	ep := cfg.EngineParams()
	if err := ep.Validate(); err != nil {
		t.Errorf("engine params: %v", err)
	}
	if ep.SnapBlend != 0.8 || ep.DragHeight != 2*parameter.DragHeight {
		t.Errorf("engine params not derived: %+v", ep)
	}
}

func TestRandSeeded(t *testing.T) {
	cfg := Default()
	cfg.Seed = 7
	if cfg.Rand().Int63() != cfg.Rand().Int63() {
		t.Error("same seed must produce the same sequence")
	}
}

func TestNewDie(t *testing.T) {
	cfg := Default()
	cfg.Seed = 3
	clock := engine.NewManualTimeProvider(time.Unix(0, 0))

	d, err := cfg.NewDie(clock, event.NewBus(), status.NewRegistry(), 100, 70)
	if err != nil {
		t.Fatalf("NewDie: %v", err)
	}
	if d.Faces() != 20 {
		t.Errorf("expected 20 faces, got %d", d.Faces())
	}
	if d.Radius() != cfg.Radius {
		t.Errorf("expected radius %v, got %v", cfg.Radius, d.Radius())
	}
	if d.Phase() != engine.PhaseIdle {
		t.Errorf("expected idle, got %v", d.Phase())
	}

	cfg.Radius = cfg.TrayWidth
	if _, err := cfg.NewDie(clock, nil, nil, 100, 70); !errors.Is(err, engine.ErrInvalidTray) {
		t.Errorf("oversized die: expected ErrInvalidTray, got %v", err)
	}
}

func TestNewDieRejectsCrowdedTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crowded.json")
	if err := os.WriteFile(path, []byte(`[{"face":1,"angles":[0,0,0]},{"face":2,"angles":[0.01,0,0]}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Calibration = path
	if _, err := cfg.Table(); !errors.Is(err, calibration.ErrFacesTooClose) {
		t.Fatalf("expected ErrFacesTooClose from Table, got %v", err)
	}

	d, err := cfg.NewDie(engine.NewManualTimeProvider(time.Unix(0, 0)), nil, nil, 100, 70)
	if !errors.Is(err, calibration.ErrFacesTooClose) {
		t.Fatalf("expected setup failure, got %v", err)
	}
	if d != nil {
		t.Error("expected no die on setup failure")
	}
}

func TestBuiltinTablesPassSeparation(t *testing.T) {
	for _, name := range calibration.BuiltinNames() {
		cfg := Default()
		cfg.Die = name
		if _, err := cfg.Table(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestDieLabel(t *testing.T) {
	cfg := Default()
	if got := cfg.DieLabel(); got != "d20" {
		t.Errorf("expected d20, got %q", got)
	}
	cfg.Calibration = filepath.Join("tables", "loaded.json")
	if got := cfg.DieLabel(); got != "loaded" {
		t.Errorf("expected loaded, got %q", got)
	}
}
