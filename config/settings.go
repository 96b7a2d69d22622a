package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/recoil/parameter"
	"github.com/lixenwraith/recoil/profile"
	"github.com/lixenwraith/recoil/recoil"
	"github.com/lixenwraith/recoil/toml"
)

// ErrSettings is wrapped by every settings validation failure
var ErrSettings = errors.New("invalid settings")

// Settings is the persisted user selection and host options
type Settings struct {
	Weapon      string  `toml:"weapon"`
	Barrel      string  `toml:"barrel"`
	Sight       string  `toml:"sight"`
	Sensitivity float64 `toml:"sensitivity"`
	FieldOfView float64 `toml:"fov"`
	Sound       bool    `toml:"sound"`
	Debug       bool    `toml:"debug"`
}

// Default returns settings matching a fresh engine
func Default() Settings {
	return Settings{
		Weapon:      profile.WeaponNone.Key(),
		Barrel:      profile.BarrelNone.Key(),
		Sight:       profile.SightNone.Key(),
		Sensitivity: parameter.DefaultSensitivity,
		FieldOfView: parameter.DefaultFieldOfView,
	}
}

// Load reads settings from path over the defaults
// A missing file yields the defaults without error
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("%w: %s: %w", ErrSettings, path, err)
	}
	return s, nil
}

// Save writes settings to path, creating parent directories
func (s Settings) Save(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Config resolves the settings into an engine configuration
func (s Settings) Config() (recoil.Config, error) {
	w, ok := profile.ParseWeapon(s.Weapon)
	if !ok {
		return recoil.Config{}, fmt.Errorf("%w: unknown weapon %q", ErrSettings, s.Weapon)
	}
	b, ok := profile.ParseBarrel(s.Barrel)
	if !ok {
		return recoil.Config{}, fmt.Errorf("%w: unknown barrel %q", ErrSettings, s.Barrel)
	}
	sg, ok := profile.ParseSight(s.Sight)
	if !ok {
		return recoil.Config{}, fmt.Errorf("%w: unknown sight %q", ErrSettings, s.Sight)
	}
	if !recoil.ValidSensitivity(s.Sensitivity) {
		return recoil.Config{}, fmt.Errorf("%w: sensitivity %v must be positive", ErrSettings, s.Sensitivity)
	}
	if !recoil.ValidFieldOfView(s.FieldOfView) {
		return recoil.Config{}, fmt.Errorf("%w: fov %v outside [%v, %v]", ErrSettings, s.FieldOfView,
			parameter.MinFieldOfView, parameter.MaxFieldOfView)
	}
	return recoil.Config{
		Weapon:      w,
		Barrel:      b,
		Sight:       sg,
		Sensitivity: s.Sensitivity,
		FieldOfView: s.FieldOfView,
	}, nil
}

// Apply validates the settings and reconfigures e in one rebuild
// On error e is left untouched
func (s Settings) Apply(e *recoil.Engine) error {
	cfg, err := s.Config()
	if err != nil {
		return err
	}
	e.Apply(cfg)
	return nil
}

// FromEngine captures the engine's current selection, keeping host options from s
func (s Settings) FromEngine(e *recoil.Engine) Settings {
	cfg := e.Config()
	s.Weapon = cfg.Weapon.Key()
	s.Barrel = cfg.Barrel.Key()
	s.Sight = cfg.Sight.Key()
	s.Sensitivity = cfg.Sensitivity
	s.FieldOfView = cfg.FieldOfView
	return s
}
