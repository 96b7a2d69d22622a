package recoil

import (
	"log"
	"math"

	"github.com/lixenwraith/recoil/parameter"
	"github.com/lixenwraith/recoil/profile"
)

// Config is the user-selected equipment plus display settings the table is derived from
type Config struct {
	Weapon      profile.Weapon
	Barrel      profile.Barrel
	Sight       profile.Sight
	Sensitivity float64
	FieldOfView float64
}

// DefaultConfig returns no equipment at default sensitivity and field of view
func DefaultConfig() Config {
	return Config{
		Weapon:      profile.WeaponNone,
		Barrel:      profile.BarrelNone,
		Sight:       profile.SightNone,
		Sensitivity: parameter.DefaultSensitivity,
		FieldOfView: parameter.DefaultFieldOfView,
	}
}

// ValidSensitivity reports whether v is an accepted sensitivity
func ValidSensitivity(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// ValidFieldOfView reports whether v lies in the accepted inclusive range
func ValidFieldOfView(v float64) bool {
	return v >= parameter.MinFieldOfView && v <= parameter.MaxFieldOfView
}

// Engine owns the configuration, its compensation table and the playback cursor
// Single owner: not safe for concurrent use; wrap externally if shared
type Engine struct {
	reg *profile.Registry
	cfg Config

	weapon profile.WeaponProfile
	barrel profile.AttachmentProfile
	sight  profile.AttachmentProfile

	steps  int
	table  []profile.AngleDelta
	cursor Cursor

	metrics *metrics
}

// New creates an engine over reg with the default configuration
func New(reg *profile.Registry) *Engine {
	e := &Engine{reg: reg}
	e.rebuild(DefaultConfig())
	return e
}

// SetEquipment selects a weapon, barrel or sight, keeping the other two categories
// A nil or foreign Equipment value clears all three selections to none
func (e *Engine) SetEquipment(eq profile.Equipment) {
	cfg := e.cfg
	switch v := eq.(type) {
	case profile.Weapon:
		cfg.Weapon = v
	case profile.Barrel:
		cfg.Barrel = v
	case profile.Sight:
		cfg.Sight = v
	default:
		log.Printf("recoil: unrecognized equipment %v, clearing selection", eq)
		cfg.Weapon = profile.WeaponNone
		cfg.Barrel = profile.BarrelNone
		cfg.Sight = profile.SightNone
	}
	e.rebuild(cfg)
}

// SetEquipmentCode selects equipment by legacy ordinal code
func (e *Engine) SetEquipmentCode(code int) {
	e.SetEquipment(profile.FromCode(code))
}

// SetSensitivity applies v if positive; otherwise the call is ignored
func (e *Engine) SetSensitivity(v float64) {
	if !ValidSensitivity(v) {
		log.Printf("recoil: rejected sensitivity %v", v)
		return
	}
	cfg := e.cfg
	cfg.Sensitivity = v
	e.rebuild(cfg)
}

// SetFieldOfView applies v if within [MinFieldOfView, MaxFieldOfView]; otherwise the call is ignored
func (e *Engine) SetFieldOfView(v float64) {
	if !ValidFieldOfView(v) {
		log.Printf("recoil: rejected field of view %v", v)
		return
	}
	cfg := e.cfg
	cfg.FieldOfView = v
	e.rebuild(cfg)
}

// Apply replaces the whole configuration with a single rebuild
// Returns false and leaves the engine untouched if sensitivity or field of view is invalid
func (e *Engine) Apply(cfg Config) bool {
	if !ValidSensitivity(cfg.Sensitivity) || !ValidFieldOfView(cfg.FieldOfView) {
		log.Printf("recoil: rejected config sens=%v fov=%v", cfg.Sensitivity, cfg.FieldOfView)
		return false
	}
	e.rebuild(cfg)
	return true
}

// rebuild resolves profiles, replaces the table and deactivates playback
// Unknown ids resolve to their category sentinel and are stored as such
func (e *Engine) rebuild(cfg Config) {
	e.weapon = e.reg.Weapon(cfg.Weapon)
	cfg.Weapon = e.weapon.ID

	if !e.reg.Has(cfg.Barrel) {
		cfg.Barrel = profile.BarrelNone
	}
	e.barrel = e.reg.Barrel(cfg.Barrel)

	if !e.reg.Has(cfg.Sight) {
		cfg.Sight = profile.SightNone
	}
	e.sight = e.reg.Sight(cfg.Sight)

	e.cfg = cfg
	e.steps = UpdatesPerBullet(e.weapon)
	e.table = BuildTable(e.weapon, e.barrel, e.sight, cfg.Sensitivity, cfg.FieldOfView)
	e.cursor = newCursor(e.table)

	e.publishConfig()
}

// Activate starts playback from the first micro-step; no-op while active
func (e *Engine) Activate() {
	e.cursor.Activate()
	e.publishCursor()
}

// Deactivate stops playback
func (e *Engine) Deactivate() {
	e.cursor.Deactivate()
	e.publishCursor()
}

// FireNext returns the next pixel offset and advances playback
// Returns (0, 0) when inactive or exhausted
func (e *Engine) FireNext() (int, int) {
	fired := e.cursor.IsActive()
	x, y := e.cursor.FireNext()
	if fired {
		e.publishFire()
	}
	return x, y
}

// IsActive reports whether playback has micro-steps left
func (e *Engine) IsActive() bool {
	return e.cursor.IsActive()
}

// Position returns the cursor index, -1 when inactive
func (e *Engine) Position() int {
	return e.cursor.Position()
}

// Remaining returns micro-steps left in the current playback
func (e *Engine) Remaining() int {
	return e.cursor.Remaining()
}

// Config returns the current configuration with ids normalized to what was resolved
func (e *Engine) Config() Config {
	return e.cfg
}

// Table returns a copy of the current compensation table
func (e *Engine) Table() []profile.AngleDelta {
	out := make([]profile.AngleDelta, len(e.table))
	copy(out, e.table)
	return out
}

// UpdatesPerBullet returns the micro-steps per bullet of the current weapon
func (e *Engine) UpdatesPerBullet() int {
	return e.steps
}

func (e *Engine) WeaponName() string { return e.weapon.Name }
func (e *Engine) BarrelName() string { return e.barrel.Name }
func (e *Engine) SightName() string  { return e.sight.Name }

func (e *Engine) Sensitivity() float64 { return e.cfg.Sensitivity }
func (e *Engine) FieldOfView() float64 { return e.cfg.FieldOfView }

// FormattedSensitivity returns the sensitivity as shown to the user
func (e *Engine) FormattedSensitivity() string {
	return FormatSensitivity(e.cfg.Sensitivity)
}

// FormattedFieldOfView returns the field of view as a 2 or 3 digit integer string
func (e *Engine) FormattedFieldOfView() string {
	return FormatFieldOfView(e.cfg.FieldOfView)
}

// MicroStepInterval returns milliseconds between micro-steps for the current weapon
// Hosts should call FireNext at this interval; 0 for the none weapon
func (e *Engine) MicroStepInterval() float64 {
	return e.weapon.RepeatDelay / float64(e.steps)
}
