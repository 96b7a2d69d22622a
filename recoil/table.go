package recoil

import (
	"math"

	"github.com/lixenwraith/recoil/parameter"
	"github.com/lixenwraith/recoil/profile"
)

// fastFire is the exact set of weapons whose converted recoil is damped by FastFireDamping
var fastFire = map[profile.Weapon]bool{
	profile.WeaponTommy:  true,
	profile.WeaponCustom: true,
}

// UpdatesPerBullet returns how many micro-steps one bullet is split into
// The none weapon has no repeat delay and always yields 1
func UpdatesPerBullet(w profile.WeaponProfile) int {
	if w.IsNone() {
		return 1
	}
	n := int(math.Floor(w.RepeatDelay / parameter.UpdateRateMs))
	// A delay shorter than one update would floor to zero steps and an empty table;
	// clamp so such a weapon still fires one micro-step per bullet
	if n < 1 {
		return 1
	}
	return n
}

// ConvertAngle turns one raw per-bullet angle into a per-bullet pixel offset
// Conversion, fast-fire damping, barrel and sight multipliers are applied in that order
func ConvertAngle(raw profile.AngleDelta, w profile.Weapon, barrel, sight profile.AttachmentProfile, sens, fov float64) profile.AngleDelta {
	div := parameter.AngleScale * sens * parameter.AngleGain * (fov / parameter.FOVDivisor)
	out := profile.AngleDelta{X: raw.X / div, Y: raw.Y / div}

	if fastFire[w] {
		out.X *= parameter.FastFireDamping
		out.Y *= parameter.FastFireDamping
	}

	out.X *= barrel.Multiplier
	out.Y *= barrel.Multiplier
	out.X *= sight.Multiplier
	out.Y *= sight.Multiplier
	return out
}

// BuildTable produces the flattened micro-step sequence for a configuration
// Each bullet contributes UpdatesPerBullet identical steps, rounded half away from zero
// Returns an empty (non-nil) table for the none weapon or a pattern without bullets
func BuildTable(w profile.WeaponProfile, barrel, sight profile.AttachmentProfile, sens, fov float64) []profile.AngleDelta {
	if w.IsNone() || len(w.Angles) < 2 {
		return []profile.AngleDelta{}
	}

	steps := UpdatesPerBullet(w)
	table := make([]profile.AngleDelta, 0, (len(w.Angles)-1)*steps)
	div := float64(steps)

	for b := 1; b < len(w.Angles); b++ {
		shot := ConvertAngle(w.Angles[b], w.ID, barrel, sight, sens, fov)
		step := profile.AngleDelta{
			X: math.Round(shot.X / div),
			Y: math.Round(shot.Y / div),
		}
		for i := 0; i < steps; i++ {
			table = append(table, step)
		}
	}
	return table
}
