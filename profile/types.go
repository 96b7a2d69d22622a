package profile

import "github.com/lixenwraith/recoil/parameter"

// AngleDelta is an angular offset for one unit of time
// After conversion the same pair carries pixel offsets
type AngleDelta struct {
	X float64
	Y float64
}

// WeaponProfile holds the raw recoil pattern of a weapon
// Angles[0] is an unused sentinel; Angles[1..N] are per-bullet increments relative to the previous shot
type WeaponProfile struct {
	ID          Weapon
	Name        string
	Angles      []AngleDelta
	RepeatDelay float64 // milliseconds between shots
}

// Bullets returns the number of shots described by the pattern
func (w WeaponProfile) Bullets() int {
	if len(w.Angles) < 2 {
		return 0
	}
	return len(w.Angles) - 1
}

// IsNone reports whether the profile is the "no weapon" sentinel
func (w WeaponProfile) IsNone() bool {
	return w.ID == WeaponNone
}

// AttachmentProfile scales both recoil axes; used for barrels and sights
type AttachmentProfile struct {
	Name       string
	Multiplier float64
}

var (
	noneWeapon = WeaponProfile{ID: WeaponNone, Name: parameter.SentinelName}
	noMult     = AttachmentProfile{Name: parameter.SentinelName, Multiplier: parameter.NeutralMultiplier}
)

// NoneWeapon returns the empty weapon sentinel
func NoneWeapon() WeaponProfile { return noneWeapon }

// NoMultiplier returns the neutral attachment sentinel
func NoMultiplier() AttachmentProfile { return noMult }
