package profile

import "fmt"

// Equipment is a selectable item: exactly one of Weapon, Barrel or Sight
// The three categories are disjoint and each resolves unknown values to its own sentinel
type Equipment interface {
	Category() Category
	Key() string
}

// Category identifies the equipment slot a selection applies to
type Category uint8

const (
	CategoryWeapon Category = iota
	CategoryBarrel
	CategorySight
)

func (c Category) String() string {
	switch c {
	case CategoryWeapon:
		return "weapon"
	case CategoryBarrel:
		return "barrel"
	case CategorySight:
		return "sight"
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// Weapon identifies a weapon profile
type Weapon uint8

const (
	WeaponNone Weapon = iota
	WeaponAK
	WeaponLR
	WeaponMP5
	WeaponTommy
	WeaponCustom
	WeaponM249
	WeaponM39
	WeaponM92
	WeaponPython
	WeaponRevolver
	WeaponP2
	WeaponSAR
	weaponCount
)

// Barrel identifies a barrel attachment
type Barrel uint8

const (
	BarrelNone Barrel = iota
	BarrelSuppressor
	barrelCount
)

// Sight identifies a sight attachment
type Sight uint8

const (
	SightNone Sight = iota
	SightHolo
	Sight8x
	SightSimple
	sightCount
)

// Catalog and settings keys, indexed by id
var (
	weaponKeys = [weaponCount]string{
		"none", "ak", "lr", "mp5", "tommy", "custom", "m249", "m39", "m92", "python", "revolver", "p2", "sar",
	}
	barrelKeys = [barrelCount]string{"none", "suppressor"}
	sightKeys  = [sightCount]string{"none", "holo", "8x", "simple"}
)

func (Weapon) Category() Category { return CategoryWeapon }
func (Barrel) Category() Category { return CategoryBarrel }
func (Sight) Category() Category  { return CategorySight }

// Key returns the catalog key, or "none" for an out-of-range id
func (w Weapon) Key() string {
	if w < weaponCount {
		return weaponKeys[w]
	}
	return weaponKeys[WeaponNone]
}

func (b Barrel) Key() string {
	if b < barrelCount {
		return barrelKeys[b]
	}
	return barrelKeys[BarrelNone]
}

func (s Sight) Key() string {
	if s < sightCount {
		return sightKeys[s]
	}
	return sightKeys[SightNone]
}

// Valid reports whether the id names a known weapon
func (w Weapon) Valid() bool { return w < weaponCount }
func (b Barrel) Valid() bool { return b < barrelCount }
func (s Sight) Valid() bool  { return s < sightCount }

func (w Weapon) String() string { return "weapon:" + w.Key() }
func (b Barrel) String() string { return "barrel:" + b.Key() }
func (s Sight) String() string  { return "sight:" + s.Key() }

// ParseWeapon resolves a catalog key to a weapon id
func ParseWeapon(key string) (Weapon, bool) {
	for i, k := range weaponKeys {
		if k == key {
			return Weapon(i), true
		}
	}
	return WeaponNone, false
}

// ParseBarrel resolves a catalog key to a barrel id
func ParseBarrel(key string) (Barrel, bool) {
	for i, k := range barrelKeys {
		if k == key {
			return Barrel(i), true
		}
	}
	return BarrelNone, false
}

// ParseSight resolves a catalog key to a sight id
func ParseSight(key string) (Sight, bool) {
	for i, k := range sightKeys {
		if k == key {
			return Sight(i), true
		}
	}
	return SightNone, false
}

// Legacy wire codes: one flat ordinal space, weapons first, then barrels, then sights
const (
	codeBarrelBase = int(weaponCount)
	codeSightBase  = codeBarrelBase + int(barrelCount)
	codeEnd        = codeSightBase + int(sightCount)
)

// FromCode maps a legacy ordinal equipment code onto its category
// Returns nil for codes outside every category
func FromCode(code int) Equipment {
	switch {
	case code < 0 || code >= codeEnd:
		return nil
	case code < codeBarrelBase:
		return Weapon(code)
	case code < codeSightBase:
		return Barrel(code - codeBarrelBase)
	default:
		return Sight(code - codeSightBase)
	}
}

// Code returns the legacy ordinal for a known equipment value, or -1
func Code(e Equipment) int {
	switch v := e.(type) {
	case Weapon:
		if v.Valid() {
			return int(v)
		}
	case Barrel:
		if v.Valid() {
			return codeBarrelBase + int(v)
		}
	case Sight:
		if v.Valid() {
			return codeSightBase + int(v)
		}
	}
	return -1
}

// Weapons returns every known weapon id in ordinal order, including WeaponNone
func Weapons() []Weapon {
	out := make([]Weapon, weaponCount)
	for i := range out {
		out[i] = Weapon(i)
	}
	return out
}

// Barrels returns every known barrel id in ordinal order
func Barrels() []Barrel {
	out := make([]Barrel, barrelCount)
	for i := range out {
		out[i] = Barrel(i)
	}
	return out
}

// Sights returns every known sight id in ordinal order
func Sights() []Sight {
	out := make([]Sight, sightCount)
	for i := range out {
		out[i] = Sight(i)
	}
	return out
}
