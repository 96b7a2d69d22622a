package profile

import (
	"sync"
)

// Registry is the immutable catalog of weapon, barrel and sight profiles
// Built once at startup and shared by pointer; lookups never fail
type Registry struct {
	weapons map[Weapon]WeaponProfile
	barrels map[Barrel]AttachmentProfile
	sights  map[Sight]AttachmentProfile
}

// NewRegistry creates a registry holding only the sentinel profiles
func NewRegistry() *Registry {
	return &Registry{
		weapons: map[Weapon]WeaponProfile{WeaponNone: noneWeapon},
		barrels: map[Barrel]AttachmentProfile{BarrelNone: noMult},
		sights:  map[Sight]AttachmentProfile{SightNone: noMult},
	}
}

// Weapon returns the profile for id, or the none sentinel if id is unknown
// The returned Angles slice is shared and must not be modified
func (r *Registry) Weapon(id Weapon) WeaponProfile {
	if p, ok := r.weapons[id]; ok {
		return p
	}
	return noneWeapon
}

// Barrel returns the barrel profile for id, or the neutral sentinel
func (r *Registry) Barrel(id Barrel) AttachmentProfile {
	if p, ok := r.barrels[id]; ok {
		return p
	}
	return noMult
}

// Sight returns the sight profile for id, or the neutral sentinel
func (r *Registry) Sight(id Sight) AttachmentProfile {
	if p, ok := r.sights[id]; ok {
		return p
	}
	return noMult
}

// Has reports whether the catalog carries an explicit profile for e
func (r *Registry) Has(e Equipment) bool {
	switch v := e.(type) {
	case Weapon:
		_, ok := r.weapons[v]
		return ok
	case Barrel:
		_, ok := r.barrels[v]
		return ok
	case Sight:
		_, ok := r.sights[v]
		return ok
	}
	return false
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// DefaultRegistry loads the embedded catalog on first use
func DefaultRegistry() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = LoadCatalog(defaultCatalog)
	})
	return defaultReg, defaultErr
}
