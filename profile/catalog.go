package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/lixenwraith/recoil/toml"
)

//go:embed catalog.toml
var defaultCatalog []byte

// ErrCatalog is wrapped by every catalog validation failure
var ErrCatalog = errors.New("invalid catalog")

// catalogFile mirrors the on-disk catalog layout
type catalogFile struct {
	Weapons map[string]weaponEntry     `toml:"weapons"`
	Barrels map[string]attachmentEntry `toml:"barrels"`
	Sights  map[string]attachmentEntry `toml:"sights"`
}

type weaponEntry struct {
	Name        string      `toml:"name"`
	RepeatDelay float64     `toml:"repeat_delay"`
	Angles      [][]float64 `toml:"angles"` // bullet 1 first, [x, y]
}

type attachmentEntry struct {
	Name       string  `toml:"name"`
	Multiplier float64 `toml:"multiplier"`
}

// LoadCatalogFile reads and parses a catalog from disk
func LoadCatalogFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	reg, err := LoadCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// LoadCatalog parses TOML catalog data into a Registry
// Sentinel profiles are always present and cannot be redefined
func LoadCatalog(data []byte) (*Registry, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalog, err)
	}

	reg := NewRegistry()

	for _, key := range sortedKeys(file.Weapons) {
		id, ok := ParseWeapon(key)
		if !ok || id == WeaponNone {
			return nil, fmt.Errorf("%w: unknown weapon %q", ErrCatalog, key)
		}
		p, err := buildWeapon(id, file.Weapons[key])
		if err != nil {
			return nil, fmt.Errorf("%w: weapon %q: %w", ErrCatalog, key, err)
		}
		reg.weapons[id] = p
	}

	for _, key := range sortedKeys(file.Barrels) {
		id, ok := ParseBarrel(key)
		if !ok || id == BarrelNone {
			return nil, fmt.Errorf("%w: unknown barrel %q", ErrCatalog, key)
		}
		p, err := buildAttachment(key, file.Barrels[key])
		if err != nil {
			return nil, fmt.Errorf("%w: barrel %q: %w", ErrCatalog, key, err)
		}
		reg.barrels[id] = p
	}

	for _, key := range sortedKeys(file.Sights) {
		id, ok := ParseSight(key)
		if !ok || id == SightNone {
			return nil, fmt.Errorf("%w: unknown sight %q", ErrCatalog, key)
		}
		p, err := buildAttachment(key, file.Sights[key])
		if err != nil {
			return nil, fmt.Errorf("%w: sight %q: %w", ErrCatalog, key, err)
		}
		reg.sights[id] = p
	}

	return reg, nil
}

func buildWeapon(id Weapon, e weaponEntry) (WeaponProfile, error) {
	if e.RepeatDelay < 0 || math.IsNaN(e.RepeatDelay) || math.IsInf(e.RepeatDelay, 0) {
		return WeaponProfile{}, fmt.Errorf("repeat_delay %v out of range", e.RepeatDelay)
	}

	name := e.Name
	if name == "" {
		name = id.Key()
	}

	// Slot 0 is the sentinel the pattern is relative to
	angles := make([]AngleDelta, 1, len(e.Angles)+1)
	for i, pair := range e.Angles {
		if len(pair) != 2 {
			return WeaponProfile{}, fmt.Errorf("bullet %d: expected [x, y], got %d values", i+1, len(pair))
		}
		angles = append(angles, AngleDelta{X: pair[0], Y: pair[1]})
	}

	return WeaponProfile{
		ID:          id,
		Name:        name,
		Angles:      angles,
		RepeatDelay: e.RepeatDelay,
	}, nil
}

func buildAttachment(key string, e attachmentEntry) (AttachmentProfile, error) {
	if !(e.Multiplier > 0) || math.IsInf(e.Multiplier, 0) {
		return AttachmentProfile{}, fmt.Errorf("multiplier %v must be positive", e.Multiplier)
	}
	name := e.Name
	if name == "" {
		name = key
	}
	return AttachmentProfile{Name: name, Multiplier: e.Multiplier}, nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
