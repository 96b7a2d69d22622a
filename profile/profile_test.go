package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testCatalog = `
[weapons.ak]
name = "Test Rifle"
repeat_delay = 100.0
angles = [[-0.9, 1.8], [0.45, 0.9]]

[weapons.mp5]
repeat_delay = 16
angles = [
  [1.0, 2.0],
]

[barrels.suppressor]
name = "Can"
multiplier = 0.5

[sights."8x"]
multiplier = 4.0
`

func TestNewRegistry_Sentinels(t *testing.T) {
	reg := NewRegistry()

	w := reg.Weapon(WeaponAK)
	if !w.IsNone() || w.Name != "none" || w.Bullets() != 0 {
		t.Errorf("Expected none weapon for missing profile, got %+v", w)
	}
	if got := reg.Barrel(BarrelSuppressor); got != NoMultiplier() {
		t.Errorf("Expected neutral barrel, got %+v", got)
	}
	if got := reg.Sight(Sight(99)); got.Multiplier != 1.0 {
		t.Errorf("Expected neutral sight multiplier 1.0, got %v", got.Multiplier)
	}
	if !reg.Has(WeaponNone) || !reg.Has(BarrelNone) || !reg.Has(SightNone) {
		t.Error("Expected sentinels to be registered")
	}
	if reg.Has(WeaponAK) {
		t.Error("Expected empty registry to lack ak")
	}
	if reg.Has(nil) {
		t.Error("Expected nil equipment to be unknown")
	}
}

func TestLoadCatalog(t *testing.T) {
	reg, err := LoadCatalog([]byte(testCatalog))
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	ak := reg.Weapon(WeaponAK)
	if ak.ID != WeaponAK || ak.Name != "Test Rifle" {
		t.Errorf("Unexpected ak profile: %+v", ak)
	}
	if ak.RepeatDelay != 100 {
		t.Errorf("Expected repeat delay 100, got %v", ak.RepeatDelay)
	}
	if ak.Bullets() != 2 || len(ak.Angles) != 3 {
		t.Fatalf("Expected 2 bullets behind a sentinel slot, got %d angles", len(ak.Angles))
	}
	if ak.Angles[0] != (AngleDelta{}) {
		t.Errorf("Expected zero sentinel at index 0, got %+v", ak.Angles[0])
	}
	if ak.Angles[1] != (AngleDelta{X: -0.9, Y: 1.8}) {
		t.Errorf("Expected bullet 1 = (-0.9, 1.8), got %+v", ak.Angles[1])
	}

	// Integer repeat delay and missing name
	mp5 := reg.Weapon(WeaponMP5)
	if mp5.RepeatDelay != 16 || mp5.Name != "mp5" {
		t.Errorf("Unexpected mp5 profile: %+v", mp5)
	}

	if got := reg.Barrel(BarrelSuppressor); got.Name != "Can" || got.Multiplier != 0.5 {
		t.Errorf("Unexpected suppressor: %+v", got)
	}
	if got := reg.Sight(Sight8x); got.Name != "8x" || got.Multiplier != 4.0 {
		t.Errorf("Unexpected 8x sight: %+v", got)
	}
	if got := reg.Sight(SightHolo); got != NoMultiplier() {
		t.Errorf("Expected absent holo to resolve to neutral, got %+v", got)
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"syntax", "[weapons.ak\n"},
		{"unknown weapon", "[weapons.bow]\nrepeat_delay = 100\n"},
		{"sentinel weapon", "[weapons.none]\nrepeat_delay = 100\n"},
		{"negative delay", "[weapons.ak]\nrepeat_delay = -1.0\n"},
		{"short pair", "[weapons.ak]\nrepeat_delay = 100\nangles = [[1.0]]\n"},
		{"unknown barrel", "[barrels.compensator]\nmultiplier = 1.0\n"},
		{"zero multiplier", "[sights.holo]\nmultiplier = 0.0\n"},
		{"missing multiplier", "[barrels.suppressor]\nname = \"x\"\n"},
		{"sentinel sight", "[sights.none]\nmultiplier = 2.0\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCatalog([]byte(tc.data))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !errors.Is(err, ErrCatalog) {
				t.Errorf("Expected ErrCatalog, got %v", err)
			}
		})
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte(testCatalog), 0644); err != nil {
		t.Fatal(err)
	}
	reg, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("LoadCatalogFile failed: %v", err)
	}
	if !reg.Has(WeaponAK) {
		t.Error("Expected ak to be loaded")
	}

	if _, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDefaultRegistry_Complete(t *testing.T) {
	reg, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("Embedded catalog failed to load: %v", err)
	}

	for _, w := range Weapons() {
		p := reg.Weapon(w)
		if w == WeaponNone {
			if !p.IsNone() {
				t.Errorf("Expected none sentinel, got %+v", p)
			}
			continue
		}
		if p.ID != w {
			t.Errorf("%v: expected own profile, got %v", w, p.ID)
		}
		if p.Bullets() == 0 {
			t.Errorf("%v: expected a pattern", w)
		}
		if p.RepeatDelay < 16 {
			t.Errorf("%v: repeat delay %v below one update", w, p.RepeatDelay)
		}
	}
	for _, b := range Barrels() {
		if !reg.Has(b) {
			t.Errorf("Missing %v", b)
		}
	}
	for _, s := range Sights() {
		if !reg.Has(s) {
			t.Errorf("Missing %v", s)
		}
	}

	again, _ := DefaultRegistry()
	if again != reg {
		t.Error("Expected DefaultRegistry to return the same instance")
	}
}

func TestParseKeys(t *testing.T) {
	for _, w := range Weapons() {
		got, ok := ParseWeapon(w.Key())
		if !ok || got != w {
			t.Errorf("ParseWeapon(%q) = %v, %v", w.Key(), got, ok)
		}
	}
	if got, ok := ParseSight("8x"); !ok || got != Sight8x {
		t.Errorf("ParseSight(8x) = %v, %v", got, ok)
	}
	if got, ok := ParseBarrel("compensator"); ok || got != BarrelNone {
		t.Errorf("Expected unknown barrel to fail with none, got %v, %v", got, ok)
	}
	if Weapon(200).Key() != "none" {
		t.Errorf("Expected out-of-range weapon key none, got %q", Weapon(200).Key())
	}
	if WeaponTommy.String() != "weapon:tommy" {
		t.Errorf("Unexpected String(): %q", WeaponTommy.String())
	}
}

func TestFromCode(t *testing.T) {
	cases := []struct {
		code int
		want Equipment
	}{
		{0, WeaponNone},
		{1, WeaponAK},
		{12, WeaponSAR},
		{13, BarrelNone},
		{14, BarrelSuppressor},
		{15, SightNone},
		{17, Sight8x},
		{18, SightSimple},
		{19, nil},
		{-1, nil},
	}

	for _, tc := range cases {
		got := FromCode(tc.code)
		if got != tc.want {
			t.Errorf("FromCode(%d) = %v, want %v", tc.code, got, tc.want)
		}
		if tc.want != nil && Code(got) != tc.code {
			t.Errorf("Code(%v) = %d, want %d", got, Code(got), tc.code)
		}
	}

	if Code(Weapon(99)) != -1 || Code(nil) != -1 {
		t.Error("Expected -1 for invalid equipment")
	}
}
