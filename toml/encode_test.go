package toml

import (
	"strings"
	"testing"
)

func TestMarshal_Primitives(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]any
		expected string
	}{
		{
			name:  "Scalars",
			input: map[string]any{"str": "hello", "int": 42, "bool": true, "float": 3.14, "whole": 90.0},
			expected: `bool = true
float = 3.14
int = 42
str = "hello"
whole = 90.0`,
		},
		{
			name:  "Quoted Keys",
			input: map[string]any{"8x": 1, "key.dot": 2, "true": 3},
			expected: `"8x" = 1
"key.dot" = 2
"true" = 3`,
		},
		{
			name:     "Nested Inline Arrays",
			input:    map[string]any{"steps": [][]int{{1, -2}, {0, 3}}},
			expected: `steps = [[1, -2], [0, 3]]`,
		},
		{
			name:     "Escaped String",
			input:    map[string]any{"name": "a \"b\"\tc"},
			expected: `name = "a \"b\"\tc"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Marshal(tc.input)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			out := strings.TrimSpace(string(b))
			if out != tc.expected {
				t.Errorf("Mismatch:\nGot:\n%s\nWant:\n%s", out, tc.expected)
			}
		})
	}
}

func TestMarshal_StructOrderAndTables(t *testing.T) {
	type Sight struct {
		Name       string  `toml:"name"`
		Multiplier float64 `toml:"multiplier"`
	}
	type Shot struct {
		X int `toml:"x"`
		Y int `toml:"y"`
	}
	type Doc struct {
		Weapon   string           `toml:"weapon"`
		Sens     float64          `toml:"sens"`
		Skipped  string           `toml:"-"`
		Optional string           `toml:"optional,omitempty"`
		Sights   map[string]Sight `toml:"sights"`
		Shots    []Shot           `toml:"shots"`
		hidden   int
	}

	in := Doc{
		Weapon:  "ak",
		Sens:    5,
		Skipped: "x",
		Sights:  map[string]Sight{"holo": {"Holosight", 1.2}},
		Shots:   []Shot{{1, 2}, {3, 4}},
		hidden:  9,
	}

	b, err := Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `weapon = "ak"
sens = 5.0

[sights]

[sights.holo]
name = "Holosight"
multiplier = 1.2

[[shots]]
x = 1
y = 2

[[shots]]
x = 3
y = 4
`
	if string(b) != want {
		t.Errorf("Mismatch:\nGot:\n%s\nWant:\n%s", b, want)
	}
}

// TestMarshal_RoundTrip ensures Unmarshal reads back what Marshal writes
func TestMarshal_RoundTrip(t *testing.T) {
	type Settings struct {
		Weapon      string    `toml:"weapon"`
		Sensitivity float64   `toml:"sensitivity"`
		FieldOfView float64   `toml:"fov"`
		Sound       bool      `toml:"sound"`
		Pattern     []float64 `toml:"pattern"`
	}

	in := Settings{Weapon: "tommy", Sensitivity: 0.35, FieldOfView: 110, Sound: true, Pattern: []float64{-1.5, 2}}
	b, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out Settings
	if err := Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v\n%s", err, b)
	}
	if out.Weapon != in.Weapon || out.Sensitivity != in.Sensitivity || out.FieldOfView != in.FieldOfView || out.Sound != in.Sound {
		t.Errorf("Round trip mismatch: got %+v, want %+v", out, in)
	}
	if len(out.Pattern) != 2 || out.Pattern[0] != -1.5 || out.Pattern[1] != 2 {
		t.Errorf("Pattern mismatch: %v", out.Pattern)
	}
}

func TestMarshal_RootValidation(t *testing.T) {
	if _, err := Marshal(42); err == nil {
		t.Error("Expected error for scalar root")
	}
	var nilPtr *struct{}
	if _, err := Marshal(nilPtr); err == nil {
		t.Error("Expected error for nil pointer root")
	}
	if _, err := Marshal(map[int]int{1: 1}); err == nil {
		t.Error("Expected error for non-string map keys")
	}
}
