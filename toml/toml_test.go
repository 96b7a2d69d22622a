package toml

import (
	"testing"
)

// TestUnmarshal_Catalog verifies the full pipeline on a catalog-shaped document
func TestUnmarshal_Catalog(t *testing.T) {
	input := []byte(`
# pattern catalog
title = "catalog"

[weapons.ak]
name = "Assault Rifle"
repeat_delay = 133.3
angles = [
  [-0.5, 6.6], [-1, 6],  # mixed int and float
  [2.25, -3e-1],
]

[sights."8x"]
name = "8x Zoom Scope"
multiplier = 3.84

[[history]]
sens = 5
fov = 90.0

[[history]]
sens = 2.5
fov = 110
`)

	type Weapon struct {
		Name        string      `toml:"name"`
		RepeatDelay float64     `toml:"repeat_delay"`
		Angles      [][]float64 `toml:"angles"`
	}
	type Attachment struct {
		Name       string  `toml:"name"`
		Multiplier float64 `toml:"multiplier"`
	}
	type Entry struct {
		Sens float64 `toml:"sens"`
		FOV  float64 `toml:"fov"`
	}
	type Doc struct {
		Title   string                `toml:"title"`
		Weapons map[string]Weapon     `toml:"weapons"`
		Sights  map[string]Attachment `toml:"sights"`
		History []Entry               `toml:"history"`
	}

	var doc Doc
	if err := Unmarshal(input, &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if doc.Title != "catalog" {
		t.Errorf("Title mismatch: got %q", doc.Title)
	}

	ak, ok := doc.Weapons["ak"]
	if !ok {
		t.Fatalf("weapons.ak missing: %+v", doc.Weapons)
	}
	if ak.Name != "Assault Rifle" || ak.RepeatDelay != 133.3 {
		t.Errorf("ak mismatch: %+v", ak)
	}
	if len(ak.Angles) != 3 {
		t.Fatalf("Expected 3 angle pairs, got %d", len(ak.Angles))
	}
	if ak.Angles[1][0] != -1 || ak.Angles[1][1] != 6 {
		t.Errorf("Integer pair not widened: %v", ak.Angles[1])
	}
	if ak.Angles[2][1] != -0.3 {
		t.Errorf("Exponent float mismatch: %v", ak.Angles[2][1])
	}

	// Digit-leading quoted key
	if doc.Sights["8x"].Multiplier != 3.84 {
		t.Errorf("sights.8x mismatch: %+v", doc.Sights)
	}

	// Array of tables
	if len(doc.History) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(doc.History))
	}
	if doc.History[0].Sens != 5 || doc.History[1].FOV != 110 {
		t.Errorf("History mismatch: %+v", doc.History)
	}
}

// TestUnmarshal_BareDigitKey checks that a bare key starting with a digit is an identifier
func TestUnmarshal_BareDigitKey(t *testing.T) {
	var doc struct {
		Sights map[string]map[string]float64 `toml:"sights"`
	}
	if err := Unmarshal([]byte("[sights.8x]\nmultiplier = 3.84\n"), &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if doc.Sights["8x"]["multiplier"] != 3.84 {
		t.Errorf("Bare digit key mismatch: %+v", doc.Sights)
	}
}

// TestDecode_RawPrimitives validates reflection coercion on a parser-shaped tree
func TestDecode_RawPrimitives(t *testing.T) {
	data := map[string]any{
		"int_val":   100,
		"float_val": 123.45,
		"bool_val":  true,
		"str_val":   "hello",
		"any_val":   "dynamic",
		"ptr_val":   7.5,
	}

	type Target struct {
		Int   int64    `toml:"int_val"`
		Float float32  `toml:"float_val"`
		Bool  bool     `toml:"bool_val"`
		Str   string   `toml:"str_val"`
		Any   any      `toml:"any_val"`
		Ptr   *float64 `toml:"ptr_val"`
	}

	var tgt Target
	if err := Decode(data, &tgt); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if tgt.Int != 100 {
		t.Errorf("Int64 coercion failed: got %d", tgt.Int)
	}
	if tgt.Float < 123.44 || tgt.Float > 123.46 {
		t.Errorf("Float32 coercion failed: got %f", tgt.Float)
	}
	if !tgt.Bool {
		t.Error("Bool failed")
	}
	if tgt.Str != "hello" {
		t.Error("String failed")
	}
	if tgt.Any != "dynamic" {
		t.Error("Any interface assignment failed")
	}
	if tgt.Ptr == nil || *tgt.Ptr != 7.5 {
		t.Errorf("Pointer allocation failed: %v", tgt.Ptr)
	}
}

// TestDecode_TargetValidation ensures non-pointer targets fail
func TestDecode_TargetValidation(t *testing.T) {
	var tgt struct{}
	if err := Decode(map[string]any{}, tgt); err == nil {
		t.Error("Expected error when passing non-pointer to Decode")
	}

	var ptr *struct{}
	if err := Decode(map[string]any{}, ptr); err == nil {
		t.Error("Expected error when passing nil pointer to Decode")
	}
}

// TestDecode_TypeMismatch covers the conversions that must be refused
func TestDecode_TypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		tgt  any
	}{
		{"string to int", map[string]any{"v": "x"}, &struct {
			V int `toml:"v"`
		}{}},
		{"float to int", map[string]any{"v": 1.5}, &struct {
			V int `toml:"v"`
		}{}},
		{"int overflow", map[string]any{"v": 300}, &struct {
			V int8 `toml:"v"`
		}{}},
		{"scalar to slice", map[string]any{"v": 1}, &struct {
			V []int `toml:"v"`
		}{}},
		{"string to float", map[string]any{"v": "1.0"}, &struct {
			V float64 `toml:"v"`
		}{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := Decode(tc.data, tc.tgt); err == nil {
				t.Errorf("Expected error for %s", tc.name)
			}
		})
	}
}

// TestDecode_UnexportedFieldSkipped ensures unexported fields never panic or receive data
func TestDecode_UnexportedFieldSkipped(t *testing.T) {
	data := map[string]any{"secret": "value"}
	type Holder struct {
		secret string
		Public string `toml:"secret"`
	}

	var h Holder
	if err := Decode(data, &h); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if h.Public != "value" || h.secret != "" {
		t.Errorf("Unexpected result: %+v", h)
	}
}

// TestParse_Errors checks malformed documents
func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"duplicate key", "a = 1\na = 2\n"},
		{"missing equals", "a 1\n"},
		{"unterminated string", "a = \"abc\n"},
		{"unclosed array", "a = [1, 2\n"},
		{"missing comma", "a = [1 2]\n"},
		{"table over value", "a = 1\n[a]\n"},
		{"array table over table", "[a]\n[[a]]\n"},
		{"bad hex", "a = 0xG1\n"},
		{"lone sign", "a = +\n"},
		{"unexpected char", "a = @\n"},
		{"unclosed header", "[a\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewParser([]byte(tc.input)).Parse(); err == nil {
				t.Errorf("Expected parse error for %q", tc.input)
			}
		})
	}
}

// TestParse_InlineTableAndDottedKeys covers the remaining value forms
func TestParse_InlineTableAndDottedKeys(t *testing.T) {
	doc, err := NewParser([]byte(`
point = { x = 1, y = -2.5 }
display.fov = 90
display.sens = 5.0
hex = 0x1F
`)).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	point, ok := doc["point"].(map[string]any)
	if !ok || point["x"] != 1 || point["y"] != -2.5 {
		t.Errorf("Inline table mismatch: %#v", doc["point"])
	}
	display, ok := doc["display"].(map[string]any)
	if !ok || display["fov"] != 90 || display["sens"] != 5.0 {
		t.Errorf("Dotted key mismatch: %#v", doc["display"])
	}
	if doc["hex"] != 31 {
		t.Errorf("Hex integer mismatch: %#v", doc["hex"])
	}
}
