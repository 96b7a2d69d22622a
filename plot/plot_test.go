package plot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/recoil/profile"
)

func testTable() []profile.AngleDelta {
	return []profile.AngleDelta{
		{X: 0, Y: 10}, {X: 0, Y: 10},
		{X: 5, Y: 10}, {X: 5, Y: 10},
		{X: -5, Y: 10}, {X: -5, Y: 10},
	}
}

// near compares colors allowing resampling error
func near(a, b color.NRGBA) bool {
	d := func(x, y uint8) bool { return x-y <= 2 || y-x <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestPath(t *testing.T) {
	got := Path(testTable())
	want := []Point{{0, 0}, {0, 10}, {0, 20}, {5, 30}, {10, 40}, {5, 50}, {0, 60}}
	if len(got) != len(want) {
		t.Fatalf("Expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}

	if empty := Path(nil); len(empty) != 1 || empty[0] != (Point{}) {
		t.Errorf("Expected origin only for an empty table, got %v", empty)
	}
}

func TestRender(t *testing.T) {
	opts := DefaultOptions()
	opts.Size = 64
	opts.Supersample = 2

	straight := make([]profile.AngleDelta, 8)
	for i := range straight {
		straight[i] = profile.AngleDelta{Y: 10}
	}

	img := Render(straight, 2, opts)
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("Expected 64x64, got %v", b)
	}

	bg := color.NRGBAModel.Convert(opts.Background).(color.NRGBA)
	if got := img.NRGBAAt(0, 0); !near(got, bg) {
		t.Errorf("Expected background in the corner, got %v", got)
	}

	// The path runs vertically through the centre column
	painted := 0
	for y := 0; y < 64; y++ {
		if !near(img.NRGBAAt(32, y), bg) {
			painted++
		}
	}
	if painted < 32 {
		t.Errorf("Expected the path to cover the centre column, %d pixels painted", painted)
	}
}

func TestRender_EmptyTable(t *testing.T) {
	opts := DefaultOptions()
	opts.Size = 32
	img := Render(nil, 1, opts)
	if img.Bounds().Dx() != 32 {
		t.Fatalf("Unexpected size %v", img.Bounds())
	}
	bg := color.NRGBAModel.Convert(opts.Background).(color.NRGBA)
	if near(img.NRGBAAt(16, 16), bg) {
		t.Error("Expected the origin marker at the centre")
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"a.webp":    FormatWebP,
		"b.PNG":     FormatPNG,
		"dir/c.tga": FormatTGA,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %v, %v; want %v", path, got, err, want)
		}
	}
	if _, err := FormatFromPath("x.jpg"); !errors.Is(err, ErrFormat) {
		t.Errorf("Expected ErrFormat, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	opts := DefaultOptions()
	opts.Size = 16
	opts.Supersample = 1
	img := Render(testTable(), 2, opts)

	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatPNG); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png decode: %v", err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 16, 16) {
		t.Errorf("Unexpected decoded bounds %v", decoded.Bounds())
	}

	buf.Reset()
	if err := Encode(&buf, img, FormatWebP); err != nil {
		t.Fatalf("webp encode: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("RIFF")) {
		t.Error("Expected a RIFF container")
	}

	buf.Reset()
	if err := Encode(&buf, img, FormatTGA); err != nil {
		t.Fatalf("tga encode: %v", err)
	}
	if buf.Len() <= 18 {
		t.Errorf("Expected header and pixel data, got %d bytes", buf.Len())
	}
}

func TestSave(t *testing.T) {
	opts := DefaultOptions()
	opts.Size = 16
	img := Render(testTable(), 2, opts)

	path := filepath.Join(t.TempDir(), "out", "pattern.png")
	n, err := Save(path, img)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if n == 0 {
		t.Error("Expected a non-empty file")
	}

	if _, err := Save(filepath.Join(t.TempDir(), "pattern.gif"), img); !errors.Is(err, ErrFormat) {
		t.Errorf("Expected ErrFormat, got %v", err)
	}
}
