package plot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// ErrFormat is returned for an unsupported image file extension
var ErrFormat = errors.New("unsupported image format")

// Format is an output image encoding
type Format uint8

const (
	FormatWebP Format = iota
	FormatPNG
	FormatTGA
)

func (f Format) String() string {
	switch f {
	case FormatWebP:
		return "webp"
	case FormatPNG:
		return "png"
	case FormatTGA:
		return "tga"
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		return FormatWebP, nil
	case ".png":
		return FormatPNG, nil
	case ".tga":
		return FormatTGA, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// Encode writes img to w
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	case FormatPNG:
		return png.Encode(w, img)
	case FormatTGA:
		return tga.Encode(w, img)
	}
	return fmt.Errorf("%w: %v", ErrFormat, f)
}

// Save encodes img to path, choosing the format from its extension
// Returns the number of bytes written
func Save(path string, img image.Image) (int64, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return 0, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("create image dir: %w", err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create image: %w", err)
	}
	defer out.Close()

	if err := Encode(out, img, f); err != nil {
		return 0, fmt.Errorf("%s encode: %w", f, err)
	}
	info, err := out.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
