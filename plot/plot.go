package plot

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/lixenwraith/recoil/profile"
)

// Point is a cumulative pointer position in pixels, y pointing down
type Point struct {
	X, Y float64
}

// Options controls pattern image rendering
type Options struct {
	Size        int     // output edge length in pixels
	Supersample int     // render scale before downsampling
	Margin      float64 // blank border as a fraction of Size
	LineWidth   float64 // path stroke width in output pixels
	MarkerSize  float64 // bullet marker edge in output pixels

	Background color.Color
	Line       color.Color
	Marker     color.Color
	Origin     color.Color
}

// DefaultOptions returns a 512px dark-background rendering
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Supersample: 4,
		Margin:      0.08,
		LineWidth:   1.5,
		MarkerSize:  5,
		Background:  color.NRGBA{0x14, 0x16, 0x1a, 0xff},
		Line:        color.NRGBA{0x4c, 0xc9, 0x6a, 0xff},
		Marker:      color.NRGBA{0xf0, 0xf0, 0xf0, 0xff},
		Origin:      color.NRGBA{0xf5, 0xc5, 0x18, 0xff},
	}
}

// Path accumulates table steps into positions, origin first
func Path(table []profile.AngleDelta) []Point {
	out := make([]Point, 1, len(table)+1)
	var x, y float64
	for _, s := range table {
		x += s.X
		y += s.Y
		out = append(out, Point{x, y})
	}
	return out
}

// Render draws the compensation path of table with a marker at every bullet boundary
// stepsPerBullet below 1 marks every step
func Render(table []profile.AngleDelta, stepsPerBullet int, opts Options) *image.NRGBA {
	if opts.Size < 1 {
		opts.Size = DefaultOptions().Size
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	if stepsPerBullet < 1 {
		stepsPerBullet = 1
	}

	ss := float64(opts.Supersample)
	edge := opts.Size * opts.Supersample
	big := image.NewRGBA(image.Rect(0, 0, edge, edge))
	draw.Draw(big, big.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	path := Path(table)
	project := fit(path, float64(edge), opts.Margin*float64(edge))

	z := vector.NewRasterizer(edge, edge)

	// Segments share one winding direction so overlapping strokes never cancel
	half := opts.LineWidth * ss / 2
	for i := 1; i < len(path); i++ {
		strokeSegment(z, project(path[i-1]), project(path[i]), half)
	}
	z.Draw(big, big.Bounds(), image.NewUniform(opts.Line), image.Point{})

	z.Reset(edge, edge)
	r := opts.MarkerSize * ss / 2
	for i := stepsPerBullet; i < len(path); i += stepsPerBullet {
		square(z, project(path[i]), r)
	}
	z.Draw(big, big.Bounds(), image.NewUniform(opts.Marker), image.Point{})

	z.Reset(edge, edge)
	square(z, project(path[0]), r*1.5)
	z.Draw(big, big.Bounds(), image.NewUniform(opts.Origin), image.Point{})

	out := image.NewNRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.CatmullRom.Scale(out, out.Bounds(), big, big.Bounds(), draw.Src, nil)
	return out
}

// fit returns a projection placing every point inside a square of edge px with the given margin
// Aspect ratio is preserved; a degenerate path is centered
func fit(path []Point, edge, margin float64) func(Point) Point {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range path {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span < 1 {
		span = 1
	}
	scale := (edge - 2*margin) / span
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	return func(p Point) Point {
		return Point{
			X: edge/2 + (p.X-cx)*scale,
			Y: edge/2 + (p.Y-cy)*scale,
		}
	}
}

func strokeSegment(z *vector.Rasterizer, a, b Point, half float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*half, dx/l*half
	z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	z.LineTo(float32(b.X+nx), float32(b.Y+ny))
	z.LineTo(float32(b.X-nx), float32(b.Y-ny))
	z.LineTo(float32(a.X-nx), float32(a.Y-ny))
	z.ClosePath()
}

func square(z *vector.Rasterizer, c Point, r float64) {
	z.MoveTo(float32(c.X-r), float32(c.Y-r))
	z.LineTo(float32(c.X+r), float32(c.Y-r))
	z.LineTo(float32(c.X+r), float32(c.Y+r))
	z.LineTo(float32(c.X-r), float32(c.Y+r))
	z.ClosePath()
}
