// Package render produces diagnostic SVG images of medial-axis results:
// the profile outline, the extracted chains, and optionally the inscribed
// clearance circles and chain-endpoint markers.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/chipcarve/vcarve"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Options control the diagnostic rendering.
type Options struct {
	// Zoom is the canvas millimeters per world millimeter. Zero means 4.
	Zoom float64
	// Margin is the border around the profile in world mm. Zero means 2.
	Margin float64
	// ClearanceCircles draws the inscribed disk at every chain vertex.
	ClearanceCircles bool
	// CrossSize draws endpoint cross markers of this size in world mm.
	CrossSize float64
}

func (o Options) withDefaults() Options {
	if o.Zoom == 0 {
		o.Zoom = 4
	}
	if o.Margin == 0 {
		o.Margin = 2
	}
	return o
}

// SVG writes a diagnostic image of the polygon and its medial-axis result.
func SVG(w io.Writer, polygon []r2.Vec, res *vcarve.MedialAxisResults, opts Options) error {
	if len(polygon) < 3 {
		return fmt.Errorf("render: polygon has %d vertices", len(polygon))
	}
	opts = opts.withDefaults()
	d := newDrawing(polygon, opts)

	d.strokePolyline(closeRing(polygon), color.Black, vg.Points(1.5))
	for i := range res.Chains {
		c := &res.Chains[i]
		if opts.ClearanceCircles {
			d.clearanceCircles(c)
		}
		d.strokePolyline(c.Positions, plotutil.Color(i), vg.Points(1))
		if opts.CrossSize > 0 && len(c.Positions) > 0 {
			d.cross(c.Positions[0], opts.CrossSize, plotutil.Color(i))
			d.cross(c.Positions[len(c.Positions)-1], opts.CrossSize, plotutil.Color(i))
		}
	}
	_, err := d.canvas.WriteTo(w)
	return err
}

type drawing struct {
	canvas *vgsvg.Canvas
	min    r2.Vec
	zoom   float64
}

func newDrawing(polygon []r2.Vec, opts Options) *drawing {
	min, max := bounds(polygon)
	min = r2.Sub(min, r2.Vec{X: opts.Margin, Y: opts.Margin})
	max = r2.Add(max, r2.Vec{X: opts.Margin, Y: opts.Margin})
	size := r2.Sub(max, min)
	return &drawing{
		canvas: vgsvg.New(
			vg.Length(size.X*opts.Zoom)*vg.Millimeter,
			vg.Length(size.Y*opts.Zoom)*vg.Millimeter,
		),
		min:  min,
		zoom: opts.Zoom,
	}
}

// at maps a world point to canvas coordinates. The vg canvas has its origin
// bottom-left with Y up, matching the world convention.
func (d *drawing) at(p r2.Vec) vg.Point {
	return vg.Point{
		X: vg.Length((p.X-d.min.X)*d.zoom) * vg.Millimeter,
		Y: vg.Length((p.Y-d.min.Y)*d.zoom) * vg.Millimeter,
	}
}

func (d *drawing) length(mm float64) vg.Length {
	return vg.Length(mm*d.zoom) * vg.Millimeter
}

func (d *drawing) strokePolyline(pts []r2.Vec, col color.Color, width vg.Length) {
	if len(pts) < 2 {
		return
	}
	var path vg.Path
	path.Move(d.at(pts[0]))
	for _, p := range pts[1:] {
		path.Line(d.at(p))
	}
	d.canvas.SetColor(col)
	d.canvas.SetLineWidth(width)
	d.canvas.Stroke(path)
}

func (d *drawing) clearanceCircles(c *vcarve.MedialChain) {
	d.canvas.SetColor(color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff})
	d.canvas.SetLineWidth(vg.Points(0.4))
	for i, p := range c.Positions {
		r := c.Clearances[i]
		if r <= 0 {
			continue
		}
		var path vg.Path
		path.Move(d.at(r2.Vec{X: p.X + r, Y: p.Y}))
		path.Arc(d.at(p), d.length(r), 0, 2*math.Pi)
		path.Close()
		d.canvas.Stroke(path)
	}
}

func (d *drawing) cross(p r2.Vec, size float64, col color.Color) {
	h := size / 2
	d.strokePolyline([]r2.Vec{{X: p.X - h, Y: p.Y}, {X: p.X + h, Y: p.Y}}, col, vg.Points(1))
	d.strokePolyline([]r2.Vec{{X: p.X, Y: p.Y - h}, {X: p.X, Y: p.Y + h}}, col, vg.Points(1))
}

func bounds(pts []r2.Vec) (min, max r2.Vec) {
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

func closeRing(pts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(pts)+1)
	copy(out, pts)
	out[len(pts)] = pts[0]
	return out
}
