package vcarve

import (
	"github.com/chipcarve/vcarve/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// unitDiskMargin is the radius of the disk the normalized polygon is fitted
// into, leaving headroom to the unit circle.
const unitDiskMargin = 0.95

// degenerateDim is the bounding-box size below which no rescale is applied.
const degenerateDim = 1e-10

// TransformParams captures the translate-then-uniform-scale map that fits a
// polygon into the unit disk: P' = (P + Offset) * Scale.
type TransformParams struct {
	Offset      r2.Vec
	Scale       float64
	OriginalMin r2.Vec
	OriginalMax r2.Vec
}

// Apply maps a world point into the normalized space.
func (t TransformParams) Apply(p r2.Vec) r2.Vec {
	return r2.Scale(t.Scale, r2.Add(p, t.Offset))
}

// Invert maps a normalized point back to world coordinates.
func (t TransformParams) Invert(p r2.Vec) r2.Vec {
	return r2.Sub(r2.Scale(1/t.Scale, p), t.Offset)
}

// TransformToUnitDisk centers the polygon's bounding box on the origin and
// scales it uniformly to fit in a disk of radius 0.95. Degenerate inputs
// (bounding box smaller than 1e-10) are translated but not rescaled.
func TransformToUnitDisk(polygon []r2.Vec) ([]r2.Vec, TransformParams) {
	box := d2.BoxOf(d2.Set(polygon))
	maxDim := d2.Max(box.Size())
	scale := 1.0
	if maxDim >= degenerateDim {
		scale = unitDiskMargin / maxDim
	}
	t := TransformParams{
		Offset:      r2.Scale(-1, box.Center()),
		Scale:       scale,
		OriginalMin: box.Min,
		OriginalMax: box.Max,
	}
	out := make([]r2.Vec, len(polygon))
	for i, p := range polygon {
		out[i] = t.Apply(p)
	}
	return out, t
}
