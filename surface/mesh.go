// Package surface implements the vertical ray-cast oracle used for
// projecting toolpaths onto a target surface. A Mesh answers QueryZAtXY by
// intersecting the downward column at (x, y) with a triangle soup indexed
// by a 2D R-tree over the triangles' XY bounding boxes.
package surface

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is one mesh facet in world millimeters.
type Triangle [3]r3.Vec

// xyAreaTol drops triangles that are edge-on to the query direction; they
// cannot answer a vertical ray cast.
const xyAreaTol = 1e-12

// Mesh is a triangle soup answering topmost-Z queries. It implements the
// toolpath synthesizer's SurfaceZOracle over its own surface id.
type Mesh struct {
	id    string
	index *rtreego.Rtree
}

type indexedTriangle struct {
	tri  Triangle
	rect *rtreego.Rect
}

func (t *indexedTriangle) Bounds() *rtreego.Rect {
	return t.rect
}

// NewMesh indexes the given triangles under the given surface id.
// Triangles with near-zero XY projected area are skipped.
func NewMesh(id string, tris []Triangle) *Mesh {
	m := &Mesh{id: id, index: rtreego.NewTree(2, 25, 50)}
	for _, t := range tris {
		if math.Abs(xyArea(t)) < xyAreaTol {
			continue
		}
		minX := math.Min(t[0].X, math.Min(t[1].X, t[2].X))
		minY := math.Min(t[0].Y, math.Min(t[1].Y, t[2].Y))
		maxX := math.Max(t[0].X, math.Max(t[1].X, t[2].X))
		maxY := math.Max(t[0].Y, math.Max(t[1].Y, t[2].Y))
		rect, err := rtreego.NewRect(
			rtreego.Point{minX, minY},
			[]float64{maxX - minX + xyAreaTol, maxY - minY + xyAreaTol},
		)
		if err != nil {
			continue
		}
		m.index.Insert(&indexedTriangle{tri: t, rect: rect})
	}
	return m
}

// ID returns the surface id this mesh answers for.
func (m *Mesh) ID() string {
	return m.id
}

// NumTriangles returns the number of indexed facets.
func (m *Mesh) NumTriangles() int {
	return m.index.Size()
}

// QueryZAtXY returns the Z of the topmost triangle containing (x, y) in its
// XY projection, or NaN when no triangle covers the point or the surface id
// does not match this mesh. An empty id matches any mesh.
func (m *Mesh) QueryZAtXY(surfaceID string, x, y float64) float64 {
	if surfaceID != "" && surfaceID != m.id {
		return math.NaN()
	}
	probe, err := rtreego.NewRect(rtreego.Point{x, y}, []float64{xyAreaTol, xyAreaTol})
	if err != nil {
		return math.NaN()
	}
	best := math.Inf(-1)
	hit := false
	for _, spatial := range m.index.SearchIntersect(probe) {
		t := spatial.(*indexedTriangle).tri
		z, ok := zAt(t, x, y)
		if ok && z > best {
			best = z
			hit = true
		}
	}
	if !hit {
		return math.NaN()
	}
	return best
}

// zAt interpolates the triangle plane at (x, y) via barycentric
// coordinates. Reports false when the point falls outside the XY
// projection.
func zAt(t Triangle, x, y float64) (float64, bool) {
	a, b, c := t[0], t[1], t[2]
	denom := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if math.Abs(denom) < xyAreaTol {
		return 0, false
	}
	l1 := ((b.Y-c.Y)*(x-c.X) + (c.X-b.X)*(y-c.Y)) / denom
	l2 := ((c.Y-a.Y)*(x-c.X) + (a.X-c.X)*(y-c.Y)) / denom
	l3 := 1 - l1 - l2
	const slack = 1e-9
	if l1 < -slack || l2 < -slack || l3 < -slack {
		return 0, false
	}
	return l1*a.Z + l2*b.Z + l3*c.Z, true
}

func xyArea(t Triangle) float64 {
	return ((t[1].X-t[0].X)*(t[2].Y-t[0].Y) - (t[1].Y-t[0].Y)*(t[2].X-t[0].X)) / 2
}
