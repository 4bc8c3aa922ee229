// Package skeleton extracts the medial axis of a simple polygon from the
// Voronoi diagram of densified boundary samples. The Voronoi graph is the
// dual of the Delaunay triangulation of the samples: vertices are triangle
// circumcenters, edges join circumcenters of triangles sharing a Delaunay
// edge, and the two endpoints of that Delaunay edge are the Voronoi edge's
// defining sites.
package skeleton

import (
	"math"

	"github.com/chipcarve/vcarve/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// site is a boundary sample. tangent is the unit traversal direction of the
// polygon edge the sample lies on.
type site struct {
	pos     r2.Vec
	tangent r2.Vec
}

// densify splits every polygon edge into chords no longer than spacing and
// returns the resulting ring of sites. Vertex samples carry the tangent of
// their outgoing edge.
func densify(polygon []r2.Vec, spacing float64) []site {
	n := len(polygon)
	sites := make([]site, 0, n*4)
	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]
		edge := r2.Sub(b, a)
		length := r2.Norm(edge)
		tangent := r2.Scale(1/length, edge)
		m := int(math.Ceil(length / spacing))
		if m < 1 {
			m = 1
		}
		for j := 0; j < m; j++ {
			t := float64(j) / float64(m)
			sites = append(sites, site{pos: d2.Lerp(a, b, t), tangent: tangent})
		}
	}
	return sites
}

// boundary answers interiority and distance queries against a polygon ring.
type boundary struct {
	ring []r2.Vec
}

// contains reports whether p lies inside the polygon, for either winding.
// Crossing-number test over the implicitly closed ring.
func (bd *boundary) contains(p r2.Vec) bool {
	inside := false
	n := len(bd.ring)
	for i := 0; i < n; i++ {
		a := bd.ring[i]
		b := bd.ring[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// distance returns the minimum distance from p to the polygon boundary.
func (bd *boundary) distance(p r2.Vec) float64 {
	dMin := math.Inf(1)
	n := len(bd.ring)
	for i := 0; i < n; i++ {
		d := d2.SegmentDistance(p, bd.ring[i], bd.ring[(i+1)%n])
		if d < dMin {
			dMin = d
		}
	}
	return dMin
}
