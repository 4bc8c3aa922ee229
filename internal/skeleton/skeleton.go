package skeleton

import (
	"fmt"
	"math"

	"github.com/fogleman/delaunay"
	"gonum.org/v1/gonum/spatial/r2"
)

// collapseTol merges skeleton vertices closer than this. Cocircular boundary
// samples (axis-aligned rectangles produce them) yield coincident
// circumcenters that must be treated as one graph node.
const collapseTol = 1e-9

// Params control the extraction. All lengths are in the caller's
// (normalized) coordinate space.
type Params struct {
	// SampleSpacing is the maximum boundary chord length.
	SampleSpacing float64
	// Threshold prunes edges whose defining sites are not sufficiently
	// anti-parallel: an edge survives iff sqrt((1-ta.tb)/2) >= Threshold.
	Threshold float64
	// WalkPoints inserts that many interpolated samples per graph edge.
	WalkPoints int
}

// Chain is one medial-axis branch: positions with their clearance radii.
type Chain struct {
	Points     []r2.Vec
	Clearances []float64
}

// Extract computes the filtered medial-axis chains of polygon. The polygon
// must be simple and is implicitly closed; either winding is accepted.
func Extract(polygon []r2.Vec, p Params) ([]Chain, error) {
	sites := densify(polygon, p.SampleSpacing)
	pts := make([]delaunay.Point, len(sites))
	for i, s := range sites {
		pts[i] = delaunay.Point{X: s.pos.X, Y: s.pos.Y}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, fmt.Errorf("voronoi construction: %w", err)
	}

	numTri := len(tri.Triangles) / 3
	centers := make([]r2.Vec, numTri)
	for t := 0; t < numTri; t++ {
		centers[t] = circumcenter(
			sites[tri.Triangles[3*t]].pos,
			sites[tri.Triangles[3*t+1]].pos,
			sites[tri.Triangles[3*t+2]].pos,
		)
	}

	bd := &boundary{ring: polygon}
	interior := make([]bool, numTri)
	for t := 0; t < numTri; t++ {
		interior[t] = bd.contains(centers[t])
	}

	// Kept Voronoi edges: both circumcenters interior, sites anti-parallel.
	uf := newUnionFind(numTri)
	type rawEdge struct{ a, b int }
	var kept []rawEdge
	for e := 0; e < len(tri.Halfedges); e++ {
		twin := tri.Halfedges[e]
		if twin < e {
			// Hull edge (twin == -1) or already seen from the twin side.
			continue
		}
		ta, tb := e/3, twin/3
		if !interior[ta] || !interior[tb] {
			continue
		}
		sa := sites[tri.Triangles[e]]
		sb := sites[tri.Triangles[nextHalfedge(e)]]
		if parallelism(sa.tangent, sb.tangent) < p.Threshold {
			continue
		}
		if r2.Norm(r2.Sub(centers[ta], centers[tb])) < collapseTol {
			uf.union(ta, tb)
			continue
		}
		kept = append(kept, rawEdge{ta, tb})
	}

	// Compact the surviving representatives into graph node ids, ascending
	// triangle order for determinism.
	nodeOf := make(map[int]int)
	var reps []int
	idOf := func(t int) int {
		r := uf.find(t)
		if id, ok := nodeOf[r]; ok {
			return id
		}
		id := len(reps)
		nodeOf[r] = id
		reps = append(reps, r)
		return id
	}
	g := newGraph()
	for _, e := range kept {
		a, b := idOf(e.a), idOf(e.b)
		if a != b {
			g.addEdge(a, b)
		}
	}
	g.pos = make([]r2.Vec, len(reps))
	for id, r := range reps {
		g.pos[id] = centers[r]
	}
	g.sortAdjacency()

	paths := g.walk()
	chains := make([]Chain, 0, len(paths))
	for _, path := range paths {
		c := buildChain(g, path, p.WalkPoints, bd)
		if len(c.Points) >= 2 {
			chains = append(chains, c)
		}
	}
	return chains, nil
}

// buildChain converts a node path into a chain, inserting walkPoints
// interpolated samples per edge. Clearances are exact boundary distances.
func buildChain(g *graph, path []int, walkPoints int, bd *boundary) Chain {
	var c Chain
	emit := func(p r2.Vec) {
		c.Points = append(c.Points, p)
		c.Clearances = append(c.Clearances, bd.distance(p))
	}
	for i, node := range path {
		if i > 0 && walkPoints > 0 {
			prev := g.pos[path[i-1]]
			cur := g.pos[node]
			for k := 1; k <= walkPoints; k++ {
				t := float64(k) / float64(walkPoints+1)
				emit(r2.Add(prev, r2.Scale(t, r2.Sub(cur, prev))))
			}
		}
		emit(g.pos[node])
	}
	return c
}

// parallelism maps the tangents of two boundary sites to [0, 1]: 1 for
// opposing walls, 0 for same-direction neighbours, cos(alpha/2) across a
// convex corner of interior angle alpha.
func parallelism(ta, tb r2.Vec) float64 {
	d := (1 - r2.Dot(ta, tb)) / 2
	if d < 0 {
		return 0
	}
	return math.Sqrt(d)
}

func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

// circumcenter of the triangle abc.
func circumcenter(a, b, c r2.Vec) r2.Vec {
	ax, ay := b.X-a.X, b.Y-a.Y
	bx, by := c.X-a.X, c.Y-a.Y
	d := 2 * (ax*by - ay*bx)
	if d == 0 {
		// Collinear sample triple. The dual edges of such a sliver are
		// pruned by the filters; any finite stand-in works.
		return a
	}
	asq := ax*ax + ay*ay
	bsq := bx*bx + by*by
	return r2.Vec{
		X: a.X + (by*asq-ay*bsq)/d,
		Y: a.Y + (ax*bsq-bx*asq)/d,
	}
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// union attaches the larger root under the smaller, keeping representatives
// stable under insertion order.
func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}
