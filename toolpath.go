package vcarve

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// mergeTol is the endpoint coincidence distance for toolpath merging, mm.
const mergeTol = 0.1

// SurfaceZOracle answers vertical ray casts against a host surface. It
// returns the Z in mm of the topmost surface point above (x, y), or NaN
// when the ray misses. The surface id is opaque to this package.
type SurfaceZOracle interface {
	QueryZAtXY(surfaceID string, x, y float64) float64
}

// VCarvePoint is one toolpath point. Depth is the plunge below the local
// surface. Z is the absolute surface-projected height and is NaN in planar
// mode, where the caller applies Depth as a negative offset from the sketch
// plane.
type VCarvePoint struct {
	Position  r2.Vec
	Depth     float64
	Clearance float64
	Z         float64
}

// Point3D resolves the point to 3D coordinates given the sketch plane
// height.
func (p VCarvePoint) Point3D(sketchZ float64) r3.Vec {
	z := p.Z
	if math.IsNaN(z) {
		z = sketchZ - p.Depth
	}
	return r3.Vec{X: p.Position.X, Y: p.Position.Y, Z: z}
}

// VCarvePath is an ordered toolpath polyline. Valid paths have at least two
// points.
type VCarvePath struct {
	Points []VCarvePoint
	// gapBounded marks sub-paths produced by a surface-projection miss;
	// the merge pass never joins across such a gap.
	gapBounded bool
}

// Length returns the XY polyline length of the path.
func (p *VCarvePath) Length() float64 {
	l := 0.0
	for i := 1; i < len(p.Points); i++ {
		l += r2.Norm(r2.Sub(p.Points[i].Position, p.Points[i-1].Position))
	}
	return l
}

// MaxDepth returns the deepest plunge on the path.
func (p *VCarvePath) MaxDepth() float64 {
	d := 0.0
	for _, pt := range p.Points {
		if pt.Depth > d {
			d = pt.Depth
		}
	}
	return d
}

// VCarveResults is the outcome of toolpath synthesis. ClampedPoints counts
// the samples whose depth hit MaxVCarveDepth.
type VCarveResults struct {
	Paths         []VCarvePath
	ClampedPoints int
	TotalLength   float64
	MaxDepth      float64
	Success       bool
	ErrorMessage  string
}

// CarveDepth converts a clearance radius to the plunge depth of a V-bit
// with the given included angle: depth = clearance / tan(angle/2). The
// depth is clamped to maxDepth; the flag reports whether clamping occurred.
func CarveDepth(clearance, toolAngleDeg, maxDepth float64) (float64, bool) {
	depth := clearance / math.Tan(toolAngleDeg*math.Pi/360)
	if depth > maxDepth {
		return maxDepth, true
	}
	return depth, false
}

// GenerateVCarvePaths synthesizes planar toolpaths: every sample becomes a
// V-carve point at its clearance-derived depth, with Z unset. Paths with
// fewer than two points are discarded; coincident path endpoints are merged
// into longer continuous cuts.
func GenerateVCarvePaths(paths []SampledMedialPath, p Parameters) VCarveResults {
	return generate(paths, p, nil)
}

// GenerateVCarvePathsOnSurface synthesizes surface-projected toolpaths.
// Each sample's Z is surfaceZ - depth. Samples the oracle cannot resolve
// (NaN) split the path into separate sub-paths.
func GenerateVCarvePathsOnSurface(paths []SampledMedialPath, p Parameters, oracle SurfaceZOracle) VCarveResults {
	return generate(paths, p, oracle)
}

func generate(paths []SampledMedialPath, p Parameters, oracle SurfaceZOracle) VCarveResults {
	if err := p.Validate(); err != nil {
		return VCarveResults{ErrorMessage: err.Error()}
	}
	res := VCarveResults{Success: true}
	for i := range paths {
		res.appendPath(&paths[i], p, oracle)
	}
	res.Paths = mergePaths(res.Paths)
	for i := range res.Paths {
		path := &res.Paths[i]
		res.TotalLength += path.Length()
		if d := path.MaxDepth(); d > res.MaxDepth {
			res.MaxDepth = d
		}
	}
	return res
}

// appendPath emits the toolpath points of one sampled path, splitting into
// sub-paths at surface-projection misses and dropping runs shorter than two
// points.
func (r *VCarveResults) appendPath(sp *SampledMedialPath, p Parameters, oracle SurfaceZOracle) {
	var cur VCarvePath
	split := false
	flush := func() {
		if len(cur.Points) >= 2 {
			cur.gapBounded = split
			r.Paths = append(r.Paths, cur)
		}
		cur = VCarvePath{}
	}
	for _, s := range sp.Points {
		depth, clamped := CarveDepth(s.Clearance, p.ToolAngle, p.MaxVCarveDepth)
		if clamped {
			r.ClampedPoints++
		}
		z := math.NaN()
		if oracle != nil {
			surfaceZ := oracle.QueryZAtXY(p.TargetSurfaceID, s.Position.X, s.Position.Y)
			if math.IsNaN(surfaceZ) {
				split = true
				flush()
				continue
			}
			z = surfaceZ - depth
		}
		cur.Points = append(cur.Points, VCarvePoint{
			Position:  s.Position,
			Depth:     depth,
			Clearance: s.Clearance,
			Z:         z,
		})
	}
	flush()
}

// mergePaths joins paths whose endpoints coincide within 0.1 mm into longer
// continuous cuts, longest path first, reversing the absorbed path when
// needed. Sub-paths bounded by a surface-projection gap are left alone.
func mergePaths(paths []VCarvePath) []VCarvePath {
	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].Length() > paths[j].Length()
	})
	for i := 0; i < len(paths); i++ {
		if paths[i].gapBounded {
			continue
		}
		for j := i + 1; j < len(paths); j++ {
			if paths[j].gapBounded {
				continue
			}
			merged, ok := joinPaths(&paths[i], &paths[j])
			if !ok {
				continue
			}
			paths[i].Points = merged
			paths = append(paths[:j], paths[j+1:]...)
			// Rescan: the grown path may now reach further neighbours.
			j = i
		}
	}
	return paths
}

// joinPaths connects b onto a when a pair of their endpoints coincide. The
// shared point is contributed once.
func joinPaths(a, b *VCarvePath) ([]VCarvePoint, bool) {
	aStart, aEnd := a.Points[0].Position, a.Points[len(a.Points)-1].Position
	bStart, bEnd := b.Points[0].Position, b.Points[len(b.Points)-1].Position
	switch {
	case near(aEnd, bStart):
		return append(a.Points, b.Points[1:]...), true
	case near(aEnd, bEnd):
		return append(a.Points, reverseVPoints(b.Points)[1:]...), true
	case near(aStart, bEnd):
		return append(b.Points, a.Points[1:]...), true
	case near(aStart, bStart):
		return append(reverseVPoints(b.Points), a.Points[1:]...), true
	}
	return nil, false
}

func near(a, b r2.Vec) bool {
	return r2.Norm(r2.Sub(a, b)) <= mergeTol
}

func reverseVPoints(pts []VCarvePoint) []VCarvePoint {
	out := make([]VCarvePoint, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
