package vcarve

import (
	"github.com/chipcarve/vcarve/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// SampledPoint is one resampled centerline point in world mm.
type SampledPoint struct {
	Position  r2.Vec
	Clearance float64
}

// SampledMedialPath is a medial chain resampled at uniform arclength.
// Consecutive samples are exactly the requested spacing apart except the
// final segment, which may be shorter.
type SampledMedialPath struct {
	Points      []SampledPoint
	TotalLength float64
}

// SampledPaths resamples every chain at the given arclength spacing,
// linearly interpolating both position and clearance. The chain's final
// endpoint is always emitted. Chains with fewer than two vertices are
// dropped.
func (r *MedialAxisResults) SampledPaths(spacing float64) []SampledMedialPath {
	if spacing <= 0 {
		return nil
	}
	var paths []SampledMedialPath
	for i := range r.Chains {
		c := &r.Chains[i]
		if len(c.Positions) < 2 {
			continue
		}
		paths = append(paths, resampleChain(c, spacing))
	}
	return paths
}

func resampleChain(c *MedialChain, spacing float64) SampledMedialPath {
	// Cumulative arclength per chain vertex.
	cum := make([]float64, len(c.Positions))
	for i := 1; i < len(c.Positions); i++ {
		cum[i] = cum[i-1] + r2.Norm(r2.Sub(c.Positions[i], c.Positions[i-1]))
	}
	total := cum[len(cum)-1]

	var path SampledMedialPath
	path.TotalLength = total
	seg := 1
	sLast := 0.0
	for k := 0; ; k++ {
		s := float64(k) * spacing
		if s > total {
			break
		}
		for seg < len(cum)-1 && cum[seg] < s {
			seg++
		}
		path.Points = append(path.Points, interpolateAt(c, cum, seg, s))
		sLast = s
	}
	// The final endpoint closes the path even when the last step is short.
	last := len(c.Positions) - 1
	if total-sLast > 1e-9 {
		path.Points = append(path.Points, SampledPoint{
			Position:  c.Positions[last],
			Clearance: c.Clearances[last],
		})
	}
	return path
}

// interpolateAt evaluates the chain at arclength s, with cum[seg-1] <= s <=
// cum[seg].
func interpolateAt(c *MedialChain, cum []float64, seg int, s float64) SampledPoint {
	span := cum[seg] - cum[seg-1]
	t := 0.0
	if span > 0 {
		t = (s - cum[seg-1]) / span
	}
	return SampledPoint{
		Position:  d2.Lerp(c.Positions[seg-1], c.Positions[seg], t),
		Clearance: c.Clearances[seg-1] + t*(c.Clearances[seg]-c.Clearances[seg-1]),
	}
}
