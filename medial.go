package vcarve

import (
	"math"

	"github.com/chipcarve/vcarve/internal/skeleton"
	"gonum.org/v1/gonum/spatial/r2"
)

// Boundary sampling spacing bounds in normalized (unit-disk) units. A very
// coarse tolerance would miss geometry; a very fine one makes the Voronoi
// graph intractable.
const (
	minSampleSpacing = 1.0 / 512
	maxSampleSpacing = 1.0 / 32
)

// nominalProfileSpan is the profile span (mm) at which PolygonTolerance
// maps one-to-one onto boundary chord length. The tolerance is resolved
// against this fixed span rather than the profile's own bounding box, so a
// uniformly scaled profile normalizes to the same sample set and its chains
// come out as exact scaled copies.
const nominalProfileSpan = 50.0

// ComputeMedialAxis runs the full pipeline on a world-coordinate polygon:
// validation, unit-disk normalization, medial-axis extraction and
// back-transform into world millimeters. Failures are reported through the
// result value, never by panic.
func ComputeMedialAxis(polygon []r2.Vec, p Parameters) MedialAxisResults {
	if err := p.Validate(); err != nil {
		return failedResults(err)
	}
	cleaned, warnings, err := ValidatePolygon(polygon)
	if err != nil {
		r := failedResults(err)
		r.Warnings = warnings
		return r
	}

	normalized, t := TransformToUnitDisk(cleaned)
	if err := CheckUnitDisk(normalized); err != nil {
		r := failedResults(err)
		r.Warnings = warnings
		return r
	}

	spacing := p.PolygonTolerance * unitDiskMargin / nominalProfileSpan
	if spacing < minSampleSpacing {
		spacing = minSampleSpacing
	} else if spacing > maxSampleSpacing {
		spacing = maxSampleSpacing
	}

	chains, err := skeleton.Extract(normalized, skeleton.Params{
		SampleSpacing: spacing,
		Threshold:     p.MedialThreshold,
		WalkPoints:    p.WalkPoints,
	})
	if err != nil {
		r := failedResults(&ValidationError{Kind: FailMedialEngine, Message: err.Error()})
		r.Warnings = warnings
		return r
	}

	res := MedialAxisResults{
		Transform: t,
		Success:   true,
		Warnings:  warnings,
	}
	for _, c := range chains {
		mc := MedialChain{
			Positions:  make([]r2.Vec, len(c.Points)),
			Clearances: make([]float64, len(c.Clearances)),
		}
		for i, pt := range c.Points {
			mc.Positions[i] = t.Invert(pt)
			mc.Clearances[i] = c.Clearances[i] / t.Scale
		}
		res.Chains = append(res.Chains, mc)
	}
	fillStatistics(&res)
	return res
}

// ComputeMedialAxisFromSegments chains the host's curve segments into a
// polygon first, then proceeds as ComputeMedialAxis.
func ComputeMedialAxisFromSegments(segments []CurveSegment, p Parameters) MedialAxisResults {
	polygon, complete := ChainSegments(segments)
	if !complete {
		return failedResults(&ValidationError{
			Kind:    FailChainIncomplete,
			Message: "chain incomplete",
		})
	}
	return ComputeMedialAxis(polygon, p)
}

func fillStatistics(r *MedialAxisResults) {
	r.NumChains = len(r.Chains)
	minC, maxC := math.Inf(1), math.Inf(-1)
	for i := range r.Chains {
		c := &r.Chains[i]
		r.TotalPoints += len(c.Positions)
		r.TotalLength += c.Length()
		for _, cl := range c.Clearances {
			if cl < minC {
				minC = cl
			}
			if cl > maxC {
				maxC = cl
			}
		}
	}
	if r.TotalPoints == 0 {
		minC, maxC = 0, 0
	}
	r.MinClearance = minC
	r.MaxClearance = maxC
}
