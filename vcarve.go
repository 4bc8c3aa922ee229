// Package vcarve converts closed 2D profiles into V-carve toolpath
// centerlines for CNC chip carving. The pipeline chains curve segments into
// a polygon, validates it, normalizes it into the unit disk, extracts the
// medial axis with per-vertex clearance radii, and synthesizes V-carve
// toolpaths whose depth follows the local clearance.
//
// All lengths at the API boundary are millimeters, angles in Parameters are
// degrees. Polygons are implicitly closed (last vertex not equal to first)
// and may wind either way. Every entry point is a pure synchronous function
// over value types.
package vcarve

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Parameters holds all recognized pipeline options. The zero value is not
// usable; start from DefaultParameters.
type Parameters struct {
	// PolygonTolerance is the maximum boundary chord length (mm) used when
	// densifying the profile for the medial-axis engine.
	PolygonTolerance float64
	// SamplingDistance is the arclength spacing (mm) for resampled paths.
	SamplingDistance float64
	// MedialThreshold in [0, 1] prunes medial-axis branches whose defining
	// boundary walls are insufficiently anti-parallel. Higher values keep
	// only the central spine.
	MedialThreshold float64
	// CrossSize is the marker size (mm) used by diagnostic rendering.
	CrossSize float64
	// ToolAngle is the included angle of the V-bit in degrees.
	ToolAngle float64
	// ToolDiameter is the V-bit shank diameter in mm. Informational; the
	// depth model uses ToolAngle only.
	ToolDiameter float64
	// MaxVCarveDepth clamps the computed carve depth (mm).
	MaxVCarveDepth float64
	// ProjectToSurface replaces planar depths with surface-relative Z via a
	// SurfaceZOracle.
	ProjectToSurface bool
	// TargetSurfaceID is passed through to the surface oracle, opaque here.
	TargetSurfaceID string
	// GenerateVCarveToolpaths requests toolpath synthesis after medial-axis
	// extraction in host-driven flows.
	GenerateVCarveToolpaths bool
	// ForceBoundaryIntersections is accepted for compatibility with stored
	// designs and has no effect.
	ForceBoundaryIntersections bool
	// WalkPoints inserts that many interpolated samples per medial-axis
	// graph edge. Zero emits graph vertices only.
	WalkPoints int
}

// DefaultParameters returns the stock chip-carving setup: 6.35 mm 90 degree
// V-bit, quarter-millimeter tessellation, 1 mm sampling.
func DefaultParameters() Parameters {
	return Parameters{
		PolygonTolerance: 0.25,
		SamplingDistance: 1.0,
		MedialThreshold:  0.8,
		CrossSize:        3.0,
		ToolAngle:        90,
		ToolDiameter:     6.35,
		MaxVCarveDepth:   25.0,
		ProjectToSurface: true,
	}
}

// Validate checks parameter ranges and returns the first violation.
func (p Parameters) Validate() error {
	switch {
	case p.PolygonTolerance < 1e-6 || p.PolygonTolerance > 10:
		return fmt.Errorf("polygon tolerance %g mm outside [1e-6, 10]", p.PolygonTolerance)
	case p.SamplingDistance < 1e-6 || p.SamplingDistance > 100:
		return fmt.Errorf("sampling distance %g mm outside [1e-6, 100]", p.SamplingDistance)
	case p.MedialThreshold < 0 || p.MedialThreshold > 1:
		return fmt.Errorf("medial threshold %g outside [0, 1]", p.MedialThreshold)
	case p.CrossSize < 0:
		return fmt.Errorf("cross size %g mm is negative", p.CrossSize)
	case p.ToolAngle <= 0 || p.ToolAngle >= 180:
		return fmt.Errorf("tool angle %g degrees outside (0, 180)", p.ToolAngle)
	case p.MaxVCarveDepth <= 0:
		return fmt.Errorf("max V-carve depth %g mm must be positive", p.MaxVCarveDepth)
	case p.WalkPoints < 0:
		return fmt.Errorf("walk points %d is negative", p.WalkPoints)
	}
	return nil
}

// MedialChain is one medial-axis branch in world millimeters. Positions and
// Clearances have equal length; Clearances[i] is the distance from
// Positions[i] to the nearest polygon boundary point.
type MedialChain struct {
	Positions  []r2.Vec
	Clearances []float64
}

// Length returns the polyline length of the chain.
func (c *MedialChain) Length() float64 {
	l := 0.0
	for i := 1; i < len(c.Positions); i++ {
		l += r2.Norm(r2.Sub(c.Positions[i], c.Positions[i-1]))
	}
	return l
}

// MedialAxisResults is the outcome of one medial-axis computation. When
// Success is false, Chains is empty and ErrorMessage explains the failure.
// A successful result may still carry zero chains when the threshold pruned
// everything.
type MedialAxisResults struct {
	Chains    []MedialChain
	Transform TransformParams

	NumChains    int
	TotalPoints  int
	TotalLength  float64
	MinClearance float64
	MaxClearance float64

	Success      bool
	ErrorMessage string
	Warnings     []string
}

func failedResults(err error) MedialAxisResults {
	return MedialAxisResults{ErrorMessage: err.Error()}
}
