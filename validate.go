package vcarve

import (
	"errors"
	"fmt"
	"math"

	"github.com/chipcarve/vcarve/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// FailKind enumerates validation and pipeline failure categories.
type FailKind int

const (
	FailUnknown FailKind = iota
	FailInputTooSmall
	FailDuplicateVertex
	FailDegenerateEdge
	FailSelfIntersection
	FailZeroArea
	FailOutsideUnitDisk
	FailChainIncomplete
	FailMedialEngine
)

func (k FailKind) String() string {
	switch k {
	case FailInputTooSmall:
		return "InputTooSmall"
	case FailDuplicateVertex:
		return "DuplicateVertex"
	case FailDegenerateEdge:
		return "DegenerateEdge"
	case FailSelfIntersection:
		return "SelfIntersection"
	case FailZeroArea:
		return "ZeroArea"
	case FailOutsideUnitDisk:
		return "OutsideUnitDisk"
	case FailChainIncomplete:
		return "ChainIncomplete"
	case FailMedialEngine:
		return "MedialEngineFailure"
	default:
		return "Unknown"
	}
}

// ValidationError reports the first failing polygon check. Edges is set for
// self-intersections and names the offending edge index pair.
type ValidationError struct {
	Kind    FailKind
	Message string
	Edges   [2]int
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidationError unwraps err into a ValidationError, or returns nil.
func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

const (
	vertexTol       = 1e-10
	collinearityTol = 1e-10
	areaTol         = 1e-10
)

// ValidatePolygon runs the geometric checks gating the medial-axis engine
// on a raw world-coordinate polygon: vertex count, duplicate vertices,
// degenerate edges, self-intersection, non-zero area. A redundant closing
// vertex is stripped with a warning rather than rejected. Returns the
// cleaned polygon.
func ValidatePolygon(polygon []r2.Vec) ([]r2.Vec, []string, error) {
	var warnings []string
	n := len(polygon)
	if n >= 3 && d2.EqualWithin(polygon[0], polygon[n-1], vertexTol) {
		polygon = polygon[:n-1]
		n--
		warnings = append(warnings, "polygon was closed; dropped redundant final vertex")
	}
	if n < 3 {
		return nil, warnings, &ValidationError{
			Kind:    FailInputTooSmall,
			Message: fmt.Sprintf("polygon has %d vertices, need at least 3", n),
		}
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if d2.EqualWithin(polygon[i], polygon[j], vertexTol) {
			return nil, warnings, &ValidationError{
				Kind:    FailDuplicateVertex,
				Message: fmt.Sprintf("vertices %d and %d coincide", i, j),
			}
		}
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if r2.Norm(r2.Sub(polygon[j], polygon[i])) < vertexTol {
			return nil, warnings, &ValidationError{
				Kind:    FailDegenerateEdge,
				Message: fmt.Sprintf("edge %d has near-zero length", i),
			}
		}
	}
	if i, j, hit := findSelfIntersection(polygon); hit {
		return nil, warnings, &ValidationError{
			Kind:    FailSelfIntersection,
			Message: fmt.Sprintf("edges %d and %d intersect", i, j),
			Edges:   [2]int{i, j},
		}
	}
	if math.Abs(d2.SignedArea(d2.Set(polygon))) < areaTol {
		return nil, warnings, &ValidationError{
			Kind:    FailZeroArea,
			Message: "polygon area is zero; vertices are collinear",
		}
	}
	return polygon, warnings, nil
}

// CheckUnitDisk verifies every normalized vertex lies within the unit disk.
// Run after TransformToUnitDisk as an internal-consistency gate.
func CheckUnitDisk(normalized []r2.Vec) error {
	for i, p := range normalized {
		if r2.Norm(p) > 1.0 {
			return &ValidationError{
				Kind:    FailOutsideUnitDisk,
				Message: fmt.Sprintf("normalized vertex %d lies outside the unit disk", i),
			}
		}
	}
	return nil
}

// findSelfIntersection tests every non-adjacent edge pair, skipping the
// wrap-around pair (0, n-1).
func findSelfIntersection(polygon []r2.Vec) (int, int, bool) {
	n := len(polygon)
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			a1, a2 := polygon[i], polygon[(i+1)%n]
			b1, b2 := polygon[j], polygon[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// orientation returns +1/-1 for counter-clockwise/clockwise triples and 0
// when near-collinear.
func orientation(a, b, c r2.Vec) int {
	v := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if math.Abs(v) < collinearityTol {
		return 0
	}
	if v > 0 {
		return 1
	}
	return -1
}

func onSegment(a, b, p r2.Vec) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

func segmentsIntersect(a1, a2, b1, b2 r2.Vec) bool {
	o1 := orientation(a1, a2, b1)
	o2 := orientation(a1, a2, b2)
	o3 := orientation(b1, b2, a1)
	o4 := orientation(b1, b2, a2)
	if o1 != o2 && o3 != o4 {
		return true
	}
	// Collinear overlap cases.
	if o1 == 0 && onSegment(a1, a2, b1) {
		return true
	}
	if o2 == 0 && onSegment(a1, a2, b2) {
		return true
	}
	if o3 == 0 && onSegment(b1, b2, a1) {
		return true
	}
	if o4 == 0 && onSegment(b1, b2, a2) {
		return true
	}
	return false
}
