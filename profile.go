package vcarve

import (
	"github.com/chipcarve/vcarve/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// chainTol is the endpoint matching distance for curve chaining, in mm.
const chainTol = 0.01

// CurveSegment is one tessellated curve from the host sketch: an ordered
// polyline with at least two points. Reversed is set by the chainer when
// the segment had to be flipped to join the chain.
type CurveSegment struct {
	Points   []r2.Vec
	Reversed bool
}

// Start returns the first tessellated point.
func (s *CurveSegment) Start() r2.Vec {
	return s.Points[0]
}

// End returns the last tessellated point.
func (s *CurveSegment) End() r2.Vec {
	return s.Points[len(s.Points)-1]
}

// ChainSegments orders an unordered set of curve segments into one closed
// polygon by endpoint matching within 0.01 mm. Matching a segment's end
// flips it. Ties prefer a start match over an end match, then the lowest
// input index. Each chained segment contributes all but its last point; a
// closing duplicate of the first point is dropped.
//
// The returned flag reports whether every segment was consumed. On a gap
// the partial polygon is still returned; callers reject it downstream.
func ChainSegments(segments []CurveSegment) ([]r2.Vec, bool) {
	if len(segments) == 0 {
		return nil, false
	}
	used := make([]bool, len(segments))
	ordered := make([]CurveSegment, 0, len(segments))
	ordered = append(ordered, segments[0])
	used[0] = true
	currentEnd := segments[0].End()

	for range segments[1:] {
		next := -1
		reversed := false
		for i, s := range segments {
			if used[i] {
				continue
			}
			if d2.EqualWithin(s.Start(), currentEnd, chainTol) {
				next = i
				reversed = false
				break
			}
			if next < 0 && d2.EqualWithin(s.End(), currentEnd, chainTol) {
				next = i
				reversed = true
			}
		}
		if next < 0 {
			return concatenate(ordered), false
		}
		s := segments[next]
		if reversed {
			s = CurveSegment{Points: reversePoints(s.Points), Reversed: true}
		}
		ordered = append(ordered, s)
		used[next] = true
		currentEnd = s.End()
	}
	return concatenate(ordered), true
}

// concatenate joins chained segments into a polygon, eliding each segment's
// final point. The next segment re-contributes it as its first point.
func concatenate(ordered []CurveSegment) []r2.Vec {
	var polygon []r2.Vec
	for _, s := range ordered {
		polygon = append(polygon, s.Points[:len(s.Points)-1]...)
	}
	if n := len(polygon); n > 1 && d2.EqualWithin(polygon[0], polygon[n-1], vertexTol) {
		polygon = polygon[:n-1]
	}
	return polygon
}

func reversePoints(pts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
