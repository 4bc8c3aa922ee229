package vcarve

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestChainSegments(t *testing.T) {
	segments := []CurveSegment{
		{Points: []r2.Vec{{X: 0, Y: 0}, {X: 5, Y: -1}, {X: 10, Y: 0}}},
		{Points: []r2.Vec{{X: 5, Y: 8.66}, {X: 8, Y: 4}, {X: 10, Y: 0}}},
		{Points: []r2.Vec{{X: 5, Y: 8.66}, {X: 2, Y: 4}, {X: 0, Y: 0}}},
	}
	polygon, complete := ChainSegments(segments)
	if !complete {
		t.Fatal("chain reported incomplete")
	}
	want := []r2.Vec{
		{X: 0, Y: 0}, {X: 5, Y: -1},
		{X: 10, Y: 0}, {X: 8, Y: 4},
		{X: 5, Y: 8.66}, {X: 2, Y: 4},
	}
	if len(polygon) != len(want) {
		t.Fatalf("polygon has %d vertices, want %d: %v", len(polygon), len(want), polygon)
	}
	for i := range want {
		if polygon[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, polygon[i], want[i])
		}
	}
}

func TestChainSegmentsGap(t *testing.T) {
	segments := []CurveSegment{
		{Points: []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}}},
		{Points: []r2.Vec{{X: 5, Y: 5}, {X: 6, Y: 5}}},
	}
	_, complete := ChainSegments(segments)
	if complete {
		t.Error("disjoint segments reported as a complete chain")
	}
}

func TestChainSegmentsPrefersStartMatch(t *testing.T) {
	// Both remaining segments touch (1, 0); the start-matching one must win
	// even though the end-matching one has the lower index.
	segments := []CurveSegment{
		{Points: []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}}},
		{Points: []r2.Vec{{X: 2, Y: 0}, {X: 1.5, Y: 1}, {X: 1, Y: 0}}},
		{Points: []r2.Vec{{X: 1, Y: 0}, {X: 1.5, Y: -1}, {X: 2, Y: 0}}},
	}
	polygon, complete := ChainSegments(segments)
	if !complete {
		t.Fatal("chain reported incomplete")
	}
	if len(polygon) < 3 {
		t.Fatalf("short polygon %v", polygon)
	}
	if polygon[2] != (r2.Vec{X: 1.5, Y: -1}) {
		t.Errorf("third vertex = %v, want the start-matched segment's midpoint", polygon[2])
	}
}

func TestChainSegmentsEmpty(t *testing.T) {
	if _, complete := ChainSegments(nil); complete {
		t.Error("empty input reported complete")
	}
}

func TestCurveSegmentEndpoints(t *testing.T) {
	s := CurveSegment{Points: []r2.Vec{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}}
	if s.Start() != (r2.Vec{X: 1, Y: 2}) || s.End() != (r2.Vec{X: 5, Y: 6}) {
		t.Errorf("endpoints %v %v", s.Start(), s.End())
	}
}
