package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chipcarve/vcarve"
	"gonum.org/v1/gonum/spatial/r2"
)

func sampleResults() ([]r2.Vec, vcarve.MedialAxisResults) {
	polygon := []r2.Vec{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 10}, {X: 0, Y: 10}}
	res := vcarve.MedialAxisResults{
		Chains: []vcarve.MedialChain{{
			Positions:  []r2.Vec{{X: 5, Y: 5}, {X: 25, Y: 5}},
			Clearances: []float64{5, 5},
		}},
		Success: true,
	}
	return polygon, res
}

func TestSVG(t *testing.T) {
	polygon, res := sampleResults()
	var buf bytes.Buffer
	err := SVG(&buf, polygon, &res, Options{})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("output is not an SVG document")
	}
	if buf.Len() < 200 {
		t.Errorf("suspiciously small SVG: %d bytes", buf.Len())
	}
}

func TestSVGWithDecorations(t *testing.T) {
	polygon, res := sampleResults()
	var plain, decorated bytes.Buffer
	if err := SVG(&plain, polygon, &res, Options{}); err != nil {
		t.Fatal(err)
	}
	err := SVG(&decorated, polygon, &res, Options{ClearanceCircles: true, CrossSize: 3})
	if err != nil {
		t.Fatal(err)
	}
	if decorated.Len() <= plain.Len() {
		t.Error("decorations did not add any geometry")
	}
}

func TestSVGRejectsDegeneratePolygon(t *testing.T) {
	_, res := sampleResults()
	var buf bytes.Buffer
	if err := SVG(&buf, []r2.Vec{{X: 0, Y: 0}}, &res, Options{}); err == nil {
		t.Error("degenerate polygon accepted")
	}
}
