package surface

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chipcarve/vcarve"
	"github.com/dhconnelly/rtreego"
	"github.com/fogleman/fauxgl"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh must satisfy both the toolpath synthesizer's oracle contract and the
// R-tree's entry contract.
var (
	_ vcarve.SurfaceZOracle = (*Mesh)(nil)
	_ rtreego.Spatial       = (*indexedTriangle)(nil)
)

// plate returns a flat two-triangle surface at the given height covering
// [0, 50] x [-50, 0].
func plate(id string, z float64) *Mesh {
	a := r3.Vec{X: 0, Y: -50, Z: z}
	b := r3.Vec{X: 50, Y: -50, Z: z}
	c := r3.Vec{X: 50, Y: 0, Z: z}
	d := r3.Vec{X: 0, Y: 0, Z: z}
	return NewMesh(id, []Triangle{{a, b, c}, {a, c, d}})
}

func TestMeshFlatPlate(t *testing.T) {
	m := plate("plate", 37)
	if m.NumTriangles() != 2 {
		t.Fatalf("indexed %d triangles, want 2", m.NumTriangles())
	}
	if z := m.QueryZAtXY("plate", 20, -30); math.Abs(z-37) > 1e-9 {
		t.Errorf("z = %v, want 37", z)
	}
	// Empty id matches any mesh.
	if z := m.QueryZAtXY("", 20, -30); math.Abs(z-37) > 1e-9 {
		t.Errorf("wildcard query z = %v, want 37", z)
	}
	if z := m.QueryZAtXY("other", 20, -30); !math.IsNaN(z) {
		t.Errorf("mismatched surface id answered %v, want NaN", z)
	}
	if z := m.QueryZAtXY("plate", 200, 200); !math.IsNaN(z) {
		t.Errorf("miss answered %v, want NaN", z)
	}
}

func TestMeshSlopedTriangle(t *testing.T) {
	// Plane z = x.
	m := NewMesh("slope", []Triangle{{
		r3.Vec{X: 0, Y: 0, Z: 0},
		r3.Vec{X: 10, Y: 0, Z: 10},
		r3.Vec{X: 0, Y: 10, Z: 0},
	}})
	if z := m.QueryZAtXY("slope", 2, 2); math.Abs(z-2) > 1e-9 {
		t.Errorf("z = %v, want 2", z)
	}
	if z := m.QueryZAtXY("slope", 9, 9); !math.IsNaN(z) {
		t.Errorf("point outside the facet answered %v", z)
	}
}

func TestMeshTopmostWins(t *testing.T) {
	m := NewMesh("stack", []Triangle{
		{r3.Vec{X: 0, Y: 0, Z: 5}, r3.Vec{X: 10, Y: 0, Z: 5}, r3.Vec{X: 0, Y: 10, Z: 5}},
		{r3.Vec{X: 0, Y: 0, Z: 12}, r3.Vec{X: 10, Y: 0, Z: 12}, r3.Vec{X: 0, Y: 10, Z: 12}},
	})
	if z := m.QueryZAtXY("stack", 2, 2); math.Abs(z-12) > 1e-9 {
		t.Errorf("z = %v, want the upper facet at 12", z)
	}
}

func TestMeshSkipsVerticalTriangles(t *testing.T) {
	m := NewMesh("wall", []Triangle{{
		r3.Vec{X: 0, Y: 0, Z: 0},
		r3.Vec{X: 10, Y: 0, Z: 0},
		r3.Vec{X: 5, Y: 0, Z: 10},
	}})
	if m.NumTriangles() != 0 {
		t.Errorf("vertical facet indexed")
	}
}

func TestMeshFromFauxGL(t *testing.T) {
	cube := fauxgl.NewCube()
	m := NewMeshFromFauxGL("cube", cube)
	if m.NumTriangles() == 0 {
		t.Fatal("no facets indexed from the fauxgl cube")
	}
	// The top face must answer above the cube center, whatever the cube's
	// native extents are.
	top := math.Inf(-1)
	for _, tr := range cube.Triangles {
		for _, v := range []fauxgl.Vector{tr.V1.Position, tr.V2.Position, tr.V3.Position} {
			top = math.Max(top, v.Z)
		}
	}
	if z := m.QueryZAtXY("cube", 0, 0); math.Abs(z-top) > 1e-9 {
		t.Errorf("z above cube center = %v, want top face %v", z, top)
	}
}

func TestLoadSTL(t *testing.T) {
	const ascii = `solid plate
facet normal 0 0 1
  outer loop
    vertex 0 0 7
    vertex 10 0 7
    vertex 10 10 7
  endloop
endfacet
facet normal 0 0 1
  outer loop
    vertex 0 0 7
    vertex 10 10 7
    vertex 0 10 7
  endloop
endfacet
endsolid plate
`
	path := filepath.Join(t.TempDir(), "plate.stl")
	if err := os.WriteFile(path, []byte(ascii), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadSTL("plate", path)
	if err != nil {
		t.Fatal(err)
	}
	if m.NumTriangles() != 2 {
		t.Fatalf("loaded %d triangles, want 2", m.NumTriangles())
	}
	if z := m.QueryZAtXY("plate", 5, 5); math.Abs(z-7) > 1e-6 {
		t.Errorf("z = %v, want 7", z)
	}
}

func TestLoadSTLMissingFile(t *testing.T) {
	if _, err := LoadSTL("x", filepath.Join(t.TempDir(), "nope.stl")); err == nil {
		t.Error("missing file accepted")
	}
}
