package surface

import (
	"fmt"

	"github.com/hschendel/stl"
	"gonum.org/v1/gonum/spatial/r3"
)

// LoadSTL reads a binary or ASCII STL file and indexes it as a Mesh under
// the given surface id. STL coordinates are taken as millimeters.
func LoadSTL(id, path string) (*Mesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stl %q: %w", path, err)
	}
	tris := make([]Triangle, len(solid.Triangles))
	for i, t := range solid.Triangles {
		for v := 0; v < 3; v++ {
			tris[i][v] = r3.Vec{
				X: float64(t.Vertices[v][0]),
				Y: float64(t.Vertices[v][1]),
				Z: float64(t.Vertices[v][2]),
			}
		}
	}
	return NewMesh(id, tris), nil
}
