package surface

import (
	"github.com/fogleman/fauxgl"
	"gonum.org/v1/gonum/spatial/r3"
)

// NewMeshFromFauxGL indexes a fauxgl mesh under the given surface id.
// Useful for synthetic surfaces built from fauxgl primitives.
func NewMeshFromFauxGL(id string, m *fauxgl.Mesh) *Mesh {
	tris := make([]Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		tris[i] = Triangle{
			vec(t.V1.Position),
			vec(t.V2.Position),
			vec(t.V3.Position),
		}
	}
	return NewMesh(id, tris)
}

func vec(v fauxgl.Vector) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
