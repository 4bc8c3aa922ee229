package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

func Elem(sides float64) r2.Vec {
	return r2.Vec{
		X: sides,
		Y: sides,
	}
}

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

func AbsElem(a r2.Vec) r2.Vec {
	return r2.Vec{
		X: math.Abs(a.X),
		Y: math.Abs(a.Y),
	}
}

func Max(a r2.Vec) float64 {
	return math.Max(a.X, a.Y)
}

func Min(a r2.Vec) float64 {
	return math.Min(a.X, a.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}

// Perp returns the unit vector perpendicular to a (rotated +90 degrees).
// Returns the zero vector when a is shorter than tol.
func Perp(a r2.Vec, tol float64) r2.Vec {
	n := r2.Norm(a)
	if n < tol {
		return r2.Vec{}
	}
	return r2.Vec{X: -a.Y / n, Y: a.X / n}
}

// Rotate rotates p by alpha radians about center.
func Rotate(p, center r2.Vec, alpha float64) r2.Vec {
	sin, cos := math.Sincos(alpha)
	q := r2.Sub(p, center)
	return r2.Add(center, r2.Vec{
		X: q.X*cos - q.Y*sin,
		Y: q.X*sin + q.Y*cos,
	})
}

type Set []r2.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r2.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r2.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Length returns the polyline length of the set.
func (a Set) Length() float64 {
	l := 0.0
	for i := 1; i < len(a); i++ {
		l += r2.Norm(r2.Sub(a[i], a[i-1]))
	}
	return l
}

// SignedArea returns the signed area of the implicitly closed polygon a.
// Positive area means counter-clockwise winding.
func SignedArea(a Set) float64 {
	area := 0.0
	n := len(a)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += a[i].X*a[j].Y - a[j].X*a[i].Y
	}
	return area / 2
}

// SegmentDistance returns the distance from p to segment ab.
func SegmentDistance(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	t := clamp(r2.Dot(r2.Sub(p, a), ab)/l2, 0, 1)
	proj := r2.Add(a, r2.Scale(t, ab))
	return r2.Norm(r2.Sub(p, proj))
}

// Lerp linearly interpolates between a (t=0) and b (t=1).
func Lerp(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Clamp x between a and b, assume a <= b
func clamp(x, a, b float64) float64 {
	return math.Min(b, math.Max(x, a))
}
