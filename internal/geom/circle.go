package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroDirection is returned when a ray with a zero direction vector is
// intersected with a circle.
var ErrZeroDirection = errors.New("ray direction is zero")

// Circle is a disc with center Pos and Radius. Radius is expected to be
// non-negative; this is not enforced.
type Circle struct {
	Pos    Vector2
	Radius float64
}

// UnitCircle returns the circle of radius 1 centred on the origin.
func UnitCircle() Circle {
	return Circle{Radius: 1.0}
}

// Intersects reports whether the two circles overlap. Touching counts.
func (c Circle) Intersects(other Circle) bool {
	return c.Pos.DistanceTo(other.Pos) <= c.Radius+other.Radius
}

// ContainsCircle reports whether other lies inside c.
//
// The test is directional: it compares the center distance against
// c.Radius - other.Radius, so it is only meaningful when c is the larger
// circle. A smaller c never contains a larger other, and a.ContainsCircle(b)
// says nothing about b.ContainsCircle(a) unless the radii are equal.
func (c Circle) ContainsCircle(other Circle) bool {
	return c.Pos.DistanceTo(other.Pos) <= c.Radius-other.Radius
}

// ContainsPoint reports whether p is inside c or on its border.
func (c Circle) ContainsPoint(p Vector2) bool {
	return c.Pos.DistanceTo(p) <= c.Radius
}

// IntersectRay returns the points where ray crosses the circle border.
//
// Substituting Origin + t*Direction into |P - Pos|^2 = Radius^2 gives a
// quadratic in t. Roots with t < 0 lie behind the origin and are dropped;
// the rest are returned in solver order.
func (c Circle) IntersectRay(ray Ray) ([]Vector2, error) {
	if ray.Direction == (Vector2{}) {
		return nil, fmt.Errorf("intersect %s: %w", c, ErrZeroDirection)
	}

	dir := ray.Direction
	diff := ray.Origin.Sub(c.Pos)

	roots, err := SolveQuadratic(
		dir.Dot(dir),
		2*dir.Dot(diff),
		diff.Dot(diff)-c.Radius*c.Radius,
	)
	if err != nil {
		return nil, fmt.Errorf("intersect %s: %w", c, err)
	}

	var points []Vector2
	for _, t := range roots {
		if t >= 0 {
			points = append(points, ray.At(t))
		}
	}
	return points, nil
}

// Translate returns c moved by v.
func (c Circle) Translate(v Vector2) Circle {
	return Circle{Pos: c.Pos.Add(v), Radius: c.Radius}
}

// IsEqual reports whether other has the same center and radius within
// Epsilon. A nil other is never equal.
func (c Circle) IsEqual(other *Circle) bool {
	if other == nil {
		return false
	}
	return c.Pos.IsEqual(other.Pos) && math.Abs(c.Radius-other.Radius) < Epsilon
}

func (c Circle) String() string {
	return fmt.Sprintf("circle %s r=%g", c.Pos, c.Radius)
}
