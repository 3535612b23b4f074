package geom

import (
	"fmt"
	"math"
)

// LineSegment is the closed segment between Start and End. Equality does
// not depend on direction.
type LineSegment struct {
	Start Vector2
	End   Vector2
}

// IntersectRay returns the single point where ray crosses the segment, if
// any.
//
// Both lines are written parametrically and solved with 2D cross products:
// u is the ray parameter and t the fraction along the segment. A hit needs
// u >= 0 and 0 <= t <= 1.
//
// A ray lying on the segment's own line yields no intersection, the same as
// a parallel ray. Sensor beams grazing along a wall are not resolved to a
// nearest point.
func (s LineSegment) IntersectRay(ray Ray) ([]Vector2, error) {
	d1 := s.End.Sub(s.Start)
	d2 := ray.Direction

	denom := d1.Cross(d2)
	diff := ray.Origin.Sub(s.Start)
	num := diff.Cross(d1)

	if math.Abs(denom) < Epsilon {
		// Parallel, whether or not num is also zero (collinear).
		return nil, nil
	}

	u := num / denom
	t := diff.Cross(d2) / denom
	if u >= 0 && t >= 0 && t <= 1 {
		return []Vector2{ray.At(u)}, nil
	}
	return nil, nil
}

func (s LineSegment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// Translate returns s moved by v.
func (s LineSegment) Translate(v Vector2) LineSegment {
	return LineSegment{Start: s.Start.Add(v), End: s.End.Add(v)}
}

// IsEqual reports whether other has the same endpoints in either order.
// A nil other is never equal.
func (s LineSegment) IsEqual(other *LineSegment) bool {
	if other == nil {
		return false
	}
	same := s.Start.IsEqual(other.Start) && s.End.IsEqual(other.End)
	swapped := s.Start.IsEqual(other.End) && s.End.IsEqual(other.Start)
	return same || swapped
}

func (s LineSegment) String() string {
	return fmt.Sprintf("segment %s -> %s", s.Start, s.End)
}
