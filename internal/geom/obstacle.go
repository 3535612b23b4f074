package geom

// Obstacle is anything the simulated beam can hit.
//
// IntersectRay returns the intersection points ordered as the primitive
// computes them, between zero and two entries. Points behind the ray origin
// are never returned.
type Obstacle interface {
	IntersectRay(ray Ray) ([]Vector2, error)
}

var (
	_ Obstacle = Circle{}
	_ Obstacle = LineSegment{}
)
