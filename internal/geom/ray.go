package geom

// Ray is the half-line Origin + t*Direction, t >= 0.
// Direction does not have to be unit length but must be non-zero.
type Ray struct {
	Origin    Vector2
	Direction Vector2
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vector2 {
	return r.Origin.Add(r.Direction.Scale(t))
}
