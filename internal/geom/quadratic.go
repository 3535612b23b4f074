package geom

import (
	"errors"
	"math"
)

// ErrNotQuadratic is returned by SolveQuadratic when the leading
// coefficient is zero.
var ErrNotQuadratic = errors.New("leading coefficient is zero")

// SolveQuadratic returns the real roots of a*x^2 + b*x + c = 0.
//
// A discriminant within Epsilon of zero yields the single repeated root.
// Otherwise two roots are returned with (-b + sqrt(d)) / 2a first.
func SolveQuadratic(a, b, c float64) ([]float64, error) {
	if a == 0 {
		return nil, ErrNotQuadratic
	}

	det := b*b - 4*a*c
	switch {
	case det < 0:
		return nil, nil
	case math.Abs(det) < Epsilon:
		return []float64{-b / (2 * a)}, nil
	default:
		sqrtDet := math.Sqrt(det)
		return []float64{
			(-b + sqrtDet) / (2 * a),
			(-b - sqrtDet) / (2 * a),
		}, nil
	}
}
