// Package regression fits quadratic curves to sampled data with closed-form
// Bayesian linear regression.
package regression

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Basis size: y = c0 + c1*x + c2*x^2.
const numCoefficients = 3

var (
	// ErrLengthMismatch is returned when x and y samples differ in length.
	ErrLengthMismatch = errors.New("x and y lengths differ")
	// ErrSingularCovariance is returned when the posterior precision
	// matrix cannot be inverted, e.g. fewer than three distinct x values
	// with a flat prior.
	ErrSingularCovariance = errors.New("posterior covariance is singular")
)

// Gaussian is a distribution over the quadratic coefficients [c0, c1, c2].
//
// Cov plays the role of the precision term in the update: the posterior
// Cov is X^T X plus the prior Cov. A zero Cov is a flat prior.
type Gaussian struct {
	Mean [numCoefficients]float64
	Cov  [numCoefficients][numCoefficients]float64
}

// Predict evaluates the mean curve at x.
func (g Gaussian) Predict(x float64) float64 {
	return g.Mean[0] + g.Mean[1]*x + g.Mean[2]*x*x
}

func (g Gaussian) meanVec() *mat.VecDense {
	return mat.NewVecDense(numCoefficients, append([]float64(nil), g.Mean[:]...))
}

func (g Gaussian) covDense() *mat.Dense {
	data := make([]float64, 0, numCoefficients*numCoefficients)
	for _, row := range g.Cov {
		data = append(data, row[:]...)
	}
	return mat.NewDense(numCoefficients, numCoefficients, data)
}

// QuadraticRegression returns the posterior over the coefficients of
// y = c0 + c1*x + c2*x^2 given samples (xs, ys).
//
// A nil prior is the flat prior (zero mean, zero covariance), which reduces
// the result to ordinary least squares. Each call recomputes from scratch.
func QuadraticRegression(prior *Gaussian, xs, ys []float64) (Gaussian, error) {
	if len(xs) != len(ys) {
		return Gaussian{}, fmt.Errorf("%w: %d x values, %d y values", ErrLengthMismatch, len(xs), len(ys))
	}
	if prior == nil {
		prior = &Gaussian{}
	}

	priorCov := prior.covDense()

	var cov mat.Dense
	var rhs mat.VecDense
	rhs.MulVec(priorCov, prior.meanVec())

	if n := len(xs); n > 0 {
		design := mat.NewDense(n, numCoefficients, nil)
		for i, x := range xs {
			design.SetRow(i, []float64{1.0, x, x * x})
		}
		cov.Mul(design.T(), design)
		cov.Add(&cov, priorCov)

		var xty mat.VecDense
		xty.MulVec(design.T(), mat.NewVecDense(n, append([]float64(nil), ys...)))
		rhs.AddVec(&rhs, &xty)
	} else {
		cov.CloneFrom(priorCov)
	}

	var inv mat.Dense
	if err := inv.Inverse(&cov); err != nil {
		return Gaussian{}, fmt.Errorf("%w: %v", ErrSingularCovariance, err)
	}

	var mean mat.VecDense
	mean.MulVec(&inv, &rhs)

	var posterior Gaussian
	for i := 0; i < numCoefficients; i++ {
		posterior.Mean[i] = mean.AtVec(i)
		for j := 0; j < numCoefficients; j++ {
			posterior.Cov[i][j] = cov.At(i, j)
		}
	}
	return posterior, nil
}
