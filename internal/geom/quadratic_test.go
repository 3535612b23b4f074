package geom

import (
	"errors"
	"testing"
)

func TestSolveQuadratic(t *testing.T) {
	testCases := []struct {
		name     string
		a, b, c  float64
		expected []float64
	}{
		{"no_real_roots", 1, 0, 1, nil},
		{"repeated_root", 1, 2, 1, []float64{-1}},
		{"two_roots_plus_first", 1, -3, 2, []float64{2, 1}},
		{"negative_leading", -1, 0, 4, []float64{-2, 2}},
		{"scaled", 2, 0, -8, []float64{2, -2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := SolveQuadratic(tc.a, tc.b, tc.c)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(result) != len(tc.expected) {
				t.Fatalf("Length mismatch: expected %v, got %v", tc.expected, result)
			}
			for i, v := range result {
				if v != tc.expected[i] {
					t.Errorf("Root %d: expected %f, got %f", i, tc.expected[i], v)
				}
			}
		})
	}
}

func TestSolveQuadraticNearZeroDiscriminant(t *testing.T) {
	// d = 4 - 4*(1 - 1e-8) = 4e-8, inside Epsilon.
	result, err := SolveQuadratic(1, 2, 1-1e-8)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result) != 1 || result[0] != -1 {
		t.Errorf("expected single root -1, got %v", result)
	}
}

func TestSolveQuadraticZeroLeadingCoefficient(t *testing.T) {
	if _, err := SolveQuadratic(0, 1, 1); !errors.Is(err, ErrNotQuadratic) {
		t.Errorf("expected ErrNotQuadratic, got %v", err)
	}
}
