package mathutil

import (
	"math"
	"testing"
)

func TestBisect(t *testing.T) {
	tests := []struct {
		name      string
		f         func(float64) float64
		lo, hi    float64
		opts      BisectOptions
		wantRoot  float64
		rootTol   float64
		converged bool
	}{
		{
			name:      "Increasing linear",
			f:         func(x float64) float64 { return x - 42 },
			lo:        0,
			hi:        100,
			opts:      BisectOptions{MaxIterations: 60, Tolerance: 1e-6},
			wantRoot:  42,
			rootTol:   1e-6,
			converged: true,
		},
		{
			name:      "Decreasing objective",
			f:         func(x float64) float64 { return 1000 - 10*x },
			lo:        0,
			hi:        500,
			opts:      BisectOptions{MaxIterations: 60, Tolerance: 1e-6},
			wantRoot:  100,
			rootTol:   1e-6,
			converged: true,
		},
		{
			name:      "Swapped bounds",
			f:         func(x float64) float64 { return x*x - 2 },
			lo:        2,
			hi:        0,
			opts:      BisectOptions{MaxIterations: 80, Tolerance: 1e-9},
			wantRoot:  math.Sqrt2,
			rootTol:   1e-6,
			converged: true,
		},
		{
			name: "Divergent side treated as infinite",
			f: func(x float64) float64 {
				if x < 10 {
					return math.NaN()
				}
				return 20 - x
			},
			lo:        0,
			hi:        40,
			opts:      BisectOptions{MaxIterations: 60, Tolerance: 1e-6},
			wantRoot:  20,
			rootTol:   1e-6,
			converged: true,
		},
		{
			name:      "Root at lower bound",
			f:         func(x float64) float64 { return x },
			lo:        0,
			hi:        10,
			opts:      BisectOptions{Tolerance: 0},
			wantRoot:  0,
			rootTol:   0,
			converged: true,
		},
		{
			name:      "No bracket returns closest endpoint",
			f:         func(x float64) float64 { return x + 1 },
			lo:        1,
			hi:        5,
			opts:      BisectOptions{MaxIterations: 60, Tolerance: 1e-6},
			wantRoot:  1,
			rootTol:   0,
			converged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Bisect(tt.f, tt.lo, tt.hi, tt.opts)
			if result.Converged != tt.converged {
				t.Errorf("Bisect() converged = %v, expected %v", result.Converged, tt.converged)
			}
			if math.Abs(result.Root-tt.wantRoot) > tt.rootTol {
				t.Errorf("Bisect() root = %v, expected %v", result.Root, tt.wantRoot)
			}
			if result.Iterations > tt.opts.MaxIterations && tt.opts.MaxIterations > 0 {
				t.Errorf("Bisect() iterations = %d exceeds limit %d", result.Iterations, tt.opts.MaxIterations)
			}
		})
	}
}

func TestBisectStopsAtIterationLimit(t *testing.T) {
	calls := 0
	result := Bisect(func(x float64) float64 {
		calls++
		return x - 1.0/3.0
	}, 0, 1, BisectOptions{MaxIterations: 5, Tolerance: 0})

	if result.Iterations != 5 {
		t.Errorf("Bisect() iterations = %d, expected 5", result.Iterations)
	}
	if result.Converged {
		t.Errorf("Bisect() converged unexpectedly")
	}
	if calls != 7 {
		t.Errorf("objective evaluated %d times, expected 7", calls)
	}
}
