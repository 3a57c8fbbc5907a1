package mathutil

import "math"

// BisectOptions bounds a bisection search.
type BisectOptions struct {
	MaxIterations int
	// Tolerance is the acceptable |f(x)| at the returned root.
	Tolerance float64
}

// BisectResult captures the outcome of a bisection search.
type BisectResult struct {
	Root       float64
	Residual   float64
	Iterations int
	Converged  bool
}

// Bisect searches [lo, hi] for a root of f. f(lo) and f(hi) must have
// opposite signs; either orientation is accepted. Non-finite values of f are
// treated as +Inf, so an objective that diverges on one side still brackets.
// When the bounds do not bracket a root the endpoint with the smaller
// |f| is returned unconverged.
func Bisect(f func(float64) float64, lo, hi float64, opts BisectOptions) BisectResult {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 60
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	eval := func(x float64) float64 {
		v := f(x)
		if math.IsNaN(v) {
			return math.Inf(1)
		}
		return v
	}

	fLo, fHi := eval(lo), eval(hi)
	if math.Abs(fLo) <= opts.Tolerance {
		return BisectResult{Root: lo, Residual: fLo, Converged: true}
	}
	if math.Abs(fHi) <= opts.Tolerance {
		return BisectResult{Root: hi, Residual: fHi, Converged: true}
	}
	if sign(fLo) == sign(fHi) {
		if math.Abs(fLo) < math.Abs(fHi) {
			return BisectResult{Root: lo, Residual: fLo}
		}
		return BisectResult{Root: hi, Residual: fHi}
	}

	result := BisectResult{Root: hi, Residual: fHi}
	for result.Iterations < opts.MaxIterations {
		mid := lo + (hi-lo)/2
		fMid := eval(mid)
		result.Iterations++
		result.Root, result.Residual = mid, fMid
		if math.Abs(fMid) <= opts.Tolerance {
			result.Converged = true
			return result
		}
		if mid == lo || mid == hi {
			break
		}
		if sign(fMid) == sign(fLo) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return result
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
