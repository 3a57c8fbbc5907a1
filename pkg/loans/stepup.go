package loans

import (
	"math"

	"github.com/iwvelando/home-finance/pkg/constants"
	"github.com/iwvelando/home-finance/pkg/mathutil"
	"go.uber.org/zap"
)

// maxBoundExpansions caps how often the upper bound doubles when it does not
// overpay the loan.
const maxBoundExpansions = 20

// Limits of the search over the rounded schedule. The bracket starts at most
// a principal wide, so the width falls below the tolerance well within the
// iteration cap.
const (
	maxRoundedIterations = 100
	roundedTolerance     = 1e-6
)

// StepUpOptions configures the step-up first payment search.
type StepUpOptions struct {
	AnnualGrowth    float64
	MaxIterations   int
	Tolerance       float64
	LowerMultiplier float64
	UpperMultiplier float64
}

// DefaultStepUpOptions returns the default step-up search parameters.
func DefaultStepUpOptions() StepUpOptions {
	return StepUpOptions{
		AnnualGrowth:    constants.DefaultStepUpAnnualGrowth,
		MaxIterations:   constants.DefaultBisectionIterations,
		Tolerance:       constants.DefaultBisectionTolerance,
		LowerMultiplier: constants.DefaultStepUpLowerMultiplier,
		UpperMultiplier: constants.DefaultStepUpUpperMultiplier,
	}
}

func (o StepUpOptions) normalized() StepUpOptions {
	defaults := DefaultStepUpOptions()
	if o.AnnualGrowth < 0 || math.IsNaN(o.AnnualGrowth) {
		o.AnnualGrowth = 0
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaults.MaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = defaults.Tolerance
	}
	if o.LowerMultiplier <= 0 {
		o.LowerMultiplier = defaults.LowerMultiplier
	}
	if o.UpperMultiplier <= o.LowerMultiplier {
		o.UpperMultiplier = math.Max(defaults.UpperMultiplier, 2*o.LowerMultiplier)
	}
	return o
}

// PeriodGrowth converts an annual growth rate into the period-over-period
// payment multiplier.
func PeriodGrowth(annualGrowth float64) float64 {
	if annualGrowth <= 0 {
		return 1
	}
	return math.Pow(1+annualGrowth, 1.0/constants.MonthsPerYear)
}

// StepUpResidual simulates a step-up loan without rounding and returns the
// balance left after the final scheduled payment. Positive means the first
// payment is too low, negative means it overpays. A balance that overflows is
// reported as +Inf.
func StepUpResidual(principal, annualRate float64, termMonths int, growth, firstPayment float64) float64 {
	r := annualRate / constants.MonthsPerYear
	balance := principal
	payment := firstPayment
	for period := 1; period <= termMonths; period++ {
		balance = balance*(1+r) - payment
		if math.IsNaN(balance) || math.IsInf(balance, 0) {
			return math.Inf(1)
		}
		payment *= growth
	}
	return balance
}

// SolveStepUpFirstPayment finds the first payment that exactly amortizes a
// step-up loan by bisection between multiples of the equal-payment baseline.
func SolveStepUpFirstPayment(principal, annualRate float64, termMonths int, opts StepUpOptions) Convergence {
	opts = opts.normalized()
	if principal <= 0 || termMonths <= 0 {
		return Convergence{Converged: true}
	}

	growth := PeriodGrowth(opts.AnnualGrowth)
	objective := func(first float64) float64 {
		return StepUpResidual(principal, annualRate, termMonths, growth, first)
	}

	baseline := Payment(principal, annualRate, termMonths)
	lo := baseline * opts.LowerMultiplier
	if objective(lo) <= 0 {
		lo = 0
	}
	hi := baseline * opts.UpperMultiplier
	for i := 0; i < maxBoundExpansions && objective(hi) > 0; i++ {
		hi *= 2
	}

	found := mathutil.Bisect(objective, lo, hi, mathutil.BisectOptions{
		MaxIterations: opts.MaxIterations,
		Tolerance:     opts.Tolerance,
	})
	return Convergence{
		FirstPayment: found.Root,
		Residual:     found.Residual,
		Iterations:   found.Iterations,
		Converged:    found.Converged,
	}
}

func (g *ScheduleGenerator) stepUpSchedule(principal, annualRate float64, termMonths int, opts StepUpOptions) AmortizationResult {
	solved := SolveStepUpFirstPayment(principal, annualRate, termMonths, opts)
	if !solved.Converged {
		g.logger.Warn("step-up first payment search did not converge",
			zap.String("op", "loans.stepUpSchedule"),
			zap.Float64("principal", principal),
			zap.Int("termMonths", termMonths),
			zap.Float64("residual", solved.Residual),
			zap.Int("iterations", solved.Iterations),
		)
	} else {
		g.logger.Debug("step-up first payment converged",
			zap.String("op", "loans.stepUpSchedule"),
			zap.Float64("firstPayment", solved.FirstPayment),
			zap.Float64("residual", solved.Residual),
			zap.Int("iterations", solved.Iterations),
		)
	}

	growth := PeriodGrowth(opts.normalized().AnnualGrowth)
	first := RoundedFirstPayment(principal, annualRate, termMonths, growth, solved.FirstPayment)
	rows := amortize(principal, annualRate, termMonths, func(period int, _ float64) float64 {
		return scheduledPayment(first, growth, period)
	})

	result := Summarize(StepUp, rows)
	result.Convergence = &solved
	return result
}

// scheduledPayment is the rounded payment due in a period of a step-up loan.
// Non-finite payments are reported as +Inf so they always overpay.
func scheduledPayment(first, growth float64, period int) float64 {
	payment := first * math.Pow(growth, float64(period-1))
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return math.Inf(1)
	}
	return mathutil.RoundCurrency(payment)
}

// RoundedStepUpResidual simulates a step-up loan with the same whole-unit
// rounding the schedule uses and returns the balance left after the final
// scheduled payment, before any final-period absorption.
func RoundedStepUpResidual(principal, annualRate float64, termMonths int, growth, firstPayment float64) float64 {
	balance := principal
	for period := 1; period <= termMonths; period++ {
		payment := scheduledPayment(firstPayment, growth, period)
		if math.IsInf(payment, 1) {
			return math.Inf(-1)
		}
		balance += PeriodInterest(balance, annualRate) - payment
		if math.IsInf(balance, 1) || math.IsNaN(balance) {
			return math.Inf(1)
		}
	}
	return balance
}

// RoundedFirstPayment returns the largest first payment whose rounded
// schedule leaves a non-negative residual. Balances then stay non-negative
// until the final period, which absorbs the residual on top of its scheduled
// payment, so payments never decrease. estimate narrows the initial bracket.
func RoundedFirstPayment(principal, annualRate float64, termMonths int, growth, estimate float64) float64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}
	residual := func(first float64) float64 {
		return RoundedStepUpResidual(principal, annualRate, termMonths, growth, first)
	}

	// A zero payment never retires the loan; a first payment above the
	// balance plus interest overpays in the first period.
	lo := 0.0
	hi := principal + PeriodInterest(principal, annualRate) + constants.CurrencyUnit
	if estimate > lo && estimate < hi {
		if residual(estimate) >= 0 {
			lo = estimate
		} else {
			hi = estimate
		}
	}

	for i := 0; i < maxRoundedIterations && hi-lo > roundedTolerance; i++ {
		mid := lo + (hi-lo)/2
		if residual(mid) >= 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
