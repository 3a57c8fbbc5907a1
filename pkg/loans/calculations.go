// Package loans provides the amortization schedule engine.
package loans

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/home-finance/pkg/constants"
	"github.com/iwvelando/home-finance/pkg/mathutil"
	"go.uber.org/zap"
)

// Structure identifies a repayment structure.
type Structure string

// Supported repayment structures.
const (
	EqualPayment   Structure = "equal-payment"
	EqualPrincipal Structure = "equal-principal"
	Bullet         Structure = "bullet"
	StepUp         Structure = "step-up"
)

// ErrUnknownStructure is returned when a repayment structure name is not recognized.
var ErrUnknownStructure = errors.New("unknown repayment structure")

// ParseStructure maps a configured name onto a Structure. An empty name
// selects EqualPayment.
func ParseStructure(value string) (Structure, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "equal-payment", "equal_payment", "equalpayment", "annuity":
		return EqualPayment, nil
	case "equal-principal", "equal_principal", "equalprincipal":
		return EqualPrincipal, nil
	case "bullet", "interest-only", "interest_only":
		return Bullet, nil
	case "step-up", "step_up", "stepup", "graduated":
		return StepUp, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStructure, value)
}

// LoanTerms holds the inputs of a single schedule calculation.
type LoanTerms struct {
	Principal  float64
	AnnualRate float64 // fraction, e.g. 0.035
	TermMonths int
	Structure  Structure
	// StepUpAnnualGrowth overrides the generator's growth for StepUp when > 0.
	StepUpAnnualGrowth float64
}

// ScheduleRow holds the values for a given period.
type ScheduleRow struct {
	Period           int
	Payment          float64
	Principal        float64
	Interest         float64
	RemainingBalance float64
}

// Convergence summarizes the step-up first payment search.
type Convergence struct {
	FirstPayment float64
	Residual     float64
	Iterations   int
	Converged    bool
}

// AmortizationResult is the full schedule with its totals.
type AmortizationResult struct {
	Structure          Structure
	Rows               []ScheduleRow
	TotalPayment       float64
	TotalInterest      float64
	FirstPeriodPayment float64
	Convergence        *Convergence
}

// Payment calculates the level period payment of an annuity loan using the
// standard amortization formula.
func Payment(principal, annualRate float64, termMonths int) float64 {
	if termMonths <= 0 || principal <= 0 {
		return 0
	}
	if annualRate <= 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := annualRate / constants.MonthsPerYear
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicInterestRate / discountFactor
}

// PeriodInterest calculates the interest of one period on a balance, rounded
// to a whole currency unit.
func PeriodInterest(balance, annualRate float64) float64 {
	return mathutil.RoundCurrency(balance * annualRate / constants.MonthsPerYear)
}

// Summarize totals a schedule.
func Summarize(structure Structure, rows []ScheduleRow) AmortizationResult {
	result := AmortizationResult{Structure: structure, Rows: rows}
	for _, row := range rows {
		result.TotalPayment += row.Payment
		result.TotalInterest += row.Interest
	}
	if len(rows) > 0 {
		result.FirstPeriodPayment = rows[0].Payment
	}
	return result
}

// ScheduleGenerator produces amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
	stepUp StepUpOptions
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger, stepUp StepUpOptions) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger, stepUp: stepUp.normalized()}
}

// ComputeSchedule generates a schedule with the default step-up options and
// no logging.
func ComputeSchedule(terms LoanTerms) AmortizationResult {
	return NewScheduleGenerator(nil, DefaultStepUpOptions()).ComputeSchedule(terms)
}

// ComputeSchedule creates a complete amortization schedule for a loan. A
// non-positive principal or term is a "no loan" request and yields an empty
// result; a negative rate is treated as zero.
func (g *ScheduleGenerator) ComputeSchedule(terms LoanTerms) AmortizationResult {
	principal := mathutil.RoundCurrency(mathutil.NonNegative(terms.Principal))
	rate := mathutil.NonNegative(terms.AnnualRate)
	structure := terms.Structure
	if structure == "" {
		structure = EqualPayment
	}

	if principal <= 0 || terms.TermMonths <= 0 {
		g.logger.Debug("empty schedule for non-positive principal or term",
			zap.String("op", "loans.ComputeSchedule"),
			zap.Float64("principal", terms.Principal),
			zap.Int("termMonths", terms.TermMonths),
		)
		return AmortizationResult{Structure: structure}
	}

	var result AmortizationResult
	switch structure {
	case EqualPayment:
		payment := mathutil.RoundCurrency(Payment(principal, rate, terms.TermMonths))
		result = Summarize(structure, amortize(principal, rate, terms.TermMonths, func(int, float64) float64 {
			return payment
		}))
	case EqualPrincipal:
		portion := mathutil.RoundCurrency(principal / float64(terms.TermMonths))
		result = Summarize(structure, amortize(principal, rate, terms.TermMonths, func(_ int, interest float64) float64 {
			return portion + interest
		}))
	case Bullet:
		result = Summarize(structure, amortize(principal, rate, terms.TermMonths, func(_ int, interest float64) float64 {
			return interest
		}))
	case StepUp:
		opts := g.stepUp
		if terms.StepUpAnnualGrowth > 0 {
			opts.AnnualGrowth = terms.StepUpAnnualGrowth
		}
		result = g.stepUpSchedule(principal, rate, terms.TermMonths, opts)
	default:
		g.logger.Warn("unknown repayment structure, returning empty schedule",
			zap.String("op", "loans.ComputeSchedule"),
			zap.String("structure", string(structure)),
		)
		return AmortizationResult{Structure: structure}
	}

	g.logger.Debug(fmt.Sprintf("generated %s schedule of %d periods", structure, len(result.Rows)),
		zap.String("op", "loans.ComputeSchedule"),
		zap.Float64("principal", principal),
		zap.Float64("annualRate", rate),
		zap.Float64("firstPeriodPayment", result.FirstPeriodPayment),
		zap.Float64("totalInterest", result.TotalInterest),
	)
	return result
}

// amortize walks the balance down one period at a time. scheduled returns the
// intended payment for a period given its interest; the principal portion is
// whatever the payment leaves after interest. The final period always retires
// the remaining balance, which absorbs accumulated rounding drift.
func amortize(principal, annualRate float64, termMonths int, scheduled func(period int, interest float64) float64) []ScheduleRow {
	rows := make([]ScheduleRow, 0, termMonths)
	balance := principal

	for period := 1; period <= termMonths; period++ {
		interest := PeriodInterest(balance, annualRate)
		principalPortion := mathutil.RoundCurrency(scheduled(period, interest)) - interest

		if period == termMonths || principalPortion > balance {
			principalPortion = balance
		}

		balance -= principalPortion
		rows = append(rows, ScheduleRow{
			Period:           period,
			Payment:          principalPortion + interest,
			Principal:        principalPortion,
			Interest:         interest,
			RemainingBalance: balance,
		})
	}

	return rows
}
