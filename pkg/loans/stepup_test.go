package loans

import (
	"math"
	"testing"

	"go.uber.org/zap"
)

func TestPeriodGrowth(t *testing.T) {
	tests := []struct {
		name         string
		annualGrowth float64
		expected     float64
	}{
		{"No growth", 0, 1},
		{"Negative growth clamps", -0.1, 1},
		{"Five percent per year", 0.05, math.Pow(1.05, 1.0/12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := PeriodGrowth(tt.annualGrowth); math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("PeriodGrowth(%v) = %v, expected %v", tt.annualGrowth, result, tt.expected)
			}
		})
	}

	// Twelve compounded periods reproduce the annual growth.
	if yearly := math.Pow(PeriodGrowth(0.05), 12); math.Abs(yearly-1.05) > 1e-12 {
		t.Errorf("twelve periods compound to %v, expected 1.05", yearly)
	}
}

func TestStepUpResidual(t *testing.T) {
	// Zero rate and no growth: the residual is principal minus all payments.
	if residual := StepUpResidual(1200, 0, 12, 1, 100); residual != 0 {
		t.Errorf("StepUpResidual() = %v, expected 0", residual)
	}
	if residual := StepUpResidual(1200, 0, 12, 1, 90); residual != 120 {
		t.Errorf("StepUpResidual() = %v, expected 120", residual)
	}
	if residual := StepUpResidual(1200, 0, 12, 1, 110); residual != -120 {
		t.Errorf("StepUpResidual() = %v, expected -120", residual)
	}
	// A payment of zero at an absurd rate overflows and reports +Inf.
	if residual := StepUpResidual(1e300, 1e6, 360, 1, 0); !math.IsInf(residual, 1) {
		t.Errorf("StepUpResidual() = %v, expected +Inf", residual)
	}
}

func TestSolveStepUpFirstPayment(t *testing.T) {
	tests := []struct {
		name         string
		principal    float64
		annualRate   float64
		termMonths   int
		annualGrowth float64
	}{
		{"Thirty-year mortgage", 300000000, 0.04, 360, 0.05},
		{"Zero rate", 12000000, 0, 120, 0.05},
		{"Single period", 1000000, 0.05, 1, 0.05},
		{"Two periods", 1000000, 0.12, 2, 0.05},
		{"Steep growth", 100000000, 0.03, 240, 0.25},
		{"No growth equals annuity", 100000000, 0.035, 360, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultStepUpOptions()
			opts.AnnualGrowth = tt.annualGrowth
			solved := SolveStepUpFirstPayment(tt.principal, tt.annualRate, tt.termMonths, opts)

			if !solved.Converged {
				t.Fatalf("SolveStepUpFirstPayment() did not converge: %+v", solved)
			}
			if solved.Iterations > opts.MaxIterations {
				t.Errorf("iterations = %d exceeds limit %d", solved.Iterations, opts.MaxIterations)
			}

			residual := StepUpResidual(tt.principal, tt.annualRate, tt.termMonths, PeriodGrowth(tt.annualGrowth), solved.FirstPayment)
			if math.Abs(residual) > 1 {
				t.Errorf("terminal balance = %.4f, expected within 1 unit of zero", residual)
			}

			baseline := Payment(tt.principal, tt.annualRate, tt.termMonths)
			if solved.FirstPayment > baseline+1 {
				t.Errorf("first payment %.2f exceeds equal-payment baseline %.2f", solved.FirstPayment, baseline)
			}
			if tt.annualGrowth == 0 && math.Abs(solved.FirstPayment-baseline) > 1 {
				t.Errorf("first payment %.2f, expected annuity payment %.2f", solved.FirstPayment, baseline)
			}
		})
	}
}

func TestSolveStepUpFirstPaymentNoLoan(t *testing.T) {
	solved := SolveStepUpFirstPayment(0, 0.04, 360, DefaultStepUpOptions())
	if solved.FirstPayment != 0 || !solved.Converged {
		t.Errorf("SolveStepUpFirstPayment() = %+v, expected converged zero payment", solved)
	}
}

func TestComputeScheduleStepUp(t *testing.T) {
	generator := NewScheduleGenerator(zap.NewNop(), DefaultStepUpOptions())
	result := generator.ComputeSchedule(LoanTerms{
		Principal:  300000000,
		AnnualRate: 0.04,
		TermMonths: 360,
		Structure:  StepUp,
	})

	if result.Convergence == nil || !result.Convergence.Converged {
		t.Fatalf("step-up schedule did not converge: %+v", result.Convergence)
	}
	if math.Abs(result.Convergence.Residual) > 1 {
		t.Errorf("residual = %.4f, expected within 1 unit", result.Convergence.Residual)
	}
	if len(result.Rows) != 360 {
		t.Fatalf("schedule has %d rows, expected 360", len(result.Rows))
	}

	for i := 1; i < len(result.Rows); i++ {
		if result.Rows[i].Payment < result.Rows[i-1].Payment {
			t.Fatalf("payment decreased at period %d: %.0f < %.0f",
				result.Rows[i].Period, result.Rows[i].Payment, result.Rows[i-1].Payment)
		}
	}

	if last := result.Rows[359]; last.RemainingBalance != 0 {
		t.Errorf("terminal balance = %.0f, expected 0", last.RemainingBalance)
	}

	level := Payment(300000000, 0.04, 360)
	if result.FirstPeriodPayment >= level {
		t.Errorf("first step-up payment %.0f should start below the level payment %.0f", result.FirstPeriodPayment, level)
	}
	if result.Rows[359].Payment <= level {
		t.Errorf("final step-up payment %.0f should end above the level payment %.0f", result.Rows[359].Payment, level)
	}
}

func TestComputeScheduleStepUpGrowthOverride(t *testing.T) {
	generator := NewScheduleGenerator(nil, DefaultStepUpOptions())
	slow := generator.ComputeSchedule(LoanTerms{Principal: 100000000, AnnualRate: 0.035, TermMonths: 240, Structure: StepUp, StepUpAnnualGrowth: 0.01})
	fast := generator.ComputeSchedule(LoanTerms{Principal: 100000000, AnnualRate: 0.035, TermMonths: 240, Structure: StepUp, StepUpAnnualGrowth: 0.10})

	if fast.FirstPeriodPayment >= slow.FirstPeriodPayment {
		t.Errorf("faster growth should lower the first payment: %.0f >= %.0f", fast.FirstPeriodPayment, slow.FirstPeriodPayment)
	}
	if fast.TotalInterest <= slow.TotalInterest {
		t.Errorf("faster growth should defer principal and raise interest: %.0f <= %.0f", fast.TotalInterest, slow.TotalInterest)
	}
}

func TestStepUpOptionsNormalized(t *testing.T) {
	opts := StepUpOptions{AnnualGrowth: -1, LowerMultiplier: 4}.normalized()
	if opts.AnnualGrowth != 0 {
		t.Errorf("AnnualGrowth = %v, expected 0", opts.AnnualGrowth)
	}
	if opts.MaxIterations != DefaultStepUpOptions().MaxIterations {
		t.Errorf("MaxIterations = %d, expected default", opts.MaxIterations)
	}
	if opts.UpperMultiplier <= opts.LowerMultiplier {
		t.Errorf("UpperMultiplier %v must exceed LowerMultiplier %v", opts.UpperMultiplier, opts.LowerMultiplier)
	}
}

func TestRoundedFirstPayment(t *testing.T) {
	// Zero rate and no growth: twelve payments of 100 retire 1200 exactly.
	first := RoundedFirstPayment(1200, 0, 12, 1, 100)
	if math.Abs(first-100) > 0.5 {
		t.Errorf("RoundedFirstPayment() = %v, expected about 100", first)
	}
	if residual := RoundedStepUpResidual(1200, 0, 12, 1, first); residual < 0 {
		t.Errorf("RoundedStepUpResidual() = %v, expected non-negative", residual)
	}
	if RoundedFirstPayment(0, 0.05, 12, 1, 100) != 0 {
		t.Errorf("RoundedFirstPayment() should be 0 without a principal")
	}
	// A poor estimate still lands on a schedule that never overpays.
	first = RoundedFirstPayment(1000000, 0.05, 24, PeriodGrowth(0.05), 1)
	if residual := RoundedStepUpResidual(1000000, 0.05, 24, PeriodGrowth(0.05), first); residual < 0 {
		t.Errorf("RoundedStepUpResidual() = %v for first payment %v, expected non-negative", residual, first)
	}
}

// TestComputeScheduleStepUpSmallLoans sweeps principals small enough that
// whole-unit rounding dominates the payments.
func TestComputeScheduleStepUpSmallLoans(t *testing.T) {
	type loanCase struct {
		principal    float64
		annualRate   float64
		termMonths   int
		annualGrowth float64
	}
	cases := []loanCase{
		{4886, 0.11, 188, 0.19},
		{1414, 0.09, 395, 0.03},
	}
	for _, principal := range []float64{1, 1414, 4886, 99999} {
		for _, rate := range []float64{0, 0.09, 0.11} {
			for _, term := range []int{1, 2, 12, 60, 188} {
				for _, growth := range []float64{0.03, 0.19} {
					cases = append(cases, loanCase{principal, rate, term, growth})
				}
			}
		}
	}

	for _, tc := range cases {
		opts := DefaultStepUpOptions()
		opts.AnnualGrowth = tc.annualGrowth
		generator := NewScheduleGenerator(zap.NewNop(), opts)
		result := generator.ComputeSchedule(LoanTerms{
			Principal:  tc.principal,
			AnnualRate: tc.annualRate,
			TermMonths: tc.termMonths,
			Structure:  StepUp,
		})

		if len(result.Rows) != tc.termMonths {
			t.Errorf("%+v: schedule has %d rows, expected %d", tc, len(result.Rows), tc.termMonths)
			continue
		}
		for i := 1; i < len(result.Rows); i++ {
			if result.Rows[i].Payment < result.Rows[i-1].Payment {
				t.Errorf("%+v: payment decreased at period %d: %.0f < %.0f",
					tc, result.Rows[i].Period, result.Rows[i].Payment, result.Rows[i-1].Payment)
				break
			}
		}
		if last := result.Rows[len(result.Rows)-1]; last.RemainingBalance != 0 {
			t.Errorf("%+v: terminal balance = %.0f, expected 0", tc, last.RemainingBalance)
		}
		repaid := 0.0
		for _, row := range result.Rows {
			repaid += row.Principal
		}
		if math.Abs(repaid-tc.principal) > 1e-6 {
			t.Errorf("%+v: principal repaid = %.0f, expected %.0f", tc, repaid, tc.principal)
		}
	}
}
