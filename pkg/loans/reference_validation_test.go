package loans

import (
	"fmt"
	"math"
	"testing"

	"go.uber.org/zap"
)

// ReferencePayment represents a single payment from the reference schedule
type ReferencePayment struct {
	Month            int
	Payment          float64
	PrincipalPayment float64
	Interest         float64
	LoanBalance      float64
}

// getReferenceSchedule returns the authoritative amortization schedule data
// expressed in whole cents, so every amount is already in the smallest unit.
// Based on: Loan amount $175,000, Interest rate 4.5%, Term 360 months
// Calculator: https://www.fidelitygroup.com/amortizing-loan-calculator
func getReferenceSchedule() []ReferencePayment {
	return []ReferencePayment{
		{1, 88670, 23045, 65625, 17476955},
		{2, 88670, 23131, 65539, 17453824},
		{3, 88670, 23218, 65452, 17430606},
		{4, 88670, 23305, 65365, 17407300},
		{5, 88670, 23393, 65277, 17383908},
		{6, 88670, 23480, 65190, 17360428},
		{7, 88670, 23568, 65102, 17336859},
		{8, 88670, 23657, 65013, 17313203},
		{9, 88670, 23745, 64925, 17289457},
		{10, 88670, 23834, 64835, 17265623},
		{11, 88670, 23924, 64746, 17241699},
		{12, 88670, 24014, 64656, 17217685},
		// Adding key milestone months for validation
		{24, 88670, 25117, 63553, 16922401},
		{36, 88670, 26271, 62399, 16613552},
		{60, 88670, 28740, 59930, 15952636},
		{120, 88670, 35976, 52694, 14015651},
		{180, 88670, 45035, 43635, 11590942},
		{240, 88670, 56375, 32295, 8555702},
		{300, 88670, 70570, 18100, 4756200},
		{359, 88670, 88009, 661, 88339},
		{360, 88670, 88339, 331, 0},
	}
}

func TestLoanCalculationsAgainstReferenceSchedule(t *testing.T) {
	generator := NewScheduleGenerator(zap.NewNop(), DefaultStepUpOptions())

	result := generator.ComputeSchedule(LoanTerms{
		Principal:  17500000,
		AnnualRate: 0.045,
		TermMonths: 360,
		Structure:  EqualPayment,
	})

	referenceData := getReferenceSchedule()

	for _, ref := range referenceData {
		if ref.Month > len(result.Rows) {
			t.Errorf("Month %d not found in generated schedule", ref.Month)
			continue
		}
		row := result.Rows[ref.Month-1]

		// The calculator keeps the fractional part of the 88669.93 payment, so
		// its balance drifts from a whole-unit schedule by under 0.1 a month.
		// The drift reaches 67 by the final payment, which absorbs it.
		tolerance := 50.0
		if ref.Month > 240 {
			tolerance = 100.0
		}

		t.Run(fmt.Sprintf("Month_%d", ref.Month), func(t *testing.T) {
			if row.Period != ref.Month {
				t.Errorf("Period mismatch: got %d, expected %d", row.Period, ref.Month)
			}

			// Test total payment amount
			if math.Abs(row.Payment-ref.Payment) > tolerance {
				t.Errorf("Payment amount mismatch: got %.0f, expected %.0f (diff: %.0f)",
					row.Payment, ref.Payment, math.Abs(row.Payment-ref.Payment))
			}

			// Test principal payment
			if math.Abs(row.Principal-ref.PrincipalPayment) > tolerance {
				t.Errorf("Principal payment mismatch: got %.0f, expected %.0f (diff: %.0f)",
					row.Principal, ref.PrincipalPayment, math.Abs(row.Principal-ref.PrincipalPayment))
			}

			// Test interest payment
			if math.Abs(row.Interest-ref.Interest) > tolerance {
				t.Errorf("Interest payment mismatch: got %.0f, expected %.0f (diff: %.0f)",
					row.Interest, ref.Interest, math.Abs(row.Interest-ref.Interest))
			}

			// Test remaining balance
			if math.Abs(row.RemainingBalance-ref.LoanBalance) > tolerance {
				t.Errorf("Remaining balance mismatch: got %.0f, expected %.0f (diff: %.0f)",
					row.RemainingBalance, ref.LoanBalance, math.Abs(row.RemainingBalance-ref.LoanBalance))
			}
		})
	}

	// Whatever the drift, the schedule itself repays exactly the principal.
	repaid := 0.0
	for _, row := range result.Rows {
		repaid += row.Principal
	}
	if repaid != 17500000 {
		t.Errorf("Principal repaid = %.0f, expected 17500000", repaid)
	}
	if last := result.Rows[len(result.Rows)-1]; last.RemainingBalance != 0 {
		t.Errorf("Final balance = %.0f, expected 0", last.RemainingBalance)
	}
	if result.TotalPayment != repaid+result.TotalInterest {
		t.Errorf("TotalPayment %.0f != principal %.0f + interest %.0f", result.TotalPayment, repaid, result.TotalInterest)
	}
}

func TestPaymentAgainstReference(t *testing.T) {
	monthlyPayment := Payment(17500000, 0.045, 360)
	expectedPayment := 88670.0

	if math.Abs(monthlyPayment-expectedPayment) > 1 {
		t.Errorf("Payment() = %.2f, expected %.2f (diff: %.2f)",
			monthlyPayment, expectedPayment, math.Abs(monthlyPayment-expectedPayment))
	}
}

func TestFullScheduleConsistency(t *testing.T) {
	result := ComputeSchedule(LoanTerms{
		Principal:  17500000,
		AnnualRate: 0.045,
		TermMonths: 360,
	})

	// Verify schedule has the expected number of payments
	if len(result.Rows) != 360 {
		t.Errorf("Schedule should have 360 payments, got %d", len(result.Rows))
	}

	// Verify principal decreases monotonically and interest shrinks with it
	previousBalance := 17500000.0
	previousInterest := math.Inf(1)
	for _, row := range result.Rows {
		if row.RemainingBalance >= previousBalance {
			t.Fatalf("Remaining principal should decrease each month: period %d balance %.0f >= previous %.0f",
				row.Period, row.RemainingBalance, previousBalance)
		}
		if row.Interest > previousInterest {
			t.Fatalf("Interest should not grow: period %d interest %.0f > previous %.0f",
				row.Period, row.Interest, previousInterest)
		}
		previousBalance = row.RemainingBalance
		previousInterest = row.Interest
	}
}
