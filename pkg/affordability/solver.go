package affordability

import (
	"fmt"
	"math"
	"sort"

	"github.com/iwvelando/home-finance/pkg/constants"
	"github.com/iwvelando/home-finance/pkg/mathutil"
	"go.uber.org/zap"
)

// Constraint names the rule that limited a result.
type Constraint string

// Binding constraints.
const (
	BindingNone      Constraint = "none"
	BindingDSR       Constraint = "dsr"
	BindingLTV       Constraint = "ltv"
	BindingPriceTier Constraint = "price-tier"
	BindingLease     Constraint = "lease"
)

// Input holds a household's finances and the regulatory parameters to solve
// against. Rates and caps are fractions.
type Input struct {
	AnnualIncome float64
	LiquidAssets float64
	DSRCap       float64
	LTVCap       float64
	AnnualRate   float64
	TermYears    int

	CapitalArea   bool
	RegulatedArea bool
	// PriceTiers replaces the policy's tier table when non-empty.
	PriceTiers []PriceTier
	// StressAddOn replaces the policy's regional add-on when > 0.
	StressAddOn float64
	// LeaseRatio is the lease deposit as a fraction of price.
	LeaseRatio float64

	HomesOwned       int
	LeaseLoanBalance float64
	LeaseLoanRate    float64
}

// Result is the outcome of a max-purchase calculation.
type Result struct {
	Variant                 Variant
	MaxPropertyPrice        float64
	MaxMortgageAmount       float64
	MaxLeverageCapital      float64
	LeaseDeposit            float64
	CreditLoanAmount        float64
	EffectiveRate           float64
	MonthlyDebtServiceLimit float64
	// MonthlyPayment is the cost of the loan at the nominal rate.
	MonthlyPayment    float64
	BindingConstraint Constraint
	Notes             []string
}

// MaxLoanForBudget inverts the annuity formula: the largest principal whose
// level monthly payment fits the budget.
func MaxLoanForBudget(monthlyBudget, annualRate float64, termMonths int) float64 {
	if termMonths <= 0 || monthlyBudget <= 0 {
		return 0
	}
	n := float64(termMonths)
	if annualRate <= 0 {
		return monthlyBudget * n
	}
	r := annualRate / constants.MonthsPerYear
	return monthlyBudget * (1 - math.Pow(1+r, -n)) / r
}

// monthlyPayment is the level annuity payment of a loan.
func monthlyPayment(loan, annualRate float64, termMonths int) float64 {
	if termMonths <= 0 || loan <= 0 {
		return 0
	}
	n := float64(termMonths)
	if annualRate <= 0 {
		return loan / n
	}
	r := annualRate / constants.MonthsPerYear
	return loan * r / (1 - math.Pow(1+r, -n))
}

// Solver computes maximum purchases under a set of policies.
type Solver struct {
	logger   *zap.Logger
	policies PolicySet
}

// NewSolver creates a solver for the given policies.
func NewSolver(logger *zap.Logger, policies PolicySet) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{logger: logger, policies: policies}
}

// ComputeMaxPurchase solves with the default policies.
func ComputeMaxPurchase(in Input, variant Variant) Result {
	return NewSolver(nil, DefaultPolicySet()).ComputeMaxPurchase(in, variant)
}

// ComputeMaxPurchase returns the maximum property price the household can
// finance under the variant's policy. Non-positive income or assets yield a
// zero result.
func (s *Solver) ComputeMaxPurchase(in Input, variant Variant) Result {
	if variant == "" {
		variant = Baseline
	}
	policy, ok := s.policies.For(variant)
	if !ok {
		s.logger.Warn("unknown affordability variant, returning zero result",
			zap.String("op", "affordability.ComputeMaxPurchase"),
			zap.String("variant", string(variant)),
		)
		return Result{Variant: variant, BindingConstraint: BindingNone}
	}

	in = sanitize(in)
	if in.AnnualIncome <= 0 || in.LiquidAssets <= 0 {
		return Result{
			Variant:           variant,
			BindingConstraint: BindingNone,
			Notes:             []string{"no income or liquid assets; nothing can be financed"},
		}
	}

	var result Result
	if variant == LeveragedLease {
		result = s.solveLease(in, policy)
	} else {
		result = s.solveMortgage(in, policy)
	}
	result.Variant = variant

	s.logger.Debug(fmt.Sprintf("solved %s max purchase", variant),
		zap.String("op", "affordability.ComputeMaxPurchase"),
		zap.Float64("maxPropertyPrice", result.MaxPropertyPrice),
		zap.Float64("maxMortgageAmount", result.MaxMortgageAmount),
		zap.Float64("effectiveRate", result.EffectiveRate),
		zap.String("binding", string(result.BindingConstraint)),
	)
	return result
}

func sanitize(in Input) Input {
	in.AnnualIncome = mathutil.NonNegative(in.AnnualIncome)
	in.LiquidAssets = mathutil.FloorToUnit(in.LiquidAssets, constants.CurrencyUnit)
	in.DSRCap = mathutil.NonNegative(in.DSRCap)
	in.LTVCap = mathutil.NonNegative(in.LTVCap)
	in.AnnualRate = mathutil.NonNegative(in.AnnualRate)
	in.StressAddOn = mathutil.NonNegative(in.StressAddOn)
	in.LeaseLoanBalance = mathutil.NonNegative(in.LeaseLoanBalance)
	in.LeaseLoanRate = mathutil.NonNegative(in.LeaseLoanRate)
	if math.IsNaN(in.LeaseRatio) || math.IsInf(in.LeaseRatio, 0) {
		in.LeaseRatio = 1
	}
	if in.TermYears < 0 {
		in.TermYears = 0
	}
	return in
}

// stressAddOn returns the add-on used inside the DSR inversion.
func stressAddOn(in Input, policy Policy) float64 {
	if !policy.UseStressRate {
		return 0
	}
	addOn := policy.StressAddOnOther
	if in.CapitalArea {
		addOn = policy.StressAddOnCapital
	}
	if in.StressAddOn > 0 {
		addOn = in.StressAddOn
	}
	if in.RegulatedArea && addOn < policy.StressRateFloor {
		addOn = policy.StressRateFloor
	}
	return addOn
}

func (s *Solver) solveMortgage(in Input, policy Policy) Result {
	var notes []string
	months := in.TermYears * constants.MonthsPerYear

	limit := in.AnnualIncome * in.DSRCap / constants.MonthsPerYear
	budget := limit
	if policy.FoldLeaseLoanInterest && in.LeaseLoanBalance > 0 && in.HomesOwned >= policy.LeaseLoanDSRMinHomes {
		burden := in.LeaseLoanBalance * in.LeaseLoanRate / constants.MonthsPerYear
		budget = mathutil.Max(0, budget-burden)
		notes = append(notes, fmt.Sprintf("existing lease loan interest of %.0f per month counted against the DSR budget", burden))
	}

	addOn := stressAddOn(in, policy)
	rate := in.AnnualRate + addOn
	if addOn > 0 {
		notes = append(notes, fmt.Sprintf("stress add-on of %.2f%% applied to the DSR limit only", addOn*100))
	}
	dsrLoan := MaxLoanForBudget(budget, rate, months)

	ltv := in.LTVCap
	if in.RegulatedArea && policy.RegulatedLTVCap > 0 && policy.RegulatedLTVCap < ltv {
		ltv = policy.RegulatedLTVCap
		notes = append(notes, fmt.Sprintf("regulated area LTV cap of %.0f%% applied", ltv*100))
	}

	tiers := in.PriceTiers
	if len(tiers) == 0 && (!policy.PriceTiersRequireRegulated || in.CapitalArea || in.RegulatedArea) {
		tiers = policy.PriceTiers
	}

	price, binding := solvePrice(in.LiquidAssets, dsrLoan, ltv, tiers)
	loan := mathutil.FloorToUnit(price-in.LiquidAssets, constants.CurrencyUnit)
	if binding == BindingPriceTier {
		notes = append(notes, "loan limited by the price tier cap table")
	}

	return Result{
		MaxPropertyPrice:        in.LiquidAssets + loan,
		MaxMortgageAmount:       loan,
		EffectiveRate:           rate,
		MonthlyDebtServiceLimit: mathutil.RoundCurrency(limit),
		MonthlyPayment:          mathutil.RoundCurrency(monthlyPayment(loan, in.AnnualRate, months)),
		BindingConstraint:       binding,
		Notes:                   notes,
	}
}

// solvePrice finds the highest price P with P - assets <= min(dsrLoan,
// P*ltv, tierCap(P)). An LTV of one or more places no limit.
func solvePrice(assets, dsrLoan, ltv float64, tiers []PriceTier) (float64, Constraint) {
	bounded := func(loanCap float64, capped bool) (float64, Constraint) {
		loan, binding := dsrLoan, BindingDSR
		if capped && loanCap < loan {
			loan, binding = mathutil.NonNegative(loanCap), BindingPriceTier
		}
		price := assets + loan
		if ltv < 1 {
			if ltvPrice := assets / (1 - ltv); ltvPrice < price {
				price, binding = ltvPrice, BindingLTV
			}
		}
		return price, binding
	}

	if len(tiers) == 0 {
		return bounded(0, false)
	}

	sorted := make([]PriceTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].UpTo <= 0 {
			return false
		}
		if sorted[j].UpTo <= 0 {
			return true
		}
		return sorted[i].UpTo < sorted[j].UpTo
	})

	best, bestBinding := -1.0, BindingNone
	lower := 0.0
	for i, tier := range sorted {
		upper := math.Inf(1)
		if tier.UpTo > 0 {
			upper = tier.UpTo
		}
		price, binding := bounded(tier.LoanCap, true)
		if price > upper {
			price, binding = upper, BindingPriceTier
		}
		if (i == 0 || price > lower) && price > best {
			best, bestBinding = price, binding
		}
		lower = upper
	}
	if best < assets {
		return assets, bestBinding
	}
	return best, bestBinding
}

func (s *Solver) solveLease(in Input, policy Policy) Result {
	if in.LeaseRatio < 0 || in.LeaseRatio >= 1 {
		return Result{
			BindingConstraint: BindingNone,
			Notes:             []string{fmt.Sprintf("lease ratio %.2f is outside [0, 1); nothing can be financed", in.LeaseRatio)},
		}
	}

	credit := in.AnnualIncome * mathutil.NonNegative(policy.CreditLoanMultiplier)
	if policy.CreditLoanCap > 0 {
		credit = mathutil.Min(credit, policy.CreditLoanCap)
	}
	credit = mathutil.FloorToUnit(credit, constants.CurrencyUnit)

	price := mathutil.FloorToUnit((in.LiquidAssets+credit)/(1-in.LeaseRatio), constants.CurrencyUnit)
	deposit := mathutil.NonNegative(price - in.LiquidAssets - credit)

	return Result{
		MaxPropertyPrice:        price,
		MaxLeverageCapital:      deposit + credit,
		LeaseDeposit:            deposit,
		CreditLoanAmount:        credit,
		EffectiveRate:           in.AnnualRate,
		MonthlyDebtServiceLimit: mathutil.RoundCurrency(in.AnnualIncome * in.DSRCap / constants.MonthsPerYear),
		MonthlyPayment:          mathutil.RoundCurrency(credit * in.AnnualRate / constants.MonthsPerYear),
		BindingConstraint:       BindingLease,
		Notes:                   []string{"credit loan serviced interest-only; tenant deposit carries no interest"},
	}
}
