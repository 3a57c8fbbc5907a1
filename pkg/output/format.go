// Package output provides utilities for formatting and displaying estimate
// results.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/home-finance/internal/estimate"
	"github.com/iwvelando/home-finance/pkg/format"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report *estimate.Report) error {
	if report == nil {
		return fmt.Errorf("no report to format")
	}
	p := message.NewPrinter(language.English)
	var err error
	printf := func(layout string, args ...interface{}) {
		if err == nil {
			_, err = p.Fprintf(w, layout, args...)
		}
	}

	for i, loan := range report.Loans {
		result := loan.Result
		printf("--- Schedule for loan %s (%s) ---\n", loan.Name, result.Structure)
		printf("Principal %s at %s over %d months\n",
			format.Currency(loan.Terms.Principal), format.Rate(loan.Terms.AnnualRate), loan.Terms.TermMonths)
		printf("First payment %s | Total payment %s | Total interest %s\n",
			format.Currency(result.FirstPeriodPayment), format.Currency(result.TotalPayment), format.Currency(result.TotalInterest))
		if result.Convergence != nil {
			printf("Step-up search: converged=%t after %d iterations, residual %.4f\n",
				result.Convergence.Converged, result.Convergence.Iterations, result.Convergence.Residual)
		}
		if len(result.Rows) > 0 {
			printf("Period | Payment | Principal | Interest | Remaining Balance\n")
			printf("______ | _______ | _________ | ________ | _________________\n")
			for _, row := range result.Rows {
				printf("%s | %s | %s | %s | %s\n", fmt.Sprintf("%6d", row.Period),
					format.Currency(row.Payment), format.Currency(row.Principal),
					format.Currency(row.Interest), format.Currency(row.RemainingBalance))
			}
		}
		if i < len(report.Loans)-1 || len(report.Affordability)+len(report.Taxes) > 0 {
			printf("\n")
		}
	}

	for i, entry := range report.Affordability {
		result := entry.Result
		printf("--- Maximum purchase for %s (%s) ---\n", entry.Name, result.Variant)
		printf("Max property price      | %s\n", format.Currency(result.MaxPropertyPrice))
		printf("Max mortgage amount     | %s\n", format.Currency(result.MaxMortgageAmount))
		if result.LeaseDeposit > 0 || result.CreditLoanAmount > 0 {
			printf("Lease deposit           | %s\n", format.Currency(result.LeaseDeposit))
			printf("Credit loan             | %s\n", format.Currency(result.CreditLoanAmount))
			printf("Max leverage capital    | %s\n", format.Currency(result.MaxLeverageCapital))
		}
		printf("Effective rate          | %s\n", format.Rate(result.EffectiveRate))
		printf("Monthly DSR limit       | %s\n", format.Currency(result.MonthlyDebtServiceLimit))
		printf("Monthly payment         | %s\n", format.Currency(result.MonthlyPayment))
		printf("Binding constraint      | %s\n", result.BindingConstraint)
		printNotes(printf, result.Notes)
		if i < len(report.Affordability)-1 || len(report.Taxes) > 0 {
			printf("\n")
		}
	}

	for i, entry := range report.Taxes {
		result := entry.Result
		printf("--- Acquisition tax for %s ---\n", entry.Name)
		printf("Tax base                | %s\n", format.Currency(result.TaxBase))
		printf("Acquisition tax         | %s (%s)\n", format.Currency(result.AcquisitionTax), format.Rate(result.AcquisitionRate))
		printf("Local education surtax  | %s (%s)\n", format.Currency(result.LocalSurtax), format.Rate(result.LocalSurtaxRate))
		printf("Rural special surtax    | %s (%s)\n", format.Currency(result.RuralSurtax), format.Rate(result.RuralSurtaxRate))
		printf("First-home deduction    | %s\n", format.Currency(-result.FirstHomeDeduction))
		printf("Total tax               | %s\n", format.Currency(result.TotalTax))
		printNotes(printf, result.Notes)
		if i < len(report.Taxes)-1 {
			printf("\n")
		}
	}

	return err
}

func printNotes(printf func(string, ...interface{}), notes []string) {
	for _, note := range notes {
		printf("Note: %s\n", note)
	}
}

// CsvFormat outputs in comma-separated value format, one table per request
// kind separated by a blank line.
func CsvFormat(w io.Writer, report *estimate.Report) error {
	if report == nil {
		return fmt.Errorf("no report to format")
	}
	var err error
	printf := func(layout string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, layout, args...)
		}
	}
	sections := 0
	section := func() {
		if sections > 0 {
			printf("\n")
		}
		sections++
	}

	if len(report.Loans) > 0 {
		section()
		printf(`"loan","structure","period","payment","principal","interest","remaining balance"` + "\n")
		for _, loan := range report.Loans {
			for _, row := range loan.Result.Rows {
				printf(`%s,"%s","%d","%.0f","%.0f","%.0f","%.0f"`+"\n",
					quote(loan.Name), loan.Result.Structure, row.Period,
					row.Payment, row.Principal, row.Interest, row.RemainingBalance)
			}
		}
	}

	if len(report.Affordability) > 0 {
		section()
		printf(`"name","variant","max property price","max mortgage amount","lease deposit","credit loan","max leverage capital","effective rate","monthly dsr limit","monthly payment","binding constraint","notes"` + "\n")
		for _, entry := range report.Affordability {
			result := entry.Result
			printf(`%s,"%s","%.0f","%.0f","%.0f","%.0f","%.0f","%s","%.0f","%.0f","%s",%s`+"\n",
				quote(entry.Name), result.Variant, result.MaxPropertyPrice, result.MaxMortgageAmount,
				result.LeaseDeposit, result.CreditLoanAmount, result.MaxLeverageCapital,
				rate(result.EffectiveRate), result.MonthlyDebtServiceLimit, result.MonthlyPayment,
				result.BindingConstraint, quote(strings.Join(result.Notes, "; ")))
		}
	}

	if len(report.Taxes) > 0 {
		section()
		printf(`"name","tax base","acquisition rate","acquisition tax","local surtax rate","local surtax","rural surtax rate","rural surtax","first-home deduction","total tax","notes"` + "\n")
		for _, entry := range report.Taxes {
			result := entry.Result
			printf(`%s,"%.0f","%s","%.0f","%s","%.0f","%s","%.0f","%.0f","%.0f",%s`+"\n",
				quote(entry.Name), result.TaxBase,
				rate(result.AcquisitionRate), result.AcquisitionTax,
				rate(result.LocalSurtaxRate), result.LocalSurtax,
				rate(result.RuralSurtaxRate), result.RuralSurtax,
				result.FirstHomeDeduction, result.TotalTax, quote(strings.Join(result.Notes, "; ")))
		}
	}

	return err
}

// YAMLFormat outputs the whole report as a YAML document.
func YAMLFormat(w io.Writer, report *estimate.Report) error {
	if report == nil {
		return fmt.Errorf("no report to format")
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("unable to encode report: %w", err)
	}
	return encoder.Close()
}

// quote wraps a CSV field in double quotes, doubling any embedded quote.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// rate prints a fraction without float noise.
func rate(value float64) string {
	return decimal.NewFromFloat(value).String()
}
