/*
compare.go - Saved-scenario comparison rows

PURPOSE:
  Renders the "impact on my saved mortgages" table: for one amortization
  scenario, each saved mortgage scenario gets a row with its baseline
  totals, with-extras totals, and a savings breakdown including how many
  months of each service charge an early payoff avoids.

  Compare is pure: it converts the records, invokes the engine's Impact,
  and derives the per-service breakdown. Errors only arise from
  malformed records or invalid inputs, never mid-computation.
*/
package scenario

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/mortgage-engine/mortgage"
)

// ServiceSaving is how much of one service charge an early payoff avoids.
type ServiceSaving struct {
	Name        string
	MonthsSaved int
	AmountSaved decimal.Decimal
}

// ComparisonRow is one line of the comparison table.
type ComparisonRow struct {
	ScenarioID   string
	ScenarioName string
	LoanAmount   float64
	InterestRate float64
	LoanTerm     int

	Impact mortgage.ImpactResult

	ServiceBreakdown []ServiceSaving
}

// Compare computes the impact of the amortization scenario on one saved
// mortgage scenario.
func Compare(m MortgageScenario, a AmortizationScenario) (ComparisonRow, error) {
	loan, err := m.LoanParameters()
	if err != nil {
		return ComparisonRow{}, err
	}
	charges, err := m.ServiceCharges()
	if err != nil {
		return ComparisonRow{}, err
	}
	extras, err := a.ExtraPayments()
	if err != nil {
		return ComparisonRow{}, err
	}

	impact, err := mortgage.Engine{}.Impact(loan, charges, extras)
	if err != nil {
		return ComparisonRow{}, err
	}

	return ComparisonRow{
		ScenarioID:       m.ID,
		ScenarioName:     m.Name,
		LoanAmount:       m.LoanAmount,
		InterestRate:     m.InterestRate,
		LoanTerm:         m.LoanTerm,
		Impact:           impact,
		ServiceBreakdown: serviceBreakdown(loan.StartDate, charges, impact),
	}, nil
}

// serviceBreakdown attributes saved months to individual service
// charges. A charge with a finish date only accrues savings for months
// it would actually have been active in the baseline run.
func serviceBreakdown(start time.Time, charges mortgage.ServiceChargeSet, impact mortgage.ImpactResult) []ServiceSaving {
	var breakdown []ServiceSaving
	for _, c := range charges.Charges {
		baseMonths := impact.Baseline.ActualMonths
		withMonths := impact.WithExtras.ActualMonths

		if c.FinishDate != nil {
			limit := monthsBetween(start, *c.FinishDate)
			if limit < 0 {
				limit = 0
			}
			if baseMonths > limit {
				baseMonths = limit
			}
			if withMonths > limit {
				withMonths = limit
			}
		}

		saved := baseMonths - withMonths
		if saved <= 0 {
			continue
		}
		breakdown = append(breakdown, ServiceSaving{
			Name:        c.Name,
			MonthsSaved: saved,
			AmountSaved: c.MonthlyCost.Mul(decimal.NewFromInt(int64(saved))),
		})
	}
	return breakdown
}

// monthsBetween counts whole calendar months from a to b.
func monthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}
