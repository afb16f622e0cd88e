/*
impact.go - Baseline vs. with-extras comparison

PURPOSE:
  Answers "what do these extra payments actually buy me?". Runs the
  engine twice over identical loan parameters and service charges - once
  with empty extra-payment sets, once with the caller's - so the only
  variable isolated is the extra-payment behavior.

  Impact is a pure function over its inputs: no internal state, safe to
  call repeatedly (once per saved scenario when rendering a comparison
  table) and from concurrent goroutines.
*/
package mortgage

import "github.com/shopspring/decimal"

// ImpactResult holds both runs plus the derived savings metrics.
// Savings are baseline minus with-extras, so beneficial extras yield
// positive values.
type ImpactResult struct {
	Baseline   ScheduleSummary
	WithExtras ScheduleSummary

	InterestSaved       decimal.Decimal
	MonthsSaved         int
	TotalCashSaved      decimal.Decimal
	ServiceChargesSaved decimal.Decimal
}

// Impact runs the engine twice and derives the savings of applying the
// extra payments. Service charges are included in both runs.
func (e Engine) Impact(loan LoanParameters, charges ServiceChargeSet, extras ExtraPaymentSet) (ImpactResult, error) {
	_, baseline, err := e.Run(loan, ExtraPaymentSet{}, charges)
	if err != nil {
		return ImpactResult{}, err
	}

	_, withExtras, err := e.Run(loan, extras, charges)
	if err != nil {
		return ImpactResult{}, err
	}

	return ImpactResult{
		Baseline:            baseline,
		WithExtras:          withExtras,
		InterestSaved:       baseline.TotalInterest.Sub(withExtras.TotalInterest),
		MonthsSaved:         baseline.ActualMonths - withExtras.ActualMonths,
		TotalCashSaved:      baseline.TotalPaid.Sub(withExtras.TotalPaid),
		ServiceChargesSaved: baseline.TotalServiceCharges.Sub(withExtras.TotalServiceCharges),
	}, nil
}
