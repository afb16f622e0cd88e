/*
convert.go - Record to core type conversions

PURPOSE:
  Bridges the stored float/string shapes to the engine's decimal and
  time.Time values. Conversion is the last gate before the core: date
  strings that do not parse are rejected here as MalformedRecordError so
  the engine may assume well-typed inputs.
*/
package scenario

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/mortgage-engine/mortgage"
)

// LoanParameters converts the scenario's loan terms into engine input.
func (m MortgageScenario) LoanParameters() (mortgage.LoanParameters, error) {
	start, err := time.Parse(DateLayout, m.StartDate)
	if err != nil {
		return mortgage.LoanParameters{}, &MalformedRecordError{Field: "startDate", Cause: err}
	}
	return mortgage.LoanParameters{
		Principal:         decimal.NewFromFloat(m.LoanAmount),
		AnnualRatePercent: decimal.NewFromFloat(m.InterestRate),
		TermYears:         m.LoanTerm,
		StartDate:         start,
	}, nil
}

// ServiceCharges converts the scenario's service payments into engine input.
func (m MortgageScenario) ServiceCharges() (mortgage.ServiceChargeSet, error) {
	var set mortgage.ServiceChargeSet
	for i, sp := range m.ServicePayments {
		var finish *time.Time
		if sp.FinishDate != "" {
			t, err := time.Parse(DateLayout, sp.FinishDate)
			if err != nil {
				return mortgage.ServiceChargeSet{}, &MalformedRecordError{
					Field: fmt.Sprintf("servicePayments[%d].finishDate", i),
					Cause: err,
				}
			}
			finish = &t
		}
		set.Add(sp.Name, decimal.NewFromFloat(sp.MonthlyCost), finish)
	}
	return set, nil
}

// ExtraPayments converts the scenario's payment plan into engine input.
func (a AmortizationScenario) ExtraPayments() (mortgage.ExtraPaymentSet, error) {
	var set mortgage.ExtraPaymentSet
	for i, p := range a.OneOffPayments {
		date, err := time.Parse(DateLayout, p.Date)
		if err != nil {
			return mortgage.ExtraPaymentSet{}, &MalformedRecordError{
				Field: fmt.Sprintf("oneOffPayments[%d].date", i),
				Cause: err,
			}
		}
		set.AddOneOff(decimal.NewFromFloat(p.Amount), date, decimal.NewFromFloat(p.Penalty))
	}
	for _, p := range a.PeriodicPayments {
		set.AddPeriodic(decimal.NewFromFloat(p.Amount), p.Interval, p.StartPeriod, p.EndPeriod, decimal.NewFromFloat(p.Penalty))
	}
	return set, nil
}
