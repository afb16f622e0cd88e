/*
validate.go - Input validation for the amortization core

PURPOSE:
  Each input entity exposes a validation pass returning the full list of
  violations rather than failing fast on the first one. Validation never
  mutates state. The engine runs it before simulation begins; malformed
  inputs are rejected up front, never mid-loop.
*/
package mortgage

import "fmt"

// Validate checks the loan parameters. An annual rate of exactly zero is
// valid; the engine special-cases it in the payment formula.
func (l LoanParameters) Validate() []Violation {
	var violations []Violation
	if !l.Principal.IsPositive() {
		violations = append(violations, Violation{Field: "principal", Message: "must be greater than 0"})
	}
	if l.AnnualRatePercent.IsNegative() {
		violations = append(violations, Violation{Field: "annualRatePercent", Message: "cannot be negative"})
	}
	if l.TermYears <= 0 {
		violations = append(violations, Violation{Field: "termYears", Message: "must be greater than 0"})
	}
	if l.StartDate.IsZero() {
		violations = append(violations, Violation{Field: "startDate", Message: "is required"})
	}
	return violations
}

// Validate checks every payment in the set, indexing field names so the
// caller can point at the offending entry.
func (s ExtraPaymentSet) Validate() []Violation {
	var violations []Violation
	for i, p := range s.OneOff {
		field := func(name string) string { return fmt.Sprintf("oneOffPayments[%d].%s", i, name) }
		if !p.Amount.IsPositive() {
			violations = append(violations, Violation{Field: field("amount"), Message: "must be greater than 0"})
		}
		if p.PenaltyPercent.IsNegative() {
			violations = append(violations, Violation{Field: field("penalty"), Message: "cannot be negative"})
		}
		if p.Date.IsZero() {
			violations = append(violations, Violation{Field: field("date"), Message: "is required"})
		}
	}
	for i, p := range s.Periodic {
		field := func(name string) string { return fmt.Sprintf("periodicPayments[%d].%s", i, name) }
		if !p.Amount.IsPositive() {
			violations = append(violations, Violation{Field: field("amount"), Message: "must be greater than 0"})
		}
		if p.IntervalMonths <= 0 {
			violations = append(violations, Violation{Field: field("interval"), Message: "must be greater than 0"})
		}
		if p.StartPeriod <= 0 {
			violations = append(violations, Violation{Field: field("startPeriod"), Message: "must be greater than 0"})
		}
		if p.EndPeriod <= p.StartPeriod {
			violations = append(violations, Violation{Field: field("endPeriod"), Message: "must be greater than start period"})
		}
		if p.PenaltyPercent.IsNegative() {
			violations = append(violations, Violation{Field: field("penalty"), Message: "cannot be negative"})
		}
	}
	return violations
}

// Validate checks every service charge in the set.
func (s ServiceChargeSet) Validate() []Violation {
	var violations []Violation
	for i, c := range s.Charges {
		field := func(name string) string { return fmt.Sprintf("servicePayments[%d].%s", i, name) }
		if c.Name == "" {
			violations = append(violations, Violation{Field: field("name"), Message: "is required"})
		}
		if c.MonthlyCost.IsNegative() {
			violations = append(violations, Violation{Field: field("monthlyCost"), Message: "cannot be negative"})
		}
	}
	return violations
}
