/*
adapter.go - Legacy record normalization

PURPOSE:
  Older saved simulations used a flat record: every mortgage field at
  the top level, with extra payments under "amortizationPayments" and
  "periodicPayments". Newer records nest the same data under
  "mortgageSimulation" and "amortizationSimulation". This adapter is the
  single place the two formats meet: it resolves the tagged union and
  always hands normalized scenarios onward, so nothing downstream knows
  format variants exist.

DETECTION:
  A record carrying a "mortgageSimulation" object is new-format; one
  without it is legacy. Normalization is idempotent: feeding it an
  already-normalized record changes nothing and reports migrated=false.
*/
package scenario

import (
	"encoding/json"
	"time"
)

// rawRecord is the superset of both persisted formats.
type rawRecord struct {
	Name    string `json:"name"`
	SavedAt string `json:"savedAt"`

	// New format: nested simulations.
	MortgageSimulation     *rawMortgage     `json:"mortgageSimulation"`
	AmortizationSimulation *rawAmortization `json:"amortizationSimulation"`

	// Legacy flat format.
	LoanAmount           *float64                `json:"loanAmount"`
	InterestRate         float64                 `json:"interestRate"`
	LoanTerm             int                     `json:"loanTerm"`
	StartDate            string                  `json:"startDate"`
	ServicePayments      []ServicePaymentRecord  `json:"servicePayments"`
	AmortizationPayments []OneOffPaymentRecord   `json:"amortizationPayments"`
	PeriodicPayments     []PeriodicPaymentRecord `json:"periodicPayments"`
}

type rawMortgage struct {
	LoanAmount      float64                `json:"loanAmount"`
	InterestRate    float64                `json:"interestRate"`
	LoanTerm        int                    `json:"loanTerm"`
	StartDate       string                 `json:"startDate"`
	ServicePayments []ServicePaymentRecord `json:"servicePayments"`
}

type rawAmortization struct {
	OneOffPayments   []OneOffPaymentRecord   `json:"oneOffPayments"`
	PeriodicPayments []PeriodicPaymentRecord `json:"periodicPayments"`
}

// Normalize parses a persisted record in either format and returns the
// normalized mortgage and amortization scenarios. The second return
// reports whether the record needed migrating from the legacy flat
// format.
func Normalize(data []byte) (MortgageScenario, AmortizationScenario, bool, error) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return MortgageScenario{}, AmortizationScenario{}, false, &MalformedRecordError{Field: "record", Cause: err}
	}

	savedAt, _ := time.Parse(time.RFC3339, raw.SavedAt)

	if raw.MortgageSimulation != nil {
		m := MortgageScenario{
			Name:            raw.Name,
			LoanAmount:      raw.MortgageSimulation.LoanAmount,
			InterestRate:    raw.MortgageSimulation.InterestRate,
			LoanTerm:        raw.MortgageSimulation.LoanTerm,
			StartDate:       raw.MortgageSimulation.StartDate,
			ServicePayments: raw.MortgageSimulation.ServicePayments,
			SavedAt:         savedAt,
		}
		a := AmortizationScenario{Name: raw.Name, SavedAt: savedAt}
		if raw.AmortizationSimulation != nil {
			a.OneOffPayments = raw.AmortizationSimulation.OneOffPayments
			a.PeriodicPayments = raw.AmortizationSimulation.PeriodicPayments
		}
		return m, a, false, nil
	}

	if raw.LoanAmount == nil {
		return MortgageScenario{}, AmortizationScenario{}, false,
			&MalformedRecordError{Field: "loanAmount", Cause: nil}
	}

	m := MortgageScenario{
		Name:            raw.Name,
		LoanAmount:      *raw.LoanAmount,
		InterestRate:    raw.InterestRate,
		LoanTerm:        raw.LoanTerm,
		StartDate:       raw.StartDate,
		ServicePayments: raw.ServicePayments,
		SavedAt:         savedAt,
	}
	a := AmortizationScenario{
		Name:             raw.Name,
		OneOffPayments:   raw.AmortizationPayments,
		PeriodicPayments: raw.PeriodicPayments,
		SavedAt:          savedAt,
	}
	return m, a, true, nil
}

// NeedsMigration reports whether the payload is a legacy flat record.
// Unparseable payloads report false; Normalize surfaces the real error.
func NeedsMigration(data []byte) bool {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return false
	}
	return raw.MortgageSimulation == nil
}
