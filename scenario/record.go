/*
Package scenario defines the persisted scenario records and the adapter
between stored records and the core engine types.

PURPOSE:
  The engine consumes plain in-memory values (mortgage.LoanParameters
  and friends). Callers save their work as named scenarios: a mortgage
  scenario (loan terms plus service charges) and an amortization
  scenario (extra payments). This package owns those at-rest shapes,
  the conversions into core types, and the backward-compatible adapter
  for the legacy flat record format.

RECORD SHAPES:
  MortgageScenario     {loanAmount, interestRate, loanTerm, startDate,
                        servicePayments: [{name, monthlyCost, finishDate?}]}
  AmortizationScenario {oneOffPayments: [{amount, date, penalty}],
                        periodicPayments: [{amount, interval,
                        startPeriod, endPeriod, penalty}]}

  Dates are stored as YYYY-MM-DD strings. Amounts are stored as JSON
  numbers and converted to decimals at the core boundary.

SEE ALSO:
  - adapter.go: legacy flat-format normalization
  - convert.go: record -> core type conversions
  - store/:     persistence interface and in-memory implementation
*/
package scenario

import "time"

// DateLayout is the storage format for all scenario dates.
const DateLayout = "2006-01-02"

// =============================================================================
// MORTGAGE SCENARIO - Loan terms plus service charges
// =============================================================================

// ServicePaymentRecord is the stored form of one recurring service charge.
type ServicePaymentRecord struct {
	Name        string  `json:"name"`
	MonthlyCost float64 `json:"monthlyCost"`
	FinishDate  string  `json:"finishDate,omitempty"` // empty = no expiry
}

// MortgageScenario is a saved set of loan terms.
type MortgageScenario struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	LoanAmount      float64                `json:"loanAmount"`
	InterestRate    float64                `json:"interestRate"`
	LoanTerm        int                    `json:"loanTerm"` // years
	StartDate       string                 `json:"startDate"`
	ServicePayments []ServicePaymentRecord `json:"servicePayments"`
	SavedAt         time.Time              `json:"savedAt"`
}

// =============================================================================
// AMORTIZATION SCENARIO - Extra payment plan
// =============================================================================

// OneOffPaymentRecord is the stored form of a single extra payment.
type OneOffPaymentRecord struct {
	Amount  float64 `json:"amount"`
	Date    string  `json:"date"`
	Penalty float64 `json:"penalty"` // percent
}

// PeriodicPaymentRecord is the stored form of a recurring extra payment.
type PeriodicPaymentRecord struct {
	Amount      float64 `json:"amount"`
	Interval    int     `json:"interval"` // months
	StartPeriod int     `json:"startPeriod"`
	EndPeriod   int     `json:"endPeriod"`
	Penalty     float64 `json:"penalty"` // percent
}

// AmortizationScenario is a saved extra-payment plan, applied against
// any mortgage scenario when comparing.
type AmortizationScenario struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	OneOffPayments   []OneOffPaymentRecord   `json:"oneOffPayments"`
	PeriodicPayments []PeriodicPaymentRecord `json:"periodicPayments"`
	SavedAt          time.Time               `json:"savedAt"`
}
