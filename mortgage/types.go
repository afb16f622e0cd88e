/*
Package mortgage provides the core amortization engine.

PURPOSE:
  This package contains the types and algorithms for simulating a loan
  under a fixed-payment (annuity) repayment plan, optionally modified by
  one-time extra payments, recurring extra payments, and recurring
  service charges such as insurance. It drives the month-by-month
  balance simulation and aggregates the schedule-level totals used to
  compare financing scenarios.

KEY CONCEPTS IN THIS FILE (types.go):
  - LoanParameters: principal, rate, term, and start date of the loan
  - ScheduleRow:    one simulated month, with running cumulative totals
  - ScheduleSummary: totals for a whole simulated schedule

DESIGN PRINCIPLES:
  1. Purity: the engine holds no state; every run gets its own inputs
     and returns fresh outputs, so concurrent callers need no locking
     as long as they do not share mutable inputs.
  2. Precision: uses decimal.Decimal to avoid floating-point drift
     across hundreds of accumulation steps.
  3. Determinism: accumulation is strictly left-to-right, so identical
     inputs produce identical schedules.

USAGE:
  loan := mortgage.LoanParameters{
      Principal:         decimal.NewFromInt(300000),
      AnnualRatePercent: decimal.NewFromFloat(2.5),
      TermYears:         25,
      StartDate:         time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
  }
  rows, summary, err := mortgage.Engine{}.Run(loan, extras, charges)

SEE ALSO:
  - engine.go:  the month-by-month simulation
  - extras.go:  one-off and periodic extra payments
  - charges.go: recurring service charges
  - impact.go:  baseline vs. with-extras comparison
*/
package mortgage

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SHARED DECIMAL CONSTANTS
// =============================================================================

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)
)

// =============================================================================
// LOAN PARAMETERS - Immutable input to a simulation run
// =============================================================================

// LoanParameters describes the loan being simulated. The caller owns the
// value and must not mutate it while a run is in progress.
type LoanParameters struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermYears         int
	StartDate         time.Time
}

// TermMonths returns the nominal number of monthly payments.
func (l LoanParameters) TermMonths() int { return l.TermYears * 12 }

// MonthlyRate returns the periodic interest rate as a fraction
// (annual percent / 100 / 12).
func (l LoanParameters) MonthlyRate() decimal.Decimal {
	return l.AnnualRatePercent.Div(hundred).Div(twelve)
}

// PaymentDate returns the date of payment i (0-based months after the
// start date). Day-of-month rollover follows time.AddDate: adding one
// month to January 31 lands in early March. This is implementation
// defined but consistent across runs.
func (l LoanParameters) PaymentDate(i int) time.Time {
	return l.StartDate.AddDate(0, i, 0)
}

// =============================================================================
// SCHEDULE ROW - One simulated month
// =============================================================================

// ScheduleRow captures everything that happened in one payment month.
// Rows are produced only by the engine and never mutated afterwards.
type ScheduleRow struct {
	Period  int       // 1-based payment index
	Date    time.Time // payment date
	Payment decimal.Decimal

	Interest  decimal.Decimal // interest portion of the scheduled payment
	Principal decimal.Decimal // principal portion of the scheduled payment

	ExtraOneOff     decimal.Decimal // one-off extra principal this month
	OneOffPenalty   decimal.Decimal
	ExtraPeriodic   decimal.Decimal // periodic extra principal this month
	PeriodicPenalty decimal.Decimal

	ServiceCharges decimal.Decimal // sum of active service charges
	TotalPayment   decimal.Decimal // total cash outflow this month

	Balance decimal.Decimal // remaining balance after this payment

	// Running totals through this row, accumulated left-to-right.
	CumulativeInterest       decimal.Decimal
	CumulativeExtraPaid      decimal.Decimal
	CumulativePenalties      decimal.Decimal
	CumulativeServiceCharges decimal.Decimal
	CumulativePaid           decimal.Decimal

	IsOneOffMonth   bool
	IsPeriodicMonth bool
}

// =============================================================================
// SCHEDULE SUMMARY - Totals for a whole run
// =============================================================================

// ScheduleSummary holds the final cumulative totals of a schedule.
type ScheduleSummary struct {
	MonthlyPayment      decimal.Decimal
	TotalInterest       decimal.Decimal
	TotalExtraPaid      decimal.Decimal
	TotalPenalties      decimal.Decimal
	TotalServiceCharges decimal.Decimal
	TotalPaid           decimal.Decimal
	ActualMonths        int // months simulated until payoff, <= nominal term
}
