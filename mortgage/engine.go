/*
engine.go - Month-by-month amortization simulation

PURPOSE:
  Drives the balance simulation: computes the level monthly payment,
  walks the schedule month by month, consults the extra-payment and
  service-charge sets, and accumulates the running totals that end up in
  the summary.

ALGORITHM (one iteration):
  1. paymentDate = startDate + i calendar months
  2. interest    = balance * monthlyRate
  3. principal   = payment - interest
  4. extras      = one-off for this calendar month + periodic for period i+1
  5. charges     = sum of active service charges
  6. balance     = max(0, balance - principal - extras)
  7. append row with this month's figures and updated cumulatives

POLICY DECISIONS (must not change without a scenario format migration):
  - Overshooting extras clamp the balance at zero; the excess is still
    counted as cash paid.
  - Penalties are charged on the nominal extra amount, never on the
    clamped amount, and never reduce principal.
  - Balances at or under 0.01 currency units count as fully paid, which
    absorbs residue from the rounded level payment.

SEE ALSO:
  - impact.go: runs this twice to isolate the effect of extra payments
*/
package mortgage

import "github.com/shopspring/decimal"

// paidOffEpsilon is the balance below which a loan counts as settled.
var paidOffEpsilon = decimal.NewFromFloat(0.01)

// Engine runs amortization simulations. It is stateless; the zero value
// is ready to use and safe to share.
type Engine struct{}

// MonthlyPayment returns the level payment for the loan using the
// standard annuity formula:
//
//	payment = principal * r * (1+r)^n / ((1+r)^n - 1)
//
// A rate of exactly zero is valid input; the formula is undefined there,
// so the payment degenerates to straight-line principal / n.
func (Engine) MonthlyPayment(loan LoanParameters) decimal.Decimal {
	n := int64(loan.TermMonths())
	rate := loan.MonthlyRate()
	if rate.IsZero() {
		return loan.Principal.Div(decimal.NewFromInt(n))
	}

	growth := one.Add(rate).Pow(decimal.NewFromInt(n))
	return loan.Principal.Mul(rate).Mul(growth).Div(growth.Sub(one))
}

// Run simulates the loan month by month and returns one ScheduleRow per
// simulated month plus the summary totals. Rows end at the nominal term
// or earlier once the balance is extinguished.
//
// All three inputs are validated first; a *ValidationError carrying
// every violation is returned before any simulation happens. Given
// valid inputs, Run cannot fail.
func (e Engine) Run(loan LoanParameters, extras ExtraPaymentSet, charges ServiceChargeSet) ([]ScheduleRow, ScheduleSummary, error) {
	var violations []Violation
	violations = append(violations, loan.Validate()...)
	violations = append(violations, extras.Validate()...)
	violations = append(violations, charges.Validate()...)
	if len(violations) > 0 {
		return nil, ScheduleSummary{}, &ValidationError{Violations: violations}
	}

	n := loan.TermMonths()
	rate := loan.MonthlyRate()
	payment := e.MonthlyPayment(loan)

	rows := make([]ScheduleRow, 0, n)
	balance := loan.Principal

	var (
		cumInterest  = decimal.Zero
		cumExtra     = decimal.Zero
		cumPenalties = decimal.Zero
		cumCharges   = decimal.Zero
		cumPaid      = decimal.Zero
	)

	for i := 0; i < n && balance.GreaterThan(paidOffEpsilon); i++ {
		date := loan.PaymentDate(i)

		interest := balance.Mul(rate)
		principal := payment.Sub(interest)

		extraOneOff := decimal.Zero
		oneOffPenalty := decimal.Zero
		oneOff, hasOneOff := extras.OneOffForMonth(date)
		if hasOneOff {
			extraOneOff = oneOff.Amount
			oneOffPenalty = oneOff.Penalty()
		}

		extraPeriodic := decimal.Zero
		periodicPenalty := decimal.Zero
		periodic, hasPeriodic := extras.PeriodicForPeriod(i + 1)
		if hasPeriodic {
			extraPeriodic = periodic.Amount
			periodicPenalty = periodic.Penalty()
		}

		monthCharges := charges.CostForMonth(date)

		// One-off and periodic extras stack additively onto the
		// scheduled principal portion in the same pass.
		effectivePrincipal := principal.Add(extraOneOff).Add(extraPeriodic)

		newBalance := balance.Sub(effectivePrincipal)
		if newBalance.LessThanOrEqual(paidOffEpsilon) {
			newBalance = decimal.Zero
		}

		totalThisMonth := payment.
			Add(extraOneOff).Add(oneOffPenalty).
			Add(extraPeriodic).Add(periodicPenalty).
			Add(monthCharges)

		cumInterest = cumInterest.Add(interest)
		cumExtra = cumExtra.Add(extraOneOff).Add(extraPeriodic)
		cumPenalties = cumPenalties.Add(oneOffPenalty).Add(periodicPenalty)
		cumCharges = cumCharges.Add(monthCharges)
		cumPaid = cumPaid.Add(totalThisMonth)

		rows = append(rows, ScheduleRow{
			Period:                   i + 1,
			Date:                     date,
			Payment:                  payment,
			Interest:                 interest,
			Principal:                principal,
			ExtraOneOff:              extraOneOff,
			OneOffPenalty:            oneOffPenalty,
			ExtraPeriodic:            extraPeriodic,
			PeriodicPenalty:          periodicPenalty,
			ServiceCharges:           monthCharges,
			TotalPayment:             totalThisMonth,
			Balance:                  newBalance,
			CumulativeInterest:       cumInterest,
			CumulativeExtraPaid:      cumExtra,
			CumulativePenalties:      cumPenalties,
			CumulativeServiceCharges: cumCharges,
			CumulativePaid:           cumPaid,
			IsOneOffMonth:            hasOneOff,
			IsPeriodicMonth:          hasPeriodic,
		})

		balance = newBalance
	}

	summary := ScheduleSummary{
		MonthlyPayment:      payment,
		TotalInterest:       cumInterest,
		TotalExtraPaid:      cumExtra,
		TotalPenalties:      cumPenalties,
		TotalServiceCharges: cumCharges,
		TotalPaid:           cumPaid,
		ActualMonths:        len(rows),
	}
	return rows, summary, nil
}
