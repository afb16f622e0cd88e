package mortgage_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/mortgage-engine/mortgage"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// standardLoan is 300k at 2.5% over 25 years starting 2025-01-01.
func standardLoan() mortgage.LoanParameters {
	return mortgage.LoanParameters{
		Principal:         decimal.NewFromInt(300000),
		AnnualRatePercent: d(2.5),
		TermYears:         25,
		StartDate:         date(2025, time.January, 1),
	}
}

func runOrFail(t *testing.T, loan mortgage.LoanParameters, extras mortgage.ExtraPaymentSet, charges mortgage.ServiceChargeSet) ([]mortgage.ScheduleRow, mortgage.ScheduleSummary) {
	t.Helper()
	rows, summary, err := mortgage.Engine{}.Run(loan, extras, charges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rows, summary
}

func inDelta(t *testing.T, name string, want, got, delta float64) {
	t.Helper()
	if math.Abs(want-got) > delta {
		t.Errorf("%s: expected %v (±%v), got %v", name, want, delta, got)
	}
}

// =============================================================================
// PAYMENT FORMULA
// =============================================================================

func TestMonthlyPayment_ZeroRate(t *testing.T) {
	// GIVEN: 120000 at 0% over 10 years
	// WHEN: Computing the level payment
	// THEN: Payment is exactly principal / n, no division by zero

	loan := mortgage.LoanParameters{
		Principal:         decimal.NewFromInt(120000),
		AnnualRatePercent: decimal.Zero,
		TermYears:         10,
		StartDate:         date(2025, time.January, 1),
	}

	payment := mortgage.Engine{}.MonthlyPayment(loan)
	if !payment.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected payment 1000 exactly, got %v", payment)
	}
}

func TestMonthlyPayment_StandardAnnuity(t *testing.T) {
	// GIVEN: The standard 300k/2.5%/25y loan
	// WHEN: Computing the level payment
	// THEN: Matches the closed-form annuity value

	payment := mortgage.Engine{}.MonthlyPayment(standardLoan())
	inDelta(t, "monthly payment", 1345.85, payment.InexactFloat64(), 0.05)
}

// =============================================================================
// SIMULATION PROPERTIES
// =============================================================================

func TestRun_ZeroRate_NoInterest(t *testing.T) {
	loan := mortgage.LoanParameters{
		Principal:         decimal.NewFromInt(120000),
		AnnualRatePercent: decimal.Zero,
		TermYears:         10,
		StartDate:         date(2025, time.January, 1),
	}

	rows, summary := runOrFail(t, loan, mortgage.ExtraPaymentSet{}, mortgage.ServiceChargeSet{})

	if !summary.TotalInterest.IsZero() {
		t.Errorf("expected zero total interest, got %v", summary.TotalInterest)
	}
	if summary.ActualMonths != 120 {
		t.Errorf("expected 120 months, got %d", summary.ActualMonths)
	}
	if !rows[len(rows)-1].Balance.IsZero() {
		t.Errorf("expected final balance 0, got %v", rows[len(rows)-1].Balance)
	}
}

func TestRun_MonotonicPayoff(t *testing.T) {
	// GIVEN: A valid loan with extras sprinkled in
	// WHEN: Running the full simulation
	// THEN: Balance never increases and reaches exactly 0 by the end

	extras := mortgage.ExtraPaymentSet{}
	extras.AddOneOff(decimal.NewFromInt(10000), date(2028, time.June, 15), d(1.5))
	extras.AddPeriodic(decimal.NewFromInt(500), 12, 24, 120, decimal.Zero)

	rows, _ := runOrFail(t, standardLoan(), extras, mortgage.ServiceChargeSet{})

	prev := standardLoan().Principal
	for _, row := range rows {
		if row.Balance.GreaterThan(prev) {
			t.Fatalf("balance increased at period %d: %v -> %v", row.Period, prev, row.Balance)
		}
		prev = row.Balance
	}
	if !rows[len(rows)-1].Balance.IsZero() {
		t.Errorf("expected final balance 0, got %v", rows[len(rows)-1].Balance)
	}
}

func TestRun_NoExtras_MatchesClosedForm(t *testing.T) {
	// GIVEN: No extras and no service charges
	// WHEN: Running over the full nominal term
	// THEN: Total interest equals payment*n - principal within tolerance

	rows, summary := runOrFail(t, standardLoan(), mortgage.ExtraPaymentSet{}, mortgage.ServiceChargeSet{})

	if summary.ActualMonths != 300 {
		t.Fatalf("expected 300 months, got %d", summary.ActualMonths)
	}
	if len(rows) != 300 {
		t.Fatalf("expected 300 rows, got %d", len(rows))
	}

	closedForm := summary.MonthlyPayment.Mul(decimal.NewFromInt(300)).Sub(standardLoan().Principal)
	diff := summary.TotalInterest.Sub(closedForm).Abs()
	if diff.GreaterThan(d(0.01)) {
		t.Errorf("total interest %v diverges from closed form %v by %v", summary.TotalInterest, closedForm, diff)
	}
	inDelta(t, "total interest", 103754, summary.TotalInterest.InexactFloat64(), 50)
}

func TestRun_OneOffPaymentReducesTerm(t *testing.T) {
	// GIVEN: The standard case plus a 50000 one-off at month 60
	// WHEN: Comparing against the no-extras run
	// THEN: Fewer months and strictly less interest

	_, base := runOrFail(t, standardLoan(), mortgage.ExtraPaymentSet{}, mortgage.ServiceChargeSet{})

	extras := mortgage.ExtraPaymentSet{}
	extras.AddOneOff(decimal.NewFromInt(50000), date(2030, time.January, 1), decimal.Zero)
	_, with := runOrFail(t, standardLoan(), extras, mortgage.ServiceChargeSet{})

	if with.ActualMonths >= base.ActualMonths {
		t.Errorf("expected fewer months than %d, got %d", base.ActualMonths, with.ActualMonths)
	}
	if !with.TotalInterest.LessThan(base.TotalInterest) {
		t.Errorf("expected interest below %v, got %v", base.TotalInterest, with.TotalInterest)
	}
}

func TestRun_DuplicateMonthOneOffCollapse(t *testing.T) {
	// GIVEN: Two one-off payments dated in the same calendar month
	// WHEN: Running the simulation
	// THEN: Only the earlier-dated one applies, not the sum

	extras := mortgage.ExtraPaymentSet{}
	extras.AddOneOff(decimal.NewFromInt(8000), date(2027, time.March, 20), decimal.Zero)
	extras.AddOneOff(decimal.NewFromInt(5000), date(2027, time.March, 5), decimal.Zero)

	rows, _ := runOrFail(t, standardLoan(), extras, mortgage.ServiceChargeSet{})

	var found bool
	for _, row := range rows {
		if row.Date.Year() == 2027 && row.Date.Month() == time.March {
			found = true
			if !row.ExtraOneOff.Equal(decimal.NewFromInt(5000)) {
				t.Errorf("expected the earlier-dated 5000 only, got %v", row.ExtraOneOff)
			}
		} else if !row.ExtraOneOff.IsZero() {
			t.Errorf("unexpected one-off in period %d: %v", row.Period, row.ExtraOneOff)
		}
	}
	if !found {
		t.Fatal("no row for March 2027")
	}
}

func TestRun_OvershootingExtraClampsBalanceButCountsCash(t *testing.T) {
	// GIVEN: A one-off far larger than the remaining balance, with a penalty
	// WHEN: It lands
	// THEN: Balance clamps to zero, but the full nominal amount and its
	//       penalty still count in the cash totals

	loan := mortgage.LoanParameters{
		Principal:         decimal.NewFromInt(50000),
		AnnualRatePercent: d(2.0),
		TermYears:         5,
		StartDate:         date(2025, time.January, 1),
	}
	extras := mortgage.ExtraPaymentSet{}
	extras.AddOneOff(decimal.NewFromInt(100000), date(2025, time.June, 1), d(2.0))

	rows, summary := runOrFail(t, loan, extras, mortgage.ServiceChargeSet{})

	last := rows[len(rows)-1]
	if last.Period != 6 {
		t.Fatalf("expected payoff at period 6, got %d", last.Period)
	}
	if !last.Balance.IsZero() {
		t.Errorf("expected balance clamped to 0, got %v", last.Balance)
	}
	if !last.ExtraOneOff.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("expected full nominal extra 100000, got %v", last.ExtraOneOff)
	}
	// Penalty on the nominal amount: 100000 * 2% = 2000.
	if !summary.TotalPenalties.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected penalty 2000 on the nominal amount, got %v", summary.TotalPenalties)
	}
	if !summary.TotalExtraPaid.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("expected total extra 100000 counted as paid, got %v", summary.TotalExtraPaid)
	}
}

func TestRun_Idempotent(t *testing.T) {
	// GIVEN: Identical, unmutated inputs
	// WHEN: Running twice
	// THEN: Row sequences and summaries are identical

	extras := mortgage.ExtraPaymentSet{}
	extras.AddOneOff(decimal.NewFromInt(20000), date(2030, time.May, 10), d(0.5))
	extras.AddPeriodic(decimal.NewFromInt(250), 6, 12, 60, d(1.0))
	charges := mortgage.ServiceChargeSet{}
	charges.Add("Life Insurance", d(42.50), nil)

	first, firstSum := runOrFail(t, standardLoan(), extras, charges)
	second, secondSum := runOrFail(t, standardLoan(), extras, charges)

	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Balance.Equal(second[i].Balance) ||
			!first[i].TotalPayment.Equal(second[i].TotalPayment) ||
			!first[i].CumulativePaid.Equal(second[i].CumulativePaid) {
			t.Fatalf("row %d differs between runs", i+1)
		}
	}
	if !firstSum.TotalPaid.Equal(secondSum.TotalPaid) || firstSum.ActualMonths != secondSum.ActualMonths {
		t.Errorf("summaries differ: %+v vs %+v", firstSum, secondSum)
	}
}

// =============================================================================
// VALIDATION FRONT DOOR
// =============================================================================

func TestRun_InvalidInputsRejectedBeforeSimulation(t *testing.T) {
	// GIVEN: A loan violating several rules at once
	// WHEN: Running
	// THEN: A ValidationError carrying every violation, no rows

	loan := mortgage.LoanParameters{
		Principal:         decimal.NewFromInt(-5),
		AnnualRatePercent: d(-1),
		TermYears:         0,
	}
	extras := mortgage.ExtraPaymentSet{}
	extras.AddPeriodic(decimal.Zero, 0, 0, 0, d(-2))

	rows, _, err := mortgage.Engine{}.Run(loan, extras, mortgage.ServiceChargeSet{})
	if rows != nil {
		t.Fatal("expected no rows for invalid input")
	}

	var verr *mortgage.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !mortgage.IsInvalidInput(err) {
		t.Error("IsInvalidInput should report true")
	}
	// 4 loan violations + 5 periodic violations, collected, not fail-fast.
	if len(verr.Violations) != 9 {
		t.Errorf("expected 9 violations, got %d: %v", len(verr.Violations), verr.Violations)
	}
}
