/*
extras.go - One-off and periodic extra principal payments

PURPOSE:
  Extra payments reduce the outstanding balance beyond the scheduled
  principal portion. Two kinds exist:
  - OneOffPayment:   applied once, in one specific calendar month
  - PeriodicPayment: applied on a fixed interval within a period window

  Both carry a penalty percentage. The penalty is a surcharge on the
  extra amount: it adds to the month's cash outflow but never reduces
  principal.

LOOKUP POLICY (load-bearing, preserved for scenario compatibility):
  - One-off: at most one payment applies per calendar month. The set is
    scanned in date-ascending order and the FIRST payment falling in the
    payment month wins; later entries for the same month are ignored.
  - Periodic: the FIRST schedule in declaration order whose window and
    interval match the period applies. Matching schedules are NOT
    summed. Single-match is intentional here even though summing might
    look more natural; stored scenarios depend on it.

SEE ALSO:
  - engine.go: queries both lookups once per simulated month
*/
package mortgage

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ONE-OFF PAYMENT - Single extra principal payment
// =============================================================================

// OneOffPayment is an extra principal payment applied in the calendar
// month of its date. Matching is month-granular.
type OneOffPayment struct {
	Amount         decimal.Decimal
	Date           time.Time
	PenaltyPercent decimal.Decimal
}

// Penalty returns the surcharge for this payment (amount * percent/100).
// It is always computed on the nominal amount, even when the extra
// payment overshoots the remaining balance.
func (p OneOffPayment) Penalty() decimal.Decimal {
	return p.Amount.Mul(p.PenaltyPercent).Div(hundred)
}

// =============================================================================
// PERIODIC PAYMENT - Recurring extra principal payment
// =============================================================================

// PeriodicPayment is an extra principal payment applied every
// IntervalMonths within [StartPeriod, EndPeriod] (1-based payment
// periods, both ends inclusive).
type PeriodicPayment struct {
	Amount         decimal.Decimal
	IntervalMonths int
	StartPeriod    int
	EndPeriod      int
	PenaltyPercent decimal.Decimal
}

// AppliesTo reports whether the schedule fires in the given period.
func (p PeriodicPayment) AppliesTo(period int) bool {
	return period >= p.StartPeriod &&
		period <= p.EndPeriod &&
		(period-p.StartPeriod)%p.IntervalMonths == 0
}

// Occurrences returns how many times the schedule fires over its window.
func (p PeriodicPayment) Occurrences() int {
	if p.IntervalMonths <= 0 || p.EndPeriod < p.StartPeriod {
		return 0
	}
	return (p.EndPeriod-p.StartPeriod)/p.IntervalMonths + 1
}

// Penalty returns the surcharge for one occurrence.
func (p PeriodicPayment) Penalty() decimal.Decimal {
	return p.Amount.Mul(p.PenaltyPercent).Div(hundred)
}

// =============================================================================
// EXTRA PAYMENT SET - Collection with per-month and per-period queries
// =============================================================================

// ExtraPaymentSet holds the extra payments for a simulation run.
type ExtraPaymentSet struct {
	OneOff   []OneOffPayment
	Periodic []PeriodicPayment
}

// AddOneOff appends a one-off payment.
func (s *ExtraPaymentSet) AddOneOff(amount decimal.Decimal, date time.Time, penaltyPercent decimal.Decimal) {
	s.OneOff = append(s.OneOff, OneOffPayment{Amount: amount, Date: date, PenaltyPercent: penaltyPercent})
}

// AddPeriodic appends a periodic payment schedule.
func (s *ExtraPaymentSet) AddPeriodic(amount decimal.Decimal, intervalMonths, startPeriod, endPeriod int, penaltyPercent decimal.Decimal) {
	s.Periodic = append(s.Periodic, PeriodicPayment{
		Amount:         amount,
		IntervalMonths: intervalMonths,
		StartPeriod:    startPeriod,
		EndPeriod:      endPeriod,
		PenaltyPercent: penaltyPercent,
	})
}

// RemoveOneOff deletes the one-off payment at index.
func (s *ExtraPaymentSet) RemoveOneOff(index int) {
	if index < 0 || index >= len(s.OneOff) {
		return
	}
	s.OneOff = append(s.OneOff[:index], s.OneOff[index+1:]...)
}

// RemovePeriodic deletes the periodic schedule at index.
func (s *ExtraPaymentSet) RemovePeriodic(index int) {
	if index < 0 || index >= len(s.Periodic) {
		return
	}
	s.Periodic = append(s.Periodic[:index], s.Periodic[index+1:]...)
}

// IsEmpty reports whether the set contains no payments at all.
func (s ExtraPaymentSet) IsEmpty() bool {
	return len(s.OneOff) == 0 && len(s.Periodic) == 0
}

// OneOffForMonth returns the one-off payment applying in the calendar
// month of date, if any. The scan runs over a date-ascending copy and
// returns the first match, so duplicate-month entries collapse to
// "earliest date wins".
func (s ExtraPaymentSet) OneOffForMonth(date time.Time) (OneOffPayment, bool) {
	sorted := make([]OneOffPayment, len(s.OneOff))
	copy(sorted, s.OneOff)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	for _, p := range sorted {
		if p.Date.Year() == date.Year() && p.Date.Month() == date.Month() {
			return p, true
		}
	}
	return OneOffPayment{}, false
}

// PeriodicForPeriod returns the first schedule in declaration order that
// fires in the given 1-based period, if any.
func (s ExtraPaymentSet) PeriodicForPeriod(period int) (PeriodicPayment, bool) {
	for _, p := range s.Periodic {
		if p.AppliesTo(period) {
			return p, true
		}
	}
	return PeriodicPayment{}, false
}

// TotalExtraAmount returns the nominal sum of all configured extra
// payments: every one-off amount plus each periodic amount times its
// occurrence count.
func (s ExtraPaymentSet) TotalExtraAmount() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.OneOff {
		total = total.Add(p.Amount)
	}
	for _, p := range s.Periodic {
		total = total.Add(p.Amount.Mul(decimal.NewFromInt(int64(p.Occurrences()))))
	}
	return total
}

// TotalPenaltyAmount returns the nominal sum of all penalties the
// configured payments would incur.
func (s ExtraPaymentSet) TotalPenaltyAmount() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.OneOff {
		total = total.Add(p.Penalty())
	}
	for _, p := range s.Periodic {
		total = total.Add(p.Penalty().Mul(decimal.NewFromInt(int64(p.Occurrences()))))
	}
	return total
}
