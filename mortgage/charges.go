/*
charges.go - Recurring service charges

PURPOSE:
  Service charges are recurring non-principal-reducing costs bundled
  with a loan (life insurance, account fees). Each charge has a fixed
  monthly cost and an optional finish date.

ACTIVITY RULE:
  A charge is active for a payment month when it has no finish date or
  the payment date is on or before the finish date. The month containing
  the finish date still counts in full; there is no proration.

SEE ALSO:
  - engine.go: queries CostForMonth once per simulated month
*/
package mortgage

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SERVICE CHARGE - Single recurring cost
// =============================================================================

// ServiceCharge is a recurring fixed monthly cost with an optional expiry.
type ServiceCharge struct {
	Name        string
	MonthlyCost decimal.Decimal
	FinishDate  *time.Time // nil = no expiry
}

// ActiveOn reports whether the charge still applies on the given payment
// date. The finish date itself is inclusive.
func (c ServiceCharge) ActiveOn(date time.Time) bool {
	return c.FinishDate == nil || !date.After(*c.FinishDate)
}

// =============================================================================
// SERVICE CHARGE SET - Ordered collection with per-month query
// =============================================================================

// ServiceChargeSet holds the charges attached to a loan. Order does not
// affect totals, only display.
type ServiceChargeSet struct {
	Charges []ServiceCharge
}

// Add appends a charge to the set.
func (s *ServiceChargeSet) Add(name string, monthlyCost decimal.Decimal, finishDate *time.Time) {
	s.Charges = append(s.Charges, ServiceCharge{Name: name, MonthlyCost: monthlyCost, FinishDate: finishDate})
}

// Remove deletes the charge at index. Out-of-range indexes are ignored.
func (s *ServiceChargeSet) Remove(index int) {
	if index < 0 || index >= len(s.Charges) {
		return
	}
	s.Charges = append(s.Charges[:index], s.Charges[index+1:]...)
}

// CostForMonth sums the monthly cost of every charge active on the given
// payment date.
func (s ServiceChargeSet) CostForMonth(date time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Charges {
		if c.ActiveOn(date) {
			total = total.Add(c.MonthlyCost)
		}
	}
	return total
}
