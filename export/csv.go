/*
Package export renders simulation results as CSV documents.

PURPOSE:
  Two documents mirror what users download from the comparison screen:

  Overview:  the amortization scenario itself (one-off and periodic
             payment tables with totals) followed by its impact on every
             saved mortgage scenario.
  Schedule:  the full month-by-month payment schedule for one mortgage
             scenario with the extra payments applied, plus a summary
             block at the end.

  Sections within a document are separated by blank lines, with an
  all-caps section title row before each table. Amounts are rendered
  with two decimal places.
*/
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/warp/mortgage-engine/mortgage"
	"github.com/warp/mortgage-engine/scenario"
)

const dateLayout = "2006-01-02"

// =============================================================================
// OVERVIEW DOCUMENT
// =============================================================================

// WriteOverview writes the amortization overview document. The
// comparison rows are rendered as-is; computing them is the caller's
// concern so the cache can sit in between.
func WriteOverview(w io.Writer, a scenario.AmortizationScenario, comparisons []scenario.ComparisonRow) error {
	extras, err := a.ExtraPayments()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	name := a.Name
	if name == "" {
		name = "Unnamed Simulation"
	}
	writeRows(cw,
		[]string{"Amortization Simulation Overview"},
		nil,
		[]string{"Simulation Name:", name},
		nil,
	)

	// One-off payments.
	writeRows(cw, []string{"ONE-OFF PAYMENTS"})
	if len(extras.OneOff) == 0 {
		writeRows(cw, []string{"No one-off payments"})
	} else {
		writeRows(cw, []string{"Date", "Amount", "Penalty %", "Penalty Amount"})
		var totalAmount, totalPenalty decimal.Decimal
		for _, p := range extras.OneOff {
			writeRows(cw, []string{
				p.Date.Format(dateLayout),
				money(p.Amount),
				p.PenaltyPercent.String(),
				money(p.Penalty()),
			})
			totalAmount = totalAmount.Add(p.Amount)
			totalPenalty = totalPenalty.Add(p.Penalty())
		}
		writeRows(cw, []string{"TOTAL", money(totalAmount), "", money(totalPenalty)})
	}
	writeRows(cw, nil)

	// Periodic payments.
	writeRows(cw, []string{"PERIODIC PAYMENTS"})
	if len(extras.Periodic) == 0 {
		writeRows(cw, []string{"No periodic payments"})
	} else {
		writeRows(cw, []string{"Amount", "Interval (months)", "Start Period", "End Period", "Penalty %", "Total Payments", "Total Amount"})
		var grandTotal decimal.Decimal
		for _, p := range extras.Periodic {
			occ := p.Occurrences()
			total := p.Amount.Mul(decimal.NewFromInt(int64(occ)))
			writeRows(cw, []string{
				money(p.Amount),
				strconv.Itoa(p.IntervalMonths),
				strconv.Itoa(p.StartPeriod),
				strconv.Itoa(p.EndPeriod),
				p.PenaltyPercent.String(),
				strconv.Itoa(occ),
				money(total),
			})
			grandTotal = grandTotal.Add(total)
		}
		writeRows(cw, []string{"", "", "", "", "", "TOTAL", money(grandTotal)})
	}
	writeRows(cw, nil)

	// Overall totals across both payment kinds.
	totalExtra := extras.TotalExtraAmount()
	totalPenalties := extras.TotalPenaltyAmount()
	writeRows(cw,
		[]string{"OVERALL SUMMARY"},
		[]string{"Total Amortization Amount:", money(totalExtra)},
		[]string{"Total Penalties:", money(totalPenalties)},
		[]string{"Total Cost:", money(totalExtra.Add(totalPenalties))},
		nil,
	)

	// Impact on each saved mortgage scenario.
	writeRows(cw, []string{"IMPACT ON MORTGAGE SIMULATIONS"})
	if len(comparisons) == 0 {
		writeRows(cw, []string{"No saved mortgage simulations found"})
	} else {
		writeRows(cw, []string{
			"Name", "Loan Amount", "Interest Rate %", "Loan Term (years)",
			"Baseline Total", "With Amortization", "Savings",
			"Interest Savings", "Service Savings", "Months Saved",
		})
		for _, row := range comparisons {
			writeRows(cw, []string{
				row.ScenarioName,
				formatFloat(row.LoanAmount),
				formatFloat(row.InterestRate),
				strconv.Itoa(row.LoanTerm),
				money(row.Impact.Baseline.TotalPaid),
				money(row.Impact.WithExtras.TotalPaid),
				money(row.Impact.TotalCashSaved),
				money(row.Impact.InterestSaved),
				money(row.Impact.ServiceChargesSaved),
				strconv.Itoa(row.Impact.MonthsSaved),
			})
		}
	}

	cw.Flush()
	return cw.Error()
}

// =============================================================================
// SCHEDULE DOCUMENT
// =============================================================================

// WriteSchedule writes the month-by-month payment schedule for one
// mortgage scenario with the given extra payments applied.
func WriteSchedule(w io.Writer, m scenario.MortgageScenario, a scenario.AmortizationScenario) error {
	loan, err := m.LoanParameters()
	if err != nil {
		return err
	}
	charges, err := m.ServiceCharges()
	if err != nil {
		return err
	}
	extras, err := a.ExtraPayments()
	if err != nil {
		return err
	}

	engine := mortgage.Engine{}
	rows, _, err := engine.Run(loan, extras, charges)
	if err != nil {
		return err
	}
	impact, err := engine.Impact(loan, charges, extras)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	writeRows(cw,
		[]string{m.Name},
		nil,
		[]string{"Loan Amount:", formatFloat(m.LoanAmount)},
		[]string{"Interest Rate:", formatFloat(m.InterestRate), "%"},
		[]string{"Loan Term:", strconv.Itoa(m.LoanTerm), "years"},
		[]string{"Start Date:", m.StartDate},
		nil,
	)

	if len(m.ServicePayments) > 0 {
		writeRows(cw, []string{"SERVICE PAYMENTS"}, []string{"Name", "Monthly Cost", "Finish Date"})
		for _, sp := range m.ServicePayments {
			finish := sp.FinishDate
			if finish == "" {
				finish = "N/A"
			}
			writeRows(cw, []string{sp.Name, formatFloat(sp.MonthlyCost), finish})
		}
		writeRows(cw, nil)
	}

	writeRows(cw,
		[]string{"PAYMENT SCHEDULE WITH AMORTIZATION"},
		[]string{
			"Period", "Date", "Monthly Payment", "Interest", "Principal",
			"Amortization", "Penalty", "Service Payments", "Total Payment", "Remaining Balance",
		},
	)
	for _, r := range rows {
		writeRows(cw, []string{
			strconv.Itoa(r.Period),
			r.Date.Format(dateLayout),
			money(r.Payment),
			money(r.Interest),
			money(r.Principal),
			money(r.ExtraOneOff.Add(r.ExtraPeriodic)),
			money(r.OneOffPenalty.Add(r.PeriodicPenalty)),
			money(r.ServiceCharges),
			money(r.TotalPayment),
			money(r.Balance),
		})
	}

	writeRows(cw,
		nil,
		[]string{"SUMMARY"},
		[]string{"Total Payments (Baseline):", money(impact.Baseline.TotalPaid)},
		[]string{"Total Payments (With Amortization):", money(impact.WithExtras.TotalPaid)},
		[]string{"Total Savings:", money(impact.TotalCashSaved)},
		[]string{"Months (Baseline):", strconv.Itoa(impact.Baseline.ActualMonths)},
		[]string{"Months (With Amortization):", strconv.Itoa(impact.WithExtras.ActualMonths)},
		[]string{"Months Saved:", strconv.Itoa(impact.MonthsSaved)},
	)

	cw.Flush()
	return cw.Error()
}

// =============================================================================
// HELPERS
// =============================================================================

// writeRows writes each record, mapping nil to a single empty cell so
// blank separator lines survive the CSV encoder.
func writeRows(cw *csv.Writer, records ...[]string) {
	for _, rec := range records {
		if rec == nil {
			rec = []string{""}
		}
		cw.Write(rec)
	}
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func formatFloat(f float64) string { return fmt.Sprintf("%g", f) }
