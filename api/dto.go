/*
dto.go - Request/response data structures for the HTTP API

PURPOSE:
  Defines JSON shapes for API requests and responses. Internally the
  engine computes with decimals; DTOs carry float64 so responses match
  what calculators and charting frontends expect.

CONVENTIONS:
  - camelCase JSON keys, matching the persisted scenario records
  - Dates as YYYY-MM-DD strings
  - Amounts as plain numbers, rounding left to the client

SEE ALSO:
  - handlers.go: Uses these DTOs
  - scenario/record.go: Persisted scenario shapes reused in requests
*/
package api

import (
	"github.com/warp/mortgage-engine/mortgage"
	"github.com/warp/mortgage-engine/scenario"
)

// =============================================================================
// REQUEST DTOs
// =============================================================================

// SimulationRequest is a full simulation input: loan terms plus any
// extra payments and service charges. The payment slices reuse the
// persisted record shapes so saved scenarios round-trip unchanged.
type SimulationRequest struct {
	LoanAmount   float64 `json:"loanAmount"`
	InterestRate float64 `json:"interestRate"`
	LoanTerm     int     `json:"loanTerm"` // years
	StartDate    string  `json:"startDate"`

	ServicePayments  []scenario.ServicePaymentRecord  `json:"servicePayments,omitempty"`
	OneOffPayments   []scenario.OneOffPaymentRecord   `json:"oneOffPayments,omitempty"`
	PeriodicPayments []scenario.PeriodicPaymentRecord `json:"periodicPayments,omitempty"`
}

// mortgageScenario repackages the loan portion as a stored record.
func (req SimulationRequest) mortgageScenario() scenario.MortgageScenario {
	return scenario.MortgageScenario{
		LoanAmount:      req.LoanAmount,
		InterestRate:    req.InterestRate,
		LoanTerm:        req.LoanTerm,
		StartDate:       req.StartDate,
		ServicePayments: req.ServicePayments,
	}
}

// amortizationScenario repackages the extra payments as a stored record.
func (req SimulationRequest) amortizationScenario() scenario.AmortizationScenario {
	return scenario.AmortizationScenario{
		OneOffPayments:   req.OneOffPayments,
		PeriodicPayments: req.PeriodicPayments,
	}
}

// =============================================================================
// RESPONSE DTOs
// =============================================================================

// ScheduleRowDTO is one month of the payment schedule.
type ScheduleRowDTO struct {
	Period         int     `json:"period"`
	Date           string  `json:"date"`
	Payment        float64 `json:"payment"`
	Interest       float64 `json:"interest"`
	Principal      float64 `json:"principal"`
	Amortization   float64 `json:"amortization"`
	Penalty        float64 `json:"penalty"`
	ServiceCharges float64 `json:"serviceCharges"`
	TotalPayment   float64 `json:"totalPayment"`
	Balance        float64 `json:"balance"`

	CumulativeInterest float64 `json:"cumulativeInterest"`
	CumulativePaid     float64 `json:"cumulativePaid"`

	IsOneOffMonth   bool `json:"isOneOffMonth,omitempty"`
	IsPeriodicMonth bool `json:"isPeriodicMonth,omitempty"`
}

// SummaryDTO aggregates one schedule run.
type SummaryDTO struct {
	MonthlyPayment      float64 `json:"monthlyPayment"`
	TotalInterest       float64 `json:"totalInterest"`
	TotalExtraPaid      float64 `json:"totalExtraPaid"`
	TotalPenalties      float64 `json:"totalPenalties"`
	TotalServiceCharges float64 `json:"totalServiceCharges"`
	TotalPaid           float64 `json:"totalPaid"`
	ActualMonths        int     `json:"actualMonths"`
}

// ScheduleResponse is the full simulation output.
type ScheduleResponse struct {
	Rows    []ScheduleRowDTO `json:"rows"`
	Summary SummaryDTO       `json:"summary"`
}

// ImpactResponse compares a baseline run against a with-extras run.
type ImpactResponse struct {
	Baseline   SummaryDTO `json:"baseline"`
	WithExtras SummaryDTO `json:"withExtras"`

	InterestSaved       float64 `json:"interestSaved"`
	MonthsSaved         int     `json:"monthsSaved"`
	TotalCashSaved      float64 `json:"totalCashSaved"`
	ServiceChargesSaved float64 `json:"serviceChargesSaved"`
}

// ServiceSavingDTO is one service charge's share of an early payoff.
type ServiceSavingDTO struct {
	Name        string  `json:"name"`
	MonthsSaved int     `json:"monthsSaved"`
	AmountSaved float64 `json:"amountSaved"`
}

// ComparisonRowDTO is one saved mortgage's row in the comparison table.
type ComparisonRowDTO struct {
	ScenarioID   string `json:"scenarioId"`
	ScenarioName string `json:"scenarioName"`

	LoanAmount   float64 `json:"loanAmount"`
	InterestRate float64 `json:"interestRate"`
	LoanTerm     int     `json:"loanTerm"`

	Impact           ImpactResponse     `json:"impact"`
	ServiceBreakdown []ServiceSavingDTO `json:"serviceBreakdown,omitempty"`
}

// ImportResponse reports the outcome of importing a persisted record.
type ImportResponse struct {
	Mortgage     scenario.MortgageScenario     `json:"mortgage"`
	Amortization scenario.AmortizationScenario `json:"amortization"`
	Migrated     bool                          `json:"migrated"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error      string         `json:"error"`
	Details    string         `json:"details,omitempty"`
	Violations []ViolationDTO `json:"violations,omitempty"`
}

// ViolationDTO is one field-level validation failure.
type ViolationDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toScheduleRowDTO(r mortgage.ScheduleRow) ScheduleRowDTO {
	return ScheduleRowDTO{
		Period:             r.Period,
		Date:               r.Date.Format("2006-01-02"),
		Payment:            r.Payment.InexactFloat64(),
		Interest:           r.Interest.InexactFloat64(),
		Principal:          r.Principal.InexactFloat64(),
		Amortization:       r.ExtraOneOff.Add(r.ExtraPeriodic).InexactFloat64(),
		Penalty:            r.OneOffPenalty.Add(r.PeriodicPenalty).InexactFloat64(),
		ServiceCharges:     r.ServiceCharges.InexactFloat64(),
		TotalPayment:       r.TotalPayment.InexactFloat64(),
		Balance:            r.Balance.InexactFloat64(),
		CumulativeInterest: r.CumulativeInterest.InexactFloat64(),
		CumulativePaid:     r.CumulativePaid.InexactFloat64(),
		IsOneOffMonth:      r.IsOneOffMonth,
		IsPeriodicMonth:    r.IsPeriodicMonth,
	}
}

func toSummaryDTO(s mortgage.ScheduleSummary) SummaryDTO {
	return SummaryDTO{
		MonthlyPayment:      s.MonthlyPayment.InexactFloat64(),
		TotalInterest:       s.TotalInterest.InexactFloat64(),
		TotalExtraPaid:      s.TotalExtraPaid.InexactFloat64(),
		TotalPenalties:      s.TotalPenalties.InexactFloat64(),
		TotalServiceCharges: s.TotalServiceCharges.InexactFloat64(),
		TotalPaid:           s.TotalPaid.InexactFloat64(),
		ActualMonths:        s.ActualMonths,
	}
}

func toImpactResponse(i mortgage.ImpactResult) ImpactResponse {
	return ImpactResponse{
		Baseline:            toSummaryDTO(i.Baseline),
		WithExtras:          toSummaryDTO(i.WithExtras),
		InterestSaved:       i.InterestSaved.InexactFloat64(),
		MonthsSaved:         i.MonthsSaved,
		TotalCashSaved:      i.TotalCashSaved.InexactFloat64(),
		ServiceChargesSaved: i.ServiceChargesSaved.InexactFloat64(),
	}
}

func toComparisonRowDTO(row scenario.ComparisonRow) ComparisonRowDTO {
	dto := ComparisonRowDTO{
		ScenarioID:   row.ScenarioID,
		ScenarioName: row.ScenarioName,
		LoanAmount:   row.LoanAmount,
		InterestRate: row.InterestRate,
		LoanTerm:     row.LoanTerm,
		Impact:       toImpactResponse(row.Impact),
	}
	for _, s := range row.ServiceBreakdown {
		dto.ServiceBreakdown = append(dto.ServiceBreakdown, ServiceSavingDTO{
			Name:        s.Name,
			MonthsSaved: s.MonthsSaved,
			AmountSaved: s.AmountSaved.InexactFloat64(),
		})
	}
	return dto
}
