package mortgage_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/mortgage-engine/mortgage"
)

func fields(violations []mortgage.Violation) []string {
	out := make([]string, len(violations))
	for i, v := range violations {
		out[i] = v.Field
	}
	return out
}

func TestLoanParameters_ValidateCollectsAllViolations(t *testing.T) {
	// Validation never halts on the first failure.
	loan := mortgage.LoanParameters{
		Principal:         decimal.Zero,
		AnnualRatePercent: d(-0.5),
		TermYears:         0,
	}

	violations := loan.Validate()
	if len(violations) != 4 {
		t.Fatalf("expected 4 violations, got %d: %v", len(violations), fields(violations))
	}
}

func TestLoanParameters_ValidLoanHasNoViolations(t *testing.T) {
	if v := standardLoan().Validate(); len(v) != 0 {
		t.Errorf("expected no violations, got %v", v)
	}
}

func TestLoanParameters_ZeroRateIsValid(t *testing.T) {
	loan := standardLoan()
	loan.AnnualRatePercent = decimal.Zero
	if v := loan.Validate(); len(v) != 0 {
		t.Errorf("zero rate must be valid input, got %v", v)
	}
}

func TestExtraPaymentSet_Validate(t *testing.T) {
	tests := []struct {
		name       string
		build      func() mortgage.ExtraPaymentSet
		wantFields int
	}{
		{
			name: "valid payments",
			build: func() mortgage.ExtraPaymentSet {
				s := mortgage.ExtraPaymentSet{}
				s.AddOneOff(decimal.NewFromInt(1000), date(2026, time.May, 1), decimal.Zero)
				s.AddPeriodic(decimal.NewFromInt(100), 6, 1, 12, d(0.5))
				return s
			},
			wantFields: 0,
		},
		{
			name: "one-off missing everything",
			build: func() mortgage.ExtraPaymentSet {
				s := mortgage.ExtraPaymentSet{}
				s.AddOneOff(decimal.Zero, time.Time{}, d(-1))
				return s
			},
			wantFields: 3,
		},
		{
			name: "periodic end before start",
			build: func() mortgage.ExtraPaymentSet {
				s := mortgage.ExtraPaymentSet{}
				s.AddPeriodic(decimal.NewFromInt(100), 6, 24, 12, decimal.Zero)
				return s
			},
			wantFields: 1,
		},
		{
			name: "violations across multiple entries",
			build: func() mortgage.ExtraPaymentSet {
				s := mortgage.ExtraPaymentSet{}
				s.AddOneOff(decimal.Zero, date(2026, time.May, 1), decimal.Zero)
				s.AddOneOff(decimal.NewFromInt(100), time.Time{}, decimal.Zero)
				return s
			},
			wantFields: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := tt.build().Validate()
			if len(violations) != tt.wantFields {
				t.Errorf("expected %d violations, got %d: %v", tt.wantFields, len(violations), fields(violations))
			}
		})
	}
}

func TestServiceChargeSet_Validate(t *testing.T) {
	set := mortgage.ServiceChargeSet{}
	set.Add("", d(-5), nil)
	set.Add("OK", d(10), nil)

	violations := set.Validate()
	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(violations), fields(violations))
	}
}

func TestValidationError_MessageListsEveryViolation(t *testing.T) {
	err := &mortgage.ValidationError{Violations: []mortgage.Violation{
		{Field: "principal", Message: "must be greater than 0"},
		{Field: "termYears", Message: "must be greater than 0"},
	}}

	msg := err.Error()
	for _, want := range []string{"principal", "termYears"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q: %s", want, msg)
		}
	}
}
