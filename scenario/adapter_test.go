package scenario_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/mortgage-engine/scenario"
)

const newFormatRecord = `{
	"name": "House by the lake",
	"savedAt": "2025-06-01T10:30:00Z",
	"mortgageSimulation": {
		"loanAmount": 300000,
		"interestRate": 2.5,
		"loanTerm": 25,
		"startDate": "2025-01-01",
		"servicePayments": [
			{"name": "Life Insurance", "monthlyCost": 42.5, "finishDate": "2040-01-01"}
		]
	},
	"amortizationSimulation": {
		"oneOffPayments": [{"amount": 10000, "date": "2027-03-15", "penalty": 0.5}],
		"periodicPayments": [{"amount": 200, "interval": 6, "startPeriod": 12, "endPeriod": 60, "penalty": 0}]
	}
}`

const legacyFlatRecord = `{
	"name": "Old saved plan",
	"savedAt": "2023-11-20T08:00:00Z",
	"loanAmount": 250000,
	"interestRate": 3.1,
	"loanTerm": 20,
	"startDate": "2024-02-01",
	"servicePayments": [{"name": "Home Insurance", "monthlyCost": 18}],
	"amortizationPayments": [{"amount": 5000, "date": "2026-07-01", "penalty": 1}],
	"periodicPayments": [{"amount": 100, "interval": 3, "startPeriod": 6, "endPeriod": 36, "penalty": 0}]
}`

func TestNormalize_NewFormatPassesThrough(t *testing.T) {
	m, a, migrated, err := scenario.Normalize([]byte(newFormatRecord))
	require.NoError(t, err)
	assert.False(t, migrated, "new-format records must not report migration")

	assert.Equal(t, "House by the lake", m.Name)
	assert.Equal(t, 300000.0, m.LoanAmount)
	assert.Equal(t, 2.5, m.InterestRate)
	assert.Equal(t, 25, m.LoanTerm)
	assert.Equal(t, "2025-01-01", m.StartDate)
	require.Len(t, m.ServicePayments, 1)
	assert.Equal(t, "2040-01-01", m.ServicePayments[0].FinishDate)

	require.Len(t, a.OneOffPayments, 1)
	assert.Equal(t, 10000.0, a.OneOffPayments[0].Amount)
	require.Len(t, a.PeriodicPayments, 1)
	assert.Equal(t, 12, a.PeriodicPayments[0].StartPeriod)
	assert.Equal(t, "2025-06-01T10:30:00Z", m.SavedAt.Format("2006-01-02T15:04:05Z07:00"))
}

func TestNormalize_LegacyFlatRecordIsMigrated(t *testing.T) {
	m, a, migrated, err := scenario.Normalize([]byte(legacyFlatRecord))
	require.NoError(t, err)
	assert.True(t, migrated, "legacy records must report migration")

	assert.Equal(t, "Old saved plan", m.Name)
	assert.Equal(t, 250000.0, m.LoanAmount)
	assert.Equal(t, 20, m.LoanTerm)
	require.Len(t, m.ServicePayments, 1)

	// Legacy "amortizationPayments" become one-off payments.
	require.Len(t, a.OneOffPayments, 1)
	assert.Equal(t, 5000.0, a.OneOffPayments[0].Amount)
	require.Len(t, a.PeriodicPayments, 1)
	assert.Equal(t, "Old saved plan", a.Name)
}

func TestNormalize_Idempotent(t *testing.T) {
	// Feeding an already-normalized record through again changes nothing.
	m1, a1, _, err := scenario.Normalize([]byte(newFormatRecord))
	require.NoError(t, err)
	m2, a2, migrated, err := scenario.Normalize([]byte(newFormatRecord))
	require.NoError(t, err)

	assert.False(t, migrated)
	assert.Equal(t, m1, m2)
	assert.Equal(t, a1, a2)
}

func TestNormalize_RejectsUnrecognizableRecords(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not JSON", `{{{{`},
		{"neither format", `{"name": "mystery"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := scenario.Normalize([]byte(tt.payload))
			require.Error(t, err)
			assert.True(t, errors.Is(err, scenario.ErrMalformedRecord))
		})
	}
}

func TestNeedsMigration(t *testing.T) {
	assert.False(t, scenario.NeedsMigration([]byte(newFormatRecord)))
	assert.True(t, scenario.NeedsMigration([]byte(legacyFlatRecord)))
}
