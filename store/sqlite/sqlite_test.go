package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/mortgage-engine/scenario"
	"github.com/warp/mortgage-engine/scenario/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteMortgageRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	finish := "2040-06-30"
	m := &scenario.MortgageScenario{
		Name:         "Standard",
		LoanAmount:   300000,
		InterestRate: 2.5,
		LoanTerm:     25,
		StartDate:    "2025-01-01",
		ServicePayments: []scenario.ServicePaymentRecord{
			{Name: "Life Insurance", MonthlyCost: 42.5, FinishDate: finish},
			{Name: "Account Fee", MonthlyCost: 3.9},
		},
	}

	require.NoError(t, s.SaveMortgage(ctx, m))
	require.NotEmpty(t, m.ID, "save should assign an ID")
	require.False(t, m.SavedAt.IsZero(), "save should stamp SavedAt")

	got, err := s.GetMortgage(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Name, got.Name)
	assert.Equal(t, m.LoanAmount, got.LoanAmount)
	assert.Len(t, got.ServicePayments, 2)
	assert.Equal(t, finish, got.ServicePayments[0].FinishDate)
	assert.Empty(t, got.ServicePayments[1].FinishDate)
}

func TestSQLiteMortgageUpsertByNameKeepsID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &scenario.MortgageScenario{Name: "Standard", LoanAmount: 300000, InterestRate: 2.5, LoanTerm: 25, StartDate: "2025-01-01"}
	require.NoError(t, s.SaveMortgage(ctx, first))

	second := &scenario.MortgageScenario{Name: "Standard", LoanAmount: 250000, InterestRate: 3.0, LoanTerm: 20, StartDate: "2026-01-01"}
	require.NoError(t, s.SaveMortgage(ctx, second))

	assert.Equal(t, first.ID, second.ID, "re-saving a name keeps the original ID")

	all, err := s.ListMortgages(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 250000.0, all[0].LoanAmount)
}

func TestSQLiteListMortgagesSortedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		require.NoError(t, s.SaveMortgage(ctx, &scenario.MortgageScenario{
			Name: name, LoanAmount: 100000, InterestRate: 2, LoanTerm: 10, StartDate: "2025-01-01",
		}))
	}

	all, err := s.ListMortgages(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Alpha", all[0].Name)
	assert.Equal(t, "Mid", all[1].Name)
	assert.Equal(t, "Zeta", all[2].Name)
}

func TestSQLiteMortgageNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetMortgage(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.DeleteMortgage(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLiteAmortizationRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &scenario.AmortizationScenario{
		Name: "Lump sums",
		OneOffPayments: []scenario.OneOffPaymentRecord{
			{Amount: 10000, Date: "2030-01-01", Penalty: 100},
		},
		PeriodicPayments: []scenario.PeriodicPaymentRecord{
			{Amount: 500, Interval: 6, StartPeriod: 12, EndPeriod: 60, Penalty: 5},
		},
	}

	require.NoError(t, s.SaveAmortization(ctx, a))
	require.NotEmpty(t, a.ID)

	got, err := s.GetAmortization(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got.OneOffPayments, 1)
	require.Len(t, got.PeriodicPayments, 1)
	assert.Equal(t, 10000.0, got.OneOffPayments[0].Amount)
	assert.Equal(t, 6, got.PeriodicPayments[0].Interval)

	require.NoError(t, s.DeleteAmortization(ctx, a.ID))
	_, err = s.GetAmortization(ctx, a.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLiteReset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveMortgage(ctx, &scenario.MortgageScenario{
		Name: "One", LoanAmount: 100000, InterestRate: 2, LoanTerm: 10, StartDate: "2025-01-01",
	}))
	require.NoError(t, s.SaveAmortization(ctx, &scenario.AmortizationScenario{Name: "Two"}))

	require.NoError(t, s.Reset(ctx))

	mortgages, err := s.ListMortgages(ctx)
	require.NoError(t, err)
	assert.Empty(t, mortgages)

	amortizations, err := s.ListAmortizations(ctx)
	require.NoError(t, err)
	assert.Empty(t, amortizations)
}
