/*
Package store defines the persistence interface for saved scenarios.

PURPOSE:
  Scenarios are saved by name and looked up by ID. The interface is a
  plain key-value contract: the host environment's storage provides
  whatever durability it provides, nothing more. Implementations:

  - Memory (this package):      in-memory, for tests and dev
  - store/sqlite (module root): SQLite-backed, for production

UPSERT SEMANTICS:
  Saving a scenario whose name already exists replaces it, preserving
  the original ID. This mirrors the save-with-confirm flow callers
  expect: the name is the user-facing key, the ID the stable one.

SEE ALSO:
  - scenario: the record shapes being persisted
  - store/sqlite: the production implementation
*/
package store

import (
	"context"
	"errors"

	"github.com/warp/mortgage-engine/scenario"
)

// ErrNotFound is returned when a scenario ID does not exist.
var ErrNotFound = errors.New("scenario not found")

// Store persists mortgage and amortization scenarios.
type Store interface {
	// SaveMortgage upserts by name; a blank ID is assigned one.
	SaveMortgage(ctx context.Context, s *scenario.MortgageScenario) error

	// ListMortgages returns all saved mortgage scenarios, name-ascending.
	ListMortgages(ctx context.Context) ([]scenario.MortgageScenario, error)

	// GetMortgage returns the scenario with the given ID or ErrNotFound.
	GetMortgage(ctx context.Context, id string) (*scenario.MortgageScenario, error)

	// DeleteMortgage removes the scenario or returns ErrNotFound.
	DeleteMortgage(ctx context.Context, id string) error

	SaveAmortization(ctx context.Context, s *scenario.AmortizationScenario) error
	ListAmortizations(ctx context.Context) ([]scenario.AmortizationScenario, error)
	GetAmortization(ctx context.Context, id string) (*scenario.AmortizationScenario, error)
	DeleteAmortization(ctx context.Context, id string) error

	// Reset clears all saved scenarios (for testing/demo).
	Reset(ctx context.Context) error
}
