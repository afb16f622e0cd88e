/*
Package sqlite provides a SQLite-backed implementation of the scenario
store interface.

PURPOSE:
  Persists saved mortgage and amortization scenarios. The nested payment
  arrays are stored as JSON text columns; the scalar loan fields get
  their own columns so scenarios stay inspectable with plain SQL.

UPSERT SEMANTICS:
  Saving under an existing name replaces that scenario while keeping
  its ID, matching the in-memory store.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./data/scenarios.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

MIGRATION:
  Schema is auto-migrated on New(). Use ":memory:" for tests. For
  production, use a proper migration tool (golang-migrate, goose) with
  versioned migrations.

SEE ALSO:
  - scenario/store/store.go: Interface definition
  - scenario/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/mortgage-engine/scenario"
	"github.com/warp/mortgage-engine/scenario/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS mortgage_scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		loan_amount REAL NOT NULL,
		interest_rate REAL NOT NULL,
		loan_term INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		service_payments TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS amortization_scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		one_off_payments TEXT NOT NULL,
		periodic_payments TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Reset deletes all saved scenarios. Dev and demo environments only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM mortgage_scenarios; DELETE FROM amortization_scenarios;`)
	return err
}

// =============================================================================
// MORTGAGE SCENARIOS
// =============================================================================

func (s *Store) SaveMortgage(ctx context.Context, m *scenario.MortgageScenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	services, err := json.Marshal(m.ServicePayments)
	if err != nil {
		return fmt.Errorf("failed to encode service payments: %w", err)
	}

	// Keep the existing ID when the name is reused.
	var existingID string
	err = s.db.QueryRowContext(ctx, `SELECT id FROM mortgage_scenarios WHERE name = ?`, m.Name).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
	case err != nil:
		return err
	default:
		m.ID = existingID
	}

	if m.SavedAt.IsZero() {
		m.SavedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO mortgage_scenarios (id, name, loan_amount, interest_rate, loan_term, start_date, service_payments, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			loan_amount = excluded.loan_amount,
			interest_rate = excluded.interest_rate,
			loan_term = excluded.loan_term,
			start_date = excluded.start_date,
			service_payments = excluded.service_payments,
			saved_at = excluded.saved_at`,
		m.ID, m.Name, m.LoanAmount, m.InterestRate, m.LoanTerm, m.StartDate, string(services), m.SavedAt.Format(time.RFC3339))
	return err
}

func (s *Store) ListMortgages(ctx context.Context) ([]scenario.MortgageScenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, loan_amount, interest_rate, loan_term, start_date, service_payments, saved_at
		FROM mortgage_scenarios ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []scenario.MortgageScenario
	for rows.Next() {
		m, err := scanMortgage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (s *Store) GetMortgage(ctx context.Context, id string) (*scenario.MortgageScenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, loan_amount, interest_rate, loan_term, start_date, service_payments, saved_at
		FROM mortgage_scenarios WHERE id = ?`, id)

	m, err := scanMortgage(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	return m, err
}

func (s *Store) DeleteMortgage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM mortgage_scenarios WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMortgage(r rowScanner) (*scenario.MortgageScenario, error) {
	var m scenario.MortgageScenario
	var services, savedAt string
	if err := r.Scan(&m.ID, &m.Name, &m.LoanAmount, &m.InterestRate, &m.LoanTerm, &m.StartDate, &services, &savedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(services), &m.ServicePayments); err != nil {
		return nil, fmt.Errorf("failed to decode service payments: %w", err)
	}
	m.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
	return &m, nil
}

// =============================================================================
// AMORTIZATION SCENARIOS
// =============================================================================

func (s *Store) SaveAmortization(ctx context.Context, a *scenario.AmortizationScenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	oneOffs, err := json.Marshal(a.OneOffPayments)
	if err != nil {
		return fmt.Errorf("failed to encode one-off payments: %w", err)
	}
	periodics, err := json.Marshal(a.PeriodicPayments)
	if err != nil {
		return fmt.Errorf("failed to encode periodic payments: %w", err)
	}

	var existingID string
	err = s.db.QueryRowContext(ctx, `SELECT id FROM amortization_scenarios WHERE name = ?`, a.Name).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
	case err != nil:
		return err
	default:
		a.ID = existingID
	}

	if a.SavedAt.IsZero() {
		a.SavedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO amortization_scenarios (id, name, one_off_payments, periodic_payments, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			one_off_payments = excluded.one_off_payments,
			periodic_payments = excluded.periodic_payments,
			saved_at = excluded.saved_at`,
		a.ID, a.Name, string(oneOffs), string(periodics), a.SavedAt.Format(time.RFC3339))
	return err
}

func (s *Store) ListAmortizations(ctx context.Context) ([]scenario.AmortizationScenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, one_off_payments, periodic_payments, saved_at
		FROM amortization_scenarios ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []scenario.AmortizationScenario
	for rows.Next() {
		a, err := scanAmortization(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *Store) GetAmortization(ctx context.Context, id string) (*scenario.AmortizationScenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, one_off_payments, periodic_payments, saved_at
		FROM amortization_scenarios WHERE id = ?`, id)

	a, err := scanAmortization(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	return a, err
}

func (s *Store) DeleteAmortization(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM amortization_scenarios WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanAmortization(r rowScanner) (*scenario.AmortizationScenario, error) {
	var a scenario.AmortizationScenario
	var oneOffs, periodics, savedAt string
	if err := r.Scan(&a.ID, &a.Name, &oneOffs, &periodics, &savedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(oneOffs), &a.OneOffPayments); err != nil {
		return nil, fmt.Errorf("failed to decode one-off payments: %w", err)
	}
	if err := json.Unmarshal([]byte(periodics), &a.PeriodicPayments); err != nil {
		return nil, fmt.Errorf("failed to decode periodic payments: %w", err)
	}
	a.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
	return &a, nil
}
