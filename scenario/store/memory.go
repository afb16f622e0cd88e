package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warp/mortgage-engine/scenario"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu            sync.RWMutex
	mortgages     map[string]scenario.MortgageScenario
	amortizations map[string]scenario.AmortizationScenario
}

func NewMemory() *Memory {
	return &Memory{
		mortgages:     make(map[string]scenario.MortgageScenario),
		amortizations: make(map[string]scenario.AmortizationScenario),
	}
}

func (m *Memory) SaveMortgage(_ context.Context, s *scenario.MortgageScenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Upsert by name: keep the existing ID when the name is reused.
	for id, existing := range m.mortgages {
		if existing.Name == s.Name {
			s.ID = id
			break
		}
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now().UTC()
	}
	m.mortgages[s.ID] = *s
	return nil
}

func (m *Memory) ListMortgages(_ context.Context) ([]scenario.MortgageScenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]scenario.MortgageScenario, 0, len(m.mortgages))
	for _, s := range m.mortgages {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetMortgage(_ context.Context, id string) (*scenario.MortgageScenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.mortgages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *Memory) DeleteMortgage(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.mortgages[id]; !ok {
		return ErrNotFound
	}
	delete(m.mortgages, id)
	return nil
}

func (m *Memory) SaveAmortization(_ context.Context, s *scenario.AmortizationScenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, existing := range m.amortizations {
		if existing.Name == s.Name {
			s.ID = id
			break
		}
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now().UTC()
	}
	m.amortizations[s.ID] = *s
	return nil
}

func (m *Memory) ListAmortizations(_ context.Context) ([]scenario.AmortizationScenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]scenario.AmortizationScenario, 0, len(m.amortizations))
	for _, s := range m.amortizations {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetAmortization(_ context.Context, id string) (*scenario.AmortizationScenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.amortizations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *Memory) DeleteAmortization(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.amortizations[id]; !ok {
		return ErrNotFound
	}
	delete(m.amortizations, id)
	return nil
}

// Reset clears all saved scenarios (for testing/demo).
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mortgages = make(map[string]scenario.MortgageScenario)
	m.amortizations = make(map[string]scenario.AmortizationScenario)
	return nil
}
