package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ksafonov/brandforge/internal/domain"
)

type MockRunRepository struct {
	mu       sync.RWMutex
	runs     map[string]*RunRecord
	concepts map[string][]domain.GeneratedConcept
}

func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{
		runs:     make(map[string]*RunRecord),
		concepts: make(map[string][]domain.GeneratedConcept),
	}
}

func (m *MockRunRepository) CreateRun(ctx context.Context, run *RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	stored := *run
	m.runs[run.ID] = &stored
	return nil
}

func (m *MockRunRepository) SaveConcepts(ctx context.Context, runID string, concepts []domain.GeneratedConcept) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.concepts[runID] = append(m.concepts[runID], concepts...)
	return nil
}

func (m *MockRunRepository) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[id]
	if !exists {
		return nil, domain.ErrRunNotFound
	}
	copied := *run
	return &copied, nil
}

func (m *MockRunRepository) GetConcepts(ctx context.Context, runID string) ([]domain.GeneratedConcept, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.GeneratedConcept, len(m.concepts[runID]))
	copy(out, m.concepts[runID])
	return out, nil
}

func (m *MockRunRepository) ListRecent(ctx context.Context, limit int) ([]RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]RunRecord, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, *run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
