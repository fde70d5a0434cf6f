package repository

import (
	"context"
	"time"

	"github.com/ksafonov/brandforge/internal/domain"
)

// RunRecord - итог одного прогона генерации для истории
type RunRecord struct {
	ID           string
	BrandName    string
	Verdict      domain.Verdict
	OverallScore int
	ConceptCount int
	CreatedAt    time.Time
}

type RunRepository interface {
	CreateRun(ctx context.Context, run *RunRecord) error
	SaveConcepts(ctx context.Context, runID string, concepts []domain.GeneratedConcept) error
	GetRun(ctx context.Context, id string) (*RunRecord, error)
	GetConcepts(ctx context.Context, runID string) ([]domain.GeneratedConcept, error)
	ListRecent(ctx context.Context, limit int) ([]RunRecord, error)
}
