package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ksafonov/brandforge/internal/critic"
	"github.com/ksafonov/brandforge/internal/domain"
	"github.com/ksafonov/brandforge/internal/metrics"
	"github.com/ksafonov/brandforge/internal/repository"
)

// ConceptOrchestrator запускает пайплайны генерации по всем стилям
type ConceptOrchestrator interface {
	GenerateAll(ctx context.Context, styles []domain.Style, signals domain.BrandSignals, palette domain.Palette, brief *domain.DesignBrief) ([]domain.GeneratedConcept, error)
}

// WinnerSelector выбирает лучший концепт в каждой стилевой группе
type WinnerSelector interface {
	SelectWinners(ctx context.Context, candidates []domain.GeneratedConcept) ([]domain.GeneratedConcept, error)
}

type GenerateRequest struct {
	BrandName string
	Signals   domain.BrandSignals
	Brief     domain.DesignBrief
	Palette   domain.Palette
	Fonts     domain.FontPairing
	TypeScale *domain.TypeScale

	// Финальные цвета дизайн-системы; критик проверяет и чинит их копию
	ColorSystem *domain.ColorSystem

	Styles []domain.Style

	// Кандидаты из прошлых прогонов, участвуют в турнире наравне с новыми
	ExtraCandidates []domain.GeneratedConcept
}

type GenerateResult struct {
	RunID            string
	Winners          []domain.GeneratedConcept
	Report           domain.QAReport
	FixedPalette     domain.Palette
	FixedColorSystem *domain.ColorSystem
}

type BrandKitService struct {
	orchestrator ConceptOrchestrator
	selector     WinnerSelector
	critic       *critic.Engine
	runs         repository.RunRepository
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewBrandKitService: runs и m могут быть nil - тогда прогоны не
// сохраняются и метрики не пишутся.
func NewBrandKitService(
	orchestrator ConceptOrchestrator,
	selector WinnerSelector,
	criticEngine *critic.Engine,
	runs repository.RunRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *BrandKitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrandKitService{
		orchestrator: orchestrator,
		selector:     selector,
		critic:       criticEngine,
		runs:         runs,
		metrics:      m,
		logger:       logger,
	}
}

func (s *BrandKitService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if strings.TrimSpace(req.BrandName) == "" {
		return nil, domain.ErrEmptyBrand
	}

	s.logger.Info("starting brand kit generation",
		zap.String("brand", req.BrandName),
		zap.Int("styles", len(req.Styles)),
		zap.Int("extra_candidates", len(req.ExtraCandidates)),
	)

	concepts, err := s.orchestrator.GenerateAll(ctx, req.Styles, req.Signals, req.Palette, &req.Brief)
	if err != nil {
		s.metrics.RecordBatch("failed")
		return nil, fmt.Errorf("generate concepts: %w", err)
	}
	if len(concepts) == len(req.Styles) {
		s.metrics.RecordBatch("full")
	} else {
		s.metrics.RecordBatch("partial")
	}

	candidates := make([]domain.GeneratedConcept, 0, len(concepts)+len(req.ExtraCandidates))
	candidates = append(candidates, concepts...)
	candidates = append(candidates, req.ExtraCandidates...)

	winners, err := s.selector.SelectWinners(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("select winners: %w", err)
	}

	out := s.critic.Review(critic.Input{
		Brief:       req.Brief,
		Signals:     req.Signals,
		Palette:     req.Palette,
		Fonts:       req.Fonts,
		TypeScale:   req.TypeScale,
		ColorSystem: req.ColorSystem,
	})

	s.metrics.RecordVerdict(string(out.Report.Verdict), len(out.Report.Fixes))

	result := &GenerateResult{
		RunID:            uuid.NewString(),
		Winners:          winners,
		Report:           out.Report,
		FixedPalette:     out.FixedPalette,
		FixedColorSystem: out.FixedColorSystem,
	}

	if s.runs != nil {
		if err := s.persist(ctx, req.BrandName, result); err != nil {
			// Сгенерированный набор важнее истории: отдаём результат,
			// ошибку записи только логируем
			s.logger.Error("failed to persist run", zap.Error(err), zap.String("run_id", result.RunID))
		}
	}

	s.logger.Info("brand kit generation finished",
		zap.String("run_id", result.RunID),
		zap.Int("winners", len(winners)),
		zap.String("verdict", string(out.Report.Verdict)),
	)

	return result, nil
}

func (s *BrandKitService) persist(ctx context.Context, brandName string, result *GenerateResult) error {
	record := &repository.RunRecord{
		ID:           result.RunID,
		BrandName:    brandName,
		Verdict:      result.Report.Verdict,
		OverallScore: result.Report.Scores.Overall,
		ConceptCount: len(result.Winners),
	}
	if err := s.runs.CreateRun(ctx, record); err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	if err := s.runs.SaveConcepts(ctx, result.RunID, result.Winners); err != nil {
		return fmt.Errorf("save concepts: %w", err)
	}
	return nil
}

func (s *BrandKitService) ListRecentRuns(ctx context.Context, limit int) ([]repository.RunRecord, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.ListRecent(ctx, limit)
}
