package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ksafonov/brandforge/internal/domain"
)

// DefaultConcurrencyLimit - сколько стилей генерируется одновременно
const DefaultConcurrencyLimit = 2

var ErrAllStylesFailed = errors.New("all style pipelines failed")

// ConceptGenerator - то, что оркестратор запускает per-style.
// В проде это *StylePipeline, в тестах - заглушка.
type ConceptGenerator interface {
	Run(ctx context.Context, style domain.Style, signals domain.BrandSignals, palette domain.Palette, brief *domain.DesignBrief) (*domain.GeneratedConcept, error)
}

type Orchestrator struct {
	generator ConceptGenerator
	limit     int
	logger    *zap.Logger
}

func NewOrchestrator(generator ConceptGenerator, limit int, logger *zap.Logger) *Orchestrator {
	if limit <= 0 {
		limit = DefaultConcurrencyLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		generator: generator,
		limit:     limit,
		logger:    logger,
	}
}

// settled - исход одного стиля: концепт либо причина провала
type settled struct {
	concept *domain.GeneratedConcept
	err     error
}

// GenerateAll запускает пайплайны стилей на пуле воркеров размера
// min(limit, len(styles)). Воркеры разбирают стили через атомарный счётчик,
// каждый полностью дорабатывает свой стиль перед тем как взять следующий.
// Провал одного стиля не отменяет остальные; батч падает только если не
// выжил ни один стиль.
func (o *Orchestrator) GenerateAll(ctx context.Context, styles []domain.Style, signals domain.BrandSignals, palette domain.Palette, brief *domain.DesignBrief) ([]domain.GeneratedConcept, error) {
	if len(styles) == 0 {
		return nil, domain.ErrNoStyles
	}

	workers := o.limit
	if len(styles) < workers {
		workers = len(styles)
	}

	o.logger.Info("starting generation batch",
		zap.Int("styles", len(styles)),
		zap.Int("workers", workers),
	)

	outcomes := make([]settled, len(styles))
	var next atomic.Int64
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				idx := int(next.Add(1)) - 1
				if idx >= len(styles) {
					return
				}
				concept, err := o.generator.Run(ctx, styles[idx], signals, palette, brief)
				outcomes[idx] = settled{concept: concept, err: err}
			}
		}()
	}
	wg.Wait()

	concepts := make([]domain.GeneratedConcept, 0, len(styles))
	var reasons []string
	for i, out := range outcomes {
		if out.err != nil {
			o.logger.Warn("style pipeline failed",
				zap.String("style", styles[i].String()),
				zap.Error(out.err),
			)
			reasons = append(reasons, fmt.Sprintf("%s: %v", styles[i], out.err))
			continue
		}
		concepts = append(concepts, *out.concept)
	}

	if len(concepts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrAllStylesFailed, strings.Join(reasons, "; "))
	}

	o.logger.Info("generation batch finished",
		zap.Int("succeeded", len(concepts)),
		zap.Int("failed", len(reasons)),
	)

	return concepts, nil
}
