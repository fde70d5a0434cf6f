// Package pipeline - ядро генерации: пайплайн одного стиля и оркестратор,
// гоняющий несколько стилей под общим лимитом параллелизма.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ksafonov/brandforge/internal/domain"
	"github.com/ksafonov/brandforge/internal/eval"
	"github.com/ksafonov/brandforge/internal/metrics"
	"github.com/ksafonov/brandforge/internal/prompt"
	"github.com/ksafonov/brandforge/internal/synth"
)

// MaxAttempts - бюджет попыток на один стиль. Ретраи существуют ради
// качества, а не ради маскировки инфраструктурных сбоев: ошибка сервиса
// обрывает пайплайн стиля сразу.
const MaxAttempts = 2

type StylePipeline struct {
	prompts   prompt.Builder
	synth     synth.Synthesizer
	evaluator eval.Evaluator
	refiner   eval.Refiner
	logger    *zap.Logger
	metrics   *metrics.Metrics

	// FixedSeed, если задан, пробрасывается в каждый запрос синтеза
	FixedSeed *int64
}

func NewStylePipeline(prompts prompt.Builder, s synth.Synthesizer, e eval.Evaluator, r eval.Refiner, logger *zap.Logger) *StylePipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StylePipeline{
		prompts:   prompts,
		synth:     s,
		evaluator: e,
		refiner:   r,
		logger:    logger,
	}
}

func (p *StylePipeline) WithMetrics(m *metrics.Metrics) *StylePipeline {
	p.metrics = m
	return p
}

// Run прогоняет один стиль: generate -> evaluate -> (refine -> regenerate)*.
// Никогда не возвращает (nil, nil): либо концепт, либо ошибка.
func (p *StylePipeline) Run(ctx context.Context, style domain.Style, signals domain.BrandSignals, palette domain.Palette, brief *domain.DesignBrief) (*domain.GeneratedConcept, error) {
	if !style.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStyle, style)
	}

	start := time.Now()
	prompts := p.prompts.Build(style, signals, palette, brief)

	var best *domain.GenerationAttempt

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		res, err := p.synth.Generate(ctx, synth.Request{
			Prompt:         prompts.Prompt,
			NegativePrompt: prompts.NegativePrompt,
			Seed:           p.FixedSeed,
		})
		if err != nil {
			p.metrics.RecordGeneration(style.String(), "error", time.Since(start))
			return nil, fmt.Errorf("style %s attempt %d: synthesis: %w", style, attempt, err)
		}

		evalRes, err := p.evaluator.Evaluate(ctx, res.ImageURL, style, signals.Name)
		if err != nil {
			p.metrics.RecordGeneration(style.String(), "error", time.Since(start))
			return nil, fmt.Errorf("style %s attempt %d: evaluation: %w", style, attempt, err)
		}

		// лучший результат обновляется только строго большим баллом:
		// при равенстве остаётся более ранняя попытка
		if best == nil || evalRes.Score > best.Eval.Score {
			best = &domain.GenerationAttempt{
				ImageURL: res.ImageURL,
				Seed:     res.Seed,
				Prompts:  prompts,
				Eval:     *evalRes,
			}
		}

		if evalRes.Passed {
			p.logger.Info("concept accepted",
				zap.String("style", style.String()),
				zap.Int("attempt", attempt),
				zap.Int("score", evalRes.Score),
			)
			p.metrics.RecordGeneration(style.String(), "passed", time.Since(start))
			return conceptFrom(style, res.ImageURL, res.Seed, prompts, evalRes, attempt, true), nil
		}

		p.logger.Info("concept below threshold",
			zap.String("style", style.String()),
			zap.Int("attempt", attempt),
			zap.Int("score", evalRes.Score),
		)

		if attempt < MaxAttempts {
			prompts, err = p.refiner.Refine(ctx, prompts, evalRes, style, signals, attempt+1)
			if err != nil {
				p.metrics.RecordGeneration(style.String(), "error", time.Since(start))
				return nil, fmt.Errorf("style %s attempt %d: refinement: %w", style, attempt, err)
			}
		}
	}

	// бюджет исчерпан - отдаём лучшее из того что было
	p.logger.Warn("attempt budget exhausted, returning best effort",
		zap.String("style", style.String()),
		zap.Int("best_score", best.Eval.Score),
	)
	p.metrics.RecordGeneration(style.String(), "fallback", time.Since(start))
	return conceptFrom(style, best.ImageURL, best.Seed, best.Prompts, &best.Eval, MaxAttempts, false), nil
}

func conceptFrom(style domain.Style, imageURL string, seed int64, prompts domain.PromptSet, evalRes *domain.EvaluationResult, attemptCount int, passed bool) *domain.GeneratedConcept {
	return &domain.GeneratedConcept{
		Style:            style,
		ImageURL:         imageURL,
		Prompt:           prompts.Prompt,
		NegativePrompt:   prompts.NegativePrompt,
		Seed:             seed,
		Score:            evalRes.Score,
		EvaluationFlags:  evalRes.Flags,
		AttemptCount:     attemptCount,
		PassedEvaluation: passed,
	}
}
