// Package eval оценивает сгенерированные логотипы по рубрике стиля и
// готовит промпты для повторной попытки.
package eval

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ksafonov/brandforge/internal/cache"
	"github.com/ksafonov/brandforge/internal/domain"
	"github.com/ksafonov/brandforge/internal/llm"
	"github.com/ksafonov/brandforge/internal/metrics"
)

type Evaluator interface {
	Evaluate(ctx context.Context, imageURL string, style domain.Style, brandName string) (*domain.EvaluationResult, error)
}

const evaluatorSystemPrompt = `You are a senior brand identity reviewer scoring one logo image.

%s

Known defect tags: photorealistic, complex_scene, blurry_edges, illegible_text,
off_palette, cliche, over_detailed, bad_composition.

Response format (JSON only):
{
  "score": 0-100,
  "flags": ["tag", ...],
  "strengths": ["short point", ...],
  "refinement_instructions": "one paragraph telling the generator what to change"
}`

type VisionEvaluator struct {
	llm      llm.VisionClient
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewVisionEvaluator(client llm.VisionClient, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *VisionEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}
	return &VisionEvaluator{
		llm:      client,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (e *VisionEvaluator) WithMetrics(m *metrics.Metrics) *VisionEvaluator {
	e.metrics = m
	return e
}

func (e *VisionEvaluator) Evaluate(ctx context.Context, imageURL string, style domain.Style, brandName string) (*domain.EvaluationResult, error) {
	key := cacheKey(imageURL, style)
	if e.cache != nil {
		if v, ok := e.cache.Get(key); ok {
			if res, ok := v.(*domain.EvaluationResult); ok {
				e.logger.Debug("evaluation cache hit", zap.String("style", style.String()))
				e.metrics.RecordCacheHit()
				return res, nil
			}
		}
		e.metrics.RecordCacheMiss()
	}

	rubric, graded := rubricFor(style)
	if !graded {
		// нет своей рубрики - оцениваем по generic, но честно логируем
		e.logger.Warn("no dedicated rubric for style, using generic rubric",
			zap.String("style", style.String()),
		)
	}

	system := fmt.Sprintf(evaluatorSystemPrompt, rubric)
	userPrompt := fmt.Sprintf("Brand name: %s\nLogo style: %s\nScore the attached image.", brandName, style)

	raw, err := e.llm.CompleteWithImages(ctx, system, userPrompt, []string{imageURL})
	if err != nil {
		e.metrics.RecordEvalRequest("error")
		return nil, fmt.Errorf("evaluate %s: %w", style, err)
	}

	res, err := parseEvaluation(raw)
	if err != nil {
		e.logger.Error("malformed evaluation response",
			zap.String("style", style.String()),
			zap.String("response", raw),
		)
		e.metrics.RecordEvalRequest("malformed")
		return nil, fmt.Errorf("evaluate %s: %w", style, err)
	}
	e.metrics.RecordEvalRequest("success")

	e.logger.Info("image evaluated",
		zap.String("style", style.String()),
		zap.Int("score", res.Score),
		zap.Bool("passed", res.Passed),
		zap.Int("flags", len(res.Flags)),
	)

	if e.cache != nil {
		e.cache.Set(key, res, e.cacheTTL)
	}
	return res, nil
}

// parseEvaluation разбирает JSON оценки. Кривой ответ - инфраструктурная
// ошибка, а не низкий балл: наверх уходит error, без мягких дефолтов.
func parseEvaluation(raw string) (*domain.EvaluationResult, error) {
	var parsed struct {
		Score                  int      `json:"score"`
		Flags                  []string `json:"flags"`
		Strengths              []string `json:"strengths"`
		RefinementInstructions string   `json:"refinement_instructions"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("parse evaluation: %w", err)
	}
	if parsed.Score < 0 || parsed.Score > 100 {
		return nil, fmt.Errorf("parse evaluation: score %d out of range", parsed.Score)
	}

	flags := make([]domain.DefectFlag, 0, len(parsed.Flags))
	for _, f := range parsed.Flags {
		flags = append(flags, domain.DefectFlag(f))
	}

	return &domain.EvaluationResult{
		Score:                  parsed.Score,
		Passed:                 parsed.Score >= domain.AcceptThreshold,
		Flags:                  flags,
		Strengths:              parsed.Strengths,
		RefinementInstructions: parsed.RefinementInstructions,
	}, nil
}

func cacheKey(imageURL string, style domain.Style) string {
	sum := sha256.Sum256([]byte(imageURL + "|" + style.String()))
	return "eval:" + hex.EncodeToString(sum[:])
}
