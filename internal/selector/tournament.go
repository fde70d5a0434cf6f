// Package selector разрешает дубликаты: когда для одного стиля есть
// несколько кандидатов, турнир выбирает ровно одного победителя.
package selector

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ksafonov/brandforge/internal/domain"
	"github.com/ksafonov/brandforge/internal/metrics"
)

// DefaultScore присваивается кандидату, чей индекс сервис скоринга
// потерял или чей ответ не разобрался
const DefaultScore = 50

// ImageScore - оценка одной картинки из мульти-image вызова
type ImageScore struct {
	Index     int
	Score     int
	Reasoning string
}

// VisionScorer - сервис сравнительного скоринга. Один вызов на группу,
// все картинки сразу.
type VisionScorer interface {
	ScoreImages(ctx context.Context, imageURLs []string) ([]ImageScore, error)
}

type Selector struct {
	scorer  VisionScorer
	logger  *zap.Logger
	metrics *metrics.Metrics

	// MaxParallelGroups ограничивает одновременные турниры разных стилей
	MaxParallelGroups int
}

func New(scorer VisionScorer, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		scorer:            scorer,
		logger:            logger,
		MaxParallelGroups: 2,
	}
}

func (s *Selector) WithMetrics(m *metrics.Metrics) *Selector {
	s.metrics = m
	return s
}

// SelectWinners группирует кандидатов по стилю и выбирает победителя в
// каждой группе. Группа из одного кандидата побеждает без вызова сервиса.
func (s *Selector) SelectWinners(ctx context.Context, candidates []domain.GeneratedConcept) ([]domain.GeneratedConcept, error) {
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}

	// группировка с сохранением порядка появления стилей
	var order []domain.Style
	groups := make(map[domain.Style][]domain.GeneratedConcept)
	for _, c := range candidates {
		if _, seen := groups[c.Style]; !seen {
			order = append(order, c.Style)
		}
		groups[c.Style] = append(groups[c.Style], c)
	}

	winners := make([]domain.GeneratedConcept, len(order))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.MaxParallelGroups)
	for i, style := range order {
		i, style := i, style
		g.Go(func() error {
			winners[i] = s.pickWinner(gctx, style, groups[style])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return winners, nil
}

func (s *Selector) pickWinner(ctx context.Context, style domain.Style, group []domain.GeneratedConcept) domain.GeneratedConcept {
	if len(group) == 1 {
		return group[0]
	}

	urls := make([]string, len(group))
	for i, c := range group {
		urls[i] = c.ImageURL
	}

	// parsed[i] - балл пришёл из ответа, не дефолт. При равенстве баллов
	// распарсенный кандидат бьёт дефолтного, дальше побеждает более ранний.
	scores := make([]int, len(group))
	parsed := make([]bool, len(group))
	for i := range scores {
		scores[i] = DefaultScore
	}

	s.metrics.RecordTournamentRound()
	resp, err := s.scorer.ScoreImages(ctx, urls)
	if err != nil {
		s.logger.Warn("tournament scoring failed, defaulting all scores",
			zap.String("style", style.String()),
			zap.Error(err),
		)
	} else {
		for _, sc := range resp {
			if sc.Index < 0 || sc.Index >= len(group) {
				continue
			}
			scores[sc.Index] = sc.Score
			parsed[sc.Index] = true
		}
	}

	best := 0
	for i := 1; i < len(group); i++ {
		if scores[i] > scores[best] || (scores[i] == scores[best] && parsed[i] && !parsed[best]) {
			best = i
		}
	}

	s.logger.Info("tournament winner selected",
		zap.String("style", style.String()),
		zap.Int("candidates", len(group)),
		zap.Int("winner_index", best),
		zap.Int("winner_score", scores[best]),
	)

	return group[best]
}
