package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/ksafonov/brandforge/internal/domain"
	"github.com/ksafonov/brandforge/internal/prompt"
	synthmock "github.com/ksafonov/brandforge/internal/synth/mock"
)

// mockEvaluator выдаёт баллы по очереди, по одному на вызов
type mockEvaluator struct {
	scores []int
	err    error
	calls  int
}

func (m *mockEvaluator) Evaluate(ctx context.Context, imageURL string, style domain.Style, brandName string) (*domain.EvaluationResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	score := m.scores[0]
	if len(m.scores) > 1 {
		m.scores = m.scores[1:]
	}
	return &domain.EvaluationResult{
		Score:                  score,
		Passed:                 score >= domain.AcceptThreshold,
		RefinementInstructions: "try harder",
	}, nil
}

type mockRefiner struct {
	calls int
	err   error
}

func (m *mockRefiner) Refine(ctx context.Context, current domain.PromptSet, eval *domain.EvaluationResult, style domain.Style, signals domain.BrandSignals, nextAttempt int) (domain.PromptSet, error) {
	m.calls++
	if m.err != nil {
		return domain.PromptSet{}, m.err
	}
	return domain.PromptSet{
		Prompt:         fmt.Sprintf("refined %d: %s", nextAttempt, current.Prompt),
		NegativePrompt: current.NegativePrompt,
	}, nil
}

func newPipeline(e *mockEvaluator, r *mockRefiner, s *synthmock.Client) *StylePipeline {
	return NewStylePipeline(prompt.NewStaticBuilder(), s, e, r, zap.NewNop())
}

var testSignals = domain.BrandSignals{Name: "Acme", Industry: "software"}

func TestStylePipeline_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts on first pass without refinement", func(t *testing.T) {
		evaluator := &mockEvaluator{scores: []int{80}}
		refiner := &mockRefiner{}
		s := synthmock.New()

		concept, err := newPipeline(evaluator, refiner, s).Run(ctx, domain.StyleWordmark, testSignals, domain.Palette{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if concept.AttemptCount != 1 {
			t.Errorf("AttemptCount = %d, expected 1", concept.AttemptCount)
		}
		if !concept.PassedEvaluation {
			t.Error("PassedEvaluation = false, expected true")
		}
		if concept.Score != 80 {
			t.Errorf("Score = %d, expected 80", concept.Score)
		}
		if refiner.calls != 0 {
			t.Errorf("refiner called %d times, expected 0", refiner.calls)
		}
		if s.Calls() != 1 {
			t.Errorf("synthesizer called %d times, expected 1", s.Calls())
		}
	})

	t.Run("exhausted budget falls back to best attempt", func(t *testing.T) {
		evaluator := &mockEvaluator{scores: []int{40, 40}}
		refiner := &mockRefiner{}
		s := synthmock.New()

		concept, err := newPipeline(evaluator, refiner, s).Run(ctx, domain.StyleWordmark, testSignals, domain.Palette{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if concept.AttemptCount != MaxAttempts {
			t.Errorf("AttemptCount = %d, expected %d", concept.AttemptCount, MaxAttempts)
		}
		if concept.PassedEvaluation {
			t.Error("PassedEvaluation = true, expected false")
		}
		if concept.Score != 40 {
			t.Errorf("Score = %d, expected 40", concept.Score)
		}
		if refiner.calls != 1 {
			t.Errorf("refiner called %d times, expected exactly 1", refiner.calls)
		}
	})

	t.Run("equal scores keep the earlier attempt", func(t *testing.T) {
		evaluator := &mockEvaluator{scores: []int{40, 40}}
		s := synthmock.New()

		concept, err := newPipeline(evaluator, &mockRefiner{}, s).Run(ctx, domain.StyleWordmark, testSignals, domain.Palette{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// мок синтеза нумерует картинки по порядку вызовов
		if concept.ImageURL != "https://images.mock/1.png" {
			t.Errorf("ImageURL = %q, expected the first attempt's image", concept.ImageURL)
		}
	})

	t.Run("second attempt wins on higher score", func(t *testing.T) {
		evaluator := &mockEvaluator{scores: []int{40, 60}}
		s := synthmock.New()

		concept, err := newPipeline(evaluator, &mockRefiner{}, s).Run(ctx, domain.StyleWordmark, testSignals, domain.Palette{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if concept.Score != 60 {
			t.Errorf("Score = %d, expected 60", concept.Score)
		}
		if concept.ImageURL != "https://images.mock/2.png" {
			t.Errorf("ImageURL = %q, expected the second attempt's image", concept.ImageURL)
		}
		if concept.PassedEvaluation {
			t.Error("60 is below threshold, must not be marked passed")
		}
	})

	t.Run("second attempt uses the refined prompt", func(t *testing.T) {
		evaluator := &mockEvaluator{scores: []int{40, 90}}
		s := synthmock.New()

		concept, err := newPipeline(evaluator, &mockRefiner{}, s).Run(ctx, domain.StyleWordmark, testSignals, domain.Palette{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(s.LastRequests) != 2 {
			t.Fatalf("expected 2 synth requests, got %d", len(s.LastRequests))
		}
		if s.LastRequests[1].Prompt == s.LastRequests[0].Prompt {
			t.Error("second attempt reused the unrefined prompt")
		}
		if concept.Prompt != s.LastRequests[1].Prompt {
			t.Error("concept should carry the prompt of the attempt it came from")
		}
		if concept.AttemptCount != 2 || !concept.PassedEvaluation {
			t.Errorf("AttemptCount=%d passed=%v, expected 2/true", concept.AttemptCount, concept.PassedEvaluation)
		}
	})

	t.Run("synthesis error aborts without retry", func(t *testing.T) {
		wantErr := errors.New("synthesis down")
		evaluator := &mockEvaluator{scores: []int{40}}
		s := synthmock.New().WithError(wantErr)

		_, err := newPipeline(evaluator, &mockRefiner{}, s).Run(ctx, domain.StyleWordmark, testSignals, domain.Palette{}, nil)
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected synthesis error, got %v", err)
		}
		if evaluator.calls != 0 {
			t.Errorf("evaluator called %d times after synth failure, expected 0", evaluator.calls)
		}
		if s.Calls() != 1 {
			t.Errorf("synthesizer called %d times, infrastructure errors must not be retried", s.Calls())
		}
	})

	t.Run("evaluation error aborts without retry", func(t *testing.T) {
		wantErr := errors.New("vision service down")
		evaluator := &mockEvaluator{err: wantErr}
		s := synthmock.New()

		_, err := newPipeline(evaluator, &mockRefiner{}, s).Run(ctx, domain.StyleWordmark, testSignals, domain.Palette{}, nil)
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected evaluation error, got %v", err)
		}
		if s.Calls() != 1 {
			t.Errorf("synthesizer called %d times, expected 1", s.Calls())
		}
	})

	t.Run("refinement error aborts the style", func(t *testing.T) {
		wantErr := errors.New("refiner down")
		evaluator := &mockEvaluator{scores: []int{40}}
		refiner := &mockRefiner{err: wantErr}
		s := synthmock.New()

		_, err := newPipeline(evaluator, refiner, s).Run(ctx, domain.StyleWordmark, testSignals, domain.Palette{}, nil)
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected refinement error, got %v", err)
		}
	})

	t.Run("invalid style is rejected", func(t *testing.T) {
		_, err := newPipeline(&mockEvaluator{scores: []int{80}}, &mockRefiner{}, synthmock.New()).
			Run(ctx, domain.Style("hologram"), testSignals, domain.Palette{}, nil)
		if !errors.Is(err, domain.ErrUnknownStyle) {
			t.Fatalf("expected ErrUnknownStyle, got %v", err)
		}
	})
}
