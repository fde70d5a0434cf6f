package selector

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ksafonov/brandforge/internal/llm"
)

// Критерии сравнения живут в инструкции сервису, а не в локальной эвристике:
// штрафы за фотореализм и перегруз должен выносить скоринг, не мы.
const scorerSystemPrompt = `You are judging candidate logo images for the same brand and style.

For EACH image, give a score from 0 to 100 and one sentence of reasoning.

Penalize heavily:
- photorealism or photographic textures
- complex scenes and backgrounds
- unclear or ragged edges
- over-detailing that dies at small sizes

Reward:
- clean vector-like execution
- geometric simplicity
- scalable, memorable silhouettes

Response format (JSON only):
[{"index": 0, "score": 85, "reasoning": "..."}, ...]
Indices refer to the order the images were attached.`

// LLMScorer реализует VisionScorer поверх vision-модели
type LLMScorer struct {
	llm    llm.VisionClient
	logger *zap.Logger
}

func NewLLMScorer(client llm.VisionClient, logger *zap.Logger) *LLMScorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMScorer{llm: client, logger: logger}
}

func (s *LLMScorer) ScoreImages(ctx context.Context, imageURLs []string) ([]ImageScore, error) {
	prompt := fmt.Sprintf("Compare the %d attached logo candidates and score each one.", len(imageURLs))

	raw, err := s.llm.CompleteWithImages(ctx, scorerSystemPrompt, prompt, imageURLs)
	if err != nil {
		return nil, fmt.Errorf("score images: %w", err)
	}

	var parsed []struct {
		Index     int    `json:"index"`
		Score     int    `json:"score"`
		Reasoning string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &parsed); err != nil {
		// нечитаемый ответ - не фатален: селектор раздаст дефолтные баллы
		s.logger.Warn("unparsable tournament response", zap.String("response", raw))
		return nil, nil
	}

	out := make([]ImageScore, 0, len(parsed))
	for _, p := range parsed {
		out = append(out, ImageScore{Index: p.Index, Score: p.Score, Reasoning: p.Reasoning})
	}
	return out, nil
}
