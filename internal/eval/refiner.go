package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ksafonov/brandforge/internal/domain"
	"github.com/ksafonov/brandforge/internal/llm"
)

// Refiner превращает проваленную оценку в новый PromptSet для
// следующей попытки
type Refiner interface {
	Refine(ctx context.Context, current domain.PromptSet, eval *domain.EvaluationResult, style domain.Style, signals domain.BrandSignals, nextAttempt int) (domain.PromptSet, error)
}

const refinerSystemPrompt = `You are a prompt engineer for a logo image generator.
A previous attempt scored below the acceptance bar. Rewrite the generation
prompt to address the reviewer's feedback while keeping the brand and style
requirements intact. Strengthen the negative prompt against the flagged defects.

Response format (JSON only):
{"prompt": "...", "negative_prompt": "..."}`

type LLMRefiner struct {
	llm    llm.Client
	logger *zap.Logger
}

func NewLLMRefiner(client llm.Client, logger *zap.Logger) *LLMRefiner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMRefiner{llm: client, logger: logger}
}

func (r *LLMRefiner) Refine(ctx context.Context, current domain.PromptSet, eval *domain.EvaluationResult, style domain.Style, signals domain.BrandSignals, nextAttempt int) (domain.PromptSet, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Brand: %s\nStyle: %s\nUpcoming attempt: %d\n\n", signals.Name, style, nextAttempt)
	fmt.Fprintf(&sb, "Current prompt:\n%s\n\n", current.Prompt)
	fmt.Fprintf(&sb, "Current negative prompt:\n%s\n\n", current.NegativePrompt)
	fmt.Fprintf(&sb, "Reviewer score: %d/100\n", eval.Score)

	if len(eval.Flags) > 0 {
		tags := make([]string, len(eval.Flags))
		for i, f := range eval.Flags {
			tags[i] = string(f)
		}
		fmt.Fprintf(&sb, "Defects: %s\n", strings.Join(tags, ", "))
	}
	if len(eval.Strengths) > 0 {
		fmt.Fprintf(&sb, "Keep these strengths: %s\n", strings.Join(eval.Strengths, "; "))
	}
	if eval.RefinementInstructions != "" {
		fmt.Fprintf(&sb, "Reviewer instructions: %s\n", eval.RefinementInstructions)
	}

	raw, err := r.llm.CompleteWithSystem(ctx, refinerSystemPrompt, sb.String())
	if err != nil {
		return domain.PromptSet{}, fmt.Errorf("refine %s: %w", style, err)
	}

	var parsed struct {
		Prompt         string `json:"prompt"`
		NegativePrompt string `json:"negative_prompt"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &parsed); err != nil {
		r.logger.Error("malformed refiner response", zap.String("response", raw))
		return domain.PromptSet{}, fmt.Errorf("refine %s: parse: %w", style, err)
	}
	if parsed.Prompt == "" {
		return domain.PromptSet{}, fmt.Errorf("refine %s: empty prompt in response", style)
	}

	// рефайнер может не тронуть негативный промпт - тогда оставляем старый
	if parsed.NegativePrompt == "" {
		parsed.NegativePrompt = current.NegativePrompt
	}

	r.logger.Debug("prompt refined",
		zap.String("style", style.String()),
		zap.Int("next_attempt", nextAttempt),
	)

	return domain.PromptSet{Prompt: parsed.Prompt, NegativePrompt: parsed.NegativePrompt}, nil
}
