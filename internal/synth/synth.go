package synth

import (
	"context"
	"errors"
)

var (
	ErrGenerationFailed = errors.New("image generation failed")
	ErrQuotaExceeded    = errors.New("image generation quota exceeded")
)

// Request - запрос на синтез одного изображения
type Request struct {
	Prompt         string
	NegativePrompt string
	Seed           *int64 // nil - провайдер выбирает сам
}

type Result struct {
	ImageURL string
	Seed     int64
}

// Synthesizer - внешний сервис генерации изображений. Ошибки сети и квоты
// не ретраятся пайплайном качества, они фатальны для попытки.
type Synthesizer interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
