package flux

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ksafonov/brandforge/internal/metrics"
	"github.com/ksafonov/brandforge/internal/ratelimit"
	"github.com/ksafonov/brandforge/internal/synth"
)

const providerName = "flux"

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client - HTTP клиент к flux-совместимому API генерации изображений
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	limiter *ratelimit.Limiter
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func New(cfg Config, limiter *ratelimit.Limiter, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.bfl.ml/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "flux-pro-1.1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		logger:  logger,
	}
}

func (c *Client) WithMetrics(m *metrics.Metrics) *Client {
	c.metrics = m
	return c
}

type generateRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Seed           *int64 `json:"seed,omitempty"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type generateResponse struct {
	ImageURL string `json:"image_url"`
	Seed     int64  `json:"seed"`
	Error    string `json:"error,omitempty"`
}

func (c *Client) Generate(ctx context.Context, req synth.Request) (*synth.Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, providerName); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	body, err := json.Marshal(generateRequest{
		Model:          c.model,
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		Seed:           req.Seed,
		Width:          1024,
		Height:         1024,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Key", c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.metrics.RecordSynthRequest(providerName, "error", time.Since(start))
		return nil, fmt.Errorf("%w: %v", synth.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests, http.StatusPaymentRequired:
		c.metrics.RecordSynthRequest(providerName, "quota", time.Since(start))
		return nil, synth.ErrQuotaExceeded
	default:
		c.logger.Error("flux request failed",
			zap.Int("status", resp.StatusCode),
		)
		c.metrics.RecordSynthRequest(providerName, "error", time.Since(start))
		return nil, fmt.Errorf("%w: status %d", synth.ErrGenerationFailed, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.metrics.RecordSynthRequest(providerName, "error", time.Since(start))
		return nil, fmt.Errorf("%w: decode response: %v", synth.ErrGenerationFailed, err)
	}
	if out.Error != "" {
		c.metrics.RecordSynthRequest(providerName, "error", time.Since(start))
		return nil, fmt.Errorf("%w: %s", synth.ErrGenerationFailed, out.Error)
	}
	if out.ImageURL == "" {
		c.metrics.RecordSynthRequest(providerName, "error", time.Since(start))
		return nil, fmt.Errorf("%w: empty image url", synth.ErrGenerationFailed)
	}

	c.logger.Debug("image generated",
		zap.Int64("seed", out.Seed),
		zap.Duration("elapsed", time.Since(start)),
	)
	c.metrics.RecordSynthRequest(providerName, "success", time.Since(start))

	return &synth.Result{ImageURL: out.ImageURL, Seed: out.Seed}, nil
}
