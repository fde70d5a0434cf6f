package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/ksafonov/brandforge/internal/cache/memory"
	"github.com/ksafonov/brandforge/internal/config"
	"github.com/ksafonov/brandforge/internal/critic"
	"github.com/ksafonov/brandforge/internal/domain"
	"github.com/ksafonov/brandforge/internal/eval"
	"github.com/ksafonov/brandforge/internal/llm"
	llmmock "github.com/ksafonov/brandforge/internal/llm/mock"
	"github.com/ksafonov/brandforge/internal/llm/openrouter"
	"github.com/ksafonov/brandforge/internal/metrics"
	"github.com/ksafonov/brandforge/internal/pipeline"
	"github.com/ksafonov/brandforge/internal/prompt"
	"github.com/ksafonov/brandforge/internal/ratelimit"
	"github.com/ksafonov/brandforge/internal/repository"
	"github.com/ksafonov/brandforge/internal/repository/postgres"
	"github.com/ksafonov/brandforge/internal/selector"
	"github.com/ksafonov/brandforge/internal/service"
	"github.com/ksafonov/brandforge/internal/synth"
	"github.com/ksafonov/brandforge/internal/synth/flux"
	synthmock "github.com/ksafonov/brandforge/internal/synth/mock"
)

func main() {
	brandName := flag.String("brand", "", "brand name (required)")
	industry := flag.String("industry", "technology", "brand industry")
	stylesFlag := flag.String("styles", "wordmark,monogram,abstract", "comma-separated logo styles")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve /metrics on this address")
	flag.Parse()

	if *brandName == "" {
		fmt.Fprintln(os.Stderr, "usage: brandforge -brand <name> [-industry <industry>] [-styles <list>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	styles, err := parseStyles(*stylesFlag)
	if err != nil {
		logger.Fatal("invalid styles", zap.Error(err))
	}

	m := metrics.New()
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	chatClient, visionClient := buildLLM(cfg, logger)
	limiter := ratelimit.New(ratelimit.Config{RequestsPerMinute: cfg.RateLimit.RequestsPerMinute})
	synthesizer := buildSynth(cfg, limiter, logger, m)

	evalCache := memory.NewWithContext(ctx)
	evaluator := eval.NewVisionEvaluator(visionClient, evalCache, cfg.Cache.TTL, logger).WithMetrics(m)
	refiner := eval.NewLLMRefiner(chatClient, logger)

	stylePipeline := pipeline.NewStylePipeline(prompt.NewStaticBuilder(), synthesizer, evaluator, refiner, logger).WithMetrics(m)
	orchestrator := pipeline.NewOrchestrator(stylePipeline, cfg.Pipeline.ConcurrencyLimit, logger)
	sel := selector.New(selector.NewLLMScorer(visionClient, logger), logger).WithMetrics(m)

	var runs repository.RunRepository
	if cfg.Database.URL != "" {
		db, err := postgres.New(ctx, cfg.Database.URL)
		if err != nil {
			logger.Fatal("connect to database", zap.Error(err))
		}
		defer db.Close()
		runs = postgres.NewRunRepo(db)
	}

	svc := service.NewBrandKitService(orchestrator, sel, critic.New(logger), runs, m, logger)

	result, err := svc.Generate(ctx, buildRequest(*brandName, *industry, styles))
	if err != nil {
		logger.Fatal("generation failed", zap.Error(err))
	}

	out, err := json.MarshalIndent(map[string]any{
		"run_id":  result.RunID,
		"winners": result.Winners,
		"report":  result.Report,
		"palette": result.FixedPalette,
		"colors":  result.FixedColorSystem,
	}, "", "  ")
	if err != nil {
		logger.Fatal("encode result", zap.Error(err))
	}
	fmt.Println(string(out))
}

func parseStyles(raw string) ([]domain.Style, error) {
	var styles []domain.Style
	for _, part := range strings.Split(raw, ",") {
		s, err := domain.ParseStyle(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		styles = append(styles, s)
	}
	return styles, nil
}

func buildLLM(cfg *config.Config, logger *zap.Logger) (llm.Client, llm.VisionClient) {
	if cfg.LLM.Provider == "mock" {
		client := llmmock.New().WithResponse(
			`{"score": 84, "passed": true, "flags": [], "strengths": ["clean silhouette"], "refinement_instructions": ""}`,
		)
		return client, client
	}
	client := openrouter.New(openrouter.Config{
		APIKey:      cfg.LLM.OpenRouter.APIKey,
		Model:       cfg.LLM.OpenRouter.Model,
		VisionModel: cfg.LLM.OpenRouter.VisionModel,
		BaseURL:     cfg.LLM.OpenRouter.BaseURL,
	}, logger)
	return client, client
}

func buildSynth(cfg *config.Config, limiter *ratelimit.Limiter, logger *zap.Logger, m *metrics.Metrics) synth.Synthesizer {
	if cfg.Synth.Provider == "mock" {
		return synthmock.New()
	}
	return flux.New(flux.Config{
		APIKey:  cfg.Synth.APIKey,
		BaseURL: cfg.Synth.BaseURL,
		Model:   cfg.Synth.Model,
		Timeout: cfg.Synth.Timeout,
	}, limiter, logger).WithMetrics(m)
}

// buildRequest собирает запрос с типовой дизайн-системой. Бриф, палитра и
// пары шрифтов приходят из внешнего тулинга; здесь разумные значения по
// умолчанию, чтобы критик отработал на полном входе.
func buildRequest(brandName, industry string, styles []domain.Style) service.GenerateRequest {
	return service.GenerateRequest{
		BrandName: brandName,
		Signals: domain.BrandSignals{
			Name:        brandName,
			Industry:    industry,
			Personality: []string{"confident", "precise"},
		},
		Brief: domain.DesignBrief{
			Aesthetic: "minimal",
			Sector:    industry,
			Formality: "medium",
		},
		Palette: domain.Palette{Colors: []domain.PaletteColor{
			{Role: "primary", Name: "Deep Azure", Hex: "#1d4e89"},
			{Role: "secondary", Name: "Slate", Hex: "#425466"},
			{Role: "accent", Name: "Signal Orange", Hex: "#d9480f"},
		}},
		Fonts: domain.FontPairing{
			Display:       domain.Font{Name: "Archivo", Category: "sans-serif", Classification: "geometric", Weights: []int{400, 600, 700}},
			Body:          domain.Font{Name: "Source Serif 4", Category: "serif", Classification: "humanist", Weights: []int{400, 600}},
			DisplayWeight: 700,
		},
		ColorSystem: &domain.ColorSystem{
			Brand: domain.BrandColors{
				Primary:    "#1d4e89",
				Secondary:  "#425466",
				Accent:     "#d9480f",
				Muted:      "#5f6c7b",
				Background: "#ffffff",
				Surface:    "#f5f7fa",
				Text:       "#14202e",
			},
			Checks: []domain.AccessibilityCheck{
				{Label: "text on background", Foreground: "#14202e", Background: "#ffffff", Ratio: 15.9, Passes: true},
				{Label: "accent on background", Foreground: "#d9480f", Background: "#ffffff", Ratio: 4.29, Passes: false},
				{Label: "muted on surface", Foreground: "#5f6c7b", Background: "#f5f7fa", Ratio: 4.99, Passes: true},
			},
		},
		Styles: styles,
	}
}
