package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ksafonov/brandforge/internal/domain"
	"github.com/ksafonov/brandforge/internal/repository"
	pgRepo "github.com/ksafonov/brandforge/internal/repository/postgres"
)

var testDB *pgRepo.DB

func TestMain(m *testing.M) {
	if os.Getenv("SHORT_TESTS") == "1" {
		os.Exit(0)
	}

	ctx := context.Background()

	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		panic(err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}

	testDB, err = pgRepo.New(ctx, connStr)
	if err != nil {
		panic(err)
	}

	_, err = testDB.Pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS runs (
            id UUID PRIMARY KEY,
            brand_name TEXT NOT NULL,
            verdict TEXT NOT NULL,
            overall_score INT NOT NULL,
            concept_count INT NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS concepts (
            id BIGSERIAL PRIMARY KEY,
            run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
            style TEXT NOT NULL,
            image_url TEXT NOT NULL,
            prompt TEXT NOT NULL DEFAULT '',
            negative_prompt TEXT NOT NULL DEFAULT '',
            seed BIGINT NOT NULL DEFAULT 0,
            score INT NOT NULL,
            flags TEXT NOT NULL DEFAULT '',
            attempt_count INT NOT NULL,
            passed BOOLEAN NOT NULL DEFAULT false
        );
    `)
	if err != nil {
		panic(err)
	}

	code := m.Run()

	testDB.Close()
	pgContainer.Terminate(ctx)

	os.Exit(code)
}

func TestRunRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewRunRepo(testDB)

	run := &repository.RunRecord{
		ID:           uuid.NewString(),
		BrandName:    "Northwind",
		Verdict:      domain.VerdictApproveWithWarnings,
		OverallScore: 8,
		ConceptCount: 2,
	}
	if err := repo.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreateRun() did not set CreatedAt")
	}

	concepts := []domain.GeneratedConcept{
		{
			Style:            domain.StyleWordmark,
			ImageURL:         "https://images.test/1.png",
			Prompt:           "wordmark logo for Northwind",
			NegativePrompt:   "photorealistic",
			Seed:             42,
			Score:            81,
			EvaluationFlags:  []domain.DefectFlag{domain.FlagCliche},
			AttemptCount:     1,
			PassedEvaluation: true,
		},
		{
			Style:            domain.StyleAbstract,
			ImageURL:         "https://images.test/2.png",
			Score:            64,
			AttemptCount:     2,
			PassedEvaluation: false,
		},
	}
	if err := repo.SaveConcepts(ctx, run.ID, concepts); err != nil {
		t.Fatalf("SaveConcepts() error = %v", err)
	}

	found, err := repo.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if found.BrandName != "Northwind" {
		t.Errorf("GetRun() brand = %v, want Northwind", found.BrandName)
	}
	if found.Verdict != domain.VerdictApproveWithWarnings {
		t.Errorf("GetRun() verdict = %v, want approve_with_warnings", found.Verdict)
	}

	_, err = repo.GetRun(ctx, uuid.NewString())
	if !errors.Is(err, domain.ErrRunNotFound) {
		t.Errorf("GetRun() error = %v, want ErrRunNotFound", err)
	}

	stored, err := repo.GetConcepts(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetConcepts() error = %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("GetConcepts() got %d concepts, want 2", len(stored))
	}
	if stored[0].Style != domain.StyleWordmark {
		t.Errorf("concept style = %v, want wordmark", stored[0].Style)
	}
	if stored[0].Seed != 42 {
		t.Errorf("concept seed = %v, want 42", stored[0].Seed)
	}
	if len(stored[0].EvaluationFlags) != 1 || stored[0].EvaluationFlags[0] != domain.FlagCliche {
		t.Errorf("concept flags = %v, want [cliche]", stored[0].EvaluationFlags)
	}
	if !stored[0].PassedEvaluation {
		t.Error("first concept should have passed evaluation")
	}
	if stored[1].PassedEvaluation {
		t.Error("second concept should not have passed evaluation")
	}
}

func TestRunRepository_ListRecent_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewRunRepo(testDB)

	for i := 0; i < 3; i++ {
		run := &repository.RunRecord{
			ID:           uuid.NewString(),
			BrandName:    "Batch",
			Verdict:      domain.VerdictApprove,
			OverallScore: 9,
			ConceptCount: 1,
		}
		if err := repo.CreateRun(ctx, run); err != nil {
			t.Fatalf("CreateRun() error = %v", err)
		}
	}

	runs, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("ListRecent() got %d runs, want 2", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].CreatedAt.After(runs[i-1].CreatedAt) {
			t.Error("ListRecent() runs are not sorted newest first")
		}
	}
}
