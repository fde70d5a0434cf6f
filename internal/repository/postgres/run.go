package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ksafonov/brandforge/internal/domain"
	"github.com/ksafonov/brandforge/internal/repository"
)

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) CreateRun(ctx context.Context, run *repository.RunRecord) error {
	query := `
        INSERT INTO runs (id, brand_name, verdict, overall_score, concept_count)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at
    `

	err := r.db.Pool.QueryRow(ctx, query,
		run.ID,
		run.BrandName,
		string(run.Verdict),
		run.OverallScore,
		run.ConceptCount,
	).Scan(&run.CreatedAt)

	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}

	return nil
}

func (r *RunRepo) SaveConcepts(ctx context.Context, runID string, concepts []domain.GeneratedConcept) error {
	query := `
        INSERT INTO concepts (run_id, style, image_url, prompt, negative_prompt, seed, score, flags, attempt_count, passed)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `

	for _, c := range concepts {
		flags := make([]string, 0, len(c.EvaluationFlags))
		for _, f := range c.EvaluationFlags {
			flags = append(flags, string(f))
		}

		_, err := r.db.Pool.Exec(ctx, query,
			runID,
			string(c.Style),
			c.ImageURL,
			c.Prompt,
			c.NegativePrompt,
			c.Seed,
			c.Score,
			strings.Join(flags, ","),
			c.AttemptCount,
			c.PassedEvaluation,
		)
		if err != nil {
			return fmt.Errorf("save concept %s: %w", c.Style, err)
		}
	}

	return nil
}

func (r *RunRepo) GetRun(ctx context.Context, id string) (*repository.RunRecord, error) {
	query := `
        SELECT id, brand_name, verdict, overall_score, concept_count, created_at
        FROM runs
        WHERE id = $1
    `

	var run repository.RunRecord
	var verdict string
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&run.ID,
		&run.BrandName,
		&verdict,
		&run.OverallScore,
		&run.ConceptCount,
		&run.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("get run: %w", err)
	}

	run.Verdict = domain.Verdict(verdict)
	return &run, nil
}

func (r *RunRepo) GetConcepts(ctx context.Context, runID string) ([]domain.GeneratedConcept, error) {
	query := `
        SELECT style, image_url, prompt, negative_prompt, seed, score, flags, attempt_count, passed
        FROM concepts
        WHERE run_id = $1
        ORDER BY id
    `

	rows, err := r.db.Pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("list concepts: %w", err)
	}
	defer rows.Close()

	var concepts []domain.GeneratedConcept
	for rows.Next() {
		var c domain.GeneratedConcept
		var style, flags string
		err := rows.Scan(
			&style,
			&c.ImageURL,
			&c.Prompt,
			&c.NegativePrompt,
			&c.Seed,
			&c.Score,
			&flags,
			&c.AttemptCount,
			&c.PassedEvaluation,
		)
		if err != nil {
			return nil, fmt.Errorf("scan concept: %w", err)
		}
		c.Style = domain.Style(style)
		if flags != "" {
			for _, f := range strings.Split(flags, ",") {
				c.EvaluationFlags = append(c.EvaluationFlags, domain.DefectFlag(f))
			}
		}
		concepts = append(concepts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return concepts, nil
}

func (r *RunRepo) ListRecent(ctx context.Context, limit int) ([]repository.RunRecord, error) {
	query := `
        SELECT id, brand_name, verdict, overall_score, concept_count, created_at
        FROM runs
        ORDER BY created_at DESC
        LIMIT $1
    `

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []repository.RunRecord
	for rows.Next() {
		var run repository.RunRecord
		var verdict string
		err := rows.Scan(
			&run.ID,
			&run.BrandName,
			&verdict,
			&run.OverallScore,
			&run.ConceptCount,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Verdict = domain.Verdict(verdict)
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return runs, nil
}
