// Package critic - детерминированный QA движок для готовой дизайн-системы.
// Считает четыре оценки, классифицирует проблемы по серьёзности и чинит
// то единственное, что умеет чинить: контраст цветов.
package critic

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ksafonov/brandforge/internal/domain"
)

// Веса измерений в итоговой оценке
const (
	weightBrief           = 0.25
	weightConsistency     = 0.25
	weightDifferentiation = 0.20
	weightTechnical       = 0.30
)

type Input struct {
	Brief       domain.DesignBrief
	Signals     domain.BrandSignals
	Palette     domain.Palette
	Fonts       domain.FontPairing
	TypeScale   *domain.TypeScale
	ColorSystem *domain.ColorSystem
}

// Output.FixedPalette и FixedColorSystem - всегда копии входа; оригинал
// не мутируется никогда.
type Output struct {
	Report           domain.QAReport
	FixedPalette     domain.Palette
	FixedColorSystem *domain.ColorSystem
}

type Engine struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// reviewState копит проблемы и правки по ходу проверки
type reviewState struct {
	issues []domain.QAIssue
	fixes  []domain.QAFix
}

func (st *reviewState) add(sev domain.Severity, category, description string) {
	st.issues = append(st.issues, domain.QAIssue{
		Severity:    sev,
		Category:    category,
		Description: description,
	})
}

// Review прогоняет все правила. Данные-мусор во входе (кривой hex, битая
// шкала) - это blocking issue в отчёте, а не ошибка: критик всегда
// возвращает отчёт.
func (e *Engine) Review(in Input) Output {
	st := &reviewState{}

	briefScore := e.scoreBriefAlignment(in, st)
	consistencyScore := e.scoreConsistency(in, st)
	differentiationScore := e.scoreDifferentiation(in, st)

	fixedPalette := in.Palette.Clone()
	var fixedSystem *domain.ColorSystem
	if in.ColorSystem != nil {
		cloned := in.ColorSystem.Clone()
		fixedSystem = &cloned
	}

	technicalScore := e.scoreTechnical(in, st, fixedSystem, &fixedPalette)

	scores := domain.QAScores{
		BriefAlignment:      clampScore(briefScore),
		InternalConsistency: clampScore(consistencyScore),
		Differentiation:     clampScore(differentiationScore),
		TechnicalQuality:    clampScore(technicalScore),
	}
	scores.Overall = overall(scores)

	verdict := resolveVerdict(st)

	report := domain.QAReport{
		Verdict: verdict,
		Scores:  scores,
		Issues:  st.issues,
		Fixes:   st.fixes,
		Summary: summarize(st, scores),
	}

	e.logger.Info("design system reviewed",
		zap.String("verdict", string(verdict)),
		zap.Int("overall", scores.Overall),
		zap.Int("issues", len(st.issues)),
		zap.Int("fixes", len(st.fixes)),
	)

	return Output{
		Report:           report,
		FixedPalette:     fixedPalette,
		FixedColorSystem: fixedSystem,
	}
}

// resolveVerdict - три терминальных состояния. Починенный blocking
// намеренно НЕ поднимает вердикт до чистого approve: это продуктовое
// решение, не баг. Не "исправлять" при рефакторинге.
func resolveVerdict(st *reviewState) domain.Verdict {
	blocking := 0
	warnings := 0
	for _, is := range st.issues {
		switch is.Severity {
		case domain.SeverityBlocking:
			blocking++
		case domain.SeverityWarning:
			warnings++
		}
	}

	if blocking > 0 && len(st.fixes) < blocking {
		return domain.VerdictFlagged
	}
	if warnings > 0 || blocking > 0 {
		return domain.VerdictApproveWithWarnings
	}
	return domain.VerdictApprove
}

func overall(s domain.QAScores) int {
	raw := float64(s.BriefAlignment)*weightBrief +
		float64(s.InternalConsistency)*weightConsistency +
		float64(s.Differentiation)*weightDifferentiation +
		float64(s.TechnicalQuality)*weightTechnical
	return clampScore(int(math.Round(raw)))
}

func clampScore(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func summarize(st *reviewState, scores domain.QAScores) string {
	blocking := 0
	warnings := 0
	for _, is := range st.issues {
		switch is.Severity {
		case domain.SeverityBlocking:
			blocking++
		case domain.SeverityWarning:
			warnings++
		}
	}
	return fmt.Sprintf("%d issues (%d blocking, %d warnings), %d fixes applied, overall %d/10",
		len(st.issues), blocking, warnings, len(st.fixes), scores.Overall)
}
