package domain

// AcceptThreshold - минимальный балл оценки, при котором кандидат
// принимается без дополнительных попыток.
const AcceptThreshold = 72

// PromptSet - пара промптов для генерации изображения. Неизменяема после
// создания; между попытками её целиком заменяет новая версия от рефайнера.
type PromptSet struct {
	Prompt         string
	NegativePrompt string
}

// DefectFlag - тег дефекта, который оценщик нашёл на изображении
type DefectFlag string

const (
	FlagPhotorealistic DefectFlag = "photorealistic"
	FlagComplexScene   DefectFlag = "complex_scene"
	FlagBlurryEdges    DefectFlag = "blurry_edges"
	FlagIllegibleText  DefectFlag = "illegible_text"
	FlagOffPalette     DefectFlag = "off_palette"
	FlagCliche         DefectFlag = "cliche"
	FlagOverDetailed   DefectFlag = "over_detailed"
	FlagBadComposition DefectFlag = "bad_composition"
)

// EvaluationResult - результат оценки одного изображения по рубрике стиля
type EvaluationResult struct {
	Score                  int // 0-100
	Passed                 bool
	Flags                  []DefectFlag
	Strengths              []string
	RefinementInstructions string
}

// GenerationAttempt - одна попытка внутри пайплайна стиля. Не персистится,
// живёт только внутри одного прогона.
type GenerationAttempt struct {
	ImageURL string
	Seed     int64
	Prompts  PromptSet
	Eval     EvaluationResult
}

// GeneratedConcept - финальный кандидат для одного стиля.
// Иммутабелен после возврата из оркестратора.
type GeneratedConcept struct {
	Style            Style
	ImageURL         string
	Prompt           string
	NegativePrompt   string
	Seed             int64
	Score            int
	EvaluationFlags  []DefectFlag
	AttemptCount     int
	PassedEvaluation bool
}
