package domain

import "strings"

// BrandSignals - базовые сигналы бренда, приходят снаружи уже готовыми
type BrandSignals struct {
	Name        string
	Tagline     string
	Industry    string
	Personality []string
}

// HueRange - диапазон оттенков в градусах [Min, Max], с переходом через 0
type HueRange struct {
	Min float64
	Max float64
}

func (r HueRange) Contains(h float64) bool {
	h = normalizeHue(h)
	min := normalizeHue(r.Min)
	max := normalizeHue(r.Max)
	if min <= max {
		return h >= min && h <= max
	}
	// диапазон через 360/0
	return h >= min || h <= max
}

func normalizeHue(h float64) float64 {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}

// DesignBrief - дизайн-бриф. Генерация брифа вне этого модуля.
type DesignBrief struct {
	TensionWords        []string
	Aesthetic           string // "minimal", "swiss", "expressive", ...
	Sector              string // "finance", "legal", "consumer", ...
	Formality           string // "high" | "medium" | "low"
	ColorTemperature    string // "warm" | "cool" | ""
	CompetitorHueRanges []HueRange
}

type PaletteColor struct {
	Role string // "primary" | "secondary" | "accent" | ...
	Name string
	Hex  string
}

type Palette struct {
	Colors []PaletteColor
}

func (p Palette) ByRole(role string) (PaletteColor, bool) {
	for _, c := range p.Colors {
		if c.Role == role {
			return c, true
		}
	}
	return PaletteColor{}, false
}

func (p Palette) Clone() Palette {
	out := Palette{Colors: make([]PaletteColor, len(p.Colors))}
	copy(out.Colors, p.Colors)
	return out
}

// Font - выбранный шрифт с его доступными начертаниями
type Font struct {
	Name           string
	Category       string // "serif" | "sans-serif" | "display" | "script" | "monospace"
	Classification string // "classical" | "geometric" | "humanist" | ...
	Weights        []int
}

func (f Font) HasWeight(w int) bool {
	for _, fw := range f.Weights {
		if fw == w {
			return true
		}
	}
	return false
}

// NearestWeight возвращает ближайшее доступное начертание к w
func (f Font) NearestWeight(w int) int {
	if len(f.Weights) == 0 {
		return w
	}
	best := f.Weights[0]
	for _, fw := range f.Weights[1:] {
		if abs(fw-w) < abs(best-w) {
			best = fw
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// FontPairing - пара display/body с обоснованием выбора
type FontPairing struct {
	Display       Font
	Body          Font
	DisplayWeight int // рекомендованное начертание для заголовков
	Rationale     string
}

// TypeScaleLevel - один уровень типографской шкалы.
// FontSlot указывает, каким шрифтом набирается уровень.
type TypeScaleLevel struct {
	Name     string
	SizePx   float64
	Weight   int
	FontSlot string // "display" | "body"
}

type TypeScale struct {
	Levels []TypeScaleLevel
}

// BrandColors - роли цветовой системы, все значения hex
type BrandColors struct {
	Primary    string
	Secondary  string
	Accent     string
	Muted      string
	Background string
	Surface    string
	Text       string
}

// AccessibilityCheck - заранее посчитанная проверка контраста WCAG.
// Label вида "accent-on-background", "muted-on-surface".
type AccessibilityCheck struct {
	Label      string
	Foreground string
	Background string
	Ratio      float64
	Passes     bool
}

func (c AccessibilityCheck) Involves(role string) bool {
	return strings.Contains(strings.ToLower(c.Label), role)
}

type ColorSystem struct {
	Brand  BrandColors
	Checks []AccessibilityCheck
}

func (cs ColorSystem) Clone() ColorSystem {
	out := ColorSystem{Brand: cs.Brand}
	out.Checks = make([]AccessibilityCheck, len(cs.Checks))
	copy(out.Checks, cs.Checks)
	return out
}
