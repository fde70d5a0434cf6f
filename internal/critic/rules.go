package critic

import (
	"fmt"
	"strings"

	"github.com/ksafonov/brandforge/internal/colorx"
	"github.com/ksafonov/brandforge/internal/domain"
)

const (
	wcagAAThreshold   = 4.5
	maxInkCoverage    = 300.0
	subtleSaturation  = 0.5 // ниже - цвет считается приглушённым
	boldWeight        = 600 // от этого веса начертание считается жирным
	hueClashMin       = 60.0
	hueClashMax       = 120.0
	identicalHueDist  = 15.0
	identicalLumDelta = 0.10
	weightGapLimit    = 100
)

// scoreBriefAlignment - соответствие брифу, вес 0.25
func (e *Engine) scoreBriefAlignment(in Input, st *reviewState) int {
	score := 10

	if len(in.Brief.TensionWords) > 0 && !mentionsAny(in.Fonts.Rationale, in.Brief.TensionWords) {
		score--
		st.add(domain.SeverityWarning, "Typography",
			"typography rationale does not reference any of the brief's tension words")
	}

	aesthetic := strings.ToLower(in.Brief.Aesthetic)
	if aesthetic == "minimal" || aesthetic == "swiss" {
		if isExpressiveFont(in.Fonts.Display) && !isClassicalSerif(in.Fonts.Display) {
			score--
			st.add(domain.SeverityWarning, "Typography",
				fmt.Sprintf("expressive display font %q fights the %s aesthetic", in.Fonts.Display.Name, aesthetic))
		}
	}

	sector := strings.ToLower(in.Brief.Sector)
	if strings.ToLower(in.Brief.Formality) == "high" && (sector == "finance" || sector == "legal") {
		if !strings.EqualFold(in.Fonts.Display.Category, "serif") {
			score--
			st.add(domain.SeveritySuggestion, "Typography",
				fmt.Sprintf("high-formality %s brand would usually carry a serif display face", sector))
		}
	}

	return score
}

// scoreConsistency - внутренняя согласованность, вес 0.25
func (e *Engine) scoreConsistency(in Input, st *reviewState) int {
	score := 10

	if accent, ok := in.Palette.ByRole("accent"); ok {
		if c, err := colorx.ParseHex(accent.Hex); err == nil {
			if colorx.Saturation(c) < subtleSaturation && in.Fonts.DisplayWeight < boldWeight {
				score--
				st.add(domain.SeverityWarning, "Consistency",
					"subtle accent color paired with a non-bold display weight reads under-contrasted")
			}
		}
	}

	if in.Fonts.Display.Name != "" && strings.EqualFold(in.Fonts.Display.Name, in.Fonts.Body.Name) {
		score -= 2
		st.add(domain.SeverityWarning, "Typography",
			fmt.Sprintf("display and body font are identical (%q)", in.Fonts.Display.Name))
	}

	primaryHue, primaryOK := paletteHue(in.Palette, "primary")
	accentHue, accentOK := paletteHue(in.Palette, "accent")
	if primaryOK && accentOK {
		if d := colorx.HueDistance(primaryHue, accentHue); d >= hueClashMin && d <= hueClashMax {
			score--
			st.add(domain.SeverityWarning, "Color",
				fmt.Sprintf("primary and accent hues sit %.0f degrees apart, a potential clash zone", d))
		}
	}

	if primaryOK && in.Brief.ColorTemperature != "" {
		warm := colorx.IsWarmHue(primaryHue)
		switch strings.ToLower(in.Brief.ColorTemperature) {
		case "warm":
			if !warm {
				score--
				st.add(domain.SeverityWarning, "Color",
					"brief asks for a warm palette but the primary color is cool")
			}
		case "cool":
			if warm {
				score--
				st.add(domain.SeverityWarning, "Color",
					"brief asks for a cool palette but the primary color is warm")
			}
		}
	}

	return score
}

// scoreDifferentiation - отличимость от конкурентов, вес 0.20
func (e *Engine) scoreDifferentiation(in Input, st *reviewState) int {
	score := 10

	if isOverusedFont(in.Fonts.Display.Name) {
		score -= 2
		st.add(domain.SeverityWarning, "Differentiation",
			fmt.Sprintf("display font %q is on the overused list", in.Fonts.Display.Name))
	}
	if isOverusedFont(in.Fonts.Body.Name) {
		score--
		st.add(domain.SeverityWarning, "Differentiation",
			fmt.Sprintf("body font %q is on the overused list", in.Fonts.Body.Name))
	}

	if primary, ok := in.Palette.ByRole("primary"); ok {
		if isGenericColor(primary.Hex) {
			score -= 2
			st.add(domain.SeverityWarning, "Differentiation",
				fmt.Sprintf("primary color %s is a generic pick", primary.Hex))
		}
	}

	if primaryHue, ok := paletteHue(in.Palette, "primary"); ok {
		for _, r := range in.Brief.CompetitorHueRanges {
			if r.Contains(primaryHue) {
				score--
				st.add(domain.SeverityWarning, "Differentiation",
					fmt.Sprintf("primary hue %.0f falls inside a hue range competitors already occupy", primaryHue))
				break
			}
		}
	}

	return score
}

// scoreTechnical - техническое качество, вес 0.30. Самый тяжёлый набор
// правил, и единственный, где применяются авто-правки.
func (e *Engine) scoreTechnical(in Input, st *reviewState, fixedSystem *domain.ColorSystem, fixedPalette *domain.Palette) int {
	score := 10

	// контраст WCAG AA по заранее посчитанным проверкам
	if in.ColorSystem != nil {
		for _, check := range in.ColorSystem.Checks {
			if check.Ratio >= wcagAAThreshold {
				continue
			}
			if check.Involves("accent") {
				score -= 3
				st.add(domain.SeverityBlocking, "Accessibility",
					fmt.Sprintf("contrast check %q fails WCAG AA at %.2f:1", check.Label, check.Ratio))
			} else {
				score--
				st.add(domain.SeverityWarning, "Accessibility",
					fmt.Sprintf("contrast check %q fails WCAG AA at %.2f:1", check.Label, check.Ratio))
			}
		}
	}

	// покрытие краски на основном цвете
	if primary, ok := in.Palette.ByRole("primary"); ok {
		if c, err := colorx.ParseHex(primary.Hex); err == nil {
			if ink := colorx.InkCoverage(c); ink > maxInkCoverage {
				score--
				st.add(domain.SeverityWarning, "Print",
					fmt.Sprintf("primary color %s needs %.0f%% total ink, over the %d%% press limit",
						primary.Hex, ink, int(maxInkCoverage)))
			}
		}
	}

	// строгая валидация hex по всей палитре
	for _, pc := range in.Palette.Colors {
		if !colorx.IsStrictHex(pc.Hex) {
			score--
			st.add(domain.SeverityBlocking, "Color",
				fmt.Sprintf("palette color %q (%s) is not a strict 6-digit hex value", pc.Hex, pc.Role))
		}
	}

	// шкала должна строго убывать; штраф только за первое нарушение
	if in.TypeScale != nil {
		for i := 1; i < len(in.TypeScale.Levels); i++ {
			if in.TypeScale.Levels[i].SizePx >= in.TypeScale.Levels[i-1].SizePx {
				score--
				st.add(domain.SeverityWarning, "Typography",
					fmt.Sprintf("type scale is not strictly descending at %q", in.TypeScale.Levels[i].Name))
				break
			}
		}
	}

	// "визуально одинаковые" primary и accent
	if pair := visuallyIdentical(in.Palette); pair != "" {
		score -= 3
		st.add(domain.SeverityBlocking, "Color", pair)
	}

	// начертания шкалы должны существовать у шрифта
	if in.TypeScale != nil {
		for _, lvl := range in.TypeScale.Levels {
			font := in.Fonts.Body
			if lvl.FontSlot == "display" {
				font = in.Fonts.Display
			}
			if len(font.Weights) == 0 || font.HasWeight(lvl.Weight) {
				continue
			}
			if gap := lvl.Weight - font.NearestWeight(lvl.Weight); gap > weightGapLimit || gap < -weightGapLimit {
				score--
				st.add(domain.SeverityWarning, "Typography",
					fmt.Sprintf("scale level %q wants weight %d but %q only ships %v",
						lvl.Name, lvl.Weight, font.Name, font.Weights))
			}
		}
	}

	// авто-ремедиация контраста возвращает часть потерянных очков
	if in.ColorSystem != nil && fixedSystem != nil {
		score += e.applyContrastFixes(in.ColorSystem, fixedSystem, fixedPalette, st)
	}

	return score
}

func visuallyIdentical(p domain.Palette) string {
	primary, pok := p.ByRole("primary")
	accent, aok := p.ByRole("accent")
	if !pok || !aok {
		return ""
	}
	pc, err := colorx.ParseHex(primary.Hex)
	if err != nil {
		return ""
	}
	ac, err := colorx.ParseHex(accent.Hex)
	if err != nil {
		return ""
	}

	hueDist := colorx.HueDistance(colorx.Hue(pc), colorx.Hue(ac))
	lumDelta := colorx.RelativeLuminance(pc) - colorx.RelativeLuminance(ac)
	if lumDelta < 0 {
		lumDelta = -lumDelta
	}

	if hueDist <= identicalHueDist && lumDelta <= identicalLumDelta {
		return fmt.Sprintf("primary %s and accent %s are visually identical (hue within %.0f, luminance within %.2f)",
			primary.Hex, accent.Hex, hueDist, lumDelta)
	}
	return ""
}

func paletteHue(p domain.Palette, role string) (float64, bool) {
	pc, ok := p.ByRole(role)
	if !ok {
		return 0, false
	}
	c, err := colorx.ParseHex(pc.Hex)
	if err != nil {
		return 0, false
	}
	return colorx.Hue(c), true
}

func mentionsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if w != "" && strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

func isExpressiveFont(f domain.Font) bool {
	switch strings.ToLower(f.Category) {
	case "display", "script", "handwriting", "decorative":
		return true
	}
	return false
}

func isClassicalSerif(f domain.Font) bool {
	return strings.EqualFold(f.Category, "serif") && strings.EqualFold(f.Classification, "classical")
}
