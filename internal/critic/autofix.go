package critic

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ksafonov/brandforge/internal/colorx"
	"github.com/ksafonov/brandforge/internal/domain"
)

const (
	fixStepSize = 8  // сдвиг каждого RGB канала за шаг
	fixMaxSteps = 30 // бюджет шагов; не сошлось - оставляем оригинал
)

// applyContrastFixes - единственная корректирующая способность критика.
// Чинит только проверки с "muted" или "accent" в метке, остальные
// проваленные пары лишь репортятся. Возвращает сколько очков technical
// качества вернуть: +1 за muted, +2 за accent (он стоил 3).
func (e *Engine) applyContrastFixes(original *domain.ColorSystem, fixed *domain.ColorSystem, fixedPalette *domain.Palette, st *reviewState) int {
	restored := 0

	for i, check := range original.Checks {
		if check.Ratio >= wcagAAThreshold {
			continue
		}

		label := strings.ToLower(check.Label)
		isAccent := strings.Contains(label, "accent")
		isMuted := strings.Contains(label, "muted")
		if !isAccent && !isMuted {
			continue
		}

		newHex, newRatio, ok := remediateContrast(check.Foreground, check.Background)
		if !ok {
			e.logger.Warn("contrast remediation did not converge",
				zap.String("check", check.Label),
				zap.String("foreground", check.Foreground),
			)
			continue
		}

		st.fixes = append(st.fixes, domain.QAFix{
			Category: "Accessibility",
			Description: fmt.Sprintf("nudged %s foreground to reach %.2f:1 against %s",
				check.Label, newRatio, check.Background),
			Before: check.Foreground,
			After:  newHex,
		})

		fixed.Checks[i].Foreground = newHex
		fixed.Checks[i].Ratio = newRatio
		fixed.Checks[i].Passes = true
		replaceBrandColor(&fixed.Brand, check.Foreground, newHex)
		replacePaletteColor(fixedPalette, check.Foreground, newHex)

		if isAccent {
			restored += 2
		} else {
			restored++
		}

		e.logger.Info("contrast auto-fixed",
			zap.String("check", check.Label),
			zap.String("before", check.Foreground),
			zap.String("after", newHex),
			zap.Float64("ratio", newRatio),
		)
	}

	return restored
}

// remediateContrast уводит цвет от яркости фона шагами по ±8 на канал,
// пересчитывая WCAG после каждого шага, максимум 30 шагов
func remediateContrast(fgHex, bgHex string) (string, float64, bool) {
	fg, err := colorx.ParseHex(fgHex)
	if err != nil {
		return "", 0, false
	}
	bg, err := colorx.ParseHex(bgHex)
	if err != nil {
		return "", 0, false
	}

	step := -fixStepSize
	if colorx.RelativeLuminance(bg) < 0.5 {
		step = fixStepSize // тёмный фон - светлим передний план
	}

	r, g, b := colorx.RGB255(fg)
	for i := 0; i < fixMaxSteps; i++ {
		r += step
		g += step
		b += step
		candidate := colorx.FromRGB255(r, g, b)
		if ratio := colorx.ContrastRatio(candidate, bg); ratio >= wcagAAThreshold {
			return candidate.Hex(), ratio, true
		}
	}

	return "", 0, false
}

func replaceBrandColor(brand *domain.BrandColors, before, after string) {
	fields := []*string{
		&brand.Primary, &brand.Secondary, &brand.Accent,
		&brand.Muted, &brand.Background, &brand.Surface, &brand.Text,
	}
	for _, f := range fields {
		if strings.EqualFold(*f, before) {
			*f = after
		}
	}
}

func replacePaletteColor(p *domain.Palette, before, after string) {
	for i := range p.Colors {
		if strings.EqualFold(p.Colors[i].Hex, before) {
			p.Colors[i].Hex = after
		}
	}
}
