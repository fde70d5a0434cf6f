// Package prompt строит PromptSet для каждого стиля логотипа.
// Билдер чистый и детерминированный: одинаковые входы дают одинаковые промпты.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ksafonov/brandforge/internal/domain"
)

type Builder interface {
	Build(style domain.Style, signals domain.BrandSignals, palette domain.Palette, brief *domain.DesignBrief) domain.PromptSet
}

// StaticBuilder - дефолтная реализация на шаблонах
type StaticBuilder struct{}

func NewStaticBuilder() *StaticBuilder {
	return &StaticBuilder{}
}

var styleDescriptors = map[domain.Style]string{
	domain.StyleWordmark:  "custom lettering wordmark, the brand name set in distinctive type, no icon",
	domain.StyleIconText:  "simple geometric icon beside the brand name, balanced lockup",
	domain.StyleMonogram:  "monogram built from the brand initials, interlocking letterforms",
	domain.StyleAbstract:  "abstract geometric mark, non-representational shape",
	domain.StylePictorial: "simplified pictorial mark, one recognizable object reduced to flat shapes",
	domain.StyleMascot:    "friendly mascot character, flat illustration style",
	domain.StyleEmblem:    "emblem with the brand name enclosed in a badge or crest shape",
	domain.StyleDynamic:   "modular mark with repeating geometric elements, systematic grid",
}

const baseNegative = "photograph, photorealistic, 3d render, complex scene, background clutter, " +
	"gradients mesh, blurry edges, watermark, text artifacts, drop shadow, stock art"

func (b *StaticBuilder) Build(style domain.Style, signals domain.BrandSignals, palette domain.Palette, brief *domain.DesignBrief) domain.PromptSet {
	var sb strings.Builder

	fmt.Fprintf(&sb, "professional logo design for %q", signals.Name)
	if signals.Industry != "" {
		fmt.Fprintf(&sb, ", %s brand", signals.Industry)
	}
	sb.WriteString(": ")
	sb.WriteString(styleDescriptors[style])

	if len(signals.Personality) > 0 {
		fmt.Fprintf(&sb, ", personality: %s", strings.Join(signals.Personality, ", "))
	}

	if hexes := paletteHexes(palette); len(hexes) > 0 {
		fmt.Fprintf(&sb, ", limited palette %s", strings.Join(hexes, " "))
	}

	if brief != nil && brief.Aesthetic != "" {
		fmt.Fprintf(&sb, ", %s aesthetic", brief.Aesthetic)
	}

	sb.WriteString(", flat vector style, clean edges, solid shapes, white background, scalable")

	return domain.PromptSet{
		Prompt:         sb.String(),
		NegativePrompt: baseNegative,
	}
}

func paletteHexes(p domain.Palette) []string {
	var out []string
	for _, c := range p.Colors {
		if c.Hex != "" {
			out = append(out, c.Hex)
		}
	}
	return out
}
