package prompt

import (
	"strings"
	"testing"

	"github.com/ksafonov/brandforge/internal/domain"
)

func TestStaticBuilder_Build(t *testing.T) {
	b := NewStaticBuilder()

	signals := domain.BrandSignals{
		Name:        "Northwind",
		Industry:    "logistics",
		Personality: []string{"reliable", "fast"},
	}
	palette := domain.Palette{Colors: []domain.PaletteColor{
		{Role: "primary", Hex: "#123456"},
		{Role: "accent", Hex: "#ff6600"},
	}}

	t.Run("is deterministic", func(t *testing.T) {
		a := b.Build(domain.StyleWordmark, signals, palette, nil)
		c := b.Build(domain.StyleWordmark, signals, palette, nil)
		if a != c {
			t.Error("same inputs produced different prompt sets")
		}
	})

	t.Run("includes brand name and palette", func(t *testing.T) {
		ps := b.Build(domain.StyleMonogram, signals, palette, nil)
		if !strings.Contains(ps.Prompt, "Northwind") {
			t.Error("prompt missing brand name")
		}
		if !strings.Contains(ps.Prompt, "#123456") {
			t.Error("prompt missing palette hex")
		}
	})

	t.Run("styles produce distinct prompts", func(t *testing.T) {
		seen := make(map[string]domain.Style)
		for _, st := range domain.AllStyles() {
			ps := b.Build(st, signals, palette, nil)
			if prev, dup := seen[ps.Prompt]; dup {
				t.Errorf("styles %s and %s share a prompt", prev, st)
			}
			seen[ps.Prompt] = st
		}
	})

	t.Run("negative prompt bans photorealism", func(t *testing.T) {
		ps := b.Build(domain.StyleAbstract, signals, palette, nil)
		if !strings.Contains(ps.NegativePrompt, "photorealistic") {
			t.Error("negative prompt should exclude photorealism")
		}
	})

	t.Run("brief aesthetic lands in prompt", func(t *testing.T) {
		brief := &domain.DesignBrief{Aesthetic: "minimal"}
		ps := b.Build(domain.StyleWordmark, signals, palette, brief)
		if !strings.Contains(ps.Prompt, "minimal aesthetic") {
			t.Error("prompt missing brief aesthetic")
		}
	})
}
