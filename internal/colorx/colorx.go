// Package colorx - цветовая математика для критика: WCAG контраст,
// относительная яркость, расстояние оттенков, покрытие краски CMYK.
package colorx

import (
	"fmt"
	"math"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

var strictHexRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsStrictHex проверяет строгий 6-значный hex вида "#1a2b3c".
// Сокращённые ("#abc") и бесхешовые формы не принимаются.
func IsStrictHex(s string) bool {
	return strictHexRe.MatchString(s)
}

// ParseHex разбирает строгий hex в цвет
func ParseHex(s string) (colorful.Color, error) {
	if !IsStrictHex(s) {
		return colorful.Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	return colorful.Hex(s)
}

// RelativeLuminance - относительная яркость по WCAG (0 - чёрный, 1 - белый)
func RelativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio - коэффициент контраста WCAG, от 1 до 21
func ContrastRatio(a, b colorful.Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// ContrastRatioHex считает контраст между двумя hex цветами
func ContrastRatioHex(fg, bg string) (float64, error) {
	f, err := ParseHex(fg)
	if err != nil {
		return 0, err
	}
	g, err := ParseHex(bg)
	if err != nil {
		return 0, err
	}
	return ContrastRatio(f, g), nil
}

// Hue возвращает оттенок цвета в градусах [0, 360)
func Hue(c colorful.Color) float64 {
	h, _, _ := c.Hsl()
	return h
}

// Saturation возвращает насыщенность HSL [0, 1]
func Saturation(c colorful.Color) float64 {
	_, s, _ := c.Hsl()
	return s
}

// HueDistance - минимальное угловое расстояние между оттенками, 0-180
func HueDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// IsWarmHue: тёплые оттенки - красно-жёлтая часть круга
func IsWarmHue(h float64) bool {
	return h < 90 || h >= 330
}

// InkCoverage - суммарное покрытие краски в процентах (0-400) при наивной
// аддитивной конверсии RGB -> CMYK (C=1-R и т.д., K=min(C,M,Y)).
// Печатники не любят больше 300%: тёмные насыщенные цвета превышают лимит.
func InkCoverage(c colorful.Color) float64 {
	cy := 1 - c.R
	m := 1 - c.G
	y := 1 - c.B
	k := math.Min(cy, math.Min(m, y))
	return (cy + m + y + k) * 100
}

// RGB255 возвращает каналы цвета как целые 0-255
func RGB255(c colorful.Color) (int, int, int) {
	return int(math.Round(c.R * 255)), int(math.Round(c.G * 255)), int(math.Round(c.B * 255))
}

// FromRGB255 собирает цвет из целых каналов, с зажимом в 0-255
func FromRGB255(r, g, b int) colorful.Color {
	return colorful.Color{
		R: float64(clamp255(r)) / 255,
		G: float64(clamp255(g)) / 255,
		B: float64(clamp255(b)) / 255,
	}
}

func clamp255(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
