package eval

import "github.com/ksafonov/brandforge/internal/domain"

// Рубрики заданы для части стилей; остальные оцениваются по generic рубрике
// с пометкой в логах (ungraded path).
var styleRubrics = map[domain.Style]string{
	domain.StyleWordmark: `Judge this WORDMARK logo:
- Letterforms must read clearly at 24px and feel custom, not a default font.
- Kerning and baseline must be even; no broken or merged glyphs.
- No icon should dominate; the name itself is the mark.`,

	domain.StyleIconText: `Judge this ICON+TEXT logo:
- Icon must be a single simple geometric form, legible as a 16px favicon.
- Icon and text must balance; neither crushes the other.
- The lockup must survive horizontal and stacked arrangements.`,

	domain.StyleMonogram: `Judge this MONOGRAM logo:
- The initials must be identifiable; interlocking must not destroy legibility.
- Strokes must share a consistent weight and grid.
- The mark must hold up as a single-color stamp.`,

	domain.StyleAbstract: `Judge this ABSTRACT MARK logo:
- The shape must be non-representational but memorable after one glance.
- Geometry must be deliberate: consistent radii, angles, optical balance.
- It must not look like a generic swoosh or orbit cliche.`,

	domain.StylePictorial: `Judge this PICTORIAL MARK logo:
- The depicted object must be recognizable when reduced to flat shapes.
- Interior detail must be minimal; silhouettes carry the mark.
- No photorealism, gradients-as-modeling, or scene composition.`,
}

const genericRubric = `Judge this logo as a professional brand mark:
- Flat, vector-like execution with clean closed edges.
- Simple enough to scale from favicon to billboard.
- Distinctive silhouette, no stock-art cliches.`

// rubricFor возвращает рубрику стиля и флаг, была ли она определена явно
func rubricFor(style domain.Style) (string, bool) {
	r, ok := styleRubrics[style]
	if !ok {
		return genericRubric, false
	}
	return r, true
}
