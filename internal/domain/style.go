package domain

// Style - архетип логотипа. У каждого стиля своя рубрика оценки.
type Style string

const (
	StyleWordmark  Style = "wordmark"
	StyleIconText  Style = "icon_text"
	StyleMonogram  Style = "monogram"
	StyleAbstract  Style = "abstract"
	StylePictorial Style = "pictorial"
	StyleMascot    Style = "mascot"
	StyleEmblem    Style = "emblem"
	StyleDynamic   Style = "dynamic"
)

func AllStyles() []Style {
	return []Style{
		StyleWordmark,
		StyleIconText,
		StyleMonogram,
		StyleAbstract,
		StylePictorial,
		StyleMascot,
		StyleEmblem,
		StyleDynamic,
	}
}

func (s Style) IsValid() bool {
	switch s {
	case StyleWordmark, StyleIconText, StyleMonogram, StyleAbstract,
		StylePictorial, StyleMascot, StyleEmblem, StyleDynamic:
		return true
	}
	return false
}

func (s Style) String() string { return string(s) }

// ParseStyle разбирает строку в Style, с проверкой
func ParseStyle(s string) (Style, error) {
	st := Style(s)
	if !st.IsValid() {
		return "", ErrUnknownStyle
	}
	return st, nil
}
