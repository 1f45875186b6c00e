package note

import (
	"fmt"
	"strings"
)

type Style string

const (
	StyleAuthentic Style = "authentic"
	StyleRomantic  Style = "romantic"
	StyleFunny     Style = "funny"
	StyleSweet     Style = "sweet"
	StyleInnuendo  Style = "innuendo"
	StyleFlirty    Style = "flirty"

	DefaultStyle = StyleAuthentic
)

var styles = []Style{
	StyleAuthentic,
	StyleRomantic,
	StyleFunny,
	StyleSweet,
	StyleInnuendo,
	StyleFlirty,
}

func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// ParseStyle accepts the enum value case-insensitively. An empty string maps
// to DefaultStyle.
func ParseStyle(s string) (Style, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultStyle, nil
	}

	for _, style := range styles {
		if string(style) == s {
			return style, nil
		}
	}

	return "", fmt.Errorf("unknown style %q", s)
}

// Phrase is how the style is worded inside a prompt.
func (s Style) Phrase() string {
	if s == StyleInnuendo {
		return "Touch of Innuendo"
	}
	if s == "" {
		return string(DefaultStyle)
	}
	return string(s)
}

func (s Style) Label() string {
	switch s {
	case StyleInnuendo:
		return "Touch of Innuendo"
	case "":
		return "Authentic"
	default:
		return strings.ToUpper(string(s[:1])) + string(s[1:])
	}
}
