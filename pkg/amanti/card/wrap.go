package card

import (
	"strings"

	"golang.org/x/image/font"
)

// wrap greedily breaks text into lines no wider than maxWidth pixels. Explicit
// newlines are kept and words wider than a line are split by rune.
func wrap(face font.Face, text string, maxWidth int) []string {
	var lines []string

	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}

			if font.MeasureString(face, candidate).Ceil() <= maxWidth {
				line = candidate
				continue
			}

			if line != "" {
				lines = append(lines, line)
			}

			parts := splitWord(face, word, maxWidth)
			lines = append(lines, parts[:len(parts)-1]...)
			line = parts[len(parts)-1]
		}
		lines = append(lines, line)
	}

	return lines
}

func splitWord(face font.Face, word string, maxWidth int) []string {
	var parts []string

	current := ""
	for _, r := range word {
		candidate := current + string(r)
		if current != "" && font.MeasureString(face, candidate).Ceil() > maxWidth {
			parts = append(parts, current)
			candidate = string(r)
		}
		current = candidate
	}

	return append(parts, current)
}
