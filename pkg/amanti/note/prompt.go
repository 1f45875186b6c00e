package note

import (
	"fmt"
	"strings"
)

type PromptVariant string

const (
	PromptVariantValentine PromptVariant = "valentine"
	PromptVariantClassic   PromptVariant = "classic"

	maxWords = 165
)

func ParsePromptVariant(s string) (PromptVariant, error) {
	switch PromptVariant(strings.ToLower(strings.TrimSpace(s))) {
	case "", PromptVariantValentine:
		return PromptVariantValentine, nil
	case PromptVariantClassic:
		return PromptVariantClassic, nil
	default:
		return "", fmt.Errorf("unknown prompt variant %q", s)
	}
}

func BuildPrompt(variant PromptVariant, input FormInput) string {
	name := strings.TrimSpace(input.Name)
	details := strings.TrimSpace(input.Details)
	style := input.style().Phrase()

	var b strings.Builder
	switch variant {
	case PromptVariantClassic:
		fmt.Fprintf(&b, "Write a short, sincere note for %s.\n", name)
		if details != "" {
			fmt.Fprintf(&b, "Here is what makes them special: %s.\n", details)
		}
		fmt.Fprintf(&b, "Tone: %s. Keep it under %d words.\n", style, maxWords)
	default:
		fmt.Fprintf(&b, "Write a short, heartfelt, and unique Valentine's Day message for %s.\n", name)
		fmt.Fprintf(&b, "Context: %s.\n", details)
		fmt.Fprintf(&b, "Make it %s, sweet, and intimate. Max %d words.\n", style, maxWords)
	}

	b.WriteString("Do not include any emojis. If I do not explicitly tell you details about the person, ")
	b.WriteString("do not include any details about the person or any shared experiences. Just the message.")

	return b.String()
}
