package card

import (
	"errors"
	"strings"
)

var ErrNoTarget = errors.New("no card to export")

type Card struct {
	Text string
	Name string
}

const fileNamePrefix = "Valentine_"

// FileName is the download name for a card addressed to name.
func FileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/', r == '\\', r == '"':
			return '_'
		case r < 0x20, r == 0x7f:
			return -1
		default:
			return r
		}
	}, strings.TrimSpace(name))

	return fileNamePrefix + cleaned + ".png"
}
