package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

func TestWrap(t *testing.T) {
	face := basicfont.Face7x13

	t.Run("fits on one line", func(t *testing.T) {
		assert.Equal(t, []string{"be mine"}, wrap(face, "be mine", 100))
	})

	t.Run("breaks between words", func(t *testing.T) {
		lines := wrap(face, "one two three four five", 7*9)
		assert.Equal(t, []string{"one two", "three", "four five"}, lines)
	})

	t.Run("keeps newlines", func(t *testing.T) {
		assert.Equal(t, []string{"dear", "", "you"}, wrap(face, "dear\n\nyou", 100))
	})

	t.Run("splits long words", func(t *testing.T) {
		lines := wrap(face, strings.Repeat("x", 25), 7*10)
		require.Len(t, lines, 3)
		for _, line := range lines {
			assert.LessOrEqual(t, font.MeasureString(face, line).Ceil(), 70)
		}
		assert.Equal(t, strings.Repeat("x", 25), strings.Join(lines, ""))
	})
}
