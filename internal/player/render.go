package player

import (
	"strings"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// SplitPrompt splits a fill_blank or drag_fill prompt on the blank
// markers. The result has one more segment than there are blanks; an
// input slot (or drop zone) is interleaved between segments.
func SplitPrompt(text string) []string {
	return strings.Split(text, models.BlankMarker)
}
