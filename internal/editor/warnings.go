package editor

import (
	"fmt"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// Warnings reports advisory authoring problems for a question draft.
// They are shown inline to the author and never block editing; hard
// validation happens at quiz save time.
func Warnings(q models.Question) []string {
	var warnings []string

	if q.Text == "" && q.Type != models.FillBlank && q.Type != models.DragFill {
		warnings = append(warnings, "question text is empty")
	}

	switch q.Type {
	case models.SingleChoice, models.MultipleChoice:
		content, err := q.ChoiceContent()
		if err != nil {
			return append(warnings, "question content is unreadable")
		}
		correct := 0
		for i, opt := range content.Options {
			if opt.IsCorrect {
				correct++
			}
			if opt.Text == "" {
				warnings = append(warnings, fmt.Sprintf("option %d has no text", i+1))
			}
		}
		if correct == 0 {
			warnings = append(warnings, "select a correct answer")
		}
		if q.Type == models.SingleChoice && correct > 1 {
			warnings = append(warnings, "single choice questions allow only one correct answer")
		}

	case models.FillBlank:
		content, err := q.FillBlankContent()
		if err != nil {
			return append(warnings, "question content is unreadable")
		}
		if len(content.Blanks) == 0 {
			warnings = append(warnings, "add at least one blank (___) to the text")
		}
		for i, blank := range content.Blanks {
			if blank.CorrectAnswer == "" {
				warnings = append(warnings, fmt.Sprintf("blank %d has no correct answer", i+1))
			}
		}

	case models.DragFill:
		content, err := q.DragFillContent()
		if err != nil {
			return append(warnings, "question content is unreadable")
		}
		if len(content.DropZones) == 0 {
			warnings = append(warnings, "add at least one blank (___) to the text")
		}
		if len(content.Items) == 0 {
			warnings = append(warnings, "add draggable items")
		}
		for i, zone := range content.DropZones {
			if zone.CorrectItemID == "" {
				warnings = append(warnings, fmt.Sprintf("drop zone %d has no correct item", i+1))
			}
		}

	case models.DragDrop:
		content, err := q.DragDropContent()
		if err != nil {
			return append(warnings, "question content is unreadable")
		}
		if len(content.Items) == 0 {
			warnings = append(warnings, "add draggable items")
		}
		assigned := 0
		for _, category := range content.Categories {
			if category.Name == "" {
				warnings = append(warnings, "every category needs a name")
			}
			assigned += len(category.CorrectItemIDs)
		}
		if assigned == 0 {
			warnings = append(warnings, "assign items to categories")
		}
	}

	return warnings
}
