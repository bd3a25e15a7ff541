package editor

import (
	"testing"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestWarnings_Choice(t *testing.T) {
	q := choiceQuestion(models.SingleChoice,
		models.ChoiceOption{ID: "a", Text: "Paris", IsCorrect: true},
		models.ChoiceOption{ID: "b", Text: "Rome"},
	)
	q.Text = "Capital of France?"
	assert.Empty(t, Warnings(q))

	q.Text = ""
	assert.Contains(t, Warnings(q), "question text is empty")

	noCorrect := choiceQuestion(models.SingleChoice,
		models.ChoiceOption{ID: "a", Text: "Paris"},
		models.ChoiceOption{ID: "b", Text: ""},
	)
	noCorrect.Text = "Capital of France?"
	warnings := Warnings(noCorrect)
	assert.Contains(t, warnings, "select a correct answer")
	assert.Contains(t, warnings, "option 2 has no text")
}

func TestWarnings_FillBlank(t *testing.T) {
	q := fillBlankQuestion("Water boils at ___ degrees.",
		models.Blank{ID: "b1", CorrectAnswer: "100"},
	)
	assert.Empty(t, Warnings(q))

	noBlanks := fillBlankQuestion("Water boils at 100 degrees.")
	assert.Contains(t, Warnings(noBlanks), "add at least one blank (___) to the text")

	noAnswer := fillBlankQuestion("Water boils at ___ degrees.",
		models.Blank{ID: "b1"},
	)
	assert.Contains(t, Warnings(noAnswer), "blank 1 has no correct answer")
}

func TestWarnings_DragFill(t *testing.T) {
	q := dragFillQuestion(models.DragFillContent{
		TextWithBlanks: "The ___ orbits the Earth.",
		Items:          []models.DragItem{{ID: "i1", Text: "Moon"}},
		DropZones:      []models.DropZone{{ID: "z1", CorrectItemID: "i1"}},
	})
	assert.Empty(t, Warnings(q))

	unassigned := dragFillQuestion(models.DragFillContent{
		TextWithBlanks: "The ___ orbits the Earth.",
		DropZones:      []models.DropZone{{ID: "z1"}},
	})
	warnings := Warnings(unassigned)
	assert.Contains(t, warnings, "add draggable items")
	assert.Contains(t, warnings, "drop zone 1 has no correct item")
}

func TestWarnings_DragDrop(t *testing.T) {
	q := dragDropQuestion(models.DragDropContent{
		Items: []models.DragItem{{ID: "i1", Text: "apple"}},
		Categories: []models.Category{
			{ID: "c1", Name: "Fruit", CorrectItemIDs: []string{"i1"}},
			{ID: "c2", Name: "Vegetable"},
		},
	})
	q.Text = "Sort the groceries."
	assert.Empty(t, Warnings(q))

	empty := dragDropQuestion(models.DragDropContent{
		Categories: []models.Category{
			{ID: "c1", Name: ""},
			{ID: "c2", Name: "Vegetable"},
		},
	})
	empty.Text = "Sort the groceries."
	warnings := Warnings(empty)
	assert.Contains(t, warnings, "add draggable items")
	assert.Contains(t, warnings, "every category needs a name")
	assert.Contains(t, warnings, "assign items to categories")
}
