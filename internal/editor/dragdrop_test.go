package editor

import (
	"testing"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortingQuestion() models.Question {
	return dragDropQuestion(models.DragDropContent{
		Items: []models.DragItem{
			{ID: "apple", Text: "Apple"},
			{ID: "carrot", Text: "Carrot"},
		},
		Categories: []models.Category{
			{ID: "fruit", Name: "Fruits", CorrectItemIDs: []string{}},
			{ID: "veg", Name: "Vegetables", CorrectItemIDs: []string{}},
		},
	})
}

func TestDragDropEditor_ToggleItemInCategory_Exclusive(t *testing.T) {
	e := NewDragDropEditor(newSeqGen("dd"))
	q := sortingQuestion()

	next, err := e.ToggleItemInCategory(q, "fruit", "apple")
	require.NoError(t, err)

	// Toggling into another category moves the item, it never belongs
	// to two correct sets at once.
	next, err = e.ToggleItemInCategory(next, "veg", "apple")
	require.NoError(t, err)
	content, err := next.DragDropContent()
	require.NoError(t, err)
	assert.Empty(t, content.Categories[0].CorrectItemIDs)
	assert.Equal(t, []string{"apple"}, content.Categories[1].CorrectItemIDs)

	// Toggling in place removes it.
	next, err = e.ToggleItemInCategory(next, "veg", "apple")
	require.NoError(t, err)
	content, err = next.DragDropContent()
	require.NoError(t, err)
	assert.Empty(t, content.Categories[1].CorrectItemIDs)
}

func TestDragDropEditor_RemoveItem_EvictsFromCategories(t *testing.T) {
	e := NewDragDropEditor(newSeqGen("dd"))
	q := sortingQuestion()

	next, err := e.ToggleItemInCategory(q, "fruit", "apple")
	require.NoError(t, err)
	next, err = e.RemoveItem(next, "apple")
	require.NoError(t, err)

	content, err := next.DragDropContent()
	require.NoError(t, err)
	require.Len(t, content.Items, 1)
	assert.Equal(t, "carrot", content.Items[0].ID)
	assert.Empty(t, content.Categories[0].CorrectItemIDs)
}

func TestDragDropEditor_RemoveCategory_MinimumIsNoOp(t *testing.T) {
	e := NewDragDropEditor(newSeqGen("dd"))
	q := sortingQuestion()

	next, err := e.RemoveCategory(q, "fruit")
	require.NoError(t, err)
	content, err := next.DragDropContent()
	require.NoError(t, err)
	assert.Len(t, content.Categories, 2)
}

func TestDragDropEditor_AddRemoveCategory(t *testing.T) {
	e := NewDragDropEditor(newSeqGen("dd"))
	q := sortingQuestion()

	next, err := e.AddCategory(q)
	require.NoError(t, err)
	next, err = e.RenameCategory(next, "dd-1", "Grains")
	require.NoError(t, err)

	content, err := next.DragDropContent()
	require.NoError(t, err)
	require.Len(t, content.Categories, 3)
	assert.Equal(t, "Grains", content.Categories[2].Name)

	next, err = e.RemoveCategory(next, "dd-1")
	require.NoError(t, err)
	content, err = next.DragDropContent()
	require.NoError(t, err)
	assert.Len(t, content.Categories, 2)
}
