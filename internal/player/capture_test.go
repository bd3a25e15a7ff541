package player

import (
	"testing"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleOption_SingleChoice(t *testing.T) {
	q := mustQuestion(t, "q1", models.SingleChoice, 1, models.ChoiceContent{
		Options: []models.ChoiceOption{
			{ID: "a", Text: "Paris", IsCorrect: true},
			{ID: "b", Text: "Rome"},
		},
	})

	answer, err := ToggleOption(q, models.Answer{}, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, answer.SelectedOptions)

	// Single choice replaces the selection instead of accumulating.
	answer, err = ToggleOption(q, answer, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, answer.SelectedOptions)
}

func TestToggleOption_MultipleChoice(t *testing.T) {
	q := mustQuestion(t, "q1", models.MultipleChoice, 1, models.ChoiceContent{
		Options: []models.ChoiceOption{
			{ID: "a", Text: "2", IsCorrect: true},
			{ID: "b", Text: "3", IsCorrect: true},
			{ID: "c", Text: "4"},
		},
	})

	answer, err := ToggleOption(q, models.Answer{}, "a")
	require.NoError(t, err)
	answer, err = ToggleOption(q, answer, "b")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, answer.SelectedOptions)

	// Toggling a selected option removes it.
	answer, err = ToggleOption(q, answer, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, answer.SelectedOptions)
}

func TestToggleOption_WrongType(t *testing.T) {
	q := mustQuestion(t, "q1", models.TrueFalse, 1, models.TrueFalseContent{CorrectAnswer: true})
	_, err := ToggleOption(q, models.Answer{}, "a")
	assert.Error(t, err)
}

func TestSetBlankText(t *testing.T) {
	answer := SetBlankText(models.Answer{}, "b1", "100")
	answer = SetBlankText(answer, "b2", "212")
	answer = SetBlankText(answer, "b1", "101")

	assert.Equal(t, "101", answer.BlankTexts["b1"])
	assert.Equal(t, "212", answer.BlankTexts["b2"])
}

func TestPlaceItem(t *testing.T) {
	answer := PlaceItem(models.Answer{}, "z1", "i1")
	assert.Equal(t, map[string]string{"z1": "i1"}, answer.ZonePlacements)

	// Moving an item to a new zone vacates its old zone.
	answer = PlaceItem(answer, "z2", "i1")
	assert.Equal(t, map[string]string{"z2": "i1"}, answer.ZonePlacements)

	// Dropping onto an occupied zone sends the occupant back to the pool.
	answer = PlaceItem(answer, "z2", "i2")
	assert.Equal(t, map[string]string{"z2": "i2"}, answer.ZonePlacements)
}

func TestClearZone(t *testing.T) {
	answer := PlaceItem(models.Answer{}, "z1", "i1")
	answer = PlaceItem(answer, "z2", "i2")

	answer = ClearZone(answer, "z1")
	assert.Equal(t, map[string]string{"z2": "i2"}, answer.ZonePlacements)

	// Clearing an empty zone is a no-op.
	answer = ClearZone(answer, "z1")
	assert.Equal(t, map[string]string{"z2": "i2"}, answer.ZonePlacements)
}

func TestDropItem(t *testing.T) {
	answer := DropItem(models.Answer{}, "fruit", "apple")
	answer = DropItem(answer, "fruit", "pear")
	assert.Equal(t, []string{"apple", "pear"}, answer.CategoryPlacements["fruit"])

	// An item lives in exactly one category at a time.
	answer = DropItem(answer, "veg", "apple")
	assert.Equal(t, []string{"pear"}, answer.CategoryPlacements["fruit"])
	assert.Equal(t, []string{"apple"}, answer.CategoryPlacements["veg"])
}

func TestRemoveDroppedItem(t *testing.T) {
	answer := DropItem(models.Answer{}, "fruit", "apple")
	answer = DropItem(answer, "fruit", "pear")

	answer = RemoveDroppedItem(answer, "apple")
	assert.Equal(t, []string{"pear"}, answer.CategoryPlacements["fruit"])

	// Removing the last item drops the category key entirely.
	answer = RemoveDroppedItem(answer, "pear")
	assert.NotContains(t, answer.CategoryPlacements, "fruit")
}

func TestIsAnswered(t *testing.T) {
	choice := mustQuestion(t, "q1", models.SingleChoice, 1, models.ChoiceContent{
		Options: []models.ChoiceOption{{ID: "a", Text: "x", IsCorrect: true}, {ID: "b", Text: "y"}},
	})
	trueFalse := mustQuestion(t, "q2", models.TrueFalse, 1, models.TrueFalseContent{CorrectAnswer: true})
	fillBlank := mustQuestion(t, "q3", models.FillBlank, 1, models.FillBlankContent{
		TextWithBlanks: "___",
		Blanks:         []models.Blank{{ID: "b1", CorrectAnswer: "x"}},
	})

	assert.False(t, IsAnswered(choice, models.Answer{}))
	assert.True(t, IsAnswered(choice, models.Answer{SelectedOptions: []string{"a"}}))

	assert.False(t, IsAnswered(trueFalse, models.Answer{}))
	assert.True(t, IsAnswered(trueFalse, SelectBool(models.Answer{}, false)))

	// Empty strings do not count for blanks.
	assert.False(t, IsAnswered(fillBlank, models.Answer{BlankTexts: map[string]string{"b1": ""}}))
	assert.True(t, IsAnswered(fillBlank, models.Answer{BlankTexts: map[string]string{"b1": "x"}}))
}
