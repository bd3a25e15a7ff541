package validator

import (
	"encoding/json"
	"testing"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, content interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(content)
	require.NoError(t, err)
	return data
}

func validChoice(correct ...int) models.ChoiceContent {
	content := models.ChoiceContent{
		Options: []models.ChoiceOption{
			{ID: "a", Text: "Paris"},
			{ID: "b", Text: "Rome"},
			{ID: "c", Text: "Berlin"},
		},
	}
	for _, i := range correct {
		content.Options[i].IsCorrect = true
	}
	return content
}

func TestValidateChoiceContent_SingleChoice(t *testing.T) {
	v := NewQuestionValidator()

	assert.NoError(t, v.ValidateContent(models.SingleChoice, marshal(t, validChoice(0))))

	tests := []struct {
		name    string
		content models.ChoiceContent
	}{
		{"no correct option", validChoice()},
		{"two correct options", validChoice(0, 1)},
		{"one option", models.ChoiceContent{Options: []models.ChoiceOption{{ID: "a", Text: "x", IsCorrect: true}}}},
		{"empty option text", models.ChoiceContent{Options: []models.ChoiceOption{
			{ID: "a", Text: "x", IsCorrect: true},
			{ID: "b"},
		}}},
		{"duplicate option id", models.ChoiceContent{Options: []models.ChoiceOption{
			{ID: "a", Text: "x", IsCorrect: true},
			{ID: "a", Text: "y"},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, v.ValidateContent(models.SingleChoice, marshal(t, tt.content)))
		})
	}
}

func TestValidateChoiceContent_MultipleChoice(t *testing.T) {
	v := NewQuestionValidator()

	// Multiple choice allows several correct options but needs one.
	assert.NoError(t, v.ValidateContent(models.MultipleChoice, marshal(t, validChoice(0, 2))))
	assert.Error(t, v.ValidateContent(models.MultipleChoice, marshal(t, validChoice())))
}

func TestValidateFillBlankContent(t *testing.T) {
	v := NewQuestionValidator()

	valid := models.FillBlankContent{
		TextWithBlanks: "Water boils at ___ degrees and freezes at ___.",
		Blanks: []models.Blank{
			{ID: "b1", CorrectAnswer: "100"},
			{ID: "b2", CorrectAnswer: "0"},
		},
	}
	assert.NoError(t, v.ValidateContent(models.FillBlank, marshal(t, valid)))

	noMarkers := valid
	noMarkers.TextWithBlanks = "Water boils at 100 degrees."
	assert.Error(t, v.ValidateContent(models.FillBlank, marshal(t, noMarkers)))

	mismatch := valid
	mismatch.Blanks = valid.Blanks[:1]
	assert.Error(t, v.ValidateContent(models.FillBlank, marshal(t, mismatch)))

	noAnswer := models.FillBlankContent{
		TextWithBlanks: "Water boils at ___.",
		Blanks:         []models.Blank{{ID: "b1"}},
	}
	assert.Error(t, v.ValidateContent(models.FillBlank, marshal(t, noAnswer)))
}

func TestValidateDragFillContent(t *testing.T) {
	v := NewQuestionValidator()

	valid := models.DragFillContent{
		TextWithBlanks: "The ___ orbits the ___.",
		Items: []models.DragItem{
			{ID: "i1", Text: "Moon"},
			{ID: "i2", Text: "Earth"},
		},
		DropZones: []models.DropZone{
			{ID: "z1", CorrectItemID: "i1"},
			{ID: "z2", CorrectItemID: "i2"},
		},
	}
	assert.NoError(t, v.ValidateContent(models.DragFill, marshal(t, valid)))

	danglingZone := valid
	danglingZone.DropZones = []models.DropZone{
		{ID: "z1", CorrectItemID: "i1"},
		{ID: "z2", CorrectItemID: "missing"},
	}
	assert.Error(t, v.ValidateContent(models.DragFill, marshal(t, danglingZone)))

	zoneMarkerMismatch := valid
	zoneMarkerMismatch.DropZones = valid.DropZones[:1]
	assert.Error(t, v.ValidateContent(models.DragFill, marshal(t, zoneMarkerMismatch)))

	noItems := valid
	noItems.Items = nil
	assert.Error(t, v.ValidateContent(models.DragFill, marshal(t, noItems)))
}

func TestValidateDragDropContent(t *testing.T) {
	v := NewQuestionValidator()

	valid := models.DragDropContent{
		Items: []models.DragItem{
			{ID: "i1", Text: "apple"},
			{ID: "i2", Text: "carrot"},
		},
		Categories: []models.Category{
			{ID: "c1", Name: "Fruit", CorrectItemIDs: []string{"i1"}},
			{ID: "c2", Name: "Vegetable", CorrectItemIDs: []string{"i2"}},
		},
	}
	assert.NoError(t, v.ValidateContent(models.DragDrop, marshal(t, valid)))

	oneCategory := valid
	oneCategory.Categories = valid.Categories[:1]
	assert.Error(t, v.ValidateContent(models.DragDrop, marshal(t, oneCategory)))

	// The same item cannot be correct in two categories.
	doubleAssigned := models.DragDropContent{
		Items: valid.Items,
		Categories: []models.Category{
			{ID: "c1", Name: "Fruit", CorrectItemIDs: []string{"i1"}},
			{ID: "c2", Name: "Snacks", CorrectItemIDs: []string{"i1"}},
		},
	}
	assert.Error(t, v.ValidateContent(models.DragDrop, marshal(t, doubleAssigned)))

	danglingRef := models.DragDropContent{
		Items: valid.Items,
		Categories: []models.Category{
			{ID: "c1", Name: "Fruit", CorrectItemIDs: []string{"missing"}},
			{ID: "c2", Name: "Vegetable", CorrectItemIDs: []string{"i2"}},
		},
	}
	assert.Error(t, v.ValidateContent(models.DragDrop, marshal(t, danglingRef)))
}

func TestValidateContent_Basics(t *testing.T) {
	v := NewQuestionValidator()

	assert.Error(t, v.ValidateContent(models.SingleChoice, nil))
	assert.Error(t, v.ValidateContent(models.QuestionType("essay"), marshal(t, validChoice(0))))
	assert.NoError(t, v.ValidateContent(models.TrueFalse, marshal(t, models.TrueFalseContent{CorrectAnswer: true})))
}

func TestValidateQuestion(t *testing.T) {
	v := NewQuestionValidator()

	q := &models.Question{
		ID:     "q1",
		Type:   models.SingleChoice,
		Text:   "Capital of France?",
		Points: 1,
	}
	require.NoError(t, q.SetContent(validChoice(0)))
	assert.NoError(t, v.ValidateQuestion(q))

	noText := *q
	noText.Text = ""
	assert.Error(t, v.ValidateQuestion(&noText))

	zeroPoints := *q
	zeroPoints.Points = 0
	assert.Error(t, v.ValidateQuestion(&zeroPoints))

	// Fill-in questions carry their text inside the content.
	fill := &models.Question{ID: "q2", Type: models.FillBlank, Points: 1}
	require.NoError(t, fill.SetContent(models.FillBlankContent{
		TextWithBlanks: "___",
		Blanks:         []models.Blank{{ID: "b1", CorrectAnswer: "x"}},
	}))
	assert.NoError(t, v.ValidateQuestion(fill))
}

func TestValidateQuiz(t *testing.T) {
	v := NewQuestionValidator()

	q := models.Question{ID: "q1", Type: models.TrueFalse, Text: "Is water wet?", Points: 1, Order: 0}
	require.NoError(t, q.SetContent(models.TrueFalseContent{CorrectAnswer: true}))

	quiz := &models.Quiz{
		ID:           "quiz-1",
		LessonID:     "lesson-1",
		Title:        "States of Matter",
		PassingScore: 70,
		Questions:    []models.Question{q},
	}
	assert.NoError(t, v.ValidateQuiz(quiz))

	untitled := *quiz
	untitled.Title = ""
	assert.Error(t, v.ValidateQuiz(&untitled))

	empty := *quiz
	empty.Questions = nil
	assert.Error(t, v.ValidateQuiz(&empty))

	badScore := *quiz
	badScore.PassingScore = 120
	assert.Error(t, v.ValidateQuiz(&badScore))

	outOfOrder := *quiz
	shifted := q
	shifted.Order = 3
	outOfOrder.Questions = []models.Question{shifted}
	assert.Error(t, v.ValidateQuiz(&outOfOrder))
}

func TestValidator_StructTags(t *testing.T) {
	v := New()

	quiz := &models.Quiz{
		ID:           "quiz-1",
		LessonID:     "lesson-1",
		Title:        "States of Matter",
		PassingScore: 70,
	}
	assert.NoError(t, v.ValidateStruct(quiz))

	quiz.LessonID = ""
	assert.Error(t, v.ValidateStruct(quiz))
}
