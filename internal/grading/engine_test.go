package grading

import (
	"testing"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(t *testing.T, id string, questionType models.QuestionType, points int, content interface{}) models.Question {
	t.Helper()
	q := models.Question{ID: id, Type: questionType, Points: points}
	require.NoError(t, q.SetContent(content))
	return q
}

func boolPtr(v bool) *bool { return &v }

func TestChoiceStrategy(t *testing.T) {
	grader := NewGrader()
	single := question(t, "q1", models.SingleChoice, 1, models.ChoiceContent{
		Options: []models.ChoiceOption{
			{ID: "a", Text: "Paris", IsCorrect: true},
			{ID: "b", Text: "Rome"},
		},
	})
	multi := question(t, "q2", models.MultipleChoice, 2, models.ChoiceContent{
		Options: []models.ChoiceOption{
			{ID: "a", Text: "2", IsCorrect: true},
			{ID: "b", Text: "3", IsCorrect: true},
			{ID: "c", Text: "4"},
		},
	})

	tests := []struct {
		name    string
		q       models.Question
		answer  models.Answer
		correct bool
	}{
		{"single correct", single, models.Answer{SelectedOptions: []string{"a"}}, true},
		{"single wrong", single, models.Answer{SelectedOptions: []string{"b"}}, false},
		{"single empty", single, models.Answer{}, false},
		{"multi exact set", multi, models.Answer{SelectedOptions: []string{"b", "a"}}, true},
		{"multi partial", multi, models.Answer{SelectedOptions: []string{"a"}}, false},
		{"multi superset", multi, models.Answer{SelectedOptions: []string{"a", "b", "c"}}, false},
		{"multi empty", multi, models.Answer{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, err := grader.GradeQuestion(tt.q, tt.answer)
			require.NoError(t, err)
			assert.Equal(t, tt.correct, correct)
		})
	}
}

func TestTrueFalseStrategy(t *testing.T) {
	grader := NewGrader()
	q := question(t, "q1", models.TrueFalse, 1, models.TrueFalseContent{CorrectAnswer: true})

	correct, err := grader.GradeQuestion(q, models.Answer{BoolAnswer: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, correct)

	correct, err = grader.GradeQuestion(q, models.Answer{BoolAnswer: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, correct)

	correct, err = grader.GradeQuestion(q, models.Answer{})
	require.NoError(t, err)
	assert.False(t, correct)
}

func TestMatchesBlank(t *testing.T) {
	blank := models.Blank{ID: "b1", CorrectAnswer: "Paris", AcceptableAnswers: []string{"City of Light"}}

	assert.True(t, MatchesBlank(blank, "Paris"))
	assert.True(t, MatchesBlank(blank, "paris"))
	assert.True(t, MatchesBlank(blank, "  PARIS  "))
	assert.True(t, MatchesBlank(blank, "city of light"))
	assert.False(t, MatchesBlank(blank, "London"))
	assert.False(t, MatchesBlank(blank, ""))
	assert.False(t, MatchesBlank(blank, "   "))

	sensitive := models.Blank{ID: "b2", CorrectAnswer: "pH", CaseSensitive: true}
	assert.True(t, MatchesBlank(sensitive, "pH"))
	assert.False(t, MatchesBlank(sensitive, "ph"))
	assert.True(t, MatchesBlank(sensitive, " pH "))
}

func TestFillBlankStrategy(t *testing.T) {
	grader := NewGrader()
	q := question(t, "q1", models.FillBlank, 2, models.FillBlankContent{
		TextWithBlanks: "___ is the capital of ___.",
		Blanks: []models.Blank{
			{ID: "b1", CorrectAnswer: "Paris"},
			{ID: "b2", CorrectAnswer: "France"},
		},
	})

	correct, err := grader.GradeQuestion(q, models.Answer{BlankTexts: map[string]string{"b1": "paris", "b2": "FRANCE"}})
	require.NoError(t, err)
	assert.True(t, correct)

	// Every blank must match.
	correct, err = grader.GradeQuestion(q, models.Answer{BlankTexts: map[string]string{"b1": "Paris"}})
	require.NoError(t, err)
	assert.False(t, correct)

	// A question with no blanks cannot be answered correctly.
	empty := question(t, "q2", models.FillBlank, 1, models.FillBlankContent{TextWithBlanks: "no markers"})
	correct, err = grader.GradeQuestion(empty, models.Answer{})
	require.NoError(t, err)
	assert.False(t, correct)
}

func TestDragFillStrategy(t *testing.T) {
	grader := NewGrader()
	q := question(t, "q1", models.DragFill, 2, models.DragFillContent{
		TextWithBlanks: "___ orbits the ___.",
		Items: []models.DragItem{
			{ID: "earth", Text: "Earth"},
			{ID: "sun", Text: "Sun"},
			{ID: "moon", Text: "Moon"},
		},
		DropZones: []models.DropZone{
			{ID: "z1", CorrectItemID: "earth"},
			{ID: "z2", CorrectItemID: "sun"},
		},
	})

	correct, err := grader.GradeQuestion(q, models.Answer{ZonePlacements: map[string]string{"z1": "earth", "z2": "sun"}})
	require.NoError(t, err)
	assert.True(t, correct)

	correct, err = grader.GradeQuestion(q, models.Answer{ZonePlacements: map[string]string{"z1": "moon", "z2": "sun"}})
	require.NoError(t, err)
	assert.False(t, correct)

	correct, err = grader.GradeQuestion(q, models.Answer{ZonePlacements: map[string]string{"z1": "earth"}})
	require.NoError(t, err)
	assert.False(t, correct)
}

func TestDragDropStrategy(t *testing.T) {
	grader := NewGrader()
	q := question(t, "q1", models.DragDrop, 3, models.DragDropContent{
		Items: []models.DragItem{
			{ID: "apple", Text: "Apple"},
			{ID: "carrot", Text: "Carrot"},
		},
		Categories: []models.Category{
			{ID: "fruit", Name: "Fruits", CorrectItemIDs: []string{"apple"}},
			{ID: "veg", Name: "Vegetables", CorrectItemIDs: []string{"carrot"}},
		},
	})

	correct, err := grader.GradeQuestion(q, models.Answer{CategoryPlacements: map[string][]string{
		"fruit": {"apple"},
		"veg":   {"carrot"},
	}})
	require.NoError(t, err)
	assert.True(t, correct)

	// Swapped placement fails both categories.
	correct, err = grader.GradeQuestion(q, models.Answer{CategoryPlacements: map[string][]string{
		"fruit": {"carrot"},
		"veg":   {"apple"},
	}})
	require.NoError(t, err)
	assert.False(t, correct)

	correct, err = grader.GradeQuestion(q, models.Answer{CategoryPlacements: map[string][]string{
		"fruit": {"apple"},
	}})
	require.NoError(t, err)
	assert.False(t, correct)
}

func TestGradeQuiz(t *testing.T) {
	grader := NewGrader()
	explanation := "Paris has been the capital since 987."
	q1 := question(t, "q1", models.SingleChoice, 2, models.ChoiceContent{
		Options: []models.ChoiceOption{
			{ID: "a", Text: "Paris", IsCorrect: true},
			{ID: "b", Text: "Rome"},
		},
	})
	q1.Explanation = &explanation
	q2 := question(t, "q2", models.TrueFalse, 3, models.TrueFalseContent{CorrectAnswer: false})

	quiz := &models.Quiz{
		ID:           "quiz-1",
		PassingScore: 40,
		Questions:    []models.Question{q1, q2},
	}

	result, err := grader.GradeQuiz(quiz, models.AnswerSet{
		"q1": {SelectedOptions: []string{"a"}},
		"q2": {BoolAnswer: boolPtr(true)},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.EarnedPoints)
	assert.Equal(t, 5, result.TotalPoints)
	assert.InDelta(t, 40.0, result.Percentage, 0.001)
	assert.True(t, result.Passed)
	assert.Equal(t, 1, result.CorrectCount)
	require.Len(t, result.Feedback, 2)
	assert.True(t, result.Feedback[0].IsCorrect)
	assert.Equal(t, &explanation, result.Feedback[0].Explanation)
	assert.False(t, result.Feedback[1].IsCorrect)
	assert.Equal(t, 0, result.Feedback[1].EarnedPoints)
}

func TestGradeQuiz_UnansweredQuestionsScoreZero(t *testing.T) {
	grader := NewGrader()
	quiz := &models.Quiz{
		ID:           "quiz-1",
		PassingScore: 70,
		Questions: []models.Question{
			question(t, "q1", models.TrueFalse, 1, models.TrueFalseContent{CorrectAnswer: true}),
		},
	}

	result, err := grader.GradeQuiz(quiz, models.AnswerSet{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.EarnedPoints)
	assert.False(t, result.Passed)
}
