// Package grading scores quiz attempts. A dispatch table keyed on the
// question type routes each answer to the matching strategy; scoring
// is all-or-nothing per question.
package grading

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// Strategy decides correctness of one captured answer.
type Strategy interface {
	IsCorrect(q models.Question, answer models.Answer) (bool, error)
}

// Grader grades whole quizzes by routing per question type.
type Grader struct {
	strategies map[models.QuestionType]Strategy
}

// NewGrader installs the built-in strategy for every variant.
func NewGrader() *Grader {
	return &Grader{
		strategies: map[models.QuestionType]Strategy{
			models.SingleChoice:   choiceStrategy{},
			models.MultipleChoice: choiceStrategy{},
			models.TrueFalse:      trueFalseStrategy{},
			models.FillBlank:      fillBlankStrategy{},
			models.DragFill:       dragFillStrategy{},
			models.DragDrop:       dragDropStrategy{},
		},
	}
}

// GradeQuestion decides correctness of a single answer.
func (g *Grader) GradeQuestion(q models.Question, answer models.Answer) (bool, error) {
	strategy, ok := g.strategies[q.Type]
	if !ok {
		return false, fmt.Errorf("no grading strategy for question type %s", q.Type)
	}
	return strategy.IsCorrect(q, answer)
}

// GradeQuiz grades every question of an attempt and produces the
// result with per-question feedback. Passed compares the percentage
// against the quiz's passing score.
func (g *Grader) GradeQuiz(quiz *models.Quiz, answers models.AnswerSet) (*models.QuizResult, error) {
	result := &models.QuizResult{
		Feedback: make([]models.QuestionFeedback, 0, len(quiz.Questions)),
	}

	for i := range quiz.Questions {
		q := quiz.Questions[i]
		correct, err := g.GradeQuestion(q, answers[q.ID])
		if err != nil {
			return nil, fmt.Errorf("failed to grade question %s: %w", q.ID, err)
		}

		earned := 0
		if correct {
			earned = q.Points
			result.CorrectCount++
		}
		result.EarnedPoints += earned
		result.TotalPoints += q.Points
		result.Feedback = append(result.Feedback, models.QuestionFeedback{
			QuestionID:   q.ID,
			IsCorrect:    correct,
			EarnedPoints: earned,
			Points:       q.Points,
			Explanation:  q.Explanation,
		})
	}

	if result.TotalPoints > 0 {
		result.Percentage = float64(result.EarnedPoints) / float64(result.TotalPoints) * 100
	}
	result.Passed = result.Percentage >= float64(quiz.PassingScore)

	return result, nil
}

// ===== STRATEGIES =====

type choiceStrategy struct{}

func (choiceStrategy) IsCorrect(q models.Question, answer models.Answer) (bool, error) {
	content, err := q.ChoiceContent()
	if err != nil {
		return false, err
	}
	if len(answer.SelectedOptions) == 0 {
		return false, nil
	}
	selected := make(map[string]bool, len(answer.SelectedOptions))
	for _, id := range answer.SelectedOptions {
		selected[id] = true
	}
	for _, opt := range content.Options {
		if opt.IsCorrect != selected[opt.ID] {
			return false, nil
		}
	}
	return true, nil
}

type trueFalseStrategy struct{}

func (trueFalseStrategy) IsCorrect(q models.Question, answer models.Answer) (bool, error) {
	content, err := q.TrueFalseContent()
	if err != nil {
		return false, err
	}
	return answer.BoolAnswer != nil && *answer.BoolAnswer == content.CorrectAnswer, nil
}

type fillBlankStrategy struct{}

func (fillBlankStrategy) IsCorrect(q models.Question, answer models.Answer) (bool, error) {
	content, err := q.FillBlankContent()
	if err != nil {
		return false, err
	}
	if len(content.Blanks) == 0 {
		return false, nil
	}
	for _, blank := range content.Blanks {
		if !MatchesBlank(blank, answer.BlankTexts[blank.ID]) {
			return false, nil
		}
	}
	return true, nil
}

// MatchesBlank compares a typed answer against a blank's correct
// answer and acceptable alternates. Both sides are case-folded unless
// the blank is case sensitive; surrounding whitespace never counts.
func MatchesBlank(blank models.Blank, input string) bool {
	fold := func(s string) string {
		s = strings.TrimSpace(s)
		if !blank.CaseSensitive {
			s = strings.ToLower(s)
		}
		return s
	}

	given := fold(input)
	if given == "" {
		return false
	}
	if given == fold(blank.CorrectAnswer) {
		return true
	}
	for _, alt := range blank.AcceptableAnswers {
		if given == fold(alt) {
			return true
		}
	}
	return false
}

type dragFillStrategy struct{}

func (dragFillStrategy) IsCorrect(q models.Question, answer models.Answer) (bool, error) {
	content, err := q.DragFillContent()
	if err != nil {
		return false, err
	}
	if len(content.DropZones) == 0 {
		return false, nil
	}
	for _, zone := range content.DropZones {
		if answer.ZonePlacements[zone.ID] != zone.CorrectItemID {
			return false, nil
		}
	}
	return true, nil
}

type dragDropStrategy struct{}

func (dragDropStrategy) IsCorrect(q models.Question, answer models.Answer) (bool, error) {
	content, err := q.DragDropContent()
	if err != nil {
		return false, err
	}
	for _, category := range content.Categories {
		placed := answer.CategoryPlacements[category.ID]
		if len(placed) != len(category.CorrectItemIDs) {
			return false, nil
		}
		correct := make(map[string]bool, len(category.CorrectItemIDs))
		for _, id := range category.CorrectItemIDs {
			correct[id] = true
		}
		for _, id := range placed {
			if !correct[id] {
				return false, nil
			}
		}
	}
	return true, nil
}
