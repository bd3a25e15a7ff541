package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionFeedback is the per-question outcome inside a QuizResult.
type QuestionFeedback struct {
	QuestionID   string  `json:"question_id"`
	IsCorrect    bool    `json:"is_correct"`
	EarnedPoints int     `json:"earned_points"`
	Points       int     `json:"points"`
	Explanation  *string `json:"explanation,omitempty"`
}

// QuizResult is the graded outcome of one attempt. It is derived, not
// authored: the grading engine produces it from the answer set.
type QuizResult struct {
	EarnedPoints int                `json:"earned_points"`
	TotalPoints  int                `json:"total_points"`
	Percentage   float64            `json:"percentage"`
	Passed       bool               `json:"passed"`
	CorrectCount int                `json:"correct_count"`
	Feedback     []QuestionFeedback `json:"feedback"`
}

// FeedbackFor returns the feedback entry for a question, or nil.
func (r *QuizResult) FeedbackFor(questionID string) *QuestionFeedback {
	for i := range r.Feedback {
		if r.Feedback[i].QuestionID == questionID {
			return &r.Feedback[i]
		}
	}
	return nil
}

// AttemptResult is the persisted snapshot of a QuizResult.
type AttemptResult struct {
	AttemptID string `json:"attempt_id" gorm:"primaryKey;size:36"`

	EarnedPoints int     `json:"earned_points"`
	TotalPoints  int     `json:"total_points"`
	Percentage   float64 `json:"percentage"`
	Passed       bool    `json:"passed"`

	// Per-question feedback as JSONB ([]QuestionFeedback).
	Feedback datatypes.JSON `json:"feedback" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}

func (AttemptResult) TableName() string {
	return "quiz_attempt_results"
}
