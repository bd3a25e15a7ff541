package models

import (
	"time"

	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusSubmitted  AttemptStatus = "submitted"
	AttemptStatusTimedOut   AttemptStatus = "timed_out"
)

type AttemptEndReason string

const (
	AttemptEndReasonManual  AttemptEndReason = "manual"
	AttemptEndReasonTimeout AttemptEndReason = "timeout"
)

type QuizAttempt struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	QuizID    string `json:"quiz_id" gorm:"not null;index;size:36"`
	StudentID string `json:"student_id" gorm:"not null;index;size:255"`

	Status    AttemptStatus     `json:"status" gorm:"not null;default:in_progress;index"`
	EndReason *AttemptEndReason `json:"end_reason"`

	StartedAt   time.Time  `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at"`

	// TimeLimit is the attempt budget in seconds; 0 means untimed.
	TimeLimit int        `json:"time_limit"`
	EndTime   *time.Time `json:"end_time"`

	// Shuffle permutations fixed at attempt start, so a resumed
	// attempt renders questions and options in the same order.
	QuestionOrder datatypes.JSON `json:"question_order" gorm:"type:jsonb"` // []string
	OptionOrders  datatypes.JSON `json:"option_orders" gorm:"type:jsonb"`  // map[questionID][]string

	Answers []AttemptAnswer `json:"answers" gorm:"foreignKey:AttemptID"`
	Result  *AttemptResult  `json:"result" gorm:"foreignKey:AttemptID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

type AttemptAnswer struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	AttemptID  string `json:"attempt_id" gorm:"not null;index;size:36"`
	QuestionID string `json:"question_id" gorm:"not null;index;size:36"`

	// Answer payload as JSONB; shape follows the question type.
	AnswerData datatypes.JSON `json:"answer_data" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AttemptAnswer) TableName() string {
	return "quiz_attempt_answers"
}
