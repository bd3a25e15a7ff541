package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultPassingScore is applied to newly created quizzes.
const DefaultPassingScore = 70

type Quiz struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"`
	LessonID    string  `json:"lesson_id" gorm:"not null;uniqueIndex;size:36" validate:"required"`
	Title       string  `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`

	// Scoring and timing
	PassingScore int  `json:"passing_score" gorm:"not null;default:70" validate:"min=0,max=100"`
	TimeLimit    *int `json:"time_limit" validate:"omitempty,min=1,max=300"` // Minutes; nil means untimed

	// Attempt behaviour
	ShuffleQuestions   bool `json:"shuffle_questions" gorm:"default:false"`
	ShuffleOptions     bool `json:"shuffle_options" gorm:"default:false"`
	ShowCorrectAnswers bool `json:"show_correct_answers" gorm:"default:true"`
	AllowRetake        bool `json:"allow_retake" gorm:"default:true"`
	MaxAttempts        *int `json:"max_attempts" validate:"omitempty,min=1,max=10"`

	Questions []Question `json:"questions" gorm:"foreignKey:QuizID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// TotalPoints sums the point values of every question in the quiz.
func (q *Quiz) TotalPoints() int {
	total := 0
	for i := range q.Questions {
		total += q.Questions[i].Points
	}
	return total
}

// QuestionByID returns the question with the given id, or nil.
func (q *Quiz) QuestionByID(id string) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i]
		}
	}
	return nil
}
