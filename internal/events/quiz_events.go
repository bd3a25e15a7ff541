package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of quiz events
type EventType string

const (
	// Quiz events
	EventQuizCreated EventType = "quiz.created"
	EventQuizUpdated EventType = "quiz.updated"
	EventQuizDeleted EventType = "quiz.deleted"

	// Attempt events
	EventAttemptStarted  EventType = "attempt.started"
	EventAttemptGraded   EventType = "attempt.graded"
	EventAttemptTimedOut EventType = "attempt.timed_out"
)

// QuizEvent is the base event structure for all quiz events
type QuizEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Quiz event payloads

type QuizCreatedEvent struct {
	QuizID        string `json:"quiz_id"`
	LessonID      string `json:"lesson_id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
}

type QuizUpdatedEvent struct {
	QuizID        string `json:"quiz_id"`
	LessonID      string `json:"lesson_id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
}

type QuizDeletedEvent struct {
	QuizID   string `json:"quiz_id"`
	LessonID string `json:"lesson_id"`
}

// Attempt event payloads

type AttemptStartedEvent struct {
	AttemptID string    `json:"attempt_id"`
	QuizID    string    `json:"quiz_id"`
	StudentID string    `json:"student_id"`
	StartedAt time.Time `json:"started_at"`
	TimeLimit *int      `json:"time_limit,omitempty"` // seconds
}

type AttemptGradedEvent struct {
	AttemptID    string    `json:"attempt_id"`
	QuizID       string    `json:"quiz_id"`
	StudentID    string    `json:"student_id"`
	GradedAt     time.Time `json:"graded_at"`
	EarnedPoints int       `json:"earned_points"`
	TotalPoints  int       `json:"total_points"`
	Percentage   float64   `json:"percentage"`
	Passed       bool      `json:"passed"`
	TimedOut     bool      `json:"timed_out"`
}

type AttemptTimedOutEvent struct {
	AttemptID string    `json:"attempt_id"`
	QuizID    string    `json:"quiz_id"`
	StudentID string    `json:"student_id"`
	ExpiredAt time.Time `json:"expired_at"`
}

// Event factory functions

func newEvent(eventType EventType, data interface{}) *QuizEvent {
	return &QuizEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "quiz-engine",
		Version:   "1.0",
		Data:      data,
	}
}

func NewQuizCreatedEvent(quizID, lessonID, title string, questionCount int) *QuizEvent {
	return newEvent(EventQuizCreated, QuizCreatedEvent{
		QuizID:        quizID,
		LessonID:      lessonID,
		Title:         title,
		QuestionCount: questionCount,
	})
}

func NewQuizUpdatedEvent(quizID, lessonID, title string, questionCount int) *QuizEvent {
	return newEvent(EventQuizUpdated, QuizUpdatedEvent{
		QuizID:        quizID,
		LessonID:      lessonID,
		Title:         title,
		QuestionCount: questionCount,
	})
}

func NewQuizDeletedEvent(quizID, lessonID string) *QuizEvent {
	return newEvent(EventQuizDeleted, QuizDeletedEvent{
		QuizID:   quizID,
		LessonID: lessonID,
	})
}

func NewAttemptStartedEvent(attemptID, quizID, studentID string, startedAt time.Time, timeLimit *int) *QuizEvent {
	return newEvent(EventAttemptStarted, AttemptStartedEvent{
		AttemptID: attemptID,
		QuizID:    quizID,
		StudentID: studentID,
		StartedAt: startedAt,
		TimeLimit: timeLimit,
	})
}

func NewAttemptGradedEvent(attemptID, quizID, studentID string, gradedAt time.Time, earned, total int, percentage float64, passed, timedOut bool) *QuizEvent {
	return newEvent(EventAttemptGraded, AttemptGradedEvent{
		AttemptID:    attemptID,
		QuizID:       quizID,
		StudentID:    studentID,
		GradedAt:     gradedAt,
		EarnedPoints: earned,
		TotalPoints:  total,
		Percentage:   percentage,
		Passed:       passed,
		TimedOut:     timedOut,
	})
}

func NewAttemptTimedOutEvent(attemptID, quizID, studentID string, expiredAt time.Time) *QuizEvent {
	return newEvent(EventAttemptTimedOut, AttemptTimedOutEvent{
		AttemptID: attemptID,
		QuizID:    quizID,
		StudentID: studentID,
		ExpiredAt: expiredAt,
	})
}
