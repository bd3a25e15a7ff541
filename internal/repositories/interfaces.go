package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"gorm.io/gorm"
)

// QuizFilters narrows quiz list queries.
type QuizFilters struct {
	LessonID *string
	Search   *string
	Limit    int
	Offset   int
}

// AttemptFilters narrows attempt list queries.
type AttemptFilters struct {
	QuizID    *string
	StudentID *string
	Status    *models.AttemptStatus
	Limit     int
	Offset    int
}

// QuizRepository persists quizzes together with their questions.
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
	GetByIDWithQuestions(ctx context.Context, id string) (*models.Quiz, error)
	GetByLesson(ctx context.Context, lessonID string) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, int64, error)
	ExistsForLesson(ctx context.Context, lessonID string) (bool, error)
}

// AttemptRepository persists attempt lifecycles.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, id string) (*models.QuizAttempt, error)
	GetByIDWithDetails(ctx context.Context, id string) (*models.QuizAttempt, error)
	Update(ctx context.Context, attempt *models.QuizAttempt) error
	GetActiveAttempt(ctx context.Context, quizID, studentID string) (*models.QuizAttempt, error)
	GetAttemptCount(ctx context.Context, quizID, studentID string) (int, error)
	List(ctx context.Context, filters AttemptFilters) ([]*models.QuizAttempt, int64, error)
	SaveResult(ctx context.Context, result *models.AttemptResult) error
}

// AnswerRepository persists per-question answers of an attempt.
type AnswerRepository interface {
	Upsert(ctx context.Context, answer *models.AttemptAnswer) error
	GetByAttempt(ctx context.Context, attemptID string) ([]*models.AttemptAnswer, error)
	GetByAttemptAndQuestion(ctx context.Context, attemptID, questionID string) (*models.AttemptAnswer, error)
}

// Repository aggregates all data access behind one handle.
type Repository interface {
	Quiz() QuizRepository
	Attempt() AttemptRepository
	Answer() AnswerRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
}

// IsNotFoundError reports whether an error means "row not found".
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
