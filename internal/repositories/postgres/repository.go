package postgres

import (
	"context"

	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	db      *gorm.DB
	quiz    repositories.QuizRepository
	attempt repositories.AttemptRepository
	answer  repositories.AnswerRepository
}

// NewRepository wires the GORM-backed repository set on top of db.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		db:      db,
		quiz:    newQuizRepository(db),
		attempt: newAttemptRepository(db),
		answer:  newAnswerRepository(db),
	}
}

func (r *gormRepository) Quiz() repositories.QuizRepository       { return r.quiz }
func (r *gormRepository) Attempt() repositories.AttemptRepository { return r.attempt }
func (r *gormRepository) Answer() repositories.AnswerRepository   { return r.answer }

func (r *gormRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *gormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
