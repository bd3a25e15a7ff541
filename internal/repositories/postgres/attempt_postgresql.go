package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type attemptRepository struct {
	db *gorm.DB
}

func newAttemptRepository(db *gorm.DB) repositories.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	if err := r.db.WithContext(ctx).Create(attempt).Error; err != nil {
		return fmt.Errorf("create attempt: %w", err)
	}
	return nil
}

func (r *attemptRepository) GetByID(ctx context.Context, id string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	if err := r.db.WithContext(ctx).First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) GetByIDWithDetails(ctx context.Context, id string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := r.db.WithContext(ctx).
		Preload("Answers").
		Preload("Result").
		First(&attempt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) Update(ctx context.Context, attempt *models.QuizAttempt) error {
	if err := r.db.WithContext(ctx).Save(attempt).Error; err != nil {
		return fmt.Errorf("update attempt: %w", err)
	}
	return nil
}

func (r *attemptRepository) GetActiveAttempt(ctx context.Context, quizID, studentID string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := r.db.WithContext(ctx).
		Where("quiz_id = ? AND student_id = ? AND status = ?", quizID, studentID, models.AttemptStatusInProgress).
		Order("started_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) GetAttemptCount(ctx context.Context, quizID, studentID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.QuizAttempt{}).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return int(count), nil
}

func (r *attemptRepository) List(ctx context.Context, filters repositories.AttemptFilters) ([]*models.QuizAttempt, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.QuizAttempt{})

	if filters.QuizID != nil {
		query = query.Where("quiz_id = ?", *filters.QuizID)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count attempts: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var attempts []*models.QuizAttempt
	if err := query.Order("started_at DESC").Find(&attempts).Error; err != nil {
		return nil, 0, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, total, nil
}

func (r *attemptRepository) SaveResult(ctx context.Context, result *models.AttemptResult) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}},
		UpdateAll: true,
	}).Create(result).Error
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

type answerRepository struct {
	db *gorm.DB
}

func newAnswerRepository(db *gorm.DB) repositories.AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Upsert(ctx context.Context, answer *models.AttemptAnswer) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"answer_data", "updated_at"}),
	}).Create(answer).Error
	if err != nil {
		return fmt.Errorf("upsert answer: %w", err)
	}
	return nil
}

func (r *answerRepository) GetByAttempt(ctx context.Context, attemptID string) ([]*models.AttemptAnswer, error) {
	var answers []*models.AttemptAnswer
	err := r.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	return answers, nil
}

func (r *answerRepository) GetByAttemptAndQuestion(ctx context.Context, attemptID, questionID string) (*models.AttemptAnswer, error) {
	var answer models.AttemptAnswer
	err := r.db.WithContext(ctx).
		Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}
