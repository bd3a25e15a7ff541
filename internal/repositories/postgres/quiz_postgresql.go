package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type quizRepository struct {
	db *gorm.DB
}

func newQuizRepository(db *gorm.DB) repositories.QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	if err := r.db.WithContext(ctx).Create(quiz).Error; err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}
	return nil
}

func (r *quizRepository) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) GetByIDWithQuestions(ctx context.Context, id string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.\"order\" ASC")
		}).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) GetByLesson(ctx context.Context, lessonID string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.\"order\" ASC")
		}).
		First(&quiz, "lesson_id = ?", lessonID).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Update replaces the quiz row and its full question set. Questions removed
// in the editor are deleted, the rest are upserted by primary key.
func (r *quizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(quiz).Error; err != nil {
			return fmt.Errorf("update quiz: %w", err)
		}

		keep := make([]string, 0, len(quiz.Questions))
		for i := range quiz.Questions {
			quiz.Questions[i].QuizID = quiz.ID
			keep = append(keep, quiz.Questions[i].ID)
		}

		del := tx.Where("quiz_id = ?", quiz.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("prune questions: %w", err)
		}

		if len(quiz.Questions) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&quiz.Questions).Error
			if err != nil {
				return fmt.Errorf("upsert questions: %w", err)
			}
		}
		return nil
	})
}

func (r *quizRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Quiz{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete quiz: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *quizRepository) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Quiz{})

	if filters.LessonID != nil {
		query = query.Where("lesson_id = ?", *filters.LessonID)
	}
	if filters.Search != nil && *filters.Search != "" {
		query = query.Where("title ILIKE ?", "%"+*filters.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count quizzes: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var quizzes []*models.Quiz
	if err := query.Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, 0, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, total, nil
}

func (r *quizRepository) ExistsForLesson(ctx context.Context, lessonID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Quiz{}).
		Where("lesson_id = ?", lessonID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
