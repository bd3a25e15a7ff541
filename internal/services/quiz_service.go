package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/cache"
	"github.com/SAP-F-2025/quiz-engine/internal/events"
	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"github.com/SAP-F-2025/quiz-engine/internal/validator"
)

const quizCacheTTL = 10 * time.Minute

// QuizService manages quiz authoring persistence.
type QuizService interface {
	Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error)
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
	GetByLesson(ctx context.Context, lessonID string) (*models.Quiz, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error)
}

type quizService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	validator *validator.Validator
	gen       models.IDGenerator
	logger    *slog.Logger
}

func NewQuizService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	v *validator.Validator,
	gen models.IDGenerator,
	logger *slog.Logger,
) QuizService {
	return &quizService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		validator: v,
		gen:       gen,
		logger:    logger,
	}
}

func (s *quizService) Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	s.logger.Info("Creating quiz", "lesson_id", quiz.LessonID, "title", quiz.Title)

	if err := s.validator.Question().ValidateQuiz(quiz); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	exists, err := s.repo.Quiz().ExistsForLesson(ctx, quiz.LessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to check lesson: %w", err)
	}
	if exists {
		return nil, ErrQuizLessonConflict
	}

	if quiz.ID == "" {
		quiz.ID = s.gen.NewID()
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == "" {
			quiz.Questions[i].ID = s.gen.NewID()
		}
		quiz.Questions[i].QuizID = quiz.ID
		quiz.Questions[i].Order = i
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.publishEvent(ctx, events.NewQuizCreatedEvent(quiz.ID, quiz.LessonID, quiz.Title, len(quiz.Questions)))

	s.logger.Info("Quiz created", "quiz_id", quiz.ID, "questions", len(quiz.Questions))
	return quiz, nil
}

func (s *quizService) Update(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	s.logger.Info("Updating quiz", "quiz_id", quiz.ID)

	if err := s.validator.Question().ValidateQuiz(quiz); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	existing, err := s.repo.Quiz().GetByID(ctx, quiz.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}
	// Lesson binding is fixed at creation.
	quiz.LessonID = existing.LessonID
	quiz.CreatedAt = existing.CreatedAt

	for i := range quiz.Questions {
		if quiz.Questions[i].ID == "" {
			quiz.Questions[i].ID = s.gen.NewID()
		}
		quiz.Questions[i].QuizID = quiz.ID
		quiz.Questions[i].Order = i
	}

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	s.invalidate(ctx, quiz.ID)
	s.publishEvent(ctx, events.NewQuizUpdatedEvent(quiz.ID, quiz.LessonID, quiz.Title, len(quiz.Questions)))

	return quiz, nil
}

func (s *quizService) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	cacheKey := "quiz:" + id

	var cached models.Quiz
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey, quiz, quizCacheTTL); err != nil {
		s.logger.Warn("failed to cache quiz", "quiz_id", id, "error", err)
	}
	return quiz, nil
}

func (s *quizService) GetByLesson(ctx context.Context, lessonID string) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByLesson(ctx, lessonID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}
	return quiz, nil
}

func (s *quizService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting quiz", "quiz_id", id)

	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to load quiz: %w", err)
	}

	if err := s.repo.Quiz().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	s.invalidate(ctx, id)
	s.publishEvent(ctx, events.NewQuizDeletedEvent(id, quiz.LessonID))
	return nil
}

func (s *quizService) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	return s.repo.Quiz().List(ctx, filters)
}

func (s *quizService) invalidate(ctx context.Context, quizID string) {
	if err := s.cache.Delete(ctx, "quiz:"+quizID); err != nil {
		s.logger.Warn("failed to invalidate quiz cache", "quiz_id", quizID, "error", err)
	}
}

// publishEvent fires and forgets; event delivery must not fail the
// write that triggered it.
func (s *quizService) publishEvent(ctx context.Context, event *events.QuizEvent) {
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.Type, "error", err)
	}
}
