package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/events"
	"github.com/SAP-F-2025/quiz-engine/internal/grading"
	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/player"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
)

// AttemptService manages the server-side attempt lifecycle: start,
// answer capture, submission and grading, timeout enforcement.
type AttemptService interface {
	Start(ctx context.Context, quizID, studentID string) (*models.QuizAttempt, error)
	GetByID(ctx context.Context, attemptID, studentID string) (*models.QuizAttempt, error)
	SaveAnswer(ctx context.Context, attemptID, studentID, questionID string, answer models.Answer) error
	Submit(ctx context.Context, attemptID, studentID string) (*models.QuizAttempt, error)
	GetResult(ctx context.Context, attemptID, studentID string) (*models.QuizResult, error)
	TimeRemaining(ctx context.Context, attemptID, studentID string) (int, error)
	List(ctx context.Context, filters repositories.AttemptFilters) ([]*models.QuizAttempt, int64, error)
}

type attemptService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	grader    *grading.Grader
	gen       models.IDGenerator
	logger    *slog.Logger
	now       func() time.Time
}

func NewAttemptService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	gen models.IDGenerator,
	logger *slog.Logger,
) AttemptService {
	return &attemptService{
		repo:      repo,
		publisher: publisher,
		grader:    grading.NewGrader(),
		gen:       gen,
		logger:    logger,
		now:       time.Now,
	}
}

// ===== CORE ATTEMPT OPERATIONS =====

func (s *attemptService) Start(ctx context.Context, quizID, studentID string) (*models.QuizAttempt, error) {
	s.logger.Info("Starting quiz attempt", "quiz_id", quizID, "student_id", studentID)

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	// Resume an active attempt instead of opening a second one.
	active, err := s.repo.Attempt().GetActiveAttempt(ctx, quizID, studentID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check active attempt: %w", err)
	}
	if active != nil {
		if expired, ferr := s.finalizeIfExpired(ctx, active, quiz); ferr != nil {
			return nil, ferr
		} else if !expired {
			s.logger.Info("Resuming existing attempt", "attempt_id", active.ID)
			return active, nil
		}
	}

	count, err := s.repo.Attempt().GetAttemptCount(ctx, quizID, studentID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if !quiz.AllowRetake {
			return nil, ErrRetakeNotAllowed
		}
		if quiz.MaxAttempts != nil && count >= *quiz.MaxAttempts {
			return nil, ErrAttemptLimitExceeded
		}
	}

	rng := rand.New(rand.NewSource(s.now().UnixNano()))
	questionOrder, optionOrders := player.ShufflePlan(quiz, rng)

	orderJSON, err := json.Marshal(questionOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to encode question order: %w", err)
	}
	optionsJSON, err := json.Marshal(optionOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to encode option orders: %w", err)
	}

	attempt := &models.QuizAttempt{
		ID:            s.gen.NewID(),
		QuizID:        quizID,
		StudentID:     studentID,
		Status:        models.AttemptStatusInProgress,
		StartedAt:     s.now(),
		QuestionOrder: orderJSON,
		OptionOrders:  optionsJSON,
	}
	var timeLimit *int
	if quiz.TimeLimit != nil {
		attempt.TimeLimit = *quiz.TimeLimit * 60
		endTime := attempt.StartedAt.Add(time.Duration(attempt.TimeLimit) * time.Second)
		attempt.EndTime = &endTime
		timeLimit = &attempt.TimeLimit
	}

	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.publishEvent(ctx, events.NewAttemptStartedEvent(attempt.ID, quizID, studentID, attempt.StartedAt, timeLimit))

	s.logger.Info("Attempt started",
		"attempt_id", attempt.ID,
		"quiz_id", quizID,
		"time_limit", attempt.TimeLimit)
	return attempt, nil
}

func (s *attemptService) GetByID(ctx context.Context, attemptID, studentID string) (*models.QuizAttempt, error) {
	attempt, err := s.loadOwned(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.Status == models.AttemptStatusInProgress {
		quiz, qerr := s.repo.Quiz().GetByIDWithQuestions(ctx, attempt.QuizID)
		if qerr != nil {
			return nil, fmt.Errorf("failed to get quiz: %w", qerr)
		}
		if _, ferr := s.finalizeIfExpired(ctx, attempt, quiz); ferr != nil {
			return nil, ferr
		}
	}
	return attempt, nil
}

func (s *attemptService) SaveAnswer(ctx context.Context, attemptID, studentID, questionID string, answer models.Answer) error {
	attempt, err := s.loadOwned(ctx, attemptID, studentID)
	if err != nil {
		return err
	}
	if attempt.Status != models.AttemptStatusInProgress {
		return ErrAttemptNotActive
	}
	if attempt.EndTime != nil && s.now().After(*attempt.EndTime) {
		quiz, qerr := s.repo.Quiz().GetByIDWithQuestions(ctx, attempt.QuizID)
		if qerr != nil {
			return fmt.Errorf("failed to get quiz: %w", qerr)
		}
		if _, ferr := s.finalizeIfExpired(ctx, attempt, quiz); ferr != nil {
			return ferr
		}
		return ErrAttemptTimeExpired
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, attempt.QuizID)
	if err != nil {
		return fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz.QuestionByID(questionID) == nil {
		return ErrQuestionNotFound
	}

	data, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("failed to encode answer: %w", err)
	}
	record := &models.AttemptAnswer{
		AttemptID:  attemptID,
		QuestionID: questionID,
		AnswerData: data,
	}
	if err := s.repo.Answer().Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}
	return nil
}

func (s *attemptService) Submit(ctx context.Context, attemptID, studentID string) (*models.QuizAttempt, error) {
	attempt, err := s.loadOwned(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	// Submitting a finished attempt is a no-op returning the stored
	// outcome, so retried requests cannot double-grade.
	if attempt.Status != models.AttemptStatusInProgress {
		return s.repo.Attempt().GetByIDWithDetails(ctx, attemptID)
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	timedOut := attempt.EndTime != nil && s.now().After(*attempt.EndTime)
	if err := s.finalize(ctx, attempt, quiz, timedOut); err != nil {
		return nil, err
	}
	return s.repo.Attempt().GetByIDWithDetails(ctx, attemptID)
}

func (s *attemptService) GetResult(ctx context.Context, attemptID, studentID string) (*models.QuizResult, error) {
	attempt, err := s.loadOwned(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.Status == models.AttemptStatusInProgress {
		return nil, ErrResultNotAvailable
	}

	detailed, err := s.repo.Attempt().GetByIDWithDetails(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt: %w", err)
	}
	if detailed.Result == nil {
		return nil, ErrResultNotAvailable
	}

	result := &models.QuizResult{
		EarnedPoints: detailed.Result.EarnedPoints,
		TotalPoints:  detailed.Result.TotalPoints,
		Percentage:   detailed.Result.Percentage,
		Passed:       detailed.Result.Passed,
	}
	if len(detailed.Result.Feedback) > 0 {
		if err := json.Unmarshal(detailed.Result.Feedback, &result.Feedback); err != nil {
			return nil, fmt.Errorf("failed to decode feedback: %w", err)
		}
	}
	for _, fb := range result.Feedback {
		if fb.IsCorrect {
			result.CorrectCount++
		}
	}
	return result, nil
}

func (s *attemptService) TimeRemaining(ctx context.Context, attemptID, studentID string) (int, error) {
	attempt, err := s.loadOwned(ctx, attemptID, studentID)
	if err != nil {
		return 0, err
	}
	if attempt.Status != models.AttemptStatusInProgress || attempt.EndTime == nil {
		return 0, nil
	}
	remaining := int(attempt.EndTime.Sub(s.now()).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *attemptService) List(ctx context.Context, filters repositories.AttemptFilters) ([]*models.QuizAttempt, int64, error) {
	return s.repo.Attempt().List(ctx, filters)
}

// ===== HELPERS =====

func (s *attemptService) loadOwned(ctx context.Context, attemptID, studentID string) (*models.QuizAttempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.StudentID != studentID {
		return nil, ErrAttemptAccessDenied
	}
	return attempt, nil
}

// finalizeIfExpired closes an in-progress attempt whose deadline has
// passed, grading whatever answers were captured before expiry.
func (s *attemptService) finalizeIfExpired(ctx context.Context, attempt *models.QuizAttempt, quiz *models.Quiz) (bool, error) {
	if attempt.Status != models.AttemptStatusInProgress {
		return true, nil
	}
	if attempt.EndTime == nil || !s.now().After(*attempt.EndTime) {
		return false, nil
	}
	if err := s.finalize(ctx, attempt, quiz, true); err != nil {
		return false, err
	}
	return true, nil
}

func (s *attemptService) finalize(ctx context.Context, attempt *models.QuizAttempt, quiz *models.Quiz, timedOut bool) error {
	answers, err := s.loadAnswerSet(ctx, attempt.ID)
	if err != nil {
		return err
	}

	result, err := s.grader.GradeQuiz(quiz, answers)
	if err != nil {
		return fmt.Errorf("failed to grade attempt: %w", err)
	}

	feedbackJSON, err := json.Marshal(result.Feedback)
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}

	submittedAt := s.now()
	reason := models.AttemptEndReasonManual
	status := models.AttemptStatusSubmitted
	if timedOut {
		reason = models.AttemptEndReasonTimeout
		status = models.AttemptStatusTimedOut
		if attempt.EndTime != nil {
			submittedAt = *attempt.EndTime
		}
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		attempt.Status = status
		attempt.EndReason = &reason
		attempt.SubmittedAt = &submittedAt
		if err := tx.Attempt().Update(ctx, attempt); err != nil {
			return err
		}
		return tx.Attempt().SaveResult(ctx, &models.AttemptResult{
			AttemptID:    attempt.ID,
			EarnedPoints: result.EarnedPoints,
			TotalPoints:  result.TotalPoints,
			Percentage:   result.Percentage,
			Passed:       result.Passed,
			Feedback:     feedbackJSON,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to finalize attempt: %w", err)
	}

	if timedOut {
		s.publishEvent(ctx, events.NewAttemptTimedOutEvent(attempt.ID, attempt.QuizID, attempt.StudentID, submittedAt))
	}
	s.publishEvent(ctx, events.NewAttemptGradedEvent(
		attempt.ID, attempt.QuizID, attempt.StudentID, submittedAt,
		result.EarnedPoints, result.TotalPoints, result.Percentage, result.Passed, timedOut))

	s.logger.Info("Attempt finalized",
		"attempt_id", attempt.ID,
		"status", status,
		"percentage", result.Percentage,
		"passed", result.Passed)
	return nil
}

func (s *attemptService) loadAnswerSet(ctx context.Context, attemptID string) (models.AnswerSet, error) {
	records, err := s.repo.Answer().GetByAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	answers := models.AnswerSet{}
	for _, record := range records {
		var answer models.Answer
		if err := json.Unmarshal(record.AnswerData, &answer); err != nil {
			return nil, fmt.Errorf("failed to decode answer for question %s: %w", record.QuestionID, err)
		}
		answers[record.QuestionID] = answer
	}
	return answers, nil
}

func (s *attemptService) publishEvent(ctx context.Context, event *events.QuizEvent) {
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.Type, "error", err)
	}
}
