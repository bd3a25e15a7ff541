package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func finishedAttempt(id, studentID string, percentage float64, passed bool, durationSeconds int) *models.QuizAttempt {
	submittedAt := testNow.Add(time.Duration(durationSeconds) * time.Second)
	return &models.QuizAttempt{
		ID:          id,
		QuizID:      "quiz-1",
		StudentID:   studentID,
		Status:      models.AttemptStatusSubmitted,
		StartedAt:   testNow,
		SubmittedAt: &submittedAt,
		Result: &models.AttemptResult{
			AttemptID:    id,
			EarnedPoints: int(percentage / 100 * 3),
			TotalPoints:  3,
			Percentage:   percentage,
			Passed:       passed,
		},
	}
}

func TestStatsService_GetQuizStats(t *testing.T) {
	repo := newMockRepository()
	svc := &statsService{
		repo:   repo,
		logger: testLogger(),
		now:    func() time.Time { return testNow },
	}

	high := finishedAttempt("attempt-1", "student-1", 100, true, 120)
	low := finishedAttempt("attempt-2", "student-2", 33.3, false, 240)
	running := &models.QuizAttempt{ID: "attempt-3", QuizID: "quiz-1", StudentID: "student-3", Status: models.AttemptStatusInProgress}

	repo.quiz.On("GetByID", mock.Anything, "quiz-1").Return(quizFixture(t), nil)
	repo.attempt.On("List", mock.Anything, mock.AnythingOfType("repositories.AttemptFilters")).
		Return([]*models.QuizAttempt{high, low, running}, int64(3), nil)
	repo.attempt.On("GetByIDWithDetails", mock.Anything, "attempt-1").Return(high, nil)
	repo.attempt.On("GetByIDWithDetails", mock.Anything, "attempt-2").Return(low, nil)

	stats, err := svc.GetQuizStats(context.Background(), "quiz-1")
	require.NoError(t, err)

	assert.Equal(t, "quiz-1", stats.QuizID)
	assert.Equal(t, 3, stats.TotalAttempts)
	assert.Equal(t, 2, stats.CompletedAttempts)
	assert.Equal(t, 1, stats.InProgressAttempts)

	assert.InDelta(t, 66.65, stats.AveragePercentage, 0.01)
	assert.InDelta(t, 66.65, stats.MedianPercentage, 0.01)
	assert.Equal(t, 100.0, stats.HighestPercentage)
	assert.InDelta(t, 33.3, stats.LowestPercentage, 0.01)

	assert.Equal(t, 1, stats.PassedCount)
	assert.Equal(t, 1, stats.FailedCount)
	assert.Equal(t, 0.5, stats.PassRate)
	assert.Equal(t, 180, stats.AverageTimeSpent)

	assert.Equal(t, 1, stats.ScoreDistribution["90-100"])
	assert.Equal(t, 1, stats.ScoreDistribution["25-49"])
	assert.Equal(t, 0, stats.ScoreDistribution["50-74"])
	assert.Equal(t, testNow, stats.GeneratedAt)

	// In-progress attempts contribute to counts only, never to scores.
	repo.attempt.AssertNotCalled(t, "GetByIDWithDetails", mock.Anything, "attempt-3")
}

func TestStatsService_GetQuizStats_NoFinishedAttempts(t *testing.T) {
	repo := newMockRepository()
	svc := NewStatsService(repo, testLogger())

	running := &models.QuizAttempt{ID: "attempt-1", QuizID: "quiz-1", StudentID: "student-1", Status: models.AttemptStatusInProgress}

	repo.quiz.On("GetByID", mock.Anything, "quiz-1").Return(quizFixture(t), nil)
	repo.attempt.On("List", mock.Anything, mock.AnythingOfType("repositories.AttemptFilters")).
		Return([]*models.QuizAttempt{running}, int64(1), nil)

	stats, err := svc.GetQuizStats(context.Background(), "quiz-1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalAttempts)
	assert.Equal(t, 0, stats.CompletedAttempts)
	assert.Zero(t, stats.AveragePercentage)
	assert.Zero(t, stats.PassRate)
}

func TestStatsService_GetQuizStats_QuizNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewStatsService(repo, testLogger())

	repo.quiz.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetQuizStats(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestStatsService_TimedOutCountsAsCompleted(t *testing.T) {
	repo := newMockRepository()
	svc := NewStatsService(repo, testLogger())

	timedOut := finishedAttempt("attempt-1", "student-1", 50, true, 600)
	timedOut.Status = models.AttemptStatusTimedOut

	repo.quiz.On("GetByID", mock.Anything, "quiz-1").Return(quizFixture(t), nil)
	repo.attempt.On("List", mock.Anything, mock.AnythingOfType("repositories.AttemptFilters")).
		Return([]*models.QuizAttempt{timedOut}, int64(1), nil)
	repo.attempt.On("GetByIDWithDetails", mock.Anything, "attempt-1").Return(timedOut, nil)

	stats, err := svc.GetQuizStats(context.Background(), "quiz-1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TimedOutAttempts)
	assert.Equal(t, 1, stats.CompletedAttempts)
	assert.Equal(t, 50.0, stats.MedianPercentage)
	assert.Equal(t, 1, stats.ScoreDistribution["50-74"])
}
