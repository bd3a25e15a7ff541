package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
)

// StatsService aggregates attempt outcomes into per-quiz statistics.
type StatsService interface {
	GetQuizStats(ctx context.Context, quizID string) (*QuizStats, error)
}

// QuizStats summarizes every finished attempt of one quiz. Scores come
// from the persisted result snapshots, so re-grading is never needed.
type QuizStats struct {
	QuizID string `json:"quiz_id"`
	Title  string `json:"title"`

	TotalAttempts      int `json:"total_attempts"`
	CompletedAttempts  int `json:"completed_attempts"`
	InProgressAttempts int `json:"in_progress_attempts"`
	TimedOutAttempts   int `json:"timed_out_attempts"`

	AveragePercentage float64 `json:"average_percentage"`
	MedianPercentage  float64 `json:"median_percentage"`
	HighestPercentage float64 `json:"highest_percentage"`
	LowestPercentage  float64 `json:"lowest_percentage"`

	PassedCount int     `json:"passed_count"`
	FailedCount int     `json:"failed_count"`
	PassRate    float64 `json:"pass_rate"`

	// AverageTimeSpent is wall time from start to submission, in
	// seconds, over completed attempts.
	AverageTimeSpent int `json:"average_time_spent"`

	ScoreDistribution map[string]int `json:"score_distribution"`

	GeneratedAt time.Time `json:"generated_at"`
}

type statsService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewStatsService(repo repositories.Repository, logger *slog.Logger) StatsService {
	return &statsService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

var scoreBuckets = []struct {
	label string
	min   float64
}{
	{"90-100", 90},
	{"75-89", 75},
	{"50-74", 50},
	{"25-49", 25},
	{"0-24", 0},
}

func (s *statsService) GetQuizStats(ctx context.Context, quizID string) (*QuizStats, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	attempts, _, err := s.repo.Attempt().List(ctx, repositories.AttemptFilters{QuizID: &quizID})
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	stats := &QuizStats{
		QuizID:            quiz.ID,
		Title:             quiz.Title,
		TotalAttempts:     len(attempts),
		ScoreDistribution: make(map[string]int, len(scoreBuckets)),
		GeneratedAt:       s.now(),
	}
	for _, bucket := range scoreBuckets {
		stats.ScoreDistribution[bucket.label] = 0
	}

	var percentages []float64
	totalSeconds := 0
	for _, attempt := range attempts {
		if attempt.Status == models.AttemptStatusInProgress {
			stats.InProgressAttempts++
			continue
		}
		if attempt.Status == models.AttemptStatusTimedOut {
			stats.TimedOutAttempts++
		}

		detailed, derr := s.repo.Attempt().GetByIDWithDetails(ctx, attempt.ID)
		if derr != nil {
			return nil, fmt.Errorf("failed to load attempt %s: %w", attempt.ID, derr)
		}
		if detailed.Result == nil {
			continue
		}

		stats.CompletedAttempts++
		percentages = append(percentages, detailed.Result.Percentage)
		if detailed.Result.Passed {
			stats.PassedCount++
		} else {
			stats.FailedCount++
		}
		stats.ScoreDistribution[bucketFor(detailed.Result.Percentage)]++
		if detailed.SubmittedAt != nil {
			totalSeconds += int(detailed.SubmittedAt.Sub(detailed.StartedAt).Seconds())
		}
	}

	if stats.CompletedAttempts > 0 {
		sort.Float64s(percentages)
		sum := 0.0
		for _, p := range percentages {
			sum += p
		}
		stats.AveragePercentage = sum / float64(stats.CompletedAttempts)
		stats.MedianPercentage = median(percentages)
		stats.LowestPercentage = percentages[0]
		stats.HighestPercentage = percentages[len(percentages)-1]
		stats.PassRate = float64(stats.PassedCount) / float64(stats.CompletedAttempts)
		stats.AverageTimeSpent = totalSeconds / stats.CompletedAttempts
	}

	s.logger.Info("Computed quiz stats",
		"quiz_id", quizID,
		"attempts", stats.TotalAttempts,
		"completed", stats.CompletedAttempts)

	return stats, nil
}

func bucketFor(percentage float64) string {
	for _, bucket := range scoreBuckets {
		if percentage >= bucket.min {
			return bucket.label
		}
	}
	return scoreBuckets[len(scoreBuckets)-1].label
}

// median expects sorted input.
func median(values []float64) float64 {
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}
