package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService handles file export of quiz content and results.
type ExportService interface {
	ExportQuestionsToCSV(ctx context.Context, quizID string) ([]byte, error)
	ExportQuestionsToExcel(ctx context.Context, quizID string) ([]byte, error)
	ExportQuizResults(ctx context.Context, quizID string) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var questionExportHeaders = []string{
	"Order", "Question Type", "Question Text", "Points", "Correct Answer", "Explanation",
}

func (s *exportService) ExportQuestionsToCSV(ctx context.Context, quizID string) ([]byte, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(questionExportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range quiz.Questions {
		if err := writer.Write(s.questionToRow(&quiz.Questions[i])); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return []byte(buf.String()), nil
}

func (s *exportService) ExportQuestionsToExcel(ctx context.Context, quizID string) ([]byte, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range questionExportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}
	for rowIndex := range quiz.Questions {
		row := s.questionToRow(&quiz.Questions[rowIndex])
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) ExportQuizResults(ctx context.Context, quizID string) ([]byte, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	attempts, _, err := s.repo.Attempt().List(ctx, repositories.AttemptFilters{QuizID: &quizID})
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Student ID", "Status", "Started At", "Submitted At",
		"Earned Points", "Total Points", "Percentage", "Passed",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	rowIndex := 2
	for _, attempt := range attempts {
		if attempt.Status == models.AttemptStatusInProgress {
			continue
		}
		detailed, derr := s.repo.Attempt().GetByIDWithDetails(ctx, attempt.ID)
		if derr != nil {
			return nil, fmt.Errorf("failed to load attempt %s: %w", attempt.ID, derr)
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), detailed.StudentID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), string(detailed.Status))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), detailed.StartedAt.Format("2006-01-02 15:04:05"))
		if detailed.SubmittedAt != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), detailed.SubmittedAt.Format("2006-01-02 15:04:05"))
		}
		if detailed.Result != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), detailed.Result.EarnedPoints)
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), detailed.Result.TotalPoints)
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), fmt.Sprintf("%.1f%%", detailed.Result.Percentage))
			f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowIndex), detailed.Result.Passed)
		}
		rowIndex++
	}

	s.logger.Info("Exported quiz results", "quiz_id", quizID, "title", quiz.Title, "rows", rowIndex-2)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) loadQuiz(ctx context.Context, quizID string) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

func (s *exportService) questionToRow(q *models.Question) []string {
	explanation := ""
	if q.Explanation != nil {
		explanation = *q.Explanation
	}
	return []string{
		strconv.Itoa(q.Order + 1),
		string(q.Type),
		q.Text,
		strconv.Itoa(q.Points),
		s.correctAnswerSummary(q),
		explanation,
	}
}

// correctAnswerSummary renders the answer key in a human-readable form
// for spreadsheet review.
func (s *exportService) correctAnswerSummary(q *models.Question) string {
	switch q.Type {
	case models.SingleChoice, models.MultipleChoice:
		content, err := q.ChoiceContent()
		if err != nil {
			return ""
		}
		var correct []string
		for _, opt := range content.Options {
			if opt.IsCorrect {
				correct = append(correct, opt.Text)
			}
		}
		return strings.Join(correct, "; ")
	case models.TrueFalse:
		content, err := q.TrueFalseContent()
		if err != nil {
			return ""
		}
		if content.CorrectAnswer {
			return "True"
		}
		return "False"
	case models.FillBlank:
		content, err := q.FillBlankContent()
		if err != nil {
			return ""
		}
		answers := make([]string, len(content.Blanks))
		for i, blank := range content.Blanks {
			answers[i] = blank.CorrectAnswer
		}
		return strings.Join(answers, "; ")
	case models.DragFill:
		content, err := q.DragFillContent()
		if err != nil {
			return ""
		}
		items := map[string]string{}
		for _, item := range content.Items {
			items[item.ID] = item.Text
		}
		answers := make([]string, 0, len(content.DropZones))
		for _, zone := range content.DropZones {
			answers = append(answers, items[zone.CorrectItemID])
		}
		return strings.Join(answers, "; ")
	case models.DragDrop:
		content, err := q.DragDropContent()
		if err != nil {
			return ""
		}
		items := map[string]string{}
		for _, item := range content.Items {
			items[item.ID] = item.Text
		}
		parts := make([]string, 0, len(content.Categories))
		for _, category := range content.Categories {
			names := make([]string, 0, len(category.CorrectItemIDs))
			for _, id := range category.CorrectItemIDs {
				names = append(names, items[id])
			}
			parts = append(parts, category.Name+": "+strings.Join(names, ", "))
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}
