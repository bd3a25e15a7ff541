package editor

import (
	"strings"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// DeriveBlanks resynchronizes a blank list with the blank markers in
// the prompt text. Growing appends fresh empty blanks at the end;
// shrinking truncates from the end. Surviving blanks keep their
// configuration. Called synchronously inside every text change, so an
// inconsistent count is never observable.
func DeriveBlanks(gen models.IDGenerator, text string, existing []models.Blank) []models.Blank {
	count := models.CountBlanks(text)
	blanks := make([]models.Blank, 0, count)
	blanks = append(blanks, existing[:min(count, len(existing))]...)
	for len(blanks) < count {
		blanks = append(blanks, models.Blank{
			ID:                gen.NewID(),
			AcceptableAnswers: []string{},
		})
	}
	return blanks
}

// ParseAcceptableAnswers splits a comma-separated author input into
// trimmed, non-empty alternate answers.
func ParseAcceptableAnswers(input string) []string {
	parts := strings.Split(input, ",")
	answers := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			answers = append(answers, trimmed)
		}
	}
	return answers
}

// FillBlankEditor authors fill_blank questions.
type FillBlankEditor struct {
	gen models.IDGenerator
}

func NewFillBlankEditor(gen models.IDGenerator) *FillBlankEditor {
	return &FillBlankEditor{gen: gen}
}

func (e *FillBlankEditor) transform(q models.Question, fn func(*models.FillBlankContent)) (models.Question, error) {
	content, err := q.FillBlankContent()
	if err != nil {
		return q, err
	}
	fn(content)
	next := *q.Clone()
	if err := next.SetContent(content); err != nil {
		return q, err
	}
	return next, nil
}

// SetText replaces the prompt text and re-derives the blank list so
// its length always equals the marker count.
func (e *FillBlankEditor) SetText(q models.Question, text string) (models.Question, error) {
	return e.transform(q, func(c *models.FillBlankContent) {
		c.TextWithBlanks = text
		c.Blanks = DeriveBlanks(e.gen, text, c.Blanks)
	})
}

// SetBlankAnswer sets the primary correct answer of one blank.
func (e *FillBlankEditor) SetBlankAnswer(q models.Question, blankID, answer string) (models.Question, error) {
	return e.transform(q, func(c *models.FillBlankContent) {
		for i := range c.Blanks {
			if c.Blanks[i].ID == blankID {
				c.Blanks[i].CorrectAnswer = answer
				return
			}
		}
	})
}

// SetBlankCaseSensitive toggles case sensitivity of one blank.
func (e *FillBlankEditor) SetBlankCaseSensitive(q models.Question, blankID string, caseSensitive bool) (models.Question, error) {
	return e.transform(q, func(c *models.FillBlankContent) {
		for i := range c.Blanks {
			if c.Blanks[i].ID == blankID {
				c.Blanks[i].CaseSensitive = caseSensitive
				return
			}
		}
	})
}

// SetBlankAcceptableAnswers replaces the alternate answers of one
// blank from the author's comma-separated input.
func (e *FillBlankEditor) SetBlankAcceptableAnswers(q models.Question, blankID, input string) (models.Question, error) {
	return e.transform(q, func(c *models.FillBlankContent) {
		for i := range c.Blanks {
			if c.Blanks[i].ID == blankID {
				c.Blanks[i].AcceptableAnswers = ParseAcceptableAnswers(input)
				return
			}
		}
	})
}
