// Package editor contains the authoring-side state transitions for
// every question variant. Editors never mutate their input: each
// operation decodes the question's content, applies the change and
// returns a new question value, so callers can treat questions as
// immutable drafts.
package editor

import (
	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// MinChoiceOptions is the floor below which options cannot be removed.
const MinChoiceOptions = 2

// ChoiceEditor authors single_choice and multiple_choice questions.
type ChoiceEditor struct {
	gen models.IDGenerator
}

func NewChoiceEditor(gen models.IDGenerator) *ChoiceEditor {
	return &ChoiceEditor{gen: gen}
}

func (e *ChoiceEditor) transform(q models.Question, fn func(*models.ChoiceContent)) (models.Question, error) {
	content, err := q.ChoiceContent()
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

// AddOption appends a new blank, non-correct option.
func (e *ChoiceEditor) AddOption(q models.Question) (models.Question, error) {
	return e.transform(q, func(c *models.ChoiceContent) {
		c.Options = append(c.Options, models.ChoiceOption{ID: e.gen.NewID()})
	})
}

// UpdateOptionText replaces the text of one option.
func (e *ChoiceEditor) UpdateOptionText(q models.Question, optionID, text string) (models.Question, error) {
	return e.transform(q, func(c *models.ChoiceContent) {
		for i := range c.Options {
			if c.Options[i].ID == optionID {
				c.Options[i].Text = text
				return
			}
		}
	})
}

// ToggleCorrect flips correctness for multiple_choice; for
// single_choice it applies radio semantics: the toggled option becomes
// the only correct one. An unknown optionID leaves the question as is.
func (e *ChoiceEditor) ToggleCorrect(q models.Question, optionID string) (models.Question, error) {
	return e.transform(q, func(c *models.ChoiceContent) {
		found := false
		for i := range c.Options {
			if c.Options[i].ID == optionID {
				found = true
				break
			}
		}
		if !found {
			return
		}
		for i := range c.Options {
			switch {
			case q.Type == models.SingleChoice:
				c.Options[i].IsCorrect = c.Options[i].ID == optionID
			case c.Options[i].ID == optionID:
				c.Options[i].IsCorrect = !c.Options[i].IsCorrect
			}
		}
	})
}

// RemoveOption deletes an option. Removal is a no-op while the
// question is at the minimum option count.
func (e *ChoiceEditor) RemoveOption(q models.Question, optionID string) (models.Question, error) {
	return e.transform(q, func(c *models.ChoiceContent) {
		if len(c.Options) <= MinChoiceOptions {
			return
		}
		for i := range c.Options {
			if c.Options[i].ID == optionID {
				c.Options = append(c.Options[:i], c.Options[i+1:]...)
				return
			}
		}
	})
}

// CorrectCount reports how many options are currently marked correct.
func CorrectCount(q models.Question) (int, error) {
	content, err := q.ChoiceContent()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, opt := range content.Options {
		if opt.IsCorrect {
			count++
		}
	}
	return count, nil
}
