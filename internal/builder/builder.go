// Package builder composes, reorders and persists quiz drafts.
// Persistence is delegated to an injected save collaborator; the
// builder itself never talks to storage.
package builder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

var (
	ErrTitleRequired     = errors.New("quiz title is required")
	ErrNoQuestions       = errors.New("quiz must have at least one question")
	ErrQuestionIndex     = errors.New("question index out of range")
	ErrSaveInProgress    = errors.New("save already in progress")
	ErrUnknownQuestionID = errors.New("question id not found in draft")
)

// SaveFunc persists a finished draft. Rejections are surfaced to the
// caller; the draft is never discarded on failure.
type SaveFunc func(ctx context.Context, quiz *models.Quiz) error

// Builder maintains a working quiz draft.
type Builder struct {
	gen      models.IDGenerator
	quiz     *models.Quiz
	save     SaveFunc
	isSaving atomic.Bool
}

// New starts a builder in create mode with an empty draft for the
// lesson.
func New(gen models.IDGenerator, lessonID string, save SaveFunc) *Builder {
	return &Builder{
		gen:  gen,
		quiz: models.NewEmptyQuiz(gen, lessonID),
		save: save,
	}
}

// NewFromQuiz starts a builder in edit mode, seeded with an existing
// quiz's fields.
func NewFromQuiz(gen models.IDGenerator, initial *models.Quiz, save SaveFunc) *Builder {
	draft := *initial
	draft.Questions = make([]models.Question, len(initial.Questions))
	for i := range initial.Questions {
		draft.Questions[i] = *initial.Questions[i].Clone()
	}
	b := &Builder{gen: gen, quiz: &draft, save: save}
	b.renumber()
	return b
}

// Quiz exposes the current draft.
func (b *Builder) Quiz() *models.Quiz {
	return b.quiz
}

// ===== QUESTION MANAGEMENT =====

// AddQuestion appends an empty question of the given type.
func (b *Builder) AddQuestion(questionType models.QuestionType) *models.Question {
	q := models.NewEmptyQuestion(b.gen, questionType, len(b.quiz.Questions))
	q.QuizID = b.quiz.ID
	b.quiz.Questions = append(b.quiz.Questions, *q)
	return &b.quiz.Questions[len(b.quiz.Questions)-1]
}

// UpdateQuestion replaces the question at index with a new value.
// Edits always arrive as whole questions, never partial mutations.
func (b *Builder) UpdateQuestion(index int, q models.Question) error {
	if index < 0 || index >= len(b.quiz.Questions) {
		return ErrQuestionIndex
	}
	if b.quiz.Questions[index].ID != q.ID {
		return ErrUnknownQuestionID
	}
	q.Order = index
	b.quiz.Questions[index] = q
	return nil
}

// DuplicateQuestion deep-clones the question at index with fresh ids
// throughout and appends it at the end of the quiz.
func (b *Builder) DuplicateQuestion(index int) (*models.Question, error) {
	if index < 0 || index >= len(b.quiz.Questions) {
		return nil, ErrQuestionIndex
	}
	clone := b.quiz.Questions[index].Clone()
	clone.ID = b.gen.NewID()
	clone.Order = len(b.quiz.Questions)
	if err := b.reassignContentIDs(clone); err != nil {
		return nil, err
	}
	b.quiz.Questions = append(b.quiz.Questions, *clone)
	return &b.quiz.Questions[len(b.quiz.Questions)-1], nil
}

// MoveQuestion swaps a question with its adjacent sibling. Moves past
// either boundary are no-ops.
func (b *Builder) MoveQuestion(index int, direction MoveDirection) {
	target := index - 1
	if direction == MoveDown {
		target = index + 1
	}
	if index < 0 || index >= len(b.quiz.Questions) ||
		target < 0 || target >= len(b.quiz.Questions) {
		return
	}
	questions := b.quiz.Questions
	questions[index], questions[target] = questions[target], questions[index]
	b.renumber()
}

// RemoveQuestion deletes the question at index and renumbers the
// remaining siblings.
func (b *Builder) RemoveQuestion(index int) error {
	if index < 0 || index >= len(b.quiz.Questions) {
		return ErrQuestionIndex
	}
	b.quiz.Questions = append(b.quiz.Questions[:index], b.quiz.Questions[index+1:]...)
	b.renumber()
	return nil
}

// renumber keeps every question's Order equal to its array position.
func (b *Builder) renumber() {
	for i := range b.quiz.Questions {
		b.quiz.Questions[i].Order = i
	}
}

// reassignContentIDs gives the nested parts of a cloned question
// fresh ids, remapping internal references (drop zone correct items,
// category correct sets) onto the new item ids.
func (b *Builder) reassignContentIDs(q *models.Question) error {
	switch q.Type {
	case models.SingleChoice, models.MultipleChoice:
		content, err := q.ChoiceContent()
		if err != nil {
			return err
		}
		for i := range content.Options {
			content.Options[i].ID = b.gen.NewID()
		}
		return q.SetContent(content)

	case models.FillBlank:
		content, err := q.FillBlankContent()
		if err != nil {
			return err
		}
		for i := range content.Blanks {
			content.Blanks[i].ID = b.gen.NewID()
		}
		return q.SetContent(content)

	case models.DragFill:
		content, err := q.DragFillContent()
		if err != nil {
			return err
		}
		itemIDs := make(map[string]string, len(content.Items))
		for i := range content.Items {
			fresh := b.gen.NewID()
			itemIDs[content.Items[i].ID] = fresh
			content.Items[i].ID = fresh
		}
		for i := range content.DropZones {
			content.DropZones[i].ID = b.gen.NewID()
			content.DropZones[i].CorrectItemID = itemIDs[content.DropZones[i].CorrectItemID]
		}
		return q.SetContent(content)

	case models.DragDrop:
		content, err := q.DragDropContent()
		if err != nil {
			return err
		}
		itemIDs := make(map[string]string, len(content.Items))
		for i := range content.Items {
			fresh := b.gen.NewID()
			itemIDs[content.Items[i].ID] = fresh
			content.Items[i].ID = fresh
		}
		for i := range content.Categories {
			content.Categories[i].ID = b.gen.NewID()
			for j, id := range content.Categories[i].CorrectItemIDs {
				content.Categories[i].CorrectItemIDs[j] = itemIDs[id]
			}
		}
		return q.SetContent(content)
	}
	return nil
}

// ===== SETTINGS =====

func (b *Builder) SetTitle(title string) {
	b.quiz.Title = title
}

func (b *Builder) SetDescription(description string) {
	if description == "" {
		b.quiz.Description = nil
		return
	}
	b.quiz.Description = &description
}

// SetPassingScore clamps the score into [0,100].
func (b *Builder) SetPassingScore(score int) {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	b.quiz.PassingScore = score
}

// SetTimeLimit sets the limit in minutes; nil means untimed.
func (b *Builder) SetTimeLimit(minutes *int) {
	b.quiz.TimeLimit = minutes
}

func (b *Builder) SetShuffleQuestions(shuffle bool) {
	b.quiz.ShuffleQuestions = shuffle
}

func (b *Builder) SetShuffleOptions(shuffle bool) {
	b.quiz.ShuffleOptions = shuffle
}

func (b *Builder) SetShowCorrectAnswers(show bool) {
	b.quiz.ShowCorrectAnswers = show
}

// SetAllowRetake toggles retakes; disallowing also clears the attempt
// cap, which is only meaningful while retakes are allowed.
func (b *Builder) SetAllowRetake(allow bool) {
	b.quiz.AllowRetake = allow
	if !allow {
		b.quiz.MaxAttempts = nil
	}
}

func (b *Builder) SetMaxAttempts(maxAttempts *int) {
	if !b.quiz.AllowRetake {
		return
	}
	b.quiz.MaxAttempts = maxAttempts
}

// ===== PERSISTENCE =====

// Validate applies the blocking save-time checks.
func (b *Builder) Validate() error {
	if b.quiz.Title == "" {
		return ErrTitleRequired
	}
	if len(b.quiz.Questions) == 0 {
		return ErrNoQuestions
	}
	return nil
}

// Save validates the draft and delegates persistence to the save
// collaborator. A failed save leaves the draft untouched so the
// author can retry. Re-entrant calls while a save is in flight are
// rejected.
func (b *Builder) Save(ctx context.Context) error {
	if !b.isSaving.CompareAndSwap(false, true) {
		return ErrSaveInProgress
	}
	defer b.isSaving.Store(false)

	if err := b.Validate(); err != nil {
		return err
	}
	if b.save == nil {
		return errors.New("no save collaborator configured")
	}
	if err := b.save(ctx, b.quiz); err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// Snapshot serializes the current draft, mainly for previews.
func (b *Builder) Snapshot() ([]byte, error) {
	return json.Marshal(b.quiz)
}
