package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	FillBlank      QuestionType = "fill_blank"
	DragFill       QuestionType = "drag_fill"
	DragDrop       QuestionType = "drag_drop"
)

// AllQuestionTypes lists every supported variant, in display order.
var AllQuestionTypes = []QuestionType{
	SingleChoice,
	MultipleChoice,
	TrueFalse,
	FillBlank,
	DragFill,
	DragDrop,
}

// BlankMarker is the literal token that marks a blank inside
// fill_blank and drag_fill prompt text.
const BlankMarker = "___"

// CountBlanks returns the number of blank markers in a prompt text.
func CountBlanks(text string) int {
	return strings.Count(text, BlankMarker)
}

type Question struct {
	ID     string       `json:"id" gorm:"primaryKey;size:36"`
	QuizID string       `json:"quiz_id" gorm:"index;size:36"`
	Type   QuestionType `json:"type" gorm:"not null;index" validate:"required,question_type"`
	Text   string       `json:"question" gorm:"type:text"`
	Points int          `json:"points" gorm:"default:1" validate:"min=1"`
	Order  int          `json:"order" gorm:"not null;default:0"`

	// Explanation is shown to the learner in review mode, if present.
	Explanation *string `json:"explanation" gorm:"type:text"`

	// Content stored as JSONB; shape depends on Type.
	Content datatypes.JSON `json:"content" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "quiz_questions"
}

// ===== QUESTION CONTENT SCHEMAS =====

type ChoiceOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type ChoiceContent struct {
	Options []ChoiceOption `json:"options" validate:"min=2"`
}

type TrueFalseContent struct {
	CorrectAnswer bool `json:"correct_answer"`
}

type Blank struct {
	ID                string   `json:"id"`
	CorrectAnswer     string   `json:"correct_answer"`
	AcceptableAnswers []string `json:"acceptable_answers"`
	CaseSensitive     bool     `json:"case_sensitive"`
}

type FillBlankContent struct {
	TextWithBlanks string  `json:"text_with_blanks"`
	Blanks         []Blank `json:"blanks"`
}

type DragItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type DropZone struct {
	ID            string `json:"id"`
	CorrectItemID string `json:"correct_item_id"`
	Label         string `json:"label"`
}

type DragFillContent struct {
	TextWithBlanks string     `json:"text_with_blanks"`
	Items          []DragItem `json:"items"`
	DropZones      []DropZone `json:"drop_zones"`
}

type Category struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	CorrectItemIDs []string `json:"correct_item_ids"`
}

type DragDropContent struct {
	Items      []DragItem `json:"items"`
	Categories []Category `json:"categories"`
}

// ===== CONTENT ACCESS =====

// SetContent marshals a typed content struct into the JSONB column.
func (q *Question) SetContent(content interface{}) error {
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal question content: %w", err)
	}
	q.Content = data
	return nil
}

func (q *Question) ChoiceContent() (*ChoiceContent, error) {
	if q.Type != SingleChoice && q.Type != MultipleChoice {
		return nil, fmt.Errorf("question %s is not a choice question", q.ID)
	}
	var content ChoiceContent
	if err := json.Unmarshal(q.Content, &content); err != nil {
		return nil, fmt.Errorf("invalid choice content: %w", err)
	}
	return &content, nil
}

func (q *Question) TrueFalseContent() (*TrueFalseContent, error) {
	if q.Type != TrueFalse {
		return nil, fmt.Errorf("question %s is not a true/false question", q.ID)
	}
	var content TrueFalseContent
	if err := json.Unmarshal(q.Content, &content); err != nil {
		return nil, fmt.Errorf("invalid true/false content: %w", err)
	}
	return &content, nil
}

func (q *Question) FillBlankContent() (*FillBlankContent, error) {
	if q.Type != FillBlank {
		return nil, fmt.Errorf("question %s is not a fill-blank question", q.ID)
	}
	var content FillBlankContent
	if err := json.Unmarshal(q.Content, &content); err != nil {
		return nil, fmt.Errorf("invalid fill-blank content: %w", err)
	}
	return &content, nil
}

func (q *Question) DragFillContent() (*DragFillContent, error) {
	if q.Type != DragFill {
		return nil, fmt.Errorf("question %s is not a drag-fill question", q.ID)
	}
	var content DragFillContent
	if err := json.Unmarshal(q.Content, &content); err != nil {
		return nil, fmt.Errorf("invalid drag-fill content: %w", err)
	}
	return &content, nil
}

func (q *Question) DragDropContent() (*DragDropContent, error) {
	if q.Type != DragDrop {
		return nil, fmt.Errorf("question %s is not a drag-drop question", q.ID)
	}
	var content DragDropContent
	if err := json.Unmarshal(q.Content, &content); err != nil {
		return nil, fmt.Errorf("invalid drag-drop content: %w", err)
	}
	return &content, nil
}

// Clone returns a deep copy of the question. The ID is preserved;
// callers that need fresh ids re-assign them afterwards.
func (q *Question) Clone() *Question {
	clone := *q
	if q.Content != nil {
		clone.Content = make(datatypes.JSON, len(q.Content))
		copy(clone.Content, q.Content)
	}
	if q.Explanation != nil {
		explanation := *q.Explanation
		clone.Explanation = &explanation
	}
	return &clone
}
