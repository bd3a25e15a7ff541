package validator

import (
	"encoding/json"
	"fmt"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// QuestionValidator enforces the structural invariants of every
// question variant at quiz save time. The editors keep these
// invariants reactively while authoring; this is the blocking check
// before a draft reaches storage.
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates a complete question row.
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question.Text == "" && question.Type != models.FillBlank && question.Type != models.DragFill {
		return fmt.Errorf("question text is required")
	}
	if question.Points < 1 {
		return fmt.Errorf("question points must be at least 1")
	}
	return v.ValidateContent(question.Type, question.Content)
}

// ValidateQuiz validates every question of a quiz draft plus the quiz
// level rules.
func (v *QuestionValidator) ValidateQuiz(quiz *models.Quiz) error {
	if quiz.Title == "" {
		return fmt.Errorf("quiz title is required")
	}
	if len(quiz.Questions) == 0 {
		return fmt.Errorf("quiz must have at least one question")
	}
	if quiz.PassingScore < 0 || quiz.PassingScore > 100 {
		return fmt.Errorf("passing score must be between 0 and 100")
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].Order != i {
			return fmt.Errorf("question %d has order %d, expected %d", i+1, quiz.Questions[i].Order, i)
		}
		if err := v.ValidateQuestion(&quiz.Questions[i]); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidateContent validates the JSONB content for a question type.
func (v *QuestionValidator) ValidateContent(questionType models.QuestionType, content []byte) error {
	if len(content) == 0 {
		return fmt.Errorf("content cannot be empty")
	}

	switch questionType {
	case models.SingleChoice:
		return v.validateChoiceContent(content, true)
	case models.MultipleChoice:
		return v.validateChoiceContent(content, false)
	case models.TrueFalse:
		return v.validateTrueFalseContent(content)
	case models.FillBlank:
		return v.validateFillBlankContent(content)
	case models.DragFill:
		return v.validateDragFillContent(content)
	case models.DragDrop:
		return v.validateDragDropContent(content)
	default:
		return fmt.Errorf("unsupported question type: %s", questionType)
	}
}

func (v *QuestionValidator) validateChoiceContent(contentBytes []byte, single bool) error {
	var content models.ChoiceContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid choice content: %w", err)
	}

	if len(content.Options) < 2 {
		return fmt.Errorf("must have at least 2 options")
	}

	seen := make(map[string]bool, len(content.Options))
	correct := 0
	for _, option := range content.Options {
		if option.ID == "" {
			return fmt.Errorf("option id cannot be empty")
		}
		if seen[option.ID] {
			return fmt.Errorf("duplicate option id: %s", option.ID)
		}
		seen[option.ID] = true
		if option.Text == "" {
			return fmt.Errorf("option text cannot be empty")
		}
		if option.IsCorrect {
			correct++
		}
	}

	if single && correct != 1 {
		return fmt.Errorf("single choice must have exactly 1 correct option, has %d", correct)
	}
	if !single && correct < 1 {
		return fmt.Errorf("must have at least 1 correct option")
	}
	return nil
}

func (v *QuestionValidator) validateTrueFalseContent(contentBytes []byte) error {
	var content models.TrueFalseContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid true/false content: %w", err)
	}
	return nil
}

func (v *QuestionValidator) validateFillBlankContent(contentBytes []byte) error {
	var content models.FillBlankContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid fill-blank content: %w", err)
	}

	markers := models.CountBlanks(content.TextWithBlanks)
	if markers == 0 {
		return fmt.Errorf("text must contain at least 1 blank marker")
	}
	if len(content.Blanks) != markers {
		return fmt.Errorf("blank count %d does not match marker count %d", len(content.Blanks), markers)
	}
	for i, blank := range content.Blanks {
		if blank.ID == "" {
			return fmt.Errorf("blank %d must have an id", i+1)
		}
		if blank.CorrectAnswer == "" {
			return fmt.Errorf("blank %d must have a correct answer", i+1)
		}
	}
	return nil
}

func (v *QuestionValidator) validateDragFillContent(contentBytes []byte) error {
	var content models.DragFillContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid drag-fill content: %w", err)
	}

	markers := models.CountBlanks(content.TextWithBlanks)
	if markers == 0 {
		return fmt.Errorf("text must contain at least 1 blank marker")
	}
	if len(content.DropZones) != markers {
		return fmt.Errorf("drop zone count %d does not match marker count %d", len(content.DropZones), markers)
	}
	if len(content.Items) == 0 {
		return fmt.Errorf("must have at least 1 draggable item")
	}

	itemIDs := make(map[string]bool, len(content.Items))
	for _, item := range content.Items {
		if item.ID == "" || item.Text == "" {
			return fmt.Errorf("items must have both id and text")
		}
		itemIDs[item.ID] = true
	}
	for i, zone := range content.DropZones {
		if zone.CorrectItemID == "" {
			return fmt.Errorf("drop zone %d must have a correct item", i+1)
		}
		if !itemIDs[zone.CorrectItemID] {
			return fmt.Errorf("drop zone %d references non-existent item: %s", i+1, zone.CorrectItemID)
		}
	}
	return nil
}

func (v *QuestionValidator) validateDragDropContent(contentBytes []byte) error {
	var content models.DragDropContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid drag-drop content: %w", err)
	}

	if len(content.Categories) < 2 {
		return fmt.Errorf("must have at least 2 categories")
	}
	if len(content.Items) == 0 {
		return fmt.Errorf("must have at least 1 draggable item")
	}

	itemIDs := make(map[string]bool, len(content.Items))
	for _, item := range content.Items {
		if item.ID == "" || item.Text == "" {
			return fmt.Errorf("items must have both id and text")
		}
		itemIDs[item.ID] = true
	}

	// Every item may appear in at most one category's correct set.
	assigned := make(map[string]string)
	for _, category := range content.Categories {
		if category.Name == "" {
			return fmt.Errorf("category name cannot be empty")
		}
		for _, itemID := range category.CorrectItemIDs {
			if !itemIDs[itemID] {
				return fmt.Errorf("category %q references non-existent item: %s", category.Name, itemID)
			}
			if previous, ok := assigned[itemID]; ok {
				return fmt.Errorf("item %s assigned to both %q and %q", itemID, previous, category.Name)
			}
			assigned[itemID] = category.Name
		}
	}
	return nil
}
