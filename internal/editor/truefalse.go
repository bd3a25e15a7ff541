package editor

import "github.com/SAP-F-2025/quiz-engine/internal/models"

// TrueFalseEditor authors true_false questions. The two sides are
// mutually exclusive; there is no unset state once initialized.
type TrueFalseEditor struct{}

func NewTrueFalseEditor() *TrueFalseEditor {
	return &TrueFalseEditor{}
}

// SetCorrectAnswer selects which side is correct.
func (e *TrueFalseEditor) SetCorrectAnswer(q models.Question, correct bool) (models.Question, error) {
	content, err := q.TrueFalseContent()
	if err != nil {
		return q, err
	}
	content.CorrectAnswer = correct
	next := *q.Clone()
	if err := next.SetContent(content); err != nil {
		return q, err
	}
	return next, nil
}
