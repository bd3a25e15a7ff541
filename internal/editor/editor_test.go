package editor

import (
	"fmt"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// seqGen yields deterministic ids for tests.
type seqGen struct {
	prefix string
	n      int
}

func (g *seqGen) NewID() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

func newSeqGen(prefix string) *seqGen {
	return &seqGen{prefix: prefix}
}

func choiceQuestion(questionType models.QuestionType, options ...models.ChoiceOption) models.Question {
	q := models.Question{ID: "q-1", Type: questionType, Points: 1}
	if err := q.SetContent(models.ChoiceContent{Options: options}); err != nil {
		panic(err)
	}
	return q
}

func fillBlankQuestion(text string, blanks ...models.Blank) models.Question {
	q := models.Question{ID: "q-1", Type: models.FillBlank, Points: 1}
	if err := q.SetContent(models.FillBlankContent{TextWithBlanks: text, Blanks: blanks}); err != nil {
		panic(err)
	}
	return q
}

func dragFillQuestion(content models.DragFillContent) models.Question {
	q := models.Question{ID: "q-1", Type: models.DragFill, Points: 1}
	if err := q.SetContent(content); err != nil {
		panic(err)
	}
	return q
}

func dragDropQuestion(content models.DragDropContent) models.Question {
	q := models.Question{ID: "q-1", Type: models.DragDrop, Points: 1}
	if err := q.SetContent(content); err != nil {
		panic(err)
	}
	return q
}
