package models

import "encoding/json"

// NewEmptyQuiz creates a quiz draft for a lesson with the observed
// defaults: passing score 70, no shuffling, answers shown, retake
// allowed, no questions.
func NewEmptyQuiz(gen IDGenerator, lessonID string) *Quiz {
	return &Quiz{
		ID:                 gen.NewID(),
		LessonID:           lessonID,
		PassingScore:       DefaultPassingScore,
		ShuffleQuestions:   false,
		ShuffleOptions:     false,
		ShowCorrectAnswers: true,
		AllowRetake:        true,
		Questions:          []Question{},
	}
}

// NewEmptyQuestion creates a question of the given type at the given
// order, with type-appropriate defaults that already satisfy the
// structural invariants of the variant.
func NewEmptyQuestion(gen IDGenerator, questionType QuestionType, order int) *Question {
	q := &Question{
		ID:     gen.NewID(),
		Type:   questionType,
		Points: 1,
		Order:  order,
	}

	switch questionType {
	case SingleChoice, MultipleChoice:
		q.Content = mustContent(ChoiceContent{
			Options: []ChoiceOption{
				{ID: gen.NewID()},
				{ID: gen.NewID()},
			},
		})
	case TrueFalse:
		q.Content = mustContent(TrueFalseContent{CorrectAnswer: false})
	case FillBlank:
		q.Content = mustContent(FillBlankContent{Blanks: []Blank{}})
	case DragFill:
		q.Content = mustContent(DragFillContent{
			Items:     []DragItem{},
			DropZones: []DropZone{},
		})
	case DragDrop:
		q.Content = mustContent(DragDropContent{
			Items: []DragItem{},
			Categories: []Category{
				{ID: gen.NewID(), CorrectItemIDs: []string{}},
				{ID: gen.NewID(), CorrectItemIDs: []string{}},
			},
		})
	}

	return q
}

// mustContent marshals the known content structs, which cannot fail.
func mustContent(content interface{}) []byte {
	data, err := json.Marshal(content)
	if err != nil {
		panic(err)
	}
	return data
}
