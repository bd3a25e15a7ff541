package grading

import "github.com/SAP-F-2025/quiz-engine/internal/models"

// Mark is the review-mode coloring of one option, blank, zone or
// placed item.
type Mark string

const (
	// MarkCorrect: a correct target, shown green whether or not it
	// was selected.
	MarkCorrect Mark = "correct"
	// MarkIncorrect: selected but wrong, shown red.
	MarkIncorrect Mark = "incorrect"
	// MarkNeutral: unselected and not correct, shown dimmed.
	MarkNeutral Mark = "neutral"
)

// ChoiceMarks colors every option for review: correct options are
// green regardless of selection, incorrectly selected options red,
// unselected incorrect options dimmed.
func ChoiceMarks(q models.Question, answer models.Answer) (map[string]Mark, error) {
	content, err := q.ChoiceContent()
	if err != nil {
		return nil, err
	}
	marks := make(map[string]Mark, len(content.Options))
	for _, opt := range content.Options {
		switch {
		case opt.IsCorrect:
			marks[opt.ID] = MarkCorrect
		case answer.HasOption(opt.ID):
			marks[opt.ID] = MarkIncorrect
		default:
			marks[opt.ID] = MarkNeutral
		}
	}
	return marks, nil
}

// TrueFalseMarks colors the two sides: the correct side green, and
// the learner's side red when they picked wrong.
func TrueFalseMarks(q models.Question, answer models.Answer) (trueMark, falseMark Mark, err error) {
	content, err := q.TrueFalseContent()
	if err != nil {
		return "", "", err
	}
	trueMark, falseMark = MarkNeutral, MarkNeutral
	if content.CorrectAnswer {
		trueMark = MarkCorrect
	} else {
		falseMark = MarkCorrect
	}
	if answer.BoolAnswer != nil && *answer.BoolAnswer != content.CorrectAnswer {
		if *answer.BoolAnswer {
			trueMark = MarkIncorrect
		} else {
			falseMark = MarkIncorrect
		}
	}
	return trueMark, falseMark, nil
}

// BlankMarks reports per-blank correctness of the typed answers.
func BlankMarks(q models.Question, answer models.Answer) (map[string]Mark, error) {
	content, err := q.FillBlankContent()
	if err != nil {
		return nil, err
	}
	marks := make(map[string]Mark, len(content.Blanks))
	for _, blank := range content.Blanks {
		if MatchesBlank(blank, answer.BlankTexts[blank.ID]) {
			marks[blank.ID] = MarkCorrect
		} else {
			marks[blank.ID] = MarkIncorrect
		}
	}
	return marks, nil
}

// ZoneMarks reports per-zone correctness of the placed items.
func ZoneMarks(q models.Question, answer models.Answer) (map[string]Mark, error) {
	content, err := q.DragFillContent()
	if err != nil {
		return nil, err
	}
	marks := make(map[string]Mark, len(content.DropZones))
	for _, zone := range content.DropZones {
		placed, ok := answer.ZonePlacements[zone.ID]
		switch {
		case !ok:
			marks[zone.ID] = MarkNeutral
		case placed == zone.CorrectItemID:
			marks[zone.ID] = MarkCorrect
		default:
			marks[zone.ID] = MarkIncorrect
		}
	}
	return marks, nil
}

// PlacedItemMarks colors every placed drag_drop item by membership in
// its category's correct set. Unplaced items get no mark.
func PlacedItemMarks(q models.Question, answer models.Answer) (map[string]Mark, error) {
	content, err := q.DragDropContent()
	if err != nil {
		return nil, err
	}
	correct := make(map[string]map[string]bool, len(content.Categories))
	for _, category := range content.Categories {
		set := make(map[string]bool, len(category.CorrectItemIDs))
		for _, id := range category.CorrectItemIDs {
			set[id] = true
		}
		correct[category.ID] = set
	}

	marks := make(map[string]Mark)
	for categoryID, items := range answer.CategoryPlacements {
		for _, itemID := range items {
			if correct[categoryID][itemID] {
				marks[itemID] = MarkCorrect
			} else {
				marks[itemID] = MarkIncorrect
			}
		}
	}
	return marks, nil
}
