// Package player administers quiz attempts: per-type answer capture,
// navigation, timing and submission. Capture functions are pure
// controlled transitions: they never own the stored answer, they take
// the current value and return the next one.
package player

import (
	"fmt"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// ToggleOption records a choice selection. multiple_choice toggles the
// option in and out of the selected set; single_choice replaces the
// whole selection with the toggled option.
func ToggleOption(q models.Question, answer models.Answer, optionID string) (models.Answer, error) {
	switch q.Type {
	case models.SingleChoice:
		answer.SelectedOptions = []string{optionID}
	case models.MultipleChoice:
		selected := make([]string, 0, len(answer.SelectedOptions)+1)
		removed := false
		for _, id := range answer.SelectedOptions {
			if id == optionID {
				removed = true
				continue
			}
			selected = append(selected, id)
		}
		if !removed {
			selected = append(selected, optionID)
		}
		answer.SelectedOptions = selected
	default:
		return answer, fmt.Errorf("question %s does not take option answers", q.ID)
	}
	return answer, nil
}

// SelectBool records the true/false selection.
func SelectBool(answer models.Answer, value bool) models.Answer {
	answer.BoolAnswer = &value
	return answer
}

// SetBlankText records the typed text for one blank.
func SetBlankText(answer models.Answer, blankID, text string) models.Answer {
	texts := make(map[string]string, len(answer.BlankTexts)+1)
	for id, t := range answer.BlankTexts {
		texts[id] = t
	}
	texts[blankID] = text
	answer.BlankTexts = texts
	return answer
}

// PlaceItem drops an item into a zone. An item is usable at most
// once: if it was placed in another zone it vacates that zone in the
// same transition, and whatever occupied the target zone returns to
// the pool.
func PlaceItem(answer models.Answer, zoneID, itemID string) models.Answer {
	placements := make(map[string]string, len(answer.ZonePlacements)+1)
	for zone, item := range answer.ZonePlacements {
		if item == itemID || zone == zoneID {
			continue
		}
		placements[zone] = item
	}
	placements[zoneID] = itemID
	answer.ZonePlacements = placements
	return answer
}

// ClearZone returns a zone's item to the pool.
func ClearZone(answer models.Answer, zoneID string) models.Answer {
	placements := make(map[string]string, len(answer.ZonePlacements))
	for zone, item := range answer.ZonePlacements {
		if zone == zoneID {
			continue
		}
		placements[zone] = item
	}
	answer.ZonePlacements = placements
	return answer
}

// DropItem places an item into a category's answer list. Dropping
// into a new category removes the item from any previous one,
// mirroring the editor's exclusivity rule.
func DropItem(answer models.Answer, categoryID, itemID string) models.Answer {
	placements := make(map[string][]string, len(answer.CategoryPlacements)+1)
	for category, items := range answer.CategoryPlacements {
		kept := make([]string, 0, len(items))
		for _, id := range items {
			if id != itemID {
				kept = append(kept, id)
			}
		}
		if len(kept) > 0 {
			placements[category] = kept
		}
	}
	placements[categoryID] = append(placements[categoryID], itemID)
	answer.CategoryPlacements = placements
	return answer
}

// RemoveDroppedItem returns an item from its category to the pool.
func RemoveDroppedItem(answer models.Answer, itemID string) models.Answer {
	placements := make(map[string][]string, len(answer.CategoryPlacements))
	for category, items := range answer.CategoryPlacements {
		kept := make([]string, 0, len(items))
		for _, id := range items {
			if id != itemID {
				kept = append(kept, id)
			}
		}
		if len(kept) > 0 {
			placements[category] = kept
		}
	}
	answer.CategoryPlacements = placements
	return answer
}

// IsAnswered applies the type-specific emptiness rule: a question
// counts as answered the moment its captured answer is non-empty.
func IsAnswered(q models.Question, answer models.Answer) bool {
	switch q.Type {
	case models.SingleChoice, models.MultipleChoice:
		return len(answer.SelectedOptions) > 0
	case models.TrueFalse:
		return answer.BoolAnswer != nil
	case models.FillBlank:
		for _, text := range answer.BlankTexts {
			if text != "" {
				return true
			}
		}
		return false
	case models.DragFill:
		return len(answer.ZonePlacements) > 0
	case models.DragDrop:
		for _, items := range answer.CategoryPlacements {
			if len(items) > 0 {
				return true
			}
		}
		return false
	default:
		return false
	}
}
