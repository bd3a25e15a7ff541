package models

// Answer is the captured response for a single question. Exactly one
// field group is populated, matching the question's type.
type Answer struct {
	// single_choice / multiple_choice: selected option ids.
	SelectedOptions []string `json:"selected_options,omitempty"`

	// true_false: nil until the learner picks a side.
	BoolAnswer *bool `json:"bool_answer,omitempty"`

	// fill_blank: blank id -> typed text.
	BlankTexts map[string]string `json:"blank_texts,omitempty"`

	// drag_fill: drop zone id -> placed item id.
	ZonePlacements map[string]string `json:"zone_placements,omitempty"`

	// drag_drop: category id -> placed item ids.
	CategoryPlacements map[string][]string `json:"category_placements,omitempty"`
}

// AnswerSet maps question ids to captured answers for one attempt.
type AnswerSet map[string]Answer

// HasOption reports whether the option id is among the selected ones.
func (a Answer) HasOption(optionID string) bool {
	for _, id := range a.SelectedOptions {
		if id == optionID {
			return true
		}
	}
	return false
}

// ItemCategory returns the id of the category the item is currently
// placed in, or "" if the item is unplaced.
func (a Answer) ItemCategory(itemID string) string {
	for categoryID, itemIDs := range a.CategoryPlacements {
		for _, id := range itemIDs {
			if id == itemID {
				return categoryID
			}
		}
	}
	return ""
}

// ItemZone returns the id of the drop zone the item occupies, or "".
func (a Answer) ItemZone(itemID string) string {
	for zoneID, id := range a.ZonePlacements {
		if id == itemID {
			return zoneID
		}
	}
	return ""
}
