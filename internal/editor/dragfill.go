package editor

import "github.com/SAP-F-2025/quiz-engine/internal/models"

// DeriveDropZones applies the same marker-count synchronization as
// DeriveBlanks, but to the drop zones of a drag_fill question.
func DeriveDropZones(gen models.IDGenerator, text string, existing []models.DropZone) []models.DropZone {
	count := models.CountBlanks(text)
	zones := make([]models.DropZone, 0, count)
	zones = append(zones, existing[:min(count, len(existing))]...)
	for len(zones) < count {
		zones = append(zones, models.DropZone{ID: gen.NewID()})
	}
	return zones
}

// DragFillEditor authors drag_fill questions: a prompt with blanks,
// a pool of draggable items (correct answers and distractors mixed)
// and one drop zone per blank.
type DragFillEditor struct {
	gen models.IDGenerator
}

func NewDragFillEditor(gen models.IDGenerator) *DragFillEditor {
	return &DragFillEditor{gen: gen}
}

func (e *DragFillEditor) transform(q models.Question, fn func(*models.DragFillContent)) (models.Question, error) {
	content, err := q.DragFillContent()
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

// SetText replaces the prompt text and re-derives the drop zones.
func (e *DragFillEditor) SetText(q models.Question, text string) (models.Question, error) {
	return e.transform(q, func(c *models.DragFillContent) {
		c.TextWithBlanks = text
		c.DropZones = DeriveDropZones(e.gen, text, c.DropZones)
	})
}

// AddItem appends a new empty item to the draggable pool.
func (e *DragFillEditor) AddItem(q models.Question) (models.Question, error) {
	return e.transform(q, func(c *models.DragFillContent) {
		c.Items = append(c.Items, models.DragItem{ID: e.gen.NewID()})
	})
}

// UpdateItemText replaces the text of one pool item.
func (e *DragFillEditor) UpdateItemText(q models.Question, itemID, text string) (models.Question, error) {
	return e.transform(q, func(c *models.DragFillContent) {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items[i].Text = text
				return
			}
		}
	})
}

// RemoveItem deletes an item from the pool and clears any drop zone
// whose correct item referenced it, so no zone is left dangling.
func (e *DragFillEditor) RemoveItem(q models.Question, itemID string) (models.Question, error) {
	return e.transform(q, func(c *models.DragFillContent) {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				break
			}
		}
		for i := range c.DropZones {
			if c.DropZones[i].CorrectItemID == itemID {
				c.DropZones[i].CorrectItemID = ""
			}
		}
	})
}

// SetZoneCorrectItem selects which pool item a zone expects.
func (e *DragFillEditor) SetZoneCorrectItem(q models.Question, zoneID, itemID string) (models.Question, error) {
	return e.transform(q, func(c *models.DragFillContent) {
		for i := range c.DropZones {
			if c.DropZones[i].ID == zoneID {
				c.DropZones[i].CorrectItemID = itemID
				return
			}
		}
	})
}

// SetZoneLabel renames a drop zone.
func (e *DragFillEditor) SetZoneLabel(q models.Question, zoneID, label string) (models.Question, error) {
	return e.transform(q, func(c *models.DragFillContent) {
		for i := range c.DropZones {
			if c.DropZones[i].ID == zoneID {
				c.DropZones[i].Label = label
				return
			}
		}
	})
}
