package editor

import "github.com/SAP-F-2025/quiz-engine/internal/models"

// MinCategories is the floor below which categories cannot be removed.
const MinCategories = 2

// DragDropEditor authors drag_drop questions: a pool of items sorted
// into categories. An item belongs to at most one category's correct
// set; the exclusivity is enforced on every toggle, not at save time.
type DragDropEditor struct {
	gen models.IDGenerator
}

func NewDragDropEditor(gen models.IDGenerator) *DragDropEditor {
	return &DragDropEditor{gen: gen}
}

func (e *DragDropEditor) transform(q models.Question, fn func(*models.DragDropContent)) (models.Question, error) {
	content, err := q.DragDropContent()
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

// AddItem appends a new empty item to the pool.
func (e *DragDropEditor) AddItem(q models.Question) (models.Question, error) {
	return e.transform(q, func(c *models.DragDropContent) {
		c.Items = append(c.Items, models.DragItem{ID: e.gen.NewID()})
	})
}

// UpdateItemText replaces the text of one pool item.
func (e *DragDropEditor) UpdateItemText(q models.Question, itemID, text string) (models.Question, error) {
	return e.transform(q, func(c *models.DragDropContent) {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items[i].Text = text
				return
			}
		}
	})
}

// RemoveItem deletes an item and evicts it from every category's
// correct set.
func (e *DragDropEditor) RemoveItem(q models.Question, itemID string) (models.Question, error) {
	return e.transform(q, func(c *models.DragDropContent) {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				break
			}
		}
		for i := range c.Categories {
			c.Categories[i].CorrectItemIDs = removeString(c.Categories[i].CorrectItemIDs, itemID)
		}
	})
}

// AddCategory appends a new empty category.
func (e *DragDropEditor) AddCategory(q models.Question) (models.Question, error) {
	return e.transform(q, func(c *models.DragDropContent) {
		c.Categories = append(c.Categories, models.Category{
			ID:             e.gen.NewID(),
			CorrectItemIDs: []string{},
		})
	})
}

// RenameCategory replaces a category's name.
func (e *DragDropEditor) RenameCategory(q models.Question, categoryID, name string) (models.Question, error) {
	return e.transform(q, func(c *models.DragDropContent) {
		for i := range c.Categories {
			if c.Categories[i].ID == categoryID {
				c.Categories[i].Name = name
				return
			}
		}
	})
}

// RemoveCategory deletes a category. Removal is a no-op while the
// question is at the minimum category count.
func (e *DragDropEditor) RemoveCategory(q models.Question, categoryID string) (models.Question, error) {
	return e.transform(q, func(c *models.DragDropContent) {
		if len(c.Categories) <= MinCategories {
			return
		}
		for i := range c.Categories {
			if c.Categories[i].ID == categoryID {
				c.Categories = append(c.Categories[:i], c.Categories[i+1:]...)
				return
			}
		}
	})
}

// ToggleItemInCategory adds or removes an item from a category's
// correct set. Adding first evicts the item from every other category,
// so membership stays exclusive after every toggle.
func (e *DragDropEditor) ToggleItemInCategory(q models.Question, categoryID, itemID string) (models.Question, error) {
	return e.transform(q, func(c *models.DragDropContent) {
		for i := range c.Categories {
			if c.Categories[i].ID != categoryID {
				continue
			}
			if containsString(c.Categories[i].CorrectItemIDs, itemID) {
				c.Categories[i].CorrectItemIDs = removeString(c.Categories[i].CorrectItemIDs, itemID)
				return
			}
			for j := range c.Categories {
				c.Categories[j].CorrectItemIDs = removeString(c.Categories[j].CorrectItemIDs, itemID)
			}
			c.Categories[i].CorrectItemIDs = append(c.Categories[i].CorrectItemIDs, itemID)
			return
		}
	})
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
