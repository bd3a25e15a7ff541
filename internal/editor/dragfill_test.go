package editor

import (
	"testing"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragFillEditor_SetText_DerivesZones(t *testing.T) {
	e := NewDragFillEditor(newSeqGen("zone"))
	q := dragFillQuestion(models.DragFillContent{})

	next, err := e.SetText(q, "___ orbits the ___.")
	require.NoError(t, err)
	content, err := next.DragFillContent()
	require.NoError(t, err)
	require.Len(t, content.DropZones, 2)

	// Configure the first zone, then drop the second marker: the
	// surviving zone keeps its answer.
	next, err = e.SetZoneCorrectItem(next, content.DropZones[0].ID, "item-earth")
	require.NoError(t, err)
	next, err = e.SetText(next, "___ orbits the sun.")
	require.NoError(t, err)
	content, err = next.DragFillContent()
	require.NoError(t, err)
	require.Len(t, content.DropZones, 1)
	assert.Equal(t, "item-earth", content.DropZones[0].CorrectItemID)
}

func TestDragFillEditor_RemoveItem_ClearsZoneReferences(t *testing.T) {
	e := NewDragFillEditor(newSeqGen("zone"))
	q := dragFillQuestion(models.DragFillContent{
		TextWithBlanks: "___ and ___",
		Items: []models.DragItem{
			{ID: "i1", Text: "Earth"},
			{ID: "i2", Text: "Mars"},
		},
		DropZones: []models.DropZone{
			{ID: "z1", CorrectItemID: "i1"},
			{ID: "z2", CorrectItemID: "i2"},
		},
	})

	next, err := e.RemoveItem(q, "i1")
	require.NoError(t, err)
	content, err := next.DragFillContent()
	require.NoError(t, err)
	require.Len(t, content.Items, 1)
	assert.Empty(t, content.DropZones[0].CorrectItemID)
	assert.Equal(t, "i2", content.DropZones[1].CorrectItemID)
}

func TestDragFillEditor_AddAndUpdateItem(t *testing.T) {
	e := NewDragFillEditor(newSeqGen("df"))
	q := dragFillQuestion(models.DragFillContent{})

	next, err := e.AddItem(q)
	require.NoError(t, err)
	next, err = e.UpdateItemText(next, "df-1", "Earth")
	require.NoError(t, err)

	content, err := next.DragFillContent()
	require.NoError(t, err)
	require.Len(t, content.Items, 1)
	assert.Equal(t, "Earth", content.Items[0].Text)
}

func TestDragFillEditor_SetZoneLabel(t *testing.T) {
	e := NewDragFillEditor(newSeqGen("df"))
	q := dragFillQuestion(models.DragFillContent{
		TextWithBlanks: "___",
		DropZones:      []models.DropZone{{ID: "z1"}},
	})

	next, err := e.SetZoneLabel(q, "z1", "planet")
	require.NoError(t, err)
	content, err := next.DragFillContent()
	require.NoError(t, err)
	assert.Equal(t, "planet", content.DropZones[0].Label)
}
