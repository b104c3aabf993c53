package service

import (
	"testing"

	"github.com/ikkim/grocery-cart/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryLog_PushPopOrder(t *testing.T) {
	var h HistoryLog
	h.Push(model.HistoryEntry{Kind: model.HistoryAdd, Item: model.LineItem{ID: 1}})
	h.Push(model.HistoryEntry{Kind: model.HistoryRemove, Item: model.LineItem{ID: 2}})

	require.Equal(t, 2, h.Len())

	entry, ok := h.Pop()
	assert.True(t, ok)
	assert.Equal(t, model.HistoryRemove, entry.Kind)

	entry, ok = h.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, entry.Item.ID)

	_, ok = h.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())
}

func TestHistoryLog_EntriesIsCopy(t *testing.T) {
	var h HistoryLog
	h.Push(model.HistoryEntry{Kind: model.HistoryAdd})

	entries := h.Entries()
	entries[0].Kind = model.HistoryRemove

	assert.Equal(t, model.HistoryAdd, h.Entries()[0].Kind)
}

func TestHistoryLog_Reset(t *testing.T) {
	var h HistoryLog
	h.Push(model.HistoryEntry{})
	h.Reset()

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Entries())
}
