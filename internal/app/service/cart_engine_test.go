package service

import (
	"testing"

	"github.com/ikkim/grocery-cart/internal/app/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int, price int64) model.BaseProduct {
	return model.BaseProduct{
		ID:       id,
		Name:     "Product",
		Price:    decimal.NewFromInt(price),
		Image:    "/p.jpg",
		Category: "Fruit",
	}
}

func TestCartEngine_AddMergesByID(t *testing.T) {
	engine := NewCartEngine()

	for i := 0; i < 4; i++ {
		engine.Add(product(1, 10))
	}

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	history := engine.History()
	require.Len(t, history, 4)
	assert.Equal(t, model.HistoryAdd, history[0].Kind)
	for _, entry := range history[1:] {
		assert.Equal(t, model.HistoryIncrement, entry.Kind)
	}
	assert.Equal(t, 4, history[3].Item.Quantity)
}

func TestCartEngine_AddKeepsFirstAddOrder(t *testing.T) {
	engine := NewCartEngine()

	engine.Add(product(2, 10))
	engine.Add(product(1, 10))
	engine.Add(product(2, 10))

	items := engine.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].ID)
	assert.Equal(t, 1, items[1].ID)
}

func TestCartEngine_UndoAdd(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(1, 10))
	before := engine.Items()

	engine.Add(product(2, 20))
	assert.True(t, engine.UndoLast())

	assert.Equal(t, before, engine.Items())
	assert.Equal(t, 1, engine.HistoryLen())
}

func TestCartEngine_UndoAddRemovesByIdentity(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(1, 10))
	engine.Add(product(2, 10))
	engine.Add(product(1, 10))

	// Drop the Increment entry without touching items, then undo the Add of id 2
	// and finally the Add of id 1, which has quantity 2 at that point.
	engine.history.Pop()
	engine.UndoLast()
	engine.UndoLast()

	assert.Empty(t, engine.Items())
}

func TestCartEngine_RemoveAndUndoRestoresQuantity(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(1, 10))
	engine.Add(product(2, 10))
	engine.Add(product(2, 10))
	engine.Add(product(3, 10))
	before := engine.Items()

	assert.True(t, engine.Remove(2))
	assert.Equal(t, -1, model.IndexOf(engine.Items(), 2))

	last := engine.History()[engine.HistoryLen()-1]
	assert.Equal(t, model.HistoryRemove, last.Kind)
	assert.Equal(t, 2, last.Item.Quantity)

	engine.UndoLast()
	assert.Equal(t, before, engine.Items())
}

func TestCartEngine_RemoveUnknownIsNoop(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(1, 10))

	assert.False(t, engine.Remove(99))
	assert.Len(t, engine.Items(), 1)
	assert.Equal(t, 1, engine.HistoryLen())
}

func TestCartEngine_RemoveConsumesOneEntry(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(1, 10))

	assert.True(t, engine.Remove(1))
	assert.False(t, engine.Remove(1))
	assert.Equal(t, 2, engine.HistoryLen())
}

func TestCartEngine_UndoIncrement(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(1, 10))
	engine.Add(product(1, 10))
	engine.Add(product(1, 10))

	engine.UndoLast()

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartEngine_UndoIncrementGuard(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(1, 10))
	engine.Add(product(1, 10))
	engine.Hydrate([]model.LineItem{{ID: 1, Price: decimal.NewFromInt(10), Quantity: 1}})

	engine.history.Push(model.HistoryEntry{Kind: model.HistoryIncrement, Item: model.LineItem{ID: 1, Quantity: 2}})
	assert.True(t, engine.UndoLast())

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 0, engine.HistoryLen())
}

func TestCartEngine_UndoIncrementAfterRemoveIsNoop(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(1, 10))
	engine.Add(product(1, 10))
	engine.Remove(1)
	engine.history.Push(model.HistoryEntry{Kind: model.HistoryIncrement, Item: model.LineItem{ID: 1, Quantity: 2}})

	engine.UndoLast()

	assert.Empty(t, engine.Items())
	assert.Equal(t, 3, engine.HistoryLen())
}

func TestCartEngine_HistoryMonotonicity(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(1, 10))
	engine.Add(product(1, 10))
	engine.Add(product(2, 10))
	engine.Remove(1)
	engine.Remove(42)

	depth := engine.HistoryLen()
	require.Equal(t, 4, depth)

	for depth > 0 {
		assert.True(t, engine.UndoLast())
		assert.Equal(t, depth-1, engine.HistoryLen())
		depth--
	}
	assert.Empty(t, engine.Items())
	assert.False(t, engine.UndoLast())
}

func TestCartEngine_FullRewind(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(1, 10))
	engine.Add(product(2, 20))
	engine.Add(product(1, 10))
	engine.Remove(2)
	engine.Add(product(3, 30))
	engine.Remove(1)

	for engine.UndoLast() {
	}

	assert.Empty(t, engine.Items())
}

func TestCartEngine_EmptyUndo(t *testing.T) {
	engine := NewCartEngine()

	assert.False(t, engine.UndoLast())
	assert.Empty(t, engine.Items())
	assert.Empty(t, engine.History())
	assert.False(t, engine.CanUndo())
}

func TestCartEngine_HydrateResetsHistory(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(9, 10))

	engine.Hydrate([]model.LineItem{
		{ID: 1, Price: decimal.NewFromInt(10), Quantity: 2},
		{ID: 2, Price: decimal.NewFromInt(10), Quantity: 0},
		{ID: 1, Price: decimal.NewFromInt(10), Quantity: 1},
	})

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 0, engine.HistoryLen())
	assert.False(t, engine.UndoLast())
	assert.Len(t, engine.Items(), 1)
}

func TestCartEngine_ItemsAreCopies(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(1, 10))

	items := engine.Items()
	items[0].Quantity = 100

	assert.Equal(t, 1, engine.Items()[0].Quantity)
}

func TestCartEngine_ReinsertMergesDuplicate(t *testing.T) {
	engine := NewCartEngine()
	engine.Add(product(1, 10))
	engine.history.Push(model.HistoryEntry{
		Kind: model.HistoryRemove,
		Item: model.LineItem{ID: 1, Price: decimal.NewFromInt(10), Quantity: 2},
	})

	engine.UndoLast()

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}
