package service

import "github.com/ikkim/grocery-cart/internal/app/model"

// CartEngine applies Add, Remove and UndoLast to an owned item list and keeps
// the history log consistent with it. It is not safe for concurrent use;
// CartService serializes access.
type CartEngine struct {
	items   []model.LineItem
	history HistoryLog
}

func NewCartEngine() *CartEngine {
	return &CartEngine{}
}

// Add appends a new line with quantity 1, or increments the existing line
// with the same id.
func (e *CartEngine) Add(product model.BaseProduct) {
	if idx := model.IndexOf(e.items, product.ID); idx >= 0 {
		e.items[idx].Quantity++
		e.history.Push(model.HistoryEntry{
			Kind:     model.HistoryIncrement,
			Item:     e.items[idx],
			Position: idx,
		})
		return
	}

	item := model.NewLineItem(product)
	e.items = append(e.items, item)
	e.history.Push(model.HistoryEntry{
		Kind:     model.HistoryAdd,
		Item:     item,
		Position: len(e.items) - 1,
	})
}

// Remove drops the whole line with id. It reports false, and records
// nothing, when no such line exists.
func (e *CartEngine) Remove(id int) bool {
	idx := model.IndexOf(e.items, id)
	if idx < 0 {
		return false
	}

	removed := e.items[idx]
	e.items = append(e.items[:idx], e.items[idx+1:]...)
	e.history.Push(model.HistoryEntry{
		Kind:     model.HistoryRemove,
		Item:     removed,
		Position: idx,
	})
	return true
}

// UndoLast pops one history entry and applies its inverse. It reports
// whether an entry was consumed; the inverse itself may be a no-op.
func (e *CartEngine) UndoLast() bool {
	entry, ok := e.history.Pop()
	if !ok {
		return false
	}

	switch entry.Kind {
	case model.HistoryAdd:
		if idx := model.IndexOf(e.items, entry.Item.ID); idx >= 0 {
			e.items = append(e.items[:idx], e.items[idx+1:]...)
		}
	case model.HistoryRemove:
		e.reinsert(entry.Item, entry.Position)
	case model.HistoryIncrement:
		if idx := model.IndexOf(e.items, entry.Item.ID); idx >= 0 && e.items[idx].Quantity > 1 {
			e.items[idx].Quantity--
		}
	}
	return true
}

func (e *CartEngine) reinsert(item model.LineItem, pos int) {
	if idx := model.IndexOf(e.items, item.ID); idx >= 0 {
		e.items[idx].Quantity += item.Quantity
		return
	}
	if pos < 0 || pos > len(e.items) {
		pos = len(e.items)
	}
	e.items = append(e.items, model.LineItem{})
	copy(e.items[pos+1:], e.items[pos:])
	e.items[pos] = item
}

// Hydrate replaces the items with a persisted snapshot and clears history.
func (e *CartEngine) Hydrate(items []model.LineItem) {
	e.items = model.MergeItems(items)
	e.history.Reset()
}

// Items returns a copy of the current lines in first-add order.
func (e *CartEngine) Items() []model.LineItem {
	return model.CloneItems(e.items)
}

func (e *CartEngine) History() []model.HistoryEntry {
	return e.history.Entries()
}

func (e *CartEngine) HistoryLen() int {
	return e.history.Len()
}

func (e *CartEngine) CanUndo() bool {
	return e.history.Len() > 0
}
