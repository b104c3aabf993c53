package service

import "github.com/ikkim/grocery-cart/internal/app/model"

// HistoryLog is the append-then-pop stack behind UndoLast.
type HistoryLog struct {
	entries []model.HistoryEntry
}

func (h *HistoryLog) Push(entry model.HistoryEntry) {
	h.entries = append(h.entries, entry)
}

// Pop removes and returns the most recent entry.
func (h *HistoryLog) Pop() (model.HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return model.HistoryEntry{}, false
	}
	last := len(h.entries) - 1
	entry := h.entries[last]
	h.entries[last] = model.HistoryEntry{}
	h.entries = h.entries[:last]
	return entry, true
}

func (h *HistoryLog) Len() int {
	return len(h.entries)
}

// Entries returns a copy, oldest first.
func (h *HistoryLog) Entries() []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *HistoryLog) Reset() {
	h.entries = nil
}
