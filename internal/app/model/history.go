package model

type HistoryKind string

const (
	HistoryAdd       HistoryKind = "ADD"
	HistoryRemove    HistoryKind = "REMOVE"
	HistoryIncrement HistoryKind = "INCREMENT"
)

// HistoryEntry records one undoable cart mutation.
// For Add and Increment, Item is the state after the mutation.
// For Remove, Item is the removed entry and Position its former index.
type HistoryEntry struct {
	Kind     HistoryKind `json:"kind"`
	Item     LineItem    `json:"item"`
	Position int         `json:"position"`
}
