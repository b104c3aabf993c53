package model

import "github.com/shopspring/decimal"

// BaseProduct is the shape of a catalog entry before it enters the cart.
type BaseProduct struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
}

// LineItem is one product entry in the cart. Quantity is always >= 1.
type LineItem struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
}

// NewLineItem places a product in the cart with quantity 1.
func NewLineItem(p BaseProduct) LineItem {
	return LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
		Quantity: 1,
	}
}

// LineTotal is price times quantity.
func (i LineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Product drops the quantity.
func (i LineItem) Product() BaseProduct {
	return BaseProduct{
		ID:       i.ID,
		Name:     i.Name,
		Price:    i.Price,
		Image:    i.Image,
		Category: i.Category,
	}
}

// Valid reports whether the item can live in a cart.
func (i LineItem) Valid() bool {
	return i.Quantity >= 1 && !i.Price.IsNegative()
}

// IndexOf returns the position of the entry with id, or -1.
func IndexOf(items []LineItem, id int) int {
	for idx := range items {
		if items[idx].ID == id {
			return idx
		}
	}
	return -1
}

// CloneItems returns a copy that shares nothing with items.
func CloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

// MergeItems folds entries with the same id into the first occurrence,
// summing quantities, and drops entries that are not Valid.
func MergeItems(items []LineItem) []LineItem {
	merged := make([]LineItem, 0, len(items))
	for _, item := range items {
		if !item.Valid() {
			continue
		}
		if idx := IndexOf(merged, item.ID); idx >= 0 {
			merged[idx].Quantity += item.Quantity
			continue
		}
		merged = append(merged, item)
	}
	return merged
}

// Subtotal sums LineTotal over items.
func Subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
