package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog row. The cart never mutates it.
type Product struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	ImageURL  string          `json:"image"`
	Category  string          `gorm:"type:varchar(50);index" json:"category"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

func (p Product) BaseProduct() BaseProduct {
	return BaseProduct{
		ID:       int(p.ID),
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.ImageURL,
		Category: p.Category,
	}
}
