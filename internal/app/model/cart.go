package model

import "time"

// CartSnapshot is one serialized cart stored under a fixed key.
type CartSnapshot struct {
	Key       string    `gorm:"column:snapshot_key;primaryKey;type:varchar(128)" json:"key"`
	Data      string    `gorm:"type:text;not null" json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
