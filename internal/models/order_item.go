package models

import "time"

type OrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderID uint `gorm:"not null;index" json:"order_id"`

	Quantity  int     `gorm:"not null" json:"quantity"`
	Flavor    string  `gorm:"size:100;not null" json:"flavor"`
	Size      string  `gorm:"size:100;not null" json:"size"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
