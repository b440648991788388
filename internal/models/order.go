package models

import "time"

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Status     string  `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	TotalPrice float64 `gorm:"not null;default:0" json:"total_price"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	CancelledAt *time.Time `json:"cancelled_at"`
	FinishedAt  *time.Time `json:"finished_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
