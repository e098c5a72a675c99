package models

import (
	"time"
)

type ItemImage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemID    uint      `gorm:"not null;index" json:"item_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
