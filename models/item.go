package models

import (
	"gorm.io/gorm"
)

type Item struct {
	gorm.Model
	Description string      `gorm:"type:text;not null" json:"description"`
	CategoryID  uint        `gorm:"not null" json:"category_id"`
	Category    Category    `gorm:"foreignKey:CategoryID" json:"category"`
	LocationID  uint        `gorm:"not null" json:"location_id"`
	Location    Location    `gorm:"foreignKey:LocationID" json:"location"`
	ReportedBy  uint        `gorm:"not null" json:"reported_by"`
	Images      []ItemImage `gorm:"foreignKey:ItemID" json:"images"`
}
