package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReportTypeLost  = "lost"
	ReportTypeFound = "found"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusConfirmed = "confirmed"
	ReportStatusReturned  = "returned"
)

// Report is a lost-or-found assertion about an item. Claims reference a report
// by id; the report does not own its claims.
type Report struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	Type   string `gorm:"column:report_type;not null;type:varchar(10)" json:"report_type"` // lost, found
	Status string `gorm:"not null;default:'pending';type:varchar(10)" json:"status"`       // pending, confirmed, returned

	ItemID uint `gorm:"not null;index" json:"item_id"`
	Item   Item `gorm:"foreignKey:ItemID" json:"item"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`

	// Exactly one of these is set, matching Type.
	DateLost  *time.Time `json:"date_lost"`
	DateFound *time.Time `json:"date_found"`
}
