package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	ClaimStatusPending   = "pending"
	ClaimStatusApproved  = "approved"
	ClaimStatusRejected  = "rejected"
	ClaimStatusCompleted = "completed"
)

// Claim is an assertion by a user that a found-item report describes something
// they own. Claims are never deleted; rejected and completed are terminal.
type Claim struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	Status      string         `gorm:"not null;default:'pending';type:varchar(10)" json:"status"` // pending, approved, rejected, completed
	ReportID    uint           `gorm:"not null;index" json:"report_id"`
	Report      Report         `gorm:"foreignKey:ReportID" json:"report"`
	ClaimedBy   uint           `gorm:"not null;index" json:"claimed_by"`
	Claimant    User           `gorm:"foreignKey:ClaimedBy" json:"claimant"`
	Description string         `gorm:"type:text;not null" json:"description"`
	AdminNotes  string         `gorm:"type:text" json:"admin_notes"`
	Images      pq.StringArray `gorm:"type:text[]" json:"images"` // supporting image URLs, at most 5
}
