package models

import (
	"time"
)

const (
	NotificationReportConfirmed = "report_confirmed"
	NotificationClaimApproved   = "claim_approved"
	NotificationClaimRejected   = "claim_rejected"
	NotificationItemReturned    = "item_returned"
)

// Notification rows are created only as side effects of report/claim
// transitions; users can mark them read, the scheduler prunes old ones.
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID    uint   `gorm:"not null;index" json:"user_id"`
	Title     string `gorm:"not null" json:"title"`
	Message   string `gorm:"type:text;not null" json:"message"`
	Kind      string `gorm:"column:type;not null;type:varchar(30)" json:"type"` // report_confirmed, claim_approved, claim_rejected, item_returned
	RelatedID uint   `json:"related_id"`
	IsRead    bool   `gorm:"default:false;index" json:"is_read"`
}
