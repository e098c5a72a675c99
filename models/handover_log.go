package models

import (
	"time"
)

// HandoverLog records the physical exchange of an item for a decided claim.
// Purely a log entry; it does not drive any status transition.
type HandoverLog struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ClaimID      uint      `gorm:"not null;index" json:"claim_id"`
	Claim        Claim     `gorm:"foreignKey:ClaimID" json:"claim"`
	AdminID      uint      `gorm:"not null" json:"admin_id"`
	Admin        User      `gorm:"foreignKey:AdminID" json:"admin"`
	HandoverDate time.Time `gorm:"autoCreateTime" json:"handover_date"`
}
