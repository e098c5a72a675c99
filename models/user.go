package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	Username string  `gorm:"unique;not null" json:"username"`
	Email    string  `gorm:"unique;not null" json:"email"`
	Phone    *string `gorm:"unique" json:"phone"`
	Password *string `gorm:"column:password" json:"-"` // Don't expose password in JSON
	Role     string  `gorm:"not null;default:'user';type:varchar(10)" json:"role"` // user, admin

	EmailVerified   bool       `gorm:"default:false" json:"email_verified"`
	VerificationPin string     `gorm:"type:varchar(6)" json:"-"`
	PinExpiresAt    *time.Time `json:"-"`

	GoogleID   *string `gorm:"uniqueIndex" json:"-"`
	Provider   string  `gorm:"default:'email';type:varchar(20)" json:"provider"`
	ProviderID string  `json:"-"`

	Reports       []Report       `json:"reports" gorm:"foreignKey:UserID"`
	Claims        []Claim        `json:"claims" gorm:"foreignKey:ClaimedBy"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}
