package models

import "time"

// WaitlistSignup is stored with a lowercased email. Uniqueness is left to the
// backing store; the application never de-duplicates.
type WaitlistSignup struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	Email         string    `gorm:"not null;index" json:"email"`
	Name          *string   `json:"name"`
	ReferralCount int       `gorm:"not null;default:0" json:"referral_count"`
	CreatedAt     time.Time `gorm:"not null" json:"-"`
}

func (WaitlistSignup) TableName() string {
	return "waitlist"
}
