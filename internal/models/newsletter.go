package models

import "time"

type NewsletterSignup struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Email     string    `gorm:"not null;index" json:"email"`
	Source    string    `gorm:"not null" json:"source"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}

func (NewsletterSignup) TableName() string {
	return "newsletter_signups"
}
