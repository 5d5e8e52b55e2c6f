package models

import "time"

// SourceLanding is the only source label the landing page produces.
const SourceLanding = "landing"

type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;index" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Source    string    `gorm:"not null" json:"source"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
