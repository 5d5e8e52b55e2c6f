package models

import "time"

// Partner roles accepted by the venue partner form.
const (
	PartnerRoleOwner    = "Owner"
	PartnerRoleManager  = "Manager"
	PartnerRolePromoter = "Promoter"
)

type PartnerApplication struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	VenueName   string    `gorm:"not null" json:"venue_name"`
	ContactName string    `gorm:"not null" json:"contact_name"`
	Email       string    `gorm:"not null;index" json:"email"`
	City        string    `gorm:"not null;default:''" json:"city"`
	Role        string    `gorm:"not null" json:"role"`
	CreatedAt   time.Time `gorm:"not null" json:"-"`
}

func (PartnerApplication) TableName() string {
	return "partners"
}
