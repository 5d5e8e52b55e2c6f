package models

// ModelRegistry lists every persisted record kind for gorm auto-migration.
var ModelRegistry = []interface{}{
	&ContactMessage{},
	&NewsletterSignup{},
	&WaitlistSignup{},
	&PartnerApplication{},
}
