package newsletter

import (
	"github.com/nataa-app/landing-gateway/internal/models"
	"github.com/nataa-app/landing-gateway/pkg/validation"
)

// SubscribeRequest keeps Source as a pointer so an explicit empty string is
// stored as sent, while an absent one falls back to the landing label.
type SubscribeRequest struct {
	Email  string  `json:"email" binding:"max=320"`
	Source *string `json:"source" binding:"omitempty,max=100"`
}

func (r *SubscribeRequest) ResolvedSource() string {
	if r.Source == nil {
		return models.SourceLanding
	}
	return *r.Source
}

func ToNewsletterSignupModel(req *SubscribeRequest) *models.NewsletterSignup {
	if req == nil {
		return nil
	}
	return &models.NewsletterSignup{
		Email:  validation.Trim(req.Email),
		Source: req.ResolvedSource(),
	}
}
