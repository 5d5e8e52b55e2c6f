package waitlist

import (
	"fmt"

	"github.com/nataa-app/landing-gateway/internal/models"
	"github.com/nataa-app/landing-gateway/pkg/validation"
)

type JoinWaitlistRequest struct {
	Email string `json:"email" binding:"max=320"`
	Name  string `json:"name" binding:"max=200"`
}

func ToWaitlistSignupModel(req *JoinWaitlistRequest) *models.WaitlistSignup {
	if req == nil {
		return nil
	}

	signup := &models.WaitlistSignup{
		Email:         validation.NormalizeEmail(req.Email),
		ReferralCount: 0,
	}
	if name := validation.Trim(req.Name); name != "" {
		signup.Name = &name
	}
	return signup
}

// NotificationName is the sender name used when relaying the signup to the inbox.
func NotificationName(signup *models.WaitlistSignup) string {
	if signup.Name != nil {
		return *signup.Name
	}
	return "Waitlist"
}

func NotificationMessage(signup *models.WaitlistSignup) string {
	return fmt.Sprintf("Waitlist signup from landing: %s", signup.Email)
}
