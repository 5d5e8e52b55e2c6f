package partner

import (
	"fmt"

	"github.com/nataa-app/landing-gateway/internal/models"
	"github.com/nataa-app/landing-gateway/pkg/validation"
)

type ApplyRequest struct {
	VenueName   string `json:"venueName" binding:"max=200"`
	ContactName string `json:"contactName" binding:"max=200"`
	Email       string `json:"email" binding:"max=320"`
	City        string `json:"city" binding:"max=200"`
	Role        string `json:"role" binding:"omitempty,oneof=Owner Manager Promoter"`
}

func (r *ApplyRequest) Normalize() {
	r.VenueName = validation.Trim(r.VenueName)
	r.ContactName = validation.Trim(r.ContactName)
	r.Email = validation.Trim(r.Email)
	r.City = validation.Trim(r.City)
	if r.Role == "" {
		r.Role = models.PartnerRoleOwner
	}
}

func (r *ApplyRequest) HasRequiredFields() bool {
	return r.VenueName != "" && r.ContactName != "" && r.Email != ""
}

func ToPartnerApplicationModel(req *ApplyRequest) *models.PartnerApplication {
	if req == nil {
		return nil
	}
	return &models.PartnerApplication{
		VenueName:   req.VenueName,
		ContactName: req.ContactName,
		Email:       validation.NormalizeEmail(req.Email),
		City:        req.City,
		Role:        req.Role,
	}
}

func NotificationName(app *models.PartnerApplication) string {
	return validation.FirstNonEmpty(app.ContactName, app.VenueName)
}

func NotificationMessage(app *models.PartnerApplication) string {
	return fmt.Sprintf("Venue partner signup: %s, city: %s, role: %s, contact: %s <%s>",
		app.VenueName, app.City, app.Role, app.ContactName, app.Email)
}
