package contact

import (
	"fmt"
	"html"
	"strings"

	"github.com/nataa-app/landing-gateway/internal/models"
	"github.com/nataa-app/landing-gateway/pkg/mailer"
	"github.com/nataa-app/landing-gateway/pkg/validation"
)

type SubmitContactRequest struct {
	Name    string `json:"name" binding:"max=200"`
	Email   string `json:"email" binding:"max=320"`
	Message string `json:"message" binding:"max=5000"`
}

func (r *SubmitContactRequest) Normalize() {
	r.Name = validation.Trim(r.Name)
	r.Email = validation.Trim(r.Email)
	r.Message = validation.Trim(r.Message)
}

func (r *SubmitContactRequest) HasRequiredFields() bool {
	return r.Name != "" && r.Email != "" && r.Message != ""
}

func ToContactMessageModel(req *SubmitContactRequest) *models.ContactMessage {
	if req == nil {
		return nil
	}
	return &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Source:  models.SourceLanding,
	}
}

// ToNotificationEmail builds the copy sent to the operations inbox. Replies go
// straight to the submitter.
func ToNotificationEmail(inbox string, req *SubmitContactRequest) mailer.Message {
	return mailer.Message{
		To:      inbox,
		ReplyTo: req.Email,
		Subject: "Contact form: " + req.Name,
		Text:    fmt.Sprintf("%s\n\nFrom: %s <%s>", req.Message, req.Name, req.Email),
		HTML: fmt.Sprintf("<p>%s</p><p>From: %s &lt;%s&gt;</p>",
			strings.ReplaceAll(html.EscapeString(req.Message), "\n", "<br>"),
			html.EscapeString(req.Name),
			html.EscapeString(req.Email),
		),
	}
}
