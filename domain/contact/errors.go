package contact

// Messages returned to the landing page forms.
const (
	MsgMissingFields  = "Name, email, and message are required"
	MsgInvalidEmail   = "Valid email is required"
	MsgInvalidPayload = "Invalid contact submission"
	MsgSubmitFailed   = "Failed to submit"
)
