package partner

const (
	MsgMissingFields  = "Venue name, contact name, and email are required"
	MsgInvalidEmail   = "Valid email is required"
	MsgInvalidPayload = "Invalid partner application"
	MsgSubmitFailed   = "Failed to submit partner application"
)

const NotificationJob = "partner_relay"
