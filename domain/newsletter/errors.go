package newsletter

const (
	MsgInvalidEmail   = "Valid email is required"
	MsgInvalidPayload = "Invalid newsletter signup"
	MsgSubmitFailed   = "Failed to subscribe"
)
