package waitlist

const (
	MsgInvalidEmail   = "Valid email is required"
	MsgInvalidPayload = "Invalid waitlist signup"
	MsgAlreadyListed  = "You're already on the list"
	MsgSubmitFailed   = "Failed to join the waitlist"
)

// NotificationJob labels waitlist relays in the notification metrics.
const NotificationJob = "waitlist_relay"
