package contact

import (
	"context"

	"github.com/nataa-app/landing-gateway/pkg/notify"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, name string, job notify.Job) bool
}

// RelayNotifier forwards summaries from other forms to the contact path
// without making the caller wait. Outcomes are only logged by the dispatcher.
type RelayNotifier struct {
	dispatcher Dispatcher
	service    ContactService
}

func NewRelayNotifier(dispatcher Dispatcher, service ContactService) *RelayNotifier {
	return &RelayNotifier{dispatcher: dispatcher, service: service}
}

func (n *RelayNotifier) Notify(ctx context.Context, job, name, email, message string) {
	n.dispatcher.Dispatch(ctx, job, func(jobCtx context.Context) error {
		return n.service.Relay(jobCtx, name, email, message)
	})
}
