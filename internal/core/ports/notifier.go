package ports

import "context"

// Notification kinds dispatched by the approval flow.
const (
	NotificationWelcome  = "welcome"
	NotificationApproved = "approved"
)

// NotificationInput is the DTO passed from services to the dispatcher.
type NotificationInput struct {
	Recipient string
	Kind      string
	Subject   string
	Body      string
}

// Notifier delivers a single notification. Implementations are consumed
// by the dispatcher workers; delivery is best-effort with no guarantee
// relative to the triggering request.
type Notifier interface {
	Send(ctx context.Context, n NotificationInput) error
}
