// Package mailer provides the notification sinks consumed by the queue
// dispatcher. The log mailer is the default in development and in any
// deployment without an outbound mail relay.
package mailer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-system/internal/core/ports"
)

// LogMailer writes notifications to the structured log instead of
// delivering them. Satisfies ports.Notifier.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, n ports.NotificationInput) error {
	m.log.Info().
		Str("recipient", n.Recipient).
		Str("kind", n.Kind).
		Str("subject", n.Subject).
		Msg("notification dispatched")
	return nil
}
