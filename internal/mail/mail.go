// Package mail sends restock notification emails. Three transports exist:
// direct SMTP, an HTTP mail relay, and a log-only fallback used when neither
// is configured.
package mail

import (
	"context"
	"log/slog"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
	Urgent  bool
}

// Transport delivers messages. Send returns an error when delivery failed;
// callers must not record a notification receipt in that case.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// LogTransport logs messages instead of delivering them. It reports success,
// so flows behave as if the email went out ("would have sent").
type LogTransport struct{}

// Send implements Transport.
func (LogTransport) Send(_ context.Context, msg Message) error {
	slog.Info("would have sent email (no transport configured)",
		"to", msg.To, "subject", msg.Subject, "urgent", msg.Urgent)
	return nil
}
