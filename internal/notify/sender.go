package notify

import (
	"context"
	"log/slog"
)

// Message is a fully prepared email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Receipt is what the provider reported for an accepted (or rejected) message.
type Receipt struct {
	Provider   string
	StatusCode int    // HTTP status, when the provider exposes one
	MessageID  string // provider message ID, when the provider returns one
}

// Sender abstracts an email provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) (Receipt, error) {
	slog.Info("notify: dry run, email not sent",
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"html_bytes", len(msg.HTML),
	)
	return Receipt{Provider: "log"}, nil
}
