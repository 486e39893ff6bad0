package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"travel-trend-blogger/internal/metrics"
)

// ErrNoSender is returned when a Notifier has no provider to send with.
var ErrNoSender = errors.New("notify: no sender configured")

// Notifier emails generated posts from a fixed sender to a fixed recipient.
type Notifier struct {
	Sender Sender
	From   string
	To     string
	// Timeout bounds a single send; zero leaves ctx as is.
	Timeout time.Duration
}

func New(sender Sender, from, to string) *Notifier {
	return &Notifier{Sender: sender, From: from, To: to}
}

// NewSender builds the sender for a provider name: sendgrid, resend or log.
func NewSender(provider, sendGridKey, resendKey string) (Sender, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "sendgrid":
		return NewSendGrid(sendGridKey), nil
	case "resend":
		return NewResend(resendKey), nil
	case "log":
		return LogSender{}, nil
	default:
		return nil, fmt.Errorf("notify: unknown email provider %q", provider)
	}
}

var policy = bluemonday.UGCPolicy()

// HTMLBody renders plain-text content as an HTML body: the text is escaped
// so bracketed words survive, and line breaks become <br>.
func HTMLBody(content string) string {
	s := policy.Sanitize(html.EscapeString(content))
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}

// Notify sends one message. Failures are logged and returned; callers are
// free to ignore them.
func (n *Notifier) Notify(ctx context.Context, subject, content string) (Receipt, error) {
	if n.Sender == nil {
		err := ErrNoSender
		slog.Error("notify: failed to send email", "subject", subject, "err", err)
		metrics.Emails.WithLabelValues("error").Inc()
		return Receipt{}, err
	}
	if n.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}
	r, err := n.Sender.Send(ctx, Message{
		From:    n.From,
		To:      n.To,
		Subject: subject,
		HTML:    HTMLBody(content),
	})
	metrics.Emails.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		slog.Error("notify: failed to send email", "subject", subject, "provider", r.Provider, "status", r.StatusCode, "err", err)
		return r, err
	}
	slog.Info("notify: email sent", "subject", subject, "provider", r.Provider, "status", r.StatusCode, "message_id", r.MessageID)
	return r, nil
}
