package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridHost = "https://api.sendgrid.com"

// SendGridSender implements Sender with the SendGrid v3 mail API.
type SendGridSender struct {
	apiKey string
	host   string
}

// NewSendGrid creates a SendGrid sender. An empty key is passed through and
// rejected by SendGrid.
func NewSendGrid(apiKey string) *SendGridSender {
	return &SendGridSender{apiKey: apiKey, host: sendGridHost}
}

// WithHost returns a copy that talks to host instead of api.sendgrid.com.
func (s *SendGridSender) WithHost(host string) *SendGridSender {
	c := *s
	if strings.TrimSpace(host) != "" {
		c.host = strings.TrimRight(host, "/")
	}
	return &c
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	m := mail.NewSingleEmail(mail.NewEmail("", msg.From), msg.Subject, mail.NewEmail("", msg.To), "", msg.HTML)

	req := sendgrid.GetRequest(s.apiKey, "/v3/mail/send", s.host)
	req.Method = "POST"
	req.Body = mail.GetRequestBody(m)
	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return Receipt{Provider: "sendgrid"}, fmt.Errorf("sendgrid: failed to send email: %w", err)
	}
	r := Receipt{Provider: "sendgrid", StatusCode: resp.StatusCode}
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		r.MessageID = ids[0]
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return r, fmt.Errorf("sendgrid: send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}
	return r, nil
}
