package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// ResendSender implements Sender using the Resend API.
type ResendSender struct {
	client *resend.Client
}

func NewResend(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	resp, err := s.client.Emails.SendWithContext(ctx, resendRequest(msg))
	if err != nil {
		return Receipt{Provider: "resend"}, fmt.Errorf("resend: failed to send email: %w", err)
	}
	return Receipt{Provider: "resend", MessageID: resp.Id}, nil
}

func resendRequest(msg Message) *resend.SendEmailRequest {
	return &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
}
