package queue

import (
	"context"

	"github.com/shoporbit/shop-api/internal/usecase"
)

// Mailer delivers a single message over SMTP.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// SendMailHandler consumes queued mail jobs and hands them to the SMTP
// client. Designed to be wrapped in JSONHandler[usecase.MailJob].
type SendMailHandler struct {
	mailer Mailer
}

func NewSendMailHandler(m Mailer) *SendMailHandler {
	return &SendMailHandler{mailer: m}
}

func (h *SendMailHandler) HandleSend(ctx context.Context, job usecase.MailJob) error {
	return h.mailer.Send(ctx, job.To, job.Subject, job.HTML)
}
