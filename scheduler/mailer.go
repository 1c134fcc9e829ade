package scheduler

import (
	"context"

	"github.com/mcspirou6/hackaton-mrc-sub001/mail"
)

// smtpMailer adapts the shared SMTP helper to the dispatcher. DialAndSend
// has no context support, so the call runs in a goroutine and the context
// deadline bounds the wait; a timed-out send counts as failed even if the
// transport later succeeds.
type smtpMailer struct {
	send func(to, subject, body string) error
}

func NewSMTPMailer() ReminderMailer {
	return smtpMailer{send: mail.Send}
}

func (m smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	done := make(chan error, 1)
	go func() {
		done <- m.send(to, subject, body)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
