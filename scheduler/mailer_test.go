package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailerReturnsTransportResult(t *testing.T) {
	var gotTo string
	mailer := smtpMailer{send: func(to, subject, body string) error {
		gotTo = to
		return nil
	}}

	err := mailer.Send(context.Background(), "dr.diop@mrc-app.com", "subject", "body")
	require.NoError(t, err)
	assert.Equal(t, "dr.diop@mrc-app.com", gotTo)

	mailer = smtpMailer{send: func(to, subject, body string) error {
		return errors.New("smtp: connection refused")
	}}
	assert.EqualError(t, mailer.Send(context.Background(), "dr.diop@mrc-app.com", "subject", "body"), "smtp: connection refused")
}

func TestSMTPMailerHonorsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	mailer := smtpMailer{send: func(to, subject, body string) error {
		<-release
		return nil
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := mailer.Send(ctx, "dr.diop@mrc-app.com", "subject", "body")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
