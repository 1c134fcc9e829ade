package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTwilioConfigured(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTHTOKEN", "token")
	assert.True(t, twilioConfigured())
}

func TestTwilioConfiguredFallsBackWithoutCredentials(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	t.Setenv("TWILIO_AUTHTOKEN", "")
	assert.False(t, twilioConfigured())

	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	assert.False(t, twilioConfigured(), "both credentials are required for SMS verification")
}
