package scheduler

import (
	"os"
	"time"
)

// Config tunes the reminder dispatcher. Zero values fall back to defaults.
type Config struct {
	// LeadTime is how far ahead of an appointment its reminders go out.
	// The product brief asks for fifteen minutes but the service has always
	// run with one; it is a setting rather than a constant so operators can
	// pick either without a deploy.
	LeadTime time.Duration

	// Window is the inclusive half-width of the matching interval around
	// the target instant, so a tick that fires late still catches its
	// appointments.
	Window time.Duration

	// SendTimeout bounds a single delivery; a send that exceeds it counts
	// as failed for that recipient only.
	SendTimeout time.Duration

	// Location is the wall-clock zone appointment times are stored in.
	Location *time.Location
}

const (
	defaultLeadTime    = time.Minute
	defaultWindow      = 30 * time.Second
	defaultSendTimeout = 10 * time.Second
)

func (c Config) withDefaults() Config {
	if c.LeadTime <= 0 {
		c.LeadTime = defaultLeadTime
	}
	if c.Window <= 0 {
		c.Window = defaultWindow
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = defaultSendTimeout
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	return c
}

// ConfigFromEnv reads REMINDER_LEAD, REMINDER_WINDOW and
// REMINDER_SEND_TIMEOUT as Go durations, keeping defaults for anything
// unset or unparseable.
func ConfigFromEnv() Config {
	var cfg Config
	if d, err := time.ParseDuration(os.Getenv("REMINDER_LEAD")); err == nil {
		cfg.LeadTime = d
	}
	if d, err := time.ParseDuration(os.Getenv("REMINDER_WINDOW")); err == nil {
		cfg.Window = d
	}
	if d, err := time.ParseDuration(os.Getenv("REMINDER_SEND_TIMEOUT")); err == nil {
		cfg.SendTimeout = d
	}
	return cfg.withDefaults()
}
