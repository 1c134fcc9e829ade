package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduledAt(t *testing.T) {
	appt := Appointment{
		AppointmentDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:30:15",
	}

	at, err := appt.ScheduledAt(time.UTC)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 30, 15, 0, time.UTC), at)
}

func TestScheduledAtIgnoresTimePartOfDate(t *testing.T) {
	// Some drivers hand back the date column with a non-midnight time
	appt := Appointment{
		AppointmentDate: time.Date(2025, 6, 1, 23, 45, 0, 0, time.UTC),
		AppointmentTime: "09:00:00",
	}

	at, err := appt.ScheduledAt(time.UTC)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), at)
}

func TestScheduledAtRejectsMalformedTime(t *testing.T) {
	appt := Appointment{
		AppointmentDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "9h30",
	}

	_, err := appt.ScheduledAt(time.UTC)
	assert.Error(t, err)
}
