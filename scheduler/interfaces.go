package scheduler

import (
	"context"
	"time"

	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

// AppointmentSource is the read side of the store the reminder job depends
// on. Implementations must eager-load the linked patient of each appointment.
type AppointmentSource interface {
	// AppointmentsDueBetween returns appointments whose scheduled instant
	// falls within [from, to] inclusive and whose reminder has not been
	// sent yet.
	AppointmentsDueBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error)

	// UserByIDAndRole returns the user with the given id and role tag,
	// or nil when no such user exists.
	UserByIDAndRole(ctx context.Context, id uint, role string) (*models.User, error)

	// UsersByNameAndRole returns all users with the given role tag whose
	// first and last name match exactly, ordered by ascending id.
	UsersByNameAndRole(ctx context.Context, firstName, lastName, role string) ([]models.User, error)

	// MarkReminderSent flags an appointment so later ticks skip it.
	MarkReminderSent(ctx context.Context, appointmentID uint) error
}

// ReminderMailer delivers one reminder message to one address.
type ReminderMailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
