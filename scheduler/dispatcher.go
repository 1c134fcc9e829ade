package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

// Dispatcher runs one reminder tick at a time. It is stateless between
// ticks; the only persisted effect besides the emails themselves is the
// reminder-sent flag on each processed appointment.
type Dispatcher struct {
	store  AppointmentSource
	mailer ReminderMailer
	log    *zap.Logger
	cfg    Config
}

func NewDispatcher(store AppointmentSource, mailer ReminderMailer, log *zap.Logger, cfg Config) *Dispatcher {
	return &Dispatcher{
		store:  store,
		mailer: mailer,
		log:    log,
		cfg:    cfg.withDefaults(),
	}
}

// Run processes a single tick against the current clock. The returned error
// is non-nil only when the selection query failed; per-appointment and
// per-recipient problems are logged and absorbed so one bad row never stalls
// the rest of the batch.
func (d *Dispatcher) Run(ctx context.Context) error {
	return d.RunAt(ctx, time.Now().In(d.cfg.Location))
}

// RunAt is Run with an explicit invocation instant.
func (d *Dispatcher) RunAt(ctx context.Context, now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("reminder tick panicked", zap.Any("panic", r))
			err = fmt.Errorf("reminder tick panicked: %v", r)
		}
	}()

	target := now.Add(d.cfg.LeadTime)
	from := target.Add(-d.cfg.Window)
	to := target.Add(d.cfg.Window)

	due, queryErr := d.store.AppointmentsDueBetween(ctx, from, to)
	if queryErr != nil {
		d.log.Error("querying due appointments failed",
			zap.Time("target", target),
			zap.Error(queryErr))
		return fmt.Errorf("querying due appointments: %w", queryErr)
	}

	for _, appt := range due {
		d.process(ctx, appt)
	}

	d.log.Info("all appointment reminders processed",
		zap.Time("target", target),
		zap.Int("matched", len(due)))
	return nil
}

// process handles one matched appointment: resolve both contacts, send to
// whichever resolved, then flag the row so the widened matching window does
// not produce duplicates on later ticks.
func (d *Dispatcher) process(ctx context.Context, appt models.Appointment) {
	if doctor := d.resolveDoctor(ctx, appt); doctor != nil {
		body, err := renderReminder(doctorReminderTmpl, newReminderData(appt, doctor.FullName()))
		if err != nil {
			d.log.Error("rendering doctor reminder failed",
				zap.Uint("appointment_id", appt.AppointmentID),
				zap.Error(err))
		} else {
			d.deliver(ctx, doctor.Email, doctorReminderSubject, body, appt.AppointmentID, "doctor")
		}
	}

	if contact := d.resolvePatientContact(ctx, appt); contact != nil {
		body, err := renderReminder(patientReminderTmpl, newReminderData(appt, ""))
		if err != nil {
			d.log.Error("rendering patient reminder failed",
				zap.Uint("appointment_id", appt.AppointmentID),
				zap.Error(err))
		} else {
			d.deliver(ctx, contact.Email, patientReminderSubject, body, appt.AppointmentID, "patient")
		}
	}

	if err := d.store.MarkReminderSent(ctx, appt.AppointmentID); err != nil {
		d.log.Error("marking reminder as sent failed",
			zap.Uint("appointment_id", appt.AppointmentID),
			zap.Error(err))
	}
}

// resolveDoctor finds the doctor-role user the appointment points at. A
// lookup error is treated as a missing contact so the appointment's other
// recipient and the rest of the batch still go out.
func (d *Dispatcher) resolveDoctor(ctx context.Context, appt models.Appointment) *models.User {
	doctor, err := d.store.UserByIDAndRole(ctx, appt.DoctorID, models.RoleDoctor)
	if err != nil {
		d.log.Warn("no doctor email found for appointment",
			zap.Uint("appointment_id", appt.AppointmentID),
			zap.Uint("doctor_id", appt.DoctorID),
			zap.Error(err))
		return nil
	}
	if doctor == nil || doctor.Email == "" {
		d.log.Warn("no doctor email found for appointment",
			zap.Uint("appointment_id", appt.AppointmentID),
			zap.Uint("doctor_id", appt.DoctorID))
		return nil
	}
	return doctor
}

// resolvePatientContact finds the patient-role user whose first and last
// name match the linked patient exactly. The name join is not a foreign key:
// with duplicate full names the lowest user id wins and a warning is logged.
func (d *Dispatcher) resolvePatientContact(ctx context.Context, appt models.Appointment) *models.User {
	matches, err := d.store.UsersByNameAndRole(ctx, appt.Patient.FirstName, appt.Patient.LastName, models.RolePatient)
	if err != nil {
		d.log.Warn("no patient email found for appointment",
			zap.Uint("appointment_id", appt.AppointmentID),
			zap.String("patient_name", appt.Patient.FullName()),
			zap.Error(err))
		return nil
	}
	if len(matches) == 0 {
		d.log.Warn("no patient email found for appointment",
			zap.Uint("appointment_id", appt.AppointmentID),
			zap.String("patient_name", appt.Patient.FullName()))
		return nil
	}
	if len(matches) > 1 {
		d.log.Warn("ambiguous patient contact, using lowest user id",
			zap.Uint("appointment_id", appt.AppointmentID),
			zap.String("patient_name", appt.Patient.FullName()),
			zap.Int("matches", len(matches)),
			zap.Uint("chosen_user_id", matches[0].UserID))
	}

	contact := matches[0]
	if contact.Email == "" {
		d.log.Warn("no patient email found for appointment",
			zap.Uint("appointment_id", appt.AppointmentID),
			zap.String("patient_name", appt.Patient.FullName()))
		return nil
	}
	return &contact
}

// deliver sends one reminder under the per-send timeout
func (d *Dispatcher) deliver(ctx context.Context, to, subject, body string, appointmentID uint, recipient string) {
	sendCtx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	defer cancel()

	if err := d.mailer.Send(sendCtx, to, subject, body); err != nil {
		d.log.Error("reminder delivery failed",
			zap.Uint("appointment_id", appointmentID),
			zap.String("recipient", recipient),
			zap.String("to", to),
			zap.Error(err))
		return
	}

	d.log.Info("reminder sent",
		zap.Uint("appointment_id", appointmentID),
		zap.String("recipient", recipient),
		zap.String("to", to))
}
