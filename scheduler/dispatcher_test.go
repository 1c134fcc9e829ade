package scheduler

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

// -- Fakes --

type fakeStore struct {
	appointments []models.Appointment
	users        []models.User
	queryErr     error
	queryPanics  bool
	markErr      error
	marked       []uint
}

func (s *fakeStore) AppointmentsDueBetween(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	if s.queryPanics {
		panic("store blew up")
	}
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	var due []models.Appointment
	for _, appt := range s.appointments {
		if appt.ReminderSent {
			continue
		}
		at, err := appt.ScheduledAt(from.Location())
		if err != nil {
			continue
		}
		if !at.Before(from) && !at.After(to) {
			due = append(due, appt)
		}
	}
	return due, nil
}

func (s *fakeStore) UserByIDAndRole(_ context.Context, id uint, role string) (*models.User, error) {
	for _, user := range s.users {
		if user.UserID == id && user.Role == role {
			user := user
			return &user, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) UsersByNameAndRole(_ context.Context, firstName, lastName, role string) ([]models.User, error) {
	var matches []models.User
	for _, user := range s.users {
		if user.FirstName == firstName && user.LastName == lastName && user.Role == role {
			matches = append(matches, user)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].UserID < matches[j].UserID })
	return matches, nil
}

func (s *fakeStore) MarkReminderSent(_ context.Context, appointmentID uint) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.marked = append(s.marked, appointmentID)
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent    []sentMail
	failFor map[string]error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// -- Fixtures --

func newTestDispatcher(store *fakeStore, mailer *fakeMailer) (*Dispatcher, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := NewDispatcher(store, mailer, zap.New(core), Config{
		LeadTime: time.Minute,
		Window:   30 * time.Second,
		Location: time.UTC,
	})
	return dispatcher, logs
}

func fixtureAppointment() models.Appointment {
	return models.Appointment{
		AppointmentID:   7,
		PatientID:       12,
		DoctorID:        3,
		AppointmentDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:00:00",
		Type:            "consultation",
		Status:          models.AppointmentScheduled,
		Patient: models.Patient{
			PatientID: 12,
			FirstName: "Aïssatou",
			LastName:  "Diallo",
		},
	}
}

func fixtureDoctor() models.User {
	return models.User{
		UserID:    3,
		FirstName: "Mamadou",
		LastName:  "Diop",
		Email:     "dr.diop@mrc-app.com",
		Role:      models.RoleDoctor,
	}
}

func fixturePatientAccount() models.User {
	return models.User{
		UserID:    20,
		FirstName: "Aïssatou",
		LastName:  "Diallo",
		Email:     "a.diallo@patient.com",
		Role:      models.RolePatient,
	}
}

// now one lead time before the fixture appointment
var tickInstant = time.Date(2025, 6, 1, 8, 59, 0, 0, time.UTC)

// -- Tests --

func TestRunWithNoMatchesCompletesCleanly(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{}
	dispatcher, logs := newTestDispatcher(store, mailer)

	err := dispatcher.RunAt(context.Background(), tickInstant)

	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
	assert.Equal(t, 1, logs.FilterMessage("all appointment reminders processed").Len())
}

func TestRunSendsBothReminders(t *testing.T) {
	store := &fakeStore{
		appointments: []models.Appointment{fixtureAppointment()},
		users:        []models.User{fixtureDoctor(), fixturePatientAccount()},
	}
	mailer := &fakeMailer{}
	dispatcher, logs := newTestDispatcher(store, mailer)

	err := dispatcher.RunAt(context.Background(), tickInstant)

	require.NoError(t, err)
	require.Len(t, mailer.sent, 2)

	doctorMail := mailer.sent[0]
	assert.Equal(t, "dr.diop@mrc-app.com", doctorMail.To)
	assert.Equal(t, doctorReminderSubject, doctorMail.Subject)
	for _, want := range []string{"Aïssatou Diallo", "2025-06-01", "09:00:00", "consultation", "scheduled"} {
		assert.True(t, strings.Contains(doctorMail.Body, want), "doctor body should contain %q", want)
	}

	patientMail := mailer.sent[1]
	assert.Equal(t, "a.diallo@patient.com", patientMail.To)
	assert.Equal(t, patientReminderSubject, patientMail.Subject)
	for _, want := range []string{"Aïssatou Diallo", "2025-06-01", "09:00:00", "consultation", "scheduled"} {
		assert.True(t, strings.Contains(patientMail.Body, want), "patient body should contain %q", want)
	}

	assert.Equal(t, 2, logs.FilterMessage("reminder sent").Len())
	assert.Equal(t, 1, logs.FilterMessage("all appointment reminders processed").Len())
	assert.Equal(t, []uint{7}, store.marked)
}

func TestMissingDoctorEmailSkipsDoctorOnly(t *testing.T) {
	doctor := fixtureDoctor()
	doctor.Email = ""
	store := &fakeStore{
		appointments: []models.Appointment{fixtureAppointment()},
		users:        []models.User{doctor, fixturePatientAccount()},
	}
	mailer := &fakeMailer{}
	dispatcher, logs := newTestDispatcher(store, mailer)

	require.NoError(t, dispatcher.RunAt(context.Background(), tickInstant))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a.diallo@patient.com", mailer.sent[0].To)

	warnings := logs.FilterMessage("no doctor email found for appointment").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, zap.WarnLevel, warnings[0].Level)
	assert.Equal(t, uint64(7), warnings[0].ContextMap()["appointment_id"])
}

func TestMissingDoctorUserSkipsDoctorOnly(t *testing.T) {
	store := &fakeStore{
		appointments: []models.Appointment{fixtureAppointment()},
		users:        []models.User{fixturePatientAccount()},
	}
	mailer := &fakeMailer{}
	dispatcher, logs := newTestDispatcher(store, mailer)

	require.NoError(t, dispatcher.RunAt(context.Background(), tickInstant))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a.diallo@patient.com", mailer.sent[0].To)
	assert.Equal(t, 1, logs.FilterMessage("no doctor email found for appointment").Len())
}

func TestMissingPatientAccountSkipsPatientOnly(t *testing.T) {
	store := &fakeStore{
		appointments: []models.Appointment{fixtureAppointment()},
		users:        []models.User{fixtureDoctor()},
	}
	mailer := &fakeMailer{}
	dispatcher, logs := newTestDispatcher(store, mailer)

	require.NoError(t, dispatcher.RunAt(context.Background(), tickInstant))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "dr.diop@mrc-app.com", mailer.sent[0].To)

	warnings := logs.FilterMessage("no patient email found for appointment").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, uint64(7), warnings[0].ContextMap()["appointment_id"])
	assert.Equal(t, 1, logs.FilterMessage("all appointment reminders processed").Len())
}

func TestAmbiguousPatientAccountsUsesLowestID(t *testing.T) {
	duplicate := fixturePatientAccount()
	duplicate.UserID = 21
	duplicate.Email = "other.diallo@patient.com"
	store := &fakeStore{
		appointments: []models.Appointment{fixtureAppointment()},
		users:        []models.User{fixtureDoctor(), duplicate, fixturePatientAccount()},
	}
	mailer := &fakeMailer{}
	dispatcher, logs := newTestDispatcher(store, mailer)

	require.NoError(t, dispatcher.RunAt(context.Background(), tickInstant))

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "a.diallo@patient.com", mailer.sent[1].To)

	ambiguity := logs.FilterMessage("ambiguous patient contact, using lowest user id").All()
	require.Len(t, ambiguity, 1)
	assert.Equal(t, zap.WarnLevel, ambiguity[0].Level)
	assert.Equal(t, uint64(20), ambiguity[0].ContextMap()["chosen_user_id"])
}

func TestDeliveryFailureDoesNotBlockOthers(t *testing.T) {
	second := fixtureAppointment()
	second.AppointmentID = 8
	second.AppointmentTime = "09:00:10"

	store := &fakeStore{
		appointments: []models.Appointment{fixtureAppointment(), second},
		users:        []models.User{fixtureDoctor(), fixturePatientAccount()},
	}
	mailer := &fakeMailer{failFor: map[string]error{
		"dr.diop@mrc-app.com": errors.New("smtp connection refused"),
	}}
	dispatcher, logs := newTestDispatcher(store, mailer)

	require.NoError(t, dispatcher.RunAt(context.Background(), tickInstant))

	// Both patient sends went through despite both doctor sends failing
	require.Len(t, mailer.sent, 2)
	for _, sent := range mailer.sent {
		assert.Equal(t, "a.diallo@patient.com", sent.To)
	}

	failures := logs.FilterMessage("reminder delivery failed").All()
	require.Len(t, failures, 2)
	assert.Equal(t, zap.ErrorLevel, failures[0].Level)
	assert.ElementsMatch(t, []uint{7, 8}, store.marked)
	assert.Equal(t, 1, logs.FilterMessage("all appointment reminders processed").Len())
}

// hangingMailer blocks selected recipients until the per-send context
// expires, the way a stalled SMTP conversation would.
type hangingMailer struct {
	hangFor map[string]bool
	sent    []sentMail
}

func (m *hangingMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.hangFor[to] {
		<-ctx.Done()
		return ctx.Err()
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func TestSendTimeoutFailsOnlyTheStalledRecipient(t *testing.T) {
	second := fixtureAppointment()
	second.AppointmentID = 8
	second.AppointmentTime = "09:00:10"

	store := &fakeStore{
		appointments: []models.Appointment{fixtureAppointment(), second},
		users:        []models.User{fixtureDoctor(), fixturePatientAccount()},
	}
	mailer := &hangingMailer{hangFor: map[string]bool{"dr.diop@mrc-app.com": true}}
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := NewDispatcher(store, mailer, zap.New(core), Config{
		LeadTime:    time.Minute,
		Window:      30 * time.Second,
		SendTimeout: 20 * time.Millisecond,
		Location:    time.UTC,
	})

	require.NoError(t, dispatcher.RunAt(context.Background(), tickInstant))

	// Both doctor sends stalled past the timeout; both patient sends and
	// the completion signal were unaffected
	require.Len(t, mailer.sent, 2)
	for _, sent := range mailer.sent {
		assert.Equal(t, "a.diallo@patient.com", sent.To)
	}

	failures := logs.FilterMessage("reminder delivery failed").All()
	require.Len(t, failures, 2)
	assert.Equal(t, zap.ErrorLevel, failures[0].Level)
	assert.Equal(t, "dr.diop@mrc-app.com", failures[0].ContextMap()["to"])
	assert.ElementsMatch(t, []uint{7, 8}, store.marked)
	assert.Equal(t, 1, logs.FilterMessage("all appointment reminders processed").Len())
}

func TestStoreFailureFailsTheTick(t *testing.T) {
	store := &fakeStore{queryErr: errors.New("connection reset")}
	mailer := &fakeMailer{}
	dispatcher, logs := newTestDispatcher(store, mailer)

	err := dispatcher.RunAt(context.Background(), tickInstant)

	require.Error(t, err)
	assert.Empty(t, mailer.sent)
	assert.Equal(t, 1, logs.FilterMessage("querying due appointments failed").Len())
	assert.Equal(t, 0, logs.FilterMessage("all appointment reminders processed").Len())
}

func TestLateTickStillMatchesWithinWindow(t *testing.T) {
	store := &fakeStore{
		appointments: []models.Appointment{fixtureAppointment()},
		users:        []models.User{fixtureDoctor(), fixturePatientAccount()},
	}
	mailer := &fakeMailer{}
	dispatcher, _ := newTestDispatcher(store, mailer)

	// 20 seconds late: target is 09:00:20, the 09:00:00 appointment is
	// still inside the +-30s window
	lateTick := tickInstant.Add(20 * time.Second)
	require.NoError(t, dispatcher.RunAt(context.Background(), lateTick))

	assert.Len(t, mailer.sent, 2)
}

func TestAlreadySentAppointmentIsSkipped(t *testing.T) {
	appt := fixtureAppointment()
	appt.ReminderSent = true
	store := &fakeStore{
		appointments: []models.Appointment{appt},
		users:        []models.User{fixtureDoctor(), fixturePatientAccount()},
	}
	mailer := &fakeMailer{}
	dispatcher, _ := newTestDispatcher(store, mailer)

	require.NoError(t, dispatcher.RunAt(context.Background(), tickInstant))

	assert.Empty(t, mailer.sent)
	assert.Empty(t, store.marked)
}

func TestAppointmentMarkedEvenWithoutContacts(t *testing.T) {
	store := &fakeStore{
		appointments: []models.Appointment{fixtureAppointment()},
	}
	mailer := &fakeMailer{}
	dispatcher, _ := newTestDispatcher(store, mailer)

	require.NoError(t, dispatcher.RunAt(context.Background(), tickInstant))

	assert.Empty(t, mailer.sent)
	assert.Equal(t, []uint{7}, store.marked)
}

func TestMarkSentFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{
		appointments: []models.Appointment{fixtureAppointment()},
		users:        []models.User{fixtureDoctor(), fixturePatientAccount()},
		markErr:      errors.New("update failed"),
	}
	mailer := &fakeMailer{}
	dispatcher, logs := newTestDispatcher(store, mailer)

	require.NoError(t, dispatcher.RunAt(context.Background(), tickInstant))

	assert.Len(t, mailer.sent, 2)
	assert.Equal(t, 1, logs.FilterMessage("marking reminder as sent failed").Len())
}

func TestPanicDoesNotEscapeTheTick(t *testing.T) {
	store := &fakeStore{queryPanics: true}
	mailer := &fakeMailer{}
	dispatcher, logs := newTestDispatcher(store, mailer)

	var err error
	require.NotPanics(t, func() {
		err = dispatcher.RunAt(context.Background(), tickInstant)
	})
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("reminder tick panicked").Len())
}
