package models

import "time"

// Appointment statuses
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// TimeOfDayLayout is the wall-clock format of AppointmentTime
const TimeOfDayLayout = "15:04:05"

type Appointment struct {
	AppointmentID   uint      `gorm:"primaryKey" json:"appointment_id"`
	PatientID       uint      `json:"patient_id"`
	DoctorID        uint      `json:"doctor_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	ReminderSent    bool      `json:"reminder_sent"`
	Patient         Patient   `gorm:"foreignKey:PatientID;references:PatientID" json:"patient,omitempty"`
}

// ScheduledAt combines the stored calendar date and wall-clock time of day
// into a single instant in loc.
func (a *Appointment) ScheduledAt(loc *time.Location) (time.Time, error) {
	t, err := time.Parse(TimeOfDayLayout, a.AppointmentTime)
	if err != nil {
		return time.Time{}, err
	}
	d := a.AppointmentDate
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}
