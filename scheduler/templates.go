package scheduler

import (
	"bytes"
	"text/template"

	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

const (
	doctorReminderSubject  = "Upcoming appointment reminder"
	patientReminderSubject = "Reminder: your medical appointment"
)

var doctorReminderTmpl = template.Must(template.New("doctorReminder").Parse(
	`Dear Dr. {{.DoctorName}},

This is a reminder of an upcoming appointment.

Patient: {{.PatientName}}
Date: {{.Date}}
Time: {{.Time}}
Type: {{.Type}}
Status: {{.Status}}

MRC medical records`))

var patientReminderTmpl = template.Must(template.New("patientReminder").Parse(
	`Dear {{.PatientName}},

This is a reminder of your upcoming medical appointment.

Date: {{.Date}}
Time: {{.Time}}
Type: {{.Type}}
Status: {{.Status}}

Please arrive a few minutes early. If you cannot attend, contact the
clinic to reschedule.

MRC medical records`))

type reminderData struct {
	DoctorName  string
	PatientName string
	Date        string
	Time        string
	Type        string
	Status      string
}

func newReminderData(appt models.Appointment, doctorName string) reminderData {
	return reminderData{
		DoctorName:  doctorName,
		PatientName: appt.Patient.FullName(),
		Date:        appt.AppointmentDate.Format("2006-01-02"),
		Time:        appt.AppointmentTime,
		Type:        appt.Type,
		Status:      appt.Status,
	}
}

func renderReminder(tmpl *template.Template, data reminderData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
