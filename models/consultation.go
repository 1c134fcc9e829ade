package models

import (
	"time"

	"gorm.io/gorm"
)

type Consultation struct {
	gorm.Model
	PatientID uint      `json:"patient_id"`
	DoctorID  uint      `json:"doctor_id"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason"`
	Diagnosis string    `json:"diagnosis"`
	Notes     string    `json:"notes"`
}
