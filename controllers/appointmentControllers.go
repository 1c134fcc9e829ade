package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mcspirou6/hackaton-mrc-sub001/configuration"
	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

// BookAppointment creates an appointment for a patient with a doctor
func BookAppointment(c *gin.Context) {
	var booking models.Appointment
	if err := c.BindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate the wall-clock time of day
	if _, err := time.Parse(models.TimeOfDayLayout, booking.AppointmentTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment time, expected HH:MM:SS"})
		return
	}

	// Check if the appointment instant is in the past
	scheduledAt, err := booking.ScheduledAt(time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment date or time"})
		return
	}
	if scheduledAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment date cannot be in the past"})
		return
	}

	// Check if the doctor exists
	var doctor models.User
	if err := configuration.DB.Where("user_id = ? AND role = ?", booking.DoctorID, models.RoleDoctor).First(&doctor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	// Check if the patient exists
	var patient models.Patient
	if err := configuration.DB.Where("patient_id = ?", booking.PatientID).First(&patient).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wrong patient ID"})
		return
	}

	// Check for an existing appointment with the same doctor, date and time.
	// Several appointments may share an instant with different doctors.
	var existingAppointment models.Appointment
	err = configuration.DB.Where(
		"doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status <> ?",
		booking.DoctorID, booking.AppointmentDate, booking.AppointmentTime, models.AppointmentCancelled,
	).First(&existingAppointment).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Another appointment has been already booked for the same date and time with the doctor"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check for existing appointment"})
		return
	}

	// Create the appointment
	booking.Status = models.AppointmentScheduled
	booking.ReminderSent = false
	if err := configuration.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment booked successfully",
		"Data":    booking,
	})
}

// CancelAppointment marks an appointment as cancelled
func CancelAppointment(c *gin.Context) {
	id := c.Param("id")

	var appointment models.Appointment
	if err := configuration.DB.Where("appointment_id = ?", id).First(&appointment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	if appointment.Status == models.AppointmentCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment is already cancelled"})
		return
	}

	if err := configuration.DB.Model(&appointment).Update("status", models.AppointmentCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment cancelled successfully",
	})
}

// GetAppointmentHistory lists the appointments of a patient
func GetAppointmentHistory(c *gin.Context) {
	patientID := c.Param("id")

	var appointments []models.Appointment
	if err := configuration.DB.Where("patient_id = ?", patientID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment history fetched successfully",
		"data":    appointments,
	})
}

// GetDoctorAppointmentsByDate lists a doctor's appointments on a given date
func GetDoctorAppointmentsByDate(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	dateStr := c.Query("date")

	// Parse date string into time.Time object
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	var appointments []models.Appointment
	if err := configuration.DB.Preload("Patient").
		Where("doctor_id = ? AND appointment_date = ?", doctorID, date).
		Order("appointment_time ASC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointments fetched successfully",
		"date":    dateStr,
		"data":    appointments,
	})
}
