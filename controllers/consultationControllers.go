package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mcspirou6/hackaton-mrc-sub001/configuration"
	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

// AddConsultation records a consultation performed by the logged-in doctor
func AddConsultation(c *gin.Context) {
	var consultation models.Consultation
	if err := c.BindJSON(&consultation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctorID, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}
	consultation.DoctorID = doctorID.(uint)

	// Check if patient exists
	var patient models.Patient
	if err := configuration.DB.Where("patient_id = ?", consultation.PatientID).First(&patient).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid patient ID"})
		return
	}

	if consultation.Date.IsZero() {
		consultation.Date = time.Now()
	}

	if err := configuration.DB.Create(&consultation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create consultation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Consultation recorded successfully",
		"data":    consultation,
	})
}

// GetPatientConsultations lists the consultations of a patient
func GetPatientConsultations(c *gin.Context) {
	patientID := c.Param("id")

	var consultations []models.Consultation
	if err := configuration.DB.Where("patient_id = ?", patientID).
		Order("date DESC").
		Find(&consultations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve consultations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Consultations fetched successfully",
		"data":    consultations,
	})
}

// UpdateConsultation lets the doctor amend diagnosis or notes
func UpdateConsultation(c *gin.Context) {
	id := c.Param("id")

	var consultation models.Consultation
	if err := configuration.DB.Where("id = ?", id).First(&consultation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		return
	}

	var input models.Consultation
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := configuration.DB.Model(&consultation).Updates(map[string]interface{}{
		"reason":    input.Reason,
		"diagnosis": input.Diagnosis,
		"notes":     input.Notes,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update consultation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Consultation updated successfully",
		"data":    consultation,
	})
}
