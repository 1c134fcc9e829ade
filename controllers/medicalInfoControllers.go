package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mcspirou6/hackaton-mrc-sub001/configuration"
	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

// SaveMedicalInfo creates or updates the clinical summary of a patient.
// The CKD stage is always recomputed from the submitted GFR.
func SaveMedicalInfo(c *gin.Context) {
	var info models.MedicalInfo
	if err := c.BindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if patient exists
	var patient models.Patient
	if err := configuration.DB.Where("patient_id = ?", info.PatientID).First(&patient).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid patient ID"})
		return
	}

	info.CKDStage = models.CKDStageFromGFR(info.GFR)

	var existing models.MedicalInfo
	err := configuration.DB.Where("patient_id = ?", info.PatientID).First(&existing).Error
	if err == nil {
		info.MedicalInfoID = existing.MedicalInfoID
		if err := configuration.DB.Model(&existing).Updates(&info).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medical info"})
			return
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := configuration.DB.Create(&info).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save medical info"})
			return
		}
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save medical info"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Medical info saved successfully",
		"data":    info,
	})
}

// GetMedicalInfo retrieves the clinical summary of a patient
func GetMedicalInfo(c *gin.Context) {
	patientID := c.Param("id")

	var info models.MedicalInfo
	if err := configuration.DB.Where("patient_id = ?", patientID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No medical info for this patient"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medical info"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"data":   info,
	})
}
