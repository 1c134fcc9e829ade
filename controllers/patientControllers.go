package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mcspirou6/hackaton-mrc-sub001/configuration"
	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

// AddPatient creates a patient record
func AddPatient(c *gin.Context) {
	var patient models.Patient
	if err := c.BindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validate.Struct(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := configuration.DB.Create(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create patient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Patient created successfully",
		"data":    patient,
	})
}

// ViewPatients lists all patient records
func ViewPatients(c *gin.Context) {
	var patients []models.Patient
	if err := configuration.DB.Find(&patients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't get patients list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Patients list fetched successfully",
		"data":    patients,
	})
}

// SearchPatient retrieves one patient by id
func SearchPatient(c *gin.Context) {
	id := c.Param("id")

	var patient models.Patient
	if err := configuration.DB.Where("patient_id = ?", id).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch patient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"data":   patient,
	})
}

// UpdatePatient updates a patient record
func UpdatePatient(c *gin.Context) {
	id := c.Param("id")

	var patient models.Patient
	if err := configuration.DB.Where("patient_id = ?", id).First(&patient).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	var input models.Patient
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := configuration.DB.Model(&patient).Updates(input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update patient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Patient updated successfully",
		"data":    patient,
	})
}

// RemovePatient deletes a patient record
func RemovePatient(c *gin.Context) {
	id := c.Param("id")

	result := configuration.DB.Where("patient_id = ?", id).Delete(&models.Patient{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete patient"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Patient deleted successfully",
	})
}

// GetMyRecord resolves the logged-in patient account to its clinical record.
// The link is a name match against the patient table, not a foreign key.
func GetMyRecord(c *gin.Context) {
	userID, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Patient not authenticated"})
		return
	}

	var user models.User
	if err := configuration.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	var patient models.Patient
	if err := configuration.DB.Where("first_name = ? AND last_name = ?", user.FirstName, user.LastName).
		Order("patient_id ASC").First(&patient).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No clinical record matches this account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"data":   patient,
	})
}
