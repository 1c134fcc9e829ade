package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcspirou6/hackaton-mrc-sub001/configuration"
	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

// AddImagingTest records an imaging test with its TNM classification.
// The stage group is derived, never accepted from the client.
func AddImagingTest(c *gin.Context) {
	var test models.ImagingTest
	if err := c.BindJSON(&test); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if patient exists
	var patient models.Patient
	if err := configuration.DB.Where("patient_id = ?", test.PatientID).First(&patient).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid patient ID"})
		return
	}

	test.AccessionNumber = uuid.NewString()
	test.StageGroup = models.TNMStageGroup(test.TumorStage, test.NodeStage, test.MetastasisStage)
	if test.Date.IsZero() {
		test.Date = time.Now()
	}

	if err := configuration.DB.Create(&test).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save imaging test"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Imaging test recorded successfully",
		"data":    test,
	})
}

// GetPatientImagingTests lists the imaging tests of a patient
func GetPatientImagingTests(c *gin.Context) {
	patientID := c.Param("id")

	var tests []models.ImagingTest
	if err := configuration.DB.Where("patient_id = ?", patientID).
		Order("date DESC").
		Find(&tests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve imaging tests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Imaging tests fetched successfully",
		"data":    tests,
	})
}

// GetImagingTest retrieves one imaging test by accession number
func GetImagingTest(c *gin.Context) {
	accession := c.Param("accession")

	var test models.ImagingTest
	if err := configuration.DB.Where("accession_number = ?", accession).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Imaging test not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch imaging test"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"data":   test,
	})
}
