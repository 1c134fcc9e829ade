package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mcspirou6/hackaton-mrc-sub001/configuration"
	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

const dashboardCacheTTL = time.Minute

// swapped out in tests
var cacheSet = configuration.SetRedis

// cacheStatusCounts stores the counts best effort; a failed write only costs
// the next request a recount
func cacheStatusCounts(counts map[string]int64) {
	payload, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := cacheSet("dashboard:status_counts", payload, dashboardCacheTTL); err != nil && configuration.Logger != nil {
		configuration.Logger.Warn("caching dashboard counts failed", zap.Error(err))
	}
}

// GetAppointmentStatusCounts returns appointment totals per status
func GetAppointmentStatusCounts(c *gin.Context) {
	// Serve from cache when fresh
	if cached, err := configuration.GetRedis("dashboard:status_counts"); err == nil && cached != "" {
		var counts map[string]int64
		if json.Unmarshal([]byte(cached), &counts) == nil {
			c.JSON(http.StatusOK, gin.H{
				"Status":  "Success",
				"Message": "Appointment counts fetched successfully",
				"data":    counts,
			})
			return
		}
	}

	var totalAppointments int64
	// Query the database to count the total number of appointments
	if err := configuration.DB.Model(&models.Appointment{}).Count(&totalAppointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to fetch total appointments"})
		return
	}

	counts := map[string]int64{"total": totalAppointments}
	for _, status := range []string{models.AppointmentScheduled, models.AppointmentCompleted, models.AppointmentCancelled} {
		var n int64
		if err := configuration.DB.Model(&models.Appointment{}).Where("status = ?", status).Count(&n).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to fetch appointment counts"})
			return
		}
		counts[status] = n
	}

	cacheStatusCounts(counts)

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment counts fetched successfully",
		"data":    counts,
	})
}

// GetDoctorWiseAppointments returns appointment counts grouped by doctor
func GetDoctorWiseAppointments(c *gin.Context) {
	// Defined a struct to store doctor-wise data
	var doctorData []struct {
		DoctorID         uint   `json:"doctor_id"`
		DoctorName       string `json:"doctor_name"`
		AppointmentCount int    `json:"appointment_count"`
	}

	// Query the database to get doctor-wise data
	result := configuration.DB.Table("appointments").
		Select("appointments.doctor_id, users.first_name || ' ' || users.last_name as doctor_name, COUNT(*) as appointment_count").
		Joins("JOIN users ON appointments.doctor_id = users.user_id").
		Group("appointments.doctor_id, users.first_name, users.last_name").
		Scan(&doctorData)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch doctor-wise data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"message":    "Doctor-wise data fetched successfully",
		"doctorData": doctorData,
	})
}

// GetCKDStageDistribution returns patient counts grouped by CKD stage
func GetCKDStageDistribution(c *gin.Context) {
	var stageData []struct {
		CKDStage     int `json:"ckd_stage"`
		PatientCount int `json:"patient_count"`
	}

	result := configuration.DB.Table("medical_infos").
		Select("ckd_stage, COUNT(*) as patient_count").
		Group("ckd_stage").
		Order("ckd_stage ASC").
		Scan(&stageData)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stage distribution"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Stage distribution fetched successfully",
		"stageData": stageData,
	})
}
