package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"

	"github.com/mcspirou6/hackaton-mrc-sub001/configuration"
	"github.com/mcspirou6/hackaton-mrc-sub001/mail"
	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

// EmailPatientReport builds the medical summary PDF of a patient and mails
// it to the patient's account address, resolved by the same name match the
// reminder job uses.
func EmailPatientReport(c *gin.Context) {
	patientID := c.Param("id")

	var patient models.Patient
	if err := configuration.DB.Where("patient_id = ?", patientID).First(&patient).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	// Resolve the contact account by name match
	var account models.User
	if err := configuration.DB.Where("first_name = ? AND last_name = ? AND role = ?",
		patient.FirstName, patient.LastName, models.RolePatient).
		Order("user_id ASC").First(&account).Error; err != nil || account.Email == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No email found for this patient"})
		return
	}

	history, err := loadPatientHistory(patient.PatientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load patient history"})
		return
	}

	pdfReport, err := generatePatientReportPDF(patient, history)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF report"})
		return
	}

	if err := mail.SendWithAttachment(account.Email, "Your medical summary",
		"Please find attached your medical summary.", "medical-summary.pdf", pdfReport); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Medical summary sent successfully",
	})
}

// DownloadPatientReport returns the medical summary PDF directly
func DownloadPatientReport(c *gin.Context) {
	patientID := c.Param("id")

	var patient models.Patient
	if err := configuration.DB.Where("patient_id = ?", patientID).First(&patient).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	history, err := loadPatientHistory(patient.PatientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load patient history"})
		return
	}

	pdfReport, err := generatePatientReportPDF(patient, history)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF report"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=medical-summary.pdf")
	c.Data(http.StatusOK, "application/pdf", pdfReport)
}

// patientHistory carries the records summarized in the report
type patientHistory struct {
	Info          models.MedicalInfo
	Consultations []models.Consultation
	ImagingTests  []models.ImagingTest
}

// loadPatientHistory fetches the clinical records of a patient. A missing
// medical info row only leaves that section out of the report; any other
// database error fails the load.
func loadPatientHistory(patientID uint) (patientHistory, error) {
	var history patientHistory
	if err := configuration.DB.Where("patient_id = ?", patientID).
		First(&history.Info).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return history, err
	}
	if err := configuration.DB.Where("patient_id = ?", patientID).
		Order("date DESC").Limit(5).Find(&history.Consultations).Error; err != nil {
		return history, err
	}
	if err := configuration.DB.Where("patient_id = ?", patientID).
		Order("date DESC").Limit(5).Find(&history.ImagingTests).Error; err != nil {
		return history, err
	}
	return history, nil
}

// generatePatientReportPDF assembles the patient summary document
func generatePatientReportPDF(patient models.Patient, history patientHistory) ([]byte, error) {
	// Initialize PDF document
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Set font and font size
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 64, 128)
	pdf.CellFormat(0, 10, "MRC - Medical Records", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Patient Summary", "1", 1, "C", false, 0, "")
	addReportDetail(pdf, "Patient", patient.FullName(), true)
	addReportDetail(pdf, "Date of birth", patient.DateOfBirth, true)
	addReportDetail(pdf, "Gender", patient.Gender, true)
	addReportDetail(pdf, "Blood group", patient.BloodGroup, true)

	if history.Info.MedicalInfoID != 0 {
		pdf.CellFormat(0, 10, "Clinical Summary", "1", 1, "C", false, 0, "")
		addReportDetail(pdf, "GFR", fmt.Sprintf("%.1f", history.Info.GFR), false)
		addReportDetail(pdf, "CKD Stage", fmt.Sprintf("%d", history.Info.CKDStage), false)
		addReportDetail(pdf, "Creatinine", fmt.Sprintf("%.1f", history.Info.Creatinine), false)
		addReportDetail(pdf, "Allergies", history.Info.Allergies, false)
	}

	if len(history.Consultations) > 0 {
		pdf.CellFormat(0, 10, "Recent Consultations", "1", 1, "C", false, 0, "")
		for _, consultation := range history.Consultations {
			addReportDetail(pdf, consultation.Date.Format("2006-01-02"), consultation.Diagnosis, false)
		}
	}

	if len(history.ImagingTests) > 0 {
		pdf.CellFormat(0, 10, "Recent Imaging", "1", 1, "C", false, 0, "")
		for _, test := range history.ImagingTests {
			summary := test.Type
			if test.StageGroup != "" {
				summary += " - stage " + test.StageGroup
			}
			addReportDetail(pdf, test.Date.Format("2006-01-02"), summary, false)
		}
	}

	pdf.SetY(pdf.GetY() + 12)
	pdf.CellFormat(0, 10, "This is a computer generated report", "", 1, "R", false, 0, "")

	// Output PDF to buffer
	var pdfBuffer bytes.Buffer
	if err := pdf.Output(&pdfBuffer); err != nil {
		return nil, err
	}

	return pdfBuffer.Bytes(), nil
}

// addReportDetail adds a detail line to the PDF
func addReportDetail(pdf *gofpdf.Fpdf, label, value string, isHeader bool) {
	if isHeader {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(255, 255, 255)
	} else {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}
