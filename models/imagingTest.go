package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type ImagingTest struct {
	gorm.Model
	PatientID       uint      `json:"patient_id"`
	AccessionNumber string    `json:"accession_number" gorm:"unique"`
	Type            string    `json:"type"`
	Date            time.Time `json:"date"`
	Findings        string    `json:"findings"`
	TumorStage      string    `json:"tumor_stage"`
	NodeStage       string    `json:"node_stage"`
	MetastasisStage string    `json:"metastasis_stage"`
	StageGroup      string    `json:"stage_group"`
}

// TNMStageGroup maps a TNM classification to its overall stage group.
// Distant metastasis dominates, then nodal involvement, then tumor extent.
// Returns "" when the classification is incomplete.
func TNMStageGroup(t, n, m string) string {
	t = strings.ToUpper(strings.TrimSpace(t))
	n = strings.ToUpper(strings.TrimSpace(n))
	m = strings.ToUpper(strings.TrimSpace(m))

	if t == "" || n == "" || m == "" {
		return ""
	}
	if m == "M1" {
		return "IV"
	}
	switch n {
	case "N1", "N2", "N3":
		return "III"
	}
	switch t {
	case "TIS":
		return "0"
	case "T1", "T2":
		return "I"
	case "T3":
		return "II"
	case "T4":
		return "III"
	}
	return ""
}
