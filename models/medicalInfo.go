package models

// MedicalInfo holds the current clinical summary of a patient, one row per
// patient. CKDStage is derived from GFR on every save.
type MedicalInfo struct {
	MedicalInfoID uint    `gorm:"primaryKey" json:"medical_info_id"`
	PatientID     uint    `json:"patient_id" gorm:"uniqueIndex;not null"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	Creatinine    float64 `json:"creatinine"`
	GFR           float64 `json:"gfr"`
	CKDStage      int     `json:"ckd_stage"`
	Allergies     string  `json:"allergies"`
	History       string  `json:"history"`
}

// CKDStageFromGFR maps a glomerular filtration rate (mL/min/1.73m2) to the
// chronic kidney disease stage. A non-positive GFR means not measured and
// yields stage 0.
func CKDStageFromGFR(gfr float64) int {
	switch {
	case gfr <= 0:
		return 0
	case gfr >= 90:
		return 1
	case gfr >= 60:
		return 2
	case gfr >= 30:
		return 3
	case gfr >= 15:
		return 4
	default:
		return 5
	}
}
