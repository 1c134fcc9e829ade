package models

// Patient is the clinical record. It carries no email of its own: the
// contact address lives on the patient-role User matched by first+last name.
type Patient struct {
	PatientID   uint   `gorm:"primaryKey" json:"patient_id"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone" validate:"required"`
	Address     string `json:"address"`
	BloodGroup  string `json:"blood_group"`
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
