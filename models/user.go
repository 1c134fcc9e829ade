package models

import "github.com/golang-jwt/jwt/v5"

// Role tags stored on User records
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// User is a login identity. Doctors and admins exist only here; a patient
// account is a role-tagged user matched to its Patient record by name.
type User struct {
	UserID         uint   `gorm:"primaryKey" json:"user_id"`
	FirstName      string `json:"first_name" gorm:"not null" validate:"required"`
	LastName       string `json:"last_name" gorm:"not null" validate:"required"`
	Email          string `json:"email" gorm:"unique" validate:"required,email"`
	Password       string `json:"password"`
	Phone          string `json:"phone" validate:"required"`
	Role           string `json:"role" gorm:"not null"`
	Specialization string `json:"specialization"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type UserClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
