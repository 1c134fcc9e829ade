package authentication

import (
	"math/rand"
	"time"

	"github.com/mcspirou6/hackaton-mrc-sub001/mail"
)

// GenerateOTP
func GenerateOTP(length int) string {
	// Initializing the new random number generator
	rand.NewSource(time.Now().UnixNano())
	characters := "0123456789"
	// Create a byte slice to hold the OTP of the specified length.
	otp := make([]byte, length)

	for i := range otp {
		otp[i] = characters[rand.Intn(len(characters))]
	}
	return string(otp)
}

// SendOTPByEmail
func SendOTPByEmail(otp, email string) error {
	message := "Hey Your OTP is " + otp
	return mail.Send(email, "MRC account verification OTP", message)
}

// ValidateOTP
func ValidateOTP(otp, storedOTP string) bool {
	return otp == storedOTP
}
