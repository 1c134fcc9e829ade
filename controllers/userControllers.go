package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mcspirou6/hackaton-mrc-sub001/authentication"
	"github.com/mcspirou6/hackaton-mrc-sub001/configuration"
	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

var validate = validator.New()

// Login handles login for every role
func Login(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if the provided email exists in the database
	var existingUser models.User
	if err := configuration.DB.Where("email = ?", loginReq.Email).First(&existingUser).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(loginReq.Password)); err != nil {
		// Incorrect password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// Generate JWT token for the user
	token, err := authentication.GenerateToken(existingUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Login successful",
		"role":    existingUser.Role,
		"token":   token,
	})
}

// Logout
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "You are successfully logged out"})
}

// PatientSignup stages a patient-role account pending OTP verification
func PatientSignup(c *gin.Context) {
	var user models.User
	// Binding JSON data to user struct
	if err := c.BindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validate.Struct(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Signup only creates patient accounts; staff accounts come from the admin
	user.Role = models.RolePatient

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	user.Password = string(hashedPassword)

	var existingUser models.User
	if err := configuration.DB.Where("email = ?", user.Email).First(&existingUser).Error; err == nil {
		// User already exists, return error
		c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		return
	}

	// Send a verification code: SMS through Twilio when configured,
	// otherwise an emailed code staged in redis
	if twilioConfigured() {
		if err := SendOTP(user.Phone); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send OTP", "data": err.Error()})
			return
		}
	} else {
		otp := authentication.GenerateOTP(6)
		if err := authentication.SendOTPByEmail(otp, user.Email); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send OTP", "data": err.Error()})
			return
		}
		if err := configuration.SetRedis(fmt.Sprintf("otp:%s", user.Phone), otp, time.Minute*5); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"Status": false, "Data": nil, "Message": "Internal server error"})
			return
		}
	}

	userData, err := json.Marshal(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to marshal user", "data": err.Error()})
		return
	}
	// Store the pending account in Redis until the OTP is verified
	key := fmt.Sprintf("signup:%s", user.Phone)
	if err := configuration.SetRedis(key, userData, time.Minute*5); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Status": false, "Data": nil, "Message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"Message": "Otp generated successfully. Proceed to verification page>>>"})
}

// twilioConfigured reports whether SMS verification credentials are present.
// Without them signup falls back to an emailed code.
func twilioConfigured() bool {
	return os.Getenv("TWILIO_ACCOUNT_SID") != "" && os.Getenv("TWILIO_AUTHTOKEN") != ""
}

// SendOTP sends a verification code to the given phone number
func SendOTP(phoneNumber string) error {
	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTHTOKEN")

	// Initialize Twilio client
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	//create SMS message for OTP verification
	params := verify.CreateVerificationParams{}
	params.SetTo(phoneNumber)
	params.SetChannel("sms")
	if _, err := client.VerifyV2.CreateVerification(os.Getenv("TWILIO_SERVICE_ID"), &params); err != nil {
		return err
	}
	return nil
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	Otp   string `json:"otp"`
}

// UserOtpVerify verifies the OTP and creates the staged patient account
func UserOtpVerify(c *gin.Context) {
	// Bind OTP verification request data
	var OTPverify verifyOTPRequest
	if err := c.BindJSON(&OTPverify); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"Status": false, "Data": nil, "Message": "Failed to parse JSON data"})
		return
	}

	// Check if OTP is empty
	if OTPverify.Otp == "" {
		c.JSON(http.StatusBadRequest, gin.H{"Status": false, "Message": "OTP is required"})
		return
	}

	if twilioConfigured() {
		// Initialize Twilio client for OTP verification
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: os.Getenv("TWILIO_ACCOUNT_SID"),
			Password: os.Getenv("TWILIO_AUTHTOKEN"),
		})

		// Create parameters for OTP verification check
		params := verify.CreateVerificationCheckParams{}
		params.SetTo(OTPverify.Phone)
		params.SetCode(OTPverify.Otp)

		// Verify OTP with Twilio
		response, err := client.VerifyV2.CreateVerificationCheck(os.Getenv("TWILIO_SERVICE_ID"), &params)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"Status": false, "Data": nil, "Message": "error in verifying provided OTP"})
			return
		} else if response.Status == nil || *response.Status != "approved" {
			c.JSON(http.StatusUnauthorized, gin.H{"Status": false, "Data": nil, "Message": "Wrong OTP provided"})
			return
		}
	} else {
		// Emailed code staged at signup time
		otpKey := fmt.Sprintf("otp:%s", OTPverify.Phone)
		storedOTP, err := configuration.GetRedis(otpKey)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Status": false, "Data": nil, "Message": "OTP expired, please sign up again"})
			return
		}
		if !authentication.ValidateOTP(OTPverify.Otp, storedOTP) {
			c.JSON(http.StatusUnauthorized, gin.H{"Status": false, "Data": nil, "Message": "Wrong OTP provided"})
			return
		}
		configuration.DeleteRedis(otpKey)
	}

	// Retrieve the staged account from Redis
	key := fmt.Sprintf("signup:%s", OTPverify.Phone)
	value, err := configuration.GetRedis(key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Status": false, "Data": nil, "Message": "Signup session expired, please sign up again"})
		return
	}

	var userData models.User
	if err := json.Unmarshal([]byte(value), &userData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unmarshal user", "data": err.Error()})
		return
	}

	// Create user record
	if err := configuration.DB.Create(&userData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Status": false, "Data": nil, "Message": "Failed to create user"})
		return
	}

	configuration.DeleteRedis(key)

	c.JSON(http.StatusOK, gin.H{
		"Status":  true,
		"Message": "OTP verified successfully and user has been created. Login to continue...",
	})
}

// AddDoctor lets the admin create a doctor account
func AddDoctor(c *gin.Context) {
	var user models.User
	if err := c.BindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validate.Struct(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user.Role = models.RoleDoctor

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	user.Password = string(hashedPassword)

	if err := configuration.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create doctor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Doctor account created successfully",
		"data":    user.UserID,
	})
}

// ViewDoctors lists doctor accounts, optionally filtered by specialization
func ViewDoctors(c *gin.Context) {
	var doctors []models.User
	query := configuration.DB.Where("role = ?", models.RoleDoctor)
	if specialization := c.Query("specialization"); specialization != "" {
		query = query.Where("specialization = ?", specialization)
	}
	if err := query.Find(&doctors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't get doctors details"})
		return
	}

	if len(doctors) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No doctors found"})
		return
	}

	// Never return password hashes
	for i := range doctors {
		doctors[i].Password = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Doctors list fetched successfully",
		"data":    doctors,
	})
}
