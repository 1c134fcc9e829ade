package configuration

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

// hold connection to db
var DB *gorm.DB

// LoadEnv loads the .env file if one is present
func LoadEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}
}

// initializing db connection
func ConfigDB() {
	dsn := os.Getenv("DB")
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect to the database")
	}

	DB.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Appointment{},
		&models.Consultation{},
		&models.MedicalInfo{},
		&models.ImagingTest{},
	)
}
