package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mcspirou6/hackaton-mrc-sub001/authentication"
	"github.com/mcspirou6/hackaton-mrc-sub001/controllers"
)

func SetupRoutes() *gin.Engine {
	//creates a new Gin engine instance with default configurations
	r := gin.Default()

	//public routes
	r.POST("/users/login", controllers.Login)
	r.POST("/users/signup", controllers.PatientSignup)
	r.POST("/users/verify", controllers.UserOtpVerify)

	//patient routes
	patient := r.Group("/patient")
	patient.Use(authentication.PatientAuthMiddleware())
	{
		patient.GET("/logout", controllers.Logout)
		patient.GET("/record", controllers.GetMyRecord)
		patient.GET("/appointment/history/:id", controllers.GetAppointmentHistory)
		patient.GET("/doctors", controllers.ViewDoctors)
	}

	//doctor routes
	doctor := r.Group("/doctor")
	doctor.Use(authentication.DoctorAuthMiddleware())
	{
		doctor.GET("/logout", controllers.Logout)
		doctor.POST("/add/patient", controllers.AddPatient)
		doctor.GET("/view/patients", controllers.ViewPatients)
		doctor.GET("/search/patient/:id", controllers.SearchPatient)
		doctor.PATCH("/update/patient/:id", controllers.UpdatePatient)
		doctor.POST("/book/appointment", controllers.BookAppointment)
		doctor.POST("/cancel/appointment/:id", controllers.CancelAppointment)
		doctor.GET("/appointment/:doctor_id/date", controllers.GetDoctorAppointmentsByDate)
		doctor.POST("/add/consultation", controllers.AddConsultation)
		doctor.GET("/consultations/:id", controllers.GetPatientConsultations)
		doctor.PATCH("/update/consultation/:id", controllers.UpdateConsultation)
		doctor.POST("/save/medicalinfo", controllers.SaveMedicalInfo)
		doctor.GET("/medicalinfo/:id", controllers.GetMedicalInfo)
		doctor.POST("/add/imaging", controllers.AddImagingTest)
		doctor.GET("/imaging/patient/:id", controllers.GetPatientImagingTests)
		doctor.GET("/imaging/:accession", controllers.GetImagingTest)
		doctor.POST("/report/email/:id", controllers.EmailPatientReport)
		doctor.GET("/report/download/:id", controllers.DownloadPatientReport)
	}

	//admin routes
	admin := r.Group("/admin")
	admin.Use(authentication.AdminAuthMiddleware())
	{
		admin.POST("/logout", controllers.Logout)
		admin.POST("/add/doctor", controllers.AddDoctor)
		admin.GET("/view/doctors", controllers.ViewDoctors)
		admin.POST("/add/patient", controllers.AddPatient)
		admin.GET("/view/patients", controllers.ViewPatients)
		admin.GET("/search/patient/:id", controllers.SearchPatient)
		admin.PATCH("/update/patient/:id", controllers.UpdatePatient)
		admin.POST("/remove/patient/:id", controllers.RemovePatient)
		admin.GET("/total/appointments", controllers.GetAppointmentStatusCounts)
		admin.GET("/doctor-wise/appointments", controllers.GetDoctorWiseAppointments)
		admin.GET("/stage/distribution", controllers.GetCKDStageDistribution)
	}

	return r
}
