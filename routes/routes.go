package routes

import (
	"net/http"
	"time"

	"clinio/handlers"
	"clinio/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account and authentication endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.InitiateRegistrationHandler)
		api.POST("/register/verify", hb.User.VerifyRegistrationOTPHandler)
		api.POST("/register/finalize", hb.User.FinalizeRegistrationHandler)
		api.POST("/login", hb.User.AuthenticateUserHandler)
		api.POST("/refresh", hb.User.RefreshTokenHandler)
		api.POST("/reset-password", hb.User.ResetUserPasswordHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.User.GetUserByIDHandler)
		api.PUT("/me", hb.User.UpdateUserHandler)
		api.DELETE("/me", hb.User.DeleteUserHandler)
		api.POST("/revoke", hb.User.RevokeUserAuthTokenHandler)
	}
}

// RegisterDentistRoutes registers the practitioner directory endpoints.
// Reads are open to authenticated patients; writes are staff only.
func RegisterDentistRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dentists")
	{
		public := api.Group("")
		public.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		public.GET("", hb.Dentist.ListDentistsHandler)
		public.GET("/:id", hb.Dentist.GetDentistHandler)

		staff := api.Group("")
		staff.Use(middleware.StaffAuthMiddleware())
		staff.POST("", hb.Dentist.RegisterDentistHandler)
		staff.PUT("/:id/working-hours", hb.Dentist.SetWorkingHoursHandler)
		staff.PUT("/:id/active", hb.Dentist.SetActiveHandler)
	}
}

// RegisterAvailabilityRoutes registers the free-slot calculator endpoint.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/:dentistID", hb.Availability.GetAvailabilityHandler)
	}
}

// RegisterAppointmentRoutes registers the booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		patient := api.Group("")
		patient.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		patient.POST("", hb.Appointment.CreateAppointmentHandler)
		patient.GET("", hb.Appointment.ListMyAppointmentsHandler)
		patient.GET("/:id", hb.Appointment.GetAppointmentHandler)

		// Patients cancel their own appointments; staff may cancel any.
		cancel := api.Group("")
		cancel.Use(middleware.StaffOrUserAuthMiddleware(hb.UserRepo))
		cancel.DELETE("/:id", hb.Appointment.CancelAppointmentHandler)

		staff := api.Group("")
		staff.Use(middleware.StaffAuthMiddleware())
		staff.GET("/dentist/:dentistID", hb.Appointment.ListDentistAppointmentsHandler)
		staff.PUT("/:id/complete", hb.Appointment.CompleteAppointmentHandler)
	}
}

// RegisterRecordRoutes registers the clinical record endpoints.
func RegisterRecordRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/records")
	{
		patient := api.Group("")
		patient.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		patient.GET("/me", hb.Record.ListMyRecordsHandler)

		staff := api.Group("")
		staff.Use(middleware.StaffAuthMiddleware())
		staff.POST("", hb.Record.CreateRecordHandler)
		staff.GET("/patient/:patientID", hb.Record.ListPatientRecordsHandler)
		staff.DELETE("/:id", hb.Record.DeleteRecordHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Clinio"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Staff-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterDentistRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterRecordRoutes(r, hb)
}
