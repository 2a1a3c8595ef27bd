package routes

import (
	"net/http"
	"time"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/services/appointment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAppointmentRoutes registers the booking engine endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.POST("", middleware.JWTAuth(appointment.RolePatient), hb.Appointment.CreateAppointment)
		api.GET("", middleware.JWTAuth(), hb.Appointment.GetAppointments)
		api.PATCH("/:id", middleware.JWTAuth(), hb.Appointment.UpdateAppointment)

		providerOnly := api.Group("", middleware.JWTAuth(appointment.RoleProvider))
		providerOnly.GET("/patient/:patientId", hb.Appointment.GetPatientHistory)
		providerOnly.GET("/patient/:patientId/all", hb.Appointment.GetPatientAllAppointments)
	}
}

// RegisterProviderRoutes registers provider profile and calendar endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("/:id", hb.Provider.GetProviderByID)
		api.PUT("/availability", middleware.JWTAuth(appointment.RoleProvider), hb.Provider.SetupAvailability)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm medibook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAppointmentRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterHealthRoute(r)
}
