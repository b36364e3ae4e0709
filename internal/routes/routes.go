package routes

import (
	"time"

	"emsana-backend/internal/config"
	"emsana-backend/internal/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(cfg *config.Config, h *handlers.Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), AccessLog(logger), Recovery(logger))
	router.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))
	router.Use(gzip.Gzip(gzip.BestSpeed))

	ConfigRoutes(router, h)
	return router
}

// ConfigRoutes registers the API on router.
func ConfigRoutes(router *gin.Engine, h *handlers.Handler) {
	router.GET("/", h.Root)
	router.GET("/healthz", h.CheckConnection)

	// Users
	router.POST("/users/", h.Register)
	router.GET("/users/:id", h.GetUser)
	router.POST("/login", h.Login)

	// Daily logs
	router.POST("/logs/add", h.AddDailyLog)

	// Doctor views
	doctor := router.Group("/doctor")
	{
		doctor.GET("/:doctor_id/patients", h.GetPatientsByDoctorID)
		doctor.GET("/patient-history/:patient_id", h.GetPatientHistory)
		doctor.GET("/patient-history/:patient_id/summary", h.GetPatientHistorySummary)
	}

	// Medications
	router.POST("/medications/add", h.AddMedication)
	router.GET("/medications/:patient_id", h.GetPatientMedications)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
