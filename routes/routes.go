package routes

import (
	"os"
	"strings"

	"inkfolio-backend/config"
	"inkfolio-backend/controllers"
	"inkfolio-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	loginLimiter := utils.NewRateLimiter(1, 5)

	auth := r.Group("/auth")
	{
		auth.POST("/register", loginLimiter.Middleware(), controllers.Register)
		auth.POST("/login", loginLimiter.Middleware(), controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public gallery
	r.GET("/p/:username", controllers.GetPublicProfile)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	api.Use(utils.SanitizeInputMiddleware())
	{
		artworks := api.Group("/artworks")
		{
			artworks.POST("", controllers.CreateArtwork)
			artworks.GET("", controllers.GetArtworks)
			artworks.GET("/orphaned", controllers.GetOrphanedArtworks)
			artworks.PUT("/:id/restore", controllers.RestoreArtwork)
			artworks.DELETE("/:id", controllers.DeleteArtwork)
		}

		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/calendar", controllers.GetCalendar)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.POST("/:id/finalize", controllers.FinalizeAppointment)
			appointments.DELETE("/:id", controllers.CancelAppointment)
		}

		ledger := api.Group("/ledger")
		{
			ledger.POST("", controllers.CreateLedgerEntry)
			ledger.GET("", controllers.GetLedgerEntries)
			ledger.GET("/summary", controllers.GetLedgerSummary)
			ledger.DELETE("/:id", controllers.DeleteLedgerEntry)
		}

		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/theme", controllers.UpdateTheme)
			profile.POST("/avatar", controllers.UploadAvatar)
		}

		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
