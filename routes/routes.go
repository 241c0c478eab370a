package routes

import (
	"time"

	"wishbox/config"
	"wishbox/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, cfg config.Config, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.POST("/send-otp", hb.SendOTPHandler)
		api.POST("/verify-otp", hb.VerifyOTPHandler)
		api.POST("/newsletter/subscribe", hb.SubscribeHandler)
		api.POST("/upload/profile-image", hb.UploadProfileImageHandler)
		api.POST("/notify-price-drop", hb.NotifyPriceDropHandler)
		api.GET("/health", hb.HealthHandler)
	}
}
