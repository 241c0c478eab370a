package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every endpoint handler for route registration.
type HandlerBundle struct {
	// OTP endpoints.
	SendOTPHandler   gin.HandlerFunc
	VerifyOTPHandler gin.HandlerFunc

	// Newsletter endpoints.
	SubscribeHandler gin.HandlerFunc

	// Storage endpoints.
	UploadProfileImageHandler gin.HandlerFunc

	// Notification endpoints.
	NotifyPriceDropHandler gin.HandlerFunc

	// Health endpoint.
	HealthHandler gin.HandlerFunc
}
