package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CollaboratorStatus captures the startup state of the external services the
// health endpoint reports on.
type CollaboratorStatus struct {
	FirebaseConnected    bool
	MailConfigured       bool
	CloudinaryConfigured bool
}

type healthResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Firebase   string `json:"firebase"`
	Email      string `json:"email"`
	Cloudinary string `json:"cloudinary"`
}

// NewHealthHandler reports the configured/connected state of the three
// collaborators without probing them per request.
func NewHealthHandler(status CollaboratorStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := healthResponse{
			Status:     "ok",
			Message:    "Server is running",
			Firebase:   "not connected",
			Email:      "not configured",
			Cloudinary: "not configured",
		}
		if status.FirebaseConnected {
			resp.Firebase = "connected"
		}
		if status.MailConfigured {
			resp.Email = "configured"
		}
		if status.CloudinaryConfigured {
			resp.Cloudinary = "configured"
		}
		c.JSON(http.StatusOK, resp)
	}
}
