package handlers

import (
	"errors"
	"net/http"

	"wishbox/services/newsletter"
	"wishbox/utils"

	"github.com/gin-gonic/gin"
)

// NewsletterHandler exposes the newsletter subscription endpoint.
type NewsletterHandler struct {
	Service newsletter.NewsletterService
}

func NewNewsletterHandler(svc newsletter.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{Service: svc}
}

// SubscribeHandler handles POST /api/newsletter/subscribe.
func (h *NewsletterHandler) SubscribeHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Email is required")
		return
	}

	already, err := h.Service.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, newsletter.ErrInvalidEmail) {
			status = http.StatusBadRequest
		}
		utils.JSONError(c, status, err.Error())
		return
	}
	if already {
		utils.JSONOk(c, "You are already subscribed to our newsletter")
		return
	}
	utils.JSONOk(c, "Successfully subscribed to the newsletter")
}
