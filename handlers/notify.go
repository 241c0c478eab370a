package handlers

import (
	"fmt"
	"net/http"

	"wishbox/models"
	"wishbox/services/notify"
	"wishbox/utils"

	"github.com/gin-gonic/gin"
)

// NotifyHandler exposes the price-drop broadcast endpoint.
type NotifyHandler struct {
	Service notify.NotifyService
}

func NewNotifyHandler(svc notify.NotifyService) *NotifyHandler {
	return &NotifyHandler{Service: svc}
}

type notifyResponse struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	NotifiedCount      int    `json:"notifiedCount"`
	TotalWishlistUsers int    `json:"totalWishlistUsers"`
}

// NotifyPriceDropHandler handles POST /api/notify-price-drop.
func (h *NotifyHandler) NotifyPriceDropHandler(c *gin.Context) {
	var req struct {
		ProductID    string   `json:"productId" binding:"required"`
		ProductName  string   `json:"productName" binding:"required"`
		ProductImage string   `json:"productImage"`
		OldPrice     *float64 `json:"oldPrice" binding:"required"`
		NewPrice     *float64 `json:"newPrice" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "productId, productName, oldPrice and newPrice are required")
		return
	}

	drop := models.PriceDrop{
		ProductID:    req.ProductID,
		ProductName:  req.ProductName,
		ProductImage: req.ProductImage,
		OldPrice:     *req.OldPrice,
		NewPrice:     *req.NewPrice,
	}
	result, err := h.Service.NotifyPriceDrop(c.Request.Context(), drop)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	message := "No price drop detected, no notifications sent"
	if drop.NewPrice < drop.OldPrice {
		message = fmt.Sprintf("Notified %d of %d wishlist users", result.Notified, result.Candidates)
	}
	c.JSON(http.StatusOK, notifyResponse{
		Success:            true,
		Message:            message,
		NotifiedCount:      result.Notified,
		TotalWishlistUsers: result.Candidates,
	})
}
