package handlers

import (
	"errors"
	"net/http"

	"wishbox/services/otp"
	"wishbox/utils"

	"github.com/gin-gonic/gin"
)

// OTPHandler exposes the send/verify endpoints for email verification.
type OTPHandler struct {
	Service otp.OTPService
}

func NewOTPHandler(svc otp.OTPService) *OTPHandler {
	return &OTPHandler{Service: svc}
}

// SendOTPHandler handles POST /api/send-otp.
func (h *OTPHandler) SendOTPHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		FullName string `json:"fullName"`
		UID      string `json:"uid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.Service.RequestCode(c.Request.Context(), req.Email, req.FullName, req.UID); err != nil {
		utils.JSONError(c, otpStatus(err), err.Error())
		return
	}
	utils.JSONOk(c, "Verification code sent to "+req.Email)
}

// VerifyOTPHandler handles POST /api/verify-otp.
func (h *OTPHandler) VerifyOTPHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		OTP   string `json:"otp" binding:"required"`
		UID   string `json:"uid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	if err := h.Service.VerifyCode(c.Request.Context(), req.Email, req.OTP, req.UID); err != nil {
		utils.JSONError(c, otpStatus(err), err.Error())
		return
	}
	utils.JSONOk(c, "Email verified successfully")
}

// otpStatus maps service errors onto the HTTP status taxonomy.
func otpStatus(err error) int {
	var invalid otp.InvalidCodeError
	switch {
	case errors.Is(err, otp.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, otp.ErrExpired),
		errors.Is(err, otp.ErrAttemptsExhausted),
		errors.As(err, &invalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
