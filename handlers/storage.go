package handlers

import (
	"net/http"
	"strings"

	"wishbox/services/storage"
	"wishbox/utils"

	"github.com/gin-gonic/gin"
)

// Transport-boundary limits for profile image uploads.
const maxImageSize = 5 << 20 // 5 MiB

// StorageHandler exposes the profile-image upload endpoint.
type StorageHandler struct {
	Service storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{Service: svc}
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	PhotoURL string `json:"photoURL"`
	PublicID string `json:"publicId"`
}

// UploadProfileImageHandler handles POST /api/upload/profile-image.
func (h *StorageHandler) UploadProfileImageHandler(c *gin.Context) {
	if h.Service == nil {
		utils.JSONError(c, http.StatusInternalServerError, "Image upload service is not configured")
		return
	}

	userID := c.PostForm("userId")
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "userId is required")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Image file is required")
		return
	}
	if fileHeader.Size > maxImageSize {
		utils.JSONError(c, http.StatusBadRequest, "Image must be 5MB or smaller")
		return
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		utils.JSONError(c, http.StatusBadRequest, "File must be an image")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.Service.UploadProfileImage(c.Request.Context(), userID, file)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, uploadResponse{
		Success:  true,
		Message:  "Profile image uploaded successfully",
		PhotoURL: result.PhotoURL,
		PublicID: result.PublicID,
	})
}
