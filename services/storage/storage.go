package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"wishbox/config"
	userRepo "wishbox/database/repository/user"
	"wishbox/models"
	"wishbox/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// ErrUploadFailed signals the image store rejected or failed the upload.
var ErrUploadFailed = errors.New("image upload failed, please try again")

// Store-side transform: face-aware square crop with automatic quality and
// format selection.
const profileTransformation = "c_fill,g_face,w_400,h_400/q_auto/f_auto"

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	cld   *cloudinary.Cloudinary
	users userRepo.UserRepository
}

// NewCloudinaryStorageService initializes the Cloudinary client from config.
func NewCloudinaryStorageService(cfg config.Config, users userRepo.UserRepository) (*CloudinaryStorageService, error) {
	if !cfg.CloudinaryConfigured() {
		return nil, fmt.Errorf("storage: cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld, users: users}, nil
}

func (s *CloudinaryStorageService) UploadProfileImage(ctx context.Context, userID string, file io.Reader) (*models.UploadResult, error) {
	logger := utils.GetLogger()

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         fmt.Sprintf("profile-images/%s", userID),
		PublicID:       fmt.Sprintf("profile_%d", time.Now().UnixMilli()),
		Transformation: profileTransformation,
	})
	if err != nil {
		logger.Error("UploadProfileImage: upload failed", zap.String("userID", userID), zap.Error(err))
		return nil, ErrUploadFailed
	}
	if result.PublicID == "" || result.SecureURL == "" {
		logger.Error("UploadProfileImage: store returned no asset identifiers", zap.String("userID", userID))
		return nil, ErrUploadFailed
	}

	// Best effort: the URL is returned to the caller even when the record
	// update fails.
	if err := s.users.SetPhotoURL(ctx, userID, result.SecureURL, time.Now()); err != nil {
		logger.Warn("UploadProfileImage: failed to update user photo URL",
			zap.String("userID", userID), zap.Error(err))
	}

	return &models.UploadResult{
		PhotoURL: result.SecureURL,
		PublicID: result.PublicID,
	}, nil
}
