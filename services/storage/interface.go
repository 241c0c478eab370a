package storage

import (
	"context"
	"io"

	"wishbox/models"
)

// StorageService uploads profile images to the external image store.
type StorageService interface {
	// UploadProfileImage streams the image to the store under a folder
	// namespaced by user id and best-effort updates the user's photo URL.
	UploadProfileImage(ctx context.Context, userID string, file io.Reader) (*models.UploadResult, error)
}
