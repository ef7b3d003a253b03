package interfaces

import (
	"context"

	"github.com/velog-io/velog-api/internal/models"
)

type FileRequest struct {
	Type     models.UserImageType
	RefID    string
	Filename string
	Filesize int64
}

type UploadURL struct {
	Image     *models.UserImage
	SignedURL string
	ImageURL  string
}

type FilesService interface {
	CreateUploadURL(ctx context.Context, actingUserID string, request FileRequest) (*UploadURL, error)
	Upload(ctx context.Context, actingUserID string, request FileRequest, data []byte, contentType string) (*UploadURL, error)
}
