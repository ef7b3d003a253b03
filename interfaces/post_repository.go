package interfaces

import (
	"context"

	"github.com/velog-io/velog-api/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Post, error)
}

type UserImageRepository interface {
	Create(ctx context.Context, image *models.UserImage) error
}
