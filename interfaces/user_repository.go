package interfaces

import (
	"context"

	"github.com/velog-io/velog-api/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)

	GetProfileByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
	GetProfilesByUserIDs(ctx context.Context, userIDs []string) ([]*models.UserProfile, error)
	UpdateProfileAbout(ctx context.Context, profile *models.UserProfile, about string) error

	GetVelogConfigByUsername(ctx context.Context, username string) (*models.VelogConfig, error)
	GetVelogConfigsByUserIDs(ctx context.Context, userIDs []string) ([]*models.VelogConfig, error)
}
