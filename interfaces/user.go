package interfaces

import (
	"context"

	"github.com/velog-io/velog-api/internal/models"
)

type UserService interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetVelogConfigByUsername(ctx context.Context, username string) (*models.VelogConfig, error)
	UpdateAbout(ctx context.Context, actingUserID, about string) (*models.UserProfile, error)
}
