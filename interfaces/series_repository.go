package interfaces

import (
	"context"

	"github.com/velog-io/velog-api/internal/models"
)

type SeriesRepository interface {
	// Transaction runs fn against a repository bound to a single database transaction.
	Transaction(ctx context.Context, fn func(txRepo SeriesRepository) error) error

	GetByID(ctx context.Context, id string) (*models.Series, error)
	// GetByIDForUpdate locks the series row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Series, error)
	GetByUsernameAndSlug(ctx context.Context, username, urlSlug string) (*models.Series, error)
	ListByUsername(ctx context.Context, username string) ([]*models.Series, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Series, error)
	FindByOwnerNameOrSlug(ctx context.Context, userID, name, urlSlug string) (*models.Series, error)
	Create(ctx context.Context, series *models.Series) error

	// ListSeriesPosts returns the series' posts ordered by index ascending.
	ListSeriesPosts(ctx context.Context, seriesID string) ([]*models.SeriesPost, error)
	ListSeriesPostsBySeriesIDs(ctx context.Context, seriesIDs []string) ([]*models.SeriesPost, error)
	CreateSeriesPost(ctx context.Context, seriesPost *models.SeriesPost) error
	ListAllSeriesIndexes(ctx context.Context) (map[string][]int, error)
}
