package interfaces

import (
	"context"

	"github.com/velog-io/velog-api/internal/models"
)

type CreateSeriesInput struct {
	Name        string
	URLSlug     string
	Description string
}

// SeriesOrderingIssue describes a series whose indexes are not exactly {1..n}.
type SeriesOrderingIssue struct {
	SeriesID   string
	Indexes    []int
	Missing    []int
	Duplicates []int
}

type SeriesService interface {
	GetByID(ctx context.Context, id string) (*models.Series, error)
	GetByUsernameAndSlug(ctx context.Context, username, urlSlug string) (*models.Series, error)
	ListByUsername(ctx context.Context, username string) ([]*models.Series, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Series, error)
	Create(ctx context.Context, actingUserID string, input CreateSeriesInput) (*models.Series, error)
	AppendPost(ctx context.Context, actingUserID, seriesID, postID string) (int, error)
	AuditOrdering(ctx context.Context) ([]SeriesOrderingIssue, error)
}
