package repository

import (
	"context"
	"errors"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/tracing"
)

type seriesRepository struct {
	db *gorm.DB
}

func NewSeriesRepository(db *gorm.DB) interfaces.SeriesRepository {
	return &seriesRepository{db: db}
}

var orderByIndex = clause.OrderByColumn{Column: clause.Column{Name: "index"}}

type seriesIndexRow struct {
	FkSeriesID string
	Index      int
}

func (r *seriesRepository) Transaction(ctx context.Context, fn func(txRepo interfaces.SeriesRepository) error) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesRepository.Transaction")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&seriesRepository{db: tx})
	})
	if err != nil {
		tracing.TraceErr(span, err)
	}
	return err
}

func (r *seriesRepository) GetByID(ctx context.Context, id string) (*models.Series, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesRepository.GetByID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, id)

	if !isValidID(id) {
		return nil, ErrInvalidInput
	}

	var series models.Series
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&series).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeriesNotFound
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &series, nil
}

func (r *seriesRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Series, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesRepository.GetByIDForUpdate")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, id)

	if !isValidID(id) {
		return nil, ErrInvalidInput
	}

	var series models.Series
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&series).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeriesNotFound
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &series, nil
}

func (r *seriesRepository) GetByUsernameAndSlug(ctx context.Context, username, urlSlug string) (*models.Series, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesRepository.GetByUsernameAndSlug")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("username", username, "urlSlug", urlSlug)

	if username == "" || urlSlug == "" {
		return nil, ErrInvalidInput
	}

	var series models.Series
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = series.fk_user_id").
		Where("users.username = ? AND series.url_slug = ?", username, urlSlug).
		First(&series).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeriesNotFound
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &series, nil
}

func (r *seriesRepository) ListByUsername(ctx context.Context, username string) ([]*models.Series, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesRepository.ListByUsername")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("username", username)

	var seriesList []*models.Series
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = series.fk_user_id").
		Where("users.username = ?", username).
		Order("series.name ASC").
		Find(&seriesList).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return seriesList, nil
}

func (r *seriesRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Series, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesRepository.ListByUserID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, userID)

	if !isValidID(userID) {
		return []*models.Series{}, nil
	}

	var seriesList []*models.Series
	err := r.db.WithContext(ctx).
		Where("fk_user_id = ?", userID).
		Order("updated_at DESC").
		Find(&seriesList).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return seriesList, nil
}

// FindByOwnerNameOrSlug returns a series of userID that already uses name or urlSlug, or nil.
func (r *seriesRepository) FindByOwnerNameOrSlug(ctx context.Context, userID, name, urlSlug string) (*models.Series, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesRepository.FindByOwnerNameOrSlug")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	var seriesList []*models.Series
	err := r.db.WithContext(ctx).
		Where("fk_user_id = ? AND (name = ? OR url_slug = ?)", userID, name, urlSlug).
		Limit(1).
		Find(&seriesList).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if len(seriesList) == 0 {
		return nil, nil
	}
	return seriesList[0], nil
}

func (r *seriesRepository) Create(ctx context.Context, series *models.Series) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	if series == nil || series.FkUserID == "" {
		return ErrInvalidInput
	}

	err := r.db.WithContext(ctx).Create(series).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSeriesAlreadyExists
		}
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

func (r *seriesRepository) ListSeriesPosts(ctx context.Context, seriesID string) ([]*models.SeriesPost, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesRepository.ListSeriesPosts")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, seriesID)

	if !isValidID(seriesID) {
		return []*models.SeriesPost{}, nil
	}

	var seriesPosts []*models.SeriesPost
	err := r.db.WithContext(ctx).
		Where("fk_series_id = ?", seriesID).
		Order(orderByIndex).
		Find(&seriesPosts).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return seriesPosts, nil
}

func (r *seriesRepository) ListSeriesPostsBySeriesIDs(ctx context.Context, seriesIDs []string) ([]*models.SeriesPost, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesRepository.ListSeriesPostsBySeriesIDs")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("seriesIDs.count", len(seriesIDs))

	seriesIDs = validIDs(seriesIDs)
	if len(seriesIDs) == 0 {
		return []*models.SeriesPost{}, nil
	}

	var seriesPosts []*models.SeriesPost
	err := r.db.WithContext(ctx).
		Where("fk_series_id IN ?", seriesIDs).
		Order("fk_series_id").
		Order(orderByIndex).
		Find(&seriesPosts).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return seriesPosts, nil
}

func (r *seriesRepository) CreateSeriesPost(ctx context.Context, seriesPost *models.SeriesPost) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesRepository.CreateSeriesPost")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	if seriesPost == nil || seriesPost.FkSeriesID == "" || seriesPost.FkPostID == "" || seriesPost.Index < 1 {
		return ErrInvalidInput
	}
	tracing.TagEntity(span, seriesPost.FkSeriesID)
	span.LogKV("postID", seriesPost.FkPostID, "index", seriesPost.Index)

	err := r.db.WithContext(ctx).Create(seriesPost).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSeriesPostDuplicate
		}
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

// ListAllSeriesIndexes returns every series' indexes in ascending order, keyed by series id.
func (r *seriesRepository) ListAllSeriesIndexes(ctx context.Context) (map[string][]int, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesRepository.ListAllSeriesIndexes")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	var rows []seriesIndexRow
	err := r.db.WithContext(ctx).
		Model(&models.SeriesPost{}).
		Select(`fk_series_id, "index"`).
		Order("fk_series_id").
		Order(orderByIndex).
		Scan(&rows).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	result := make(map[string][]int)
	for _, row := range rows {
		result[row.FkSeriesID] = append(result[row.FkSeriesID], row.Index)
	}
	span.LogKV("series.count", len(result))
	return result, nil
}
