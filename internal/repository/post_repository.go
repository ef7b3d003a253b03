package repository

import (
	"context"
	"errors"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/tracing"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) interfaces.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "postRepository.GetByID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, id)

	if !isValidID(id) {
		return nil, ErrInvalidInput
	}

	var post models.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Post, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "postRepository.GetByIDs")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("ids.count", len(ids))

	ids = validIDs(ids)
	if len(ids) == 0 {
		return []*models.Post{}, nil
	}

	var posts []*models.Post
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return posts, nil
}

type userImageRepository struct {
	db *gorm.DB
}

func NewUserImageRepository(db *gorm.DB) interfaces.UserImageRepository {
	return &userImageRepository{db: db}
}

func (r *userImageRepository) Create(ctx context.Context, image *models.UserImage) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userImageRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	if image == nil || image.FkUserID == "" {
		return ErrInvalidInput
	}

	err := r.db.WithContext(ctx).Create(image).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	tracing.TagEntity(span, image.ID)
	return nil
}
