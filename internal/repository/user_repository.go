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

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) interfaces.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.GetByID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, id)

	if !isValidID(id) {
		return nil, ErrInvalidInput
	}

	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.GetByUsername")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("username", username)

	if username == "" {
		return nil, ErrInvalidInput
	}

	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.GetByIDs")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("ids.count", len(ids))

	ids = validIDs(ids)
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	var users []*models.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetProfileByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.GetProfileByUserID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, userID)

	if !isValidID(userID) {
		return nil, ErrInvalidInput
	}

	var profile models.UserProfile
	err := r.db.WithContext(ctx).Where("fk_user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserProfileNotFound
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) GetProfilesByUserIDs(ctx context.Context, userIDs []string) ([]*models.UserProfile, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.GetProfilesByUserIDs")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("userIDs.count", len(userIDs))

	userIDs = validIDs(userIDs)
	if len(userIDs) == 0 {
		return []*models.UserProfile{}, nil
	}

	var profiles []*models.UserProfile
	err := r.db.WithContext(ctx).Where("fk_user_id IN ?", userIDs).Find(&profiles).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return profiles, nil
}

func (r *userRepository) UpdateProfileAbout(ctx context.Context, profile *models.UserProfile, about string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.UpdateProfileAbout")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	if profile == nil || profile.ID == "" {
		return ErrInvalidInput
	}
	tracing.TagEntity(span, profile.ID)

	result := r.db.WithContext(ctx).Model(profile).Update("about", about)
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserProfileNotFound
	}
	return nil
}

func (r *userRepository) GetVelogConfigByUsername(ctx context.Context, username string) (*models.VelogConfig, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.GetVelogConfigByUsername")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("username", username)

	if username == "" {
		return nil, ErrInvalidInput
	}

	var velogConfig models.VelogConfig
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = velog_configs.fk_user_id").
		Where("users.username = ?", username).
		First(&velogConfig).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVelogConfigNotFound
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &velogConfig, nil
}

func (r *userRepository) GetVelogConfigsByUserIDs(ctx context.Context, userIDs []string) ([]*models.VelogConfig, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.GetVelogConfigsByUserIDs")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.LogKV("userIDs.count", len(userIDs))

	userIDs = validIDs(userIDs)
	if len(userIDs) == 0 {
		return []*models.VelogConfig{}, nil
	}

	var velogConfigs []*models.VelogConfig
	err := r.db.WithContext(ctx).Where("fk_user_id IN ?", userIDs).Find(&velogConfigs).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return velogConfigs, nil
}
