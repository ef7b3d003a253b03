package user

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/velog-io/velog-api/dto"
	velog_errors "github.com/velog-io/velog-api/errors"
	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/enum"
	"github.com/velog-io/velog-api/internal/logger"
	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/repository"
	"github.com/velog-io/velog-api/internal/tracing"
)

type userService struct {
	repositories *repository.Repositories
	events       interfaces.EventPublisher
	log          logger.Logger
}

func NewUserService(repos *repository.Repositories, events interfaces.EventPublisher, log logger.Logger) interfaces.UserService {
	return &userService{
		repositories: repos,
		events:       events,
		log:          log,
	}
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userService.GetByID")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	user, err := s.repositories.UserRepository.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(span, err, "User not found")
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userService.GetByUsername")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("username", username)

	user, err := s.repositories.UserRepository.GetByUsername(ctx, username)
	if err != nil {
		return nil, mapNotFound(span, err, "User not found")
	}
	return user, nil
}

func (s *userService) GetVelogConfigByUsername(ctx context.Context, username string) (*models.VelogConfig, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userService.GetVelogConfigByUsername")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("username", username)

	velogConfig, err := s.repositories.UserRepository.GetVelogConfigByUsername(ctx, username)
	if err != nil {
		return nil, mapNotFound(span, err, "Velog config not found")
	}
	return velogConfig, nil
}

func (s *userService) UpdateAbout(ctx context.Context, actingUserID, about string) (*models.UserProfile, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userService.UpdateAbout")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, actingUserID)

	if actingUserID == "" {
		return nil, velog_errors.ErrNotLoggedIn
	}

	profile, err := s.repositories.UserRepository.GetProfileByUserID(ctx, actingUserID)
	if err != nil {
		return nil, mapNotFound(span, err, "Failed to retrieve user profile")
	}

	err = s.repositories.UserRepository.UpdateProfileAbout(ctx, profile, about)
	if err != nil {
		return nil, mapNotFound(span, err, "Failed to retrieve user profile")
	}

	if err := s.events.PublishEvent(ctx, profile.ID, enum.USER_PROFILE, dto.UserAboutUpdated{
		UserID:    actingUserID,
		ProfileID: profile.ID,
	}); err != nil {
		s.log.Errorf("Failed to publish about update for user %s: %v", actingUserID, err)
	}

	return profile, nil
}

func mapNotFound(span opentracing.Span, err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrUserProfileNotFound),
		errors.Is(err, repository.ErrVelogConfigNotFound),
		errors.Is(err, repository.ErrInvalidInput):
		return velog_errors.Wrap(velog_errors.KindNotFound, err, message)
	}
	tracing.TraceErr(span, err)
	return err
}
