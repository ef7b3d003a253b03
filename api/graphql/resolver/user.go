package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	velog_errors "github.com/velog-io/velog-api/errors"
	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/utils"
)

type userResolver struct {
	root *Resolver
	user *models.User
}

func newUserResolver(root *Resolver, user *models.User) *userResolver {
	if user == nil {
		return nil
	}
	return &userResolver{root: root, user: user}
}

func (r *userResolver) ID() graphql.ID {
	return graphql.ID(r.user.ID)
}

func (r *userResolver) Username() *string {
	return &r.user.Username
}

// Email is only visible to the user it belongs to.
func (r *userResolver) Email(ctx context.Context) (*string, error) {
	if utils.GetUserIdFromContext(ctx) != r.user.ID {
		return nil, resolverErr(velog_errors.PermissionDenied("No permission to read email address"))
	}
	return r.user.Email, nil
}

func (r *userResolver) CreatedAt() *Date {
	return dateOf(r.user.CreatedAt)
}

func (r *userResolver) UpdatedAt() *Date {
	return dateOf(r.user.UpdatedAt)
}

func (r *userResolver) IsCertified() *bool {
	return &r.user.IsCertified
}

func (r *userResolver) Profile(ctx context.Context) (*userProfileResolver, error) {
	profile, err := r.root.loaders(ctx).UserProfile.Load(ctx, r.user.ID)()
	if err != nil {
		return nil, resolverErr(err)
	}
	return newUserProfileResolver(profile), nil
}

func (r *userResolver) VelogConfig(ctx context.Context) (*velogConfigResolver, error) {
	velogConfig, err := r.root.loaders(ctx).VelogConfig.Load(ctx, r.user.ID)()
	if err != nil {
		return nil, resolverErr(err)
	}
	return newVelogConfigResolver(velogConfig), nil
}

func (r *userResolver) SeriesList(ctx context.Context) (*[]*seriesResolver, error) {
	seriesList, err := r.root.services.SeriesService.ListByUserID(ctx, r.user.ID)
	if err != nil {
		return nil, resolverErr(err)
	}
	return newSeriesResolvers(r.root, seriesList), nil
}

type userProfileResolver struct {
	profile *models.UserProfile
}

func newUserProfileResolver(profile *models.UserProfile) *userProfileResolver {
	if profile == nil {
		return nil
	}
	return &userProfileResolver{profile: profile}
}

func (r *userProfileResolver) ID() graphql.ID {
	return graphql.ID(r.profile.ID)
}

func (r *userProfileResolver) DisplayName() *string {
	return &r.profile.DisplayName
}

func (r *userProfileResolver) ShortBio() *string {
	return &r.profile.ShortBio
}

func (r *userProfileResolver) Thumbnail() *string {
	return r.profile.Thumbnail
}

func (r *userProfileResolver) CreatedAt() *Date {
	return dateOf(r.profile.CreatedAt)
}

func (r *userProfileResolver) UpdatedAt() *Date {
	return dateOf(r.profile.UpdatedAt)
}

func (r *userProfileResolver) About() *string {
	return &r.profile.About
}

func (r *userProfileResolver) ProfileLinks() *JSON {
	links := JSON(r.profile.ProfileLinks)
	if links == nil {
		links = JSON{}
	}
	return &links
}

type velogConfigResolver struct {
	velogConfig *models.VelogConfig
}

func newVelogConfigResolver(velogConfig *models.VelogConfig) *velogConfigResolver {
	if velogConfig == nil {
		return nil
	}
	return &velogConfigResolver{velogConfig: velogConfig}
}

func (r *velogConfigResolver) ID() graphql.ID {
	return graphql.ID(r.velogConfig.ID)
}

func (r *velogConfigResolver) Title() *string {
	return r.velogConfig.Title
}

func (r *velogConfigResolver) LogoImage() *string {
	return r.velogConfig.LogoImage
}
