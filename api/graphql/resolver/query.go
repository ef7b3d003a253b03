package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	velog_errors "github.com/velog-io/velog-api/errors"
	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/utils"
)

type userArgs struct {
	ID       *graphql.ID
	Username *string
}

// User looks a user up by username, falling back to id.
func (r *Resolver) User(ctx context.Context, args userArgs) (*userResolver, error) {
	var user *models.User
	var err error

	switch {
	case args.Username != nil && *args.Username != "":
		user, err = r.services.UserService.GetByUsername(ctx, *args.Username)
	case args.ID != nil:
		user, err = r.services.UserService.GetByID(ctx, string(*args.ID))
	default:
		return nil, nil
	}
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, resolverErr(err)
	}
	return newUserResolver(r, user), nil
}

func (r *Resolver) VelogConfig(ctx context.Context, args struct{ Username *string }) (*velogConfigResolver, error) {
	if args.Username == nil {
		return nil, nil
	}
	velogConfig, err := r.services.UserService.GetVelogConfigByUsername(ctx, *args.Username)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, resolverErr(err)
	}
	return newVelogConfigResolver(velogConfig), nil
}

// Auth returns the acting user, or null for anonymous requests.
func (r *Resolver) Auth(ctx context.Context) (*userResolver, error) {
	userId := utils.GetUserIdFromContext(ctx)
	if userId == "" {
		return nil, nil
	}
	user, err := r.loaders(ctx).User.Load(ctx, userId)()
	if err != nil {
		return nil, resolverErr(err)
	}
	return newUserResolver(r, user), nil
}

type seriesArgs struct {
	ID       *graphql.ID
	Username *string
	URLSlug  *string
}

func (r *Resolver) Series(ctx context.Context, args seriesArgs) (*seriesResolver, error) {
	var series *models.Series
	var err error

	switch {
	case args.ID != nil:
		series, err = r.services.SeriesService.GetByID(ctx, string(*args.ID))
	case args.Username != nil && args.URLSlug != nil:
		series, err = r.services.SeriesService.GetByUsernameAndSlug(ctx, *args.Username, *args.URLSlug)
	default:
		return nil, resolverErr(velog_errors.Validation("id or username and url_slug are required"))
	}
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, resolverErr(err)
	}
	return newSeriesResolver(r, series), nil
}

// SeriesList lists a user's series ordered by name.
func (r *Resolver) SeriesList(ctx context.Context, args struct{ Username *string }) (*[]*seriesResolver, error) {
	if args.Username == nil {
		return newSeriesResolvers(r, nil), nil
	}
	seriesList, err := r.services.SeriesService.ListByUsername(ctx, *args.Username)
	if err != nil {
		return nil, resolverErr(err)
	}
	return newSeriesResolvers(r, seriesList), nil
}
