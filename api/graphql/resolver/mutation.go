package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/utils"
)

func (r *Resolver) UpdateAbout(ctx context.Context, args struct{ About string }) (*userProfileResolver, error) {
	userId, err := utils.RequireUserId(ctx)
	if err != nil {
		return nil, resolverErr(err)
	}

	profile, err := r.services.UserService.UpdateAbout(ctx, userId, args.About)
	if err != nil {
		return nil, resolverErr(err)
	}
	return newUserProfileResolver(profile), nil
}

type createSeriesArgs struct {
	Name        string
	URLSlug     string
	Description *string
}

func (r *Resolver) CreateSeries(ctx context.Context, args createSeriesArgs) (*seriesResolver, error) {
	userId, err := utils.RequireUserId(ctx)
	if err != nil {
		return nil, resolverErr(err)
	}

	input := interfaces.CreateSeriesInput{
		Name:        args.Name,
		URLSlug:     args.URLSlug,
		Description: utils.GetOrDefault(args.Description, ""),
	}

	series, err := r.services.SeriesService.Create(ctx, userId, input)
	if err != nil {
		return nil, resolverErr(err)
	}
	return newSeriesResolver(r, series), nil
}

type appendToSeriesArgs struct {
	SeriesID graphql.ID
	PostID   graphql.ID
}

// AppendToSeries returns the index the post was placed at.
func (r *Resolver) AppendToSeries(ctx context.Context, args appendToSeriesArgs) (*int32, error) {
	userId, err := utils.RequireUserId(ctx)
	if err != nil {
		return nil, resolverErr(err)
	}

	index, err := r.services.SeriesService.AppendPost(ctx, userId, string(args.SeriesID), string(args.PostID))
	if err != nil {
		return nil, resolverErr(err)
	}
	return utils.ToPtr(int32(index)), nil
}
