package resolver

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/utils"
	series_service "github.com/velog-io/velog-api/services/series"
)

type seriesResolver struct {
	root   *Resolver
	series *models.Series
}

func newSeriesResolver(root *Resolver, series *models.Series) *seriesResolver {
	if series == nil {
		return nil
	}
	return &seriesResolver{root: root, series: series}
}

func newSeriesResolvers(root *Resolver, seriesList []*models.Series) *[]*seriesResolver {
	resolvers := make([]*seriesResolver, 0, len(seriesList))
	for _, series := range seriesList {
		resolvers = append(resolvers, newSeriesResolver(root, series))
	}
	return &resolvers
}

func (r *seriesResolver) ID() graphql.ID {
	return graphql.ID(r.series.ID)
}

func (r *seriesResolver) User(ctx context.Context) (*userResolver, error) {
	user, err := r.root.loaders(ctx).User.Load(ctx, r.series.FkUserID)()
	if err != nil {
		return nil, resolverErr(err)
	}
	return newUserResolver(r.root, user), nil
}

func (r *seriesResolver) Name() *string {
	return &r.series.Name
}

func (r *seriesResolver) Description() *string {
	return &r.series.Description
}

func (r *seriesResolver) URLSlug() *string {
	return &r.series.URLSlug
}

func (r *seriesResolver) CreatedAt() *Date {
	return dateOf(r.series.CreatedAt)
}

func (r *seriesResolver) UpdatedAt() *Date {
	return dateOf(r.series.UpdatedAt)
}

// SeriesPosts lists the series' posts ordered by index.
func (r *seriesResolver) SeriesPosts(ctx context.Context) (*[]*seriesPostResolver, error) {
	seriesPosts, err := r.root.loaders(ctx).SeriesPosts.Load(ctx, r.series.ID)()
	if err != nil {
		return nil, resolverErr(err)
	}

	resolvers := make([]*seriesPostResolver, 0, len(seriesPosts))
	for _, seriesPost := range seriesPosts {
		resolvers = append(resolvers, &seriesPostResolver{root: r.root, seriesPost: seriesPost})
	}
	return &resolvers, nil
}

// Thumbnail and PostsCount are derived from the batched series posts.
func (r *seriesResolver) Thumbnail(ctx context.Context) (*string, error) {
	loaders := r.root.loaders(ctx)
	seriesPosts, err := loaders.SeriesPosts.Load(ctx, r.series.ID)()
	if err != nil {
		return nil, resolverErr(err)
	}

	postID := series_service.ThumbnailPostID(seriesPosts)
	if postID == "" {
		return nil, nil
	}
	post, err := loaders.Post.Load(ctx, postID)()
	if err != nil {
		return nil, resolverErr(err)
	}
	if post == nil {
		return nil, nil
	}
	return post.Thumbnail, nil
}

func (r *seriesResolver) PostsCount(ctx context.Context) (*int32, error) {
	seriesPosts, err := r.root.loaders(ctx).SeriesPosts.Load(ctx, r.series.ID)()
	if err != nil {
		return nil, resolverErr(err)
	}
	return utils.ToPtr(int32(len(seriesPosts))), nil
}

type seriesPostResolver struct {
	root       *Resolver
	seriesPost *models.SeriesPost
}

func (r *seriesPostResolver) ID() graphql.ID {
	return graphql.ID(r.seriesPost.ID)
}

func (r *seriesPostResolver) Index() *int32 {
	index := int32(r.seriesPost.Index)
	return &index
}

func (r *seriesPostResolver) Post(ctx context.Context) (*postResolver, error) {
	post, err := r.root.loaders(ctx).Post.Load(ctx, r.seriesPost.FkPostID)()
	if err != nil {
		return nil, resolverErr(err)
	}
	return newPostResolver(r.root, post), nil
}
