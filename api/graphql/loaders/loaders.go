package loaders

import (
	"context"
	"sort"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/opentracing/opentracing-go"

	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/repository"
	"github.com/velog-io/velog-api/internal/tracing"
)

const batchWait = 2 * time.Millisecond

type loadersKey struct{}

// Loaders batch and cache lookups for the lifetime of one GraphQL request.
type Loaders struct {
	User        *dataloader.Loader[string, *models.User]
	UserProfile *dataloader.Loader[string, *models.UserProfile]
	VelogConfig *dataloader.Loader[string, *models.VelogConfig]
	Post        *dataloader.Loader[string, *models.Post]
	SeriesPosts *dataloader.Loader[string, []*models.SeriesPost]
}

func NewLoaders(repos *repository.Repositories) *Loaders {
	users := &userBatcher{repos: repos}
	posts := &postBatcher{repos: repos}
	seriesPosts := &seriesPostBatcher{repos: repos}

	return &Loaders{
		User:        dataloader.NewBatchedLoader(users.users, dataloader.WithWait[string, *models.User](batchWait)),
		UserProfile: dataloader.NewBatchedLoader(users.profiles, dataloader.WithWait[string, *models.UserProfile](batchWait)),
		VelogConfig: dataloader.NewBatchedLoader(users.velogConfigs, dataloader.WithWait[string, *models.VelogConfig](batchWait)),
		Post:        dataloader.NewBatchedLoader(posts.posts, dataloader.WithWait[string, *models.Post](batchWait)),
		SeriesPosts: dataloader.NewBatchedLoader(seriesPosts.seriesPosts, dataloader.WithWait[string, []*models.SeriesPost](batchWait)),
	}
}

func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey{}, loaders)
}

// For returns the loaders attached to ctx, or nil.
func For(ctx context.Context) *Loaders {
	loaders, _ := ctx.Value(loadersKey{}).(*Loaders)
	return loaders
}

type userBatcher struct {
	repos *repository.Repositories
}

func (b *userBatcher) users(ctx context.Context, userIDs []string) []*dataloader.Result[*models.User] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "loaders.Users")
	defer span.Finish()
	span.LogKV("keys", len(userIDs))

	users, err := b.repos.UserRepository.GetByIDs(ctx, userIDs)
	if err != nil {
		tracing.TraceErr(span, err)
		return errorResults[*models.User](len(userIDs), err)
	}
	return resultsByKey(userIDs, users, func(user *models.User) string { return user.ID })
}

func (b *userBatcher) profiles(ctx context.Context, userIDs []string) []*dataloader.Result[*models.UserProfile] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "loaders.UserProfiles")
	defer span.Finish()
	span.LogKV("keys", len(userIDs))

	profiles, err := b.repos.UserRepository.GetProfilesByUserIDs(ctx, userIDs)
	if err != nil {
		tracing.TraceErr(span, err)
		return errorResults[*models.UserProfile](len(userIDs), err)
	}
	return resultsByKey(userIDs, profiles, func(profile *models.UserProfile) string { return profile.FkUserID })
}

func (b *userBatcher) velogConfigs(ctx context.Context, userIDs []string) []*dataloader.Result[*models.VelogConfig] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "loaders.VelogConfigs")
	defer span.Finish()
	span.LogKV("keys", len(userIDs))

	velogConfigs, err := b.repos.UserRepository.GetVelogConfigsByUserIDs(ctx, userIDs)
	if err != nil {
		tracing.TraceErr(span, err)
		return errorResults[*models.VelogConfig](len(userIDs), err)
	}
	return resultsByKey(userIDs, velogConfigs, func(velogConfig *models.VelogConfig) string { return velogConfig.FkUserID })
}

type postBatcher struct {
	repos *repository.Repositories
}

func (b *postBatcher) posts(ctx context.Context, postIDs []string) []*dataloader.Result[*models.Post] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "loaders.Posts")
	defer span.Finish()
	span.LogKV("keys", len(postIDs))

	posts, err := b.repos.PostRepository.GetByIDs(ctx, postIDs)
	if err != nil {
		tracing.TraceErr(span, err)
		return errorResults[*models.Post](len(postIDs), err)
	}
	return resultsByKey(postIDs, posts, func(post *models.Post) string { return post.ID })
}

type seriesPostBatcher struct {
	repos *repository.Repositories
}

// seriesPosts groups the posts of every requested series, each group ordered by index.
func (b *seriesPostBatcher) seriesPosts(ctx context.Context, seriesIDs []string) []*dataloader.Result[[]*models.SeriesPost] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "loaders.SeriesPosts")
	defer span.Finish()
	span.LogKV("keys", len(seriesIDs))

	seriesPosts, err := b.repos.SeriesRepository.ListSeriesPostsBySeriesIDs(ctx, seriesIDs)
	if err != nil {
		tracing.TraceErr(span, err)
		return errorResults[[]*models.SeriesPost](len(seriesIDs), err)
	}

	grouped := make(map[string][]*models.SeriesPost, len(seriesIDs))
	for _, seriesPost := range seriesPosts {
		grouped[seriesPost.FkSeriesID] = append(grouped[seriesPost.FkSeriesID], seriesPost)
	}

	results := make([]*dataloader.Result[[]*models.SeriesPost], len(seriesIDs))
	for i, seriesID := range seriesIDs {
		group := grouped[seriesID]
		sort.SliceStable(group, func(a, b int) bool { return group[a].Index < group[b].Index })
		if group == nil {
			group = []*models.SeriesPost{}
		}
		results[i] = &dataloader.Result[[]*models.SeriesPost]{Data: group}
	}
	return results
}

// resultsByKey lines values up with keys. Keys without a value resolve to nil.
func resultsByKey[V any](keys []string, values []V, keyOf func(V) string) []*dataloader.Result[V] {
	byKey := make(map[string]V, len(values))
	for _, value := range values {
		byKey[keyOf(value)] = value
	}

	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		results[i] = &dataloader.Result[V]{Data: byKey[key]}
	}
	return results
}

func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}
