package series

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velog-io/velog-api/dto"
	velog_errors "github.com/velog-io/velog-api/errors"
	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/enum"
	"github.com/velog-io/velog-api/internal/logger"
	"github.com/velog-io/velog-api/internal/metrics"
	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/repository/inmemory"
)

type testEnv struct {
	store   *inmemory.Store
	events  *inmemory.EventRecorder
	metrics *metrics.Metrics
	service interfaces.SeriesService
}

func newTestEnv() *testEnv {
	store := inmemory.NewStore()
	events := inmemory.NewEventRecorder()
	m := metrics.NewMetrics()
	return &testEnv{
		store:   store,
		events:  events,
		metrics: m,
		service: NewSeriesService(store.Repositories(), events, m, logger.NewNopLogger()),
	}
}

func indexesOf(seriesPosts []*models.SeriesPost) map[string]int {
	result := make(map[string]int, len(seriesPosts))
	for _, seriesPost := range seriesPosts {
		result[seriesPost.FkPostID] = seriesPost.Index
	}
	return result
}

func TestAppendPost_Scenario(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.store.AddUser("owner")
	other := env.store.AddUser("other")
	series := env.store.AddSeries(owner.ID, "Go", "go")
	p1 := env.store.AddPost(owner.ID, "p1", nil)
	p2 := env.store.AddPost(owner.ID, "p2", nil)
	p3 := env.store.AddPost(other.ID, "p3", nil)

	index, err := env.service.AppendPost(ctx, owner.ID, series.ID, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	index, err = env.service.AppendPost(ctx, owner.ID, series.ID, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, index)

	_, err = env.service.AppendPost(ctx, owner.ID, series.ID, p1.ID)
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindConflict))

	_, err = env.service.AppendPost(ctx, other.ID, series.ID, p3.ID)
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindPermissionDenied))

	assert.Equal(t, map[string]int{p1.ID: 1, p2.ID: 2}, indexesOf(env.store.SeriesPostsOf(series.ID)))

	events := env.events.Events()
	require.Len(t, events, 2)
	assert.Equal(t, enum.SERIES_POST, events[1].EntityType)
	assert.Equal(t, dto.SeriesPostAppended{SeriesID: series.ID, PostID: p2.ID, Index: 2}, events[1].Message)

	assert.Equal(t, float64(2), testutil.ToFloat64(env.metrics.SeriesAppends.WithLabelValues(metrics.OutcomeSuccess)))
	assert.Equal(t, float64(2), testutil.ToFloat64(env.metrics.SeriesAppends.WithLabelValues(metrics.OutcomeError)))
}

func TestAppendPost_ExtendsContiguousRange(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.store.AddUser("owner")
	series := env.store.AddSeries(owner.ID, "Go", "go")
	for i := 1; i <= 3; i++ {
		post := env.store.AddPost(owner.ID, "existing", nil)
		env.store.AddSeriesPost(series.ID, post.ID, i)
	}
	post := env.store.AddPost(owner.ID, "new", nil)

	index, err := env.service.AppendPost(ctx, owner.ID, series.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, index)

	seriesPosts := env.store.SeriesPostsOf(series.ID)
	require.Len(t, seriesPosts, 4)
	for i, seriesPost := range seriesPosts {
		assert.Equal(t, i+1, seriesPost.Index)
	}
}

func TestAppendPost_PreconditionOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.store.AddUser("owner")
	other := env.store.AddUser("other")
	series := env.store.AddSeries(owner.ID, "Go", "go")
	post := env.store.AddPost(owner.ID, "p1", nil)
	env.store.AddSeriesPost(series.ID, post.ID, 1)

	_, err := env.service.AppendPost(ctx, "", series.ID, post.ID)
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindUnauthenticated))

	// missing series wins over everything else
	_, err = env.service.AppendPost(ctx, other.ID, "missing-series", "missing-post")
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindNotFound))

	// ownership is checked before membership
	_, err = env.service.AppendPost(ctx, other.ID, series.ID, post.ID)
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindPermissionDenied))

	// membership is checked before post existence
	_, err = env.service.AppendPost(ctx, owner.ID, series.ID, post.ID)
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindConflict))

	_, err = env.service.AppendPost(ctx, owner.ID, series.ID, "missing-post")
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindNotFound))

	assert.Len(t, env.store.SeriesPostsOf(series.ID), 1)
	assert.Empty(t, env.events.Events())
}

func TestAppendPost_RetriesOnceOnIndexCollision(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.store.AddUser("owner")
	series := env.store.AddSeries(owner.ID, "Go", "go")
	post := env.store.AddPost(owner.ID, "p1", nil)

	env.store.FailNextSeriesPostInserts(1)
	index, err := env.service.AppendPost(ctx, owner.ID, series.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.SeriesAppendRetry))

	other := env.store.AddPost(owner.ID, "p2", nil)
	env.store.FailNextSeriesPostInserts(2)
	_, err = env.service.AppendPost(ctx, owner.ID, series.ID, other.ID)
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindConflict))
	assert.Len(t, env.store.SeriesPostsOf(series.ID), 1)
}

func TestAppendPost_Concurrent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.store.AddUser("owner")
	series := env.store.AddSeries(owner.ID, "Go", "go")

	const n = 20
	posts := make([]*models.Post, n)
	for i := range posts {
		posts[i] = env.store.AddPost(owner.ID, "post", nil)
	}

	var wg sync.WaitGroup
	results := make([]int, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = env.service.AppendPost(ctx, owner.ID, series.ID, posts[i].ID)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	sort.Ints(results)
	for i, index := range results {
		assert.Equal(t, i+1, index)
	}

	issues, err := env.service.AuditOrdering(ctx)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestCreate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.store.AddUser("owner")
	other := env.store.AddUser("other")

	_, err := env.service.Create(ctx, "", interfaces.CreateSeriesInput{Name: "Go", URLSlug: "go"})
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindUnauthenticated))

	_, err = env.service.Create(ctx, owner.ID, interfaces.CreateSeriesInput{Name: "  ", URLSlug: "go"})
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindValidation))

	_, err = env.service.Create(ctx, owner.ID, interfaces.CreateSeriesInput{Name: "Go", URLSlug: "Not A Slug"})
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindValidation))

	series, err := env.service.Create(ctx, owner.ID, interfaces.CreateSeriesInput{Name: "Go", URLSlug: "go", Description: "all about go"})
	require.NoError(t, err)
	assert.NotEmpty(t, series.ID)
	assert.Equal(t, owner.ID, series.FkUserID)
	assert.Equal(t, "all about go", series.Description)

	_, err = env.service.Create(ctx, owner.ID, interfaces.CreateSeriesInput{Name: "Go", URLSlug: "go-2"})
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindAlreadyExists))

	_, err = env.service.Create(ctx, owner.ID, interfaces.CreateSeriesInput{Name: "Golang", URLSlug: "go"})
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindAlreadyExists))

	// uniqueness is per owner
	_, err = env.service.Create(ctx, other.ID, interfaces.CreateSeriesInput{Name: "Go", URLSlug: "go"})
	require.NoError(t, err)

	_, err = env.service.Create(ctx, owner.ID, interfaces.CreateSeriesInput{Name: "한글 시리즈", URLSlug: "한글-시리즈"})
	require.NoError(t, err)

	events := env.events.Events()
	require.Len(t, events, 3)
	assert.Equal(t, enum.SERIES, events[0].EntityType)
}

func TestCreate_PublishFailureDoesNotFail(t *testing.T) {
	env := newTestEnv()
	env.events.Err = errors.New("broker down")
	owner := env.store.AddUser("owner")

	series, err := env.service.Create(context.Background(), owner.ID, interfaces.CreateSeriesInput{Name: "Go", URLSlug: "go"})
	require.NoError(t, err)
	assert.NotNil(t, series)
}

func TestQueries(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.store.AddUser("owner")
	b := env.store.AddSeries(owner.ID, "B", "b")
	env.store.AddSeries(owner.ID, "A", "a")

	found, err := env.service.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", found.Name)

	_, err = env.service.GetByID(ctx, "missing")
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindNotFound))

	found, err = env.service.GetByUsernameAndSlug(ctx, "owner", "b")
	require.NoError(t, err)
	assert.Equal(t, b.ID, found.ID)

	_, err = env.service.GetByUsernameAndSlug(ctx, "nobody", "b")
	assert.True(t, velog_errors.IsKind(err, velog_errors.KindNotFound))

	list, err := env.service.ListByUsername(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "B", list[1].Name)

	list, err = env.service.ListByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = env.service.ListByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAuditOrdering(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.store.AddUser("owner")
	healthy := env.store.AddSeries(owner.ID, "healthy", "healthy")
	gapped := env.store.AddSeries(owner.ID, "gapped", "gapped")
	env.store.AddSeriesPost(healthy.ID, "p1", 1)
	env.store.AddSeriesPost(healthy.ID, "p2", 2)
	env.store.AddSeriesPost(gapped.ID, "p3", 1)
	env.store.AddSeriesPost(gapped.ID, "p4", 3)

	issues, err := env.service.AuditOrdering(ctx)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, gapped.ID, issues[0].SeriesID)
	assert.Equal(t, []int{2}, issues[0].Missing)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.OrderingIssues))
}
