package loaders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velog-io/velog-api/internal/repository/inmemory"
)

func TestUserLoader_BatchesDistinctKeys(t *testing.T) {
	store := inmemory.NewStore()
	alice := store.AddUser("alice")
	bob := store.AddUser("bob")
	loaders := NewLoaders(store.Repositories())
	ctx := context.Background()

	thunks := []func() (string, error){}
	for _, id := range []string{alice.ID, bob.ID, alice.ID, "missing"} {
		thunk := loaders.User.Load(ctx, id)
		thunks = append(thunks, func() (string, error) {
			user, err := thunk()
			if err != nil || user == nil {
				return "", err
			}
			return user.Username, nil
		})
	}

	var usernames []string
	for _, thunk := range thunks {
		username, err := thunk()
		require.NoError(t, err)
		usernames = append(usernames, username)
	}

	assert.Equal(t, []string{"alice", "bob", "alice", ""}, usernames)
	assert.Equal(t, 1, store.CallCount("UserRepository.GetByIDs"))
}

func TestProfileAndVelogConfigLoaders(t *testing.T) {
	store := inmemory.NewStore()
	alice := store.AddUser("alice")
	loaders := NewLoaders(store.Repositories())
	ctx := context.Background()

	profile, err := loaders.UserProfile.Load(ctx, alice.ID)()
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, alice.ID, profile.FkUserID)

	velogConfig, err := loaders.VelogConfig.Load(ctx, alice.ID)()
	require.NoError(t, err)
	require.NotNil(t, velogConfig)
	assert.Equal(t, "alice.log", *velogConfig.Title)

	// cached per loader set
	_, err = loaders.UserProfile.Load(ctx, alice.ID)()
	require.NoError(t, err)
	assert.Equal(t, 1, store.CallCount("UserRepository.GetProfilesByUserIDs"))
}

func TestSeriesPostsLoader_GroupsAndOrders(t *testing.T) {
	store := inmemory.NewStore()
	owner := store.AddUser("owner")
	first := store.AddSeries(owner.ID, "first", "first")
	second := store.AddSeries(owner.ID, "second", "second")
	empty := store.AddSeries(owner.ID, "empty", "empty")
	p1 := store.AddPost(owner.ID, "p1", nil)
	p2 := store.AddPost(owner.ID, "p2", nil)
	p3 := store.AddPost(owner.ID, "p3", nil)
	store.AddSeriesPost(first.ID, p2.ID, 2)
	store.AddSeriesPost(first.ID, p1.ID, 1)
	store.AddSeriesPost(second.ID, p3.ID, 1)

	loaders := NewLoaders(store.Repositories())
	ctx := context.Background()

	firstThunk := loaders.SeriesPosts.Load(ctx, first.ID)
	secondThunk := loaders.SeriesPosts.Load(ctx, second.ID)
	emptyThunk := loaders.SeriesPosts.Load(ctx, empty.ID)

	firstPosts, err := firstThunk()
	require.NoError(t, err)
	require.Len(t, firstPosts, 2)
	assert.Equal(t, p1.ID, firstPosts[0].FkPostID)
	assert.Equal(t, p2.ID, firstPosts[1].FkPostID)

	secondPosts, err := secondThunk()
	require.NoError(t, err)
	require.Len(t, secondPosts, 1)

	emptyPosts, err := emptyThunk()
	require.NoError(t, err)
	assert.NotNil(t, emptyPosts)
	assert.Empty(t, emptyPosts)

	assert.Equal(t, 1, store.CallCount("SeriesRepository.ListSeriesPostsBySeriesIDs"))
}

func TestPostLoader(t *testing.T) {
	store := inmemory.NewStore()
	owner := store.AddUser("owner")
	post := store.AddPost(owner.ID, "hello", nil)
	loaders := NewLoaders(store.Repositories())

	loaded, err := loaders.Post.Load(context.Background(), post.ID)()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "hello", loaded.Title)
}

func TestForContext(t *testing.T) {
	assert.Nil(t, For(context.Background()))

	loaders := NewLoaders(inmemory.NewStore().Repositories())
	ctx := WithLoaders(context.Background(), loaders)
	assert.Same(t, loaders, For(ctx))
}
