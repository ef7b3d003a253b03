// Package inmemory holds map-backed repositories that honor the same sentinel errors
// and uniqueness rules as the postgres ones. Services and resolvers are tested against it.
package inmemory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/repository"
	"github.com/velog-io/velog-api/internal/utils"
)

type Store struct {
	mu sync.Mutex
	// txMu serializes transactions the way a series row lock does.
	txMu sync.Mutex

	users        map[string]*models.User
	profiles     map[string]*models.UserProfile // by user id
	velogConfigs map[string]*models.VelogConfig // by user id
	series       map[string]*models.Series
	seriesPosts  []*models.SeriesPost
	posts        map[string]*models.Post
	userImages   []*models.UserImage

	// duplicateSeriesPosts makes the next n CreateSeriesPost calls fail with a unique violation.
	duplicateSeriesPosts int
	calls                map[string]int
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]*models.User),
		profiles:     make(map[string]*models.UserProfile),
		velogConfigs: make(map[string]*models.VelogConfig),
		series:       make(map[string]*models.Series),
		posts:        make(map[string]*models.Post),
		calls:        make(map[string]int),
	}
}

func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		UserRepository:      &userRepository{store: s},
		SeriesRepository:    &seriesRepository{store: s},
		PostRepository:      &postRepository{store: s},
		UserImageRepository: &userImageRepository{store: s},
	}
}

// CallCount returns how often the named repository method ran, e.g. "UserRepository.GetByIDs".
func (s *Store) CallCount(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *Store) record(method string) {
	s.calls[method]++
}

// FailNextSeriesPostInserts makes the next n series post inserts report a unique violation.
func (s *Store) FailNextSeriesPostInserts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duplicateSeriesPosts = n
}

func (s *Store) AddUser(username string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := utils.Now()
	user := &models.User{ID: uuid.NewString(), Username: username, CreatedAt: now, UpdatedAt: now}
	s.users[user.ID] = user
	s.profiles[user.ID] = &models.UserProfile{
		ID:           uuid.NewString(),
		FkUserID:     user.ID,
		DisplayName:  username,
		ProfileLinks: models.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	title := username + ".log"
	s.velogConfigs[user.ID] = &models.VelogConfig{ID: uuid.NewString(), FkUserID: user.ID, Title: &title}
	return copyOf(user)
}

func (s *Store) AddPost(userID, title string, thumbnail *string) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := utils.Now()
	post := &models.Post{
		ID:        uuid.NewString(),
		FkUserID:  userID,
		Title:     title,
		Thumbnail: thumbnail,
		URLSlug:   title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts[post.ID] = post
	return copyOf(post)
}

func (s *Store) AddSeries(userID, name, urlSlug string) *models.Series {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := utils.Now()
	series := &models.Series{ID: uuid.NewString(), FkUserID: userID, Name: name, URLSlug: urlSlug, CreatedAt: now, UpdatedAt: now}
	s.series[series.ID] = series
	return copyOf(series)
}

// AddSeriesPost inserts a row without any ordering checks, to build broken fixtures.
func (s *Store) AddSeriesPost(seriesID, postID string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seriesPosts = append(s.seriesPosts, &models.SeriesPost{
		ID:         uuid.NewString(),
		FkSeriesID: seriesID,
		FkPostID:   postID,
		Index:      index,
	})
}

// SeriesPostsOf returns the rows of a series ordered by index.
func (s *Store) SeriesPostsOf(seriesID string) []*models.SeriesPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seriesPostsOfLocked(seriesID)
}

func (s *Store) seriesPostsOfLocked(seriesID string) []*models.SeriesPost {
	result := []*models.SeriesPost{}
	for _, seriesPost := range s.seriesPosts {
		if seriesPost.FkSeriesID == seriesID {
			result = append(result, copyOf(seriesPost))
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Index < result[j].Index })
	return result
}

func (s *Store) UserImages() []*models.UserImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*models.UserImage, 0, len(s.userImages))
	for _, image := range s.userImages {
		result = append(result, copyOf(image))
	}
	return result
}

func (s *Store) userByUsernameLocked(username string) *models.User {
	for _, user := range s.users {
		if user.Username == username {
			return user
		}
	}
	return nil
}

func copyOf[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
