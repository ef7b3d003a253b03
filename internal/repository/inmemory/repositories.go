package inmemory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/repository"
	"github.com/velog-io/velog-api/internal/utils"
)

type seriesRepository struct {
	store *Store
	inTx  bool
}

func (r *seriesRepository) Transaction(ctx context.Context, fn func(txRepo interfaces.SeriesRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	return fn(&seriesRepository{store: r.store, inTx: true})
}

func (r *seriesRepository) GetByID(ctx context.Context, id string) (*models.Series, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("SeriesRepository.GetByID")

	if id == "" {
		return nil, repository.ErrInvalidInput
	}
	series, ok := s.series[id]
	if !ok {
		return nil, repository.ErrSeriesNotFound
	}
	return copyOf(series), nil
}

func (r *seriesRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Series, error) {
	return r.GetByID(ctx, id)
}

func (r *seriesRepository) GetByUsernameAndSlug(ctx context.Context, username, urlSlug string) (*models.Series, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" || urlSlug == "" {
		return nil, repository.ErrInvalidInput
	}
	user := s.userByUsernameLocked(username)
	if user == nil {
		return nil, repository.ErrSeriesNotFound
	}
	for _, series := range s.series {
		if series.FkUserID == user.ID && series.URLSlug == urlSlug {
			return copyOf(series), nil
		}
	}
	return nil, repository.ErrSeriesNotFound
}

func (r *seriesRepository) ListByUsername(ctx context.Context, username string) ([]*models.Series, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*models.Series{}
	user := s.userByUsernameLocked(username)
	if user == nil {
		return result, nil
	}
	for _, series := range s.series {
		if series.FkUserID == user.ID {
			result = append(result, copyOf(series))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *seriesRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Series, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*models.Series{}
	for _, series := range s.series {
		if series.FkUserID == userID {
			result = append(result, copyOf(series))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

func (r *seriesRepository) FindByOwnerNameOrSlug(ctx context.Context, userID, name, urlSlug string) (*models.Series, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, series := range s.series {
		if series.FkUserID == userID && (series.Name == name || series.URLSlug == urlSlug) {
			return copyOf(series), nil
		}
	}
	return nil, nil
}

func (r *seriesRepository) Create(ctx context.Context, series *models.Series) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if series == nil || series.FkUserID == "" {
		return repository.ErrInvalidInput
	}
	for _, existing := range s.series {
		if existing.FkUserID == series.FkUserID && (existing.Name == series.Name || existing.URLSlug == series.URLSlug) {
			return repository.ErrSeriesAlreadyExists
		}
	}
	if series.ID == "" {
		series.ID = uuid.NewString()
	}
	now := utils.Now()
	series.CreatedAt, series.UpdatedAt = now, now
	s.series[series.ID] = copyOf(series)
	return nil
}

func (r *seriesRepository) ListSeriesPosts(ctx context.Context, seriesID string) ([]*models.SeriesPost, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("SeriesRepository.ListSeriesPosts")

	return s.seriesPostsOfLocked(seriesID), nil
}

func (r *seriesRepository) ListSeriesPostsBySeriesIDs(ctx context.Context, seriesIDs []string) ([]*models.SeriesPost, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("SeriesRepository.ListSeriesPostsBySeriesIDs")

	result := []*models.SeriesPost{}
	for _, seriesID := range seriesIDs {
		result = append(result, s.seriesPostsOfLocked(seriesID)...)
	}
	return result, nil
}

func (r *seriesRepository) CreateSeriesPost(ctx context.Context, seriesPost *models.SeriesPost) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if seriesPost == nil || seriesPost.FkSeriesID == "" || seriesPost.FkPostID == "" || seriesPost.Index < 1 {
		return repository.ErrInvalidInput
	}
	if s.duplicateSeriesPosts > 0 {
		s.duplicateSeriesPosts--
		return repository.ErrSeriesPostDuplicate
	}
	for _, existing := range s.seriesPosts {
		if existing.FkSeriesID != seriesPost.FkSeriesID {
			continue
		}
		if existing.Index == seriesPost.Index || existing.FkPostID == seriesPost.FkPostID {
			return repository.ErrSeriesPostDuplicate
		}
	}
	if seriesPost.ID == "" {
		seriesPost.ID = uuid.NewString()
	}
	now := utils.Now()
	seriesPost.CreatedAt, seriesPost.UpdatedAt = now, now
	s.seriesPosts = append(s.seriesPosts, copyOf(seriesPost))
	return nil
}

func (r *seriesRepository) ListAllSeriesIndexes(ctx context.Context) (map[string][]int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string][]int)
	for _, seriesPost := range s.seriesPosts {
		result[seriesPost.FkSeriesID] = append(result[seriesPost.FkSeriesID], seriesPost.Index)
	}
	for _, indexes := range result {
		sort.Ints(indexes)
	}
	return result, nil
}

type userRepository struct {
	store *Store
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("UserRepository.GetByID")

	if id == "" {
		return nil, repository.ErrInvalidInput
	}
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return copyOf(user), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" {
		return nil, repository.ErrInvalidInput
	}
	user := s.userByUsernameLocked(username)
	if user == nil {
		return nil, repository.ErrUserNotFound
	}
	return copyOf(user), nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("UserRepository.GetByIDs")

	result := []*models.User{}
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			result = append(result, copyOf(user))
		}
	}
	return result, nil
}

func (r *userRepository) GetProfileByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID == "" {
		return nil, repository.ErrInvalidInput
	}
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, repository.ErrUserProfileNotFound
	}
	return copyOf(profile), nil
}

func (r *userRepository) GetProfilesByUserIDs(ctx context.Context, userIDs []string) ([]*models.UserProfile, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("UserRepository.GetProfilesByUserIDs")

	result := []*models.UserProfile{}
	for _, userID := range userIDs {
		if profile, ok := s.profiles[userID]; ok {
			result = append(result, copyOf(profile))
		}
	}
	return result, nil
}

func (r *userRepository) UpdateProfileAbout(ctx context.Context, profile *models.UserProfile, about string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile == nil || profile.ID == "" {
		return repository.ErrInvalidInput
	}
	stored, ok := s.profiles[profile.FkUserID]
	if !ok || stored.ID != profile.ID {
		return repository.ErrUserProfileNotFound
	}
	stored.About = about
	stored.UpdatedAt = utils.Now()
	profile.About = about
	profile.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *userRepository) GetVelogConfigByUsername(ctx context.Context, username string) (*models.VelogConfig, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" {
		return nil, repository.ErrInvalidInput
	}
	user := s.userByUsernameLocked(username)
	if user == nil {
		return nil, repository.ErrVelogConfigNotFound
	}
	velogConfig, ok := s.velogConfigs[user.ID]
	if !ok {
		return nil, repository.ErrVelogConfigNotFound
	}
	return copyOf(velogConfig), nil
}

func (r *userRepository) GetVelogConfigsByUserIDs(ctx context.Context, userIDs []string) ([]*models.VelogConfig, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("UserRepository.GetVelogConfigsByUserIDs")

	result := []*models.VelogConfig{}
	for _, userID := range userIDs {
		if velogConfig, ok := s.velogConfigs[userID]; ok {
			result = append(result, copyOf(velogConfig))
		}
	}
	return result, nil
}

type postRepository struct {
	store *Store
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("PostRepository.GetByID")

	if id == "" {
		return nil, repository.ErrInvalidInput
	}
	post, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	return copyOf(post), nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Post, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("PostRepository.GetByIDs")

	result := []*models.Post{}
	for _, id := range ids {
		if post, ok := s.posts[id]; ok {
			result = append(result, copyOf(post))
		}
	}
	return result, nil
}

type userImageRepository struct {
	store *Store
}

func (r *userImageRepository) Create(ctx context.Context, image *models.UserImage) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if image == nil || image.FkUserID == "" {
		return repository.ErrInvalidInput
	}
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	image.CreatedAt = utils.Now()
	s.userImages = append(s.userImages, copyOf(image))
	return nil
}
