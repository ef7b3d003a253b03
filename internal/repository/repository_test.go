package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return db, mock
}

const (
	testSeriesID = "0b6a54e2-7f5d-4c1e-9d0a-3c2f1e8b7a61"
	testUserID   = "5d3c1b2a-9e8f-4a7b-8c6d-1e2f3a4b5c6d"
	testPostID   = "9a8b7c6d-5e4f-4321-8fed-cba987654321"
	missingID    = "00000000-0000-4000-8000-000000000000"
)

func q(sql string) string {
	return regexp.QuoteMeta(sql)
}

func TestSeriesRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSeriesRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(q(`SELECT * FROM "series" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fk_user_id", "name", "url_slug"}).
			AddRow(testSeriesID, testUserID, "Go", "go"))

	series, err := repo.GetByID(ctx, testSeriesID)
	require.NoError(t, err)
	assert.Equal(t, testSeriesID, series.ID)
	assert.Equal(t, testUserID, series.FkUserID)
	assert.Equal(t, "go", series.URLSlug)

	mock.ExpectQuery(q(`SELECT * FROM "series" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(ctx, missingID)
	assert.ErrorIs(t, err, ErrSeriesNotFound)

	_, err = repo.GetByID(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeriesRepository_GetByIDForUpdate_Locks(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSeriesRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "series" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fk_user_id"}).AddRow(testSeriesID, testUserID))

	series, err := repo.GetByIDForUpdate(context.Background(), testSeriesID)
	require.NoError(t, err)
	assert.Equal(t, testSeriesID, series.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeriesRepository_Transaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSeriesRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fk_user_id"}).AddRow(testSeriesID, testUserID))
	mock.ExpectCommit()

	err := repo.Transaction(context.Background(), func(txRepo interfaces.SeriesRepository) error {
		_, err := txRepo.GetByIDForUpdate(context.Background(), testSeriesID)
		return err
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = repo.Transaction(context.Background(), func(txRepo interfaces.SeriesRepository) error {
		return ErrSeriesPostDuplicate
	})
	assert.ErrorIs(t, err, ErrSeriesPostDuplicate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeriesRepository_CreateSeriesPost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSeriesRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(q(`INSERT INTO "series_posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	seriesPost := &models.SeriesPost{FkSeriesID: testSeriesID, FkPostID: testPostID, Index: 1}
	require.NoError(t, repo.CreateSeriesPost(ctx, seriesPost))
	assert.NotEmpty(t, seriesPost.ID)

	mock.ExpectQuery(q(`INSERT INTO "series_posts"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.CreateSeriesPost(ctx, &models.SeriesPost{FkSeriesID: testSeriesID, FkPostID: "post-2", Index: 1})
	assert.ErrorIs(t, err, ErrSeriesPostDuplicate)

	err = repo.CreateSeriesPost(ctx, &models.SeriesPost{FkSeriesID: testSeriesID, FkPostID: "post-3", Index: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeriesRepository_Create_Duplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSeriesRepository(db)

	mock.ExpectQuery(q(`INSERT INTO "series"`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &models.Series{FkUserID: testUserID, Name: "Go", URLSlug: "go"})
	assert.ErrorIs(t, err, ErrSeriesAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeriesRepository_ListAllSeriesIndexes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSeriesRepository(db)

	mock.ExpectQuery(`SELECT fk_series_id, "index" FROM "series_posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"fk_series_id", "index"}).
			AddRow("a", 1).
			AddRow("a", 2).
			AddRow("b", 1).
			AddRow("b", 3))

	indexes, err := repo.ListAllSeriesIndexes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]int{"a": {1, 2}, "b": {1, 3}}, indexes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeriesRepository_ListSeriesPostsBySeriesIDs_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSeriesRepository(db)

	seriesPosts, err := repo.ListSeriesPostsBySeriesIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, seriesPosts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(q(`SELECT * FROM "users" WHERE username = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(testUserID, "velopert"))

	user, err := repo.GetByUsername(ctx, "velopert")
	require.NoError(t, err)
	assert.Equal(t, testUserID, user.ID)

	mock.ExpectQuery(q(`SELECT * FROM "users" WHERE username = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetVelogConfigByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`JOIN users ON users.id = velog_configs.fk_user_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fk_user_id", "title"}).AddRow("cfg-1", testUserID, "velopert.log"))

	velogConfig, err := repo.GetVelogConfigByUsername(context.Background(), "velopert")
	require.NoError(t, err)
	require.NotNil(t, velogConfig.Title)
	assert.Equal(t, "velopert.log", *velogConfig.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateProfileAbout(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectExec(q(`UPDATE "user_profiles" SET "about"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	profile := &models.UserProfile{ID: "profile-1", FkUserID: testUserID}
	require.NoError(t, repo.UpdateProfileAbout(ctx, profile, "hello"))
	assert.Equal(t, "hello", profile.About)

	err := repo.UpdateProfileAbout(ctx, &models.UserProfile{}, "hello")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByIDs_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	users, err := repo.GetByIDs(context.Background(), []string{})
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(q(`SELECT * FROM "posts" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fk_user_id", "title"}).AddRow(testPostID, testUserID, "Hello"))

	post, err := repo.GetByID(ctx, testPostID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)

	mock.ExpectQuery(q(`SELECT * FROM "posts" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(ctx, missingID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositories_MalformedIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repos := InitRepositories(db)
	ctx := context.Background()

	_, err := repos.SeriesRepository.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = repos.SeriesRepository.GetByIDForUpdate(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = repos.PostRepository.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = repos.UserRepository.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = repos.UserRepository.GetProfileByUserID(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)

	seriesPosts, err := repos.SeriesRepository.ListSeriesPosts(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, seriesPosts)

	seriesPosts, err = repos.SeriesRepository.ListSeriesPostsBySeriesIDs(ctx, []string{"nope", "also-nope"})
	require.NoError(t, err)
	assert.Empty(t, seriesPosts)

	posts, err := repos.PostRepository.GetByIDs(ctx, []string{"nope"})
	require.NoError(t, err)
	assert.Empty(t, posts)

	// malformed keys are dropped from a batch, the rest is still queried
	mock.ExpectQuery(q(`SELECT * FROM "users" WHERE id IN ($1)`)).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(testUserID, "velopert"))

	users, err := repos.UserRepository.GetByIDs(ctx, []string{"nope", testUserID})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "velopert", users[0].Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}
