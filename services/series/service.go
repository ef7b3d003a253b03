package series

import (
	"context"
	"sort"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/velog-io/velog-api/dto"
	velog_errors "github.com/velog-io/velog-api/errors"
	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/enum"
	"github.com/velog-io/velog-api/internal/logger"
	"github.com/velog-io/velog-api/internal/metrics"
	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/repository"
	"github.com/velog-io/velog-api/internal/tracing"
	"github.com/velog-io/velog-api/internal/utils"
)

// appendAttempts bounds how often an append is run when a concurrent writer takes the computed index.
const appendAttempts = 2

type seriesService struct {
	repositories *repository.Repositories
	events       interfaces.EventPublisher
	metrics      *metrics.Metrics
	log          logger.Logger
}

func NewSeriesService(repos *repository.Repositories, events interfaces.EventPublisher, m *metrics.Metrics, log logger.Logger) interfaces.SeriesService {
	return &seriesService{
		repositories: repos,
		events:       events,
		metrics:      m,
		log:          log,
	}
}

func (s *seriesService) GetByID(ctx context.Context, id string) (*models.Series, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesService.GetByID")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	series, err := s.repositories.SeriesRepository.GetByID(ctx, id)
	if err != nil {
		return nil, mapSeriesErr(span, err)
	}
	return series, nil
}

func (s *seriesService) GetByUsernameAndSlug(ctx context.Context, username, urlSlug string) (*models.Series, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesService.GetByUsernameAndSlug")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	series, err := s.repositories.SeriesRepository.GetByUsernameAndSlug(ctx, username, urlSlug)
	if err != nil {
		return nil, mapSeriesErr(span, err)
	}
	return series, nil
}

func (s *seriesService) ListByUsername(ctx context.Context, username string) ([]*models.Series, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesService.ListByUsername")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	seriesList, err := s.repositories.SeriesRepository.ListByUsername(ctx, username)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return seriesList, nil
}

func (s *seriesService) ListByUserID(ctx context.Context, userID string) ([]*models.Series, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesService.ListByUserID")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	seriesList, err := s.repositories.SeriesRepository.ListByUserID(ctx, userID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return seriesList, nil
}

func (s *seriesService) Create(ctx context.Context, actingUserID string, input interfaces.CreateSeriesInput) (*models.Series, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesService.Create")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("name", input.Name, "urlSlug", input.URLSlug)

	if actingUserID == "" {
		return nil, velog_errors.ErrNotLoggedIn
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, velog_errors.Validation("Series name is required")
	}
	if !utils.IsValidUrlSlug(input.URLSlug) {
		return nil, velog_errors.Validation("Invalid url_slug")
	}

	existing, err := s.repositories.SeriesRepository.FindByOwnerNameOrSlug(ctx, actingUserID, name, input.URLSlug)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if existing != nil {
		if existing.URLSlug == input.URLSlug {
			return nil, velog_errors.AlreadyExists("URL Slug already exists")
		}
		return nil, velog_errors.AlreadyExists("Series name already exists")
	}

	series := &models.Series{
		FkUserID:    actingUserID,
		Name:        name,
		URLSlug:     input.URLSlug,
		Description: input.Description,
	}
	err = s.repositories.SeriesRepository.Create(ctx, series)
	if err != nil {
		if errors.Is(err, repository.ErrSeriesAlreadyExists) {
			return nil, velog_errors.Wrap(velog_errors.KindAlreadyExists, err, "Series already exists")
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	tracing.TagEntity(span, series.ID)

	s.publish(ctx, series.ID, enum.SERIES, dto.SeriesCreated{
		SeriesID: series.ID,
		UserID:   series.FkUserID,
		Name:     series.Name,
		URLSlug:  series.URLSlug,
	})

	return series, nil
}

// AppendPost places postID at the end of the series and returns its index.
// Checks run in order: series exists, caller owns it, post not yet in it, post exists.
func (s *seriesService) AppendPost(ctx context.Context, actingUserID, seriesID, postID string) (int, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesService.AppendPost")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, seriesID)
	span.LogKV("postID", postID)

	if actingUserID == "" {
		return 0, velog_errors.ErrNotLoggedIn
	}

	// The post is looked up outside the transaction so an append never holds two pooled connections.
	var index int
	postFound, err := s.postExists(ctx, postID)
	if err == nil {
		index, err = s.appendWithRetry(ctx, actingUserID, seriesID, postID, postFound)
	}
	if errors.Is(err, repository.ErrSeriesPostDuplicate) {
		err = velog_errors.Wrap(velog_errors.KindConflict, err, "Series was modified concurrently")
	}
	s.metrics.SeriesAppends.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}
	span.LogKV("index", index)

	s.publish(ctx, seriesID, enum.SERIES_POST, dto.SeriesPostAppended{
		SeriesID: seriesID,
		PostID:   postID,
		Index:    index,
	})

	return index, nil
}

func (s *seriesService) postExists(ctx context.Context, postID string) (bool, error) {
	_, err := s.repositories.PostRepository.GetByID(ctx, postID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrPostNotFound), errors.Is(err, repository.ErrInvalidInput):
		return false, nil
	default:
		return false, err
	}
}

func (s *seriesService) appendWithRetry(ctx context.Context, actingUserID, seriesID, postID string, postFound bool) (int, error) {
	var (
		index int
		err   error
	)
	for attempt := 1; attempt <= appendAttempts; attempt++ {
		index, err = s.appendPostOnce(ctx, actingUserID, seriesID, postID, postFound)
		if !errors.Is(err, repository.ErrSeriesPostDuplicate) {
			break
		}
		if attempt < appendAttempts {
			s.metrics.SeriesAppendRetry.Inc()
			s.log.Warnf("Index collision appending post %s to series %s, retrying", postID, seriesID)
		}
	}
	return index, err
}

func (s *seriesService) appendPostOnce(ctx context.Context, actingUserID, seriesID, postID string, postFound bool) (int, error) {
	var index int

	err := s.repositories.SeriesRepository.Transaction(ctx, func(txRepo interfaces.SeriesRepository) error {
		series, err := txRepo.GetByIDForUpdate(ctx, seriesID)
		if err != nil {
			if errors.Is(err, repository.ErrSeriesNotFound) || errors.Is(err, repository.ErrInvalidInput) {
				return velog_errors.NotFound("Series not found")
			}
			return err
		}
		if series.FkUserID != actingUserID {
			return velog_errors.PermissionDenied("This series is not yours")
		}

		seriesPosts, err := txRepo.ListSeriesPosts(ctx, seriesID)
		if err != nil {
			return err
		}
		if ContainsPost(seriesPosts, postID) {
			return velog_errors.Conflict("Already added to series")
		}

		if !postFound {
			return velog_errors.NotFound("Post not found")
		}

		index = NextIndex(seriesPosts)
		return txRepo.CreateSeriesPost(ctx, &models.SeriesPost{
			FkSeriesID: seriesID,
			FkPostID:   postID,
			Index:      index,
		})
	})
	if err != nil {
		return 0, err
	}
	return index, nil
}

// AuditOrdering reports every series whose indexes are not exactly {1..n}, sorted by series id.
func (s *seriesService) AuditOrdering(ctx context.Context) ([]interfaces.SeriesOrderingIssue, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "seriesService.AuditOrdering")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	indexesBySeries, err := s.repositories.SeriesRepository.ListAllSeriesIndexes(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	seriesIDs := make([]string, 0, len(indexesBySeries))
	for seriesID := range indexesBySeries {
		seriesIDs = append(seriesIDs, seriesID)
	}
	sort.Strings(seriesIDs)

	issues := []interfaces.SeriesOrderingIssue{}
	for _, seriesID := range seriesIDs {
		if issue := FindOrderingIssue(seriesID, indexesBySeries[seriesID]); issue != nil {
			issues = append(issues, *issue)
		}
	}

	s.metrics.OrderingIssues.Set(float64(len(issues)))
	span.LogKV("series.checked", len(seriesIDs), "issues", len(issues))
	return issues, nil
}

func (s *seriesService) publish(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) {
	if err := s.events.PublishEvent(ctx, entityId, entityType, message); err != nil {
		s.log.Errorf("Failed to publish %s event for %s: %v", entityType, entityId, err)
	}
}

func mapSeriesErr(span opentracing.Span, err error) error {
	if errors.Is(err, repository.ErrSeriesNotFound) || errors.Is(err, repository.ErrInvalidInput) {
		return velog_errors.Wrap(velog_errors.KindNotFound, err, "Series not found")
	}
	tracing.TraceErr(span, err)
	return err
}
