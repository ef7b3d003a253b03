package files

import (
	"context"
	"fmt"
	"mime"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/velog-io/velog-api/dto"
	velog_errors "github.com/velog-io/velog-api/errors"
	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/enum"
	"github.com/velog-io/velog-api/internal/logger"
	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/repository"
	"github.com/velog-io/velog-api/internal/tracing"
	"github.com/velog-io/velog-api/internal/utils"
)

const MaxFileSize = 10 * 1024 * 1024

var allowedImageTypes = []string{string(models.UserImageTypePost), string(models.UserImageTypeProfile)}

type filesService struct {
	repositories *repository.Repositories
	storage      interfaces.StorageService
	events       interfaces.EventPublisher
	uploadURLTTL time.Duration
	log          logger.Logger
}

func NewFilesService(repos *repository.Repositories, storage interfaces.StorageService, events interfaces.EventPublisher, uploadURLTTL time.Duration, log logger.Logger) interfaces.FilesService {
	return &filesService{
		repositories: repos,
		storage:      storage,
		events:       events,
		uploadURLTTL: uploadURLTTL,
		log:          log,
	}
}

// ImageKey is the object key of an uploaded image.
func ImageKey(username string, imageType models.UserImageType, imageID, filename string) string {
	return fmt.Sprintf("images/%s/%s/%s/%s", username, imageType, imageID, filename)
}

func (s *filesService) CreateUploadURL(ctx context.Context, actingUserID string, request interfaces.FileRequest) (*interfaces.UploadURL, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "filesService.CreateUploadURL")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "request", request)

	image, err := s.prepareImage(ctx, actingUserID, request)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	contentType := mime.TypeByExtension(path.Ext(image.Path))
	signedURL, err := s.storage.PresignUpload(ctx, image.Path, contentType, s.uploadURLTTL)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to presign upload")
	}

	if err := s.saveImage(ctx, image); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return &interfaces.UploadURL{
		Image:     image,
		SignedURL: signedURL,
		ImageURL:  s.storage.GetPublicURL(image.Path),
	}, nil
}

func (s *filesService) Upload(ctx context.Context, actingUserID string, request interfaces.FileRequest, data []byte, contentType string) (*interfaces.UploadURL, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "filesService.Upload")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	request.Filesize = int64(len(data))
	image, err := s.prepareImage(ctx, actingUserID, request)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(image.Path))
	}
	if err := s.storage.Upload(ctx, image.Path, data, contentType); err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to upload image")
	}

	if err := s.saveImage(ctx, image); err != nil {
		tracing.TraceErr(span, err)
		if deleteErr := s.storage.Delete(ctx, image.Path); deleteErr != nil {
			s.log.Errorf("Failed to delete orphaned image %s: %v", image.Path, deleteErr)
		}
		return nil, err
	}

	return &interfaces.UploadURL{
		Image:    image,
		ImageURL: s.storage.GetPublicURL(image.Path),
	}, nil
}

func (s *filesService) prepareImage(ctx context.Context, actingUserID string, request interfaces.FileRequest) (*models.UserImage, error) {
	if actingUserID == "" {
		return nil, velog_errors.ErrNotLoggedIn
	}

	filename, err := validateFileRequest(request)
	if err != nil {
		return nil, err
	}

	user, err := s.repositories.UserRepository.GetByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, velog_errors.Wrap(velog_errors.KindNotFound, err, "User not found")
		}
		return nil, err
	}

	image := &models.UserImage{
		ID:       uuid.NewString(),
		FkUserID: user.ID,
		Filesize: request.Filesize,
		Type:     request.Type,
		RefID:    utils.StringPtrOrNil(request.RefID),
	}
	image.Path = ImageKey(user.Username, image.Type, image.ID, filename)
	return image, nil
}

func (s *filesService) saveImage(ctx context.Context, image *models.UserImage) error {
	if err := s.repositories.UserImageRepository.Create(ctx, image); err != nil {
		return errors.Wrap(err, "failed to save user image")
	}

	if err := s.events.PublishEvent(ctx, image.ID, enum.USER_IMAGE, dto.UserImageCreated{
		ImageID: image.ID,
		UserID:  image.FkUserID,
		Type:    string(image.Type),
		Path:    image.Path,
	}); err != nil {
		s.log.Errorf("Failed to publish user image %s: %v", image.ID, err)
	}
	return nil
}

// validateFileRequest returns the sanitized filename.
func validateFileRequest(request interfaces.FileRequest) (string, error) {
	validationErrors := velog_errors.NewMultiErrors()

	if !utils.IsStringInSlice(string(request.Type), allowedImageTypes) {
		validationErrors.Add("type", fmt.Sprintf("type must be one of %v", allowedImageTypes), nil)
	}

	filename := utils.SanitizeFilename(request.Filename)
	if filename == "" {
		validationErrors.Add("filename", "filename is required", nil)
	}

	if request.Filesize <= 0 {
		validationErrors.Add("filesize", "file is empty", nil)
	} else if request.Filesize > MaxFileSize {
		validationErrors.Add("filesize", "file is too big", nil)
	}

	if request.RefID != "" {
		if _, err := uuid.Parse(request.RefID); err != nil {
			validationErrors.Add("ref_id", "ref_id must be a uuid", err)
		}
	}

	if validationErrors.HasErrors() {
		return "", velog_errors.Wrap(velog_errors.KindValidation, validationErrors, "Invalid file request")
	}
	return filename, nil
}
