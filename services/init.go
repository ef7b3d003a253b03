package services

import (
	"github.com/velog-io/velog-api/config"
	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/logger"
	"github.com/velog-io/velog-api/internal/metrics"
	"github.com/velog-io/velog-api/internal/repository"
	"github.com/velog-io/velog-api/services/events"
	"github.com/velog-io/velog-api/services/files"
	"github.com/velog-io/velog-api/services/series"
	"github.com/velog-io/velog-api/services/storage"
	"github.com/velog-io/velog-api/services/user"
)

type Services struct {
	EventPublisher interfaces.EventPublisher
	StorageService interfaces.StorageService
	SeriesService  interfaces.SeriesService
	UserService    interfaces.UserService
	FilesService   interfaces.FilesService
}

func InitServices(cfg *config.Config, log logger.Logger, repos *repository.Repositories, m *metrics.Metrics) (*Services, error) {
	// events
	publisher, err := events.NewEventPublisher(cfg.AppConfig.RabbitMQURL, log, events.DefaultPublisherConfig())
	if err != nil {
		return nil, err
	}

	storageService, err := storage.NewStorageServiceFromConfig(cfg.StorageConfig)
	if err != nil {
		publisher.Close()
		return nil, err
	}

	services := Services{
		EventPublisher: publisher,
		StorageService: storageService,
		SeriesService:  series.NewSeriesService(repos, publisher, m, log),
		UserService:    user.NewUserService(repos, publisher, log),
		FilesService:   files.NewFilesService(repos, storageService, publisher, cfg.StorageConfig.UploadURLTTL, log),
	}

	return &services, nil
}
