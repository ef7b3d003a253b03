package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"gorm.io/gorm"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/velog-io/velog-api/api"
	"github.com/velog-io/velog-api/config"
	"github.com/velog-io/velog-api/internal/cron"
	"github.com/velog-io/velog-api/internal/logger"
	"github.com/velog-io/velog-api/internal/metrics"
	"github.com/velog-io/velog-api/internal/repository"
	"github.com/velog-io/velog-api/internal/tracing"
	"github.com/velog-io/velog-api/services"
)

type Server struct {
	config       *config.Config
	logger       logger.Logger
	httpServer   *http.Server
	router       *gin.Engine
	services     *services.Services
	repositories *repository.Repositories
	metrics      *metrics.Metrics
	cronManager  *cron.CronManager
	tracerCloser io.Closer
}

func NewServer(cfg *config.Config, velogDB *gorm.DB) (*Server, error) {
	// Initialize logger
	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	// Initialize tracing
	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, appLogger)
	if err != nil {
		log.Fatalf("Could not initialize jaeger tracer: %s", err.Error())
	}
	opentracing.SetGlobalTracer(tracer)

	// Initialize repositories
	repos := repository.InitRepositories(velogDB)

	m := metrics.NewMetrics()

	// Initialize services
	svcs, err := services.InitServices(cfg, appLogger, repos, m)
	if err != nil {
		return nil, err
	}

	// Initialize Gin
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	return &Server{
		config:       cfg,
		logger:       appLogger,
		router:       router,
		services:     svcs,
		repositories: repos,
		metrics:      m,
		cronManager:  cron.NewCronManager(cfg, appLogger, kubernetesClient(), svcs.SeriesService),
		tracerCloser: closer,
		httpServer: &http.Server{
			Addr:              ":" + cfg.AppConfig.APIPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// kubernetesClient returns nil outside a cluster; crons then run without leader election.
func kubernetesClient() kubernetes.Interface {
	restConfig, err := rest.InClusterConfig()
	if err != nil {
		return nil
	}
	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		log.Printf("Could not create kubernetes client: %v", err)
		return nil
	}
	return client
}

func (s *Server) Initialize() error {
	// Setup API routes
	return api.RegisterRoutes(s.router, s.config, s.services, s.repositories, s.metrics, s.logger)
}

func (s *Server) recoverWithJaeger(name string) {
	if r := recover(); r != nil {
		// Create a new span for the panic
		span := opentracing.GlobalTracer().StartSpan(
			fmt.Sprintf("panic.%s", name),
		)
		defer span.Finish()

		// Mark span as failed
		ext.Error.Set(span, true)

		span.LogKV(
			"event", "panic",
			"process", name,
			"error", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)

		log.Printf("❌ Panic in %s: %v\n%s", name, r, debug.Stack())
	}
}

func (s *Server) wrapGoroutine(name string, fn func()) {
	defer s.recoverWithJaeger(name)
	fn()
}

func (s *Server) Run() error {
	if err := s.Initialize(); err != nil {
		return err
	}

	log.Println("Starting cron manager...")
	podName := os.Getenv("POD_NAME")
	if podName == "" {
		podName = "local"
	}
	if err := s.cronManager.Start(podName, os.Getenv("POD_NAMESPACE")); err != nil {
		log.Printf("❌ Cron manager error: %v", err)
	}

	// Start HTTP server in a goroutine with panic recovery
	go s.wrapGoroutine("http_server", func() {
		log.Println("Starting HTTP server")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ HTTP server error: %v", err)
		}
	})
	log.Println("✅ HTTP server started successfully")
	log.Println("velog-api is now running. Press Ctrl+C to exit.")

	return s.waitForShutdown()
}

func (s *Server) waitForShutdown() error {
	defer s.recoverWithJaeger("shutdown")

	// Set up signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	log.Println("Shutting down HTTP server...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ HTTP server shutdown error: %v", err)
	} else {
		log.Println("✅ HTTP server shut down successfully")
	}

	log.Println("Stopping cron manager...")
	s.cronManager.Stop()

	if err := s.services.EventPublisher.Close(); err != nil {
		log.Printf("❌ Event publisher shutdown error: %v", err)
	}

	if s.tracerCloser != nil {
		s.tracerCloser.Close()
	}
	s.logger.Sync()

	return nil
}
