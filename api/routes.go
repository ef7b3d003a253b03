package api

import (
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velog-io/velog-api/api/graphql/resolver"
	"github.com/velog-io/velog-api/api/handlers"
	"github.com/velog-io/velog-api/api/middleware"
	"github.com/velog-io/velog-api/config"
	"github.com/velog-io/velog-api/internal/auth"
	"github.com/velog-io/velog-api/internal/logger"
	"github.com/velog-io/velog-api/internal/metrics"
	"github.com/velog-io/velog-api/internal/repository"
	"github.com/velog-io/velog-api/internal/tracing"
	"github.com/velog-io/velog-api/services"
)

const metricsAPIKeyHeader = "X-VELOG-METRICS-KEY"

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, cfg *config.Config, s *services.Services, repos *repository.Repositories, m *metrics.Metrics, log logger.Logger) error {
	if s == nil {
		return errors.New("services cannot be nil")
	}
	if repos == nil {
		return errors.New("repositories cannot be nil")
	}

	schema, err := resolver.NewSchema(resolver.NewResolver(s, repos, log))
	if err != nil {
		return errors.Wrap(err, "failed to parse graphql schema")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())                                         // Gin's built-in recovery
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer())) // Our custom Jaeger recovery
	r.Use(middleware.MetricsMiddleware(m))

	// Health check and metrics (no custom context needed)
	r.GET("/health", handlers.HealthCheck)
	if cfg.AppConfig.MetricsEnabled {
		r.GET("/metrics",
			middleware.APIKeyMiddleware(middleware.APIKeyConfig{
				HeaderName:  metricsAPIKeyHeader,
				ValidAPIKey: cfg.AppConfig.MetricsAPIKey,
			}),
			gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})),
		)
	}

	tokens := auth.NewTokenManager(cfg.AuthConfig)
	authenticated := []gin.HandlerFunc{
		middleware.AuthMiddleware(tokens, cfg.AuthConfig.AccessCookieName),
		middleware.CustomContextMiddleware(config.AppName),
	}

	graphqlGroup := r.Group("/graphql", authenticated...)
	graphqlGroup.Use(tracing.GraphQlTracingEnhancer())
	graphqlGroup.POST("", handlers.GraphQL(schema, repos, m))

	if cfg.AppConfig.PlaygroundEnabled {
		r.GET("/playground", gin.WrapF(playground.Handler("velog", "/graphql")))
	}

	// REST API
	v2 := r.Group("/api/v2", authenticated...)
	v2.Use(middleware.TracingMiddleware())
	{
		v2.GET("/check", handlers.Check)
		v2.GET("/test", handlers.Test)

		authRoutes := v2.Group("/auth")
		{
			authRoutes.POST("/logout", handlers.Logout(cfg.AuthConfig))
			authRoutes.GET("/me", handlers.Me(s.UserService))
		}

		files := v2.Group("/files")
		{
			files.POST("/create-url/general", handlers.CreateUploadURL(s.FilesService))
			files.POST("/upload", handlers.Upload(s.FilesService))
		}

		common := v2.Group("/common")
		{
			common.GET("/health", handlers.HealthCheck)
		}
	}

	return nil
}
