package resolver

import (
	"context"
	"runtime/debug"

	"github.com/graph-gophers/graphql-go"

	api_errors "github.com/velog-io/velog-api/api/errors"
	"github.com/velog-io/velog-api/api/graphql/loaders"
	"github.com/velog-io/velog-api/api/graphql/schema"
	velog_errors "github.com/velog-io/velog-api/errors"
	"github.com/velog-io/velog-api/internal/logger"
	"github.com/velog-io/velog-api/internal/repository"
	"github.com/velog-io/velog-api/services"
)

const (
	maxQueryDepth  = 12
	maxParallelism = 10
)

// Resolver is the root resolver for both Query and Mutation fields.
type Resolver struct {
	services     *services.Services
	repositories *repository.Repositories
	log          logger.Logger
}

func NewResolver(s *services.Services, repos *repository.Repositories, log logger.Logger) *Resolver {
	return &Resolver{
		services:     s,
		repositories: repos,
		log:          log,
	}
}

// NewSchema parses the embedded SDL against the resolver tree.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(schema.SDL, r,
		graphql.MaxDepth(maxQueryDepth),
		graphql.MaxParallelism(maxParallelism),
		graphql.Logger(&panicLogger{log: r.log}),
	)
}

// loaders returns the request's loaders, or a fresh set when the request carries none.
func (r *Resolver) loaders(ctx context.Context) *loaders.Loaders {
	if l := loaders.For(ctx); l != nil {
		return l
	}
	return loaders.NewLoaders(r.repositories)
}

type panicLogger struct {
	log logger.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.log.Errorf("graphql: panic occurred: %v\n%s", value, debug.Stack())
}

func isNotFound(err error) bool {
	return velog_errors.IsKind(err, velog_errors.KindNotFound)
}

func resolverErr(err error) error {
	return api_errors.FromError(err)
}
