package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/opentracing/opentracing-go"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	api_errors "github.com/velog-io/velog-api/api/errors"
	"github.com/velog-io/velog-api/api/graphql/loaders"
	velog_errors "github.com/velog-io/velog-api/errors"
	"github.com/velog-io/velog-api/internal/metrics"
	"github.com/velog-io/velog-api/internal/repository"
	"github.com/velog-io/velog-api/internal/tracing"
)

const anonymousOperation = "anonymous"

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors gqlerror.List   `json:"errors,omitempty"`
}

// GraphQL executes a single GraphQL request with a fresh set of loaders.
func GraphQL(schema *graphql.Schema, repos *repository.Repositories, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "GraphQL.Exec")
		defer span.Finish()
		tracing.SetDefaultGraphqlSpanTags(ctx, span)

		var request graphqlRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, graphqlResponse{
				Errors: gqlerror.List{api_errors.ToGqlError(velog_errors.Wrap(velog_errors.KindValidation, err, "Invalid GraphQL request body"))},
			})
			return
		}

		operation := request.OperationName
		if operation == "" {
			operation = anonymousOperation
		}
		span.SetTag("graphql.operation", operation)

		ctx = loaders.WithLoaders(ctx, loaders.NewLoaders(repos))
		result := schema.Exec(ctx, request.Query, request.OperationName, request.Variables)

		response := graphqlResponse{
			Data:   result.Data,
			Errors: toGqlErrors(result.Errors),
		}
		if len(response.Errors) > 0 {
			span.LogKV("graphql.errors", len(response.Errors))
			m.GraphQLRequests.WithLabelValues(operation, metrics.OutcomeError).Inc()
		} else {
			m.GraphQLRequests.WithLabelValues(operation, metrics.OutcomeSuccess).Inc()
		}

		c.JSON(http.StatusOK, response)
	}
}

// toGqlErrors renders query errors with a code on every entry. Errors raised while executing a
// field are internal unless the resolver attached a code; errors without a path come from
// parsing or validation.
func toGqlErrors(queryErrors []*gqlerrors.QueryError) gqlerror.List {
	if len(queryErrors) == 0 {
		return nil
	}

	list := make(gqlerror.List, 0, len(queryErrors))
	for _, queryError := range queryErrors {
		gqlErr := &gqlerror.Error{
			Message:    queryError.Message,
			Path:       toPath(queryError.Path),
			Extensions: queryError.Extensions,
		}
		for _, location := range queryError.Locations {
			gqlErr.Locations = append(gqlErr.Locations, gqlerror.Location{Line: location.Line, Column: location.Column})
		}

		if _, ok := gqlErr.Extensions["code"]; !ok {
			if len(queryError.Path) > 0 {
				gqlErr.Message = api_errors.Message(queryError)
				gqlErr.Extensions = map[string]interface{}{"code": api_errors.CodeInternal}
			} else {
				gqlErr.Extensions = map[string]interface{}{"code": api_errors.CodeBadInput}
			}
		}
		list = append(list, gqlErr)
	}
	return list
}

func toPath(path []interface{}) ast.Path {
	if len(path) == 0 {
		return nil
	}
	result := make(ast.Path, 0, len(path))
	for _, element := range path {
		switch v := element.(type) {
		case string:
			result = append(result, ast.PathName(v))
		case int:
			result = append(result, ast.PathIndex(v))
		}
	}
	return result
}
