package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// WorkspaceQuery is the query sent to the GraphQL endpoint. It asks for every
// code location with its repositories and their pipelines/jobs.
const WorkspaceQuery = `query RepositorySelectionWorkspaceQuery {
  workspaceOrError {
    __typename
    ... on Workspace {
      locationEntries {
        id
        name
        locationOrLoadError {
          __typename
          ... on RepositoryLocation {
            id
            name
            repositories {
              id
              name
              pipelines {
                id
                name
                isJob
              }
            }
          }
          ... on PythonError {
            message
          }
        }
      }
    }
    ... on PythonError {
      message
    }
  }
}`

const defaultMaxElapsed = 30 * time.Second

// GraphQLSource answers the workspace query against a GraphQL HTTP endpoint.
type GraphQLSource struct {
	endpoint   string
	client     *http.Client
	logger     *zap.Logger
	maxElapsed time.Duration
}

// GraphQLOption configures a GraphQLSource.
type GraphQLOption func(*GraphQLSource)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) GraphQLOption {
	return func(s *GraphQLSource) { s.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) GraphQLOption {
	return func(s *GraphQLSource) { s.logger = l }
}

// WithMaxElapsed bounds the total time spent retrying. Zero disables retries.
func WithMaxElapsed(d time.Duration) GraphQLOption {
	return func(s *GraphQLSource) { s.maxElapsed = d }
}

// NewGraphQLSource creates a GraphQLSource for endpoint.
func NewGraphQLSource(endpoint string, opts ...GraphQLOption) *GraphQLSource {
	s := &GraphQLSource{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     zap.NewNop(),
		maxElapsed: defaultMaxElapsed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Endpoint returns the GraphQL endpoint URL.
func (s *GraphQLSource) Endpoint() string {
	return s.endpoint
}

type graphQLRequest struct {
	Query         string `json:"query"`
	OperationName string `json:"operationName,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data struct {
		WorkspaceOrError *struct {
			Typename string `json:"__typename"`
			Message  string `json:"message"`
			Response
		} `json:"workspaceOrError"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Fetch runs the workspace query, retrying transient failures (network
// errors, 5xx and 429 responses) with exponential backoff.
func (s *GraphQLSource) Fetch(ctx context.Context) ([]Repository, error) {
	var resp *Response

	op := func() error {
		r, err := s.query(ctx)
		if err != nil {
			var perm *backoff.PermanentError
			if !errors.As(err, &perm) {
				s.logger.Debug("workspace query attempt failed",
					zap.String("endpoint", s.endpoint),
					zap.Error(err),
				)
			}
			return err
		}
		resp = r
		return nil
	}

	var err error
	if s.maxElapsed == 0 {
		err = op()
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
	} else {
		err = backoff.Retry(op, backoff.WithContext(s.newBackoff(), ctx))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	return Flatten(resp), nil
}

func (s *GraphQLSource) newBackoff() backoff.BackOff {
	// BackOff implementations are stateful; always return a fresh instance.
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = s.maxElapsed
	return bo
}

// query performs one request. Errors that retrying cannot fix are wrapped in
// backoff.Permanent.
func (s *GraphQLSource) query(ctx context.Context) (*Response, error) {
	body, err := json.Marshal(graphQLRequest{
		Query:         WorkspaceQuery,
		OperationName: "RepositorySelectionWorkspaceQuery",
	})
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to encode query: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpResp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case httpResp.StatusCode == http.StatusTooManyRequests || httpResp.StatusCode >= 500:
		return nil, fmt.Errorf("server returned %s", httpResp.Status)
	case httpResp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("server returned %s", httpResp.Status))
	}

	var decoded graphQLResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	if len(decoded.Errors) > 0 {
		return nil, backoff.Permanent(fmt.Errorf("graphql error: %s", decoded.Errors[0].Message))
	}

	woe := decoded.Data.WorkspaceOrError
	if woe == nil {
		return nil, backoff.Permanent(errors.New("response has no workspaceOrError"))
	}
	if woe.Typename == TypenamePythonError {
		return nil, backoff.Permanent(fmt.Errorf("workspace error: %s", woe.Message))
	}

	for _, entry := range woe.LocationEntries {
		if msg, failed := entry.LoadError(); failed {
			s.logger.Warn("code location failed to load",
				zap.String("location", entry.Name),
				zap.String("error", msg),
			)
		}
	}

	return &woe.Response, nil
}
