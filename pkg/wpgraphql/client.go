// Package wpgraphql provides a client for the WordPress WPGraphQL endpoint.
package wpgraphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// ErrNoData is returned when a response carries neither data nor errors.
var ErrNoData error = noDataError{}

type noDataError struct{}

func (noDataError) Error() string  { return "wpgraphql: no data returned" }
func (noDataError) Upstream() bool { return true }

// Client defines the WPGraphQL operations.
type Client interface {
	// Posts lists published posts, newest first.
	Posts(ctx context.Context, first int) ([]Post, error)
	// PostBySlug returns the post with the given slug, or nil when none exists.
	PostBySlug(ctx context.Context, slug string) (*Post, error)
	// Categories lists post categories.
	Categories(ctx context.Context) ([]Category, error)
}

// Request is a GraphQL POST body.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// envelope is the GraphQL response wrapper.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError is one entry in a response's errors array.
type GraphQLError struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// ResponseError aggregates GraphQL-level errors.
type ResponseError struct {
	Errors []GraphQLError
}

func (e *ResponseError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ge := range e.Errors {
		msgs[i] = ge.Message
	}
	return "wpgraphql: graphql errors: " + strings.Join(msgs, ", ")
}

// Upstream marks the error as an application-level failure.
func (e *ResponseError) Upstream() bool { return true }

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wpgraphql: unexpected status %d: %s", e.Code, e.Body)
}

// StatusCode returns the HTTP status.
func (e *StatusError) StatusCode() int { return e.Code }

// DecodeError is returned when a response body cannot be parsed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "wpgraphql: decode response: " + e.Err.Error() }

// Unwrap returns the underlying parse error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Decode marks the error as a parse failure.
func (e *DecodeError) Decode() bool { return true }

// Option configures the WPGraphQL client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

type httpClient struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client for the GraphQL endpoint at endpoint.
func NewClient(endpoint string, opts ...Option) Client {
	c := &httpClient{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do posts one query and decodes data into out. A single attempt is made.
func (c *httpClient) do(ctx context.Context, query string, vars map[string]any, out any) error {
	if vars == nil {
		vars = map[string]any{}
	}
	payload, err := json.Marshal(Request{Query: query, Variables: vars})
	if err != nil {
		return eris.Wrap(err, "wpgraphql: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "wpgraphql: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "wpgraphql: request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "wpgraphql: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &DecodeError{Err: err}
	}
	if len(env.Errors) > 0 {
		return &ResponseError{Errors: env.Errors}
	}
	if len(env.Data) == 0 || bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		return ErrNoData
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

func (c *httpClient) Posts(ctx context.Context, first int) ([]Post, error) {
	var data struct {
		Posts struct {
			Edges []struct {
				Node Post `json:"node"`
			} `json:"edges"`
		} `json:"posts"`
	}
	if err := c.do(ctx, QueryAllPosts, map[string]any{"first": first}, &data); err != nil {
		return nil, eris.Wrap(err, "wpgraphql: posts")
	}

	out := make([]Post, len(data.Posts.Edges))
	for i, e := range data.Posts.Edges {
		out[i] = e.Node
	}
	return out, nil
}

func (c *httpClient) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	var data struct {
		Post *Post `json:"post"`
	}
	if err := c.do(ctx, QueryPostBySlug, map[string]any{"slug": slug}, &data); err != nil {
		return nil, eris.Wrapf(err, "wpgraphql: post %q", slug)
	}
	return data.Post, nil
}

func (c *httpClient) Categories(ctx context.Context) ([]Category, error) {
	var data struct {
		Categories struct {
			Edges []struct {
				Node Category `json:"node"`
			} `json:"edges"`
		} `json:"categories"`
	}
	if err := c.do(ctx, QueryAllCategories, nil, &data); err != nil {
		return nil, eris.Wrap(err, "wpgraphql: categories")
	}

	out := make([]Category, len(data.Categories.Edges))
	for i, e := range data.Categories.Edges {
		out[i] = e.Node
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
