// Package mlsgrid provides a client for the MLS Grid RESO Web API.
package mlsgrid

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// DefaultBaseURL is the MLS Grid v2 endpoint.
const DefaultBaseURL = "https://api.mlsgrid.com/v2"

// Client defines the MLS Grid operations.
type Client interface {
	// Properties runs an OData query against the Property resource.
	Properties(ctx context.Context, q Query) (*Response, error)
}

// Response is an OData collection of listings.
type Response struct {
	Context  string    `json:"@odata.context,omitempty"`
	NextLink string    `json:"@odata.nextLink,omitempty"`
	Count    *int      `json:"@odata.count,omitempty"`
	Value    []Listing `json:"value"`
}

// Query holds OData system query options. Zero values are omitted.
type Query struct {
	Filter  string
	OrderBy string
	Top     int
	Select  []string
	Count   bool
}

// Values encodes q as URL query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Filter != "" {
		v.Set("$filter", q.Filter)
	}
	if q.OrderBy != "" {
		v.Set("$orderby", q.OrderBy)
	}
	if q.Top > 0 {
		v.Set("$top", strconv.Itoa(q.Top))
	}
	if len(q.Select) > 0 {
		v.Set("$select", strings.Join(q.Select, ","))
	}
	if q.Count {
		v.Set("$count", "true")
	}
	return v
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("mlsgrid: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("mlsgrid: unexpected status %d: %s", e.Code, e.Message)
}

// StatusCode returns the HTTP status.
func (e *StatusError) StatusCode() int { return e.Code }

// DecodeError is returned when a response body cannot be parsed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "mlsgrid: decode response: " + e.Err.Error() }

// Unwrap returns the underlying parse error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Decode marks the error as a parse failure.
func (e *DecodeError) Decode() bool { return true }

// errorBody is the OData error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Option configures the MLS Grid client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

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
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new MLS Grid client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
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

func (c *httpClient) Properties(ctx context.Context, q Query) (*Response, error) {
	reqURL := c.baseURL + "/Property"
	if enc := q.Values().Encode(); enc != "" {
		reqURL += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "mlsgrid: create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "mlsgrid: request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "mlsgrid: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error.Message != "" {
			se.Message = eb.Error.Message
		} else {
			se.Message = http.StatusText(resp.StatusCode)
		}
		return nil, se
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if result.Value == nil {
		result.Value = []Listing{}
	}

	return &result, nil
}
