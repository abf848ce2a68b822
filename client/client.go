// Package client is a typed HTTP client for the cookbook API. Calls run
// with a bounded per-attempt timeout and transient failures are retried
// with exponential backoff.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultTimeout bounds a single attempt
	DefaultTimeout = 10 * time.Second
	// DefaultRetries is the number of additional attempts after the first
	DefaultRetries = 2
	// DefaultRetryDelay is the base backoff delay; attempt k waits
	// DefaultRetryDelay * 2^k.
	DefaultRetryDelay = time.Second
)

// Client calls the cookbook API
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	retries    uint64
	retryDelay time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the default per-attempt timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetries sets the default retry budget (attempts after the first)
func WithRetries(n uint64) Option {
	return func(c *Client) { c.retries = n }
}

// WithRetryDelay sets the default base backoff delay
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		retries:    DefaultRetries,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// callConfig is the per-call override of the client defaults
type callConfig struct {
	timeout    time.Duration
	retries    uint64
	retryDelay time.Duration
}

// CallOption overrides timeout or retry policy for a single call
type CallOption func(*callConfig)

// CallTimeout overrides the per-attempt timeout for one call
func CallTimeout(d time.Duration) CallOption {
	return func(cfg *callConfig) { cfg.timeout = d }
}

// CallRetries overrides the retry budget for one call
func CallRetries(n uint64) CallOption {
	return func(cfg *callConfig) { cfg.retries = n }
}

// CallRetryDelay overrides the base backoff delay for one call
func CallRetryDelay(d time.Duration) CallOption {
	return func(cfg *callConfig) { cfg.retryDelay = d }
}

// dataEnvelope is the success body shape
type dataEnvelope[T any] struct {
	Data T     `json:"data"`
	Meta *Meta `json:"meta"`
}

// errorEnvelope is the error body shape
type errorEnvelope struct {
	Error struct {
		Code    string       `json:"code"`
		Message string       `json:"message"`
		Details []FieldError `json:"details"`
	} `json:"error"`
}

// do performs one API call with the retry policy. A success returns
// immediately; a terminal failure (4xx other than 429) is raised without
// retrying; 429, 5xx, timeouts, and transport failures consume the retry
// budget with delays of retryDelay * 2^k between attempts.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, opts ...CallOption) error {
	cfg := callConfig{timeout: c.timeout, retries: c.retries, retryDelay: c.retryDelay}
	for _, opt := range opts {
		opt(&cfg)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	// The most specific error seen so far: structured API errors and
	// timeouts are preferred over generic network failures when the
	// budget runs out.
	var last *Error

	operation := func() error {
		err := c.attempt(ctx, method, path, query, payload, out, cfg.timeout)
		if err == nil {
			return nil
		}

		e := AsError(err)
		if e == nil {
			return backoff.Permanent(err)
		}
		if last == nil || e.Kind != KindNetwork || last.Kind == KindNetwork {
			last = e
		}
		if !e.Retryable() {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = cfg.retryDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxInterval = time.Hour
	policy.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, cfg.retries), ctx))
	if err == nil {
		return nil
	}
	if last != nil {
		return last
	}
	return err
}

// attempt performs a single HTTP exchange with its own timeout
func (c *Client) attempt(ctx context.Context, method, path string, query url.Values, payload []byte, out any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &Error{Kind: KindTimeout, Message: "request timed out after " + timeout.String()}
		}
		var ue *url.Error
		if errors.As(err, &ue) && ue.Timeout() {
			return &Error{Kind: KindTimeout, Message: "request timed out after " + timeout.String()}
		}
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "failed to read response: " + err.Error()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Kind: KindNetwork, Message: "failed to decode response: " + err.Error()}
		}
		return nil
	}

	apiErr := &Error{
		Kind:    KindAPI,
		Status:  resp.StatusCode,
		Code:    "UNKNOWN_ERROR",
		Message: http.StatusText(resp.StatusCode),
	}
	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Details = envelope.Error.Details
	}
	return apiErr
}

// Health checks the API health endpoint
func (c *Client) Health(ctx context.Context, opts ...CallOption) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, nil, &h, opts...); err != nil {
		return nil, err
	}
	return &h, nil
}

// ListRecipes returns recipe summaries, optionally narrowed by search
func (c *Client) ListRecipes(ctx context.Context, search string, opts ...CallOption) ([]RecipeSummary, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	var envelope dataEnvelope[[]RecipeSummary]
	if err := c.do(ctx, http.MethodGet, "/api/recipes", query, nil, &envelope, opts...); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetRecipe returns one recipe with its ingredient rows
func (c *Client) GetRecipe(ctx context.Context, id int64, opts ...CallOption) (*Recipe, error) {
	var envelope dataEnvelope[Recipe]
	if err := c.do(ctx, http.MethodGet, "/api/recipes/"+strconv.FormatInt(id, 10), nil, nil, &envelope, opts...); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// CreateRecipe creates a recipe. Creation is not idempotent: a retried
// create may run more than once on the server.
func (c *Client) CreateRecipe(ctx context.Context, req CreateRecipeRequest, opts ...CallOption) (*Recipe, error) {
	var envelope dataEnvelope[Recipe]
	if err := c.do(ctx, http.MethodPost, "/api/recipes", nil, req, &envelope, opts...); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// UpdateRecipe applies a partial update
func (c *Client) UpdateRecipe(ctx context.Context, id int64, req UpdateRecipeRequest, opts ...CallOption) (*Recipe, error) {
	var envelope dataEnvelope[Recipe]
	if err := c.do(ctx, http.MethodPut, "/api/recipes/"+strconv.FormatInt(id, 10), nil, req, &envelope, opts...); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// DeleteRecipe removes a recipe
func (c *Client) DeleteRecipe(ctx context.Context, id int64, opts ...CallOption) error {
	return c.do(ctx, http.MethodDelete, "/api/recipes/"+strconv.FormatInt(id, 10), nil, nil, nil, opts...)
}

// ScaleRecipe returns ingredient quantities adjusted to servings
func (c *Client) ScaleRecipe(ctx context.Context, id int64, servings int, opts ...CallOption) (*ScaledRecipe, error) {
	query := url.Values{}
	query.Set("servings", strconv.Itoa(servings))
	var envelope dataEnvelope[ScaledRecipe]
	if err := c.do(ctx, http.MethodGet, "/api/recipes/"+strconv.FormatInt(id, 10)+"/scaled", query, nil, &envelope, opts...); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// ListIngredients returns the catalog, optionally narrowed by search
func (c *Client) ListIngredients(ctx context.Context, search string, opts ...CallOption) ([]Ingredient, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	var envelope dataEnvelope[[]Ingredient]
	if err := c.do(ctx, http.MethodGet, "/api/ingredients", query, nil, &envelope, opts...); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetIngredient returns one ingredient
func (c *Client) GetIngredient(ctx context.Context, id int64, opts ...CallOption) (*Ingredient, error) {
	var envelope dataEnvelope[Ingredient]
	if err := c.do(ctx, http.MethodGet, "/api/ingredients/"+strconv.FormatInt(id, 10), nil, nil, &envelope, opts...); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// CreateIngredient adds a catalog entry
func (c *Client) CreateIngredient(ctx context.Context, req CreateIngredientRequest, opts ...CallOption) (*Ingredient, error) {
	var envelope dataEnvelope[Ingredient]
	if err := c.do(ctx, http.MethodPost, "/api/ingredients", nil, req, &envelope, opts...); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// UpdateIngredient applies a partial update
func (c *Client) UpdateIngredient(ctx context.Context, id int64, req UpdateIngredientRequest, opts ...CallOption) (*Ingredient, error) {
	var envelope dataEnvelope[Ingredient]
	if err := c.do(ctx, http.MethodPut, "/api/ingredients/"+strconv.FormatInt(id, 10), nil, req, &envelope, opts...); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// DeleteIngredient removes an unreferenced ingredient
func (c *Client) DeleteIngredient(ctx context.Context, id int64, opts ...CallOption) error {
	return c.do(ctx, http.MethodDelete, "/api/ingredients/"+strconv.FormatInt(id, 10), nil, nil, nil, opts...)
}
