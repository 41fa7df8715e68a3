// Package search is the client for the job-oriented search backend API:
// a query is dispatched as a search job, polled until it reaches a
// terminal state, and its results fetched as JSON.
package search

import (
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

	"loghound-mcp/internal/auth"
	"loghound-mcp/internal/constants"
	"loghound-mcp/internal/models"
	"loghound-mcp/internal/timerange"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Job dispatch states reported by the backend.
const (
	jobStateDone   = "DONE"
	jobStateFailed = "FAILED"
)

// pollMaxElapsed bounds how long WaitForJob keeps polling before giving
// up on a job that never reaches a terminal state.
const pollMaxElapsed = 2 * time.Minute

// Client talks to the search backend. All requests go through the rate
// limiter; authentication uses the static token when configured, the
// session manager otherwise.
type Client struct {
	httpClient *http.Client
	cfg        models.Config
	limiter    *rate.Limiter
	sessions   *auth.SessionManager
	log        *zap.Logger
}

// NewClient creates a search client. A nil logger disables logging.
func NewClient(httpClient *http.Client, cfg models.Config, log *zap.Logger) (*Client, error) {
	if httpClient == nil {
		return nil, errors.New("http client cannot be nil")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("search backend base URL cannot be empty")
	}
	if log == nil {
		log = zap.NewNop()
	}

	limit := cfg.RequestRateLimit
	if limit <= 0 {
		limit = 1
	}
	burst := cfg.RequestRateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Limit(limit), burst),
		sessions:   auth.NewSessionManager(),
		log:        log,
	}, nil
}

// Search runs the full job lifecycle: dispatch, poll, fetch results.
func (c *Client) Search(ctx context.Context, query string, rng timerange.Range, limit int) (map[string]any, error) {
	sid, err := c.CreateJob(ctx, query, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create search job: %w", err)
	}

	if err := c.WaitForJob(ctx, sid); err != nil {
		return nil, err
	}

	results, err := c.Results(ctx, sid, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results for job %s: %w", sid, err)
	}
	return results, nil
}

// CreateJob dispatches a search job and returns its sid. Absent range
// fields are omitted so the backend applies its own defaults.
func (c *Client) CreateJob(ctx context.Context, query string, rng timerange.Range) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", errors.New("query cannot be empty")
	}

	form := url.Values{}
	form.Set("search", normalizeQuery(query))
	form.Set("output_mode", "json")
	if rng.From != nil {
		form.Set("earliest_time", strconv.FormatInt(rng.From.Unix(), 10))
	}
	if rng.To != nil {
		form.Set("latest_time", strconv.FormatInt(rng.To.Unix(), 10))
	}

	resp, err := c.do(ctx, http.MethodPost, constants.EndpointSearchJobs, form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Sid string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode job creation response: %w", err)
	}
	if result.Sid == "" {
		return "", errors.New("job creation response contained no sid")
	}

	c.log.Debug("search job created", zap.String("sid", result.Sid))
	return result.Sid, nil
}

// WaitForJob polls the job until DONE, with exponential backoff. A
// FAILED state aborts immediately; transient transport errors retry.
func (c *Client) WaitForJob(ctx context.Context, sid string) error {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 200 * time.Millisecond
	expo.MaxInterval = 2 * time.Second

	operation := func() (struct{}, error) {
		state, err := c.jobState(ctx, sid)
		if err != nil {
			return struct{}{}, err
		}
		switch state {
		case jobStateDone:
			return struct{}{}, nil
		case jobStateFailed:
			return struct{}{}, backoff.Permanent(fmt.Errorf("search job %s failed", sid))
		default:
			return struct{}{}, fmt.Errorf("search job %s not ready: %s", sid, state)
		}
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(expo),
		backoff.WithMaxElapsedTime(pollMaxElapsed),
	)
	if err != nil {
		return fmt.Errorf("waiting for search job %s: %w", sid, err)
	}
	return nil
}

// jobState fetches the current dispatch state of a job.
func (c *Client) jobState(ctx context.Context, sid string) (string, error) {
	path := fmt.Sprintf(constants.EndpointSearchJob, url.PathEscape(sid)) + "?output_mode=json"
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Entry []struct {
			Content struct {
				DispatchState string `json:"dispatchState"`
			} `json:"content"`
		} `json:"entry"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode job status: %w", err)
	}
	if len(result.Entry) == 0 {
		return "", fmt.Errorf("job %s not found in status response", sid)
	}
	return result.Entry[0].Content.DispatchState, nil
}

// Results fetches the results of a finished job.
func (c *Client) Results(ctx context.Context, sid string, limit int) (map[string]any, error) {
	path := fmt.Sprintf(constants.EndpointSearchJobResults, url.PathEscape(sid))
	params := url.Values{}
	params.Set("output_mode", "json")
	if limit > 0 {
		params.Set("count", strconv.Itoa(limit))
	}

	resp, err := c.do(ctx, http.MethodGet, path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return result, nil
}

// ListIndexes returns the names of searchable indexes.
func (c *Client) ListIndexes(ctx context.Context) ([]string, error) {
	entries, err := c.listEntries(ctx, constants.EndpointIndexes)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}
	return entries, nil
}

// SavedSearches returns the names of saved searches.
func (c *Client) SavedSearches(ctx context.Context) ([]string, error) {
	entries, err := c.listEntries(ctx, constants.EndpointSavedSearches)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved searches: %w", err)
	}
	return entries, nil
}

// listEntries fetches a collection endpoint and extracts entry names.
func (c *Client) listEntries(ctx context.Context, endpoint string) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, endpoint+"?output_mode=json&count=0", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result struct {
		Entry []struct {
			Name string `json:"name"`
		} `json:"entry"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode collection response: %w", err)
	}

	names := make([]string, 0, len(result.Entry))
	for _, e := range result.Entry {
		names = append(names, e.Name)
	}
	return names, nil
}

// do executes one authenticated, rate-limited request against the
// backend. Status codes >= 400 are returned as errors with the body
// included for context.
func (c *Client) do(ctx context.Context, method, path string, form url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if form != nil {
		req.Header.Set(constants.HeaderContentType, constants.HeaderContentTypeForm)
	}
	req.Header.Set(constants.HeaderAccept, constants.HeaderContentTypeJSON)
	req.Header.Set(constants.HeaderUserAgent, constants.UserAgentLoghoundMCP)

	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.sessions.Invalidate()
	}
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return resp, nil
}

// authorize sets the Authorization header from the static token or the
// session manager.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.cfg.AuthToken != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+c.cfg.AuthToken)
		return nil
	}

	key, err := c.sessions.Key(ctx, c.httpClient, c.cfg)
	if err != nil {
		return err
	}
	req.Header.Set(constants.HeaderAuthorization, constants.SessionKeyPrefix+key)
	return nil
}

// normalizeQuery prefixes bare queries with the search command, which
// the backend requires unless the query already starts a pipeline.
func normalizeQuery(query string) string {
	q := strings.TrimSpace(query)
	if strings.HasPrefix(q, "search ") || strings.HasPrefix(q, "|") {
		return q
	}
	return "search " + q
}
