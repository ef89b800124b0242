package jsearch

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

	"golang.org/x/time/rate"
)

const (
	defaultHost       = "jsearch.p.rapidapi.com"
	defaultBaseURL    = "https://jsearch.p.rapidapi.com"
	defaultDatePosted = "month"
	defaultTimeout    = 20 * time.Second
)

// ErrMalformedPayload is returned when the response body is not a JSearch envelope.
var ErrMalformedPayload = errors.New("jsearch: malformed payload")

// NewClient instantiates a JSearch API client
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("jsearch: api key is required")
	}

	host := cfg.Host
	if host == "" {
		host = defaultHost
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		apiKey:     apiKey,
		host:       host,
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    limiter,
	}, nil
}

// Search performs one request against /search. Records that fail to decode are
// reported in SearchResult.Skipped instead of failing the whole call.
func (c *Client) Search(ctx context.Context, params SearchParams) (SearchResult, error) {
	if c == nil {
		return SearchResult{}, fmt.Errorf("jsearch: client is nil")
	}

	u, err := c.buildSearchURL(params)
	if err != nil {
		return SearchResult{}, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return SearchResult{}, fmt.Errorf("jsearch: rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return SearchResult{}, fmt.Errorf("jsearch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SearchResult{}, fmt.Errorf("jsearch: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return SearchResult{}, fmt.Errorf("jsearch: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return SearchResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.Data == nil {
		return SearchResult{}, fmt.Errorf("%w: missing data array", ErrMalformedPayload)
	}

	out := SearchResult{Jobs: make([]Job, 0, len(payload.Data))}
	for i, raw := range payload.Data {
		var rec jobRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			out.Skipped = append(out.Skipped, RecordError{Index: i, Err: err})
			continue
		}
		out.Jobs = append(out.Jobs, mapRecord(rec))
	}

	return out, nil
}

func (c *Client) buildSearchURL(params SearchParams) (string, error) {
	query := composeQuery(params.Query, params.Experience, params.Location)
	if query == "" {
		return "", fmt.Errorf("jsearch: query or location is required")
	}

	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return "", fmt.Errorf("jsearch: parse base url: %w", err)
	}

	page := params.Page
	if page <= 0 {
		page = 1
	}

	datePosted := params.DatePosted
	if datePosted == "" {
		datePosted = defaultDatePosted
	}

	values := url.Values{}
	values.Set("query", query)
	values.Set("page", strconv.Itoa(page))
	values.Set("num_pages", "1")
	values.Set("date_posted", datePosted)

	if params.EmploymentType != "" {
		values.Set("employment_types", strings.ToUpper(params.EmploymentType))
	}
	if params.RemoteOnly {
		values.Set("remote_jobs_only", "true")
	}
	if len(params.Requirements) > 0 {
		values.Set("job_requirements", strings.Join(params.Requirements, ","))
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

// composeQuery builds the free-text query JSearch expects, e.g. "golang senior in Berlin".
func composeQuery(query, experience, location string) string {
	query = strings.TrimSpace(query)
	if exp := strings.TrimSpace(experience); exp != "" && query != "" {
		query += " " + exp
	}
	location = strings.TrimSpace(location)
	switch {
	case query == "" && location == "":
		return ""
	case location == "":
		return query
	case query == "":
		return "jobs in " + location
	default:
		return query + " in " + location
	}
}

func mapRecord(rec jobRecord) Job {
	return Job{
		ID:             deref(rec.JobID),
		Title:          deref(rec.JobTitle),
		EmployerName:   deref(rec.EmployerName),
		EmployerLogo:   deref(rec.EmployerLogo),
		Publisher:      deref(rec.JobPublisher),
		EmploymentType: deref(rec.EmploymentType),
		ApplyLink:      deref(rec.ApplyLink),
		City:           deref(rec.City),
		Country:        deref(rec.Country),
		IsRemote:       rec.IsRemote != nil && *rec.IsRemote,
		PostedAtUTC:    deref(rec.PostedAtUTC),
		MinSalary:      rec.MinSalary,
		MaxSalary:      rec.MaxSalary,
		Description:    deref(rec.JobDescription),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
