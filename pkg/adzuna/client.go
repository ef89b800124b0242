package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://api.adzuna.com"
	defaultCountry  = "us"
	defaultPageSize = 20
	defaultTimeout  = 20 * time.Second
)

// NewClient instantiates an Adzuna API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.AppID == "" || cfg.AppKey == "" {
		return nil, fmt.Errorf("adzuna: app_id and app_key are required")
	}

	country := cfg.Country
	if country == "" {
		country = defaultCountry
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

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		country:    country,
		baseURL:    baseURL,
		httpClient: httpClient,
		pageSize:   pageSize,
	}, nil
}

// SearchJobs queries Adzuna with keyword/location filters. Results that fail to
// decode are reported in Page.Skipped.
func (c *Client) SearchJobs(ctx context.Context, params SearchParams) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("adzuna: client is nil")
	}

	u, err := c.buildSearchURL(params)
	if err != nil {
		return Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Page{}, fmt.Errorf("adzuna: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("adzuna: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Page{}, fmt.Errorf("adzuna: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload jobSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Page{}, fmt.Errorf("adzuna: decode response: %w", err)
	}

	page := Page{Count: payload.Count, Jobs: make([]Job, 0, len(payload.Results))}
	for i, raw := range payload.Results {
		var posting jobPosting
		if err := json.Unmarshal(raw, &posting); err != nil {
			page.Skipped = append(page.Skipped, RecordError{Index: i, Err: err})
			continue
		}
		page.Jobs = append(page.Jobs, mapPosting(posting))
	}

	return page, nil
}

func (c *Client) buildSearchURL(params SearchParams) (string, error) {
	if params.What == "" && params.Where == "" {
		return "", fmt.Errorf("adzuna: what or where is required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("adzuna: parse base url: %w", err)
	}

	page := params.Page
	if page <= 0 {
		page = 1
	}
	u.Path = path.Join(u.Path, "v1", "api", "jobs", c.country, "search", strconv.Itoa(page))

	values := url.Values{}
	values.Set("app_id", c.appID)
	values.Set("app_key", c.appKey)
	values.Set("results_per_page", strconv.Itoa(c.pageSize))
	values.Set("content-type", "application/json")

	if params.What != "" {
		values.Set("what", params.What)
	}
	if params.Where != "" {
		values.Set("where", params.Where)
	}
	if params.MaxDaysOld > 0 {
		values.Set("max_days_old", strconv.Itoa(params.MaxDaysOld))
	}
	// Adzuna takes these as flag parameters
	switch params.ContractTime {
	case "full_time", "part_time":
		values.Set(params.ContractTime, "1")
	}
	switch params.ContractType {
	case "permanent", "contract":
		values.Set(params.ContractType, "1")
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

func mapPosting(posting jobPosting) Job {
	return Job{
		ID:           posting.ID.String(),
		Title:        posting.Title,
		CompanyName:  posting.Company.DisplayName,
		Location:     posting.Location.DisplayName,
		Area:         posting.Location.Area,
		URL:          posting.RedirectURL,
		Description:  posting.Description,
		ContractTime: posting.ContractTime,
		ContractType: posting.ContractType,
		Created:      posting.Created,
		SalaryMin:    posting.SalaryMin,
		SalaryMax:    posting.SalaryMax,
	}
}
