package adzuna

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Config defines Adzuna API client settings
type Config struct {
	AppID      string
	AppKey     string
	Country    string
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
}

// Client queries Adzuna job search API
type Client struct {
	appID      string
	appKey     string
	country    string
	baseURL    string
	httpClient *http.Client
	pageSize   int
}

// SearchParams describe a job search request
type SearchParams struct {
	What       string
	Where      string
	MaxDaysOld int // 0 means no age limit
	// ContractTime is full_time or part_time
	ContractTime string
	// ContractType is permanent or contract
	ContractType string
	Page         int
}

// Job represents a decoded Adzuna posting.
type Job struct {
	ID           string
	Title        string
	CompanyName  string
	Location     string
	Area         []string
	URL          string
	Description  string
	ContractTime string
	ContractType string
	Created      string
	SalaryMin    float64
	SalaryMax    float64
}

// Page is one page of results plus records that failed to decode
type Page struct {
	Count   int
	Jobs    []Job
	Skipped []RecordError
}

// RecordError identifies a result the client could not decode
type RecordError struct {
	Index int
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("adzuna: result %d: %v", e.Index, e.Err)
}

type jobSearchResponse struct {
	Count   int               `json:"count"`
	Results []json.RawMessage `json:"results"`
}

type jobPosting struct {
	ID           json.Number     `json:"id"`
	Title        string          `json:"title"`
	Company      companySummary  `json:"company"`
	Location     locationSummary `json:"location"`
	Description  string          `json:"description"`
	Created      string          `json:"created"`
	RedirectURL  string          `json:"redirect_url"`
	ContractTime string          `json:"contract_time"`
	ContractType string          `json:"contract_type"`
	SalaryMin    float64         `json:"salary_min"`
	SalaryMax    float64         `json:"salary_max"`
}

type companySummary struct {
	DisplayName string `json:"display_name"`
}

type locationSummary struct {
	DisplayName string   `json:"display_name"`
	Area        []string `json:"area"`
}
