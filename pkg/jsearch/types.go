package jsearch

import (
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Config defines JSearch (RapidAPI) client settings
type Config struct {
	APIKey     string
	Host       string
	BaseURL    string
	HTTPClient *http.Client
	// RequestsPerSecond caps outgoing calls; <= 0 disables limiting
	RequestsPerSecond float64
}

// Client queries the JSearch job aggregation API
type Client struct {
	apiKey     string
	host       string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// SearchParams describe a job search request
type SearchParams struct {
	Query          string
	Location       string
	Experience     string // free-text hint appended to the query, e.g. "senior"
	EmploymentType string // FULLTIME, CONTRACT, PARTTIME, INTERN
	DatePosted     string // all, today, 3days, week, month
	RemoteOnly     bool
	Requirements   []string // under_3_years_experience, more_than_3_years_experience, no_experience
	Page           int
}

// Job represents a JSearch posting with null-tolerant fields.
type Job struct {
	ID             string
	Title          string
	EmployerName   string
	EmployerLogo   string
	Publisher      string
	EmploymentType string
	ApplyLink      string
	City           string
	Country        string
	IsRemote       bool
	PostedAtUTC    string
	MinSalary      *float64
	MaxSalary      *float64
	Description    string
}

// SearchResult is one page of results plus records that failed to decode
type SearchResult struct {
	Jobs    []Job
	Skipped []RecordError
}

// RecordError identifies a record the client could not decode
type RecordError struct {
	Index int
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("jsearch: record %d: %v", e.Index, e.Err)
}

type searchResponse struct {
	Status    string            `json:"status"`
	RequestID string            `json:"request_id"`
	Data      []json.RawMessage `json:"data"`
}

type jobRecord struct {
	JobID          *string  `json:"job_id"`
	JobTitle       *string  `json:"job_title"`
	EmployerName   *string  `json:"employer_name"`
	EmployerLogo   *string  `json:"employer_logo"`
	JobPublisher   *string  `json:"job_publisher"`
	EmploymentType *string  `json:"job_employment_type"`
	ApplyLink      *string  `json:"job_apply_link"`
	City           *string  `json:"job_city"`
	Country        *string  `json:"job_country"`
	IsRemote       *bool    `json:"job_is_remote"`
	PostedAtUTC    *string  `json:"job_posted_at_datetime_utc"`
	MinSalary      *float64 `json:"job_min_salary"`
	MaxSalary      *float64 `json:"job_max_salary"`
	JobDescription *string  `json:"job_description"`
}
