package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobPosting is a search result as returned by an upstream provider.
// ID is informational; postings are identified by their fingerprint.
type JobPosting struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location,omitempty"`
	IsRemote    bool    `json:"isRemote,omitempty"`
	Type        JobType `json:"type,omitempty"`
	Salary      string  `json:"salary,omitempty"`
	PostedDate  *string `json:"postedDate"`
	Platform    string  `json:"platform,omitempty"`
	URL         string  `json:"url"`
	Logo        string  `json:"logo,omitempty"`
	Description string  `json:"description,omitempty"`
}

// JobType mirrors the upstream employment type values
type JobType string

const (
	JobTypeFullTime JobType = "FULLTIME"
	JobTypeContract JobType = "CONTRACT"
	JobTypePartTime JobType = "PARTTIME"
	JobTypeIntern   JobType = "INTERN"
)

// DatePosted limits results by posting age
type DatePosted string

const (
	DatePostedAll   DatePosted = "all"
	DatePostedToday DatePosted = "today"
	DatePosted3Days DatePosted = "3days"
	DatePostedWeek  DatePosted = "week"
	DatePostedMonth DatePosted = "month"
)

// ExperienceLevel drives the secondary title filter
type ExperienceLevel string

const (
	ExperienceAny    ExperienceLevel = ""
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"
)

// SearchFilters is the caller-owned filter state attached to a search
type SearchFilters struct {
	Type            JobType         `json:"type,omitempty"`
	DatePosted      DatePosted      `json:"datePosted,omitempty"`
	Remote          bool            `json:"remote"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty"`
}

// Status is the tracker board column of a saved job
type Status string

const (
	StatusSaved     Status = "Saved"
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// Statuses lists board columns in display order
var Statuses = []Status{StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// SavedJob is a job application tracked on a user's board
type SavedJob struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"-"`
	Role          string     `json:"role"`
	Company       string     `json:"company"`
	Status        Status     `json:"status"`
	Salary        string     `json:"salary,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	JDURL         string     `json:"jdUrl,omitempty"`
	JDText        string     `json:"jdText,omitempty"`
	RecruiterName string     `json:"recruiterName,omitempty"`
	AppliedDate   *time.Time `json:"appliedDate,omitempty"`
	ResumeVersion string     `json:"resumeVersion,omitempty"`
	ChecklistDone []string   `json:"checklistDone"`
	AIScore       *float64   `json:"aiScore,omitempty"`
	FollowUpDue   bool       `json:"followUpDue"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// User owns a board
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
