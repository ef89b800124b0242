// Package export writes a user's tracker board to a Google Sheet.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/domain/tracker"
	"github.com/honeycarbs/jobkit/pkg/logging"
)

const defaultTab = "Board"

// ErrNotConfigured is returned when no sheets credentials were provided
var ErrNotConfigured = errors.New("export: Google Sheets is not configured")

// SheetWriter is the subset of the Sheets client used for export
type SheetWriter interface {
	ClearValues(ctx context.Context, spreadsheetID, rng string) error
	UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]any) error
}

// BoardLister returns a user's board
type BoardLister interface {
	List(ctx context.Context, userID uuid.UUID, status string) ([]domain.SavedJob, error)
}

// Request selects the destination sheet
type Request struct {
	SpreadsheetID string `json:"spreadsheetId"`
	Tab           string `json:"tab"`
	Status        string `json:"status"`
}

// Result reports what was written
type Result struct {
	SpreadsheetID string    `json:"spreadsheetId"`
	Tab           string    `json:"tab"`
	RowsWritten   int       `json:"rowsWritten"`
	CompletedAt   time.Time `json:"completedAt"`
}

// Header is the first row of every export
var Header = []any{
	"Role", "Company", "Status", "Salary", "Applied", "Recruiter",
	"Checklist", "Follow-up due", "AI score", "JD URL", "Notes", "Updated",
}

// Exporter replaces a sheet tab with the board contents
type Exporter struct {
	writer SheetWriter
	board  BoardLister
	logger *logging.Logger
	clock  func() time.Time
}

// NewExporter creates an exporter; a nil writer makes Export return ErrNotConfigured
func NewExporter(writer SheetWriter, board BoardLister, logger *logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Exporter{writer: writer, board: board, logger: logger, clock: time.Now}
}

// Export clears the tab and writes a header plus one row per job
func (e *Exporter) Export(ctx context.Context, userID uuid.UUID, req Request) (Result, error) {
	if e.writer == nil {
		return Result{}, ErrNotConfigured
	}
	if strings.TrimSpace(req.SpreadsheetID) == "" {
		return Result{}, &tracker.ValidationError{Msg: "spreadsheetId is required"}
	}
	tab := strings.TrimSpace(req.Tab)
	if tab == "" {
		tab = defaultTab
	}

	jobs, err := e.board.List(ctx, userID, req.Status)
	if err != nil {
		return Result{}, err
	}

	if err := e.writer.ClearValues(ctx, req.SpreadsheetID, tab+"!A1:Z"); err != nil {
		return Result{}, fmt.Errorf("export: %w", err)
	}
	if err := e.writer.UpdateValues(ctx, req.SpreadsheetID, tab+"!A1", Rows(jobs)); err != nil {
		return Result{}, fmt.Errorf("export: %w", err)
	}

	e.logger.Info("board exported", "user", userID, "rows", len(jobs), "tab", tab)

	return Result{
		SpreadsheetID: req.SpreadsheetID,
		Tab:           tab,
		RowsWritten:   len(jobs),
		CompletedAt:   e.clock().UTC(),
	}, nil
}

// Rows renders the header and one row per job
func Rows(jobs []domain.SavedJob) [][]any {
	values := make([][]any, 0, len(jobs)+1)
	values = append(values, Header)
	for _, j := range jobs {
		applied := ""
		if j.AppliedDate != nil {
			applied = j.AppliedDate.Format("2006-01-02")
		}
		score := ""
		if j.AIScore != nil {
			score = fmt.Sprintf("%.0f", *j.AIScore)
		}
		followUp := ""
		if j.FollowUpDue {
			followUp = "yes"
		}
		values = append(values, []any{
			j.Role,
			j.Company,
			string(j.Status),
			j.Salary,
			applied,
			j.RecruiterName,
			fmt.Sprintf("%d/%d", len(j.ChecklistDone), len(tracker.ChecklistSteps)),
			followUp,
			score,
			j.JDURL,
			j.Notes,
			j.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return values
}
