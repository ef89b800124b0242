package tools

import (
	"context"
	"errors"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobkit/internal/domain/tracker"
)

// ChecklistBoard is the tracker subset behind application_checklist
type ChecklistBoard interface {
	Checklist(ctx context.Context, userID, id uuid.UUID) (tracker.Checklist, error)
	UpdateChecklist(ctx context.Context, userID, id uuid.UUID, in tracker.ChecklistUpdate) (tracker.Checklist, error)
}

// ApplicationChecklistParams defines the arguments for the application_checklist tool
type ApplicationChecklistParams struct {
	JobID string `json:"job_id,omitempty" jsonschema:"Saved job to read or update; omit to list the steps"`
	Step  string `json:"step,omitempty" jsonschema:"Exact step text to toggle done/undone"`
}

type checklistTool struct {
	board ChecklistBoard
}

// WithApplicationChecklist registers the application_checklist tool
func WithApplicationChecklist(board ChecklistBoard) Option {
	return func(reg *registry) {
		t := checklistTool{board: board}
		addTool(reg, &sdkmcp.Tool{
			Name:        "application_checklist",
			Description: "Show the application routine for a saved job, or toggle one of its steps",
		}, t.handle)
	}
}

func (t checklistTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params ApplicationChecklistParams) (*sdkmcp.CallToolResult, any, error) {
	if params.JobID == "" {
		out, err := jsonResult(tracker.BuildChecklist(nil))
		return out, nil, err
	}
	if t.board == nil {
		return errorResult("the tracker board is not available"), nil, nil
	}

	userID, err := userFromRequest(req)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	jobID, err := uuid.Parse(params.JobID)
	if err != nil {
		return errorResult("job_id is not a valid id"), nil, nil
	}

	var list tracker.Checklist
	if params.Step != "" {
		list, err = t.board.UpdateChecklist(ctx, userID, jobID, tracker.ChecklistUpdate{Step: params.Step})
	} else {
		list, err = t.board.Checklist(ctx, userID, jobID)
	}
	if err != nil {
		var invalid *tracker.ValidationError
		switch {
		case errors.Is(err, tracker.ErrNotFound), errors.Is(err, tracker.ErrForbidden):
			return errorResult("no such job on your board"), nil, nil
		case errors.As(err, &invalid):
			return errorResult(invalid.Msg), nil, nil
		}
		return nil, nil, err
	}

	out, err := jsonResult(list)
	return out, nil, err
}
