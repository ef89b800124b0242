package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobkit/internal/domain/export"
	"github.com/honeycarbs/jobkit/internal/domain/tracker"
)

// BoardExporter writes a user's board to a spreadsheet
type BoardExporter interface {
	Export(ctx context.Context, userID uuid.UUID, req export.Request) (export.Result, error)
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab to overwrite (default Board)"`
	Status        string `json:"status,omitempty" jsonschema:"Only export jobs in this status"`
}

type sheetsExportTool struct {
	exporter BoardExporter
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(exporter BoardExporter) Option {
	return func(reg *registry) {
		if exporter == nil {
			reg.logger.Warn("sheets_export not registered: no exporter")
			return
		}
		t := sheetsExportTool{exporter: exporter}
		addTool(reg, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export the caller's tracker board to a Google Sheets tab",
		}, t.handle)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	userID, err := userFromRequest(req)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	res, err := t.exporter.Export(ctx, userID, export.Request{
		SpreadsheetID: params.SpreadsheetID,
		Tab:           params.Tab,
		Status:        params.Status,
	})
	if err != nil {
		var invalid *tracker.ValidationError
		switch {
		case errors.Is(err, export.ErrNotConfigured):
			return errorResult("Google Sheets export is not configured on this server"), nil, nil
		case errors.As(err, &invalid):
			return errorResult(invalid.Msg), nil, nil
		}
		return nil, nil, err
	}

	out := textResult(fmt.Sprintf("Exported %d jobs to %s!%s", res.RowsWritten, res.SpreadsheetID, res.Tab))
	out.StructuredContent = res
	return out, nil, nil
}
