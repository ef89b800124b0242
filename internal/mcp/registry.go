package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobkit/internal/mcp/tools"
	"github.com/honeycarbs/jobkit/pkg/logging"
)

type ToolRegistry struct {
	logger *logging.Logger
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	return &ToolRegistry{logger: logger}
}

// RegisterAll installs the search, dedupe, checklist and export tools
func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res Resources) {
	tools.Register(server, r.logger,
		tools.WithJobSearch(res.Searcher),
		tools.WithDedupePostings(),
		tools.WithApplicationChecklist(res.Board),
		tools.WithSheetsExport(res.Exporter),
	)
}
