package mcp

import (
	"github.com/honeycarbs/jobkit/internal/domain/search"
	"github.com/honeycarbs/jobkit/internal/mcp/tools"
)

// Resources are the services the MCP tools call into
type Resources struct {
	Searcher search.Searcher
	Board    tools.ChecklistBoard
	Exporter tools.BoardExporter
}
