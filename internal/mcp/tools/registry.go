package tools

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobkit/pkg/logging"
)

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
	logger *logging.Logger
}

// Register applies the provided tool options
func Register(server *sdkmcp.Server, logger *logging.Logger, opts ...Option) {
	if logger == nil {
		logger = logging.Nop()
	}
	reg := &registry{server: server, logger: logger.Named("tools")}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
}

// addTool registers h and logs every call with its outcome and duration
func addTool[In any](reg *registry, tool *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, any]) {
	logger := reg.logger.With("tool", tool.Name)
	sdkmcp.AddTool(reg.server, tool, func(ctx context.Context, req *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		start := time.Now()
		res, out, err := h(ctx, req, in)
		took := time.Since(start)

		switch {
		case err != nil:
			logger.Error("tool failed", "duration", took, "error", err)
		case res != nil && res.IsError:
			logger.Warn("tool returned an error result", "duration", took)
		default:
			logger.Debug("tool call", "duration", took)
		}
		return res, out, err
	})
}
