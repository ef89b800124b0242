package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/auth"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobkit/internal/mcp/tools"
	"github.com/honeycarbs/jobkit/pkg/logging"
)

// Version is reported to MCP clients during initialize
const Version = "0.2.0"

// TokenVerifier resolves a session token to its user and expiry
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, time.Time, error)
}

// NewServer constructs the MCP server with every tool registered
func NewServer(res Resources, logger *logging.Logger) *sdkmcp.Server {
	if logger == nil {
		logger = logging.Nop()
	}
	impl := &sdkmcp.Implementation{
		Name:    "jobkit",
		Version: Version,
	}

	server := sdkmcp.NewServer(impl, nil)
	NewToolRegistry(logger.Named("mcp")).RegisterAll(server, res)
	return server
}

// NewHandler serves server over streamable HTTP. Every request must carry a
// bearer session token; the user ID is passed to tools through TokenInfo.
func NewHandler(server *sdkmcp.Server, verifier TokenVerifier) http.Handler {
	stream := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, nil)
	return auth.RequireBearerToken(bearerVerifier(verifier), nil)(stream)
}

func bearerVerifier(v TokenVerifier) auth.TokenVerifier {
	return func(_ context.Context, token string, _ *http.Request) (*auth.TokenInfo, error) {
		userID, exp, err := v.Verify(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
		}
		return &auth.TokenInfo{
			Expiration: exp,
			Extra:      map[string]any{tools.UserIDKey: userID.String()},
		}, nil
	}
}
