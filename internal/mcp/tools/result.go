package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/auth"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// UserIDKey is the TokenInfo.Extra key holding the caller's user ID
const UserIDKey = "user_id"

var errNoUser = errors.New("this tool requires an authenticated user")

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// jsonResult returns v as both structured content and its JSON text
func jsonResult(v any) (*sdkmcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("tools: encode result: %w", err)
	}
	res := textResult(string(raw))
	res.StructuredContent = json.RawMessage(raw)
	return res, nil
}

// errorResult reports a tool-level failure the model can read
func errorResult(msg string) *sdkmcp.CallToolResult {
	res := textResult(msg)
	res.IsError = true
	return res
}

// userFromRequest reads the user attached by the bearer-token middleware
func userFromRequest(req *sdkmcp.CallToolRequest) (uuid.UUID, error) {
	if req == nil || req.Extra == nil || req.Extra.TokenInfo == nil {
		return uuid.Nil, errNoUser
	}
	return UserFromTokenInfo(req.Extra.TokenInfo)
}

// UserFromTokenInfo extracts the user ID stored under UserIDKey
func UserFromTokenInfo(info *auth.TokenInfo) (uuid.UUID, error) {
	if info == nil {
		return uuid.Nil, errNoUser
	}
	raw, _ := info.Extra[UserIDKey].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errNoUser
	}
	return id, nil
}
