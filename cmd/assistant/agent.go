package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/option"

	"github.com/honeycarbs/jobkit/pkg/logging"
)

const (
	maxSteps    = 10
	toolTimeout = 2 * time.Minute
)

const systemPrompt = `You are a job search assistant working against the user's jobkit account.

TOOLS:
- job_search: search postings from the configured provider; results are deduplicated, filtered by experience level, sorted and paginated
- dedupe_postings: collapse a list of postings that share a normalized title and company
- application_checklist: list the application routine, or show and toggle the steps for one saved job
- sheets_export: write the user's tracker board to a Google Sheets tab

GUIDELINES:
1. Call job_search for requests like "find", "search" or "show me jobs". Summarize titles, companies and locations.
2. When a search reports a notice, pass it on to the user instead of retrying blindly.
3. Only call sheets_export when the user asks for an export.
4. Answer questions about your capabilities directly without calling tools.
5. Keep answers short and concrete.`

// Agent drives a Gemini chat that can call the jobkit MCP tools
type Agent struct {
	session *sdkmcp.ClientSession
	gemini  *genai.Client
	model   *genai.GenerativeModel
	tools   []*sdkmcp.Tool
	logger  *logging.Logger
}

// bearerTransport authenticates every MCP request with a jobkit session token
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(req)
}

// NewAgent connects to the MCP endpoint and loads its tools
func NewAgent(ctx context.Context, endpoint, token, apiKey, model string, logger *logging.Logger) (*Agent, error) {
	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "jobkit-assistant",
		Version: "0.2.0",
	}, nil)

	httpClient := &http.Client{
		Transport: &bearerTransport{token: token, base: http.DefaultTransport},
	}
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint:   endpoint,
		HTTPClient: httpClient,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", endpoint, err)
	}

	toolsResp, err := session.ListTools(ctx, &sdkmcp.ListToolsParams{})
	if err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("list tools: %w", err)
	}

	geminiClient, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	m := geminiClient.GenerativeModel(model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	m.Tools = functionTools(toolsResp.Tools)

	return &Agent{
		session: session,
		gemini:  geminiClient,
		model:   m,
		tools:   toolsResp.Tools,
		logger:  logger,
	}, nil
}

// Tools returns the tools advertised by the server
func (a *Agent) Tools() []*sdkmcp.Tool {
	return a.tools
}

// SessionID returns the MCP session identifier
func (a *Agent) SessionID() string {
	return a.session.ID()
}

// Close releases the Gemini client and the MCP session
func (a *Agent) Close() error {
	var errs []error
	if err := a.gemini.Close(); err != nil {
		errs = append(errs, fmt.Errorf("gemini close: %w", err))
	}
	if err := a.session.Close(); err != nil {
		errs = append(errs, fmt.Errorf("mcp session close: %w", err))
	}
	return errors.Join(errs...)
}

// Ask runs one user request to completion, calling tools as the model asks,
// and returns the model's final text
func (a *Agent) Ask(ctx context.Context, query string) (string, error) {
	chat := a.model.StartChat()
	parts := []genai.Part{genai.Text(query)}

	for step := 1; step <= maxSteps; step++ {
		a.logger.Debug("sending to model", "step", step, "parts", len(parts))

		resp, err := chat.SendMessage(ctx, parts...)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("gemini: %w", err)
		}

		var text strings.Builder
		var calls []genai.FunctionCall
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				switch p := part.(type) {
				case genai.FunctionCall:
					calls = append(calls, p)
				case genai.Text:
					text.WriteString(string(p))
				}
			}
		}

		if len(calls) == 0 {
			if text.Len() == 0 {
				return "", errors.New("gemini returned neither text nor tool calls")
			}
			return text.String(), nil
		}

		// the chat history keeps the previous slice
		parts = make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			parts = append(parts, genai.FunctionResponse{
				Name:     call.Name,
				Response: a.callTool(ctx, call.Name, call.Args),
			})
		}
	}

	return "", fmt.Errorf("no answer after %d steps", maxSteps)
}

// callTool runs one MCP tool and shapes its result for the model.
// Failures are reported to the model rather than aborting the chat.
func (a *Agent) callTool(ctx context.Context, name string, args map[string]any) map[string]any {
	if args == nil {
		args = map[string]any{}
	}

	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	start := time.Now()
	res, err := a.session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		a.logger.Warn("tool call failed", "tool", name, "error", err)
		return map[string]any{"error": err.Error()}
	}
	a.logger.Info("tool call", "tool", name, "duration", time.Since(start), "isError", res.IsError)

	return toolResponse(res)
}

func toolResponse(res *sdkmcp.CallToolResult) map[string]any {
	var texts []string
	for _, c := range res.Content {
		if t, ok := c.(*sdkmcp.TextContent); ok {
			texts = append(texts, t.Text)
		}
	}
	joined := strings.Join(texts, "\n")

	if res.IsError {
		return map[string]any{"error": joined}
	}
	out := map[string]any{"result": joined}
	if res.StructuredContent != nil {
		out["structured"] = res.StructuredContent
	}
	return out
}
