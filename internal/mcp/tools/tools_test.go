package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/auth"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/domain/export"
	"github.com/honeycarbs/jobkit/internal/domain/search"
	"github.com/honeycarbs/jobkit/internal/domain/tracker"
	"github.com/honeycarbs/jobkit/internal/storage/memory"
	"github.com/honeycarbs/jobkit/pkg/logging"
)

type stubSearcher struct {
	res search.Result
	err error
}

func (s stubSearcher) Search(context.Context, string, string, domain.SearchFilters) (search.Result, error) {
	return s.res, s.err
}

type stubExporter struct {
	gotUser uuid.UUID
	err     error
}

func (s *stubExporter) Export(_ context.Context, userID uuid.UUID, req export.Request) (export.Result, error) {
	s.gotUser = userID
	if s.err != nil {
		return export.Result{}, s.err
	}
	return export.Result{SpreadsheetID: req.SpreadsheetID, Tab: "Board", RowsWritten: 3}, nil
}

func connect(t *testing.T, opts ...Option) *sdkmcp.ClientSession {
	t.Helper()
	return connectLogged(t, nil, opts...)
}

func connectLogged(t *testing.T, logger *logging.Logger, opts ...Option) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "0.0.1"}, nil)
	Register(server, logger, opts...)

	st, ct := sdkmcp.NewInMemoryTransports()
	if _, err := server.Connect(ctx, st, nil); err != nil {
		t.Fatalf("server connect: %v", err)
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, ct, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callText(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) (*sdkmcp.CallToolResult, string) {
	t.Helper()
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool %s: %v", name, err)
	}
	if len(res.Content) == 0 {
		t.Fatalf("%s returned no content", name)
	}
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	if !ok {
		t.Fatalf("%s content is %T", name, res.Content[0])
	}
	return res, text.Text
}

func TestJobSearchTool(t *testing.T) {
	session := connect(t, WithJobSearch(stubSearcher{res: search.Result{
		Postings: []domain.JobPosting{
			{Title: "Go Intern", Company: "Acme", URL: "#"},
			{Title: "Staff Go Engineer", Company: "Acme", URL: "#"},
		},
		RawCount:    4,
		UniqueCount: 2,
	}}))

	res, text := callText(t, session, "job_search", map[string]any{
		"query": "go", "experience_level": "senior",
	})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", text)
	}

	var out JobSearchResult
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 1 || out.Postings[0].Title != "Staff Go Engineer" {
		t.Errorf("postings = %+v", out.Postings)
	}
	if out.RawCount != 4 || out.UniqueCount != 2 || out.Notice == "" {
		t.Errorf("counts = %+v", out)
	}
}

type recordingSearcher struct {
	stubSearcher
	got domain.SearchFilters
}

func (r *recordingSearcher) Search(ctx context.Context, q, l string, f domain.SearchFilters) (search.Result, error) {
	r.got = f
	return r.stubSearcher.Search(ctx, q, l, f)
}

func TestJobSearchToolNormalizesInput(t *testing.T) {
	rec := &recordingSearcher{stubSearcher: stubSearcher{res: search.Result{
		Postings: []domain.JobPosting{
			{Title: "Staff Go Engineer", Company: "Acme"},
			{Title: "Go Developer", Company: "Acme"},
		},
	}}}
	session := connect(t, WithJobSearch(rec))

	res, text := callText(t, session, "job_search", map[string]any{
		"query":            "go",
		"experience_level": "Entry",
		"type":             "fulltime",
		"date_posted":      "yesterday",
		"page_size":        3037000500,
		"pages":            3037000500,
	})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", text)
	}

	want := domain.SearchFilters{Type: domain.JobTypeFullTime, ExperienceLevel: domain.ExperienceEntry}
	if rec.got != want {
		t.Errorf("filters = %+v, want %+v", rec.got, want)
	}

	var out JobSearchResult
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 1 || len(out.Postings) != 1 || out.Postings[0].Title != "Go Developer" || out.HasMore {
		t.Errorf("result = %+v", out)
	}
}

func TestJobSearchToolReportsNotice(t *testing.T) {
	session := connect(t, WithJobSearch(stubSearcher{err: &search.UpstreamError{Provider: "jsearch", Err: errors.New("503")}}))

	res, text := callText(t, session, "job_search", map[string]any{"query": "go"})
	if !res.IsError || text != search.Notice(&search.UpstreamError{}) {
		t.Errorf("result = %v %q", res.IsError, text)
	}
}

func TestDedupePostingsTool(t *testing.T) {
	session := connect(t, WithDedupePostings())

	_, text := callText(t, session, "dedupe_postings", map[string]any{
		"postings": []map[string]any{
			{"title": "Backend Engineer", "company": "Acme Inc.", "location": "Berlin"},
			{"title": "backend engineer ", "company": "ACME", "location": "berlin"},
			{"title": "Frontend Engineer", "company": "Acme", "location": "Berlin"},
		},
	})

	var out DedupePostingsResult
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.RawCount != 3 || out.UniqueCount != 2 || len(out.Fingerprints) != 2 {
		t.Errorf("result = %+v", out)
	}
	if out.Postings[0].Company != "Acme Inc." {
		t.Errorf("first occurrence not kept: %+v", out.Postings[0])
	}
}

func TestChecklistToolListsStepsWithoutJob(t *testing.T) {
	session := connect(t, WithApplicationChecklist(nil))

	_, text := callText(t, session, "application_checklist", map[string]any{})
	var list tracker.Checklist
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != len(tracker.ChecklistSteps) || list.Completed != 0 {
		t.Errorf("checklist = %+v", list)
	}
}

func authedRequest(userID uuid.UUID) *sdkmcp.CallToolRequest {
	return &sdkmcp.CallToolRequest{Extra: &sdkmcp.RequestExtra{
		TokenInfo: &auth.TokenInfo{Extra: map[string]any{UserIDKey: userID.String()}},
	}}
}

func TestChecklistToolToggles(t *testing.T) {
	ctx := context.Background()
	board, err := tracker.NewServiceWithDeps(memory.NewSavedJobRepository(), nil)
	if err != nil {
		t.Fatalf("tracker: %v", err)
	}
	owner := uuid.New()
	job, err := board.Create(ctx, owner, tracker.CreateInput{Role: "SRE", Company: "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tool := checklistTool{board: board}

	res, _, err := tool.handle(ctx, authedRequest(owner), ApplicationChecklistParams{
		JobID: job.ID.String(), Step: tracker.ChecklistSteps[2],
	})
	if err != nil || res.IsError {
		t.Fatalf("toggle: %v %+v", err, res)
	}
	list, _ := board.Checklist(ctx, owner, job.ID)
	if list.Completed != 1 || !list.Items[2].Done {
		t.Errorf("checklist = %+v", list)
	}

	res, _, _ = tool.handle(ctx, authedRequest(uuid.New()), ApplicationChecklistParams{JobID: job.ID.String()})
	if !res.IsError {
		t.Error("foreign user should get a tool error")
	}

	res, _, _ = tool.handle(ctx, &sdkmcp.CallToolRequest{}, ApplicationChecklistParams{JobID: job.ID.String()})
	if !res.IsError {
		t.Error("anonymous caller should get a tool error")
	}

	res, _, _ = tool.handle(ctx, authedRequest(owner), ApplicationChecklistParams{JobID: job.ID.String(), Step: "Bribe the recruiter"})
	if !res.IsError {
		t.Error("unknown step should get a tool error")
	}
}

func TestSheetsExportTool(t *testing.T) {
	ctx := context.Background()
	user := uuid.New()

	exp := &stubExporter{}
	res, _, err := sheetsExportTool{exporter: exp}.handle(ctx, authedRequest(user), SheetsExportParams{SpreadsheetID: "sheet-1"})
	if err != nil || res.IsError {
		t.Fatalf("export: %v %+v", err, res)
	}
	if exp.gotUser != user {
		t.Errorf("exported for %v, want %v", exp.gotUser, user)
	}

	res, _, _ = sheetsExportTool{exporter: &stubExporter{err: export.ErrNotConfigured}}.handle(ctx, authedRequest(user), SheetsExportParams{SpreadsheetID: "x"})
	if !res.IsError {
		t.Error("unconfigured export should be a tool error")
	}
}

func TestToolCallsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	session := connectLogged(t, logging.FromZap(zap.New(core)),
		WithJobSearch(stubSearcher{err: search.ErrInput}),
		WithDedupePostings(),
	)

	callText(t, session, "dedupe_postings", map[string]any{"postings": []any{}})
	res, _ := callText(t, session, "job_search", map[string]any{})
	if !res.IsError {
		t.Fatal("expected an error result for invalid input")
	}

	if n := logs.FilterMessage("tool call").FilterField(zap.String("tool", "dedupe_postings")).Len(); n != 1 {
		t.Errorf("dedupe_postings debug entries = %d, want 1", n)
	}
	warned := logs.FilterMessage("tool returned an error result").All()
	if len(warned) != 1 || warned[0].ContextMap()["tool"] != "job_search" {
		t.Fatalf("warn entries = %+v", warned)
	}
	if warned[0].LoggerName != "tools" {
		t.Errorf("logger name = %q, want tools", warned[0].LoggerName)
	}
}
