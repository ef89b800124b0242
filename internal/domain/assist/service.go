// Package assist wraps a text generator with the application helpers:
// outreach messages, resume tailoring and interview prep.
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/honeycarbs/jobkit/pkg/logging"
)

var (
	// ErrUnavailable is returned when no generator is configured
	ErrUnavailable = errors.New("assist: AI backend is not configured")
	// ErrMalformedResponse is returned when the model reply holds no usable JSON object
	ErrMalformedResponse = errors.New("assist: failed to parse AI response")
)

// ValidationError reports a missing request field
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "assist: " + e.Msg }

// Generator produces text for a single prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type OutreachRequest struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Name    string `json:"name"`
}

type OutreachResult struct {
	Message string `json:"message"`
}

type TailorRequest struct {
	JDText     string `json:"jdText"`
	ResumeText string `json:"resumeText"`
}

type TailorResult struct {
	ScoreBefore     float64  `json:"score_before"`
	ScoreAfter      float64  `json:"score_after"`
	ImprovedBullets []string `json:"improved_bullets"`
	MissingKeywords []string `json:"missing_keywords"`
	Suggestions     []string `json:"suggestions"`
}

type InterviewRequest struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	JDText  string `json:"jdText"`
}

type InterviewQuestion struct {
	Question         string `json:"question"`
	AnswerSTARFormat string `json:"answer_star_format"`
	Tips             string `json:"tips"`
}

type InterviewResult struct {
	Questions   []InterviewQuestion `json:"questions"`
	CompanyTips []string            `json:"company_tips"`
}

// Service runs the helpers against a Generator
type Service struct {
	gen    Generator
	logger *logging.Logger
}

// NewService creates the helper service. A nil generator yields ErrUnavailable on every call.
func NewService(gen Generator, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{gen: gen, logger: logger}
}

// Outreach drafts a short connection message
func (s *Service) Outreach(ctx context.Context, req OutreachRequest) (OutreachResult, error) {
	if strings.TrimSpace(req.Role) == "" || strings.TrimSpace(req.Company) == "" {
		return OutreachResult{}, &ValidationError{Msg: "role and company are required"}
	}

	text, err := s.generate(ctx, "outreach", buildOutreachPrompt(req))
	if err != nil {
		return OutreachResult{}, err
	}
	return OutreachResult{Message: strings.TrimSpace(text)}, nil
}

// TailorResume scores the resume against the JD and proposes rewrites
func (s *Service) TailorResume(ctx context.Context, req TailorRequest) (TailorResult, error) {
	if strings.TrimSpace(req.JDText) == "" || strings.TrimSpace(req.ResumeText) == "" {
		return TailorResult{}, &ValidationError{Msg: "jdText and resumeText are required"}
	}

	var out TailorResult
	if err := s.generateJSON(ctx, "tailor", buildTailorPrompt(req), &out); err != nil {
		return TailorResult{}, err
	}
	return out, nil
}

// InterviewPrep produces likely questions with STAR answers
func (s *Service) InterviewPrep(ctx context.Context, req InterviewRequest) (InterviewResult, error) {
	if strings.TrimSpace(req.Role) == "" || strings.TrimSpace(req.Company) == "" {
		return InterviewResult{}, &ValidationError{Msg: "role and company are required"}
	}

	var out InterviewResult
	if err := s.generateJSON(ctx, "interview", buildInterviewPrompt(req), &out); err != nil {
		return InterviewResult{}, err
	}
	return out, nil
}

func (s *Service) generate(ctx context.Context, kind, prompt string) (string, error) {
	if s.gen == nil {
		return "", ErrUnavailable
	}
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("AI generation failed", "kind", kind, "err", err)
		return "", fmt.Errorf("assist: %s: %w", kind, err)
	}
	return text, nil
}

func (s *Service) generateJSON(ctx context.Context, kind, prompt string, dst any) error {
	text, err := s.generate(ctx, kind, prompt)
	if err != nil {
		return err
	}

	obj, ok := ExtractJSON(text)
	if !ok {
		s.logger.Warn("AI response had no JSON object", "kind", kind)
		return ErrMalformedResponse
	}
	if err := json.Unmarshal([]byte(obj), dst); err != nil {
		s.logger.Warn("AI response JSON invalid", "kind", kind, "err", err)
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// ExtractJSON returns the span from the first '{' to the last '}' of text,
// which strips prose or code fences around a model's JSON reply.
func ExtractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}
