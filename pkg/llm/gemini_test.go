package llm

import (
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}},
		}},
	}
	got, err := responseText(resp)
	if err != nil || got != "Hello, world" {
		t.Fatalf("responseText = %q, %v", got, err)
	}
}

func TestResponseTextEmpty(t *testing.T) {
	cases := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
	}
	for i, resp := range cases {
		if _, err := responseText(resp); !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("case %d: err = %v", i, err)
		}
	}
}

func TestConstructorsRequireKeys(t *testing.T) {
	if _, err := NewAnthropic("", ""); err == nil {
		t.Error("NewAnthropic without key must fail")
	}
}
