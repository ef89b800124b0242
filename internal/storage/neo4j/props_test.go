package neo4j

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobkit/internal/domain"
)

func TestSavedJobNodeMapping(t *testing.T) {
	applied := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	score := 81.0
	job := domain.SavedJob{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Role:          "Go Dev",
		Company:       "Acme",
		Status:        domain.StatusApplied,
		AppliedDate:   &applied,
		AIScore:       &score,
		ChecklistDone: []string{"a", "b"},
		CreatedAt:     applied,
		UpdatedAt:     applied,
	}

	props := savedJobProps(job)
	// the driver hands lists back as []any
	props["checklistDone"] = []any{"a", "b"}

	got, ok := savedJobFromNode(neo4j.Node{Props: props})
	if !ok {
		t.Fatal("mapping failed")
	}
	if got.ID != job.ID || got.UserID != job.UserID || got.Status != job.Status || got.Role != job.Role {
		t.Errorf("got = %+v", got)
	}
	if got.AppliedDate == nil || !got.AppliedDate.Equal(applied) || got.AIScore == nil || *got.AIScore != score {
		t.Errorf("optional fields = %v, %v", got.AppliedDate, got.AIScore)
	}
	if len(got.ChecklistDone) != 2 {
		t.Errorf("checklist = %v", got.ChecklistDone)
	}
}

func TestSavedJobPropsNilOptionals(t *testing.T) {
	props := savedJobProps(domain.SavedJob{ID: uuid.New(), UserID: uuid.New()})
	if props["appliedDate"] != nil || props["aiScore"] != nil {
		t.Errorf("optional props = %v, %v", props["appliedDate"], props["aiScore"])
	}
	if cl, ok := props["checklistDone"].([]string); !ok || cl == nil {
		t.Errorf("checklistDone = %#v", props["checklistDone"])
	}

	got, ok := savedJobFromNode(neo4j.Node{Props: props})
	if !ok || got.AppliedDate != nil || got.AIScore != nil || got.ChecklistDone == nil {
		t.Errorf("got = %+v", got)
	}
}

func TestNodeMappingRejectsBadIDs(t *testing.T) {
	if _, ok := savedJobFromNode(neo4j.Node{Props: map[string]any{"id": "nope"}}); ok {
		t.Error("expected rejection for bad id")
	}
	if _, ok := userFromNode(neo4j.Node{Props: map[string]any{}}); ok {
		t.Error("expected rejection for missing id")
	}
}
