package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/honeycarbs/jobkit/internal/domain"
)

// State is the per-user search session: last query, filters and displayed results.
type State struct {
	Query    string               `json:"query"`
	Location string               `json:"location"`
	Filters  domain.SearchFilters `json:"filters"`
	Results  []domain.JobPosting  `json:"results"`
	// Searched is set once a search has completed for this session
	Searched  bool      `json:"searched"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// KV is the byte-oriented store behind StateStore (Redis, memory).
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// StateStore persists State as JSON and re-validates it on load.
type StateStore struct {
	kv     KV
	prefix string
}

// NewStateStore wraps kv; keys are namespaced as "search:state:<session>".
func NewStateStore(kv KV) *StateStore {
	return &StateStore{kv: kv, prefix: "search:state:"}
}

// Load returns the stored state for session. Missing or undecodable data yields
// (State{}, false, nil). Results are deduplicated again so state written by older
// code cannot surface duplicates.
func (s *StateStore) Load(ctx context.Context, session string) (State, bool, error) {
	raw, ok, err := s.kv.Get(ctx, s.prefix+session)
	if err != nil {
		return State{}, false, fmt.Errorf("search: load state: %w", err)
	}
	if !ok {
		return State{}, false, nil
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, false, nil
	}
	st.Results = Dedupe(st.Results)
	return st, true, nil
}

// Save writes state for session.
func (s *StateStore) Save(ctx context.Context, session string, st State) error {
	if st.Results == nil {
		st.Results = []domain.JobPosting{}
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("search: encode state: %w", err)
	}
	if err := s.kv.Set(ctx, s.prefix+session, raw); err != nil {
		return fmt.Errorf("search: save state: %w", err)
	}
	return nil
}

// Clear removes the stored state for session.
func (s *StateStore) Clear(ctx context.Context, session string) error {
	if err := s.kv.Delete(ctx, s.prefix+session); err != nil {
		return fmt.Errorf("search: clear state: %w", err)
	}
	return nil
}
