package search

import (
	"context"
	"sync"
	"time"

	"github.com/honeycarbs/jobkit/pkg/logging"
)

// DefaultDebounce is the quiescence delay before a filter change triggers a re-query.
const DefaultDebounce = 500 * time.Millisecond

// RequerierOption configures Requerier
type RequerierOption func(*Requerier)

// WithDebounce overrides the quiescence delay
func WithDebounce(d time.Duration) RequerierOption {
	return func(r *Requerier) {
		if d > 0 {
			r.delay = d
		}
	}
}

// WithLatestIssuedOnly applies a response only if no newer re-query was issued
// for the session since it started. Without it the last completed response wins.
func WithLatestIssuedOnly() RequerierOption {
	return func(r *Requerier) {
		r.latestOnly = true
	}
}

// WithRequerierLogger sets the logger
func WithRequerierLogger(l *logging.Logger) RequerierOption {
	return func(r *Requerier) {
		if l != nil {
			r.logger = l
		}
	}
}

// Requerier re-runs a session's search after its filters stop changing and
// writes the response into the session's State.
type Requerier struct {
	searcher   Searcher
	store      *StateStore
	delay      time.Duration
	latestOnly bool
	logger     *logging.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*pending
	closed   bool
	wg       sync.WaitGroup
}

type pending struct {
	timer  *time.Timer
	armed  uint64 // identifies the current timer
	issued uint64 // generation of the latest re-query started
	active int    // re-queries still running

	// apply serializes the load-modify-save of this session's state
	apply sync.Mutex
}

// NewRequerier creates a Requerier bound to searcher and store.
func NewRequerier(searcher Searcher, store *StateStore, opts ...RequerierOption) *Requerier {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Requerier{
		searcher: searcher,
		store:    store,
		delay:    DefaultDebounce,
		logger:   logging.Nop(),
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*pending),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Notify records a filter change for session. If st has not been searched yet
// nothing is scheduled and false is returned. Otherwise any pending timer is
// reset so that a burst of changes produces a single upstream call.
func (r *Requerier) Notify(session string, st State) bool {
	if !st.Searched {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}

	p, ok := r.sessions[session]
	if !ok {
		p = &pending{}
		r.sessions[session] = p
	}
	if p.timer != nil {
		p.timer.Stop()
	}

	p.armed++
	token := p.armed
	snapshot := st
	p.timer = time.AfterFunc(r.delay, func() {
		r.fire(session, snapshot, token)
	})
	return true
}

func (r *Requerier) fire(session string, st State, token uint64) {
	r.mu.Lock()
	p, ok := r.sessions[session]
	if r.closed || !ok {
		r.mu.Unlock()
		return
	}
	if p.armed == token {
		p.timer = nil
	}
	p.issued++
	p.active++
	gen := p.issued
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer r.finish(session, p)
		r.run(session, p, st, gen)
	}()
}

// finish forgets a session once it has no timer and nothing in flight
func (r *Requerier) finish(session string, p *pending) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.active--
	if p.active == 0 && p.timer == nil && r.sessions[session] == p {
		delete(r.sessions, session)
	}
}

func (r *Requerier) run(session string, p *pending, st State, gen uint64) {
	res, err := r.searcher.Search(r.ctx, st.Query, st.Location, st.Filters)
	if err != nil {
		r.logger.Warn("re-query failed", "session", session, "err", err)
		return
	}

	p.apply.Lock()
	defer p.apply.Unlock()

	if r.latestOnly {
		r.mu.Lock()
		stale := p.issued != gen
		r.mu.Unlock()
		if stale {
			r.logger.Debug("dropping stale re-query response", "session", session, "generation", gen)
			return
		}
	}

	current, ok, err := r.store.Load(r.ctx, session)
	if err != nil {
		r.logger.Warn("re-query: load state failed", "session", session, "err", err)
		return
	}
	if !ok {
		current = st
	}
	current.Results = res.Postings
	current.Searched = true
	current.UpdatedAt = res.FetchedAt

	if err := r.store.Save(r.ctx, session, current); err != nil {
		r.logger.Warn("re-query: save state failed", "session", session, "err", err)
		return
	}

	r.logger.Info("re-query applied",
		"session", session,
		"generation", gen,
		"unique", res.UniqueCount,
	)
}

// tracked reports how many sessions hold a timer or a running re-query
func (r *Requerier) tracked() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Shutdown stops pending timers and waits for in-flight searches.
func (r *Requerier) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	for _, p := range r.sessions {
		if p.timer != nil {
			p.timer.Stop()
		}
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		return ctx.Err()
	}
}

// Wait blocks until every issued re-query has finished.
func (r *Requerier) Wait() {
	r.wg.Wait()
}
