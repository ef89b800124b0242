package search

import (
	"context"
	"testing"
	"time"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/storage/memory"
)

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestRequerierIgnoresUnsearchedSessions(t *testing.T) {
	p := &fakeProvider{}
	r := NewRequerier(newTestService(t, p), NewStateStore(memory.NewKV()), WithDebounce(10*time.Millisecond))
	defer func() { _ = r.Shutdown(context.Background()) }()

	if r.Notify("u1", State{Query: "go"}) {
		t.Fatal("Notify scheduled a re-query before any search")
	}
	time.Sleep(40 * time.Millisecond)
	if p.callCount() != 0 {
		t.Errorf("provider calls = %d, want 0", p.callCount())
	}
}

func TestRequerierCollapsesBursts(t *testing.T) {
	ctx := context.Background()
	p := &fakeProvider{batch: Batch{Postings: []domain.JobPosting{
		{Title: "Engineer", Company: "Acme"},
		{Title: "Engineer", Company: "Acme Inc"},
	}}}
	store := NewStateStore(memory.NewKV())
	r := NewRequerier(newTestService(t, p), store, WithDebounce(40*time.Millisecond))
	defer func() { _ = r.Shutdown(ctx) }()

	st := State{Query: "go", Searched: true}
	for _, typ := range []domain.JobType{domain.JobTypeFullTime, domain.JobTypeContract, domain.JobTypePartTime} {
		st.Filters.Type = typ
		if !r.Notify("u1", st) {
			t.Fatal("Notify did not schedule")
		}
		time.Sleep(5 * time.Millisecond)
	}

	eventually(t, func() bool { return p.callCount() == 1 })
	r.Wait()
	time.Sleep(60 * time.Millisecond)

	if p.callCount() != 1 {
		t.Fatalf("provider calls = %d, want 1", p.callCount())
	}
	if got := p.calls[0].Filters.Type; got != domain.JobTypePartTime {
		t.Errorf("re-query used type %q, want the last change", got)
	}

	saved, ok, err := store.Load(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if len(saved.Results) != 1 || !saved.Searched {
		t.Errorf("saved state = %+v", saved)
	}
}

// slowFast makes CONTRACT searches block until release is closed.
func slowFast(release <-chan struct{}) func(Query) (Batch, error) {
	return func(q Query) (Batch, error) {
		if q.Filters.Type == domain.JobTypeContract {
			<-release
			return Batch{Postings: []domain.JobPosting{{Title: "Slow", Company: "A"}}}, nil
		}
		return Batch{Postings: []domain.JobPosting{{Title: "Fast", Company: "B"}}}, nil
	}
}

func runOverlapping(t *testing.T, opts ...RequerierOption) State {
	t.Helper()
	ctx := context.Background()
	release := make(chan struct{})
	p := &fakeProvider{respond: slowFast(release)}
	store := NewStateStore(memory.NewKV())
	r := NewRequerier(newTestService(t, p), store, append(opts, WithDebounce(10*time.Millisecond))...)
	defer func() { _ = r.Shutdown(ctx) }()

	st := State{Query: "go", Searched: true}
	st.Filters.Type = domain.JobTypeContract
	r.Notify("u1", st)
	eventually(t, func() bool { return p.callCount() == 1 })

	st.Filters.Type = domain.JobTypeFullTime
	r.Notify("u1", st)
	eventually(t, func() bool { return p.callCount() == 2 })
	eventually(t, func() bool {
		s, ok, _ := store.Load(ctx, "u1")
		return ok && len(s.Results) == 1 && s.Results[0].Title == "Fast"
	})

	close(release)
	r.Wait()

	saved, _, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return saved
}

func TestRequerierLastCompletedWins(t *testing.T) {
	saved := runOverlapping(t)
	if saved.Results[0].Title != "Slow" {
		t.Errorf("results = %+v, want the later-completing response", saved.Results)
	}
}

func TestRequerierLatestIssuedOnly(t *testing.T) {
	saved := runOverlapping(t, WithLatestIssuedOnly())
	if saved.Results[0].Title != "Fast" {
		t.Errorf("results = %+v, want the latest-issued response", saved.Results)
	}
}

func TestRequerierShutdownStopsTimers(t *testing.T) {
	p := &fakeProvider{}
	r := NewRequerier(newTestService(t, p), NewStateStore(memory.NewKV()), WithDebounce(30*time.Millisecond))

	r.Notify("u1", State{Query: "go", Searched: true})
	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	if p.callCount() != 0 {
		t.Errorf("provider calls after shutdown = %d", p.callCount())
	}
	if r.Notify("u1", State{Query: "go", Searched: true}) {
		t.Error("Notify scheduled after shutdown")
	}
}

// gatedKV blocks Get for one session until release is closed.
type gatedKV struct {
	KV
	slowKey string
	entered chan struct{}
	release chan struct{}
}

func (g *gatedKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == g.slowKey {
		g.entered <- struct{}{}
		<-g.release
	}
	return g.KV.Get(ctx, key)
}

func TestRequerierStoreIODoesNotBlockOtherSessions(t *testing.T) {
	ctx := context.Background()
	kv := &gatedKV{
		KV:      memory.NewKV(),
		slowKey: "search:state:slow",
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	p := &fakeProvider{batch: Batch{Postings: []domain.JobPosting{{Title: "Engineer", Company: "Acme"}}}}
	r := NewRequerier(newTestService(t, p), NewStateStore(kv), WithDebounce(5*time.Millisecond))
	defer func() { _ = r.Shutdown(ctx) }()

	r.Notify("slow", State{Query: "go", Searched: true})
	select {
	case <-kv.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("re-query never reached the store")
	}

	notified := make(chan bool, 1)
	go func() { notified <- r.Notify("fast", State{Query: "go", Searched: true}) }()
	select {
	case ok := <-notified:
		if !ok {
			t.Fatal("Notify did not schedule")
		}
	case <-time.After(time.Second):
		t.Fatal("Notify blocked behind another session's store access")
	}

	eventually(t, func() bool { return p.callCount() == 2 })
	close(kv.release)
	r.Wait()
}

func TestRequerierForgetsIdleSessions(t *testing.T) {
	ctx := context.Background()
	p := &fakeProvider{batch: Batch{Postings: []domain.JobPosting{{Title: "Engineer", Company: "Acme"}}}}
	r := NewRequerier(newTestService(t, p), NewStateStore(memory.NewKV()), WithDebounce(5*time.Millisecond))
	defer func() { _ = r.Shutdown(ctx) }()

	for _, session := range []string{"u1", "u2", "u3"} {
		r.Notify(session, State{Query: "go", Searched: true})
	}
	eventually(t, func() bool { return p.callCount() == 3 })
	r.Wait()

	if n := r.tracked(); n != 0 {
		t.Errorf("tracked sessions = %d, want 0", n)
	}

	// a forgotten session can be scheduled again
	if !r.Notify("u1", State{Query: "go", Searched: true}) {
		t.Fatal("Notify did not schedule")
	}
	eventually(t, func() bool { return p.callCount() == 4 })
	r.Wait()
	if n := r.tracked(); n != 0 {
		t.Errorf("tracked sessions = %d, want 0", n)
	}
}
