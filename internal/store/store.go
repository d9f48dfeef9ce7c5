// Package store keeps the most recently loaded events in memory and
// refreshes them from the configured ICS sources on a cron schedule.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"agendacal/internal/ics"
	appLog "agendacal/internal/log"
	"agendacal/internal/model"
)

// Loader produces the current set of events.
type Loader interface {
	Load(ctx context.Context) ([]model.Event, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) ([]model.Event, error)

func (f LoaderFunc) Load(ctx context.Context) ([]model.Event, error) { return f(ctx) }

// ICSLoader fetches and parses a list of ICS sources.
type ICSLoader struct {
	Fetcher  *ics.Fetcher
	Sources  []ics.Source
	Location *time.Location
}

// Load returns events from every source that could be fetched and parsed.
// It fails only when sources exist and none of them produced events.
func (l ICSLoader) Load(ctx context.Context) ([]model.Event, error) {
	results, errs := l.Fetcher.FetchAll(ctx, l.Sources)

	events := make([]model.Event, 0)
	for _, res := range results {
		evs, err := ics.ParseICS(res.Source, res.Body, l.Location)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		events = append(events, evs...)
	}

	if len(errs) > 0 && len(events) == 0 {
		return nil, errors.Join(errs...)
	}
	if len(errs) > 0 {
		appLog.Error("store: some sources failed", errors.Join(errs...), "error_count", len(errs))
	}
	return events, nil
}

// Snapshot is the store content at one point in time.
type Snapshot struct {
	Events    []model.Event
	UpdatedAt time.Time
}

// Store holds the latest events. It is safe for concurrent use.
type Store struct {
	loader Loader

	mu   sync.RWMutex
	snap Snapshot

	// refreshMu serializes refreshes so a slow fetch is never overlapped by
	// the next cron tick.
	refreshMu sync.Mutex
}

// New returns an empty Store fed by loader.
func New(loader Loader) *Store {
	return &Store{loader: loader}
}

// Snapshot returns the current events.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Events returns the current events as agenda records.
func (s *Store) Events() []any {
	snap := s.Snapshot()
	out := make([]any, len(snap.Events))
	for i, e := range snap.Events {
		out[i] = e
	}
	return out
}

// Refresh reloads events. On failure the previous events stay in place.
func (s *Store) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	started := time.Now()
	events, err := s.loader.Load(ctx)
	if err != nil {
		appLog.Error("store refresh failed", err)
		return err
	}

	s.mu.Lock()
	s.snap = Snapshot{Events: events, UpdatedAt: time.Now()}
	s.mu.Unlock()

	appLog.Info("store refreshed", "event_count", len(events), "took", time.Since(started).String())
	return nil
}

// Scheduler runs Store.Refresh on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler parses spec (standard 5-field cron) and prepares a
// scheduler for st. It does not start it.
func NewScheduler(ctx context.Context, spec string, st *Store) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(spec, func() {
		_ = st.Refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c}, nil
}

// Start begins running scheduled refreshes in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		appLog.Info("refresh scheduled", "next", e.Next.Format(time.RFC3339))
	}
}

// Stop halts the schedule and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
