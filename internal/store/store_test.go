package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"agendacal/internal/ics"
	"agendacal/internal/model"
)

func TestStore_Refresh(t *testing.T) {
	calls := 0
	fail := false
	st := New(LoaderFunc(func(ctx context.Context) ([]model.Event, error) {
		calls++
		if fail {
			return nil, errors.New("down")
		}
		return []model.Event{{UID: "a"}, {UID: "b"}}, nil
	}))

	if len(st.Events()) != 0 {
		t.Fatal("new store is not empty")
	}
	if err := st.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	snap := st.Snapshot()
	if len(snap.Events) != 2 || snap.UpdatedAt.IsZero() {
		t.Errorf("snapshot = %+v", snap)
	}
	if evs := st.Events(); len(evs) != 2 || evs[0].(model.Event).UID != "a" {
		t.Errorf("Events() = %v", evs)
	}

	fail = true
	if err := st.Refresh(context.Background()); err == nil {
		t.Error("Refresh() error = nil on failing loader")
	}
	if got := st.Snapshot(); len(got.Events) != 2 || !got.UpdatedAt.Equal(snap.UpdatedAt) {
		t.Error("failed refresh replaced the previous snapshot")
	}
	if calls != 2 {
		t.Errorf("loader calls = %d, want 2", calls)
	}
}

func TestICSLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cal.ics")
	body := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//t//EN\r\n" +
		"BEGIN:VEVENT\r\nUID:1\r\nDTSTAMP:20240101T000000Z\r\n" +
		"DTSTART:20240110T090000Z\r\nDTEND:20240110T100000Z\r\nSUMMARY:One\r\nEND:VEVENT\r\n" +
		"END:VCALENDAR\r\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	l := ICSLoader{
		Fetcher:  ics.NewFetcher(filepath.Join(dir, "cache")),
		Sources:  []ics.Source{{ID: "ok", URL: path}, {ID: "gone", URL: filepath.Join(dir, "gone.ics")}},
		Location: time.UTC,
	}
	events, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(events) != 1 || events[0].Title != "One" {
		t.Errorf("events = %+v", events)
	}

	l.Sources = l.Sources[1:]
	if _, err := l.Load(context.Background()); err == nil {
		t.Error("Load() error = nil when every source failed")
	}

	l.Sources = nil
	if events, err := l.Load(context.Background()); err != nil || len(events) != 0 {
		t.Errorf("Load() with no sources = %v, %v", events, err)
	}
}

func TestNewScheduler(t *testing.T) {
	st := New(LoaderFunc(func(ctx context.Context) ([]model.Event, error) { return nil, nil }))
	if _, err := NewScheduler(context.Background(), "not a schedule", st); err == nil {
		t.Error("NewScheduler() error = nil for bad spec")
	}
	s, err := NewScheduler(context.Background(), "*/15 * * * *", st)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	s.Start()
	s.Stop()
}
