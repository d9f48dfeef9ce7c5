package main

import (
	"strings"
	"testing"
	"time"

	"agendacal/internal/config"
)

func TestAnchorDate(t *testing.T) {
	got, err := anchorDate("2024-01-10", time.UTC)
	if err != nil {
		t.Fatalf("anchorDate() error = %v", err)
	}
	if want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("anchorDate() = %v, want %v", got, want)
	}

	today, err := anchorDate("", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if today.Hour() != 0 || today.Minute() != 0 {
		t.Errorf("default anchor not at midnight: %v", today)
	}

	if _, err := anchorDate("01/10/2024", time.UTC); err == nil {
		t.Error("anchorDate() error = nil for bad format")
	}
}

func TestSnapshotOptions(t *testing.T) {
	conf := config.DefaultConfig()
	flags := flagConfig{date: "2024-01-10", snapshot: "/tmp/agenda.png"}

	opts := snapshotOptions(conf, flags)
	if !strings.HasPrefix(opts.URL, "http://"+conf.Listen+"/agenda?") || !strings.Contains(opts.URL, "date=2024-01-10") {
		t.Errorf("URL = %q", opts.URL)
	}
	if opts.Username != "" || opts.Password != "" {
		t.Errorf("credentials set without basic auth: %+v", opts)
	}

	conf.BasicAuth = &config.BasicAuthConfig{Username: "u", Password: "p"}
	opts = snapshotOptions(conf, flags)
	if opts.Username != "u" || opts.Password != "p" {
		t.Errorf("credentials = %q/%q, want u/p", opts.Username, opts.Password)
	}
}
