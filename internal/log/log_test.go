package log

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"error", LevelError},
		{"info", LevelInfo},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPairs(t *testing.T) {
	got := pairs([]any{"a", 1, 2, "skipped", "b", true, "dangling"})
	if len(got) != 4 {
		t.Fatalf("pairs() len = %d, want 4: %v", len(got), got)
	}
	if got[0] != "a" || got[1] != 1 || got[2] != "b" || got[3] != true {
		t.Errorf("pairs() = %v", got)
	}
}

func TestLoggingDoesNotPanic(t *testing.T) {
	SetLevel(LevelDebug)
	defer SetLevel(LevelInfo)
	Debug("debug line", "k", "v")
	Info("info line", "odd")
	Error("error line", nil, "n", 3)
}
