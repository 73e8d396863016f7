package repository

import (
	"strings"
	"testing"
	"time"
)

func TestNewID(t *testing.T) {
	t.Parallel()

	id := NewID("tsk")
	if !strings.HasPrefix(id, "tsk-") {
		t.Fatalf("NewID prefix: got %q, want tsk- prefix", id)
	}
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("NewID shape: got %q, want 3 dash-separated parts", id)
	}
	if len(parts[2]) != 8 {
		t.Fatalf("NewID suffix length: got %d, want 8", len(parts[2]))
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v := NewID("tsk")
		if seen[v] {
			t.Fatalf("NewID produced duplicate %q", v)
		}
		seen[v] = true
	}
}

func TestParseFlexibleDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"iso", "2025-03-14", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), true},
		{"brazilian", "14/03/2025", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), true},
		{"padded", "  2025-03-14 ", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"sentinel", "-", time.Time{}, false},
		{"garbage", "soon", time.Time{}, false},
		{"us order rejected", "03/25/2025", time.Time{}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseFlexibleDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseFlexibleDate(%q) ok: got %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Fatalf("ParseFlexibleDate(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	d := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	if got := FormatDate(d); got != "2025-03-14" {
		t.Fatalf("FormatDate: got %q, want 2025-03-14", got)
	}
}
