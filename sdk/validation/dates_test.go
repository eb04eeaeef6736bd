package validation_test

import (
	"testing"
	"time"

	"github.com/hearthkeep/hearthkeep/sdk/validation"
)

func TestParseCalendarDate(t *testing.T) {
	got, err := validation.ParseCalendarDate("2026-03-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	y, m, d := got.Date()
	if y != 2026 || m != time.March || d != 9 {
		t.Errorf("got %v, want 2026-03-09", got)
	}
	if got.Location() != time.Local {
		t.Errorf("location: got %v, want local", got.Location())
	}
}

func TestParseCalendarDateRejectsOtherLayouts(t *testing.T) {
	for _, s := range []string{"", "03/09/2026", "2026-3-9", "2026-03-09T00:00:00Z"} {
		if _, err := validation.ParseCalendarDate(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestFormatCalendarDateDropsTime(t *testing.T) {
	in := time.Date(2026, 3, 9, 23, 59, 1, 0, time.Local)
	if got := validation.FormatCalendarDate(in); got != "2026-03-09" {
		t.Errorf("got %q, want %q", got, "2026-03-09")
	}
}

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2026-03-09", want: "2026-03-09"},
		{in: "03/09/2026", want: "2026-03-09"},
		{in: "2026/03/09", want: "2026-03-09"},
		{in: "2026-03-09T15:04:05Z", want: "2026-03-09"},
	}

	for _, tt := range tests {
		got, err := validation.ParseFlexibleDate(tt.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.in, err)
			continue
		}
		if f := validation.FormatCalendarDate(got); f != tt.want {
			t.Errorf("%q: got %s, want %s", tt.in, f, tt.want)
		}
	}

	if _, err := validation.ParseFlexibleDate("next tuesday"); err == nil {
		t.Error("expected error for unparseable input")
	}
}
