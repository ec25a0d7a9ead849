package service

import (
	"testing"

	"salon_backend/internal/salons/transport"
	"salon_backend/platform/apperr"
)

func fullWeek() []transport.OpeningHourEntry {
	entries := make([]transport.OpeningHourEntry, 7)
	for weekday := 0; weekday < 7; weekday++ {
		entries[weekday] = transport.OpeningHourEntry{
			Weekday: weekday,
			Open:    "08:00",
			Close:   "18:00",
		}
	}
	return entries
}

func TestParseWeeklyHours(t *testing.T) {
	t.Run("accepts a full week", func(t *testing.T) {
		hours, err := parseWeeklyHours(fullWeek())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hours) != 7 {
			t.Fatalf("expected 7 entries, got %d", len(hours))
		}
		if hours[0].Open.String() != "08:00" || hours[0].Close.String() != "18:00" {
			t.Errorf("unexpected window %s-%s", hours[0].Open, hours[0].Close)
		}
	})

	t.Run("closed day needs no times", func(t *testing.T) {
		entries := fullWeek()
		entries[6] = transport.OpeningHourEntry{Weekday: 6, Closed: true}

		hours, err := parseWeeklyHours(entries)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !hours[6].Closed {
			t.Error("expected dimanche to be closed")
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func([]transport.OpeningHourEntry) []transport.OpeningHourEntry
		}{
			{
				name: "fewer than seven entries",
				mutate: func(entries []transport.OpeningHourEntry) []transport.OpeningHourEntry {
					return entries[:6]
				},
			},
			{
				name: "duplicate weekday",
				mutate: func(entries []transport.OpeningHourEntry) []transport.OpeningHourEntry {
					entries[1].Weekday = 0
					return entries
				},
			},
			{
				name: "weekday out of range",
				mutate: func(entries []transport.OpeningHourEntry) []transport.OpeningHourEntry {
					entries[0].Weekday = 7
					return entries
				},
			},
			{
				name: "malformed open time",
				mutate: func(entries []transport.OpeningHourEntry) []transport.OpeningHourEntry {
					entries[0].Open = "8h00"
					return entries
				},
			},
			{
				name: "open not before close",
				mutate: func(entries []transport.OpeningHourEntry) []transport.OpeningHourEntry {
					entries[0].Open = "18:00"
					entries[0].Close = "08:00"
					return entries
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := parseWeeklyHours(tt.mutate(fullWeek()))
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				if apperr.GetKind(err) != apperr.KindValidation {
					t.Errorf("expected validation error, got kind %v", apperr.GetKind(err))
				}
			})
		}
	})
}
