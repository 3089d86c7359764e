package usecase

import (
	"testing"
	"time"
)

func TestDateExtractor_Extract_AbsoluteDates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{
			name: "month day year",
			text: "Published on March 14, 2026 by the newsroom.",
			want: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "abbreviated month",
			text: "Updated Sep 2, 2025.",
			want: time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "day month year",
			text: "The summit opened on 14 March 2026 in Geneva.",
			want: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "iso date",
			text: "article-date: 2026-03-14 some trailing text",
			want: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "slash date",
			text: "Filed 3/14/2026 in the archive.",
			want: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		},
	}

	extractor := NewDateExtractor()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractor.Extract(tt.text)
			if !ok {
				t.Fatal("Extract() found no date")
			}
			if got.Year() != tt.want.Year() || got.Month() != tt.want.Month() || got.Day() != tt.want.Day() {
				t.Errorf("Extract() = %v, want date %v", got, tt.want)
			}
		})
	}
}

func TestDateExtractor_Extract_RelativeDates(t *testing.T) {
	fixed := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	extractor := NewDateExtractor().WithClock(func() time.Time { return fixed })

	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"hours ago", "Reported 3 hours ago.", fixed.Add(-3 * time.Hour)},
		{"single hour", "Reported 1 hour ago.", fixed.Add(-time.Hour)},
		{"days ago", "Reported 4 days ago.", fixed.AddDate(0, 0, -4)},
		{"yesterday", "The ruling came down yesterday.", fixed.AddDate(0, 0, -1)},
		{"today", "Markets rallied today.", fixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractor.Extract(tt.text)
			if !ok {
				t.Fatal("Extract() found no date")
			}
			if !got.Equal(tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateExtractor_Extract_AbsoluteBeatsRelative(t *testing.T) {
	fixed := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	extractor := NewDateExtractor().WithClock(func() time.Time { return fixed })

	got, ok := extractor.Extract("Published 2026-01-05, updated 2 hours ago.")
	if !ok {
		t.Fatal("Extract() found no date")
	}
	if got.Year() != 2026 || got.Month() != time.January || got.Day() != 5 {
		t.Errorf("Extract() = %v, want the absolute date", got)
	}
}

func TestDateExtractor_Extract_NoDate(t *testing.T) {
	extractor := NewDateExtractor()

	tests := []struct {
		name string
		text string
	}{
		{"empty text", ""},
		{"no temporal reference", "A plain sentence about nothing in particular."},
		{"bare year is not a date", "Revenue grew through 2026 and beyond."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := extractor.Extract(tt.text); ok {
				t.Errorf("Extract(%q) found a date, want none", tt.text)
			}
		})
	}
}
