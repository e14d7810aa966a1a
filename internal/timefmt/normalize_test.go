package timefmt

import (
	"fmt"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short hour", "9:00", "09:00"},
		{"canonical", "14:30", "14:30"},
		{"with seconds", "9:15:59", "09:15"},
		{"with seconds canonical hour", "13:45:00", "13:45"},
		{"rfc3339 stamp", "2025-03-10T08:05:00Z", "08:05"},
		{"plain stamp", "2025-03-10 16:20:00", "16:20"},
		{"empty", "", "00:00"},
		{"whitespace", "   ", "00:00"},
		{"garbage", "not a time", "00:00"},
		{"lone number", "9", "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 5, 15, 30, 45, 59} {
			canonical := fmt.Sprintf("%02d:%02d", hour, minute)
			if got := Normalize(canonical); got != canonical {
				t.Fatalf("Normalize(%q) = %q, want unchanged", canonical, got)
			}
		}
	}
}

func TestSplitHourMinute(t *testing.T) {
	tests := []struct {
		input      string
		wantHour   int
		wantMinute int
	}{
		{"09:30", 9, 30},
		{"9:30", 9, 30},
		{"17:00", 17, 0},
		{"8", 8, 0},
		{"", 0, 0},
	}

	for _, tt := range tests {
		hour, minute := SplitHourMinute(tt.input)
		if hour != tt.wantHour || minute != tt.wantMinute {
			t.Errorf("SplitHourMinute(%q) = (%d, %d), want (%d, %d)", tt.input, hour, minute, tt.wantHour, tt.wantMinute)
		}
	}
}
