package cancellation

import (
	"testing"
	"time"
)

func TestScheduledDatesInRange(t *testing.T) {
	t.Parallel()

	monWedFri := [7]bool{false, true, false, true, false, true, false}
	everyDay := [7]bool{true, true, true, true, true, true, true}
	weekendOnly := [7]bool{true, false, false, false, false, false, true}

	tests := []struct {
		name         string
		start, end   string
		enabled      [7]bool
		skipWeekends bool
		want         []string
	}{
		{
			// Two full weeks of a Mon/Wed/Fri template.
			name:  "two weeks mon wed fri",
			start: "2025-06-02", end: "2025-06-15",
			enabled: monWedFri,
			want: []string{
				"2025-06-02", "2025-06-04", "2025-06-06",
				"2025-06-09", "2025-06-11", "2025-06-13",
			},
		},
		{
			name:  "skip weekends leaves weekdays",
			start: "2025-06-02", end: "2025-06-08",
			enabled:      everyDay,
			skipWeekends: true,
			want:         []string{"2025-06-02", "2025-06-03", "2025-06-04", "2025-06-05", "2025-06-06"},
		},
		{
			name:  "skip weekends on weekend-only template",
			start: "2025-06-02", end: "2025-06-15",
			enabled:      weekendOnly,
			skipWeekends: true,
			want:         nil,
		},
		{
			name:  "single day hit",
			start: "2025-06-04", end: "2025-06-04",
			enabled: monWedFri,
			want:    []string{"2025-06-04"},
		},
		{
			name:  "single day miss",
			start: "2025-06-03", end: "2025-06-03",
			enabled: monWedFri,
			want:    nil,
		},
		{
			name:  "empty template yields nothing",
			start: "2025-06-01", end: "2025-06-30",
			enabled: [7]bool{},
			want:    nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, _ := time.Parse("2006-01-02", tt.start)
			end, _ := time.Parse("2006-01-02", tt.end)

			got := ScheduledDatesInRange(start, end, tt.enabled, tt.skipWeekends)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d dates %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("date[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}
