package calendar

import (
	"testing"
	"time"

	"club-scheduler/backend/internal/domain/schedule"
)

func monWedFriTemplate() schedule.WeeklyTemplate {
	t := schedule.DefaultTemplate("club-1")
	for _, d := range []int{1, 3, 5} {
		t.Entries[d].Enabled = true
		t.Entries[d].StartTime = "18:00"
		t.Entries[d].EndTime = "19:30"
		t.Entries[d].DefaultProgramID = "prog-sprint"
	}
	return t
}

func day(t *testing.T, days []Day, date string) Day {
	t.Helper()
	for _, d := range days {
		if d.Date == date {
			return d
		}
	}
	t.Fatalf("no projected day for %s", date)
	return Day{}
}

func TestProjectClassifiesEveryDay(t *testing.T) {
	t.Parallel()

	// 2025-06-02 is a Monday, 2025-06-08 a Sunday.
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 4, 15, 30, 0, 0, time.UTC) // Wednesday afternoon

	days := Project(ProjectionInput{
		Template:  monWedFriTemplate(),
		Cancelled: map[string]bool{"2025-06-06": true}, // Friday
		Sessions: map[string]SessionInfo{
			"2025-06-02": {ID: "2025-06-02", AttendanceCount: 5, HasValidAttendance: true},
		},
		Start: start,
		End:   end,
		Today: today,
	})

	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}

	tests := []struct {
		date string
		want Status
	}{
		{"2025-06-02", StatusPastActive},   // Monday, before today
		{"2025-06-03", StatusNone},         // Tuesday, not scheduled
		{"2025-06-04", StatusPastActive},   // today itself counts as past
		{"2025-06-05", StatusNone},         // Thursday
		{"2025-06-06", StatusCancelled},    // cancelled Friday
		{"2025-06-07", StatusNone},         // Saturday
		{"2025-06-08", StatusNone},         // Sunday
	}
	for _, tt := range tests {
		got := day(t, days, tt.date)
		if got.Status != tt.want {
			t.Errorf("%s: status = %q, want %q", tt.date, got.Status, tt.want)
		}
	}
}

func TestProjectFutureScheduledDay(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)  // Monday
	end := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)   // Friday
	today := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	days := Project(ProjectionInput{
		Template: monWedFriTemplate(),
		Start:    start,
		End:      end,
		Today:    today,
	})

	wed := day(t, days, "2025-06-11")
	if wed.Status != StatusFutureActive {
		t.Fatalf("future Wednesday status = %q, want %q", wed.Status, StatusFutureActive)
	}
	if wed.StartTime != "18:00" || wed.EndTime != "19:30" {
		t.Errorf("template times not carried: %q-%q", wed.StartTime, wed.EndTime)
	}
	if wed.DefaultProgramID != "prog-sprint" {
		t.Errorf("defaultProgramId = %q", wed.DefaultProgramID)
	}
}

func TestProjectCancellationWinsOverSession(t *testing.T) {
	t.Parallel()

	d := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // scheduled Monday

	days := Project(ProjectionInput{
		Template:  monWedFriTemplate(),
		Cancelled: map[string]bool{"2025-06-02": true},
		Sessions:  map[string]SessionInfo{"2025-06-02": {ID: "2025-06-02"}},
		Start:     d,
		End:       d,
		Today:     d.AddDate(0, 0, 7),
	})

	got := days[0]
	if got.Status != StatusCancelled {
		t.Fatalf("status = %q, want %q", got.Status, StatusCancelled)
	}
	// The session attachment stays visible even on a cancelled day.
	if got.Session == nil || got.Session.ID != "2025-06-02" {
		t.Errorf("session attachment missing on cancelled day: %+v", got.Session)
	}
}

func TestProjectUnscheduledDayIgnoresTemplateTimes(t *testing.T) {
	t.Parallel()

	d := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC) // Tuesday, not scheduled

	days := Project(ProjectionInput{
		Template: monWedFriTemplate(),
		Start:    d,
		End:      d,
		Today:    d,
	})

	got := days[0]
	if got.Status != StatusNone {
		t.Fatalf("status = %q, want %q", got.Status, StatusNone)
	}
	if got.StartTime != "" || got.EndTime != "" || got.DefaultProgramID != "" {
		t.Errorf("unscheduled day carries template fields: %+v", got)
	}
}

func TestProjectTodayBoundaryUsesDateOnly(t *testing.T) {
	t.Parallel()

	// 23:59 today must still classify today as past-active, and tomorrow as
	// future-active, regardless of the time component.
	today := time.Date(2025, 6, 2, 23, 59, 59, 0, time.UTC) // Monday
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	days := Project(ProjectionInput{
		Template: monWedFriTemplate(),
		Start:    start,
		End:      end,
		Today:    today,
	})

	if got := day(t, days, "2025-06-02").Status; got != StatusPastActive {
		t.Errorf("today = %q, want %q", got, StatusPastActive)
	}
	if got := day(t, days, "2025-06-04").Status; got != StatusFutureActive {
		t.Errorf("tomorrow's session = %q, want %q", got, StatusFutureActive)
	}
}

func TestMonthGridRangeIsAlways42Days(t *testing.T) {
	t.Parallel()

	tests := []struct {
		year      int
		month     time.Month
		wantStart string
	}{
		{2025, time.June, "2025-06-01"},     // June 1st is a Sunday
		{2025, time.July, "2025-06-29"},     // July 1st is a Tuesday
		{2024, time.February, "2024-01-28"}, // leap February
		{2025, time.March, "2025-02-23"},
	}

	for _, tt := range tests {
		start, end := MonthGridRange(tt.year, tt.month)

		if got := start.Format("2006-01-02"); got != tt.wantStart {
			t.Errorf("%d-%d: grid start = %s, want %s", tt.year, tt.month, got, tt.wantStart)
		}
		if start.Weekday() != time.Sunday {
			t.Errorf("%d-%d: grid start is %s, want Sunday", tt.year, tt.month, start.Weekday())
		}
		if days := int(end.Sub(start).Hours()/24) + 1; days != 42 {
			t.Errorf("%d-%d: grid spans %d days, want 42", tt.year, tt.month, days)
		}
	}
}

func TestProjectGridLengthMatchesRange(t *testing.T) {
	t.Parallel()

	start, end := MonthGridRange(2025, time.June)
	days := Project(ProjectionInput{
		Template: monWedFriTemplate(),
		Start:    start,
		End:      end,
		Today:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	if len(days) != 42 {
		t.Fatalf("projected %d days, want 42", len(days))
	}
	for i := 1; i < len(days); i++ {
		if days[i-1].Date >= days[i].Date {
			t.Fatalf("days out of order at %d: %s then %s", i, days[i-1].Date, days[i].Date)
		}
	}
}
