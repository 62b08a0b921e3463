// Package calendar projects the weekly template, cancellation overlays and
// materialized sessions onto a concrete date range. It is pure: no I/O, no
// clock reads — "today" is always injected by the caller.
package calendar

import (
	"time"

	"club-scheduler/backend/internal/domain/schedule"
)

// Status classifies a projected day.
type Status string

const (
	// StatusNone is a day with no enabled template entry (a normal day).
	StatusNone Status = "none"
	// StatusCancelled is a scheduled day covered by a cancellation.
	// Cancellation wins over session existence.
	StatusCancelled Status = "cancelled"
	// StatusPastActive is a scheduled, uncancelled day on or before today,
	// eligible for attendance entry (materializes on demand).
	StatusPastActive Status = "past-active"
	// StatusFutureActive is a scheduled, uncancelled day after today,
	// eligible for cancellation.
	StatusFutureActive Status = "future-active"
)

// SessionInfo is the materialized-session attachment for a day.
type SessionInfo struct {
	ID                 string `json:"id"`
	AttendanceCount    int    `json:"attendanceCount"`
	HasValidAttendance bool   `json:"hasValidAttendance"`
}

// Day is one projected calendar date.
type Day struct {
	Date      string `json:"date"` // "2006-01-02"
	DayOfWeek int    `json:"dayOfWeek"`
	Status    Status `json:"status"`

	// Template defaults, populated when the day is scheduled.
	StartTime        string `json:"startTime,omitempty"`
	EndTime          string `json:"endTime,omitempty"`
	DefaultProgramID string `json:"defaultProgramId,omitempty"`

	// Session is set when a session has been materialized for the date,
	// including on cancelled days (the session is simply not surfaced for
	// attendance there).
	Session *SessionInfo `json:"session,omitempty"`
}

// ProjectionInput bundles the read snapshot a projection runs on.
type ProjectionInput struct {
	Template  schedule.WeeklyTemplate
	Cancelled map[string]bool        // date → has an active cancellation
	Sessions  map[string]SessionInfo // date → materialized session
	Start     time.Time              // inclusive
	End       time.Time              // inclusive
	Today     time.Time              // injected now; compared date-only
}

// Project classifies every date in [Start, End], one Day per date in
// ascending order.
func Project(in ProjectionInput) []Day {
	start := truncateToDay(in.Start)
	end := truncateToDay(in.End)
	today := truncateToDay(in.Today)

	var out []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		entry := in.Template.EntryFor(d.Weekday())

		day := Day{
			Date:      date,
			DayOfWeek: int(d.Weekday()),
		}

		if si, ok := in.Sessions[date]; ok {
			s := si
			day.Session = &s
		}

		if !entry.Enabled {
			day.Status = StatusNone
			out = append(out, day)
			continue
		}

		day.StartTime = entry.StartTime
		day.EndTime = entry.EndTime
		day.DefaultProgramID = entry.DefaultProgramID

		switch {
		case in.Cancelled[date]:
			day.Status = StatusCancelled
		case !d.After(today):
			day.Status = StatusPastActive
		default:
			day.Status = StatusFutureActive
		}

		out = append(out, day)
	}

	return out
}

// MonthGridRange returns the inclusive date range of the fixed 6×7 month
// grid: 42 days starting on the Sunday on or before the 1st, so leading and
// trailing days of adjacent months fill the grid.
func MonthGridRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := start.AddDate(0, 0, 41)
	return start, end
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
