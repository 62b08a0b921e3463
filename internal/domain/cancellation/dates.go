package cancellation

import "time"

// ScheduledDatesInRange enumerates every calendar day in [start, end] whose
// weekday is enabled in the template. With skipWeekends, Saturday and Sunday
// are excluded even when enabled. Dates come back as "2006-01-02" strings in
// ascending order.
func ScheduledDatesInRange(start, end time.Time, enabled [7]bool, skipWeekends bool) []string {
	start = truncateToDay(start)
	end = truncateToDay(end)

	var out []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if !enabled[int(wd)] {
			continue
		}
		if skipWeekends && (wd == time.Saturday || wd == time.Sunday) {
			continue
		}
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
