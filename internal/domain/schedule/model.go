package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TemplateEntry describes one weekday of the recurring weekly schedule.
// DayOfWeek follows time.Weekday numbering: 0=Sunday .. 6=Saturday.
type TemplateEntry struct {
	DayOfWeek        int    `firestore:"dayOfWeek" json:"dayOfWeek"`
	Enabled          bool   `firestore:"enabled" json:"enabled"`
	StartTime        string `firestore:"startTime,omitempty" json:"startTime,omitempty"` // "HH:MM"
	EndTime          string `firestore:"endTime,omitempty" json:"endTime,omitempty"`     // "HH:MM"
	DefaultProgramID string `firestore:"defaultProgramId,omitempty" json:"defaultProgramId,omitempty"`
}

// WeeklyTemplate holds the per-club weekly schedule. The document is replaced
// wholesale on every admin save; no history is kept.
type WeeklyTemplate struct {
	ClubID    string          `firestore:"clubId" json:"clubId"`
	Entries   []TemplateEntry `firestore:"entries" json:"entries"` // one per weekday, 7 total
	UpdatedBy string          `firestore:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	UpdatedAt time.Time       `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// DefaultTemplate returns an all-disabled template for clubs that have not
// configured a schedule yet.
func DefaultTemplate(clubID string) WeeklyTemplate {
	entries := make([]TemplateEntry, 7)
	for i := range entries {
		entries[i] = TemplateEntry{DayOfWeek: i}
	}
	return WeeklyTemplate{ClubID: clubID, Entries: entries}
}

// EntryFor returns the template entry for a weekday.
func (t WeeklyTemplate) EntryFor(day time.Weekday) TemplateEntry {
	for _, e := range t.Entries {
		if e.DayOfWeek == int(day) {
			return e
		}
	}
	return TemplateEntry{DayOfWeek: int(day)}
}

// EnabledDays returns the set of enabled weekdays as a 7-element lookup.
func (t WeeklyTemplate) EnabledDays() [7]bool {
	var out [7]bool
	for _, e := range t.Entries {
		if e.DayOfWeek >= 0 && e.DayOfWeek <= 6 {
			out[e.DayOfWeek] = e.Enabled
		}
	}
	return out
}

// PutTemplateInput is the wholesale replacement payload for a club's template.
type PutTemplateInput struct {
	Entries []TemplateEntry `json:"entries"`
}

func (in *PutTemplateInput) Trim() {
	for i := range in.Entries {
		in.Entries[i].StartTime = strings.TrimSpace(in.Entries[i].StartTime)
		in.Entries[i].EndTime = strings.TrimSpace(in.Entries[i].EndTime)
		in.Entries[i].DefaultProgramID = strings.TrimSpace(in.Entries[i].DefaultProgramID)
	}
}

var timeFormatRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidTimeFormat checks if the time string is in HH:MM format
func IsValidTimeFormat(t string) bool {
	return timeFormatRegex.MatchString(t)
}

// Validate checks the payload: exactly one entry per weekday, and every
// enabled entry carries a well-formed start/end time with start before end.
func (in PutTemplateInput) Validate() error {
	if len(in.Entries) != 7 {
		return fmt.Errorf("%w: exactly 7 entries are required, one per weekday", ErrBadRequest)
	}

	var seen [7]bool
	for _, e := range in.Entries {
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			return fmt.Errorf("%w: dayOfWeek must be 0-6 (0=Sunday)", ErrBadRequest)
		}
		if seen[e.DayOfWeek] {
			return fmt.Errorf("%w: duplicate entry for dayOfWeek %d", ErrBadRequest, e.DayOfWeek)
		}
		seen[e.DayOfWeek] = true

		if !e.Enabled {
			continue
		}
		if !IsValidTimeFormat(e.StartTime) {
			return fmt.Errorf("%w: startTime must be HH:MM format", ErrBadRequest)
		}
		if !IsValidTimeFormat(e.EndTime) {
			return fmt.Errorf("%w: endTime must be HH:MM format", ErrBadRequest)
		}
		if e.StartTime >= e.EndTime {
			return fmt.Errorf("%w: endTime must be after startTime", ErrBadRequest)
		}
	}

	return nil
}
