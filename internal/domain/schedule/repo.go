package schedule

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) templateRef(clubID string) *firestore.DocumentRef {
	return r.fs.Collection("clubs").Doc(clubID).Collection("settings").Doc("weeklyTemplate")
}

// Get loads the weekly template, returning an all-disabled default when the
// club has never saved one.
func (r *Repo) Get(ctx context.Context, clubID string) (WeeklyTemplate, error) {
	doc, err := r.templateRef(clubID).Get(ctx)
	if err != nil {
		// Document doesn't exist → return defaults
		return DefaultTemplate(clubID), nil
	}

	var t WeeklyTemplate
	if err := doc.DataTo(&t); err != nil {
		return DefaultTemplate(clubID), nil
	}
	t.ClubID = clubID

	if len(t.Entries) != 7 {
		// Backfill missing weekdays so callers can index by dayOfWeek.
		full := DefaultTemplate(clubID)
		for _, e := range t.Entries {
			if e.DayOfWeek >= 0 && e.DayOfWeek <= 6 {
				full.Entries[e.DayOfWeek] = e
			}
		}
		full.UpdatedBy = t.UpdatedBy
		full.UpdatedAt = t.UpdatedAt
		t = full
	}

	return t, nil
}

// Put replaces the template document wholesale.
func (r *Repo) Put(ctx context.Context, clubID string, t WeeklyTemplate) (WeeklyTemplate, error) {
	_, err := r.templateRef(clubID).Set(ctx, t)
	if err != nil {
		return WeeklyTemplate{}, fmt.Errorf("failed to save template: %w", err)
	}
	return t, nil
}
