package session

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

// sessionsCol holds one doc per training day. The doc ID is the ISO date, so
// at-most-one-session-per-day is enforced by the store, not by a client-side
// pre-check.
func (r *Repo) sessionsCol(clubID string) *firestore.CollectionRef {
	return r.fs.Collection("clubs").Doc(clubID).Collection("sessions")
}

// Create persists a new session keyed by its date. A concurrent create for
// the same date loses with ErrConflict.
func (r *Repo) Create(ctx context.Context, clubID string, s TrainingSession) (*TrainingSession, error) {
	ref := r.sessionsCol(clubID).Doc(s.Date)
	s.ID = ref.ID
	s.ClubID = clubID

	if _, err := ref.Create(ctx, s); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, fmt.Errorf("%w: session already exists for %s", ErrConflict, s.Date)
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &s, nil
}

// GetByDate retrieves the session for a date, if any
func (r *Repo) GetByDate(ctx context.Context, clubID, date string) (*TrainingSession, error) {
	doc, err := r.sessionsCol(clubID).Doc(date).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: no session for %s", ErrNotFound, date)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s TrainingSession
	if err := doc.DataTo(&s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	s.ID = doc.Ref.ID
	s.ClubID = clubID
	return &s, nil
}

// Get retrieves a session by ID (the ID is the date)
func (r *Repo) Get(ctx context.Context, clubID, sessionID string) (*TrainingSession, error) {
	return r.GetByDate(ctx, clubID, sessionID)
}

// ListRange lists sessions with date in [startDate, endDate]
func (r *Repo) ListRange(ctx context.Context, clubID, startDate, endDate string) ([]TrainingSession, error) {
	iter := r.sessionsCol(clubID).
		Where("date", ">=", startDate).
		Where("date", "<=", endDate).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	return collect(iter, clubID)
}

// ListBefore lists sessions dated strictly before the given date
func (r *Repo) ListBefore(ctx context.Context, clubID, date string) ([]TrainingSession, error) {
	iter := r.sessionsCol(clubID).
		Where("date", "<", date).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	return collect(iter, clubID)
}

// Delete removes a session
func (r *Repo) Delete(ctx context.Context, clubID, sessionID string) error {
	if _, err := r.sessionsCol(clubID).Doc(sessionID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func collect(iter *firestore.DocumentIterator, clubID string) ([]TrainingSession, error) {
	var out []TrainingSession
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate sessions: %w", err)
		}

		var s TrainingSession
		if err := doc.DataTo(&s); err != nil {
			continue
		}
		s.ID = doc.Ref.ID
		s.ClubID = clubID
		out = append(out, s)
	}
	return out, nil
}
