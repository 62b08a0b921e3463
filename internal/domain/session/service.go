package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"club-scheduler/backend/internal/domain/catalog"
	"club-scheduler/backend/internal/domain/schedule"
)

// Store is the persistence surface the service needs. *Repo satisfies it.
type Store interface {
	Create(ctx context.Context, clubID string, s TrainingSession) (*TrainingSession, error)
	GetByDate(ctx context.Context, clubID, date string) (*TrainingSession, error)
	Get(ctx context.Context, clubID, sessionID string) (*TrainingSession, error)
	ListRange(ctx context.Context, clubID, startDate, endDate string) ([]TrainingSession, error)
}

// StaffChecker authorizes mutating calls.
type StaffChecker interface {
	IsStaff(ctx context.Context, clubID, uid string) (bool, error)
}

// ProgramSource resolves the template's default program for session titles.
type ProgramSource interface {
	GetProgram(ctx context.Context, programID string) (*catalog.Program, error)
}

type Service struct {
	store    Store
	clubs    StaffChecker
	programs ProgramSource
}

func NewService(store Store, clubs StaffChecker, programs ProgramSource) *Service {
	return &Service{store: store, clubs: clubs, programs: programs}
}

// EnsureSession returns the session for (clubId, date), materializing it from
// the template snapshot on first need. Idempotent: a second call returns the
// already-persisted session unchanged. The template must be the snapshot read
// for the triggering action, not a cached one, so a racing admin save cannot
// assign a stale default program.
func (s *Service) EnsureSession(ctx context.Context, staffUID, clubID string, in EnsureSessionInput, tmpl schedule.WeeklyTemplate, now time.Time) (*TrainingSession, error) {
	in.Trim()

	if clubID == "" || in.Date == "" {
		return nil, fmt.Errorf("%w: clubId and date are required", ErrBadRequest)
	}
	day, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD format", ErrBadRequest)
	}

	entry := tmpl.EntryFor(day.Weekday())
	if !entry.Enabled {
		return nil, fmt.Errorf("%w: %s is not a scheduled training day", ErrBadRequest, in.Date)
	}

	isStaff, err := s.clubs.IsStaff(ctx, clubID, staffUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff status: %w", err)
	}
	if !isStaff {
		return nil, fmt.Errorf("%w: staff permission required", ErrUnauthorized)
	}

	existing, err := s.store.GetByDate(ctx, clubID, in.Date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	title := "Training"
	if entry.DefaultProgramID != "" && s.programs != nil {
		if p, err := s.programs.GetProgram(ctx, entry.DefaultProgramID); err == nil {
			title = p.Name
		}
	}

	created, err := s.store.Create(ctx, clubID, TrainingSession{
		Date:      in.Date,
		ProgramID: entry.DefaultProgramID,
		Title:     title,
		StartTime: entry.StartTime,
		EndTime:   entry.EndTime,
		CoachID:   staffUID,
		Location:  in.Location,
		CreatedAt: now.UTC(),
	})
	if err == nil {
		return created, nil
	}

	// Lost a materialization race: another admin created the session between
	// our read and write. The store's uniqueness guarantee makes this safe to
	// resolve by re-reading.
	if errors.Is(err, ErrConflict) {
		return s.store.GetByDate(ctx, clubID, in.Date)
	}
	return nil, err
}

// Get retrieves a session by ID
func (s *Service) Get(ctx context.Context, clubID, sessionID string) (*TrainingSession, error) {
	if clubID == "" || sessionID == "" {
		return nil, fmt.Errorf("%w: clubId and sessionId are required", ErrBadRequest)
	}
	return s.store.Get(ctx, clubID, sessionID)
}

// ListRange lists sessions in a date range (read path for the projector)
func (s *Service) ListRange(ctx context.Context, clubID, startDate, endDate string) ([]TrainingSession, error) {
	if clubID == "" || startDate == "" || endDate == "" {
		return nil, fmt.Errorf("%w: clubId, startDate, endDate are required", ErrBadRequest)
	}
	return s.store.ListRange(ctx, clubID, startDate, endDate)
}
