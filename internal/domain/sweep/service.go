package sweep

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"club-scheduler/backend/internal/domain/attendance"
	"club-scheduler/backend/internal/domain/members"
	"club-scheduler/backend/internal/domain/session"
)

// SessionStore lists and deletes past sessions.
type SessionStore interface {
	ListBefore(ctx context.Context, clubID, date string) ([]session.TrainingSession, error)
	Delete(ctx context.Context, clubID, sessionID string) error
}

// AttendanceStore lists and deletes a session's attendance records.
type AttendanceStore interface {
	ListForSession(ctx context.Context, clubID, sessionID string) ([]attendance.Record, error)
	DeleteForSession(ctx context.Context, clubID, sessionID string) (int, error)
}

// Membership resolves the current active membership set.
type Membership interface {
	ListActive(ctx context.Context, clubID string) ([]members.Member, error)
}

// StaffChecker authorizes the sweep.
type StaffChecker interface {
	IsStaff(ctx context.Context, clubID, uid string) (bool, error)
}

type Service struct {
	sessions   SessionStore
	records    AttendanceStore
	membership Membership
	clubs      StaffChecker
}

func NewService(sessions SessionStore, records AttendanceStore, membership Membership, clubs StaffChecker) *Service {
	return &Service{sessions: sessions, records: records, membership: membership, clubs: clubs}
}

// SweepOrphans scans sessions dated strictly before today and removes the
// unsalvageable ones: a past session with no attendance at all is deleted
// outright, and one whose every record references a departed athlete is
// deleted together with its records. A session with at least one valid record
// is retained; its orphaned records stay visible, flagged, until removed one
// at a time. Safe to invoke repeatedly.
func (s *Service) SweepOrphans(ctx context.Context, staffUID, clubID string, today time.Time) (*Result, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}

	isStaff, err := s.clubs.IsStaff(ctx, clubID, staffUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff status: %w", err)
	}
	if !isStaff {
		return nil, fmt.Errorf("%w: staff permission required", ErrUnauthorized)
	}

	past, err := s.sessions.ListBefore(ctx, clubID, today.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	// Membership is fetched once for the whole sweep, not per record.
	active, err := s.membership.ListActive(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	activeSet := make(map[string]bool, len(active))
	for _, m := range active {
		activeSet[m.AthleteID] = true
	}

	res := &Result{SessionsScanned: len(past)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, sess := range past {
		sess := sess
		g.Go(func() error {
			records, err := s.records.ListForSession(gctx, clubID, sess.ID)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				if err := s.sessions.Delete(gctx, clubID, sess.ID); err != nil {
					return err
				}
				mu.Lock()
				res.SessionsDeleted++
				mu.Unlock()
				return nil
			}

			valid := 0
			orphaned := 0
			for _, rec := range records {
				if activeSet[rec.AthleteID] {
					valid++
				} else {
					orphaned++
				}
			}

			if valid == 0 {
				// Every record points at a departed athlete; the whole
				// session is unsalvageable provenance.
				deleted, err := s.records.DeleteForSession(gctx, clubID, sess.ID)
				if err != nil {
					return err
				}
				if err := s.sessions.Delete(gctx, clubID, sess.ID); err != nil {
					return err
				}
				mu.Lock()
				res.SessionsDeleted++
				res.RecordsDeleted += deleted
				mu.Unlock()
				return nil
			}

			mu.Lock()
			res.SessionsRetained++
			res.OrphansFlagged += orphaned
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sweep failed: %w", err)
	}

	return res, nil
}
