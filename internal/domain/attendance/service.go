package attendance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"club-scheduler/backend/internal/domain/members"
)

// Store is the persistence surface the service needs. *Repo satisfies it.
type Store interface {
	ListForSession(ctx context.Context, clubID, sessionID string) ([]Record, error)
	BulkUpsert(ctx context.Context, clubID, sessionID, markedBy string, records []BulkRecord, now time.Time) error
	Delete(ctx context.Context, clubID, sessionID, athleteID string) error
}

// Membership resolves the current active membership set. Orphan status is
// derived from it at read time, never stored.
type Membership interface {
	ListActive(ctx context.Context, clubID string) ([]members.Member, error)
}

// StaffChecker authorizes mutating calls.
type StaffChecker interface {
	IsStaff(ctx context.Context, clubID, uid string) (bool, error)
}

type Service struct {
	store      Store
	membership Membership
	clubs      StaffChecker
}

func NewService(store Store, membership Membership, clubs StaffChecker) *Service {
	return &Service{store: store, membership: membership, clubs: clubs}
}

// ListForSession lists the raw attendance records of a session
func (s *Service) ListForSession(ctx context.Context, clubID, sessionID string) ([]Record, error) {
	if clubID == "" || sessionID == "" {
		return nil, fmt.Errorf("%w: clubId and sessionId are required", ErrBadRequest)
	}
	return s.store.ListForSession(ctx, clubID, sessionID)
}

// BulkUpsert creates or updates one record per (sessionId, athleteId) entry.
// Records with a blank athlete id or an invalid status are skipped and
// counted; the rest of the batch still commits.
func (s *Service) BulkUpsert(ctx context.Context, staffUID, clubID, sessionID string, in BulkUpsertInput) (*BulkResult, error) {
	in.Trim()

	if clubID == "" || sessionID == "" || len(in.Records) == 0 {
		return nil, fmt.Errorf("%w: clubId, sessionId, records[] are required", ErrBadRequest)
	}

	isStaff, err := s.clubs.IsStaff(ctx, clubID, staffUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff status: %w", err)
	}
	if !isStaff {
		return nil, fmt.Errorf("%w: staff permission required", ErrUnauthorized)
	}

	res := &BulkResult{Results: make([]ItemResult, 0, len(in.Records))}
	accepted := make([]BulkRecord, 0, len(in.Records))

	for _, rec := range in.Records {
		if rec.AthleteID == "" || !IsValidStatus(rec.Status) {
			res.Skipped++
			res.Results = append(res.Results, ItemResult{AthleteID: rec.AthleteID, Action: "skipped"})
			continue
		}
		accepted = append(accepted, rec)
		res.Results = append(res.Results, ItemResult{AthleteID: rec.AthleteID, Action: "applied"})
	}

	if len(accepted) > 0 {
		if err := s.store.BulkUpsert(ctx, clubID, sessionID, staffUID, accepted, time.Now().UTC()); err != nil {
			return nil, err
		}
	}
	res.Applied = len(accepted)

	return res, nil
}

// RemoveRecord hard-deletes the record for (sessionId, athleteId). Used once
// an orphaned record is confirmed for removal.
func (s *Service) RemoveRecord(ctx context.Context, staffUID, clubID, sessionID, athleteID string) error {
	if clubID == "" || sessionID == "" || athleteID == "" {
		return fmt.Errorf("%w: clubId, sessionId, athleteId are required", ErrBadRequest)
	}

	isStaff, err := s.clubs.IsStaff(ctx, clubID, staffUID)
	if err != nil {
		return fmt.Errorf("failed to check staff status: %w", err)
	}
	if !isStaff {
		return fmt.Errorf("%w: staff permission required", ErrUnauthorized)
	}

	return s.store.Delete(ctx, clubID, sessionID, athleteID)
}

// Roster returns the session's attendance reconciled against the current
// membership: records whose athlete has left the club are flagged IsRemoved,
// and current members without a record get a synthesized unmarked row.
// Membership is fetched once per call.
func (s *Service) Roster(ctx context.Context, clubID, sessionID string) ([]RosterRow, error) {
	if clubID == "" || sessionID == "" {
		return nil, fmt.Errorf("%w: clubId and sessionId are required", ErrBadRequest)
	}

	records, err := s.store.ListForSession(ctx, clubID, sessionID)
	if err != nil {
		return nil, err
	}

	active, err := s.membership.ListActive(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	activeSet := make(map[string]bool, len(active))
	for _, m := range active {
		activeSet[m.AthleteID] = true
	}

	rows := make([]RosterRow, 0, len(records)+len(active))
	recorded := make(map[string]bool, len(records))

	for _, rec := range records {
		recorded[rec.AthleteID] = true
		rows = append(rows, RosterRow{
			AthleteID: rec.AthleteID,
			Status:    rec.Status,
			Notes:     rec.Notes,
			MarkedAt:  rec.MarkedAt,
			MarkedBy:  rec.MarkedBy,
			IsRemoved: !activeSet[rec.AthleteID],
			Persisted: true,
		})
	}

	for _, m := range active {
		if recorded[m.AthleteID] {
			continue
		}
		rows = append(rows, RosterRow{
			AthleteID: m.AthleteID,
			Status:    StatusUnmarked,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].AthleteID < rows[j].AthleteID })

	return rows, nil
}
