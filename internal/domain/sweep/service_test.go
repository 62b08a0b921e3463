package sweep

import (
	"context"
	"sync"
	"testing"
	"time"

	"club-scheduler/backend/internal/domain/attendance"
	"club-scheduler/backend/internal/domain/members"
	"club-scheduler/backend/internal/domain/session"
)

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]session.TrainingSession // id → session
}

func (f *fakeSessions) ListBefore(_ context.Context, _, date string) ([]session.TrainingSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []session.TrainingSession
	for _, s := range f.sessions {
		if s.Date < date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessions) Delete(_ context.Context, _, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

type fakeRecords struct {
	mu        sync.Mutex
	bySession map[string][]attendance.Record
}

func (f *fakeRecords) ListForSession(_ context.Context, _, sessionID string) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bySession[sessionID], nil
}

func (f *fakeRecords) DeleteForSession(_ context.Context, _, sessionID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.bySession[sessionID])
	delete(f.bySession, sessionID)
	return n, nil
}

type fakeMembership struct {
	active []string
}

func (f fakeMembership) ListActive(context.Context, string) ([]members.Member, error) {
	out := make([]members.Member, 0, len(f.active))
	for _, id := range f.active {
		out = append(out, members.Member{AthleteID: id, Status: members.StatusActive})
	}
	return out, nil
}

type fakeStaff struct {
	allow map[string]bool
}

func (f fakeStaff) IsStaff(_ context.Context, _, uid string) (bool, error) {
	return f.allow[uid], nil
}

func record(sessionID, athleteID string) attendance.Record {
	return attendance.Record{
		ID:        sessionID + "_" + athleteID,
		SessionID: sessionID,
		AthleteID: athleteID,
		Status:    attendance.StatusPresent,
	}
}

func pastSession(id string) session.TrainingSession {
	return session.TrainingSession{ID: id, Date: id, Title: "Training"}
}

func TestSweepOrphans(t *testing.T) {
	t.Parallel()

	sessions := &fakeSessions{sessions: map[string]session.TrainingSession{
		// Empty past session: deleted outright.
		"2025-05-05": pastSession("2025-05-05"),
		// Every record is orphaned: session and records go together.
		"2025-05-07": pastSession("2025-05-07"),
		// One valid record among orphans: retained.
		"2025-05-09": pastSession("2025-05-09"),
		// Future session: out of scope even if empty.
		"2025-07-01": pastSession("2025-07-01"),
	}}
	records := &fakeRecords{bySession: map[string][]attendance.Record{
		"2025-05-07": {record("2025-05-07", "ath-gone-1"), record("2025-05-07", "ath-gone-2")},
		"2025-05-09": {record("2025-05-09", "ath-1"), record("2025-05-09", "ath-gone-1")},
	}}

	svc := NewService(sessions, records, fakeMembership{active: []string{"ath-1"}},
		fakeStaff{allow: map[string]bool{"staff-1": true}})

	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	res, err := svc.SweepOrphans(context.Background(), "staff-1", "club-1", today)
	if err != nil {
		t.Fatalf("SweepOrphans: %v", err)
	}

	if res.SessionsScanned != 3 {
		t.Errorf("scanned = %d, want 3", res.SessionsScanned)
	}
	if res.SessionsDeleted != 2 {
		t.Errorf("deleted = %d, want 2", res.SessionsDeleted)
	}
	if res.RecordsDeleted != 2 {
		t.Errorf("recordsDeleted = %d, want 2", res.RecordsDeleted)
	}
	if res.SessionsRetained != 1 {
		t.Errorf("retained = %d, want 1", res.SessionsRetained)
	}
	if res.OrphansFlagged != 1 {
		t.Errorf("orphansFlagged = %d, want 1", res.OrphansFlagged)
	}

	if _, ok := sessions.sessions["2025-05-05"]; ok {
		t.Error("empty past session survived")
	}
	if _, ok := sessions.sessions["2025-05-07"]; ok {
		t.Error("all-orphaned session survived")
	}
	if _, ok := sessions.sessions["2025-05-09"]; !ok {
		t.Error("session with valid attendance was deleted")
	}
	if _, ok := sessions.sessions["2025-07-01"]; !ok {
		t.Error("future session was swept")
	}
	// The retained session keeps its orphaned record for manual review.
	if len(records.bySession["2025-05-09"]) != 2 {
		t.Errorf("retained session records = %d, want 2", len(records.bySession["2025-05-09"]))
	}
}

func TestSweepOrphansIsIdempotent(t *testing.T) {
	t.Parallel()

	sessions := &fakeSessions{sessions: map[string]session.TrainingSession{
		"2025-05-05": pastSession("2025-05-05"),
		"2025-05-09": pastSession("2025-05-09"),
	}}
	records := &fakeRecords{bySession: map[string][]attendance.Record{
		"2025-05-09": {record("2025-05-09", "ath-1")},
	}}

	svc := NewService(sessions, records, fakeMembership{active: []string{"ath-1"}},
		fakeStaff{allow: map[string]bool{"staff-1": true}})

	ctx := context.Background()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	if _, err := svc.SweepOrphans(ctx, "staff-1", "club-1", today); err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	res, err := svc.SweepOrphans(ctx, "staff-1", "club-1", today)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}

	if res.SessionsDeleted != 0 || res.RecordsDeleted != 0 {
		t.Fatalf("second sweep deleted %d sessions / %d records, want 0/0", res.SessionsDeleted, res.RecordsDeleted)
	}
	if res.SessionsRetained != 1 {
		t.Fatalf("second sweep retained = %d, want 1", res.SessionsRetained)
	}
}

func TestSweepOrphansRequiresStaff(t *testing.T) {
	t.Parallel()

	svc := NewService(
		&fakeSessions{sessions: map[string]session.TrainingSession{}},
		&fakeRecords{bySession: map[string][]attendance.Record{}},
		fakeMembership{},
		fakeStaff{allow: map[string]bool{"staff-1": true}})

	_, err := svc.SweepOrphans(context.Background(), "athlete-9", "club-1", time.Now())
	if !IsErrUnauthorized(err) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}
