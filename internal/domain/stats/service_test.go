package stats

import (
	"context"
	"testing"

	"club-scheduler/backend/internal/domain/attendance"
	"club-scheduler/backend/internal/domain/members"
	"club-scheduler/backend/internal/domain/session"
)

type fakeSessions struct {
	sessions []session.TrainingSession
}

func (f fakeSessions) ListRange(_ context.Context, _, startDate, endDate string) ([]session.TrainingSession, error) {
	var out []session.TrainingSession
	for _, s := range f.sessions {
		if s.Date >= startDate && s.Date <= endDate {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeRecords struct {
	bySession map[string][]attendance.Record
}

func (f fakeRecords) ListForSession(_ context.Context, _, sessionID string) ([]attendance.Record, error) {
	return f.bySession[sessionID], nil
}

type fakeMembership struct {
	roster []members.Member
}

func (f fakeMembership) List(context.Context, string, int) ([]members.Member, error) {
	return f.roster, nil
}

func record(sessionID, athleteID string, status attendance.Status) attendance.Record {
	return attendance.Record{
		ID:        sessionID + "_" + athleteID,
		SessionID: sessionID,
		AthleteID: athleteID,
		Status:    status,
	}
}

func newTestService() *Service {
	sessions := fakeSessions{sessions: []session.TrainingSession{
		{ID: "2025-06-02", Date: "2025-06-02"},
		{ID: "2025-06-04", Date: "2025-06-04"},
		{ID: "2025-06-30", Date: "2025-06-30"}, // outside the queried range
	}}
	records := fakeRecords{bySession: map[string][]attendance.Record{
		"2025-06-02": {
			record("2025-06-02", "ath-1", attendance.StatusPresent),
			record("2025-06-02", "ath-2", attendance.StatusLate),
			record("2025-06-02", "ath-3", attendance.StatusAbsent),
		},
		"2025-06-04": {
			record("2025-06-04", "ath-1", attendance.StatusPresent),
			record("2025-06-04", "ath-2", attendance.StatusUnmarked),
		},
		"2025-06-30": {
			record("2025-06-30", "ath-1", attendance.StatusAbsent),
		},
	}}
	membership := fakeMembership{roster: []members.Member{
		{AthleteID: "ath-1", Role: members.RoleAthlete, Status: members.StatusActive},
		{AthleteID: "ath-2", Role: members.RoleAthlete, Status: members.StatusActive},
		{AthleteID: "ath-3", Role: members.RoleAthlete, Status: members.StatusInactive},
		{AthleteID: "coach-1", Role: members.RoleCoach, Status: members.StatusActive},
	}}
	return NewService(sessions, records, membership)
}

func TestClubStats(t *testing.T) {
	t.Parallel()

	got, err := newTestService().ClubStats(context.Background(), "club-1", "2025-06-01", "2025-06-07")
	if err != nil {
		t.Fatalf("ClubStats: %v", err)
	}

	if got.SessionsHeld != 2 {
		t.Errorf("sessionsHeld = %d, want 2", got.SessionsHeld)
	}
	if got.Members.Total != 4 || got.Members.Active != 3 {
		t.Errorf("members = %+v", got.Members)
	}
	if got.Members.ByRole[members.RoleCoach] != 1 || got.Members.ByRole[members.RoleAthlete] != 3 {
		t.Errorf("byRole = %v", got.Members.ByRole)
	}

	a := got.Attendance
	if a.Total != 5 || a.Present != 2 || a.Late != 1 || a.Absent != 1 || a.Unmarked != 1 {
		t.Errorf("attendance = %+v", a)
	}
	// (2 present + 1 late) / 4 marked.
	if a.Rate != "75.0" {
		t.Errorf("rate = %q, want 75.0", a.Rate)
	}
}

func TestAthleteStats(t *testing.T) {
	t.Parallel()

	got, err := newTestService().AthleteStats(context.Background(), "club-1", "ath-2", "2025-06-01", "2025-06-07")
	if err != nil {
		t.Fatalf("AthleteStats: %v", err)
	}

	if got.SessionsHeld != 2 {
		t.Errorf("sessionsHeld = %d, want 2", got.SessionsHeld)
	}
	// One late mark; the unmarked record is excluded from the rate.
	if got.Present != 0 || got.Late != 1 || got.Absent != 0 {
		t.Errorf("marks = %+v", got)
	}
	if got.Rate != "100.0" {
		t.Errorf("rate = %q, want 100.0", got.Rate)
	}
}

func TestStatsValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.ClubStats(ctx, "", "2025-06-01", "2025-06-07"); !IsErrBadRequest(err) {
		t.Errorf("missing clubId: err = %v", err)
	}
	if _, err := svc.AthleteStats(ctx, "club-1", "", "2025-06-01", "2025-06-07"); !IsErrBadRequest(err) {
		t.Errorf("missing athleteId: err = %v", err)
	}
}

func TestAttendanceRateNoMarks(t *testing.T) {
	t.Parallel()

	if got := attendanceRate(0, 0, 0); got != "0" {
		t.Fatalf("rate = %q, want 0", got)
	}
}
