package stats

import (
	"context"
	"fmt"

	"club-scheduler/backend/internal/domain/attendance"
	"club-scheduler/backend/internal/domain/members"
	"club-scheduler/backend/internal/domain/session"
)

// SessionSource lists materialized sessions in a date range.
type SessionSource interface {
	ListRange(ctx context.Context, clubID, startDate, endDate string) ([]session.TrainingSession, error)
}

// AttendanceSource lists a session's attendance records.
type AttendanceSource interface {
	ListForSession(ctx context.Context, clubID, sessionID string) ([]attendance.Record, error)
}

// Membership lists the full roster, active and inactive.
type Membership interface {
	List(ctx context.Context, clubID string, limit int) ([]members.Member, error)
}

type Service struct {
	sessions   SessionSource
	records    AttendanceSource
	membership Membership
}

func NewService(sessions SessionSource, records AttendanceSource, membership Membership) *Service {
	return &Service{sessions: sessions, records: records, membership: membership}
}

// ClubStats aggregates roster and attendance figures over the materialized
// sessions in [startDate, endDate]. Days that never materialized a session
// contribute nothing; only recorded training counts.
func (s *Service) ClubStats(ctx context.Context, clubID, startDate, endDate string) (*ClubStats, error) {
	if clubID == "" || startDate == "" || endDate == "" {
		return nil, fmt.Errorf("%w: clubId, startDate, endDate are required", ErrBadRequest)
	}

	roster, err := s.membership.List(ctx, clubID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	mb := MemberBreakdown{
		Total:    len(roster),
		ByRole:   map[string]int{},
		ByStatus: map[string]int{},
	}
	for _, m := range roster {
		mb.ByRole[m.Role]++
		mb.ByStatus[m.Status]++
		if m.Status == members.StatusActive {
			mb.Active++
		}
	}

	sessions, err := s.sessions.ListRange(ctx, clubID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	var ab AttendanceBreakdown
	for _, sess := range sessions {
		records, err := s.records.ListForSession(ctx, clubID, sess.ID)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			ab.Total++
			switch rec.Status {
			case attendance.StatusPresent:
				ab.Present++
			case attendance.StatusLate:
				ab.Late++
			case attendance.StatusAbsent:
				ab.Absent++
			default:
				ab.Unmarked++
			}
		}
	}
	ab.Rate = attendanceRate(ab.Present, ab.Late, ab.Absent)

	return &ClubStats{
		StartDate:    startDate,
		EndDate:      endDate,
		SessionsHeld: len(sessions),
		Members:      mb,
		Attendance:   ab,
	}, nil
}

// AthleteStats summarizes one athlete's marks over the sessions held in
// [startDate, endDate].
func (s *Service) AthleteStats(ctx context.Context, clubID, athleteID, startDate, endDate string) (*AthleteStats, error) {
	if clubID == "" || athleteID == "" || startDate == "" || endDate == "" {
		return nil, fmt.Errorf("%w: clubId, athleteId, startDate, endDate are required", ErrBadRequest)
	}

	sessions, err := s.sessions.ListRange(ctx, clubID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	out := &AthleteStats{
		AthleteID:    athleteID,
		StartDate:    startDate,
		EndDate:      endDate,
		SessionsHeld: len(sessions),
	}
	for _, sess := range sessions {
		records, err := s.records.ListForSession(ctx, clubID, sess.ID)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if rec.AthleteID != athleteID {
				continue
			}
			switch rec.Status {
			case attendance.StatusPresent:
				out.Present++
			case attendance.StatusLate:
				out.Late++
			case attendance.StatusAbsent:
				out.Absent++
			}
		}
	}
	out.Rate = attendanceRate(out.Present, out.Late, out.Absent)

	return out, nil
}

// attendanceRate is (present+late)/marked as a percentage string. Unmarked
// records are excluded from the denominator.
func attendanceRate(present, late, absent int) string {
	marked := present + late + absent
	if marked == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(present+late)/float64(marked)*100)
}
