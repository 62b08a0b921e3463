package stats

// MemberBreakdown summarizes the club roster.
type MemberBreakdown struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	ByRole   map[string]int `json:"byRole"`
	ByStatus map[string]int `json:"byStatus"`
}

// AttendanceBreakdown aggregates attendance marks over a range of sessions.
// Unmarked counts persisted records that carry no status yet.
type AttendanceBreakdown struct {
	Total    int    `json:"total"`
	Present  int    `json:"present"`
	Late     int    `json:"late"`
	Absent   int    `json:"absent"`
	Unmarked int    `json:"unmarked"`
	Rate     string `json:"rate"` // (present+late)/marked, "87.5"
}

// ClubStats is the club dashboard payload for one date range.
type ClubStats struct {
	StartDate    string              `json:"startDate"`
	EndDate      string              `json:"endDate"`
	SessionsHeld int                 `json:"sessionsHeld"`
	Members      MemberBreakdown     `json:"members"`
	Attendance   AttendanceBreakdown `json:"attendance"`
}

// AthleteStats is one athlete's attendance summary over a date range.
type AthleteStats struct {
	AthleteID    string `json:"athleteId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	SessionsHeld int    `json:"sessionsHeld"`
	Present      int    `json:"present"`
	Late         int    `json:"late"`
	Absent       int    `json:"absent"`
	Rate         string `json:"rate"`
}
