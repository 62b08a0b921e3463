package session

import (
	"strings"
	"time"
)

// TrainingSession is the persisted record for one concrete training day.
// Sessions are created lazily, never eagerly for future occurrences, and are
// the authoritative anchor for attendance.
type TrainingSession struct {
	ID        string    `firestore:"id" json:"id"`
	ClubID    string    `firestore:"clubId" json:"clubId"`
	Date      string    `firestore:"date" json:"date"` // "2006-01-02"
	ProgramID string    `firestore:"programId,omitempty" json:"programId,omitempty"`
	Title     string    `firestore:"title" json:"title"`
	StartTime string    `firestore:"startTime,omitempty" json:"startTime,omitempty"` // "HH:MM"
	EndTime   string    `firestore:"endTime,omitempty" json:"endTime,omitempty"`     // "HH:MM"
	CoachID   string    `firestore:"coachId" json:"coachId"`
	Location  string    `firestore:"location,omitempty" json:"location,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// EnsureSessionInput represents input for materializing a session
type EnsureSessionInput struct {
	Date     string `json:"date"`
	Location string `json:"location,omitempty"`
}

func (in *EnsureSessionInput) Trim() {
	in.Date = strings.TrimSpace(in.Date)
	in.Location = strings.TrimSpace(in.Location)
}
