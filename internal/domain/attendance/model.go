package attendance

import (
	"strings"
	"time"

	"club-scheduler/backend/internal/utils"
)

// Status is the closed marking set. The empty string means "not yet marked"
// and is distinct from absent.
type Status string

const (
	StatusUnmarked Status = ""
	StatusPresent  Status = "present"
	StatusLate     Status = "late"
	StatusAbsent   Status = "absent"
)

var ValidStatuses = []Status{StatusUnmarked, StatusPresent, StatusLate, StatusAbsent}

func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if string(v) == s {
			return true
		}
	}
	return false
}

// Record is one athlete's attendance against a session. At most one record
// exists per (sessionId, athleteId); the doc ID is derived from the pair.
type Record struct {
	ID        string    `firestore:"id" json:"id"`
	ClubID    string    `firestore:"clubId" json:"clubId"`
	SessionID string    `firestore:"sessionId" json:"sessionId"`
	AthleteID string    `firestore:"athleteId" json:"athleteId"`
	Status    Status    `firestore:"status" json:"status"`
	Notes     string    `firestore:"notes,omitempty" json:"notes,omitempty"`
	MarkedAt  time.Time `firestore:"markedAt" json:"markedAt"`
	MarkedBy  string    `firestore:"markedBy" json:"markedBy"`
}

// BulkRecord is a single entry in a bulk upsert request
type BulkRecord struct {
	AthleteID string `json:"athleteId"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
}

// BulkUpsertInput represents input for bulk attendance marking
type BulkUpsertInput struct {
	Records []BulkRecord `json:"records"`
}

func (in *BulkUpsertInput) Trim() {
	for i := range in.Records {
		in.Records[i].AthleteID = strings.TrimSpace(in.Records[i].AthleteID)
		in.Records[i].Status = strings.TrimSpace(in.Records[i].Status)
		in.Records[i].Notes = utils.TrimMax(in.Records[i].Notes, 500)
	}
}

// BulkResult reports what a bulk upsert actually did. Skipped counts records
// rejected for a missing athlete id or an invalid status; they never corrupt
// the rest of the batch.
type BulkResult struct {
	Applied int          `json:"applied"`
	Skipped int          `json:"skipped"`
	Results []ItemResult `json:"results"`
}

// ItemResult is the per-record outcome within a bulk upsert
type ItemResult struct {
	AthleteID string `json:"athleteId"`
	Action    string `json:"action"` // "applied" or "skipped"
}

// RosterRow is a session's attendance reconciled against current membership.
// IsRemoved flags a record whose athlete has left the club; synthesized rows
// (current members with no record yet) carry Persisted=false and an unmarked
// status, and are not written until a status is chosen.
type RosterRow struct {
	AthleteID string    `json:"athleteId"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	MarkedAt  time.Time `json:"markedAt,omitempty"`
	MarkedBy  string    `json:"markedBy,omitempty"`
	IsRemoved bool      `json:"isRemoved"`
	Persisted bool      `json:"persisted"`
}
