package cancellation

import (
	"strings"
	"time"

	"club-scheduler/backend/internal/utils"
)

// CancellationType classifies why a training day was called off
type CancellationType string

const (
	TypeVacation    CancellationType = "vacation"
	TypeMaintenance CancellationType = "maintenance"
	TypeWeather     CancellationType = "weather"
	TypeOther       CancellationType = "other"
)

var ValidTypes = []CancellationType{TypeVacation, TypeMaintenance, TypeWeather, TypeOther}

func IsValidType(t string) bool {
	for _, v := range ValidTypes {
		if string(v) == t {
			return true
		}
	}
	return false
}

// Cancellation overrides one calendar date of the weekly template. It can
// cover any date; cancelling an unscheduled day is tolerated but meaningless.
type Cancellation struct {
	ID        string           `firestore:"id" json:"id"`
	ClubID    string           `firestore:"clubId" json:"clubId"`
	Date      string           `firestore:"date" json:"date"` // "2006-01-02", no time component
	Reason    string           `firestore:"reason" json:"reason"`
	Type      CancellationType `firestore:"type" json:"type"`
	CreatedBy string           `firestore:"createdBy" json:"createdBy"`
	CreatedAt time.Time        `firestore:"createdAt" json:"createdAt"`
	IsBulk    bool             `firestore:"isBulk" json:"isBulk"`
	BatchID   string           `firestore:"batchId,omitempty" json:"batchId,omitempty"`
}

// CreateCancellationInput represents input for cancelling a single date
type CreateCancellationInput struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
	Type   string `json:"type"`
}

func (in *CreateCancellationInput) Trim() {
	in.Date = strings.TrimSpace(in.Date)
	in.Reason = utils.TrimMax(in.Reason, 500)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
}

// BulkCancelInput represents input for cancelling a date range
type BulkCancelInput struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Reason       string `json:"reason"`
	Type         string `json:"type"`
	SkipWeekends bool   `json:"skipWeekends,omitempty"`
}

func (in *BulkCancelInput) Trim() {
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	in.Reason = utils.TrimMax(in.Reason, 500)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
}

// RemoveGroupInput identifies a set of bulk cancellations by type and reason.
// Two unrelated bulk runs with identical type and reason are indistinguishable
// here and are removed together.
type RemoveGroupInput struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func (in *RemoveGroupInput) Trim() {
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Reason = strings.TrimSpace(in.Reason)
}
