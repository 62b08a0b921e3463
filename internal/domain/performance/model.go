package performance

import (
	"strings"
	"time"
)

// PersonalRecord is the single current best for (athleteId, categoryId).
// It is replaced only on strict improvement, never appended.
type PersonalRecord struct {
	ID         string    `firestore:"id" json:"id"`
	ClubID     string    `firestore:"clubId" json:"clubId"`
	AthleteID  string    `firestore:"athleteId" json:"athleteId"`
	CategoryID string    `firestore:"categoryId" json:"categoryId"`
	Value      float64   `firestore:"value" json:"value"`
	Date       time.Time `firestore:"date" json:"date"`
	TestID     string    `firestore:"testId,omitempty" json:"testId,omitempty"`
}

// GoalStatus transitions active → completed exactly once; completion never
// automatically reverses.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

// Goal is a target value an athlete is working toward in a category.
type Goal struct {
	ID          string     `firestore:"id" json:"id"`
	ClubID      string     `firestore:"clubId" json:"clubId"`
	AthleteID   string     `firestore:"athleteId" json:"athleteId"`
	CategoryID  string     `firestore:"categoryId" json:"categoryId"`
	TargetValue float64    `firestore:"targetValue" json:"targetValue"`
	TargetDate  string     `firestore:"targetDate,omitempty" json:"targetDate,omitempty"` // "2006-01-02"
	Status      GoalStatus `firestore:"status" json:"status"`
	CreatedBy   string     `firestore:"createdBy" json:"createdBy"`
	CreatedAt   time.Time  `firestore:"createdAt" json:"createdAt"`

	CompletedValue  float64   `firestore:"completedValue,omitempty" json:"completedValue,omitempty"`
	CompletedTestID string    `firestore:"completedTestId,omitempty" json:"completedTestId,omitempty"`
	CompletedDate   time.Time `firestore:"completedDate,omitempty" json:"completedDate,omitempty"`
}

// GoalCompletion stamps a goal on transition to completed
type GoalCompletion struct {
	Value  float64
	TestID string
	At     time.Time
}

// CreateGoalInput represents input for creating a goal
type CreateGoalInput struct {
	AthleteID   string  `json:"athleteId"`
	CategoryID  string  `json:"categoryId"`
	TargetValue float64 `json:"targetValue"`
	TargetDate  string  `json:"targetDate,omitempty"`
}

func (in *CreateGoalInput) Trim() {
	in.AthleteID = strings.TrimSpace(in.AthleteID)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.TargetDate = strings.TrimSpace(in.TargetDate)
}

// ApplyResultInput is a new measured value for an athlete in a category.
// Unit may be blank, in which case the category catalog supplies it.
type ApplyResultInput struct {
	CategoryID string  `json:"categoryId"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit,omitempty"`
	TestID     string  `json:"testId,omitempty"`
}

func (in *ApplyResultInput) Trim() {
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.Unit = strings.TrimSpace(in.Unit)
	in.TestID = strings.TrimSpace(in.TestID)
}

// ApplyResultOutput reports what a result changed
type ApplyResultOutput struct {
	PBUpdated      bool            `json:"pbUpdated"`
	PersonalRecord *PersonalRecord `json:"personalRecord,omitempty"`
	GoalsCompleted []Goal          `json:"goalsCompleted"`
}
