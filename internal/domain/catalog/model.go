package catalog

import "time"

// Program is a training program referenced by the weekly template. Materialized
// sessions copy its name and default duration at creation time.
type Program struct {
	ID          string    `firestore:"id" json:"id"`
	Name        string    `firestore:"name" json:"name"`
	Description string    `firestore:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
}

// Category is a performance category. Its unit string decides whether a lower
// or a higher test value counts as an improvement.
type Category struct {
	ID   string `firestore:"id" json:"id"`
	Name string `firestore:"name" json:"name"`
	Unit string `firestore:"unit" json:"unit"` // e.g. "seconds", "kg", "m", "reps"
}
