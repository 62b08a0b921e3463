package club

import (
	"strings"
	"time"
)

// Club is the tenant anchor. Every schedule, cancellation, session and
// attendance document lives in a subcollection under its doc.
type Club struct {
	ID        string   `firestore:"id" json:"id"`
	Name      string   `firestore:"name" json:"name"`
	NameLower string   `firestore:"nameLower" json:"-"`
	Slug      string   `firestore:"slug,omitempty" json:"slug,omitempty"`
	Keywords  []string `firestore:"keywords,omitempty" json:"-"`
	City      string   `firestore:"city,omitempty" json:"city,omitempty"`
	Country   string   `firestore:"country,omitempty" json:"country,omitempty"`

	CreatedBy string   `firestore:"createdBy" json:"createdBy"`
	OwnerUID  string   `firestore:"ownerUid,omitempty" json:"ownerUid,omitempty"`
	StaffUids []string `firestore:"staffUids,omitempty" json:"staffUids,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

type CreateClubInput struct {
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

func (in *CreateClubInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	in.Country = strings.TrimSpace(in.Country)
}
