package members

import (
	"strings"
	"time"
)

// Member represents an athlete's membership in a club. Attendance and sweep
// logic only care about whether an athlete id resolves to an active member;
// everything else here is roster bookkeeping.
type Member struct {
	AthleteID string    `firestore:"athleteId" json:"athleteId"`
	Role      string    `firestore:"role" json:"role"`
	Status    string    `firestore:"status" json:"status"`
	FullName  string    `firestore:"fullName,omitempty" json:"fullName,omitempty"`
	JoinedAt  time.Time `firestore:"joinedAt" json:"joinedAt"`
	AddedBy   string    `firestore:"addedBy,omitempty" json:"addedBy,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

const (
	RoleAthlete = "athlete"
	RoleCoach   = "coach"
	RoleStaff   = "staff"
	RoleOwner   = "owner"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

var ValidRoles = []string{RoleAthlete, RoleCoach, RoleStaff, RoleOwner}
var ValidStatuses = []string{StatusActive, StatusInactive}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// AddMemberInput represents input for adding a member to a club
type AddMemberInput struct {
	ClubID    string `json:"clubId"`
	AthleteID string `json:"athleteId"`
	Role      string `json:"role,omitempty"`
	FullName  string `json:"fullName,omitempty"`
}

func (in *AddMemberInput) Trim() {
	in.ClubID = strings.TrimSpace(in.ClubID)
	in.AthleteID = strings.TrimSpace(in.AthleteID)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	in.FullName = strings.TrimSpace(in.FullName)
}

// UpdateMemberInput represents input for updating a member
type UpdateMemberInput struct {
	ClubID    string  `json:"clubId"`
	AthleteID string  `json:"athleteId"`
	Role      *string `json:"role,omitempty"`
	Status    *string `json:"status,omitempty"`
}

func (in *UpdateMemberInput) Trim() {
	in.ClubID = strings.TrimSpace(in.ClubID)
	in.AthleteID = strings.TrimSpace(in.AthleteID)
	if in.Role != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Role))
		*in.Role = v
	}
	if in.Status != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Status))
		*in.Status = v
	}
}
