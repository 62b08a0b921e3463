package members

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) membersCol(clubID string) *firestore.CollectionRef {
	return r.client.Collection("clubs").Doc(clubID).Collection("members")
}

// Get retrieves a member by athlete ID
func (r *Repo) Get(ctx context.Context, clubID, athleteID string) (*Member, error) {
	doc, err := r.membersCol(clubID).Doc(athleteID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: member not found", ErrNotFound)
	}

	var m Member
	if err := doc.DataTo(&m); err != nil {
		return nil, fmt.Errorf("failed to decode member: %w", err)
	}
	m.AthleteID = doc.Ref.ID
	return &m, nil
}

// Put creates or replaces a member document
func (r *Repo) Put(ctx context.Context, clubID string, m Member) (*Member, error) {
	_, err := r.membersCol(clubID).Doc(m.AthleteID).Set(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to put member: %w", err)
	}
	return &m, nil
}

// Update applies partial updates to a member document
func (r *Repo) Update(ctx context.Context, clubID, athleteID string, updates map[string]interface{}) (*Member, error) {
	ref := r.membersCol(clubID).Doc(athleteID)
	_, err := ref.Set(ctx, updates, firestore.MergeAll)
	if err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return r.Get(ctx, clubID, athleteID)
}

// Delete removes a member from the club. Attendance rows referencing the
// athlete become orphaned and are picked up by the maintenance sweep.
func (r *Repo) Delete(ctx context.Context, clubID, athleteID string) error {
	_, err := r.membersCol(clubID).Doc(athleteID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// ListActive lists members whose status is active. This is the membership set
// that attendance rosters and the orphan sweep reconcile against.
func (r *Repo) ListActive(ctx context.Context, clubID string) ([]Member, error) {
	iter := r.membersCol(clubID).Where("status", "==", StatusActive).Documents(ctx)
	defer iter.Stop()

	var out []Member
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list members: %w", err)
		}

		var m Member
		if err := doc.DataTo(&m); err != nil {
			continue
		}
		m.AthleteID = doc.Ref.ID
		out = append(out, m)
	}

	return out, nil
}

// List lists members regardless of status
func (r *Repo) List(ctx context.Context, clubID string, limit int) ([]Member, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	iter := r.membersCol(clubID).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var out []Member
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list members: %w", err)
		}

		var m Member
		if err := doc.DataTo(&m); err != nil {
			continue
		}
		m.AthleteID = doc.Ref.ID
		out = append(out, m)
	}

	return out, nil
}
