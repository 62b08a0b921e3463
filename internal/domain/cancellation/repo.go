package cancellation

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

func (r *Repo) cancellationsCol(clubID string) *firestore.CollectionRef {
	return r.client.Collection("clubs").Doc(clubID).Collection("cancellations")
}

// Create creates a single cancellation record
func (r *Repo) Create(ctx context.Context, clubID string, c Cancellation) (*Cancellation, error) {
	ref := r.cancellationsCol(clubID).NewDoc()
	c.ID = ref.ID
	c.ClubID = clubID

	if _, err := ref.Set(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create cancellation: %w", err)
	}
	return &c, nil
}

// CreateBatch writes a set of cancellations in one batch commit
func (r *Repo) CreateBatch(ctx context.Context, clubID string, cs []Cancellation) ([]Cancellation, error) {
	batch := r.client.Batch()
	out := make([]Cancellation, 0, len(cs))

	for _, c := range cs {
		ref := r.cancellationsCol(clubID).NewDoc()
		c.ID = ref.ID
		c.ClubID = clubID
		batch.Set(ref, c)
		out = append(out, c)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return nil, fmt.Errorf("batch commit failed: %w", err)
	}
	return out, nil
}

// Get retrieves a cancellation by ID
func (r *Repo) Get(ctx context.Context, clubID, id string) (*Cancellation, error) {
	doc, err := r.cancellationsCol(clubID).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: cancellation not found", ErrNotFound)
	}

	var c Cancellation
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("failed to decode cancellation: %w", err)
	}
	c.ID = doc.Ref.ID
	return &c, nil
}

// Delete removes a cancellation ("un-cancel")
func (r *Repo) Delete(ctx context.Context, clubID, id string) error {
	if _, err := r.cancellationsCol(clubID).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete cancellation: %w", err)
	}
	return nil
}

// ListRange lists cancellations with date in [startDate, endDate]
func (r *Repo) ListRange(ctx context.Context, clubID, startDate, endDate string) ([]Cancellation, error) {
	iter := r.cancellationsCol(clubID).
		Where("date", ">=", startDate).
		Where("date", "<=", endDate).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var out []Cancellation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list cancellations: %w", err)
		}

		var c Cancellation
		if err := doc.DataTo(&c); err != nil {
			continue
		}
		c.ID = doc.Ref.ID
		out = append(out, c)
	}

	return out, nil
}

// DeleteGroup deletes every bulk cancellation matching type and reason,
// returning the number of deleted records.
func (r *Repo) DeleteGroup(ctx context.Context, clubID, cType, reason string) (int, error) {
	iter := r.cancellationsCol(clubID).
		Where("isBulk", "==", true).
		Where("type", "==", cType).
		Where("reason", "==", reason).
		Documents(ctx)
	defer iter.Stop()

	batch := r.client.Batch()
	count := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to query cancellation group: %w", err)
		}
		batch.Delete(doc.Ref)
		count++
	}

	if count == 0 {
		return 0, nil
	}

	if _, err := batch.Commit(ctx); err != nil {
		return 0, fmt.Errorf("batch delete failed: %w", err)
	}
	return count, nil
}
