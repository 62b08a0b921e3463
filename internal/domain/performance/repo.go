package performance

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

// recordsCol holds one doc per (athleteId, categoryId) pair; the doc ID is
// derived from the pair.
func (r *Repo) recordsCol(clubID string) *firestore.CollectionRef {
	return r.client.Collection("clubs").Doc(clubID).Collection("records")
}

func (r *Repo) goalsCol(clubID string) *firestore.CollectionRef {
	return r.client.Collection("clubs").Doc(clubID).Collection("goals")
}

func pbID(athleteID, categoryID string) string {
	return athleteID + "_" + categoryID
}

// ApplyBest installs candidate as the PB for its (athleteId, categoryId) pair
// if no PB exists or the candidate strictly improves on the stored one. The
// read-compare-write runs in a transaction so two racing results cannot
// regress the stored best.
func (r *Repo) ApplyBest(ctx context.Context, clubID string, candidate PersonalRecord, dir Direction) (*PersonalRecord, bool, error) {
	ref := r.recordsCol(clubID).Doc(pbID(candidate.AthleteID, candidate.CategoryID))
	candidate.ID = ref.ID
	candidate.ClubID = clubID

	var out PersonalRecord
	var updated bool

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		if err == nil && doc.Exists() {
			var current PersonalRecord
			if derr := doc.DataTo(&current); derr != nil {
				return derr
			}
			current.ID = ref.ID
			if !dir.Improves(candidate.Value, current.Value) {
				out = current
				updated = false
				return nil
			}
		}

		if terr := tx.Set(ref, candidate); terr != nil {
			return terr
		}
		out = candidate
		updated = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to apply personal record: %w", err)
	}

	return &out, updated, nil
}

// GetRecord retrieves the PB for a pair, if any
func (r *Repo) GetRecord(ctx context.Context, clubID, athleteID, categoryID string) (*PersonalRecord, error) {
	doc, err := r.recordsCol(clubID).Doc(pbID(athleteID, categoryID)).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: no personal record", ErrNotFound)
	}

	var pb PersonalRecord
	if err := doc.DataTo(&pb); err != nil {
		return nil, fmt.Errorf("failed to decode personal record: %w", err)
	}
	pb.ID = doc.Ref.ID
	return &pb, nil
}

// CreateGoal persists a new active goal
func (r *Repo) CreateGoal(ctx context.Context, clubID string, g Goal) (*Goal, error) {
	ref := r.goalsCol(clubID).NewDoc()
	g.ID = ref.ID
	g.ClubID = clubID

	if _, err := ref.Set(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &g, nil
}

// ListActiveGoals lists active goals for (athleteId, categoryId)
func (r *Repo) ListActiveGoals(ctx context.Context, clubID, athleteID, categoryID string) ([]Goal, error) {
	iter := r.goalsCol(clubID).
		Where("athleteId", "==", athleteID).
		Where("categoryId", "==", categoryID).
		Where("status", "==", string(GoalActive)).
		Documents(ctx)
	defer iter.Stop()

	var out []Goal
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list goals: %w", err)
		}

		var g Goal
		if err := doc.DataTo(&g); err != nil {
			continue
		}
		g.ID = doc.Ref.ID
		out = append(out, g)
	}

	return out, nil
}

// ListGoals lists all goals for an athlete
func (r *Repo) ListGoals(ctx context.Context, clubID, athleteID string) ([]Goal, error) {
	iter := r.goalsCol(clubID).
		Where("athleteId", "==", athleteID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var out []Goal
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list goals: %w", err)
		}

		var g Goal
		if err := doc.DataTo(&g); err != nil {
			continue
		}
		g.ID = doc.Ref.ID
		out = append(out, g)
	}

	return out, nil
}

// CompleteGoal stamps a goal completed. The transition is one-way: an already
// completed goal is returned unchanged.
func (r *Repo) CompleteGoal(ctx context.Context, clubID, goalID string, c GoalCompletion) (*Goal, error) {
	ref := r.goalsCol(clubID).Doc(goalID)

	var out Goal
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return fmt.Errorf("%w: goal not found", ErrNotFound)
		}

		var g Goal
		if derr := doc.DataTo(&g); derr != nil {
			return derr
		}
		g.ID = ref.ID

		if g.Status == GoalCompleted {
			out = g
			return nil
		}

		g.Status = GoalCompleted
		g.CompletedValue = c.Value
		g.CompletedTestID = c.TestID
		g.CompletedDate = c.At

		if terr := tx.Set(ref, g); terr != nil {
			return terr
		}
		out = g
		return nil
	})
	if err != nil {
		if IsErrNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to complete goal: %w", err)
	}

	return &out, nil
}
