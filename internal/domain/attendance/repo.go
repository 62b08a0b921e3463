package attendance

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) attendanceCol(clubID string) *firestore.CollectionRef {
	return r.client.Collection("clubs").Doc(clubID).Collection("attendance")
}

// recordID derives the doc ID from the (sessionId, athleteId) pair, so an
// upsert can never produce a duplicate record for the pair.
func recordID(sessionID, athleteID string) string {
	return sessionID + "_" + athleteID
}

// ListForSession lists all attendance records of a session
func (r *Repo) ListForSession(ctx context.Context, clubID, sessionID string) ([]Record, error) {
	iter := r.attendanceCol(clubID).
		Where("sessionId", "==", sessionID).
		Documents(ctx)
	defer iter.Stop()

	var out []Record
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list attendance: %w", err)
		}

		var rec Record
		if err := doc.DataTo(&rec); err != nil {
			continue
		}
		rec.ID = doc.Ref.ID
		rec.ClubID = clubID
		out = append(out, rec)
	}

	return out, nil
}

// BulkUpsert writes the given records in one batch commit. Each record lands
// on its deterministic doc, creating or overwriting as needed.
func (r *Repo) BulkUpsert(ctx context.Context, clubID, sessionID, markedBy string, records []BulkRecord, now time.Time) error {
	batch := r.client.Batch()

	for _, rec := range records {
		ref := r.attendanceCol(clubID).Doc(recordID(sessionID, rec.AthleteID))
		batch.Set(ref, map[string]interface{}{
			"clubId":    clubID,
			"sessionId": sessionID,
			"athleteId": rec.AthleteID,
			"status":    rec.Status,
			"notes":     rec.Notes,
			"markedAt":  now,
			"markedBy":  markedBy,
		}, firestore.MergeAll)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("batch commit failed: %w", err)
	}
	return nil
}

// Delete hard-deletes the record for (sessionId, athleteId)
func (r *Repo) Delete(ctx context.Context, clubID, sessionID, athleteID string) error {
	if _, err := r.attendanceCol(clubID).Doc(recordID(sessionID, athleteID)).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}

// DeleteForSession removes every attendance record of a session, returning
// the number of deleted records. Used by the orphan sweep.
func (r *Repo) DeleteForSession(ctx context.Context, clubID, sessionID string) (int, error) {
	iter := r.attendanceCol(clubID).
		Where("sessionId", "==", sessionID).
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
			return 0, fmt.Errorf("failed to query attendance: %w", err)
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
