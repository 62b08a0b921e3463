package club

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Create(ctx context.Context, c Club) (*Club, error) {
	ref := r.fs.Collection("clubs").NewDoc()
	c.ID = ref.ID
	_, err := ref.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	return &c, nil
}

func (r *Repo) Get(ctx context.Context, clubID string) (*Club, error) {
	doc, err := r.fs.Collection("clubs").Doc(clubID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: club not found", ErrNotFound)
	}
	var c Club
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("failed to decode club: %w", err)
	}
	if c.ID == "" {
		c.ID = clubID
	}
	return &c, nil
}

func (r *Repo) SearchByNamePrefix(ctx context.Context, q string, limit int64) ([]Club, error) {
	q = strings.TrimSpace(strings.ToLower(q))
	col := r.fs.Collection("clubs")

	var it *firestore.DocumentIterator
	if q == "" {
		it = col.OrderBy("createdAt", firestore.Desc).Limit(int(limit)).Documents(ctx)
	} else {
		hi := q + ""
		it = col.Where("nameLower", ">=", q).
			Where("nameLower", "<", hi).
			OrderBy("nameLower", firestore.Asc).
			Limit(int(limit)).
			Documents(ctx)
	}

	out := []Club{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to search clubs: %w", err)
		}
		var c Club
		if err := doc.DataTo(&c); err != nil {
			continue
		}
		if c.ID == "" {
			c.ID = doc.Ref.ID
		}
		out = append(out, c)
	}
	return out, nil
}

// IsStaff reports whether uid may mutate schedule, cancellation, session,
// attendance or result data for the club.
func (r *Repo) IsStaff(ctx context.Context, clubID, uid string) (bool, error) {
	c, err := r.Get(ctx, clubID)
	if err != nil {
		return false, err
	}

	if c.OwnerUID == uid {
		return true, nil
	}
	if c.CreatedBy == uid {
		return true, nil
	}
	for _, s := range c.StaffUids {
		if s == uid {
			return true, nil
		}
	}

	// Check members subcollection for a staff role
	memberDoc, err := r.fs.Collection("clubs").Doc(clubID).Collection("members").Doc(uid).Get(ctx)
	if err == nil && memberDoc.Exists() {
		data := memberDoc.Data()
		if role, ok := data["role"].(string); ok {
			switch role {
			case "owner", "admin", "staff", "coach":
				return true, nil
			}
		}
	}

	return false, nil
}

func now() time.Time { return time.Now().UTC() }
