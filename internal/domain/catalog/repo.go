package catalog

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

// GetProgram retrieves a program by ID
func (r *Repo) GetProgram(ctx context.Context, programID string) (*Program, error) {
	if programID == "" {
		return nil, fmt.Errorf("%w: programId is required", ErrBadRequest)
	}

	doc, err := r.fs.Collection("programs").Doc(programID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: program not found", ErrNotFound)
	}

	var p Program
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode program: %w", err)
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

// GetCategory retrieves a category by ID
func (r *Repo) GetCategory(ctx context.Context, categoryID string) (*Category, error) {
	if categoryID == "" {
		return nil, fmt.Errorf("%w: categoryId is required", ErrBadRequest)
	}

	doc, err := r.fs.Collection("categories").Doc(categoryID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: category not found", ErrNotFound)
	}

	var c Category
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("failed to decode category: %w", err)
	}
	c.ID = doc.Ref.ID
	return &c, nil
}

// ListCategories lists all categories
func (r *Repo) ListCategories(ctx context.Context, limit int) ([]Category, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	iter := r.fs.Collection("categories").OrderBy("name", firestore.Asc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var out []Category
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}

		var c Category
		if err := doc.DataTo(&c); err != nil {
			continue
		}
		c.ID = doc.Ref.ID
		out = append(out, c)
	}

	return out, nil
}
