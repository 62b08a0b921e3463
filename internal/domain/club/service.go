package club

import (
	"context"
	"fmt"

	"club-scheduler/backend/internal/utils"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, actorUID string, in CreateClubInput) (*Club, error) {
	in.Trim()

	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadRequest)
	}

	nameLower := utils.NormalizeNameLower(in.Name)
	slug := utils.Slugify(in.Name)

	ts := now()
	c := Club{
		Name:      in.Name,
		NameLower: nameLower,
		Slug:      slug,
		Keywords:  utils.KeywordsFromName(nameLower, slug),
		City:      in.City,
		Country:   in.Country,
		CreatedBy: actorUID,
		OwnerUID:  actorUID,
		StaffUids: []string{actorUID},
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	return s.repo.Create(ctx, c)
}

func (s *Service) Get(ctx context.Context, clubID string) (*Club, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	return s.repo.Get(ctx, clubID)
}

func (s *Service) Search(ctx context.Context, q string, limit int64) ([]Club, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.repo.SearchByNamePrefix(ctx, q, limit)
}
