package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"club-scheduler/backend/internal/domain/club"
)

type Service struct {
	repo     *Repo
	clubRepo *club.Repo
}

func NewService(repo *Repo, clubRepo *club.Repo) *Service {
	return &Service{repo: repo, clubRepo: clubRepo}
}

// Get returns the club's weekly template, defaults included.
func (s *Service) Get(ctx context.Context, clubID string) (WeeklyTemplate, error) {
	if clubID == "" {
		return WeeklyTemplate{}, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	return s.repo.Get(ctx, clubID)
}

// Put replaces the club's weekly template. Readers pick up the new template on
// their next fetch; in-flight projections keep the snapshot they read.
func (s *Service) Put(ctx context.Context, staffUID, clubID string, in PutTemplateInput) (WeeklyTemplate, error) {
	in.Trim()

	if clubID == "" {
		return WeeklyTemplate{}, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	if err := in.Validate(); err != nil {
		return WeeklyTemplate{}, err
	}

	isStaff, err := s.clubRepo.IsStaff(ctx, clubID, staffUID)
	if err != nil {
		return WeeklyTemplate{}, fmt.Errorf("failed to check staff status: %w", err)
	}
	if !isStaff {
		return WeeklyTemplate{}, fmt.Errorf("%w: staff permission required", ErrUnauthorized)
	}

	entries := make([]TemplateEntry, len(in.Entries))
	copy(entries, in.Entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].DayOfWeek < entries[j].DayOfWeek })

	t := WeeklyTemplate{
		ClubID:    clubID,
		Entries:   entries,
		UpdatedBy: staffUID,
		UpdatedAt: time.Now().UTC(),
	}

	return s.repo.Put(ctx, clubID, t)
}
