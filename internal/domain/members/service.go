package members

import (
	"context"
	"fmt"
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

// Add adds a new member to a club
func (s *Service) Add(ctx context.Context, staffUID string, input AddMemberInput) (*Member, error) {
	input.Trim()

	if input.ClubID == "" || input.AthleteID == "" {
		return nil, fmt.Errorf("%w: clubId and athleteId are required", ErrBadRequest)
	}

	isStaff, err := s.clubRepo.IsStaff(ctx, input.ClubID, staffUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff status: %w", err)
	}
	if !isStaff {
		return nil, fmt.Errorf("%w: staff permission required", ErrUnauthorized)
	}

	role := input.Role
	if role == "" {
		role = RoleAthlete
	}
	if !IsValidRole(role) {
		return nil, fmt.Errorf("%w: role must be one of: athlete, coach, staff, owner", ErrBadRequest)
	}

	if existing, _ := s.repo.Get(ctx, input.ClubID, input.AthleteID); existing != nil {
		return nil, fmt.Errorf("%w: member already exists in this club", ErrBadRequest)
	}

	now := time.Now().UTC()
	m := Member{
		AthleteID: input.AthleteID,
		Role:      role,
		Status:    StatusActive,
		FullName:  input.FullName,
		JoinedAt:  now,
		AddedBy:   staffUID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.Put(ctx, input.ClubID, m)
}

// Update updates a member's role or status
func (s *Service) Update(ctx context.Context, staffUID string, input UpdateMemberInput) (*Member, error) {
	input.Trim()

	if input.ClubID == "" || input.AthleteID == "" {
		return nil, fmt.Errorf("%w: clubId and athleteId are required", ErrBadRequest)
	}

	isStaff, err := s.clubRepo.IsStaff(ctx, input.ClubID, staffUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff status: %w", err)
	}
	if !isStaff {
		return nil, fmt.Errorf("%w: staff permission required", ErrUnauthorized)
	}

	if _, err := s.repo.Get(ctx, input.ClubID, input.AthleteID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updatedAt": time.Now().UTC(),
	}

	if input.Role != nil {
		if !IsValidRole(*input.Role) {
			return nil, fmt.Errorf("%w: role must be one of: athlete, coach, staff, owner", ErrBadRequest)
		}
		updates["role"] = *input.Role
	}

	if input.Status != nil {
		if !IsValidStatus(*input.Status) {
			return nil, fmt.Errorf("%w: status must be one of: active, inactive", ErrBadRequest)
		}
		updates["status"] = *input.Status
	}

	return s.repo.Update(ctx, input.ClubID, input.AthleteID, updates)
}

// Remove deletes a member from a club
func (s *Service) Remove(ctx context.Context, staffUID, clubID, athleteID string) error {
	if clubID == "" || athleteID == "" {
		return fmt.Errorf("%w: clubId and athleteId are required", ErrBadRequest)
	}

	isStaff, err := s.clubRepo.IsStaff(ctx, clubID, staffUID)
	if err != nil {
		return fmt.Errorf("failed to check staff status: %w", err)
	}
	if !isStaff {
		return fmt.Errorf("%w: staff permission required", ErrUnauthorized)
	}

	return s.repo.Delete(ctx, clubID, athleteID)
}

// ListActive lists active members of a club
func (s *Service) ListActive(ctx context.Context, clubID string) ([]Member, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	return s.repo.ListActive(ctx, clubID)
}

// List lists all members of a club
func (s *Service) List(ctx context.Context, clubID string, limit int) ([]Member, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	return s.repo.List(ctx, clubID, limit)
}
