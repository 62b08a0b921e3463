package performance

import (
	"context"
	"fmt"
	"time"

	"club-scheduler/backend/internal/domain/catalog"
)

// RecordStore installs a candidate PB if it strictly improves on the stored
// one. *Repo satisfies it.
type RecordStore interface {
	ApplyBest(ctx context.Context, clubID string, candidate PersonalRecord, dir Direction) (*PersonalRecord, bool, error)
	GetRecord(ctx context.Context, clubID, athleteID, categoryID string) (*PersonalRecord, error)
}

// GoalStore manages goals. *Repo satisfies it.
type GoalStore interface {
	CreateGoal(ctx context.Context, clubID string, g Goal) (*Goal, error)
	ListActiveGoals(ctx context.Context, clubID, athleteID, categoryID string) ([]Goal, error)
	ListGoals(ctx context.Context, clubID, athleteID string) ([]Goal, error)
	CompleteGoal(ctx context.Context, clubID, goalID string, c GoalCompletion) (*Goal, error)
}

// CategorySource resolves a category's unit when the caller does not supply
// one.
type CategorySource interface {
	GetCategory(ctx context.Context, categoryID string) (*catalog.Category, error)
}

// StaffChecker authorizes mutating calls.
type StaffChecker interface {
	IsStaff(ctx context.Context, clubID, uid string) (bool, error)
}

type Service struct {
	records    RecordStore
	goals      GoalStore
	categories CategorySource
	clubs      StaffChecker
}

func NewService(records RecordStore, goals GoalStore, categories CategorySource, clubs StaffChecker) *Service {
	return &Service{records: records, goals: goals, categories: categories, clubs: clubs}
}

// ApplyResult records a new measured value for an athlete: the PB is updated
// on strict improvement, and every active goal the value crosses in the
// favorable direction completes. Multiple goals may complete from one result.
func (s *Service) ApplyResult(ctx context.Context, staffUID, clubID, athleteID string, in ApplyResultInput) (*ApplyResultOutput, error) {
	in.Trim()

	if clubID == "" || athleteID == "" || in.CategoryID == "" {
		return nil, fmt.Errorf("%w: clubId, athleteId, categoryId are required", ErrBadRequest)
	}

	isStaff, err := s.clubs.IsStaff(ctx, clubID, staffUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff status: %w", err)
	}
	if !isStaff {
		return nil, fmt.Errorf("%w: staff permission required", ErrUnauthorized)
	}

	unit := in.Unit
	if unit == "" {
		cat, err := s.categories.GetCategory(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		unit = cat.Unit
	}
	dir := DirectionForUnit(unit)

	now := time.Now().UTC()

	pb, updated, err := s.records.ApplyBest(ctx, clubID, PersonalRecord{
		AthleteID:  athleteID,
		CategoryID: in.CategoryID,
		Value:      in.Value,
		Date:       now,
		TestID:     in.TestID,
	}, dir)
	if err != nil {
		return nil, err
	}

	active, err := s.goals.ListActiveGoals(ctx, clubID, athleteID, in.CategoryID)
	if err != nil {
		return nil, err
	}

	completed := []Goal{}
	for _, g := range active {
		if !dir.Meets(in.Value, g.TargetValue) {
			continue
		}
		done, err := s.goals.CompleteGoal(ctx, clubID, g.ID, GoalCompletion{
			Value:  in.Value,
			TestID: in.TestID,
			At:     now,
		})
		if err != nil {
			return nil, err
		}
		completed = append(completed, *done)
	}

	return &ApplyResultOutput{
		PBUpdated:      updated,
		PersonalRecord: pb,
		GoalsCompleted: completed,
	}, nil
}

// CreateGoal creates a new active goal for an athlete
func (s *Service) CreateGoal(ctx context.Context, staffUID, clubID string, in CreateGoalInput) (*Goal, error) {
	in.Trim()

	if clubID == "" || in.AthleteID == "" || in.CategoryID == "" {
		return nil, fmt.Errorf("%w: clubId, athleteId, categoryId are required", ErrBadRequest)
	}
	if in.TargetDate != "" {
		if _, err := time.Parse("2006-01-02", in.TargetDate); err != nil {
			return nil, fmt.Errorf("%w: targetDate must be YYYY-MM-DD format", ErrBadRequest)
		}
	}

	isStaff, err := s.clubs.IsStaff(ctx, clubID, staffUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff status: %w", err)
	}
	if !isStaff {
		return nil, fmt.Errorf("%w: staff permission required", ErrUnauthorized)
	}

	return s.goals.CreateGoal(ctx, clubID, Goal{
		AthleteID:   in.AthleteID,
		CategoryID:  in.CategoryID,
		TargetValue: in.TargetValue,
		TargetDate:  in.TargetDate,
		Status:      GoalActive,
		CreatedBy:   staffUID,
		CreatedAt:   time.Now().UTC(),
	})
}

// ListGoals lists an athlete's goals
func (s *Service) ListGoals(ctx context.Context, clubID, athleteID string) ([]Goal, error) {
	if clubID == "" || athleteID == "" {
		return nil, fmt.Errorf("%w: clubId and athleteId are required", ErrBadRequest)
	}
	return s.goals.ListGoals(ctx, clubID, athleteID)
}

// GetRecord returns the current PB for (athleteId, categoryId)
func (s *Service) GetRecord(ctx context.Context, clubID, athleteID, categoryID string) (*PersonalRecord, error) {
	if clubID == "" || athleteID == "" || categoryID == "" {
		return nil, fmt.Errorf("%w: clubId, athleteId, categoryId are required", ErrBadRequest)
	}
	return s.records.GetRecord(ctx, clubID, athleteID, categoryID)
}
