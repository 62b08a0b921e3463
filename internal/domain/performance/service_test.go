package performance

import (
	"context"
	"fmt"
	"testing"

	"club-scheduler/backend/internal/domain/catalog"
)

type fakeRecords struct {
	byKey map[string]PersonalRecord // athleteId_categoryId
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{byKey: map[string]PersonalRecord{}}
}

func (f *fakeRecords) ApplyBest(_ context.Context, clubID string, candidate PersonalRecord, dir Direction) (*PersonalRecord, bool, error) {
	key := candidate.AthleteID + "_" + candidate.CategoryID
	current, ok := f.byKey[key]
	if ok && !dir.Improves(candidate.Value, current.Value) {
		return &current, false, nil
	}
	candidate.ID = key
	candidate.ClubID = clubID
	f.byKey[key] = candidate
	return &candidate, true, nil
}

func (f *fakeRecords) GetRecord(_ context.Context, _, athleteID, categoryID string) (*PersonalRecord, error) {
	r, ok := f.byKey[athleteID+"_"+categoryID]
	if !ok {
		return nil, fmt.Errorf("%w: no record", ErrNotFound)
	}
	return &r, nil
}

type fakeGoals struct {
	byID map[string]Goal
}

func newFakeGoals() *fakeGoals {
	return &fakeGoals{byID: map[string]Goal{}}
}

func (f *fakeGoals) CreateGoal(_ context.Context, clubID string, g Goal) (*Goal, error) {
	g.ID = fmt.Sprintf("goal-%d", len(f.byID)+1)
	g.ClubID = clubID
	f.byID[g.ID] = g
	return &g, nil
}

func (f *fakeGoals) ListActiveGoals(_ context.Context, _, athleteID, categoryID string) ([]Goal, error) {
	var out []Goal
	for _, g := range f.byID {
		if g.AthleteID == athleteID && g.CategoryID == categoryID && g.Status == GoalActive {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoals) ListGoals(_ context.Context, _, athleteID string) ([]Goal, error) {
	var out []Goal
	for _, g := range f.byID {
		if g.AthleteID == athleteID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoals) CompleteGoal(_ context.Context, _, goalID string, c GoalCompletion) (*Goal, error) {
	g, ok := f.byID[goalID]
	if !ok {
		return nil, fmt.Errorf("%w: goal %s", ErrNotFound, goalID)
	}
	if g.Status == GoalCompleted {
		return &g, nil
	}
	g.Status = GoalCompleted
	g.CompletedValue = c.Value
	g.CompletedTestID = c.TestID
	g.CompletedDate = c.At
	f.byID[goalID] = g
	return &g, nil
}

type fakeCategories struct {
	units map[string]string // categoryId → unit
}

func (f fakeCategories) GetCategory(_ context.Context, id string) (*catalog.Category, error) {
	unit, ok := f.units[id]
	if !ok {
		return nil, fmt.Errorf("%w: category %s", ErrNotFound, id)
	}
	return &catalog.Category{ID: id, Name: id, Unit: unit}, nil
}

type fakeStaff struct {
	allow map[string]bool
}

func (f fakeStaff) IsStaff(_ context.Context, _, uid string) (bool, error) {
	return f.allow[uid], nil
}

func newTestService(records *fakeRecords, goals *fakeGoals) *Service {
	return NewService(records, goals,
		fakeCategories{units: map[string]string{"cat-100m": "seconds", "cat-squat": "kg"}},
		fakeStaff{allow: map[string]bool{"staff-1": true}})
}

func TestApplyResultPBStrictImprovement(t *testing.T) {
	t.Parallel()

	records := newFakeRecords()
	svc := newTestService(records, newFakeGoals())
	ctx := context.Background()

	apply := func(v float64) *ApplyResultOutput {
		t.Helper()
		out, err := svc.ApplyResult(ctx, "staff-1", "club-1", "ath-1", ApplyResultInput{
			CategoryID: "cat-100m",
			Value:      v,
		})
		if err != nil {
			t.Fatalf("ApplyResult(%v): %v", v, err)
		}
		return out
	}

	// First result always installs a PB.
	if out := apply(12.4); !out.PBUpdated || out.PersonalRecord.Value != 12.4 {
		t.Fatalf("first result: %+v", out)
	}
	// Lower time improves a seconds category.
	if out := apply(11.9); !out.PBUpdated || out.PersonalRecord.Value != 11.9 {
		t.Fatalf("improvement: %+v", out)
	}
	// Equal value is not an improvement.
	if out := apply(11.9); out.PBUpdated || out.PersonalRecord.Value != 11.9 {
		t.Fatalf("tie: %+v", out)
	}
	// Worse value leaves the PB alone.
	if out := apply(12.8); out.PBUpdated || out.PersonalRecord.Value != 11.9 {
		t.Fatalf("regression: %+v", out)
	}
}

func TestApplyResultHigherIsBetterCategory(t *testing.T) {
	t.Parallel()

	records := newFakeRecords()
	svc := newTestService(records, newFakeGoals())
	ctx := context.Background()

	first, err := svc.ApplyResult(ctx, "staff-1", "club-1", "ath-1", ApplyResultInput{CategoryID: "cat-squat", Value: 100})
	if err != nil {
		t.Fatalf("ApplyResult: %v", err)
	}
	if !first.PBUpdated {
		t.Fatal("first result did not install PB")
	}

	second, err := svc.ApplyResult(ctx, "staff-1", "club-1", "ath-1", ApplyResultInput{CategoryID: "cat-squat", Value: 95})
	if err != nil {
		t.Fatalf("ApplyResult: %v", err)
	}
	if second.PBUpdated || second.PersonalRecord.Value != 100 {
		t.Fatalf("lighter squat updated PB: %+v", second)
	}
}

func TestApplyResultExplicitUnitOverridesCatalog(t *testing.T) {
	t.Parallel()

	records := newFakeRecords()
	svc := newTestService(records, newFakeGoals())
	ctx := context.Background()

	// cat-squat is kg in the catalog, but the caller says this result was
	// measured in seconds, so lower must win.
	in := func(v float64) ApplyResultInput {
		return ApplyResultInput{CategoryID: "cat-squat", Value: v, Unit: "seconds"}
	}
	if _, err := svc.ApplyResult(ctx, "staff-1", "club-1", "ath-1", in(60)); err != nil {
		t.Fatalf("ApplyResult: %v", err)
	}
	out, err := svc.ApplyResult(ctx, "staff-1", "club-1", "ath-1", in(55))
	if err != nil {
		t.Fatalf("ApplyResult: %v", err)
	}
	if !out.PBUpdated {
		t.Fatal("lower value with explicit seconds unit did not update PB")
	}
}

func TestApplyResultCompletesCrossedGoals(t *testing.T) {
	t.Parallel()

	records := newFakeRecords()
	goals := newFakeGoals()
	svc := newTestService(records, goals)
	ctx := context.Background()

	// Two reachable goals and one out of reach, all active.
	mk := func(target float64) {
		t.Helper()
		if _, err := svc.CreateGoal(ctx, "staff-1", "club-1", CreateGoalInput{
			AthleteID: "ath-1", CategoryID: "cat-100m", TargetValue: target,
		}); err != nil {
			t.Fatalf("CreateGoal(%v): %v", target, err)
		}
	}
	mk(12.5)
	mk(12.0)
	mk(11.5)

	out, err := svc.ApplyResult(ctx, "staff-1", "club-1", "ath-1", ApplyResultInput{
		CategoryID: "cat-100m", Value: 12.0, TestID: "test-7",
	})
	if err != nil {
		t.Fatalf("ApplyResult: %v", err)
	}
	if len(out.GoalsCompleted) != 2 {
		t.Fatalf("completed %d goals, want 2: %+v", len(out.GoalsCompleted), out.GoalsCompleted)
	}
	for _, g := range out.GoalsCompleted {
		if g.Status != GoalCompleted {
			t.Errorf("goal %s status = %q", g.ID, g.Status)
		}
		if g.CompletedValue != 12.0 || g.CompletedTestID != "test-7" {
			t.Errorf("goal %s completion stamp = %+v", g.ID, g)
		}
	}
}

func TestGoalCompletionIsOneWay(t *testing.T) {
	t.Parallel()

	records := newFakeRecords()
	goals := newFakeGoals()
	svc := newTestService(records, goals)
	ctx := context.Background()

	created, err := svc.CreateGoal(ctx, "staff-1", "club-1", CreateGoalInput{
		AthleteID: "ath-1", CategoryID: "cat-100m", TargetValue: 12.0,
	})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	if _, err := svc.ApplyResult(ctx, "staff-1", "club-1", "ath-1", ApplyResultInput{
		CategoryID: "cat-100m", Value: 11.8,
	}); err != nil {
		t.Fatalf("ApplyResult: %v", err)
	}

	// A later worse result must not reopen the goal.
	out, err := svc.ApplyResult(ctx, "staff-1", "club-1", "ath-1", ApplyResultInput{
		CategoryID: "cat-100m", Value: 13.5,
	})
	if err != nil {
		t.Fatalf("ApplyResult: %v", err)
	}
	if len(out.GoalsCompleted) != 0 {
		t.Fatalf("worse result completed goals: %+v", out.GoalsCompleted)
	}
	if g := goals.byID[created.ID]; g.Status != GoalCompleted || g.CompletedValue != 11.8 {
		t.Fatalf("goal reopened or restamped: %+v", g)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRecords(), newFakeGoals())
	ctx := context.Background()

	if _, err := svc.CreateGoal(ctx, "staff-1", "club-1", CreateGoalInput{CategoryID: "cat-100m"}); !IsErrBadRequest(err) {
		t.Errorf("missing athlete: err = %v", err)
	}
	if _, err := svc.CreateGoal(ctx, "staff-1", "club-1", CreateGoalInput{
		AthleteID: "ath-1", CategoryID: "cat-100m", TargetDate: "June 1st",
	}); !IsErrBadRequest(err) {
		t.Errorf("bad targetDate: err = %v", err)
	}
	if _, err := svc.CreateGoal(ctx, "athlete-9", "club-1", CreateGoalInput{
		AthleteID: "ath-1", CategoryID: "cat-100m",
	}); !IsErrUnauthorized(err) {
		t.Errorf("non-staff: err = %v", err)
	}
}
