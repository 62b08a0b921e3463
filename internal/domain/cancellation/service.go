package cancellation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"club-scheduler/backend/internal/domain/schedule"
)

// Store is the persistence surface the service needs. *Repo satisfies it.
type Store interface {
	Create(ctx context.Context, clubID string, c Cancellation) (*Cancellation, error)
	CreateBatch(ctx context.Context, clubID string, cs []Cancellation) ([]Cancellation, error)
	Get(ctx context.Context, clubID, id string) (*Cancellation, error)
	Delete(ctx context.Context, clubID, id string) error
	ListRange(ctx context.Context, clubID, startDate, endDate string) ([]Cancellation, error)
	DeleteGroup(ctx context.Context, clubID, cType, reason string) (int, error)
}

// TemplateSource provides the weekly template used to decide which days in a
// bulk range are actually scheduled.
type TemplateSource interface {
	Get(ctx context.Context, clubID string) (schedule.WeeklyTemplate, error)
}

// StaffChecker authorizes mutating calls.
type StaffChecker interface {
	IsStaff(ctx context.Context, clubID, uid string) (bool, error)
}

type Service struct {
	store     Store
	templates TemplateSource
	clubs     StaffChecker
}

func NewService(store Store, templates TemplateSource, clubs StaffChecker) *Service {
	return &Service{store: store, templates: templates, clubs: clubs}
}

// AddSingle cancels one calendar date
func (s *Service) AddSingle(ctx context.Context, staffUID, clubID string, in CreateCancellationInput) (*Cancellation, error) {
	in.Trim()

	if clubID == "" || in.Date == "" || in.Reason == "" || in.Type == "" {
		return nil, fmt.Errorf("%w: clubId, date, reason, type are required", ErrBadRequest)
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD format", ErrBadRequest)
	}
	if !IsValidType(in.Type) {
		return nil, fmt.Errorf("%w: type must be one of: vacation, maintenance, weather, other", ErrBadRequest)
	}

	if err := s.checkStaff(ctx, clubID, staffUID); err != nil {
		return nil, err
	}

	c := Cancellation{
		Date:      in.Date,
		Reason:    in.Reason,
		Type:      CancellationType(in.Type),
		CreatedBy: staffUID,
		CreatedAt: time.Now().UTC(),
		IsBulk:    false,
	}

	return s.store.Create(ctx, clubID, c)
}

// AddBulkRange cancels every scheduled day in the range. Days whose weekday is
// not enabled in the template are skipped; with skipWeekends, Saturday and
// Sunday are skipped too. An empty result set is an error so callers can
// report "nothing to cancel" instead of a silent no-op.
func (s *Service) AddBulkRange(ctx context.Context, staffUID, clubID string, in BulkCancelInput) ([]Cancellation, error) {
	in.Trim()

	if clubID == "" || in.StartDate == "" || in.EndDate == "" || in.Reason == "" || in.Type == "" {
		return nil, fmt.Errorf("%w: clubId, startDate, endDate, reason, type are required", ErrBadRequest)
	}

	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: startDate must be YYYY-MM-DD format", ErrBadRequest)
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: endDate must be YYYY-MM-DD format", ErrBadRequest)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: startDate must not be after endDate", ErrBadRequest)
	}
	if !IsValidType(in.Type) {
		return nil, fmt.Errorf("%w: type must be one of: vacation, maintenance, weather, other", ErrBadRequest)
	}

	if err := s.checkStaff(ctx, clubID, staffUID); err != nil {
		return nil, err
	}

	tmpl, err := s.templates.Get(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	dates := ScheduledDatesInRange(start, end, tmpl.EnabledDays(), in.SkipWeekends)
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: no scheduled days in range", ErrBadRequest)
	}

	now := time.Now().UTC()
	batchID := uuid.NewString()

	cs := make([]Cancellation, 0, len(dates))
	for _, d := range dates {
		cs = append(cs, Cancellation{
			Date:      d,
			Reason:    in.Reason,
			Type:      CancellationType(in.Type),
			CreatedBy: staffUID,
			CreatedAt: now,
			IsBulk:    true,
			BatchID:   batchID,
		})
	}

	return s.store.CreateBatch(ctx, clubID, cs)
}

// Remove deletes a single cancellation ("un-cancel")
func (s *Service) Remove(ctx context.Context, staffUID, clubID, id string) error {
	if clubID == "" || id == "" {
		return fmt.Errorf("%w: clubId and id are required", ErrBadRequest)
	}

	if err := s.checkStaff(ctx, clubID, staffUID); err != nil {
		return err
	}

	if _, err := s.store.Get(ctx, clubID, id); err != nil {
		return err
	}

	return s.store.Delete(ctx, clubID, id)
}

// RemoveGroup deletes every bulk cancellation sharing type and reason and
// returns the number of removed records.
func (s *Service) RemoveGroup(ctx context.Context, staffUID, clubID string, in RemoveGroupInput) (int, error) {
	in.Trim()

	if clubID == "" || in.Type == "" || in.Reason == "" {
		return 0, fmt.Errorf("%w: clubId, type, reason are required", ErrBadRequest)
	}
	if !IsValidType(in.Type) {
		return 0, fmt.Errorf("%w: type must be one of: vacation, maintenance, weather, other", ErrBadRequest)
	}

	if err := s.checkStaff(ctx, clubID, staffUID); err != nil {
		return 0, err
	}

	return s.store.DeleteGroup(ctx, clubID, in.Type, in.Reason)
}

// ListRange lists cancellations in a date range (read path for the projector)
func (s *Service) ListRange(ctx context.Context, clubID, startDate, endDate string) ([]Cancellation, error) {
	if clubID == "" || startDate == "" || endDate == "" {
		return nil, fmt.Errorf("%w: clubId, startDate, endDate are required", ErrBadRequest)
	}
	return s.store.ListRange(ctx, clubID, startDate, endDate)
}

func (s *Service) checkStaff(ctx context.Context, clubID, uid string) error {
	isStaff, err := s.clubs.IsStaff(ctx, clubID, uid)
	if err != nil {
		return fmt.Errorf("failed to check staff status: %w", err)
	}
	if !isStaff {
		return fmt.Errorf("%w: staff permission required", ErrUnauthorized)
	}
	return nil
}
