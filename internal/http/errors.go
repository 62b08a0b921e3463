package http

import (
	"club-scheduler/backend/internal/domain/attendance"
	"club-scheduler/backend/internal/domain/cancellation"
	"club-scheduler/backend/internal/domain/catalog"
	"club-scheduler/backend/internal/domain/club"
	"club-scheduler/backend/internal/domain/members"
	"club-scheduler/backend/internal/domain/performance"
	"club-scheduler/backend/internal/domain/schedule"
	"club-scheduler/backend/internal/domain/session"
	"club-scheduler/backend/internal/domain/stats"
	"club-scheduler/backend/internal/domain/sweep"
)

func mapClubError(err error) (int, string) {
	switch {
	case club.IsErrBadRequest(err):
		return 400, err.Error()
	case club.IsErrUnauthorized(err):
		return 403, err.Error()
	case club.IsErrNotFound(err):
		return 404, err.Error()
	case club.IsErrConflict(err):
		return 409, err.Error()
	default:
		return 500, "internal error"
	}
}

func mapScheduleError(err error) (int, string) {
	switch {
	case schedule.IsErrBadRequest(err):
		return 400, err.Error()
	case schedule.IsErrUnauthorized(err):
		return 403, err.Error()
	case schedule.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 500, "internal error"
	}
}

func mapCancellationError(err error) (int, string) {
	switch {
	case cancellation.IsErrBadRequest(err):
		return 400, err.Error()
	case cancellation.IsErrUnauthorized(err):
		return 403, err.Error()
	case cancellation.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 500, "internal error"
	}
}

func mapSessionError(err error) (int, string) {
	switch {
	case session.IsErrBadRequest(err):
		return 400, err.Error()
	case session.IsErrUnauthorized(err):
		return 403, err.Error()
	case session.IsErrNotFound(err):
		return 404, err.Error()
	case session.IsErrConflict(err):
		return 409, err.Error()
	default:
		return 500, "internal error"
	}
}

func mapAttendanceError(err error) (int, string) {
	switch {
	case attendance.IsErrBadRequest(err):
		return 400, err.Error()
	case attendance.IsErrUnauthorized(err):
		return 403, err.Error()
	case attendance.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 500, "internal error"
	}
}

func mapSweepError(err error) (int, string) {
	switch {
	case sweep.IsErrUnauthorized(err):
		return 403, err.Error()
	default:
		return 500, "internal error"
	}
}

func mapStatsError(err error) (int, string) {
	switch {
	case stats.IsErrBadRequest(err):
		return 400, err.Error()
	case stats.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 500, "internal error"
	}
}

func mapPerformanceError(err error) (int, string) {
	switch {
	case performance.IsErrBadRequest(err):
		return 400, err.Error()
	case performance.IsErrUnauthorized(err):
		return 403, err.Error()
	case performance.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 500, "internal error"
	}
}

func mapMembersError(err error) (int, string) {
	switch {
	case members.IsErrBadRequest(err):
		return 400, err.Error()
	case members.IsErrUnauthorized(err):
		return 403, err.Error()
	case members.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 500, "internal error"
	}
}

func mapCatalogError(err error) (int, string) {
	switch {
	case catalog.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 500, "internal error"
	}
}
