package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"club-scheduler/backend/internal/config"
	"club-scheduler/backend/internal/domain/attendance"
	"club-scheduler/backend/internal/domain/calendar"
	"club-scheduler/backend/internal/domain/cancellation"
	"club-scheduler/backend/internal/domain/catalog"
	"club-scheduler/backend/internal/domain/club"
	"club-scheduler/backend/internal/domain/members"
	"club-scheduler/backend/internal/domain/performance"
	"club-scheduler/backend/internal/domain/schedule"
	"club-scheduler/backend/internal/domain/session"
	"club-scheduler/backend/internal/domain/stats"
	"club-scheduler/backend/internal/domain/sweep"
	"club-scheduler/backend/internal/middleware"

	"firebase.google.com/go/v4/auth"
	"github.com/go-chi/chi/v5"
)

type RouterDeps struct {
	Cfg             config.Config
	AuthClient      *auth.Client
	ClubSvc         *club.Service
	ScheduleSvc     *schedule.Service
	CancellationSvc *cancellation.Service
	SessionSvc      *session.Service
	AttendanceSvc   *attendance.Service
	SweepSvc        *sweep.Service
	StatsSvc        *stats.Service
	PerformanceSvc  *performance.Service
	MembersSvc      *members.Service
	CatalogRepo     *catalog.Repo
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// Protected routes
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.AuthClient))

		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			WriteJSON(w, 200, map[string]any{
				"uid":   au.UID,
				"email": au.Email,
			})
		})

		// ===== Club routes =====
		pr.Post("/v1/clubs", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in club.CreateClubInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.ClubSvc.Create(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapClubError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/clubs", func(w http.ResponseWriter, r *http.Request) {
			limit := int64(20)
			if v := r.URL.Query().Get("limit"); v != "" {
				if n, err := strconv.ParseInt(v, 10, 64); err == nil {
					limit = n
				}
			}

			out, err := d.ClubSvc.Search(r.Context(), r.URL.Query().Get("q"), limit)
			if err != nil {
				status, msg := mapClubError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"clubs": out})
		})

		pr.Get("/v1/clubs/{clubId}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.ClubSvc.Get(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				status, msg := mapClubError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Weekly template =====
		pr.Get("/v1/clubs/{clubId}/template", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.ScheduleSvc.Get(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				status, msg := mapScheduleError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Put("/v1/clubs/{clubId}/template", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			clubID := chi.URLParam(r, "clubId")

			var in schedule.PutTemplateInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.ScheduleSvc.Put(r.Context(), au.UID, clubID, in)
			if err != nil {
				status, msg := mapScheduleError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Cancellations =====
		pr.Post("/v1/clubs/{clubId}/cancellations", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			clubID := chi.URLParam(r, "clubId")

			var in cancellation.CreateCancellationInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.CancellationSvc.AddSingle(r.Context(), au.UID, clubID, in)
			if err != nil {
				status, msg := mapCancellationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Post("/v1/clubs/{clubId}/cancellations/bulk", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			clubID := chi.URLParam(r, "clubId")

			var in cancellation.BulkCancelInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.CancellationSvc.AddBulkRange(r.Context(), au.UID, clubID, in)
			if err != nil {
				status, msg := mapCancellationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, map[string]any{"count": len(out), "cancellations": out})
		})

		pr.Delete("/v1/clubs/{clubId}/cancellations/{id}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			err := d.CancellationSvc.Remove(r.Context(), au.UID, chi.URLParam(r, "clubId"), chi.URLParam(r, "id"))
			if err != nil {
				status, msg := mapCancellationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		pr.Post("/v1/clubs/{clubId}/cancellations/remove-group", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			clubID := chi.URLParam(r, "clubId")

			var in cancellation.RemoveGroupInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			count, err := d.CancellationSvc.RemoveGroup(r.Context(), au.UID, clubID, in)
			if err != nil {
				status, msg := mapCancellationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"removed": count})
		})

		// ===== Calendar projection =====
		pr.Get("/v1/clubs/{clubId}/calendar", func(w http.ResponseWriter, r *http.Request) {
			clubID := chi.URLParam(r, "clubId")

			now := time.Now().UTC()
			year := now.Year()
			month := int(now.Month())
			if v := r.URL.Query().Get("year"); v != "" {
				if y, err := strconv.Atoi(v); err == nil {
					year = y
				}
			}
			if v := r.URL.Query().Get("month"); v != "" {
				if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
					month = m
				}
			}

			days, err := d.projectMonth(r.Context(), clubID, year, time.Month(month), now)
			if err != nil {
				status, msg := mapScheduleError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"year": year, "month": month, "days": days})
		})

		// ===== Session materialization =====
		pr.Post("/v1/clubs/{clubId}/sessions/ensure", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			clubID := chi.URLParam(r, "clubId")

			var in session.EnsureSessionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			// Template snapshot read now, for this action.
			tmpl, err := d.ScheduleSvc.Get(r.Context(), clubID)
			if err != nil {
				status, msg := mapScheduleError(err)
				Fail(w, status, msg)
				return
			}

			out, err := d.SessionSvc.EnsureSession(r.Context(), au.UID, clubID, in, tmpl, time.Now())
			if err != nil {
				status, msg := mapSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/clubs/{clubId}/sessions/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.SessionSvc.Get(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "sessionId"))
			if err != nil {
				status, msg := mapSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Attendance =====
		pr.Get("/v1/clubs/{clubId}/sessions/{sessionId}/attendance", func(w http.ResponseWriter, r *http.Request) {
			rows, err := d.AttendanceSvc.Roster(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "sessionId"))
			if err != nil {
				status, msg := mapAttendanceError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"roster": rows})
		})

		pr.Post("/v1/clubs/{clubId}/sessions/{sessionId}/attendance", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in attendance.BulkUpsertInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.AttendanceSvc.BulkUpsert(r.Context(), au.UID, chi.URLParam(r, "clubId"), chi.URLParam(r, "sessionId"), in)
			if err != nil {
				status, msg := mapAttendanceError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Delete("/v1/clubs/{clubId}/sessions/{sessionId}/attendance/{athleteId}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			err := d.AttendanceSvc.RemoveRecord(r.Context(), au.UID,
				chi.URLParam(r, "clubId"), chi.URLParam(r, "sessionId"), chi.URLParam(r, "athleteId"))
			if err != nil {
				status, msg := mapAttendanceError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		// ===== Maintenance sweep =====
		pr.Post("/v1/clubs/{clubId}/maintenance/sweep", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			out, err := d.SweepSvc.SweepOrphans(r.Context(), au.UID, chi.URLParam(r, "clubId"), time.Now())
			if err != nil {
				status, msg := mapSweepError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Stats =====
		pr.Get("/v1/clubs/{clubId}/stats", func(w http.ResponseWriter, r *http.Request) {
			start, end := statsRange(r)
			out, err := d.StatsSvc.ClubStats(r.Context(), chi.URLParam(r, "clubId"), start, end)
			if err != nil {
				status, msg := mapStatsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/clubs/{clubId}/athletes/{athleteId}/stats", func(w http.ResponseWriter, r *http.Request) {
			start, end := statsRange(r)
			out, err := d.StatsSvc.AthleteStats(r.Context(),
				chi.URLParam(r, "clubId"), chi.URLParam(r, "athleteId"), start, end)
			if err != nil {
				status, msg := mapStatsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Results / PB / goals =====
		pr.Post("/v1/clubs/{clubId}/athletes/{athleteId}/results", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in performance.ApplyResultInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.PerformanceSvc.ApplyResult(r.Context(), au.UID,
				chi.URLParam(r, "clubId"), chi.URLParam(r, "athleteId"), in)
			if err != nil {
				status, msg := mapPerformanceError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/clubs/{clubId}/athletes/{athleteId}/records/{categoryId}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.PerformanceSvc.GetRecord(r.Context(),
				chi.URLParam(r, "clubId"), chi.URLParam(r, "athleteId"), chi.URLParam(r, "categoryId"))
			if err != nil {
				status, msg := mapPerformanceError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/clubs/{clubId}/goals", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			clubID := chi.URLParam(r, "clubId")

			var in performance.CreateGoalInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.PerformanceSvc.CreateGoal(r.Context(), au.UID, clubID, in)
			if err != nil {
				status, msg := mapPerformanceError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/clubs/{clubId}/athletes/{athleteId}/goals", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.PerformanceSvc.ListGoals(r.Context(), chi.URLParam(r, "clubId"), chi.URLParam(r, "athleteId"))
			if err != nil {
				status, msg := mapPerformanceError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"goals": out})
		})

		// ===== Members =====
		pr.Get("/v1/clubs/{clubId}/members", func(w http.ResponseWriter, r *http.Request) {
			limit := 0
			if v := r.URL.Query().Get("limit"); v != "" {
				if n, err := strconv.Atoi(v); err == nil {
					limit = n
				}
			}

			out, err := d.MembersSvc.List(r.Context(), chi.URLParam(r, "clubId"), limit)
			if err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"members": out})
		})

		pr.Post("/v1/clubs/{clubId}/members", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in members.AddMemberInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			in.ClubID = chi.URLParam(r, "clubId")

			out, err := d.MembersSvc.Add(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Patch("/v1/clubs/{clubId}/members/{athleteId}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in members.UpdateMemberInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			in.ClubID = chi.URLParam(r, "clubId")
			in.AthleteID = chi.URLParam(r, "athleteId")

			out, err := d.MembersSvc.Update(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Delete("/v1/clubs/{clubId}/members/{athleteId}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			err := d.MembersSvc.Remove(r.Context(), au.UID, chi.URLParam(r, "clubId"), chi.URLParam(r, "athleteId"))
			if err != nil {
				status, msg := mapMembersError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		// ===== Catalog (read-only) =====
		pr.Get("/v1/programs/{programId}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.CatalogRepo.GetProgram(r.Context(), chi.URLParam(r, "programId"))
			if err != nil {
				status, msg := mapCatalogError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/categories/{categoryId}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.CatalogRepo.GetCategory(r.Context(), chi.URLParam(r, "categoryId"))
			if err != nil {
				status, msg := mapCatalogError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/categories", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.CatalogRepo.ListCategories(r.Context(), 0)
			if err != nil {
				status, msg := mapCatalogError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"categories": out})
		})
	})

	return r
}

// statsRange reads start/end query params, defaulting to the current calendar
// month.
func statsRange(r *http.Request) (string, string) {
	now := time.Now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := first.Format("2006-01-02")
	end := first.AddDate(0, 1, -1).Format("2006-01-02")

	if v := r.URL.Query().Get("start"); v != "" {
		if _, err := time.Parse("2006-01-02", v); err == nil {
			start = v
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		if _, err := time.Parse("2006-01-02", v); err == nil {
			end = v
		}
	}
	return start, end
}

// projectMonth assembles the read snapshot for one month grid and runs the
// pure projector over it. "Today" is computed once per call so every day in
// the grid is classified against the same date.
func (d RouterDeps) projectMonth(ctx context.Context, clubID string, year int, month time.Month, now time.Time) ([]calendar.Day, error) {
	start, end := calendar.MonthGridRange(year, month)
	startDate := start.Format("2006-01-02")
	endDate := end.Format("2006-01-02")

	tmpl, err := d.ScheduleSvc.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}

	cancellations, err := d.CancellationSvc.ListRange(ctx, clubID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	cancelled := make(map[string]bool, len(cancellations))
	for _, c := range cancellations {
		cancelled[c.Date] = true
	}

	sessions, err := d.SessionSvc.ListRange(ctx, clubID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	sessionInfos := make(map[string]calendar.SessionInfo, len(sessions))
	for _, s := range sessions {
		rows, err := d.AttendanceSvc.Roster(ctx, clubID, s.ID)
		if err != nil {
			return nil, err
		}
		info := calendar.SessionInfo{ID: s.ID}
		for _, row := range rows {
			if !row.Persisted {
				continue
			}
			info.AttendanceCount++
			if !row.IsRemoved {
				info.HasValidAttendance = true
			}
		}
		sessionInfos[s.Date] = info
	}

	return calendar.Project(calendar.ProjectionInput{
		Template:  tmpl,
		Cancelled: cancelled,
		Sessions:  sessionInfos,
		Start:     start,
		End:       end,
		Today:     now,
	}), nil
}
