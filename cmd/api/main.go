package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"club-scheduler/backend/internal/config"
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
	"club-scheduler/backend/internal/firebase"
	apihttp "club-scheduler/backend/internal/http"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase app init failed: %v", err)
	}

	authClient, err := firebase.NewAuthClient(ctx, app)
	if err != nil {
		log.Fatalf("firebase auth client init failed: %v", err)
	}

	fs, err := firebase.NewFirestore(ctx, app)
	if err != nil {
		log.Fatalf("firestore init failed: %v", err)
	}
	defer fs.Close()

	// Repositories
	clubRepo := club.NewRepo(fs.Client)
	catalogRepo := catalog.NewRepo(fs.Client)
	membersRepo := members.NewRepo(fs.Client)
	scheduleRepo := schedule.NewRepo(fs.Client)
	cancellationRepo := cancellation.NewRepo(fs.Client)
	sessionRepo := session.NewRepo(fs.Client)
	attendanceRepo := attendance.NewRepo(fs.Client)
	performanceRepo := performance.NewRepo(fs.Client)

	// Services
	clubSvc := club.NewService(clubRepo)
	membersSvc := members.NewService(membersRepo, clubRepo)
	scheduleSvc := schedule.NewService(scheduleRepo, clubRepo)
	cancellationSvc := cancellation.NewService(cancellationRepo, scheduleRepo, clubRepo)
	sessionSvc := session.NewService(sessionRepo, clubRepo, catalogRepo)
	attendanceSvc := attendance.NewService(attendanceRepo, membersRepo, clubRepo)
	sweepSvc := sweep.NewService(sessionRepo, attendanceRepo, membersRepo, clubRepo)
	statsSvc := stats.NewService(sessionRepo, attendanceRepo, membersRepo)
	performanceSvc := performance.NewService(performanceRepo, performanceRepo, catalogRepo, clubRepo)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:             cfg,
		AuthClient:      authClient,
		ClubSvc:         clubSvc,
		ScheduleSvc:     scheduleSvc,
		CancellationSvc: cancellationSvc,
		SessionSvc:      sessionSvc,
		AttendanceSvc:   attendanceSvc,
		SweepSvc:        sweepSvc,
		StatsSvc:        statsSvc,
		PerformanceSvc:  performanceSvc,
		MembersSvc:      membersSvc,
		CatalogRepo:     catalogRepo,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		log.Printf("API listening on :%s (project=%s)", cfg.Port, cfg.ProjectID)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("shutting down...")
	_ = srv.Shutdown(ctxShutdown)
}
