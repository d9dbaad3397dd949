package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/daystatus-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/daystatus-backend-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/daystatus-backend-go/internal/service/dashboard"
	dayStatusService "github.com/cmlabs-hris/daystatus-backend-go/internal/service/daystatus"
	employeeService "github.com/cmlabs-hris/daystatus-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/daystatus-backend-go/internal/service/leave"
	reportService "github.com/cmlabs-hris/daystatus-backend-go/internal/service/report"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "daystatus-cmlabs"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	dayStatusRepo := postgresql.NewDayStatusRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	txManager := postgresql.NewTxManager(db)

	clock := calendar.SystemClock{}
	dayStatusMetrics := metrics.DayStatus()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	dayStatusSvc := dayStatusService.NewDayStatusService(
		dayStatusRepo,
		attendanceRepo,
		leaveRepo,
		employeeRepo,
		cfg.Policy.Holidays,
		clock,
		dayStatusMetrics,
	)
	reportSvc := reportService.NewReportService(
		dayStatusRepo,
		attendanceRepo,
		leaveRepo,
		employeeRepo,
		dayStatusSvc,
		cfg.Policy.Holidays,
		clock,
		dayStatusMetrics,
	)
	dashboardSvc := dashboardService.NewDashboardService(
		attendanceRepo,
		leaveRepo,
		employeeRepo,
		cfg.Policy.CountAbsentWhenNoData,
		cfg.Policy.MaxRangeDays,
	)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, attendanceRepo, employeeRepo, dayStatusSvc)
	leaveSvc := leaveService.NewLeaveService(txManager, leaveRepo, employeeRepo, dayStatusSvc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		DayStatus:  appHTTP.NewDayStatusHandler(dayStatusSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.App.AllowedOrigins,
	})

	scheduler := cron.NewScheduler(5 * time.Minute)
	cron.NewDayStatusJobs(employeeRepo, dayStatusSvc, clock, dayStatusMetrics, cfg.Policy.BackfillInterval).
		RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
