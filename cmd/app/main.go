package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dawnfield/StudyQuest_Go/internal/attendance"
	"github.com/dawnfield/StudyQuest_Go/internal/config"
	"github.com/dawnfield/StudyQuest_Go/internal/curriculum"
	"github.com/dawnfield/StudyQuest_Go/internal/database"
	"github.com/dawnfield/StudyQuest_Go/internal/database/postgres"
	"github.com/dawnfield/StudyQuest_Go/internal/handler"
	"github.com/dawnfield/StudyQuest_Go/internal/logger"
	"github.com/dawnfield/StudyQuest_Go/internal/server"
	"github.com/dawnfield/StudyQuest_Go/internal/task"
	"github.com/dawnfield/StudyQuest_Go/internal/user"
	"github.com/dawnfield/StudyQuest_Go/internal/worker"
	"github.com/dawnfield/StudyQuest_Go/internal/workspace"
	"github.com/dawnfield/StudyQuest_Go/internal/xp"
)

const (
	dbMaxConns      = 25
	dbMaxIdleTime   = 5 * time.Minute
	dbMaxLifetime   = 30 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := logger.Setup(cfg.LogDir, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logFile.Close()

	if err := database.Migrate(cfg.GetDBConnString()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	workspaceRepo := postgres.NewWorkspaceRepository(pool)
	attendanceRepo := postgres.NewAttendanceRepository(pool)
	curriculumRepo := postgres.NewCurriculumRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	// Services
	cache := workspace.NewCache(cfg.WorkspaceCacheSize, cfg.WorkspaceCacheTTL)
	xpService := xp.NewService(workspaceRepo, cache)
	userService := user.NewService(userRepo)
	workspaceService := workspace.NewService(workspaceRepo, userRepo, cache)
	attendanceService := attendance.NewService(workspaceRepo, attendanceRepo, xpService)
	curriculumService := curriculum.NewService(workspaceRepo, curriculumRepo, xpService)
	taskService := task.NewService(workspaceRepo, taskRepo, xpService)

	handler.InitValidator()

	// Background maintenance: daily stale-draft sweep
	workerPool := worker.NewPool(1, 4)
	workerPool.Start()
	defer workerPool.Stop()

	maintenance := worker.NewMaintenanceWorker(attendanceRepo, workerPool)
	maintenance.Start()
	defer maintenance.Stop()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool,
		userService, workspaceService, attendanceService, curriculumService, taskService)

	// Run until interrupted, then drain in-flight requests
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			log.Printf("Graceful shutdown failed: %v", err)
		}
	}
}
