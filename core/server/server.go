package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-events-api/core/cache"
	"campus-events-api/core/config"
	"campus-events-api/core/database"
	"campus-events-api/core/logger"
	"campus-events-api/core/middleware"
	"campus-events-api/core/storage"
	"campus-events-api/core/tasks"
	"campus-events-api/modules/auth"
	"campus-events-api/modules/chat"
	"campus-events-api/modules/event"
	"campus-events-api/modules/friend"
	"campus-events-api/modules/newsletter"
	"campus-events-api/modules/notification"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run wires every subsystem and blocks until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	cacheClient, err := cache.Init(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	store := storage.Init(cfg.S3)
	taskClient := tasks.InitClient(cfg.Redis)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	mw := middleware.New(cacheClient)
	e.Use(mw.RequestLogger())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Modules
	notifSvc := notification.Init(e, db, mw)
	authModule := auth.Init(e, db, mw, cacheClient, store)
	eventModule := event.Init(e, db, mw, store, taskClient)
	friend.Init(e, db, mw, notifSvc, authModule.Repository)
	chat.Init(e, db, mw, eventModule.AttendanceRepo, authModule.Repository)
	newsletterModule := newsletter.Init(e, db, mw, eventModule.Repository)

	// Background workers
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEventReminder,
		notification.NewReminderHandler(notifSvc, eventModule.Repository, eventModule.AttendanceRepo).ProcessTask)
	mux.HandleFunc(tasks.TypeNewsletterDigest, newsletterModule.DigestHandler.ProcessTask)

	go func() {
		if err := tasks.RunServer(cfg.Redis, mux); err != nil {
			logger.Error("Server:TaskWorker:Error:", err)
		}
	}()
	go func() {
		if err := tasks.RunScheduler(cfg.Redis); err != nil {
			logger.Error("Server:TaskScheduler:Error:", err)
		}
	}()

	// Serve
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error:", err)
		}
	}()
	logger.Info("Server started", "port", cfg.Server.Port, "env", cfg.Server.Environment)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	_ = taskClient.Close()
	_ = cacheClient.Close()
	return nil
}
