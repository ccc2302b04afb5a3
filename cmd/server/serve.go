package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yukikurage/task-assignment-api/internal/config"
	"github.com/yukikurage/task-assignment-api/internal/database"
	"github.com/yukikurage/task-assignment-api/internal/handlers"
	"github.com/yukikurage/task-assignment-api/internal/logger"
	"github.com/yukikurage/task-assignment-api/internal/middleware"
	"github.com/yukikurage/task-assignment-api/internal/repository"
	"github.com/yukikurage/task-assignment-api/internal/services"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	gin.SetMode(cfg.Server.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get database handle", "error", err)
	}
	defer sqlDB.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           newRouter(cfg, db, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("received interruption signal, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("error during server shutdown", "error", err, "address", srv.Addr)
		return err
	}

	log.Info("shutdown complete")
	return nil
}

// newRouter wires repositories, services and handlers into a gin engine
func newRouter(cfg *config.Config, db *gorm.DB, log *logger.Logger) *gin.Engine {
	store := repository.NewStore(db)

	taskHandler := handlers.NewTaskHandler(services.NewTaskService(store), log)
	userHandler := handlers.NewUserHandler(services.NewUserService(store), log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.NewLogging(log).Handle)
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	handlers.RegisterRoutes(r, taskHandler, userHandler)

	return r
}
