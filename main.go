package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablero/internal/app"
	"tablero/internal/config"
	"tablero/internal/database"
	"tablero/internal/logging"
	"tablero/internal/server"
	"tablero/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logging.Init(slog.LevelInfo)

	if err := run(*configPath); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := database.NewRepository(db)
	container := app.New(repo, []byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLMinutes)*time.Minute)

	avatars, uploadsDir, err := buildAvatarStore(ctx, cfg)
	if err != nil {
		return err
	}

	srv := server.NewServer(server.Options{
		Auth:       container.AuthService,
		Cards:      container.CardService,
		Columns:    container.ColumnService,
		Users:      container.UserService,
		Avatars:    avatars,
		UploadsDir: uploadsDir,
	})

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// buildAvatarStore picks S3 when a bucket is configured, local disk otherwise
func buildAvatarStore(ctx context.Context, cfg *config.Config) (storage.Store, string, error) {
	if cfg.S3.Bucket != "" {
		store, err := storage.NewS3Store(ctx, storage.S3Options{
			Bucket:        cfg.S3.Bucket,
			Region:        cfg.S3.Region,
			Endpoint:      cfg.S3.Endpoint,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
		return store, "", err
	}

	store, err := storage.NewDiskStore(cfg.UploadsDir)
	return store, cfg.UploadsDir, err
}
