package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/auth"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/config"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/db"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/logging"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/media"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()
	store, err := db.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("db connect failed")
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		logging.Fatal().Err(err).Msg("db migrate failed")
	}

	mediaClient, err := media.New(ctx, media.Config{
		Bucket:          cfg.Media.Bucket,
		Region:          cfg.Media.Region,
		Endpoint:        cfg.Media.Endpoint,
		AccessKeyID:     cfg.Media.AccessKeyID,
		SecretAccessKey: cfg.Media.SecretAccessKey,
		PublicURL:       cfg.Media.PublicURL,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("media client init failed")
	}

	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("token manager init failed")
	}

	handler, err := newRouter(deps{
		cfg:         cfg,
		store:       store,
		media:       mediaClient,
		urls:        mediaClient.URLs(),
		tokens:      tokens,
		credentials: auth.NewCredentials(cfg.AdminEmail, cfg.AdminPassword),
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("router init failed")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("shutdown error")
	}
	logging.Info().Msg("server stopped")
}
