package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"infovet/internal/adapters/auth/remote"
	blobs3 "infovet/internal/adapters/blob/s3"
	pg "infovet/internal/adapters/storage/postgres"
	"infovet/internal/config"
	"infovet/internal/platform/logger"
	"infovet/internal/ports/auth"
	"infovet/internal/ports/blob"
	"infovet/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	opts := router.Options{
		MockLatency: cfg.MockLatency,
		Log:         appLog,
	}

	if cfg.DatabaseDSN != "" {
		db, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		if err := pg.Migrate(context.Background(), db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		opts.DB = db
		appLog.Info("storage mode", map[string]any{"mode": "postgres"})
	} else {
		appLog.Info("storage mode", map[string]any{"mode": "memory", "mock_latency": cfg.MockLatency.String()})
	}

	if cfg.AuthVerifyURL != "" {
		client, err := remote.NewClient(remote.Config{
			BaseURL: cfg.AuthVerifyURL,
			APIKey:  cfg.AuthAPIKey,
		})
		if err != nil {
			log.Fatalf("auth client: %v", err)
		}
		opts.Verifier = auth.Verifier(remote.NewVerifier(client))
	}

	opts.Photos = openBlobStore(cfg, appLog)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	appLog.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func openBlobStore(cfg config.Config, appLog logger.Logger) blob.Store {
	if !strings.EqualFold(cfg.BlobDriver, "s3") {
		return nil // el router cae al store en memoria
	}

	store, err := blobs3.New(context.Background(), blobs3.Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		PathStyle: cfg.S3PathStyle,
	})
	if err != nil {
		log.Fatalf("blob s3: %v", err)
	}
	appLog.Info("photo storage", map[string]any{"driver": "s3", "bucket": cfg.S3Bucket})
	return store
}
