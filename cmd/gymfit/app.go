package main

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/gymfit-client/internal/api/rest"
	"github.com/dtroode/gymfit-client/internal/config"
	"github.com/dtroode/gymfit-client/internal/logger"
	"github.com/dtroode/gymfit-client/internal/media"
	"github.com/dtroode/gymfit-client/internal/metrics"
	"github.com/dtroode/gymfit-client/internal/model"
	"github.com/dtroode/gymfit-client/internal/notify"
	"github.com/dtroode/gymfit-client/internal/photo"
	"github.com/dtroode/gymfit-client/internal/repository/sqlite"
	"github.com/dtroode/gymfit-client/internal/service"
	"github.com/dtroode/gymfit-client/internal/session"
	storage "github.com/dtroode/gymfit-client/internal/storage/minio"
	"github.com/dtroode/gymfit-client/internal/token"
)

// app holds everything one command invocation needs.
type app struct {
	cfg       *config.Config
	logger    *logger.Logger
	db        *sqlite.Connection
	store     *session.Store
	client    *rest.Client
	inspector *media.Router
	notifier  model.Notifier
	metrics   *metrics.Pipeline
	auth      *service.Auth
}

func newApp(ctx context.Context, cfg *config.Config, out io.Writer) (*app, error) {
	log := logger.New(cfg.LogLevel)

	db, err := sqlite.NewConnection(ctx, cfg.Session.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session storage: %w", err)
	}

	store := session.NewStore(sqlite.NewSessionRepository(db), log)
	if _, err := store.Restore(ctx); err != nil {
		log.Warn("failed to restore session", "error", err)
	}

	inspector := media.NewRouter(media.NewLocalInspector())
	if cfg.Storage.Enabled {
		gallery, err := newGallery(ctx, cfg.Storage)
		if err != nil {
			db.Close()
			return nil, err
		}
		inspector.Handle(storage.Scheme, gallery)
	}

	pipeline := metrics.NewPipeline()
	notifier := notify.Fanout{notify.NewConsole(out), notify.NewLog(log)}
	client := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout, store, log.With("component", "api"))

	return &app{
		cfg:       cfg,
		logger:    log,
		db:        db,
		store:     store,
		client:    client,
		inspector: inspector,
		notifier:  notifier,
		metrics:   pipeline,
		auth:      service.NewAuth(client, store, token.NewInspector(), notifier, pipeline, log.With("component", "auth")),
	}, nil
}

// profile builds the coordinator for one profile screen, picking photos with picker.
func (a *app) profile(picker model.MediaPicker) *service.Profile {
	acquirer := photo.NewAcquirer(picker, a.inspector, a.cfg.Photo.MaxBytes, a.logger)
	return service.NewProfile(a.client, a.store, acquirer, a.inspector, a.cfg.Photo.MaxBytes, a.notifier, a.metrics, a.logger.With("component", "profile"))
}

func (a *app) Close() error {
	if a.cfg.Metrics.File != "" {
		if err := a.metrics.WriteFile(a.cfg.Metrics.File); err != nil {
			a.logger.Error("failed to export metrics", "error", err)
		}
	}
	return a.db.Close()
}

func newGallery(ctx context.Context, cfg config.Storage) (*storage.Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	gallery, err := storage.NewClient(ctx, mc, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gallery client: %w", err)
	}
	return gallery, nil
}
