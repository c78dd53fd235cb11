package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/itchan-dev/bbs/backend/internal/handler"
	"github.com/itchan-dev/bbs/backend/internal/notify"
	"github.com/itchan-dev/bbs/backend/internal/service"
	"github.com/itchan-dev/bbs/backend/internal/storage/pg"
	"github.com/itchan-dev/bbs/backend/internal/storage/sqlite"
	"github.com/itchan-dev/bbs/shared/config"
	"github.com/itchan-dev/bbs/shared/markdown"
	"github.com/itchan-dev/bbs/shared/middleware/ratelimiter"
)

// Storage is everything the services and probes need from a backend.
type Storage interface {
	service.BoardStorage
	service.CommentStorage
	service.CommentReader
	service.AlertStorage
	notify.AlertSource
	Ping(ctx context.Context) error
	Cleanup() error
}

var (
	_ Storage = (*pg.Storage)(nil)
	_ Storage = (*sqlite.Storage)(nil)
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config       *config.Config
	Storage      Storage
	Notifier     *notify.Notifier
	Handler      *handler.Handler
	WriteLimiter *ratelimiter.UserRateLimiter
}

// SetupDependencies initializes all dependencies required for the application.
// The notifier is created but not started.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := NewStorage(cfg)
	if err != nil {
		return nil, err
	}

	matcher := notify.NewScanMatcher(storage, cfg.Public.Notify.MatchTimeout)
	notifier := notify.NewNotifier(matcher, notify.LogDeliverer{}, notify.Options{
		Workers:      cfg.Public.Notify.Workers,
		QueueSize:    cfg.Public.Notify.QueueSize,
		CheckTimeout: cfg.Public.Notify.CheckTimeout,
	})

	board := service.NewBoard(storage, storage, notifier, cfg.Public.BcryptCost)
	comment := service.NewComment(storage, storage, notifier)
	alert := service.NewAlert(storage, cfg.Public.Notify.MatchTimeout)

	h := handler.New(board, comment, alert, markdown.New(), storage, cfg)

	return &Dependencies{
		Config:       cfg,
		Storage:      storage,
		Notifier:     notifier,
		Handler:      h,
		WriteLimiter: ratelimiter.New(cfg.Public.RateLimit.WritesPerSecond, cfg.Public.RateLimit.Burst, time.Hour),
	}, nil
}

// NewStorage opens the backend selected by cfg.Public.Storage.Driver.
func NewStorage(cfg *config.Config) (Storage, error) {
	switch cfg.Public.Storage.Driver {
	case "postgres":
		s, err := pg.New(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		s, err := sqlite.New(cfg.Public.Storage.SqlitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Public.Storage.Driver)
	}
}
