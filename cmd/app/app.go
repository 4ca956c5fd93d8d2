package app

import (
	"context"
	"fmt"

	"github.com/academic-events/eventhub/internal/adapters/config"
	"github.com/academic-events/eventhub/internal/adapters/controller/scheduler"
	"github.com/academic-events/eventhub/internal/adapters/database/storage"
	"github.com/academic-events/eventhub/internal/domain/service"
	"github.com/academic-events/eventhub/pkg/logger"
	"github.com/academic-events/eventhub/pkg/logger/types"
	"github.com/academic-events/eventhub/pkg/smtp"
)

// App is the host process of one profile: the manager the UI calls and the
// reminder scheduler.
type App struct {
	Manager   *service.Manager
	Scheduler *scheduler.ReminderScheduler
	Logger    *types.Logger

	cfg *config.Config
}

func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.Named("app")
	if err != nil {
		return nil, err
	}
	managerLogger, err := logger.Named("manager")
	if err != nil {
		return nil, err
	}
	schedulerLogger, err := logger.Named("reminders")
	if err != nil {
		return nil, err
	}

	opts := []service.Option{service.WithQRGenerator(cfg.QR)}
	if cfg.SMTP != nil {
		smtpLogger, errNamed := logger.Named("smtp")
		if errNamed != nil {
			return nil, errNamed
		}
		opts = append(opts, service.WithMailer(
			smtp.NewClient(cfg.SMTP.Dialer, cfg.SMTP.From, cfg.SMTP.Domain, smtpLogger),
		))
	}

	manager := service.NewManager(managerLogger, storage.New(cfg.KV), cfg.Manager, opts...)

	return &App{
		Manager:   manager,
		Scheduler: scheduler.NewReminderScheduler(schedulerLogger, manager, cfg.ReminderInterval),
		Logger:    appLogger,
		cfg:       cfg,
	}, nil
}

// Start bootstraps the profile and starts the reminder scheduler. The
// scheduler stops when ctx is done.
func (a *App) Start(ctx context.Context) error {
	if err := a.Manager.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap profile %q: %w", a.cfg.Profile, err)
	}
	a.Logger.Infof("Profile %q ready (driver=%s)", a.cfg.Profile, a.cfg.Driver)
	a.Scheduler.Start(ctx)
	return nil
}

// Close releases the storage connections.
func (a *App) Close() {
	if a.cfg.Redis != nil {
		if err := a.cfg.Redis.Close(); err != nil {
			a.Logger.Errorf("failed to close redis: %v", err)
		}
	}
	if a.cfg.Database != nil {
		if sqlDB, err := a.cfg.Database.DB(); err == nil {
			if err = sqlDB.Close(); err != nil {
				a.Logger.Errorf("failed to close database: %v", err)
			}
		}
	}
	a.Logger.Info("Stopped")
}
