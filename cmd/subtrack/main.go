package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/subtrack/api"
	"github.com/dmitrymomot/subtrack/notifier"
	"github.com/dmitrymomot/subtrack/pkg/config"
	"github.com/dmitrymomot/subtrack/pkg/email"
	"github.com/dmitrymomot/subtrack/pkg/httpserver"
	"github.com/dmitrymomot/subtrack/pkg/logger"
	"github.com/dmitrymomot/subtrack/pkg/schedule"
	"github.com/dmitrymomot/subtrack/storage"
	"github.com/dmitrymomot/subtrack/subscription"
)

type serverConfig struct {
	Addr string `env:"SERVER_ADDR" envDefault:":8080"`
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run owns the process lifecycle. It returns instead of exiting so deferred
// cleanup (the storage pool in particular) always executes.
func run() error {
	var (
		srvCfg   serverConfig
		logCfg   logger.Config
		storCfg  storage.Config
		mailCfg  email.Config
		checkCfg notifier.Config
	)
	config.MustLoad(&srvCfg)
	config.MustLoad(&logCfg)
	config.MustLoad(&storCfg)
	config.MustLoad(&mailCfg)
	config.MustLoad(&checkCfg)

	log := logger.NewFromConfig(logCfg, logger.WithAttr(slog.String("service", "subtrack")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := newStore(ctx, storCfg, log)
	if err != nil {
		log.Error("failed to initialize storage", slog.String("error", err.Error()))
		return err
	}
	defer closeStore()

	svc := subscription.NewService(store)

	if checkCfg.ReceiverEmail == "" {
		log.Warn("RECEIVER_EMAIL not set, expiry notifications disabled")
	} else {
		sender, err := newSender(mailCfg, log)
		if err != nil {
			log.Error("failed to initialize email transport", slog.String("error", err.Error()))
			return err
		}

		opts := []notifier.Option{
			notifier.WithSchedule(schedule.DailyAt(checkCfg.CheckHour, checkCfg.CheckMinute)),
			notifier.WithSendTimeout(checkCfg.SendTimeout),
			notifier.WithLogger(log),
		}
		if checkCfg.StartupProbe {
			opts = append(opts, notifier.WithStartupProbe())
		}
		checker := notifier.New(store, sender, checkCfg.ReceiverEmail, opts...)

		go func() {
			if err := checker.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("expiry checker exited", slog.String("error", err.Error()))
			}
		}()
	}

	srv := httpserver.New(
		httpserver.WithAddr(srvCfg.Addr),
		httpserver.WithLogger(log),
	)
	if err := srv.Run(ctx, api.Router(svc, log)); err != nil {
		log.Error("http server exited", slog.String("error", err.Error()))
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// newStore picks the backend: Postgres when a connection URL is configured,
// the JSON file store otherwise.
func newStore(ctx context.Context, cfg storage.Config, log *slog.Logger) (subscription.Store, func(), error) {
	if cfg.PostgresURL != "" {
		pool, err := storage.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("using postgres storage")
		return store, pool.Close, nil
	}

	store, err := storage.NewFile(cfg.Dir)
	if err != nil {
		return nil, nil, err
	}
	log.Info("using file storage", slog.String("dir", cfg.Dir))
	return store, func() {}, nil
}

// newSender picks the email transport: Postmark when a server token is
// configured, SMTP when a host is, and the file-writing dev sender otherwise.
func newSender(cfg email.Config, log *slog.Logger) (email.Sender, error) {
	switch {
	case cfg.PostmarkServerToken != "":
		log.Info("using postmark email transport")
		return email.NewPostmarkSender(cfg)
	case cfg.SMTPHost != "":
		log.Info("using smtp email transport", slog.String("host", cfg.SMTPHost))
		return email.NewSMTPSender(cfg)
	default:
		log.Warn("no email transport configured, writing notifications to disk",
			slog.String("dir", cfg.DevOutputDir))
		return email.NewDevSender(cfg.DevOutputDir), nil
	}
}
