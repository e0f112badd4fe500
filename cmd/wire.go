package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/accounts"
	"github.com/rlucioni/courtbot/internal/application/usecases"
	"github.com/rlucioni/courtbot/internal/bot"
	"github.com/rlucioni/courtbot/internal/cooldown"
	"github.com/rlucioni/courtbot/internal/db"
	"github.com/rlucioni/courtbot/internal/domain/reservation"
	"github.com/rlucioni/courtbot/internal/infrastructure/crypto"
	"github.com/rlucioni/courtbot/internal/infrastructure/ols"
	"github.com/rlucioni/courtbot/internal/migrate"
	"github.com/rlucioni/courtbot/internal/observability"
	"github.com/rlucioni/courtbot/internal/slack"
)

// deps holds everything the commands share. close releases connections.
type deps struct {
	logger   *zap.Logger
	provider *ols.Client
	accounts accounts.Source
	cooldown cooldown.Cache
	embargo  *reservation.Embargo
	closers  []func()
}

func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func (d *deps) look() usecases.Look {
	return usecases.Look{Provider: d.provider}
}

func (d *deps) book() usecases.Book {
	return usecases.Book{Provider: d.provider, Accounts: d.accounts, Cooldown: d.cooldown, Logger: d.logger}
}

func (d *deps) bot() bot.Bot {
	return bot.Bot{Look: d.look(), Book: d.book(), Replier: slack.NewResponder(), Logger: d.logger}
}

func (d *deps) scheduledBook(n usecases.Notifier) usecases.ScheduledBook {
	return usecases.ScheduledBook{
		Look:     d.look(),
		Book:     d.book(),
		Accounts: d.accounts,
		Notifier: n,
		Embargo:  d.embargo,
		Logger:   d.logger.Named("schedule"),
	}
}

// wire builds the shared dependencies from cfg. Accounts come from the
// database when DATABASE_URL is set, otherwise from the environment lists.
func wire(ctx context.Context) (*deps, error) {
	d := &deps{logger: observability.GetLogger()}

	p, err := ols.New(cfg.BaseURL, ols.WithTimeout(cfg.HTTPTimeout), ols.WithLogger(d.logger.Named("ols")))
	if err != nil {
		return nil, err
	}
	d.provider = p

	if d.embargo, err = reservation.ParseEmbargo(cfg.EmbargoStart, cfg.EmbargoEnd); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL != "" {
		repo, closeDB, err := openAccountRepo(ctx)
		if err != nil {
			return nil, err
		}
		d.accounts = repo
		d.closers = append(d.closers, closeDB)
	} else {
		static, err := accounts.NewStatic(cfg.Usernames, cfg.Passwords)
		if err != nil {
			return nil, err
		}
		d.accounts = static
	}

	d.cooldown = cooldown.Nop{}
	if cfg.RedisAddr != "" {
		client := cooldown.Dial(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		d.cooldown = cooldown.NewRedis(client, cfg.KeyVersion, cfg.CooldownTTL)
		d.closers = append(d.closers, func() { _ = client.Close() })
	}
	return d, nil
}

// requireAccounts fails commands that book when no account source is set.
func requireAccounts() error {
	if !cfg.HasAccounts() {
		return fmt.Errorf("no booking accounts: set MIT_RECREATION_USERNAMES/MIT_RECREATION_PASSWORDS or DATABASE_URL")
	}
	return nil
}

func openAccountRepo(ctx context.Context) (*accounts.Repo, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required")
	}
	aead, err := crypto.New(cfg.CredEncKey)
	if err != nil {
		return nil, nil, err
	}
	d, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := d.Ping(ctx); err != nil {
		d.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}
	if err := migrate.Up(ctx, d, observability.GetLogger()); err != nil {
		d.Close()
		return nil, nil, err
	}
	return accounts.NewRepo(d, aead), d.Close, nil
}
