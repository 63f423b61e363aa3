package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/citefix/citefix-cli/internal/api"
	"github.com/citefix/citefix-cli/internal/notify"
	"github.com/citefix/citefix-cli/internal/observability/tracing"
	"github.com/citefix/citefix-cli/internal/session"
	"github.com/citefix/citefix-cli/pkg/config"
)

// app carries the wired services every command handler uses. The session
// manager is the single injected session service; handlers never build
// session state of their own.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	client   *api.Client
	session  *session.Manager
	notifier notify.Notifier
	out      io.Writer
}

func newApp(ctx context.Context) (*app, func(context.Context) error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg)

	shutdown, err := tracing.Init(ctx, log, "citefix-cli", cfg.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("init tracing: %w", err)
	}

	notifier := &notify.Console{Out: os.Stderr}
	store := session.NewStore(cfg.StateDir)

	// The client's token source reads the manager, which in turn calls the
	// client; the closure breaks the construction cycle.
	var mgr *session.Manager
	client := api.New(*cfg, func() string {
		if mgr == nil {
			return ""
		}
		return mgr.Token()
	}, log)
	mgr = session.NewManager(client, store, notifier, log)

	return &app{
		cfg:      cfg,
		log:      log,
		client:   client,
		session:  mgr,
		notifier: notifier,
		out:      os.Stdout,
	}, shutdown, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.Environment == "production",
	}
	return zerolog.New(output).With().Timestamp().Logger().Level(level)
}

var (
	errLoginRequired = errors.New("Vous devez être connecté pour effectuer cette action")
	errAdminRequired = errors.New("Accès réservé aux administrateurs")
)

// requireUser resolves the session and insists on an authenticated user.
// Nothing privileged runs before Initialize has settled the state.
func (a *app) requireUser(ctx context.Context) error {
	if err := a.session.Initialize(ctx); err != nil {
		return err
	}
	if !a.session.IsLoggedIn() {
		a.notifier.Error("Authentification requise", errLoginRequired.Error())
		return errLoginRequired
	}
	return nil
}

// requireAdmin additionally insists on the admin role.
func (a *app) requireAdmin(ctx context.Context) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	if !a.session.IsAdmin() {
		a.notifier.Error("Accès refusé", errAdminRequired.Error())
		return errAdminRequired
	}
	return nil
}
