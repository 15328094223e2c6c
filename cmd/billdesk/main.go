package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mjfashion/billdesk/internal/auth"
	"github.com/mjfashion/billdesk/internal/cache"
	"github.com/mjfashion/billdesk/internal/config"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/httpclient"
	"github.com/mjfashion/billdesk/internal/logger"
	"github.com/mjfashion/billdesk/internal/pdf"
	"github.com/mjfashion/billdesk/internal/repository"
	"github.com/mjfashion/billdesk/internal/service"
	"github.com/mjfashion/billdesk/internal/types"
	"github.com/mjfashion/billdesk/internal/validator"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

// app holds the services a command works with
type app struct {
	Config      *config.Configuration
	Logger      *logger.Logger
	BillService service.BillService
	AuthService service.AuthService
}

func newApp() (*app, error) {
	var a app

	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache and session
			cache.NewInMemoryCache,
			auth.NewSessionStore,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Repositories
			repository.NewBillRepository,
			repository.NewAuthRepository,

			// PDF
			pdf.NewGenerator,
		),
		fx.Provide(
			service.NewServiceParams,
			service.NewBillService,
			service.NewAuthService,
		),
		fx.Populate(
			&a.Config,
			&a.Logger,
			&a.BillService,
			&a.AuthService,
		),
	)
	if err := fxApp.Err(); err != nil {
		return nil, err
	}
	return &a, nil
}

// action wraps a command so that it runs with the wired services and a request id
func action(fn func(ctx context.Context, c *cli.Context, a *app) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := newApp()
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to start: %v", err), 1)
		}
		defer func() { _ = a.Logger.Sync() }()

		ctx := types.SetRequestID(c.Context, types.GenerateUUID())
		if err := fn(ctx, c, a); err != nil {
			a.Logger.Debugw("command failed", "command", c.Command.Name, "error", err)
			return cli.Exit(describeError(err), 1)
		}
		return nil
	}
}

// describeError prefers the operator facing hint over the internal message
func describeError(err error) string {
	if hint := ierr.GetHint(err); hint != "" {
		return "error: " + hint
	}
	return "error: " + err.Error()
}

func init() {
	// bill dates are calendar dates; keep them independent of the host zone
	time.Local = time.UTC
}

func main() {
	cliApp := &cli.App{
		Name:                      "billdesk",
		Usage:                     "create, edit, search and print shop bills",
		DisableSliceFlagSeparator: true,
		Commands:                  commands(),
	}

	if err := cliApp.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
