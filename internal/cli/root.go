package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cleaning-console/internal/apiclient"
	"cleaning-console/internal/repositories"
	"cleaning-console/internal/services"
	"cleaning-console/pkg/config"
	applogger "cleaning-console/pkg/logger"
)

// ErrDenied is returned by `can` when the gate does not grant the requested codes.
var ErrDenied = errors.New("permission denied")

// App holds what every command needs. Fields left nil are built from the environment.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Storage    repositories.StorageRepositoryInterface
	ClientOpts []apiclient.Option
	Out        io.Writer
	ErrOut     io.Writer

	session      *services.SessionContext
	closeStorage func() error
}

// NewRootCmd builds the consolectl command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "consolectl",
		Short: "Session and permission client for the cleaning services console",
		Long: `consolectl signs in to the console backend, keeps the session between
invocations and answers permission checks from the cached permission set.

Examples:
  consolectl login --username qlv1 --password secret
  consolectl can ASSIGNMENT_VIEW
  consolectl permissions --refresh`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newPermissionsCmd(app),
		newCanCmd(app),
	)
	return root
}

// ExecuteContext runs consolectl against the real environment.
func ExecuteContext(ctx context.Context) error {
	app := &App{}
	defer func() { _ = app.close() }()
	return NewRootCmd(app).ExecuteContext(ctx)
}

func (a *App) init(ctx context.Context) error {
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.ErrOut == nil {
		a.ErrOut = os.Stderr
	}
	if a.Config == nil {
		a.Config = config.New()
	}
	if a.Logger == nil {
		a.Logger = applogger.NewLogger(a.Config.Log.Level)
	}
	if a.Storage == nil {
		storage, closeFn, err := repositories.NewStorageRepository(ctx, a.Config, a.Logger)
		if err != nil {
			return fmt.Errorf("failed to open session storage: %w", err)
		}
		a.Storage = storage
		a.closeStorage = closeFn
	}

	navigator := services.NavigatorFunc(func(path string) {
		fmt.Fprintf(a.ErrOut, "session expired, sign in again: consolectl login (%s)\n", path)
	})
	a.session = services.NewSessionContext(a.Config.API, a.Storage, navigator, a.Logger, a.ClientOpts...)
	return nil
}

func (a *App) close() error {
	if a.closeStorage == nil {
		return nil
	}
	closeFn := a.closeStorage
	a.closeStorage = nil
	return closeFn()
}
