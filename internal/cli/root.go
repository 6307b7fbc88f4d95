// Package cli implements the fittrackctl operator commands.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/config"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/persistence"
)

// App holds the configuration and factories shared by the commands.
type App struct {
	Config     config.Config
	Now        func() time.Time
	OpenStores func(ctx context.Context, cfg config.Config) (*persistence.Stores, error)
}

// NewApp returns an App wired to the real store drivers.
func NewApp(cfg config.Config) *App {
	return &App{Config: cfg, Now: time.Now, OpenStores: persistence.Open}
}

// NewRootCmd creates the top-level "fittrackctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "fittrackctl",
		Short:         "Operator tooling for the fitness tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(app),
		newSeedCmd(app),
		newTokenCmd(app),
	)

	return root
}
