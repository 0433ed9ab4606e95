package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Karthikk7293/social-media-handler/domain/model"
	"github.com/Karthikk7293/social-media-handler/infrastructure/persistence"
	"github.com/Karthikk7293/social-media-handler/interfaces/cli"
	"github.com/Karthikk7293/social-media-handler/usecase"
)

type options struct {
	fixture  string
	json     bool
	noColour bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "dashboardctl",
		Short: "Inspect the social media analytics dashboard",
		Long: `dashboardctl loads a dashboard snapshot fixture (JSON or YAML) and prints
the same figures the HTTP API serves.

Example usage:
  dashboardctl overview                          # Cards and engagement trends
  dashboardctl platform youtube                  # One platform's breakdown
  dashboardctl validate --fixture data/new.yaml  # Check a fixture before deploying`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.fixture, "fixture", "f", "data/dashboard.json", "snapshot fixture (.json, .yaml or .yml)")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "output as JSON")
	root.PersistentFlags().BoolVar(&opts.noColour, "no-color", false, "disable coloured output")

	root.AddCommand(newOverviewCmd(opts), newPlatformCmd(opts), newValidateCmd(opts), newExportCmd(opts))
	return root
}

func (o *options) renderer(cmd *cobra.Command) *cli.Renderer {
	_, noColorEnv := os.LookupEnv("NO_COLOR")
	return cli.NewRenderer(cmd.OutOrStdout(), !o.noColour && !o.json && !noColorEnv)
}

func (o *options) load(ctx context.Context) (*model.Dashboard, error) {
	return usecase.LoadDashboard(ctx, persistence.NewFileDashboardSource(o.fixture))
}
