package main

import (
	"github.com/spf13/cobra"

	"github.com/Karthikk7293/social-media-handler/usecase"
)

func newOverviewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show cross-platform totals and engagement trends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			view, err := usecase.NewDashboardUsecase(d).Overview(cmd.Context())
			if err != nil {
				return err
			}
			r := opts.renderer(cmd)
			if opts.json {
				return r.JSON(view)
			}
			return r.Overview(view)
		},
	}
}
