package main

import (
	"github.com/spf13/cobra"

	"github.com/Karthikk7293/social-media-handler/usecase"
)

func newPlatformCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "platform <id>",
		Aliases: []string{"p"},
		Short:   "Show one platform's summary and engagement series",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			view, err := usecase.NewDashboardUsecase(d).PlatformView(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			r := opts.renderer(cmd)
			if opts.json {
				return r.JSON(view)
			}
			return r.Platform(view)
		},
	}
}
