package main

import (
	"github.com/spf13/cobra"

	"github.com/Karthikk7293/social-media-handler/infrastructure/filecsv"
	"github.com/Karthikk7293/social-media-handler/usecase"
)

func newExportCmd(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the engagement series as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			chart := usecase.NewDashboardUsecase(d).Chart(cmd.Context())

			if out != "" {
				return filecsv.ExportEngagement(out, chart)
			}
			return filecsv.WriteEngagement(cmd.OutOrStdout(), chart)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}
