package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var errInvalidFixture = errors.New("fixture is invalid")

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that a fixture loads into a consistent dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := opts.renderer(cmd)
			d, err := opts.load(cmd.Context())
			if err != nil {
				r.ValidationFailure(err)
				return errInvalidFixture
			}
			r.Valid(len(d.Identities()), len(d.Periods()), d.LatestPeriod())
			return nil
		},
	}
}
