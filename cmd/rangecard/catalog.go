package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rangecard/backend/internal/ballistics"
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the cartridges solutions can be computed for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.catalog.List(cmd.Context())
			if err != nil {
				return err
			}

			g := a.cfg.Solver().Gravity
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCALIBER\tLOAD\tV0 (m/s)\tMAX RANGE (m)")
			for _, c := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s %s\t%g\t%.0f\n",
					c.ID, c.Caliber, c.Brand, c.Line, c.MuzzleVelocity,
					ballistics.MaxRange(c.MuzzleVelocity, g))
			}
			return tw.Flush()
		},
	}
}
