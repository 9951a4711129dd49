package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rangecard/backend/internal/cartridges"
	"github.com/rangecard/backend/internal/config"
)

// exitCode ends the process with a status after the command has already
// reported the problem to the user.
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

type app struct {
	cfg     *config.Config
	catalog cartridges.Store
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "rangecard",
		Short:         "No-drag firing solutions for catalog cartridges",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().Float64Var(&a.cfg.Gravity, "gravity", a.cfg.Gravity, "gravitational acceleration in m/s²")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.cfg.Validate()
	}

	root.AddCommand(
		newFireCmd(a),
		newSolveCmd(a),
		newBatchCmd(a),
		newCatalogCmd(a),
	)
	return root
}
