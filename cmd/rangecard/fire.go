package main

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rangecard/backend/internal/ballistics"
	"github.com/rangecard/backend/internal/report"
)

func newFireCmd(a *app) *cobra.Command {
	var plot bool
	cmd := &cobra.Command{
		Use:   "fire",
		Short: "Pick a cartridge and a distance, then write the trajectory and fact record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fire(cmd, plot)
		},
	}
	cmd.Flags().BoolVar(&plot, "plot", false, "also render the trajectory to "+a.cfg.TrajectoryPlotPath)
	return cmd
}

func (a *app) fire(cmd *cobra.Command, plot bool) error {
	list, err := a.catalog.List(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Select a cartridge:")
	for i, c := range list {
		fmt.Fprintf(a.out, "  %d) %s  (v0 = %g m/s)\n", i+1, c.Caliber, c.MuzzleVelocity)
	}

	in := bufio.NewReader(a.in)

	fmt.Fprint(a.out, "Enter choice number: ")
	var choice int
	if _, err := fmt.Fscan(in, &choice); err != nil || choice < 1 || choice > len(list) {
		fmt.Fprintln(a.errOut, "Invalid choice.")
		return exitCode(1)
	}
	c := list[choice-1]

	fmt.Fprint(a.out, "Enter target distance in meters (horizontal): ")
	var rangeM float64
	if _, err := fmt.Fscan(in, &rangeM); err != nil || !(rangeM > 0) {
		fmt.Fprintln(a.errOut, "Range must be positive.")
		return exitCode(1)
	}

	settings := a.cfg.Solver()
	sol := ballistics.SolveLowAngle(c.MuzzleVelocity, rangeM, settings.Gravity)
	fact := report.NewFact(c, rangeM, sol)

	angle, ok := sol.Angle()
	if !ok {
		fmt.Fprintln(a.errOut, "No physically valid low-angle solution for this cartridge and range.")
		if err := report.WriteFactsFile(a.cfg.SolutionFactsPath, fact); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Solution written to %s\n", a.cfg.SolutionFactsPath)
		return nil
	}

	deg := ballistics.RadToDeg(angle)
	fmt.Fprintf(a.out, "Firing solution (no drag): angle = %s degrees.\n", strconv.FormatFloat(deg, 'g', 6, 64))

	points := ballistics.CalculateTrajectory(c.MuzzleVelocity, angle, settings.Gravity, settings.TrajectorySteps)
	if err := report.WriteCSVFile(a.cfg.TrajectoryCSVPath, points); err != nil {
		return err
	}
	if err := report.WriteFactsFile(a.cfg.SolutionFactsPath, fact); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Trajectory written to %s\n", a.cfg.TrajectoryCSVPath)
	fmt.Fprintf(a.out, "Solution written to %s\n", a.cfg.SolutionFactsPath)

	if plot {
		if err := report.WritePlotFile(a.cfg.TrajectoryPlotPath, points); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Plot written to %s\n", a.cfg.TrajectoryPlotPath)
	}
	return nil
}
