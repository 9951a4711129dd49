package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/rangecard/backend/internal/ballistics"
	"github.com/rangecard/backend/internal/models"
	"github.com/rangecard/backend/internal/report"
	"github.com/rangecard/backend/internal/solutions"
)

type solveFlags struct {
	req      solutions.Request
	angleDeg float64
	high     bool
	csv    bool
	facts  bool
	plot   bool
	asJSON bool
}

func newSolveCmd(a *app) *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one firing problem from flags",
		Long: "With --range, find the elevation that hits the target. With --angle-deg,\n" +
			"report where a shot fired at that elevation lands.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			byRange := cmd.Flags().Changed("range")
			byAngle := cmd.Flags().Changed("angle-deg")
			switch {
			case byRange && byAngle:
				return errors.New("--range and --angle-deg are mutually exclusive")
			case byAngle:
				return a.fireAt(cmd, f)
			case byRange:
				return a.solve(cmd, f)
			default:
				return errors.New("one of --range or --angle-deg is required")
			}
		},
	}
	cmd.Flags().StringVar(&f.req.CartridgeID, "cartridge", "", "catalog cartridge id")
	cmd.Flags().Float64Var(&f.req.MuzzleVelocity, "v0", 0, "muzzle velocity in m/s when no cartridge is given")
	cmd.Flags().Float64Var(&f.req.Range, "range", 0, "horizontal distance to the target in meters")
	cmd.Flags().Float64Var(&f.angleDeg, "angle-deg", 0, "fire at this elevation in degrees instead of solving for one")
	cmd.Flags().IntVar(&f.req.Steps, "steps", 0, "trajectory samples (default from TRAJECTORY_STEPS)")
	cmd.Flags().BoolVar(&f.high, "high", false, "use the high-angle (lobbed) solution")
	cmd.Flags().BoolVar(&f.csv, "csv", false, "write the trajectory CSV")
	cmd.Flags().BoolVar(&f.facts, "facts", false, "write the Prolog fact record")
	cmd.Flags().BoolVar(&f.plot, "plot", false, "render the trajectory plot")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func (a *app) solve(cmd *cobra.Command, f solveFlags) error {
	req := f.req
	if f.high {
		req.Branch = solutions.BranchHigh
	}
	req.OmitTrajectory = !(f.csv || f.plot || f.asJSON)

	res, err := solutions.NewService(a.cfg, a.catalog).Solve(cmd.Context(), req)
	if err != nil {
		return err
	}

	if f.asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printResult(a, res)
	}

	if f.facts {
		if err := report.WriteFactsFile(a.cfg.SolutionFactsPath, res.Fact()); err != nil {
			return err
		}
		fmt.Fprintf(a.errOut, "Solution written to %s\n", a.cfg.SolutionFactsPath)
	}
	if !res.Solution.Ok() {
		return nil
	}
	if f.csv {
		if err := report.WriteCSVFile(a.cfg.TrajectoryCSVPath, res.Trajectory); err != nil {
			return err
		}
		fmt.Fprintf(a.errOut, "Trajectory written to %s\n", a.cfg.TrajectoryCSVPath)
	}
	if f.plot {
		if err := report.WritePlotFile(a.cfg.TrajectoryPlotPath, res.Trajectory); err != nil {
			return err
		}
		fmt.Fprintf(a.errOut, "Plot written to %s\n", a.cfg.TrajectoryPlotPath)
	}
	return nil
}

func printResult(a *app, res *solutions.Result) {
	fmt.Fprintf(a.out, "%s  (v0 = %g m/s)  range %g m  g = %g m/s²\n",
		res.Caliber(), res.MuzzleVelocity, res.Range, res.Gravity)

	angle, ok := res.Solution.Angle()
	if !ok {
		fmt.Fprintf(a.out, "No physically valid %s-angle solution (max range %.1f m).\n",
			res.Branch, ballistics.MaxRange(res.MuzzleVelocity, res.Gravity))
		return
	}

	fmt.Fprintf(a.out, "%s angle: %.6f deg  (%.2f mil)\n", res.Branch, ballistics.RadToDeg(angle), ballistics.RadToMils(angle))
	fmt.Fprintf(a.out, "time of flight: %.3f s\n", res.TimeOfFlight)
	if res.Apex != nil {
		fmt.Fprintf(a.out, "apex: %.3f m at %.1f m\n", res.Apex.Y, res.Apex.X)
	}
	fmt.Fprintf(a.out, "impact: %.1f m/s at %.6f deg descent\n", res.ImpactSpeed, ballistics.RadToDeg(res.ImpactAngle))
}

// fireAt runs the forward problem: the elevation is given, the landing point is computed.
func (a *app) fireAt(cmd *cobra.Command, f solveFlags) error {
	if math.IsNaN(f.angleDeg) || f.angleDeg < 0 || f.angleDeg > 90 {
		return fmt.Errorf("--angle-deg must be between 0 and 90, got %v", f.angleDeg)
	}
	cart, err := a.resolveCartridge(cmd.Context(), f.req)
	if err != nil {
		return err
	}

	settings := a.cfg.Solver()
	steps := f.req.Steps
	if steps == 0 {
		steps = settings.TrajectorySteps
	}
	if steps < 1 || steps > solutions.MaxSteps {
		return fmt.Errorf("--steps must be between 1 and %d", solutions.MaxSteps)
	}

	g := settings.Gravity
	v0 := cart.MuzzleVelocity
	angle := ballistics.DegToRad(f.angleDeg)
	rangeM := ballistics.RangeFor(v0, angle, g)
	apex := ballistics.Apex(v0, angle, g)
	impact := ballistics.Impact(v0, angle)

	fmt.Fprintf(a.out, "%s  (v0 = %g m/s)  elevation %g deg  g = %g m/s²\n", cart.Caliber, v0, f.angleDeg, g)
	fmt.Fprintf(a.out, "range: %.3f m\n", rangeM)
	fmt.Fprintf(a.out, "time of flight: %.3f s\n", ballistics.TimeOfFlight(v0, angle, g))
	fmt.Fprintf(a.out, "apex: %.3f m at %.1f m\n", apex.Y, apex.X)
	fmt.Fprintf(a.out, "impact: %.1f m/s at %.6f deg descent\n", impact.Magnitude(), -ballistics.RadToDeg(impact.Elevation()))

	if f.facts {
		fact := report.NewFact(cart, rangeM, ballistics.Found(angle))
		if err := report.WriteFactsFile(a.cfg.SolutionFactsPath, fact); err != nil {
			return err
		}
		fmt.Fprintf(a.errOut, "Solution written to %s\n", a.cfg.SolutionFactsPath)
	}
	if !f.csv && !f.plot {
		return nil
	}
	points := ballistics.CalculateTrajectory(v0, angle, g, steps)
	if f.csv {
		if err := report.WriteCSVFile(a.cfg.TrajectoryCSVPath, points); err != nil {
			return err
		}
		fmt.Fprintf(a.errOut, "Trajectory written to %s\n", a.cfg.TrajectoryCSVPath)
	}
	if f.plot {
		if err := report.WritePlotFile(a.cfg.TrajectoryPlotPath, points); err != nil {
			return err
		}
		fmt.Fprintf(a.errOut, "Plot written to %s\n", a.cfg.TrajectoryPlotPath)
	}
	return nil
}

func (a *app) resolveCartridge(ctx context.Context, req solutions.Request) (models.Cartridge, error) {
	if req.CartridgeID != "" {
		c, err := a.catalog.Get(ctx, req.CartridgeID)
		if err != nil {
			return models.Cartridge{}, fmt.Errorf("cartridge %s: %w", req.CartridgeID, err)
		}
		return *c, nil
	}
	if req.MuzzleVelocity > 0 && !math.IsInf(req.MuzzleVelocity, 0) {
		return models.Cartridge{Caliber: "custom", MuzzleVelocity: req.MuzzleVelocity}, nil
	}
	return models.Cartridge{}, errors.New("--cartridge or a positive --v0 is required")
}
