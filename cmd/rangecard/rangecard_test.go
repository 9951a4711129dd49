package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangecard/backend/internal/cartridges"
	"github.com/rangecard/backend/internal/config"
)

type testApp struct {
	*app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Gravity:            9.76398,
		TrajectorySteps:    200,
		MaxBatchSize:       8,
		TrajectoryCSVPath:  filepath.Join(dir, "data", "trajectory.csv"),
		SolutionFactsPath:  filepath.Join(dir, "prolog", "solution.pl"),
		TrajectoryPlotPath: filepath.Join(dir, "data", "trajectory.png"),
	}
	ta := &testApp{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ta.app = &app{
		cfg:     cfg,
		catalog: cartridges.NewMemoryStore(cartridges.Builtin()),
		in:      strings.NewReader(input),
		out:     ta.stdout,
		errOut:  ta.stderr,
	}
	return ta
}

func (ta *testApp) run(args ...string) error {
	root := newRootCmd(ta.app)
	root.SetArgs(args)
	return root.Execute()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFireWritesTrajectoryAndFacts(t *testing.T) {
	ta := newTestApp(t, "4\n500\n")

	require.NoError(t, ta.run("fire"))

	out := ta.stdout.String()
	assert.Contains(t, out, "Select a cartridge:\n")
	assert.Contains(t, out, "  1) .22 LR  (v0 = 328 m/s)\n")
	assert.Contains(t, out, "  4) .308 Winchester  (v0 = 808 m/s)\n")
	assert.Contains(t, out, "Enter choice number: ")
	assert.Contains(t, out, "Enter target distance in meters (horizontal): ")
	assert.Contains(t, out, "Firing solution (no drag): angle = 0.214")
	assert.Contains(t, out, "Trajectory written to "+ta.cfg.TrajectoryCSVPath)

	csv := strings.Split(strings.TrimSpace(readFile(t, ta.cfg.TrajectoryCSVPath)), "\n")
	assert.Equal(t, "x,y,time", csv[0])
	assert.Len(t, csv, 202)
	assert.True(t, strings.HasPrefix(csv[201], "500.000000,0.000000,"), csv[201])

	facts := readFile(t, ta.cfg.SolutionFactsPath)
	assert.Contains(t, facts, "  cartridge('.308 Winchester'),\n")
	assert.Contains(t, facts, "  v0(808.000000),\n")
	assert.Contains(t, facts, "  range(500.000000),\n")
	assert.Contains(t, facts, "  status(ok_physics)\n")

	_, err := os.Stat(ta.cfg.TrajectoryPlotPath)
	assert.True(t, os.IsNotExist(err))
}

func TestFireUnreachableWritesNoSolutionFact(t *testing.T) {
	ta := newTestApp(t, "1\n20000\n")

	require.NoError(t, ta.run("fire"))

	assert.Contains(t, ta.stderr.String(), "No physically valid low-angle solution")
	want := "solution(\n" +
		"  cartridge('.22 LR'),\n" +
		"  v0(328.000000),\n" +
		"  range(20000.000000),\n" +
		"  angle_deg(none),\n" +
		"  status(no_physics_solution)\n" +
		").\n"
	assert.Equal(t, want, readFile(t, ta.cfg.SolutionFactsPath))

	_, err := os.Stat(ta.cfg.TrajectoryCSVPath)
	assert.True(t, os.IsNotExist(err))
}

func TestFireRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"zero choice", "0\n", "Invalid choice.\n"},
		{"choice past end", "10\n", "Invalid choice.\n"},
		{"not a number", "abc\n", "Invalid choice.\n"},
		{"zero range", "2\n0\n", "Range must be positive.\n"},
		{"negative range", "2\n-50\n", "Range must be positive.\n"},
		{"missing range", "2\n", "Range must be positive.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, tt.input)
			err := ta.run("fire")

			var exit exitCode
			require.True(t, errors.As(err, &exit), "err = %v", err)
			assert.Equal(t, exitCode(1), exit)
			assert.Equal(t, tt.msg, ta.stderr.String())

			_, statErr := os.Stat(ta.cfg.SolutionFactsPath)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestSolveCommand(t *testing.T) {
	ta := newTestApp(t, "")

	require.NoError(t, ta.run("solve", "--v0", "900", "--range", "500", "--facts", "--csv"))

	out := ta.stdout.String()
	assert.Contains(t, out, "custom  (v0 = 900 m/s)  range 500 m")
	assert.Contains(t, out, "low angle: 0.17")
	assert.Contains(t, readFile(t, ta.cfg.SolutionFactsPath), "cartridge('custom')")
	assert.Contains(t, readFile(t, ta.cfg.TrajectoryCSVPath), "x,y,time\n")
}

func TestSolveCommandHighAngleJSON(t *testing.T) {
	ta := newTestApp(t, "")

	require.NoError(t, ta.run("solve", "--cartridge", "308-fgm-168", "--range", "500", "--high", "--steps", "10", "--json"))

	var res struct {
		Branch   string `json:"branch"`
		Solution struct {
			Found    bool    `json:"found"`
			AngleDeg float64 `json:"angle_deg"`
		} `json:"solution"`
		Trajectory []json.RawMessage `json:"trajectory"`
	}
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &res))
	assert.Equal(t, "high", res.Branch)
	assert.True(t, res.Solution.Found)
	assert.Greater(t, res.Solution.AngleDeg, 89.0)
	assert.Len(t, res.Trajectory, 11)
}

func TestSolveCommandErrors(t *testing.T) {
	ta := newTestApp(t, "")
	assert.Error(t, ta.run("solve", "--cartridge", "nope", "--range", "500"))

	ta = newTestApp(t, "")
	assert.Error(t, ta.run("solve", "--v0", "900"))

	ta = newTestApp(t, "")
	assert.Error(t, ta.run("solve", "--range", "500"))
}

func TestSolveCommandOutOfReach(t *testing.T) {
	ta := newTestApp(t, "")

	require.NoError(t, ta.run("solve", "--cartridge", "22lr-cci-sv", "--range", "20000", "--csv", "--facts"))

	assert.Contains(t, ta.stdout.String(), "No physically valid low-angle solution")
	assert.Contains(t, readFile(t, ta.cfg.SolutionFactsPath), "angle_deg(none)")
	_, err := os.Stat(ta.cfg.TrajectoryCSVPath)
	assert.True(t, os.IsNotExist(err))
}

func TestBatchFromStdin(t *testing.T) {
	ta := newTestApp(t, `[
		{"cartridge_id": "556-m193-55", "range": 300, "omit_trajectory": true},
		{"muzzle_velocity": 100, "range": 5000, "omit_trajectory": true},
		{"range": 10}
	]`)

	require.NoError(t, ta.run("batch"))

	var body struct {
		Results []struct {
			Result *struct {
				Solution struct {
					Found bool `json:"found"`
				} `json:"solution"`
			} `json:"result"`
			Error string `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &body))
	require.Len(t, body.Results, 3)
	require.NotNil(t, body.Results[0].Result)
	assert.True(t, body.Results[0].Result.Solution.Found)
	require.NotNil(t, body.Results[1].Result)
	assert.False(t, body.Results[1].Result.Solution.Found)
	assert.Nil(t, body.Results[2].Result)
	assert.NotEmpty(t, body.Results[2].Error)
}

func TestBatchFromFile(t *testing.T) {
	ta := newTestApp(t, "")
	path := filepath.Join(t.TempDir(), "requests.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"requests":[{"muzzle_velocity":900,"range":500,"steps":2}]}`), 0o644))

	require.NoError(t, ta.run("batch", path))
	assert.Contains(t, ta.stdout.String(), `"found": true`)
}

func TestBatchRejectsMalformedInput(t *testing.T) {
	ta := newTestApp(t, "{not json")
	assert.Error(t, ta.run("batch"))
}

func TestCatalogCommand(t *testing.T) {
	ta := newTestApp(t, "")

	require.NoError(t, ta.run("catalog"))

	out := ta.stdout.String()
	assert.Contains(t, out, "CALIBER")
	assert.Contains(t, out, "308-fgm-168")
	assert.Contains(t, out, "6.5 Creedmoor")
}

func TestGravityFlagOverridesConfig(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.run("solve", "--v0", "900", "--range", "500", "--gravity", "9.81"))
	assert.Contains(t, ta.stdout.String(), "g = 9.81 m/s²")

	ta = newTestApp(t, "")
	assert.Error(t, ta.run("solve", "--v0", "900", "--range", "500", "--gravity", "0"))
}

func TestSolveCommandFireAtElevation(t *testing.T) {
	ta := newTestApp(t, "")

	require.NoError(t, ta.run("solve", "--v0", "900", "--angle-deg", "45", "--steps", "4", "--csv", "--facts"))

	out := ta.stdout.String()
	assert.Contains(t, out, "custom  (v0 = 900 m/s)  elevation 45 deg")
	assert.Contains(t, out, "range: 82957.9")
	assert.Contains(t, out, "impact: 900.0 m/s at 45.000000 deg descent")

	csv := strings.Split(strings.TrimSpace(readFile(t, ta.cfg.TrajectoryCSVPath)), "\n")
	assert.Len(t, csv, 6)
	facts := readFile(t, ta.cfg.SolutionFactsPath)
	assert.Contains(t, facts, "  angle_deg(45.000000),\n")
	assert.Contains(t, facts, "  status(ok_physics)\n")
}

func TestSolveCommandFlagCombinations(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"range and angle", []string{"solve", "--v0", "900", "--range", "500", "--angle-deg", "10"}},
		{"angle above vertical", []string{"solve", "--v0", "900", "--angle-deg", "91"}},
		{"negative angle", []string{"solve", "--v0", "900", "--angle-deg", "-1"}},
		{"angle without velocity", []string{"solve", "--angle-deg", "30"}},
		{"angle with unknown cartridge", []string{"solve", "--cartridge", "nope", "--angle-deg", "30"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, "")
			assert.Error(t, ta.run(tt.args...))
		})
	}
}
