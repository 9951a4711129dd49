package report

import (
	"bufio"
	"io"
	"strings"

	"github.com/rangecard/backend/internal/ballistics"
	"github.com/rangecard/backend/internal/models"
)

// Status tags understood by the Prolog validator.
const (
	StatusOK         = "ok_physics"
	StatusNoSolution = "no_physics_solution"
)

// Fact is the input to a solution/5 fact record.
type Fact struct {
	Caliber        string
	MuzzleVelocity float64
	Range          float64
	Solution       ballistics.Solution
}

func NewFact(c models.Cartridge, rangeM float64, sol ballistics.Solution) Fact {
	return Fact{Caliber: c.Caliber, MuzzleVelocity: c.MuzzleVelocity, Range: rangeM, Solution: sol}
}

// Status returns the status tag for the record.
func (f Fact) Status() string {
	if f.Solution.Ok() {
		return StatusOK
	}
	return StatusNoSolution
}

// WriteFacts writes a solution/5 fact. A missing solution is recorded as
// angle_deg(none) with status(no_physics_solution).
func WriteFacts(w io.Writer, f Fact) error {
	angle := "none"
	if deg, ok := f.Solution.Degrees(); ok {
		angle = fixed6(deg)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("solution(\n")
	bw.WriteString("  cartridge(" + quoteAtom(f.Caliber) + "),\n")
	bw.WriteString("  v0(" + fixed6(f.MuzzleVelocity) + "),\n")
	bw.WriteString("  range(" + fixed6(f.Range) + "),\n")
	bw.WriteString("  angle_deg(" + angle + "),\n")
	bw.WriteString("  status(" + f.Status() + ")\n")
	bw.WriteString(").\n")
	return bw.Flush()
}

// WriteFactsFile writes the fact record to path, creating parent directories.
func WriteFactsFile(path string, f Fact) error {
	return writeFile(path, func(w io.Writer) error { return WriteFacts(w, f) })
}

func quoteAtom(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
