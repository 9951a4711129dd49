package solutions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rangecard/backend/internal/models"
	"github.com/rangecard/backend/internal/report"
)

// History records every computed solve.
type History interface {
	Record(ctx context.Context, res *Result) error
	Recent(ctx context.Context, limit int) ([]models.FiringSolutionRecord, error)
}

// PostgresHistory writes to the firing_solutions table.
type PostgresHistory struct {
	db *sqlx.DB
}

func NewPostgresHistory(db *sqlx.DB) *PostgresHistory {
	return &PostgresHistory{db: db}
}

// NewRecord flattens a result into a history row.
func NewRecord(res *Result) models.FiringSolutionRecord {
	rec := models.FiringSolutionRecord{
		Caliber:        res.Caliber(),
		MuzzleVelocity: res.MuzzleVelocity,
		TargetRange:    res.Range,
		Gravity:        res.Gravity,
		Branch:         res.Branch,
		Status:         report.StatusNoSolution,
	}
	if res.Cartridge != nil {
		rec.CartridgeID = sql.NullString{String: res.Cartridge.ID, Valid: true}
	}
	if angle, ok := res.Solution.Angle(); ok {
		rec.Status = report.StatusOK
		rec.AngleRad = sql.NullFloat64{Float64: angle, Valid: true}
		rec.TimeOfFlight = sql.NullFloat64{Float64: res.TimeOfFlight, Valid: true}
	}
	return rec
}

func (h *PostgresHistory) Record(ctx context.Context, res *Result) error {
	_, err := h.db.NamedExecContext(ctx, `
		INSERT INTO firing_solutions
			(cartridge_id, caliber, muzzle_velocity, target_range, gravity, branch, status, angle_rad, time_of_flight, created_at)
		VALUES
			(:cartridge_id, :caliber, :muzzle_velocity, :target_range, :gravity, :branch, :status, :angle_rad, :time_of_flight, NOW())
	`, NewRecord(res))
	if err != nil {
		return fmt.Errorf("inserting firing solution: %w", err)
	}
	return nil
}

func (h *PostgresHistory) Recent(ctx context.Context, limit int) ([]models.FiringSolutionRecord, error) {
	var out []models.FiringSolutionRecord
	err := h.db.SelectContext(ctx, &out, `
		SELECT id, cartridge_id, caliber, muzzle_velocity, target_range, gravity, branch, status, angle_rad, time_of_flight, created_at
		FROM firing_solutions
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing firing solutions: %w", err)
	}
	return out, nil
}
