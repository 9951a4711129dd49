package cartridges

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rangecard/backend/internal/models"
)

// PostgresStore reads and writes the cartridges table.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Cartridge, error) {
	var out []models.Cartridge
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, brand, line, caliber, muzzle_velocity, created_at, updated_at
		FROM cartridges
		ORDER BY muzzle_velocity, id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing cartridges: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*models.Cartridge, error) {
	var c models.Cartridge
	err := s.db.GetContext(ctx, &c, `SELECT id, brand, line, caliber, muzzle_velocity, created_at, updated_at FROM cartridges WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching cartridge %s: %w", id, err)
	}
	return &c, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, c models.Cartridge) error {
	if err := Validate(c); err != nil {
		return err
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO cartridges (id, brand, line, caliber, muzzle_velocity, created_at, updated_at)
		VALUES (:id, :brand, :line, :caliber, :muzzle_velocity, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			brand = EXCLUDED.brand,
			line = EXCLUDED.line,
			caliber = EXCLUDED.caliber,
			muzzle_velocity = EXCLUDED.muzzle_velocity,
			updated_at = NOW()
	`, c)
	if err != nil {
		return fmt.Errorf("upserting cartridge %s: %w", c.ID, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cartridges WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("deleting cartridge %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
