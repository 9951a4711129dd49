// Package cartridges holds the catalog of loads a firing solution can be computed for.
package cartridges

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rangecard/backend/internal/models"
)

var ErrNotFound = errors.New("cartridge not found")

// Store is the catalog backend.
type Store interface {
	List(ctx context.Context) ([]models.Cartridge, error)
	Get(ctx context.Context, id string) (*models.Cartridge, error)
	Upsert(ctx context.Context, c models.Cartridge) error
	Delete(ctx context.Context, id string) error
}

// Builtin returns the factory catalog. Velocities are nominal published figures in m/s.
func Builtin() []models.Cartridge {
	return []models.Cartridge{
		{ID: "22lr-cci-sv", Brand: "CCI", Line: "Standard Velocity 40gr LRN", Caliber: ".22 LR", MuzzleVelocity: 328},
		{ID: "9mm-ae-115", Brand: "Federal", Line: "American Eagle 115gr FMJ", Caliber: "9x19mm Parabellum", MuzzleVelocity: 351},
		{ID: "762x39-wolf-122", Brand: "Wolf", Line: "Military Classic 122gr FMJ", Caliber: "7.62x39mm", MuzzleVelocity: 710},
		{ID: "308-fgm-168", Brand: "Federal", Line: "Gold Medal Match 168gr SMK", Caliber: ".308 Winchester", MuzzleVelocity: 808},
		{ID: "65cm-eld-140", Brand: "Hornady", Line: "ELD Match 140gr", Caliber: "6.5 Creedmoor", MuzzleVelocity: 823},
		{ID: "300wm-fgm-190", Brand: "Federal", Line: "Gold Medal Match 190gr SMK", Caliber: ".300 Winchester Magnum", MuzzleVelocity: 884},
		{ID: "50bmg-amax-750", Brand: "Hornady", Line: "A-MAX Match 750gr", Caliber: "12.7x99mm NATO", MuzzleVelocity: 860},
		{ID: "338lm-scenar-250", Brand: "Lapua", Line: "Scenar 250gr HPBT", Caliber: ".338 Lapua Magnum", MuzzleVelocity: 905},
		{ID: "556-m193-55", Brand: "Hornady", Line: "Frontier M193 55gr FMJ", Caliber: "5.56x45mm NATO", MuzzleVelocity: 990},
	}
}

// Validate checks a cartridge before it is stored.
func Validate(c models.Cartridge) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("cartridge id is required")
	}
	if strings.TrimSpace(c.Caliber) == "" {
		return fmt.Errorf("cartridge %s: caliber is required", c.ID)
	}
	if c.MuzzleVelocity <= 0 {
		return fmt.Errorf("cartridge %s: muzzle velocity must be positive, got %v", c.ID, c.MuzzleVelocity)
	}
	return nil
}

// Seed upserts the builtin catalog into store.
func Seed(ctx context.Context, store Store) (int, error) {
	n := 0
	for _, c := range Builtin() {
		if err := store.Upsert(ctx, c); err != nil {
			return n, fmt.Errorf("seeding %s: %w", c.ID, err)
		}
		n++
	}
	return n, nil
}
