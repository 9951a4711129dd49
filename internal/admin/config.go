package admin

import (
	"fmt"
	"log"
	"math"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/rangecard/backend/internal/config"
	"github.com/rangecard/backend/internal/models"
)

// GetAllRuntimeConfig returns all runtime config entries
func GetAllRuntimeConfig(db *sqlx.DB) ([]models.RuntimeConfig, error) {
	var configs []models.RuntimeConfig
	err := db.Select(&configs, `
		SELECT key, value, value_type, description, updated_by, updated_at
		FROM runtime_config
		ORDER BY key
	`)
	return configs, err
}

// GetRuntimeConfigValue returns a single runtime config value
func GetRuntimeConfigValue(db *sqlx.DB, key string) (*models.RuntimeConfig, error) {
	var cfg models.RuntimeConfig
	err := db.Get(&cfg, `SELECT key, value, value_type, description, updated_by, updated_at FROM runtime_config WHERE key=$1`, key)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateRuntimeValue checks value against the declared type and, for known keys,
// against the range the solver accepts.
func ValidateRuntimeValue(key, valueType, value string) error {
	switch valueType {
	case "int":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}
		if v < 1 {
			return fmt.Errorf("%s must be at least 1", key)
		}
		if key == "trajectory_steps" && v > config.MaxTrajectorySteps {
			return fmt.Errorf("trajectory_steps must be at most %d", config.MaxTrajectorySteps)
		}
	case "float":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value: %s", value)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite", key)
		}
		if key == "gravity" && v <= 0 {
			return fmt.Errorf("gravity must be positive")
		}
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid boolean value: %s (must be 'true' or 'false')", value)
		}
	}
	return nil
}

// UpdateRuntimeConfigValue updates a single runtime config value
func UpdateRuntimeConfigValue(db *sqlx.DB, key, value, adminUsername string) error {
	existing, err := GetRuntimeConfigValue(db, key)
	if err != nil {
		return fmt.Errorf("config key not found: %s", key)
	}

	if err := ValidateRuntimeValue(key, existing.ValueType, value); err != nil {
		return err
	}

	_, err = db.Exec(`
		UPDATE runtime_config SET value=$1, updated_by=$2, updated_at=NOW() WHERE key=$3
	`, value, adminUsername, key)
	return err
}

// ApplyRuntimeConfigToConfig loads runtime config from DB and applies overrides to the Config struct
func ApplyRuntimeConfigToConfig(db *sqlx.DB, cfg *config.Config) error {
	configs, err := GetAllRuntimeConfig(db)
	if err != nil {
		return err
	}

	applied := ApplyOverrides(configs, cfg)
	log.Printf("[CONFIG] Applied %d of %d runtime config overrides from database", applied, len(configs))
	return nil
}

// ApplyOverrides copies recognised, valid entries onto cfg in one atomic update
// and returns how many were applied.
func ApplyOverrides(entries []models.RuntimeConfig, cfg *config.Config) int {
	applied := 0
	err := cfg.UpdateSolver(func(s *config.Solver) {
		applied = 0
		for _, c := range entries {
			if err := ValidateRuntimeValue(c.Key, c.ValueType, c.Value); err != nil {
				log.Printf("[CONFIG] Skipping %s: %v", c.Key, err)
				continue
			}
			switch c.Key {
			case "gravity":
				if v, err := strconv.ParseFloat(c.Value, 64); err == nil {
					s.Gravity = v
					applied++
				}
			case "trajectory_steps":
				if v, err := strconv.Atoi(c.Value); err == nil {
					s.TrajectorySteps = v
					applied++
				}
			case "solution_cache_ttl_seconds":
				if v, err := strconv.Atoi(c.Value); err == nil {
					s.SolutionCacheTTLSeconds = v
					applied++
				}
			case "max_batch_size":
				if v, err := strconv.Atoi(c.Value); err == nil {
					s.MaxBatchSize = v
					applied++
				}
			}
		}
	})
	if err != nil {
		log.Printf("[CONFIG] Runtime overrides rejected: %v", err)
		return 0
	}
	return applied
}
