package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Cartridge is a catalog entry: a factory load with its nominal muzzle velocity.
type Cartridge struct {
	ID             string    `db:"id" json:"id"`
	Brand          string    `db:"brand" json:"brand"`
	Line           string    `db:"line" json:"line"`
	Caliber        string    `db:"caliber" json:"caliber"`
	MuzzleVelocity float64   `db:"muzzle_velocity" json:"muzzle_velocity"` // m/s
	CreatedAt      time.Time `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// FiringSolutionRecord is one row of solve history
type FiringSolutionRecord struct {
	ID             int             `db:"id" json:"id"`
	CartridgeID    sql.NullString  `db:"cartridge_id" json:"cartridge_id,omitempty"`
	Caliber        string          `db:"caliber" json:"caliber"`
	MuzzleVelocity float64         `db:"muzzle_velocity" json:"muzzle_velocity"`
	TargetRange    float64         `db:"target_range" json:"target_range"`
	Gravity        float64         `db:"gravity" json:"gravity"`
	Branch         string          `db:"branch" json:"branch"`
	Status         string          `db:"status" json:"status"`
	AngleRad       sql.NullFloat64 `db:"angle_rad" json:"angle_rad,omitempty"`
	TimeOfFlight   sql.NullFloat64 `db:"time_of_flight" json:"time_of_flight,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// AdminAccount can manage the cartridge catalog and runtime config
type AdminAccount struct {
	Username    string         `db:"username" json:"username"`
	DisplayName string         `db:"display_name" json:"display_name"`
	TokenHash   string         `db:"token_hash" json:"-"`
	Roles       pq.StringArray `db:"roles" json:"roles"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// AdminAudit is an entry of the admin audit trail
type AdminAudit struct {
	ID            int             `db:"id" json:"id"`
	AdminUsername string          `db:"admin_username" json:"admin_username"`
	IP            string          `db:"ip" json:"ip"`
	Route         string          `db:"route" json:"route"`
	Action        string          `db:"action" json:"action"`
	Details       json.RawMessage `db:"details" json:"details"`
	Success       bool            `db:"success" json:"success"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// RuntimeConfig is a DB-stored override of a config value
type RuntimeConfig struct {
	Key         string         `db:"key" json:"key"`
	Value       string         `db:"value" json:"value"`
	ValueType   string         `db:"value_type" json:"value_type"`
	Description sql.NullString `db:"description" json:"description,omitempty"`
	UpdatedBy   sql.NullString `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}
