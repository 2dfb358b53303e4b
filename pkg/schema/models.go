// Package schema provides database schema models for JJMD.
// Table and column names stay fixed across releases so existing
// databases remain readable.
package schema

import (
	"time"
)

// Role values stored in the users table. Every mutating operation is
// gated on RoleAdmin.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// StateUT is a state or union territory tracked for water-coverage
// statistics. It is the root entity; all other record types reference
// it by state_id.
type StateUT struct {
	// StateID is a serial surrogate key.
	StateID uint `gorm:"column:state_id;primaryKey;autoIncrement"`

	// StateName is the unique display name.
	StateName string `gorm:"column:state_name;size:255;uniqueIndex;not null"`

	HouseholdStats     *HouseholdStats      `gorm:"foreignKey:StateID;constraint:OnDelete:CASCADE"`
	WaterConnections   *WaterConnections    `gorm:"foreignKey:StateID;constraint:OnDelete:CASCADE"`
	HistoricalProgress []HistoricalProgress `gorm:"foreignKey:StateID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for StateUT.
func (StateUT) TableName() string { return "states_uts" }

// HouseholdStats holds the current household coverage numbers for one
// state. One row per state; the state id is both key and foreign key.
type HouseholdStats struct {
	StateID uint `gorm:"column:state_id;primaryKey"`

	// TotalRuralHouseholds is the denominator for coverage. Must be
	// at least 1 to be meaningful.
	TotalRuralHouseholds int64 `gorm:"column:total_rural_households;not null"`

	// HouseholdsWithTapWaterCurrent is the number of rural households
	// that currently have a tap-water connection.
	HouseholdsWithTapWaterCurrent int64 `gorm:"column:households_with_tap_water_current;not null"`

	// HouseholdsWithTapWaterCurrentPct is the recorded coverage
	// percentage. It is operator-entered, optionally pre-filled by the
	// percentage calculator; the store does not force it to equal
	// current/total.
	HouseholdsWithTapWaterCurrentPct float64 `gorm:"column:households_with_tap_water_current_pct;not null"`
}

// TableName returns the table name for HouseholdStats.
func (HouseholdStats) TableName() string { return "household_stats" }

// WaterConnections holds the tap connections provided for one state.
type WaterConnections struct {
	StateID uint `gorm:"column:state_id;primaryKey"`

	// TapWaterConnectionsProvided is the number of connections
	// installed under the mission.
	TapWaterConnectionsProvided int64 `gorm:"column:tap_water_connections_provided;not null"`

	// TapWaterConnectionsProvidedPct is the recorded percentage.
	TapWaterConnectionsProvidedPct float64 `gorm:"column:tap_water_connections_provided_pct;not null"`
}

// TableName returns the table name for WaterConnections.
func (WaterConnections) TableName() string { return "water_connections" }

// HistoricalProgress is a point-in-time coverage snapshot for a state.
// At most one row exists per (state_id, year) pair; resubmitting the
// same pair updates in place.
type HistoricalProgress struct {
	StateID uint `gorm:"column:state_id;primaryKey"`

	// Year is the snapshot date (full date, not just a calendar year;
	// the column name is historical).
	Year time.Time `gorm:"column:year;primaryKey;type:date"`

	HouseholdsWithTapWater    int64   `gorm:"column:households_with_tap_water;not null"`
	HouseholdsWithTapWaterPct float64 `gorm:"column:households_with_tap_water_pct;not null"`
}

// TableName returns the table name for HistoricalProgress.
func (HistoricalProgress) TableName() string { return "historical_progress" }

// User is an operator account. PasswordHash is a salted SHA-256 hex
// digest, never plaintext.
type User struct {
	UserID       uint   `gorm:"column:user_id;primaryKey;autoIncrement"`
	Username     string `gorm:"column:username;size:50;uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`

	// Role is "admin" or "viewer".
	Role string `gorm:"column:role;size:20;not null"`
}

// TableName returns the table name for User.
func (User) TableName() string { return "users" }
