package entity

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// RunKind identifies the source an ingestion run read from.
type RunKind string

const (
	RunKindDirectory RunKind = "directory"
	RunKindCSV       RunKind = "csv"
)

// RunStatus is the lifecycle state of an ingestion run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// IngestionRun records one conversion or ingestion batch and its summary.
type IngestionRun struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	RunID        string         `gorm:"type:text;not null;unique" json:"run_id"`
	Kind         RunKind        `gorm:"type:text;not null" json:"kind"`
	Source       string         `gorm:"type:text;not null" json:"source"`
	Status       RunStatus      `gorm:"type:text;not null" json:"status"`
	Summary      datatypes.JSON `json:"summary"`
	ErrorMessage sql.NullString `json:"error_message"`
	StartedAt    time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt  sql.NullTime   `json:"completed_at"`
}

// TableName specifies the table name for the IngestionRun model.
func (IngestionRun) TableName() string {
	return "ingestion_runs"
}
