package dto

import (
	"encoding/json"
	"time"
)

// FileIssue names a source file that was skipped or failed.
type FileIssue struct {
	File    string `json:"file"`
	Message string `json:"message,omitempty"`
}

// ConversionSummary reports what a conversion did with each file.
type ConversionSummary struct {
	Processed          int         `json:"processed"`
	SkippedNoDate      int         `json:"skipped_no_date"`
	DroppedInvalidDate int         `json:"dropped_invalid_date"`
	Errors             int         `json:"errors"`
	Written            int         `json:"written"`
	Output             string      `json:"output,omitempty"`
	SkippedFiles       []FileIssue `json:"skipped_files,omitempty"`
	ErrorFiles         []FileIssue `json:"error_files,omitempty"`
}

// IngestionSummary reports an ingest run: conversion (when run from a
// directory), rows read, and rows stored.
type IngestionSummary struct {
	Conversion  *ConversionSummary `json:"conversion,omitempty"`
	RowsRead    int                `json:"rows_read"`
	InvalidRows int                `json:"invalid_rows"`
	Analyzed    int                `json:"analyzed"`
	Inserted    int                `json:"inserted"`
	Duplicates  int                `json:"duplicates"`
}

// Severity of a ValidationIssue.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// ValidationIssue is one file whose filename date is missing or implausible.
type ValidationIssue struct {
	File     string `json:"file"`
	Date     string `json:"date,omitempty"`
	Issue    string `json:"issue"`
	Severity string `json:"severity"`
}

// ValidationReport is the result of checking filename dates in a directory.
type ValidationReport struct {
	Total  int               `json:"total"`
	Valid  int               `json:"valid"`
	Issues []ValidationIssue `json:"issues"`
}

// OK reports whether every file passed.
func (r *ValidationReport) OK() bool {
	return len(r.Issues) == 0
}

// IngestionRunResponse is an ingestion run as returned to callers.
type IngestionRunResponse struct {
	RunID        string          `json:"run_id"`
	Kind         string          `json:"kind"`
	Source       string          `json:"source"`
	Status       string          `json:"status"`
	StartedAt    time.Time       `json:"started_at"`
	Duration     int64           `json:"duration_ms"`
	Summary      json.RawMessage `json:"summary,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}
