package models

import "time"

// MigrationRecord is a ledger entry for an applied schema change.
// Records are written once and never mutated.
type MigrationRecord struct {
	Version     string
	Description string
	AppliedAt   time.Time
}
