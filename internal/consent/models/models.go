package models

import (
	"time"

	dErrors "consentgate/pkg/domain-errors"
)

// Record is the persisted consent decision. A record exists iff the decision
// is not Unset; fail-soft reads normalize everything else to Unset.
type Record struct {
	Status        Decision  `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	SchemaVersion string    `json:"schemaVersion"`
}

// NewRecord creates a Record with domain invariant checks.
func NewRecord(status Decision, at time.Time, schemaVersion string) (*Record, error) {
	if !status.CanPersist() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "only accepted or declined decisions are persisted")
	}
	if at.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "decision time required")
	}
	if schemaVersion == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "schema version required")
	}
	return &Record{
		Status:        status,
		Timestamp:     at,
		SchemaVersion: schemaVersion,
	}, nil
}

// Decision returns the decision the record encodes, normalizing unknown
// status values to Unset (defensive default for forward compatibility).
func (r Record) Decision() Decision {
	if r.Status.CanPersist() {
		return r.Status
	}
	return DecisionUnset
}

// DetailedConsent mirrors the single decision across the category flags the
// page consumes. Essential is always true.
type DetailedConsent struct {
	Essential   bool `json:"essential"`
	Analytics   bool `json:"analytics"`
	Marketing   bool `json:"marketing"`
	Preferences bool `json:"preferences"`
}

// DetailedFor expands a decision into per-category flags. All non-essential
// flags mirror the single global decision.
func DetailedFor(d Decision) DetailedConsent {
	granted := d.Granted()
	return DetailedConsent{
		Essential:   true,
		Analytics:   granted,
		Marketing:   granted,
		Preferences: granted,
	}
}
