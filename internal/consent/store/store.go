// Package store persists the consent decision as a single JSON record behind
// an opaque key-value surface. Reads fail soft: any malformed or missing
// state normalizes to an Unset decision rather than an error.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"consentgate/internal/consent/models"
	"consentgate/internal/consent/notify"
	"consentgate/internal/sentinel"
	dErrors "consentgate/pkg/domain-errors"
)

// ConsentKey is the fixed storage key for the persisted decision record.
const ConsentKey = "cg_consent"

// SessionKey is the fixed storage key for the banner-seen session flag.
const SessionKey = "cg_seen"

const (
	defaultTTLDays       = 365
	defaultSchemaVersion = "1.0"
)

// ConsentStore is the durable single-slot store for a visitor's decision.
type ConsentStore struct {
	kv            KV
	ttlDays       int
	schemaVersion string
	notifier      *notify.Broadcaster
	logger        *slog.Logger
	now           func() time.Time
}

// Option configures the ConsentStore.
type Option func(*ConsentStore)

// WithTTLDays overrides the retention window for persisted decisions.
func WithTTLDays(days int) Option {
	return func(s *ConsentStore) {
		if days > 0 {
			s.ttlDays = days
		}
	}
}

// WithSchemaVersion sets the schema version stamped into new records.
func WithSchemaVersion(version string) Option {
	return func(s *ConsentStore) {
		if version != "" {
			s.schemaVersion = version
		}
	}
}

// WithNotifier wires the decision-changed broadcaster.
func WithNotifier(n *notify.Broadcaster) Option {
	return func(s *ConsentStore) {
		s.notifier = n
	}
}

// WithLogger sets the logger instance for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *ConsentStore) {
		s.logger = logger
	}
}

// WithClock overrides the time source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *ConsentStore) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a ConsentStore over the given KV surface.
func New(kv KV, opts ...Option) *ConsentStore {
	s := &ConsentStore{
		kv:            kv,
		ttlDays:       defaultTTLDays,
		schemaVersion: defaultSchemaVersion,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Decision reads the persisted decision, normalizing every failure mode to
// Unset. It never returns an error.
func (s *ConsentStore) Decision(ctx context.Context) models.Decision {
	record, ok := s.Record(ctx)
	if !ok {
		return models.DecisionUnset
	}
	return record.Decision()
}

// Record returns the persisted record and whether a usable one exists.
// Absent or malformed payloads report false; a well-formed record with an
// unknown status is returned as-is and normalized by Record.Decision.
func (s *ConsentStore) Record(_ context.Context) (*models.Record, bool) {
	raw, err := s.kv.Read(ConsentKey)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logWarn("unreadable consent record treated as unset", "error", err)
		}
		return nil, false
	}

	var record models.Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logWarn("malformed consent record treated as unset", "error", err)
		return nil, false
	}
	return &record, true
}

// SetDecision persists an accepted or declined decision with the configured
// retention window and broadcasts the change.
func (s *ConsentStore) SetDecision(ctx context.Context, decision models.Decision) (*models.Record, error) {
	record, err := models.NewRecord(decision, s.now(), s.schemaVersion)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to serialize consent record")
	}
	if err := s.kv.Write(ConsentKey, string(payload), s.ttlDays); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist consent record")
	}

	s.publish(notify.Event{Decision: decision, Timestamp: record.Timestamp})
	return record, nil
}

// Clear erases the persisted record. In-memory controller state is the
// controller's responsibility; Clear only touches storage.
func (s *ConsentStore) Clear(_ context.Context) error {
	if err := s.kv.Erase(ConsentKey); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to erase consent record")
	}
	s.publish(notify.Event{Decision: models.DecisionUnset, Timestamp: s.now()})
	return nil
}

func (s *ConsentStore) publish(event notify.Event) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(event)
}

func (s *ConsentStore) logWarn(msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(msg, args...)
}
