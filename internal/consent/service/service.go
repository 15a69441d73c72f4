// Package service owns the consent state machine: it decides when the banner
// shows, which catalog resources are permitted, and how decisions transition
// while keeping persisted state, in-memory state, and dispatched loads
// consistent.
package service

import (
	"context"
	"log/slog"

	"consentgate/internal/consent/metrics"
	"consentgate/internal/consent/models"
	"consentgate/internal/resource"
	dErrors "consentgate/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// DecisionStore defines the persistence interface for the consent decision.
// Error Contract:
// - Decision and Record fail soft; they never return errors
// - SetDecision and Clear return nil on success or wrapped errors on failure
type DecisionStore interface {
	Decision(ctx context.Context) models.Decision
	Record(ctx context.Context) (*models.Record, bool)
	SetDecision(ctx context.Context, decision models.Decision) (*models.Record, error)
	Clear(ctx context.Context) error
}

// SessionFlag marks whether the banner has already been presented this
// browsing session.
type SessionFlag interface {
	Seen() bool
	MarkSeen()
	Clear()
}

// Loader dispatches gated resource loads. Request is idempotent while a
// resource is loading or loaded.
type Loader interface {
	Request(ctx context.Context, d resource.Descriptor) bool
	State(identifier string) resource.LoadState
}

// View is the controller state a page consumes after any operation.
type View struct {
	Decision   models.Decision
	ShowBanner bool
	Detailed   models.DetailedConsent
	Allowed    []resource.Descriptor
	Withheld   []resource.Descriptor
}

// Service orchestrates consent transitions over a fixed resource catalog.
// It is shared across requests; per-visitor state arrives via the store and
// session flag arguments.
type Service struct {
	catalog *resource.Catalog
	loader  Loader
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService constructs the consent controller service.
func NewService(catalog *resource.Catalog, loader Loader, opts ...Option) *Service {
	svc := &Service{catalog: catalog, loader: loader}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// EvaluateOptions tweaks a single evaluation.
type EvaluateOptions struct {
	// SuppressBanner keeps the banner hidden and the session flag untouched,
	// used for requests identified as crawlers.
	SuppressBanner bool
}

// Evaluate runs the init transition: it reads the persisted decision,
// decides banner visibility from the session flag, and dispatches the loads
// the decision permits. The banner shows at most once per browsing session
// and only while no decision exists.
func (s *Service) Evaluate(ctx context.Context, store DecisionStore, session SessionFlag, opts EvaluateOptions) View {
	decision := store.Decision(ctx)

	showBanner := false
	if decision == models.DecisionUnset && !opts.SuppressBanner && !session.Seen() {
		showBanner = true
		session.MarkSeen()
		if s.metrics != nil {
			s.metrics.IncrementBannerImpressions()
		}
	}

	s.requestAllowed(ctx, decision)
	return s.view(decision, showBanner)
}

// Update records an accepted or declined decision. Both user clicks and
// programmatic overrides take this path: the decision is persisted, the
// banner hides, and newly permitted resources are requested. Declining never
// unloads resources already loaded this page lifetime; it only prevents
// future loads.
func (s *Service) Update(ctx context.Context, store DecisionStore, decision models.Decision) (View, error) {
	if !decision.CanPersist() {
		return View{}, dErrors.New(dErrors.CodeBadRequest, "decision must be accepted or declined")
	}

	if _, err := store.SetDecision(ctx, decision); err != nil {
		return View{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record decision")
	}

	if s.metrics != nil {
		s.metrics.IncrementDecisionsRecorded(string(decision))
	}
	s.logDecision(ctx, decision)

	s.requestAllowed(ctx, decision)
	return s.view(decision, false), nil
}

// Reset erases the persisted record, returns the in-memory decision to
// Unset, and clears the session flag so the banner shows again. Resources
// already loaded stay loaded; revocation of executed scripts requires a page
// reload.
func (s *Service) Reset(ctx context.Context, store DecisionStore, session SessionFlag) (View, error) {
	if err := store.Clear(ctx); err != nil {
		return View{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to erase decision")
	}
	session.Clear()

	if s.metrics != nil {
		s.metrics.IncrementConsentResets()
	}
	s.logDecision(ctx, models.DecisionUnset)

	return s.view(models.DecisionUnset, true), nil
}

// HasConsent reports whether the visitor accepted non-essential collection.
func (s *Service) HasConsent(ctx context.Context, store DecisionStore) bool {
	return store.Decision(ctx).Granted()
}

// IsCategoryAllowed reports whether the category may load for this visitor.
// Essential is always allowed; everything else requires acceptance.
func (s *Service) IsCategoryAllowed(ctx context.Context, store DecisionStore, category models.Category) bool {
	return store.Decision(ctx).Allows(category)
}

// DetailedConsent expands the visitor's decision into per-category flags.
func (s *Service) DetailedConsent(ctx context.Context, store DecisionStore) models.DetailedConsent {
	return models.DetailedFor(store.Decision(ctx))
}

// Allowed returns the descriptors the visitor's decision permits,
// in catalog order.
func (s *Service) Allowed(ctx context.Context, store DecisionStore) []resource.Descriptor {
	return s.catalog.Allowed(store.Decision(ctx))
}

// requestAllowed dispatches loads for every permitted descriptor in catalog
// order. The loader skips anything already loading or loaded, so accept after
// decline picks up exactly the resources that were withheld.
func (s *Service) requestAllowed(ctx context.Context, decision models.Decision) {
	for _, desc := range s.catalog.Allowed(decision) {
		s.loader.Request(ctx, desc)
	}
}

func (s *Service) view(decision models.Decision, showBanner bool) View {
	return View{
		Decision:   decision,
		ShowBanner: showBanner,
		Detailed:   models.DetailedFor(decision),
		Allowed:    s.catalog.Allowed(decision),
		Withheld:   s.catalog.Withheld(decision),
	}
}

func (s *Service) logDecision(ctx context.Context, decision models.Decision) {
	if s.logger == nil {
		return
	}
	s.logger.InfoContext(ctx, "consent decision changed", "decision", decision)
}
