package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"consentgate/internal/consent/metrics"
	"consentgate/internal/consent/models"
	"consentgate/internal/consent/receipt"
	"consentgate/internal/consent/service"
	"consentgate/internal/consent/store"
	"consentgate/internal/platform/middleware"
	"consentgate/internal/resource"
	respond "consentgate/internal/transport/http/json"
	"consentgate/internal/transport/http/shared"
	dErrors "consentgate/pkg/domain-errors"
)

// Service defines the interface for consent controller operations.
type Service interface {
	Evaluate(ctx context.Context, store service.DecisionStore, session service.SessionFlag, opts service.EvaluateOptions) service.View
	Update(ctx context.Context, store service.DecisionStore, decision models.Decision) (service.View, error)
	Reset(ctx context.Context, store service.DecisionStore, session service.SessionFlag) (service.View, error)
}

// StateReader exposes the loader's per-resource state for the listing
// endpoint.
type StateReader interface {
	State(identifier string) resource.LoadState
}

// Handler handles consent-related endpoints. Visitor state lives in cookies,
// so the stores are constructed per request.
type Handler struct {
	logger    *slog.Logger
	consent   Service
	catalog   *resource.Catalog
	loader    StateReader
	issuer    *receipt.Issuer
	metrics   *metrics.Metrics
	storeOpts []store.Option
}

// Option configures the Handler.
type Option func(*Handler)

// WithIssuer enables the receipt endpoint. A nil issuer keeps it disabled.
func WithIssuer(issuer *receipt.Issuer) Option {
	return func(h *Handler) {
		h.issuer = issuer
	}
}

// WithMetrics sets the metrics instance for the handler.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithStoreOptions forwards options to the per-request consent store.
func WithStoreOptions(opts ...store.Option) Option {
	return func(h *Handler) {
		h.storeOpts = opts
	}
}

// New creates a new consent Handler.
func New(consent Service, catalog *resource.Catalog, loader StateReader, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		logger:  logger,
		consent: consent,
		catalog: catalog,
		loader:  loader,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the consent routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/consent", h.handleGetConsent)
	r.Put("/consent", h.handleUpdateConsent)
	r.Delete("/consent", h.handleResetConsent)
	r.Get("/consent/receipt", h.handleGetReceipt)
	r.Get("/resources", h.handleListResources)
}

// visitorState builds the cookie-backed store and session flag for one
// request/response pair.
func (h *Handler) visitorState(w http.ResponseWriter, r *http.Request) (*store.ConsentStore, *store.CookieSession) {
	kv := store.NewCookieKV(w, r)
	return store.New(kv, h.storeOpts...), store.NewCookieSession(w, r, store.SessionKey)
}

// handleGetConsent runs the page-view evaluation: it reads the persisted
// decision, decides banner visibility, and dispatches permitted loads.
func (h *Handler) handleGetConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, session := h.visitorState(w, r)

	view := h.consent.Evaluate(ctx, st, session, service.EvaluateOptions{
		SuppressBanner: middleware.IsBot(ctx),
	})

	respond.WriteJSON(w, http.StatusOK, formatConsentResponse(view))
}

func (h *Handler) handleUpdateConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	st, _ := h.visitorState(w, r)

	var updateReq UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		h.logger.WarnContext(ctx, "failed to decode update consent request",
			"request_id", requestID,
			"error", err,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	view, err := h.consent.Update(ctx, st, models.Decision(updateReq.Decision))
	if err != nil {
		h.logger.WarnContext(ctx, "failed to update consent",
			"request_id", requestID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, formatConsentResponse(view))
}

func (h *Handler) handleResetConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	st, session := h.visitorState(w, r)

	view, err := h.consent.Reset(ctx, st, session)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to reset consent",
			"request_id", requestID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, formatConsentResponse(view))
}

// handleGetReceipt issues a signed receipt for the visitor's persisted
// decision. With no record there is nothing to attest, and without a signing
// key the endpoint is disabled.
func (h *Handler) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	if h.issuer == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "receipts are not enabled"))
		return
	}

	st, _ := h.visitorState(w, r)
	record, ok := st.Record(ctx)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeMissingConsent, "no consent decision recorded"))
		return
	}

	token, err := h.issuer.Issue(record)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to issue consent receipt",
			"request_id", requestID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncrementReceiptsIssued()
	}
	respond.WriteJSON(w, http.StatusOK, ReceiptResponse{Receipt: token})
}

// handleListResources lists the catalog with per-resource gating and load
// state for the current visitor.
func (h *Handler) handleListResources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, _ := h.visitorState(w, r)
	decision := st.Decision(ctx)

	entries := make([]ResourceEntry, 0, h.catalog.Len())
	for _, d := range h.catalog.All() {
		entries = append(entries, ResourceEntry{
			Identifier: d.Identifier,
			Category:   d.Category,
			Kind:       d.Kind,
			Allowed:    decision.Allows(d.Category),
			State:      h.loader.State(d.Identifier),
		})
	}

	respond.WriteJSON(w, http.StatusOK, ResourcesResponse{
		Decision:  decision,
		Resources: entries,
	})
}
