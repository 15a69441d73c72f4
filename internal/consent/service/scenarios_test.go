package service

// Transition-table scenarios against real in-memory collaborators: the
// cookie-less store, the memory session flag, and a loader with an instant
// fake fetcher.

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consentgate/internal/consent/models"
	"consentgate/internal/consent/store"
	"consentgate/internal/resource"
)

type scenario struct {
	svc     *Service
	store   *store.ConsentStore
	session *store.MemorySession
	loader  *resource.Loader
}

func newScenario(t *testing.T) *scenario {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	loader := resource.NewLoader(
		resource.FetcherFunc(func(context.Context, resource.Descriptor) error { return nil }),
		resource.WithLogger(logger),
	)
	return &scenario{
		svc:     NewService(suiteCatalog(t), loader, WithLogger(logger)),
		store:   store.New(store.NewMemoryKV(), store.WithLogger(logger)),
		session: store.NewMemorySession(),
		loader:  loader,
	}
}

func (sc *scenario) evaluate(opts EvaluateOptions) View {
	view := sc.svc.Evaluate(context.Background(), sc.store, sc.session, opts)
	sc.loader.Drain()
	return view
}

func (sc *scenario) update(t *testing.T, d models.Decision) View {
	t.Helper()
	view, err := sc.svc.Update(context.Background(), sc.store, d)
	require.NoError(t, err)
	sc.loader.Drain()
	return view
}

func TestFirstViewShowsBannerAndLoadsEssentialOnly(t *testing.T) {
	sc := newScenario(t)

	view := sc.evaluate(EvaluateOptions{})

	assert.Equal(t, models.DecisionUnset, view.Decision)
	assert.True(t, view.ShowBanner)
	assert.True(t, sc.session.Seen(), "first presentation must set the session flag")

	assert.Equal(t, resource.LoadStateLoaded, sc.loader.State("/js/app.js"))
	assert.Equal(t, resource.LoadStateNotRequested, sc.loader.State("https://cdn.example.com/analytics.js"))
	assert.Equal(t, resource.LoadStateNotRequested, sc.loader.State("https://cdn.example.com/pixel.js"))
	assert.Len(t, view.Withheld, 2)
}

func TestSecondViewSameSessionHidesBanner(t *testing.T) {
	sc := newScenario(t)

	first := sc.evaluate(EvaluateOptions{})
	require.True(t, first.ShowBanner)

	second := sc.evaluate(EvaluateOptions{})
	assert.False(t, second.ShowBanner, "banner shows at most once per session")
	assert.Equal(t, models.DecisionUnset, second.Decision)
	assert.Equal(t, resource.LoadStateNotRequested, sc.loader.State("https://cdn.example.com/analytics.js"))
}

func TestPersistedAcceptanceLoadsAllWithoutAClick(t *testing.T) {
	sc := newScenario(t)
	_, err := sc.store.SetDecision(context.Background(), models.DecisionAccepted)
	require.NoError(t, err)

	view := sc.evaluate(EvaluateOptions{})

	assert.Equal(t, models.DecisionAccepted, view.Decision)
	assert.False(t, view.ShowBanner)
	assert.Empty(t, view.Withheld)
	for id, state := range sc.loader.States() {
		assert.Equal(t, resource.LoadStateLoaded, state, "resource %s", id)
	}
	assert.Len(t, sc.loader.States(), 3)
}

func TestPersistedDeclineLoadsEssentialOnly(t *testing.T) {
	sc := newScenario(t)
	_, err := sc.store.SetDecision(context.Background(), models.DecisionDeclined)
	require.NoError(t, err)

	view := sc.evaluate(EvaluateOptions{})

	assert.Equal(t, models.DecisionDeclined, view.Decision)
	assert.False(t, view.ShowBanner)
	assert.Equal(t, resource.LoadStateLoaded, sc.loader.State("/js/app.js"))
	assert.Equal(t, resource.LoadStateNotRequested, sc.loader.State("https://cdn.example.com/pixel.js"))
}

func TestAcceptPersistsAndLoadsEverything(t *testing.T) {
	sc := newScenario(t)
	sc.evaluate(EvaluateOptions{})

	view := sc.update(t, models.DecisionAccepted)

	assert.False(t, view.ShowBanner)
	assert.True(t, sc.svc.HasConsent(context.Background(), sc.store))

	record, ok := sc.store.Record(context.Background())
	require.True(t, ok)
	assert.Equal(t, models.DecisionAccepted, record.Status)

	assert.Equal(t, resource.LoadStateLoaded, sc.loader.State("https://cdn.example.com/analytics.js"))
	assert.Equal(t, resource.LoadStateLoaded, sc.loader.State("https://cdn.example.com/pixel.js"))
}

func TestDeclineLeavesNonEssentialUnrequested(t *testing.T) {
	sc := newScenario(t)
	sc.evaluate(EvaluateOptions{})

	view := sc.update(t, models.DecisionDeclined)

	assert.False(t, view.ShowBanner)
	assert.False(t, sc.svc.HasConsent(context.Background(), sc.store))

	record, ok := sc.store.Record(context.Background())
	require.True(t, ok)
	assert.Equal(t, models.DecisionDeclined, record.Status)

	assert.Equal(t, resource.LoadStateNotRequested, sc.loader.State("https://cdn.example.com/analytics.js"))
	assert.Equal(t, resource.LoadStateNotRequested, sc.loader.State("https://cdn.example.com/pixel.js"))
}

func TestLateAcceptPicksUpWithheldResources(t *testing.T) {
	sc := newScenario(t)
	sc.evaluate(EvaluateOptions{})
	sc.update(t, models.DecisionDeclined)
	require.Equal(t, resource.LoadStateNotRequested, sc.loader.State("https://cdn.example.com/analytics.js"))

	sc.update(t, models.DecisionAccepted)

	assert.Equal(t, resource.LoadStateLoaded, sc.loader.State("https://cdn.example.com/analytics.js"))
	assert.Equal(t, resource.LoadStateLoaded, sc.loader.State("https://cdn.example.com/pixel.js"))
}

func TestDeclineAfterAcceptDoesNotUnload(t *testing.T) {
	sc := newScenario(t)
	sc.evaluate(EvaluateOptions{})
	sc.update(t, models.DecisionAccepted)
	require.Equal(t, resource.LoadStateLoaded, sc.loader.State("https://cdn.example.com/analytics.js"))

	view := sc.update(t, models.DecisionDeclined)

	// Already-executed resources cannot be un-executed; only future loads
	// are prevented.
	assert.Equal(t, resource.LoadStateLoaded, sc.loader.State("https://cdn.example.com/analytics.js"))
	assert.Len(t, view.Withheld, 2)
	assert.False(t, sc.svc.IsCategoryAllowed(context.Background(), sc.store, models.CategoryAnalytics))
}

func TestResetClearsEverythingAndShowsBannerAgain(t *testing.T) {
	sc := newScenario(t)
	sc.evaluate(EvaluateOptions{})
	sc.update(t, models.DecisionAccepted)

	view, err := sc.svc.Reset(context.Background(), sc.store, sc.session)
	require.NoError(t, err)

	assert.Equal(t, models.DecisionUnset, view.Decision)
	assert.True(t, view.ShowBanner)

	_, ok := sc.store.Record(context.Background())
	assert.False(t, ok, "persisted record must be erased")
	assert.False(t, sc.session.Seen(), "session flag must clear so the banner can show again")

	next := sc.evaluate(EvaluateOptions{})
	assert.True(t, next.ShowBanner, "post-reset page view presents the banner again")

	// Loaded resources stay loaded for the rest of the page lifetime.
	assert.Equal(t, resource.LoadStateLoaded, sc.loader.State("https://cdn.example.com/analytics.js"))
}

func TestCategoryGatingSurface(t *testing.T) {
	sc := newScenario(t)
	ctx := context.Background()

	assert.True(t, sc.svc.IsCategoryAllowed(ctx, sc.store, models.CategoryEssential))
	assert.False(t, sc.svc.IsCategoryAllowed(ctx, sc.store, models.CategoryAnalytics))

	sc.update(t, models.DecisionAccepted)
	assert.True(t, sc.svc.IsCategoryAllowed(ctx, sc.store, models.CategoryAnalytics))
	assert.True(t, sc.svc.IsCategoryAllowed(ctx, sc.store, models.CategoryEssential))

	detailed := sc.svc.DetailedConsent(ctx, sc.store)
	assert.True(t, detailed.Analytics)
	assert.True(t, detailed.Marketing)
	assert.True(t, detailed.Preferences)

	sc.update(t, models.DecisionDeclined)
	detailed = sc.svc.DetailedConsent(ctx, sc.store)
	assert.True(t, detailed.Essential)
	assert.False(t, detailed.Analytics)
}

func TestBotViewNeverSeesBanner(t *testing.T) {
	sc := newScenario(t)

	view := sc.evaluate(EvaluateOptions{SuppressBanner: true})

	assert.False(t, view.ShowBanner)
	assert.False(t, sc.session.Seen(), "bots must not consume the one banner impression")

	// A real visitor afterwards still gets the banner.
	human := sc.evaluate(EvaluateOptions{})
	assert.True(t, human.ShowBanner)
}

func TestAllowedFollowsCatalogOrder(t *testing.T) {
	sc := newScenario(t)
	sc.update(t, models.DecisionAccepted)

	allowed := sc.svc.Allowed(context.Background(), sc.store)
	require.Len(t, allowed, 3)
	assert.Equal(t, "/js/app.js", allowed[0].Identifier)
	assert.Equal(t, "https://cdn.example.com/analytics.js", allowed[1].Identifier)
	assert.Equal(t, "https://cdn.example.com/pixel.js", allowed[2].Identifier)
}
