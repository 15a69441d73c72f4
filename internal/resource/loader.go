package resource

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"consentgate/internal/resource/tracer"
)

// LoadState tracks one resource through its in-memory lifecycle. States are
// never persisted; every process start begins from NotRequested.
type LoadState string

const (
	LoadStateNotRequested LoadState = "not_requested"
	LoadStateLoading      LoadState = "loading"
	LoadStateLoaded       LoadState = "loaded"
	LoadStateFailed       LoadState = "failed"
)

// LoadObserver receives load lifecycle notifications, typically for metrics.
type LoadObserver interface {
	LoadStarted(category string)
	LoadFinished(category, result string, seconds float64)
}

// Loader requests resource fetches at most once per identifier and records
// their outcomes. Requests are fire-and-forget: the caller never blocks on a
// fetch, concurrent requests for one identifier collapse into a single fetch,
// and one resource's failure never affects its siblings.
type Loader struct {
	mu      sync.Mutex
	states  map[string]LoadState
	group   singleflight.Group
	wg      sync.WaitGroup
	fetcher Fetcher

	logger   *slog.Logger
	observer LoadObserver
	tracer   tracer.Tracer
}

// LoaderOption configures the Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger instance for the loader.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithObserver wires load lifecycle metrics.
func WithObserver(observer LoadObserver) LoaderOption {
	return func(l *Loader) {
		l.observer = observer
	}
}

// WithTracer sets the tracer used around fetches.
func WithTracer(t tracer.Tracer) LoaderOption {
	return func(l *Loader) {
		if t != nil {
			l.tracer = t
		}
	}
}

// NewLoader constructs a loader over the given fetcher.
func NewLoader(fetcher Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		states:  make(map[string]LoadState),
		fetcher: fetcher,
		tracer:  tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Request asks for the resource to be loaded. Loaded resources are never
// refetched, and requests arriving while a load is in flight join it rather
// than dispatching another attempt. Returns whether this call initiated a new
// attempt. A Failed resource may be explicitly re-requested; there is no
// automatic retry.
func (l *Loader) Request(ctx context.Context, d Descriptor) bool {
	l.mu.Lock()
	state := l.states[d.Identifier]
	if state == LoadStateLoaded {
		l.mu.Unlock()
		return false
	}
	joined := state == LoadStateLoading
	l.states[d.Identifier] = LoadStateLoading
	l.wg.Add(1)
	l.mu.Unlock()

	if !joined && l.observer != nil {
		l.observer.LoadStarted(string(d.Category))
	}

	// The fetch must outlive the triggering request; only the load itself
	// carries a deadline, via the fetcher.
	go l.load(context.WithoutCancel(ctx), d)
	return !joined
}

func (l *Loader) load(ctx context.Context, d Descriptor) {
	defer l.wg.Done()

	// Concurrent requests for one identifier collapse here: singleflight runs
	// a single fetch and every joined request waits on its outcome.
	_, _, _ = l.group.Do(d.Identifier, func() (any, error) {
		l.fetchOnce(ctx, d)
		return nil, nil
	})
}

// fetchOnce performs one fetch attempt and records its terminal state. It
// runs at most once per in-flight identifier, guarded by the singleflight
// group.
func (l *Loader) fetchOnce(ctx context.Context, d Descriptor) {
	l.mu.Lock()
	if l.states[d.Identifier] == LoadStateLoaded {
		// A joined request scheduled after the shared fetch completed.
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	start := time.Now()
	ctx, span := l.tracer.Start(ctx, "resource.load",
		tracer.String("resource.identifier", d.Identifier),
		tracer.String("resource.category", string(d.Category)),
		tracer.String("resource.kind", string(d.Kind)),
	)
	err := l.fetcher.Fetch(ctx, d)
	span.End(err)

	result := string(LoadStateLoaded)
	l.mu.Lock()
	if err != nil {
		l.states[d.Identifier] = LoadStateFailed
		result = string(LoadStateFailed)
	} else {
		l.states[d.Identifier] = LoadStateLoaded
	}
	l.mu.Unlock()

	if err != nil {
		// Load failures degrade the page, never break it. No retry.
		if l.logger != nil {
			l.logger.Warn("resource load failed",
				"identifier", d.Identifier,
				"category", d.Category,
				"error", err,
			)
		}
	} else if l.logger != nil {
		l.logger.Debug("resource loaded",
			"identifier", d.Identifier,
			"category", d.Category,
		)
	}

	if l.observer != nil {
		l.observer.LoadFinished(string(d.Category), result, time.Since(start).Seconds())
	}
}

// State reports the current load state for an identifier.
func (l *Loader) State(identifier string) LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	if state, ok := l.states[identifier]; ok {
		return state
	}
	return LoadStateNotRequested
}

// States returns a snapshot of every tracked load state.
func (l *Loader) States() map[string]LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]LoadState, len(l.states))
	for id, state := range l.states {
		out[id] = state
	}
	return out
}

// Drain blocks until all dispatched loads have completed. Used on shutdown
// and in tests; normal operation never waits on a load.
func (l *Loader) Drain() {
	l.wg.Wait()
}
