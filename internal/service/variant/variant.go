package service_variant

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

var ErrUnableToSetTraits = errors.New("unable to set traits")

type Engine interface {
	SetTraits(ctx context.Context, traits map[string]string) error
	VariantAliases(ctx context.Context) (map[string]string, error)
}

// Resolver derives the opaque variant selector attached to every CMS fetch.
// Engine failures are never surfaced to readers: a broken personalization
// service degrades to the unpersonalized catalog.
type Resolver struct {
	engine Engine
	logger *slog.Logger

	mu       sync.RWMutex
	selector string
}

type ResolverOption func(*Resolver)

func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func New(engine Engine, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Selector returns the last evaluated selector. Empty string means
// "default/unpersonalized" and is semantically identical to no selector at all.
func (r *Resolver) Selector() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selector
}

// Evaluate re-queries the engine and caches a deterministic comma-joined
// selector (aliases ordered by experience id). Never returns an error: any
// engine failure is logged and treated as "no variants".
func (r *Resolver) Evaluate(ctx context.Context) string {
	selector := ""
	if r.engine != nil {
		aliases, err := r.engine.VariantAliases(ctx)
		if err != nil {
			r.logger.Warn("variant evaluation failed, using default content",
				slog.String("error", err.Error()))
		} else {
			selector = joinAliases(aliases)
		}
	}

	r.mu.Lock()
	r.selector = selector
	r.mu.Unlock()

	return selector
}

// SetTraits forwards audience traits to the engine and re-evaluates the
// selector. Reports whether the selector changed so the caller knows to
// refresh the catalog; the resolver never schedules refreshes itself.
func (r *Resolver) SetTraits(ctx context.Context, traits map[string]string) (bool, error) {
	if r.engine == nil {
		return false, nil
	}

	before := r.Selector()
	if err := r.engine.SetTraits(ctx, traits); err != nil {
		return false, errors.Join(ErrUnableToSetTraits, err)
	}

	return r.Evaluate(ctx) != before, nil
}

func joinAliases(aliases map[string]string) string {
	if len(aliases) == 0 {
		return ""
	}

	experiences := make([]string, 0, len(aliases))
	for exp := range aliases {
		experiences = append(experiences, exp)
	}
	sort.Strings(experiences)

	parts := make([]string, 0, len(experiences))
	for _, exp := range experiences {
		parts = append(parts, aliases[exp])
	}
	return strings.Join(parts, ",")
}
