package usecase_catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/cinetrove/core/internal/model"
	service_query "github.com/cinetrove/core/internal/service/query"
	"github.com/cinetrove/core/pkg/kit"
)

var ErrBulkLoadFailed = errors.New("bulk load failed")

// ContentSource is the queryable document store behind the catalog. Validate
// must fail only when required credentials are absent; per-type fetches return
// their own errors and are degraded independently.
type ContentSource interface {
	Validate() error
	Movies(ctx context.Context, selector string) ([]model.Movie, error)
	Genres(ctx context.Context, selector string) ([]model.Genre, error)
	Directors(ctx context.Context, selector string) ([]model.Director, error)
	Actors(ctx context.Context, selector string) ([]model.Actor, error)
	Reviews(ctx context.Context, selector string) ([]model.Review, error)
	Settings(ctx context.Context, selector string) (*model.AppSettings, error)
}

type VariantProvider interface {
	Selector() string
}

// LifecycleNotifier receives bulk-load lifecycle events, driving the loading
// screen over the websocket hub.
type LifecycleNotifier interface {
	LoadStarted()
	LoadFinished(stats model.Stats, err error)
}

// Store owns the in-memory snapshot of all catalog entities. One bulk load
// produces one immutable snapshot; reads are synchronous against it and never
// block or fail. A refresh replaces the snapshot atomically.
type Store struct {
	source   ContentSource
	variants VariantProvider
	logger   *slog.Logger
	metrics  *kit.CatalogMetrics
	notifier LifecycleNotifier

	group singleflight.Group

	mu       sync.RWMutex
	snapshot *model.Snapshot
	ready    bool
}

type StoreOption func(*Store)

func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithMetrics(metrics *kit.CatalogMetrics) StoreOption {
	return func(s *Store) {
		s.metrics = metrics
	}
}

func WithNotifier(notifier LifecycleNotifier) StoreOption {
	return func(s *Store) {
		s.notifier = notifier
	}
}

func New(source ContentSource, variants VariantProvider, opts ...StoreOption) *Store {
	s := &Store{
		source:   source,
		variants: variants,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize is idempotent: an already-ready store returns its stats
// immediately, and concurrent callers share a single in-flight bulk load
// instead of triggering duplicate fetch storms.
func (s *Store) Initialize(ctx context.Context) (model.Stats, error) {
	if s.IsReady() {
		return s.Stats(), nil
	}

	v, err, _ := s.group.Do("bulk-load", func() (any, error) {
		return s.bulkLoad(ctx)
	})
	if err != nil {
		return s.Stats(), err
	}

	stats, ok := v.(model.Stats)
	if !ok {
		return s.Stats(), nil
	}
	return stats, nil
}

// Refresh re-runs the bulk load unconditionally, even when already
// initialized. Overlapping refreshes are not coalesced: each issues its own
// fetch sequence and the last one to complete wins the snapshot. Accepted
// race for fast profile switching; a failed refresh keeps the old snapshot.
func (s *Store) Refresh(ctx context.Context) (model.Stats, error) {
	return s.bulkLoad(ctx)
}

func (s *Store) bulkLoad(ctx context.Context) (model.Stats, error) {
	if s.notifier != nil {
		s.notifier.LoadStarted()
	}
	start := time.Now()

	if err := s.source.Validate(); err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrBulkLoadFailed, err)
		s.logger.Error("bulk load aborted", slog.String("error", err.Error()))
		if s.notifier != nil {
			s.notifier.LoadFinished(s.Stats(), wrapped)
		}
		return s.Stats(), wrapped
	}

	selector := ""
	if s.variants != nil {
		selector = s.variants.Selector()
	}
	s.logger.Info("bulk load started", slog.String("variant_selector", selector))

	// Content types are fetched sequentially so one failing type is isolated:
	// its slice degrades to empty and the remaining fetches still run.
	snap := &model.Snapshot{
		Movies:    fetchSlice(s, "movie", func() ([]model.Movie, error) { return s.source.Movies(ctx, selector) }),
		Genres:    fetchSlice(s, "genre", func() ([]model.Genre, error) { return s.source.Genres(ctx, selector) }),
		Directors: fetchSlice(s, "director", func() ([]model.Director, error) { return s.source.Directors(ctx, selector) }),
		Actors:    fetchSlice(s, "actor", func() ([]model.Actor, error) { return s.source.Actors(ctx, selector) }),
		Reviews:   fetchSlice(s, "reviewnew", func() ([]model.Review, error) { return s.source.Reviews(ctx, selector) }),
	}

	settings, err := s.source.Settings(ctx, selector)
	if err != nil {
		s.recordFetchFailure("app_settings", err)
	} else {
		snap.Settings = settings
	}

	attachDirectedMovies(snap)

	s.mu.Lock()
	s.snapshot = snap
	s.ready = true
	s.mu.Unlock()

	stats := s.Stats()
	if s.metrics != nil {
		s.metrics.LoadDuration.Observe(time.Since(start).Seconds())
		s.metrics.ObserveCounts(stats.Movies, stats.Genres, stats.Directors, stats.Actors, stats.Reviews)
	}
	s.logger.Info("bulk load finished",
		slog.Int("movies", stats.Movies),
		slog.Int("genres", stats.Genres),
		slog.Int("directors", stats.Directors),
		slog.Int("actors", stats.Actors),
		slog.Int("reviews", stats.Reviews),
		slog.Duration("took", time.Since(start)),
	)
	if s.notifier != nil {
		s.notifier.LoadFinished(stats, nil)
	}

	return stats, nil
}

func fetchSlice[T any](s *Store, contentType string, fetch func() ([]T, error)) []T {
	items, err := fetch()
	if err != nil {
		s.recordFetchFailure(contentType, err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func (s *Store) recordFetchFailure(contentType string, err error) {
	s.logger.Error("entity fetch failed, slice degraded to empty",
		slog.String("content_type", contentType),
		slog.String("error", err.Error()),
	)
	if s.metrics != nil {
		s.metrics.FetchFailures.WithLabelValues(contentType).Inc()
	}
}

// attachDirectedMovies computes each director's filmography by joining the
// movie slice on director uid. Directors referenced by no movie keep an empty
// list; movie references to unknown directors are simply not joined.
func attachDirectedMovies(snap *model.Snapshot) {
	if len(snap.Directors) == 0 {
		return
	}

	byDirector := make(map[string][]model.Movie)
	for _, m := range snap.Movies {
		for _, d := range m.Directors {
			if d.UID == "" {
				continue
			}
			byDirector[d.UID] = append(byDirector[d.UID], m)
		}
	}

	for i := range snap.Directors {
		snap.Directors[i].MoviesDirected = byDirector[snap.Directors[i].UID]
	}
}

func (s *Store) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Store) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.Stats{Ready: s.ready}
	if s.snapshot != nil {
		stats.Movies = len(s.snapshot.Movies)
		stats.Genres = len(s.snapshot.Genres)
		stats.Directors = len(s.snapshot.Directors)
		stats.Actors = len(s.snapshot.Actors)
		stats.Reviews = len(s.snapshot.Reviews)
	}
	return stats
}

func (s *Store) current() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil
	}
	return s.snapshot
}

func (s *Store) AllMovies() []model.Movie {
	snap := s.current()
	if snap == nil {
		return []model.Movie{}
	}
	return snap.Movies
}

func (s *Store) MovieBySlug(slug string) *model.Movie {
	snap := s.current()
	if snap == nil {
		return nil
	}
	for i := range snap.Movies {
		if snap.Movies[i].Slug == slug {
			m := snap.Movies[i]
			return &m
		}
	}
	return nil
}

func (s *Store) MoviesByGenre(slug string) []model.Movie {
	return service_query.MoviesByGenreSlug(s.AllMovies(), slug)
}

func (s *Store) AllGenres() []model.Genre {
	snap := s.current()
	if snap == nil {
		return []model.Genre{}
	}
	return snap.Genres
}

func (s *Store) GenreBySlug(slug string) *model.Genre {
	snap := s.current()
	if snap == nil {
		return nil
	}
	for i := range snap.Genres {
		if snap.Genres[i].Slug == slug {
			g := snap.Genres[i]
			return &g
		}
	}
	return nil
}

func (s *Store) AllDirectors() []model.Director {
	snap := s.current()
	if snap == nil {
		return []model.Director{}
	}
	return snap.Directors
}

func (s *Store) DirectorBySlug(slug string) *model.Director {
	snap := s.current()
	if snap == nil {
		return nil
	}
	for i := range snap.Directors {
		if snap.Directors[i].Slug == slug {
			d := snap.Directors[i]
			return &d
		}
	}
	return nil
}

func (s *Store) AllActors() []model.Actor {
	snap := s.current()
	if snap == nil {
		return []model.Actor{}
	}
	return snap.Actors
}

func (s *Store) ActorBySlug(slug string) *model.Actor {
	snap := s.current()
	if snap == nil {
		return nil
	}
	for i := range snap.Actors {
		if snap.Actors[i].Slug == slug {
			a := snap.Actors[i]
			return &a
		}
	}
	return nil
}

func (s *Store) ReviewsForMovie(movieUID string) []model.Review {
	snap := s.current()
	if snap == nil {
		return []model.Review{}
	}
	out := make([]model.Review, 0)
	for _, r := range snap.Reviews {
		if r.MovieUID == movieUID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) Settings() *model.AppSettings {
	snap := s.current()
	if snap == nil {
		return nil
	}
	return snap.Settings
}
