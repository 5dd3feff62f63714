package usecase_overlay

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/cinetrove/core/internal/model"
)

// Overlay keys in the durable KV. One list of locally authored reviews, one
// tally map and one single-vote-per-browser direction map, all review-scoped.
const (
	keyLocalReviews   = "overlay:reviews"
	keyVoteTallies    = "overlay:votes:tally"
	keyVoteDirections = "overlay:votes:direction"
)

const minReviewTextLen = 10

var ErrStorage = errors.New("overlay storage failed")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// KV is the durable local storage collaborator: a synchronous string-keyed
// store surviving restarts. Get returns "" for absent keys.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store layers browser-local records on top of the server snapshot. Reviews
// and votes recorded here are merged with server data at read time and never
// replace it; votes in particular never travel upstream.
type Store struct {
	kv     KV
	logger *slog.Logger

	// Read-modify-write sequences on the vote maps run under mu as one
	// critical section so the tally and the direction flag move together.
	mu sync.Mutex

	now    func() time.Time
	newUID func() string
}

type StoreOption func(*Store)

func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func WithUIDSource(newUID func() string) StoreOption {
	return func(s *Store) {
		s.newUID = newUID
	}
}

func New(kv KV, opts ...StoreOption) *Store {
	s := &Store{
		kv:     kv,
		logger: slog.Default(),
		now:    time.Now,
		newUID: func() string {
			return "local_" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type ReviewInput struct {
	MovieUID     string
	ReviewerName string
	ReviewText   string
	Rating       int
}

// CreateLocalReview validates the input and appends a fully client-authored
// review to the durable list. On a validation error nothing is written.
func (s *Store) CreateLocalReview(input ReviewInput) (model.Review, error) {
	if strings.TrimSpace(input.MovieUID) == "" {
		return model.Review{}, &ValidationError{Field: "movieUid", Reason: "must not be empty"}
	}
	if strings.TrimSpace(input.ReviewerName) == "" {
		return model.Review{}, &ValidationError{Field: "reviewerName", Reason: "must not be empty"}
	}
	text := strings.TrimSpace(input.ReviewText)
	if utf8.RuneCountInString(text) < minReviewTextLen {
		return model.Review{}, &ValidationError{
			Field:  "reviewText",
			Reason: fmt.Sprintf("must be at least %d characters", minReviewTextLen),
		}
	}
	if input.Rating < 1 || input.Rating > 5 {
		return model.Review{}, &ValidationError{Field: "rating", Reason: "must be an integer between 1 and 5"}
	}

	review := model.Review{
		UID:          s.newUID(),
		MovieUID:     input.MovieUID,
		ReviewerName: strings.TrimSpace(input.ReviewerName),
		Rating:       input.Rating,
		Text:         text,
		CreatedAt:    s.now(),
		IsLocal:      true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews := s.loadLocalReviews()
	reviews = append(reviews, review)
	if err := s.storeLocalReviews(reviews); err != nil {
		return model.Review{}, err
	}

	return review, nil
}

// LocalReviewsForMovie returns the locally authored reviews for one movie.
func (s *Store) LocalReviewsForMovie(movieUID string) []model.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Review, 0)
	for _, r := range s.loadLocalReviews() {
		if r.MovieUID == movieUID {
			out = append(out, r)
		}
	}
	return out
}

// MergeReviewsForMovie concatenates server reviews with local reviews for the
// movie and orders the result by descending timestamp. Pure with respect to
// its inputs: the server slice is copied, never mutated.
func (s *Store) MergeReviewsForMovie(serverReviews []model.Review, movieUID string) []model.Review {
	merged := make([]model.Review, 0, len(serverReviews))
	merged = append(merged, serverReviews...)
	merged = append(merged, s.LocalReviewsForMovie(movieUID)...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	return merged
}

// RecordVote applies the single-vote-per-browser state machine. Voting in the
// direction already held toggles the vote off and drops the cached tally, so
// server counters show through again on merge; voting the other way switches
// it, decrementing the old counter and incrementing the new one in the same
// write. An unknown direction is rejected before anything is read.
func (s *Store) RecordVote(reviewUID string, direction model.VoteDirection) (model.VoteCounters, error) {
	if direction != model.VoteUp && direction != model.VoteDown {
		return model.VoteCounters{}, &ValidationError{Field: "direction", Reason: "must be upvote or downvote"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tallies := s.loadVoteTallies()
	directions := s.loadVoteDirections()
	previousTallies, hadTallies := tallies[reviewUID]

	counters := tallies[reviewUID]
	toggledOff := false
	switch model.VoteDirection(directions[reviewUID]) {
	case direction:
		applyDelta(&counters, direction, -1)
		delete(directions, reviewUID)
		toggledOff = true
	case model.VoteNone:
		applyDelta(&counters, direction, +1)
		directions[reviewUID] = string(direction)
	default:
		applyDelta(&counters, opposite(direction), -1)
		applyDelta(&counters, direction, +1)
		directions[reviewUID] = string(direction)
	}
	counters.UpdatedAt = s.now()

	if toggledOff {
		delete(tallies, reviewUID)
	} else {
		tallies[reviewUID] = counters
	}

	if err := s.storeJSON(keyVoteTallies, tallies); err != nil {
		return model.VoteCounters{}, err
	}
	if err := s.storeJSON(keyVoteDirections, directions); err != nil {
		// The tally and the direction flag must land together; roll the tally
		// back so a failed direction write cannot leave drifted counters.
		if hadTallies {
			tallies[reviewUID] = previousTallies
		} else {
			delete(tallies, reviewUID)
		}
		_ = s.storeJSON(keyVoteTallies, tallies)
		return model.VoteCounters{}, err
	}

	return counters, nil
}

// HasVoted reports the active vote direction this browser holds for a review,
// or VoteNone.
func (s *Store) HasVoted(reviewUID string) model.VoteDirection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.VoteDirection(s.loadVoteDirections()[reviewUID])
}

// MergeVotesIntoReviews overlays cached vote counters onto matching reviews
// by uid. Reviews without an overlay entry pass through untouched.
func (s *Store) MergeVotesIntoReviews(reviews []model.Review) []model.Review {
	s.mu.Lock()
	tallies := s.loadVoteTallies()
	s.mu.Unlock()

	out := make([]model.Review, len(reviews))
	copy(out, reviews)
	for i := range out {
		if counters, ok := tallies[out[i].UID]; ok {
			out[i].Upvotes = counters.Upvotes
			out[i].Downvotes = counters.Downvotes
		}
	}
	return out
}

// ClearAll wipes the local review list and both vote maps. The server
// snapshot is untouched.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{keyLocalReviews, keyVoteTallies, keyVoteDirections} {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("%w: %w", ErrStorage, err)
		}
	}
	return nil
}

func applyDelta(counters *model.VoteCounters, direction model.VoteDirection, delta int) {
	switch direction {
	case model.VoteUp:
		counters.Upvotes += delta
		if counters.Upvotes < 0 {
			counters.Upvotes = 0
		}
	case model.VoteDown:
		counters.Downvotes += delta
		if counters.Downvotes < 0 {
			counters.Downvotes = 0
		}
	}
}

func opposite(direction model.VoteDirection) model.VoteDirection {
	if direction == model.VoteUp {
		return model.VoteDown
	}
	return model.VoteUp
}

// storedReview is the persisted shape of a local review.
type storedReview struct {
	UID          string    `json:"uid"`
	MovieUID     string    `json:"movie_uid"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Text         string    `json:"review_text"`
	CreatedAt    time.Time `json:"created_at"`
	Upvotes      int       `json:"upvotes"`
	Downvotes    int       `json:"downvotes"`
}

func (s *Store) loadLocalReviews() []model.Review {
	var stored []storedReview
	if !s.loadJSON(keyLocalReviews, &stored) {
		return nil
	}

	reviews := make([]model.Review, 0, len(stored))
	for _, r := range stored {
		reviews = append(reviews, model.Review{
			UID:          r.UID,
			MovieUID:     r.MovieUID,
			ReviewerName: r.ReviewerName,
			Rating:       r.Rating,
			Text:         r.Text,
			CreatedAt:    r.CreatedAt,
			Upvotes:      r.Upvotes,
			Downvotes:    r.Downvotes,
			IsLocal:      true,
		})
	}
	return reviews
}

func (s *Store) storeLocalReviews(reviews []model.Review) error {
	stored := make([]storedReview, 0, len(reviews))
	for _, r := range reviews {
		stored = append(stored, storedReview{
			UID:          r.UID,
			MovieUID:     r.MovieUID,
			ReviewerName: r.ReviewerName,
			Rating:       r.Rating,
			Text:         r.Text,
			CreatedAt:    r.CreatedAt,
			Upvotes:      r.Upvotes,
			Downvotes:    r.Downvotes,
		})
	}
	return s.storeJSON(keyLocalReviews, stored)
}

func (s *Store) loadVoteTallies() map[string]model.VoteCounters {
	tallies := make(map[string]model.VoteCounters)
	s.loadJSON(keyVoteTallies, &tallies)
	if tallies == nil {
		tallies = make(map[string]model.VoteCounters)
	}
	return tallies
}

func (s *Store) loadVoteDirections() map[string]string {
	directions := make(map[string]string)
	s.loadJSON(keyVoteDirections, &directions)
	if directions == nil {
		directions = make(map[string]string)
	}
	return directions
}

// loadJSON decodes an overlay key into out. Absent keys and unparsable blobs
// both read as an empty overlay; corruption is logged, never propagated.
func (s *Store) loadJSON(key string, out any) bool {
	raw, err := s.kv.Get(key)
	if err != nil {
		s.logger.Warn("overlay read failed, treating as empty",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("overlay blob corrupted, treating as empty",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

func (s *Store) storeJSON(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if err := s.kv.Set(key, string(raw)); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}
