//go:build !integration
// +build !integration

package usecase_overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"

	infra_kv_memory "github.com/cinetrove/core/internal/infra/kv/memory"
	"github.com/cinetrove/core/internal/model"
)

type OverlayStoreUnitSuite struct {
	suite.Suite
}

type overlayResources struct {
	store *Store
	kv    *infra_kv_memory.Store
}

func initOverlay(t provider.T) *overlayResources {
	kv := infra_kv_memory.New()

	uidSeq := 0
	store := New(kv,
		WithClock(func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		}),
		WithUIDSource(func() string {
			uidSeq++
			return "local_" + string(rune('a'+uidSeq-1))
		}),
	)

	return &overlayResources{store: store, kv: kv}
}

func validReviewInput() ReviewInput {
	return ReviewInput{
		MovieUID:     "movie-1",
		ReviewerName: "Sam",
		ReviewText:   "A genuinely great movie.",
		Rating:       5,
	}
}

func (s *OverlayStoreUnitSuite) TestCreateLocalReview(t provider.T) {
	t.Run("Should persist a valid review flagged as local", func(t provider.T) {
		r := initOverlay(t)

		review, err := r.store.CreateLocalReview(validReviewInput())

		assert.NoError(t, err)
		assert.True(t, review.IsLocal)
		assert.Equal(t, "movie-1", review.MovieUID)
		assert.NotEmpty(t, review.UID)

		local := r.store.LocalReviewsForMovie("movie-1")
		assert.Len(t, local, 1)
	})

	t.Run("Should survive a store restart over the same backend", func(t provider.T) {
		r := initOverlay(t)

		_, err := r.store.CreateLocalReview(validReviewInput())
		assert.NoError(t, err)

		reopened := New(r.kv)
		assert.Len(t, reopened.LocalReviewsForMovie("movie-1"), 1)
	})

	t.Run("Should reject short review text without writing", func(t provider.T) {
		r := initOverlay(t)

		input := validReviewInput()
		input.ReviewText = "Only nine" // 9 characters

		_, err := r.store.CreateLocalReview(input)

		var verr *ValidationError
		if assert.ErrorAs(t, err, &verr) {
			assert.Equal(t, "reviewText", verr.Field)
		}
		assert.Zero(t, r.kv.Len())
	})

	t.Run("Should not count surrounding whitespace towards the minimum", func(t provider.T) {
		r := initOverlay(t)

		input := validReviewInput()
		input.ReviewText = "   short   "

		_, err := r.store.CreateLocalReview(input)

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Zero(t, r.kv.Len())
	})

	t.Run("Should reject out-of-range ratings", func(t provider.T) {
		r := initOverlay(t)

		for _, rating := range []int{0, 6, -1} {
			input := validReviewInput()
			input.Rating = rating

			_, err := r.store.CreateLocalReview(input)

			var verr *ValidationError
			if assert.ErrorAs(t, err, &verr) {
				assert.Equal(t, "rating", verr.Field)
			}
		}
		assert.Zero(t, r.kv.Len())
	})

	t.Run("Should reject empty movie uid and reviewer name", func(t provider.T) {
		r := initOverlay(t)

		input := validReviewInput()
		input.MovieUID = "  "
		_, err := r.store.CreateLocalReview(input)
		var verr *ValidationError
		if assert.ErrorAs(t, err, &verr) {
			assert.Equal(t, "movieUid", verr.Field)
		}

		input = validReviewInput()
		input.ReviewerName = ""
		_, err = r.store.CreateLocalReview(input)
		if assert.ErrorAs(t, err, &verr) {
			assert.Equal(t, "reviewerName", verr.Field)
		}
	})
}

func (s *OverlayStoreUnitSuite) TestMergeReviews(t provider.T) {
	t.Run("Should merge without mutating the server slice", func(t provider.T) {
		r := initOverlay(t)

		_, err := r.store.CreateLocalReview(validReviewInput())
		assert.NoError(t, err)

		server := []model.Review{
			{UID: "review-1", MovieUID: "movie-1", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			{UID: "review-2", MovieUID: "movie-1", CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		}

		merged := r.store.MergeReviewsForMovie(server, "movie-1")

		assert.Len(t, merged, 3)
		assert.Len(t, server, 2)
		assert.Equal(t, "review-1", server[0].UID)

		// Local review carries the injected 2025 clock, so it sorts first.
		assert.True(t, merged[0].IsLocal)
		assert.Equal(t, "review-2", merged[1].UID)
		assert.Equal(t, "review-1", merged[2].UID)
	})

	t.Run("Should not leak reviews across movies", func(t provider.T) {
		r := initOverlay(t)

		_, err := r.store.CreateLocalReview(validReviewInput())
		assert.NoError(t, err)

		merged := r.store.MergeReviewsForMovie(nil, "movie-other")
		assert.Empty(t, merged)
	})
}

func (s *OverlayStoreUnitSuite) TestRecordVote(t provider.T) {
	t.Run("Should record a first vote and remember the direction", func(t provider.T) {
		r := initOverlay(t)

		counters, err := r.store.RecordVote("review-1", model.VoteUp)

		assert.NoError(t, err)
		assert.Equal(t, 1, counters.Upvotes)
		assert.Equal(t, 0, counters.Downvotes)
		assert.Equal(t, model.VoteUp, r.store.HasVoted("review-1"))
	})

	t.Run("Should toggle off when voting the held direction again", func(t provider.T) {
		r := initOverlay(t)

		_, err := r.store.RecordVote("review-1", model.VoteUp)
		assert.NoError(t, err)

		counters, err := r.store.RecordVote("review-1", model.VoteUp)

		assert.NoError(t, err)
		assert.Equal(t, 0, counters.Upvotes)
		assert.Equal(t, 0, counters.Downvotes)
		assert.Equal(t, model.VoteNone, r.store.HasVoted("review-1"))
	})

	t.Run("Should switch directions moving both counters in one write", func(t provider.T) {
		r := initOverlay(t)

		_, err := r.store.RecordVote("review-1", model.VoteUp)
		assert.NoError(t, err)

		counters, err := r.store.RecordVote("review-1", model.VoteDown)

		assert.NoError(t, err)
		assert.Equal(t, 0, counters.Upvotes)
		assert.Equal(t, 1, counters.Downvotes)
		assert.Equal(t, model.VoteDown, r.store.HasVoted("review-1"))
	})

	t.Run("Should reject unknown directions before reading state", func(t provider.T) {
		r := initOverlay(t)

		_, err := r.store.RecordVote("review-1", model.VoteDirection("sideways"))

		var verr *ValidationError
		if assert.ErrorAs(t, err, &verr) {
			assert.Equal(t, "direction", verr.Field)
		}
		assert.Zero(t, r.kv.Len())
	})

	t.Run("Should keep votes per review independent", func(t provider.T) {
		r := initOverlay(t)

		_, err := r.store.RecordVote("review-1", model.VoteUp)
		assert.NoError(t, err)
		_, err = r.store.RecordVote("review-2", model.VoteDown)
		assert.NoError(t, err)

		assert.Equal(t, model.VoteUp, r.store.HasVoted("review-1"))
		assert.Equal(t, model.VoteDown, r.store.HasVoted("review-2"))
	})
}

func (s *OverlayStoreUnitSuite) TestMergeVotes(t provider.T) {
	t.Run("Should overlay cached counters onto matching reviews", func(t provider.T) {
		r := initOverlay(t)

		_, err := r.store.RecordVote("review-1", model.VoteUp)
		assert.NoError(t, err)

		reviews := []model.Review{
			{UID: "review-1", Upvotes: 10, Downvotes: 2},
			{UID: "review-2", Upvotes: 7},
		}

		out := r.store.MergeVotesIntoReviews(reviews)

		assert.Equal(t, 1, out[0].Upvotes)
		assert.Equal(t, 0, out[0].Downvotes)
		assert.Equal(t, 7, out[1].Upvotes)

		// Input slice is untouched.
		assert.Equal(t, 10, reviews[0].Upvotes)
	})

	t.Run("Should let server counters show through after a toggle-off", func(t provider.T) {
		r := initOverlay(t)

		_, err := r.store.RecordVote("review-1", model.VoteUp)
		assert.NoError(t, err)
		_, err = r.store.RecordVote("review-1", model.VoteUp)
		assert.NoError(t, err)

		out := r.store.MergeVotesIntoReviews([]model.Review{
			{UID: "review-1", Upvotes: 10, Downvotes: 2},
		})

		// The toggled-off vote drops the cached tally entirely; the review is
		// no longer overlaid.
		assert.Equal(t, 10, out[0].Upvotes)
		assert.Equal(t, 2, out[0].Downvotes)
	})
}

func (s *OverlayStoreUnitSuite) TestCorruptedOverlay(t provider.T) {
	t.Run("Should treat a corrupted blob as an empty overlay", func(t provider.T) {
		r := initOverlay(t)

		assert.NoError(t, r.kv.Set(keyLocalReviews, "{not json"))
		assert.NoError(t, r.kv.Set(keyVoteTallies, "]["))
		assert.NoError(t, r.kv.Set(keyVoteDirections, "42garbage"))

		assert.Empty(t, r.store.LocalReviewsForMovie("movie-1"))
		assert.Equal(t, model.VoteNone, r.store.HasVoted("review-1"))

		// Writes still succeed and replace the corrupt blobs.
		counters, err := r.store.RecordVote("review-1", model.VoteUp)
		assert.NoError(t, err)
		assert.Equal(t, 1, counters.Upvotes)
	})
}

func (s *OverlayStoreUnitSuite) TestClearAll(t provider.T) {
	t.Run("Should wipe reviews and votes", func(t provider.T) {
		r := initOverlay(t)

		_, err := r.store.CreateLocalReview(validReviewInput())
		assert.NoError(t, err)
		_, err = r.store.RecordVote("review-1", model.VoteDown)
		assert.NoError(t, err)

		assert.NoError(t, r.store.ClearAll())

		assert.Zero(t, r.kv.Len())
		assert.Empty(t, r.store.LocalReviewsForMovie("movie-1"))
		assert.Equal(t, model.VoteNone, r.store.HasVoted("review-1"))
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(OverlayStoreUnitSuite))
}
