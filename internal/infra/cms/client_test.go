//go:build !integration
// +build !integration

package infra_cms

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"

	"github.com/cinetrove/core/internal/config"
	"github.com/cinetrove/core/internal/model"
)

type CMSClientUnitSuite struct {
	suite.Suite
}

func newTestClient(t provider.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(config.CMS{
		BaseURL:       server.URL,
		APIKey:        "test-api-key",
		DeliveryToken: "test-delivery-token",
		Environment:   "production",
	})
	return client, server
}

func (s *CMSClientUnitSuite) TestRequestShape(t provider.T) {
	t.Run("Should send credentials and environment on every fetch", func(t provider.T) {
		var captured *http.Request
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			captured = r.Clone(r.Context())
			_, _ = w.Write([]byte(`{"entries": []}`))
		})

		_, err := client.Genres(context.Background(), "")

		assert.NoError(t, err)
		assert.Equal(t, "/v3/content_types/genre/entries", captured.URL.Path)
		assert.Equal(t, "test-api-key", captured.Header.Get("api_key"))
		assert.Equal(t, "test-delivery-token", captured.Header.Get("access_token"))
		assert.Equal(t, "production", captured.URL.Query().Get("environment"))
		assert.Empty(t, captured.Header.Get("x-cs-variant-uid"))
	})

	t.Run("Should attach the variant header only when a selector is active", func(t provider.T) {
		var captured *http.Request
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			captured = r.Clone(r.Context())
			_, _ = w.Write([]byte(`{"entries": []}`))
		})

		_, err := client.Movies(context.Background(), "cs_personalize_a_1,cs_personalize_b_0")

		assert.NoError(t, err)
		assert.Equal(t, "cs_personalize_a_1,cs_personalize_b_0", captured.Header.Get("x-cs-variant-uid"))
	})

	t.Run("Should ask for hydrated references per content type", func(t provider.T) {
		var captured *http.Request
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			captured = r.Clone(r.Context())
			_, _ = w.Write([]byte(`{"entries": []}`))
		})

		_, err := client.Movies(context.Background(), "")
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"genres", "directors"}, captured.URL.Query()["include[]"])

		_, err = client.Actors(context.Background(), "")
		assert.NoError(t, err)
		assert.Equal(t, []string{"filmography.movie"}, captured.URL.Query()["include[]"])
	})

	t.Run("Should surface non-2xx responses as errors", func(t provider.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error_message": "bad query"}`))
		})

		_, err := client.Movies(context.Background(), "")

		assert.ErrorContains(t, err, "status 422")
	})
}

func (s *CMSClientUnitSuite) TestMovies(t provider.T) {
	t.Run("Should hydrate references and assets", func(t provider.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"entries": [{
				"uid": "movie-1",
				"title": "Arrival",
				"slug": "arrival",
				"release_year": 2016,
				"rating": 4.5,
				"poster": {"url": "https://assets/poster.jpg"},
				"banner": "https://assets/banner.jpg",
				"genres": [{"uid": "genre-1", "slug": "science-fiction", "name": "Science Fiction"}],
				"directors": {"uid": "director-1", "name": "Denis Villeneuve"},
				"streaming_links": [{"platform": "nettflix", "url": "https://watch/arrival"}]
			}]}`))
		})

		movies, err := client.Movies(context.Background(), "")

		assert.NoError(t, err)
		if assert.Len(t, movies, 1) {
			m := movies[0]
			assert.Equal(t, "Arrival", m.Title)
			assert.Equal(t, "https://assets/poster.jpg", m.PosterLink)
			assert.Equal(t, "https://assets/banner.jpg", m.BannerLink)
			assert.Len(t, m.Genres, 1)
			// A bare-object reference still decodes as a one-element list.
			assert.Len(t, m.Directors, 1)
			assert.Len(t, m.StreamingLinks, 1)
		}
	})

	t.Run("Should drop broken references instead of failing the entry", func(t provider.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"entries": [{
				"uid": "movie-1",
				"title": "Arrival",
				"genres": "unexpected-string",
				"directors": null
			}]}`))
		})

		movies, err := client.Movies(context.Background(), "")

		assert.NoError(t, err)
		if assert.Len(t, movies, 1) {
			assert.Empty(t, movies[0].Genres)
			assert.Empty(t, movies[0].Directors)
		}
	})

	t.Run("Should return an empty slice for zero results", func(t provider.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"entries": []}`))
		})

		movies, err := client.Movies(context.Background(), "")

		assert.NoError(t, err)
		assert.NotNil(t, movies)
		assert.Empty(t, movies)
	})
}

func (s *CMSClientUnitSuite) TestActors(t provider.T) {
	t.Run("Should flatten filmography credits into a deduplicated movie list", func(t provider.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"entries": [{
				"uid": "actor-1",
				"name": "Amy Adams",
				"filmography": [
					{"role": "Louise", "movie": [{"uid": "movie-1", "title": "Arrival"}]},
					{"role": "Louise (flashback)", "movie": [{"uid": "movie-1", "title": "Arrival"}]},
					{"role": "Unreleased", "movie": [{"uid": "movie-2", "title": ""}]},
					{"role": "Cut scene", "movie": null}
				]
			}]}`))
		})

		actors, err := client.Actors(context.Background(), "")

		assert.NoError(t, err)
		if assert.Len(t, actors, 1) {
			// One hydrated credit kept; the duplicate, the untitled movie and
			// the dangling reference are all dropped.
			assert.Len(t, actors[0].Filmography, 1)
			assert.Equal(t, "Arrival", actors[0].Filmography[0].Title)
		}
	})
}

func (s *CMSClientUnitSuite) TestReviews(t provider.T) {
	t.Run("Should extract the movie uid and parse timestamps", func(t provider.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"entries": [{
				"uid": "review-1",
				"movie": [{"uid": "movie-1", "_content_type_uid": "movie"}],
				"reviewer_name": "Sam",
				"rating": 5,
				"review_text": "Loved every minute of it.",
				"created_at": "2025-03-01T10:30:00Z",
				"upvotes": 3,
				"downvotes": 1
			}]}`))
		})

		reviews, err := client.Reviews(context.Background(), "")

		assert.NoError(t, err)
		if assert.Len(t, reviews, 1) {
			assert.Equal(t, "movie-1", reviews[0].MovieUID)
			assert.Equal(t, 2025, reviews[0].CreatedAt.Year())
			assert.Equal(t, 3, reviews[0].Upvotes)
			assert.False(t, reviews[0].IsLocal)
		}
	})
}

func (s *CMSClientUnitSuite) TestSettings(t provider.T) {
	t.Run("Should return nil when the singleton entry is missing", func(t provider.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"entries": []}`))
		})

		settings, err := client.Settings(context.Background(), "")

		assert.NoError(t, err)
		assert.Nil(t, settings)
	})

	t.Run("Should map the first entry", func(t provider.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"entries": [{"theme_color": "#0f1117", "accent_color": "#e50914"}]}`))
		})

		settings, err := client.Settings(context.Background(), "")

		assert.NoError(t, err)
		if assert.NotNil(t, settings) {
			assert.Equal(t, "#0f1117", settings.ThemeColor)
		}
	})
}

func (s *CMSClientUnitSuite) TestCreateReview(t provider.T) {
	t.Run("Should post the entry payload to the create endpoint", func(t provider.T) {
		var capturedMethod, capturedPath string
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			capturedMethod = r.Method
			capturedPath = r.URL.Path
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), `"reviewer_name":"Sam"`)
			w.WriteHeader(http.StatusCreated)
		})

		err := client.CreateReview(context.Background(), model.Review{
			UID:          "local_abc",
			MovieUID:     "movie-1",
			ReviewerName: "Sam",
			Rating:       5,
			Text:         "Loved every minute of it.",
		})

		assert.NoError(t, err)
		assert.Equal(t, http.MethodPost, capturedMethod)
		assert.Equal(t, "/v3/content_types/reviewnew/entries", capturedPath)
	})

	t.Run("Should report rejections", func(t provider.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		err := client.CreateReview(context.Background(), model.Review{})

		assert.ErrorContains(t, err, "status 403")
	})
}

func (s *CMSClientUnitSuite) TestValidate(t provider.T) {
	t.Run("Should fail without delivery credentials", func(t provider.T) {
		client := New(config.CMS{BaseURL: "https://cms.example"})

		assert.ErrorIs(t, client.Validate(), config.ErrMissingCredentials)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(CMSClientUnitSuite))
}
