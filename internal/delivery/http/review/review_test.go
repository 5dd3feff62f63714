//go:build !integration
// +build !integration

package http_review

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"

	infra_kv_memory "github.com/cinetrove/core/internal/infra/kv/memory"
	usecase_overlay "github.com/cinetrove/core/internal/usecase/overlay"
)

type ReviewControllerUnitSuite struct {
	suite.Suite
}

func initRouter() (*gin.Engine, *usecase_overlay.Store) {
	gin.SetMode(gin.TestMode)

	overlay := usecase_overlay.New(infra_kv_memory.New())
	controller := New(overlay)

	router := gin.New()
	controller.RegisterRoutes(router.Group("/api/v1"))
	return router, overlay
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func (s *ReviewControllerUnitSuite) TestCreateReview(t provider.T) {
	t.Run("Should create a local review and return 201", func(t provider.T) {
		router, overlay := initRouter()

		resp := doJSON(router, http.MethodPost, "/api/v1/reviews", `{
			"movie_uid": "movie-1",
			"reviewer_name": "Sam",
			"rating": 5,
			"review_text": "Quietly devastating and beautiful."
		}`)

		assert.Equal(t, http.StatusCreated, resp.Code)

		var dto ReviewResponseDTO
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dto))
		assert.True(t, dto.IsLocal)
		assert.NotEmpty(t, dto.UID)

		assert.Len(t, overlay.LocalReviewsForMovie("movie-1"), 1)
	})

	t.Run("Should answer validation failures with the offending field", func(t provider.T) {
		router, overlay := initRouter()

		resp := doJSON(router, http.MethodPost, "/api/v1/reviews", `{
			"movie_uid": "movie-1",
			"reviewer_name": "Sam",
			"rating": 5,
			"review_text": "Too short"
		}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)

		var errResp ErrorResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
		assert.Equal(t, "reviewText", errResp.Field)

		assert.Empty(t, overlay.LocalReviewsForMovie("movie-1"))
	})

	t.Run("Should reject a malformed body", func(t provider.T) {
		router, _ := initRouter()

		resp := doJSON(router, http.MethodPost, "/api/v1/reviews", `{"movie_uid":`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func (s *ReviewControllerUnitSuite) TestVote(t provider.T) {
	t.Run("Should record a vote and report the held direction", func(t provider.T) {
		router, _ := initRouter()

		resp := doJSON(router, http.MethodPost, "/api/v1/reviews/review-1/votes", `{"direction": "upvote"}`)

		assert.Equal(t, http.StatusOK, resp.Code)

		var dto VoteResponseDTO
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dto))
		assert.Equal(t, 1, dto.Upvotes)
		assert.Equal(t, 0, dto.Downvotes)
		assert.Equal(t, "upvote", dto.HasVoted)
	})

	t.Run("Should report no held direction after a toggle-off", func(t provider.T) {
		router, _ := initRouter()

		_ = doJSON(router, http.MethodPost, "/api/v1/reviews/review-1/votes", `{"direction": "upvote"}`)
		resp := doJSON(router, http.MethodPost, "/api/v1/reviews/review-1/votes", `{"direction": "upvote"}`)

		assert.Equal(t, http.StatusOK, resp.Code)

		var dto VoteResponseDTO
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dto))
		assert.Equal(t, 0, dto.Upvotes)
		assert.Empty(t, dto.HasVoted)
	})

	t.Run("Should reject unknown directions", func(t provider.T) {
		router, _ := initRouter()

		resp := doJSON(router, http.MethodPost, "/api/v1/reviews/review-1/votes", `{"direction": "sideways"}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)

		var errResp ErrorResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
		assert.Equal(t, "direction", errResp.Field)
	})
}

func (s *ReviewControllerUnitSuite) TestClearOverlay(t provider.T) {
	t.Run("Should wipe the overlay and return 204", func(t provider.T) {
		router, overlay := initRouter()

		_ = doJSON(router, http.MethodPost, "/api/v1/reviews/review-1/votes", `{"direction": "downvote"}`)

		resp := doJSON(router, http.MethodDelete, "/api/v1/overlay", "")

		assert.Equal(t, http.StatusNoContent, resp.Code)
		assert.Empty(t, string(overlay.HasVoted("review-1")))
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ReviewControllerUnitSuite))
}
