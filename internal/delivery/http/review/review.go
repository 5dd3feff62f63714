package http_review

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cinetrove/core/internal/model"
	usecase_overlay "github.com/cinetrove/core/internal/usecase/overlay"
)

// ReviewPublisher optionally pushes a locally persisted review upstream to the
// CMS create endpoint. Failures never undo the local write.
type ReviewPublisher interface {
	CreateReview(ctx context.Context, review model.Review) error
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
	Code    int    `json:"code"`
}

type CreateReviewRequestDTO struct {
	MovieUID     string `json:"movie_uid" binding:"required" example:"blt0a9f27c8b3e41d01"`
	ReviewerName string `json:"reviewer_name" binding:"required" example:"Sam"`
	Rating       int    `json:"rating" binding:"required" example:"4"`
	ReviewText   string `json:"review_text" binding:"required" example:"Quietly devastating and beautiful."`
}

type ReviewResponseDTO struct {
	UID          string `json:"uid"`
	MovieUID     string `json:"movie_uid"`
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
	ReviewText   string `json:"review_text"`
	CreatedAt    string `json:"created_at"`
	Upvotes      int    `json:"upvotes"`
	Downvotes    int    `json:"downvotes"`
	IsLocal      bool   `json:"is_local"`
}

type VoteRequestDTO struct {
	Direction string `json:"direction" binding:"required" example:"upvote" enums:"upvote,downvote"`
}

type VoteResponseDTO struct {
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
	HasVoted  string `json:"has_voted"`
}

type Controller struct {
	overlay   *usecase_overlay.Store
	publisher ReviewPublisher

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithPublisher enables the best-effort upstream copy of created reviews.
func WithPublisher(publisher ReviewPublisher) ControllerOption {
	return func(c *Controller) {
		c.publisher = publisher
	}
}

func New(overlay *usecase_overlay.Store, opts ...ControllerOption) *Controller {
	c := &Controller{
		overlay: overlay,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	reviews.POST("", c.createReview)
	reviews.POST("/:review_id/votes", c.vote)

	router.DELETE("/overlay", c.clearOverlay)
}

// createReview persists the review locally first; it succeeds without network
// connectivity. The CMS copy, when configured, is fire-and-forget.
func (c *Controller) createReview(ctx *gin.Context) {
	var req CreateReviewRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	review, err := c.overlay.CreateLocalReview(usecase_overlay.ReviewInput{
		MovieUID:     req.MovieUID,
		ReviewerName: req.ReviewerName,
		Rating:       req.Rating,
		ReviewText:   req.ReviewText,
	})
	if err != nil {
		var validationErr *usecase_overlay.ValidationError
		if errors.As(err, &validationErr) {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Validation failed",
				Message: validationErr.Reason,
				Field:   validationErr.Field,
				Code:    http.StatusBadRequest,
			})
			return
		}

		c.logger.Error("failed to create review", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to create review",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if c.publisher != nil {
		go func(review model.Review) {
			pushCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := c.publisher.CreateReview(pushCtx, review); err != nil {
				c.logger.Warn("failed to push review to CMS, kept locally",
					slog.String("review_uid", review.UID),
					slog.String("error", err.Error()),
				)
			}
		}(review)
	}

	ctx.JSON(http.StatusCreated, ReviewResponseDTO{
		UID:          review.UID,
		MovieUID:     review.MovieUID,
		ReviewerName: review.ReviewerName,
		Rating:       review.Rating,
		ReviewText:   review.Text,
		CreatedAt:    review.CreatedAt.Format(time.RFC3339),
		Upvotes:      review.Upvotes,
		Downvotes:    review.Downvotes,
		IsLocal:      review.IsLocal,
	})
}

func (c *Controller) vote(ctx *gin.Context) {
	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	reviewUID := ctx.Param("review_id")
	counters, err := c.overlay.RecordVote(reviewUID, model.VoteDirection(req.Direction))
	if err != nil {
		var validationErr *usecase_overlay.ValidationError
		if errors.As(err, &validationErr) {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Validation failed",
				Message: validationErr.Reason,
				Field:   validationErr.Field,
				Code:    http.StatusBadRequest,
			})
			return
		}

		c.logger.Error("failed to record vote",
			slog.String("review_uid", reviewUID),
			slog.String("error", err.Error()),
		)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to record vote",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, VoteResponseDTO{
		Upvotes:   counters.Upvotes,
		Downvotes: counters.Downvotes,
		HasVoted:  string(c.overlay.HasVoted(reviewUID)),
	})
}

// clearOverlay wipes all locally authored reviews and votes. Used by the
// account-reset flow; the server snapshot is untouched.
func (c *Controller) clearOverlay(ctx *gin.Context) {
	if err := c.overlay.ClearAll(); err != nil {
		c.logger.Error("failed to clear overlay", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to clear overlay",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}
