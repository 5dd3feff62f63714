package http_profile

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinetrove/core/internal/model"
)

type TraitsSetter interface {
	SetTraits(ctx context.Context, traits map[string]string) (bool, error)
	Selector() string
}

type Refresher interface {
	Refresh(ctx context.Context) (model.Stats, error)
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

type SetTraitsRequestDTO struct {
	Traits map[string]string `json:"traits" binding:"required" example:"favorite_genre:horror"`
}

type SetTraitsResponseDTO struct {
	VariantSelector string `json:"variant_selector"`
	Refreshed       bool   `json:"refreshed"`
}

type Controller struct {
	resolver TraitsSetter
	store    Refresher

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(resolver TraitsSetter, store Refresher, opts ...ControllerOption) *Controller {
	c := &Controller{
		resolver: resolver,
		store:    store,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/profile", c.setTraits)
}

// setTraits forwards audience traits to the personalization engine and, when
// the variant selector changed, re-runs the bulk load so the snapshot matches
// the newly selected variants. The resolver never refreshes on its own.
func (c *Controller) setTraits(ctx *gin.Context) {
	var req SetTraitsRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	changed, err := c.resolver.SetTraits(ctx.Request.Context(), req.Traits)
	if err != nil {
		c.logger.Error("failed to set traits", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to set traits",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if changed {
		if _, err := c.store.Refresh(ctx.Request.Context()); err != nil {
			// The previous snapshot stays live; stale content beats a blank screen.
			c.logger.Error("refresh after variant change failed, keeping previous snapshot",
				slog.String("error", err.Error()))
		}
	}

	ctx.JSON(http.StatusOK, SetTraitsResponseDTO{
		VariantSelector: c.resolver.Selector(),
		Refreshed:       changed,
	})
}
