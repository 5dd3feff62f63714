package http_catalog

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	service_query "github.com/cinetrove/core/internal/service/query"
	usecase_catalog "github.com/cinetrove/core/internal/usecase/catalog"
	usecase_overlay "github.com/cinetrove/core/internal/usecase/overlay"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

type Controller struct {
	store   *usecase_catalog.Store
	overlay *usecase_overlay.Store

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(store *usecase_catalog.Store,
	overlay *usecase_overlay.Store,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		store:   store,
		overlay: overlay,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	movies := router.Group("/movies")
	movies.GET("", c.getMovies)
	movies.GET("/:slug", c.getMovieBySlug)
	movies.GET("/:slug/reviews", c.getMovieReviews)

	genres := router.Group("/genres")
	genres.GET("", c.getGenres)
	genres.GET("/:slug", c.getGenreBySlug)

	directors := router.Group("/directors")
	directors.GET("", c.getDirectors)
	directors.GET("/:slug", c.getDirectorBySlug)

	actors := router.Group("/actors")
	actors.GET("", c.getActors)
	actors.GET("/:slug", c.getActorBySlug)

	router.GET("/settings", c.getSettings)
	router.GET("/stats", c.getStats)
}

// getMovies lists the snapshot, optionally narrowed by ?search=, ?genre=
// (slug) and ordered by ?sort= (title|year|rating).
func (c *Controller) getMovies(ctx *gin.Context) {
	movies := c.store.AllMovies()

	if genre := ctx.Query("genre"); genre != "" {
		movies = service_query.MoviesByGenreSlug(movies, genre)
	}
	if term := ctx.Query("search"); term != "" {
		movies = service_query.SearchMovies(movies, term)
	}
	if key := ctx.Query("sort"); key != "" {
		movies = service_query.SortMovies(movies, key)
	}

	ctx.JSON(http.StatusOK, MoviesListResponseDTO{
		Movies: ConvertFromMovieList(movies),
		Total:  len(movies),
	})
}

func (c *Controller) getMovieBySlug(ctx *gin.Context) {
	movie := c.store.MovieBySlug(ctx.Param("slug"))
	if movie == nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Movie not found",
			Code:  http.StatusNotFound,
		})
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromMovie(*movie))
}

// getMovieReviews merges server reviews for the movie with the local overlay:
// locally authored reviews are appended and cached vote counters overlaid.
func (c *Controller) getMovieReviews(ctx *gin.Context) {
	movie := c.store.MovieBySlug(ctx.Param("slug"))
	if movie == nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Movie not found",
			Code:  http.StatusNotFound,
		})
		return
	}

	reviews := c.store.ReviewsForMovie(movie.UID)
	reviews = c.overlay.MergeReviewsForMovie(reviews, movie.UID)
	reviews = c.overlay.MergeVotesIntoReviews(reviews)

	dtos := make([]ReviewResponseDTO, len(reviews))
	for i, r := range reviews {
		dtos[i] = ConvertFromReview(r, c.overlay.HasVoted(r.UID))
	}

	ctx.JSON(http.StatusOK, ReviewsListResponseDTO{
		Reviews: dtos,
		Total:   len(dtos),
	})
}

func (c *Controller) getGenres(ctx *gin.Context) {
	genres := c.store.AllGenres()
	dtos := make([]GenreResponseDTO, len(genres))
	for i, g := range genres {
		dtos[i] = ConvertFromGenre(g)
	}
	ctx.JSON(http.StatusOK, dtos)
}

func (c *Controller) getGenreBySlug(ctx *gin.Context) {
	genre := c.store.GenreBySlug(ctx.Param("slug"))
	if genre == nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Genre not found",
			Code:  http.StatusNotFound,
		})
		return
	}

	ctx.JSON(http.StatusOK, GenreDetailResponseDTO{
		GenreResponseDTO: ConvertFromGenre(*genre),
		Movies:           ConvertFromMovieList(c.store.MoviesByGenre(genre.Slug)),
	})
}

func (c *Controller) getDirectors(ctx *gin.Context) {
	directors := c.store.AllDirectors()
	dtos := make([]DirectorResponseDTO, len(directors))
	for i, d := range directors {
		dtos[i] = ConvertFromDirector(d)
	}
	ctx.JSON(http.StatusOK, dtos)
}

func (c *Controller) getDirectorBySlug(ctx *gin.Context) {
	director := c.store.DirectorBySlug(ctx.Param("slug"))
	if director == nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Director not found",
			Code:  http.StatusNotFound,
		})
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromDirector(*director))
}

func (c *Controller) getActors(ctx *gin.Context) {
	actors := c.store.AllActors()
	dtos := make([]ActorResponseDTO, len(actors))
	for i, a := range actors {
		dtos[i] = ConvertFromActor(a)
	}
	ctx.JSON(http.StatusOK, dtos)
}

func (c *Controller) getActorBySlug(ctx *gin.Context) {
	actor := c.store.ActorBySlug(ctx.Param("slug"))
	if actor == nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Actor not found",
			Code:  http.StatusNotFound,
		})
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromActor(*actor))
}

// getSettings serves the theme configuration populated at startup, replacing
// the old pattern of stashing it on a shared global for later pages to read.
func (c *Controller) getSettings(ctx *gin.Context) {
	settings := c.store.Settings()
	if settings == nil {
		ctx.JSON(http.StatusOK, AppSettingsResponseDTO{})
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromSettings(*settings))
}

// getStats drives the loading screen: readiness plus per-entity counts.
func (c *Controller) getStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, ConvertFromStats(c.store.Stats()))
}
