package http_catalog

import (
	"time"

	"github.com/cinetrove/core/internal/model"
)

type StreamingLinkDTO struct {
	Platform string `json:"platform" example:"netflix"`
	URL      string `json:"url" example:"https://www.netflix.com/title/81435684"`
}

type GenreResponseDTO struct {
	UID         string `json:"uid" example:"blt3f2c591b7a9f3f23"`
	Slug        string `json:"slug" example:"science-fiction"`
	Name        string `json:"name" example:"Science Fiction"`
	Description string `json:"description" example:"Futures, technology and the unknown"`
	ImageLink   string `json:"image_link" example:"https://images.cinetrove.io/genres/sci-fi.jpg"`
}

type DirectorSummaryDTO struct {
	UID  string `json:"uid" example:"blt7d12a8e09cc41d55"`
	Slug string `json:"slug" example:"denis-villeneuve"`
	Name string `json:"name" example:"Denis Villeneuve"`
}

type MovieResponseDTO struct {
	UID            string               `json:"uid" example:"blt0a9f27c8b3e41d01"`
	Title          string               `json:"title" example:"Arrival"`
	Slug           string               `json:"slug" example:"arrival"`
	Description    string               `json:"description" example:"A linguist decodes an alien language..."`
	ReleaseYear    int                  `json:"release_year" example:"2016"`
	Duration       int                  `json:"duration" example:"116"`
	Rating         float64              `json:"rating" example:"4.5"`
	Featured       bool                 `json:"featured" example:"true"`
	PosterLink     string               `json:"poster_link" example:"https://images.cinetrove.io/posters/arrival.jpg"`
	BannerLink     string               `json:"banner_link" example:"https://images.cinetrove.io/banners/arrival.jpg"`
	Genres         []GenreResponseDTO   `json:"genres"`
	Directors      []DirectorSummaryDTO `json:"directors"`
	StreamingLinks []StreamingLinkDTO   `json:"streaming_links"`
}

type MoviesListResponseDTO struct {
	Movies []MovieResponseDTO `json:"movies"`
	Total  int                `json:"total"`
}

type DirectorResponseDTO struct {
	UID            string             `json:"uid" example:"blt7d12a8e09cc41d55"`
	Slug           string             `json:"slug" example:"denis-villeneuve"`
	Name           string             `json:"name" example:"Denis Villeneuve"`
	Bio            string             `json:"bio" example:"Canadian filmmaker..."`
	PhotoLink      string             `json:"photo_link" example:"https://images.cinetrove.io/directors/villeneuve.jpg"`
	MoviesDirected []MovieResponseDTO `json:"movies_directed"`
}

type ActorResponseDTO struct {
	UID         string             `json:"uid" example:"blt91c4b0de7aa8f002"`
	Slug        string             `json:"slug" example:"amy-adams"`
	Name        string             `json:"name" example:"Amy Adams"`
	Bio         string             `json:"bio" example:"American actress..."`
	PhotoLink   string             `json:"photo_link" example:"https://images.cinetrove.io/actors/adams.jpg"`
	Filmography []MovieResponseDTO `json:"filmography"`
}

type GenreDetailResponseDTO struct {
	GenreResponseDTO
	Movies []MovieResponseDTO `json:"movies"`
}

type ReviewResponseDTO struct {
	UID          string `json:"uid" example:"local_550e8400-e29b-41d4-a716-446655440000"`
	MovieUID     string `json:"movie_uid" example:"blt0a9f27c8b3e41d01"`
	ReviewerName string `json:"reviewer_name" example:"Sam"`
	Rating       int    `json:"rating" example:"4"`
	ReviewText   string `json:"review_text" example:"Quietly devastating and beautiful."`
	CreatedAt    string `json:"created_at" example:"2024-06-01T12:00:00Z"`
	Upvotes      int    `json:"upvotes" example:"3"`
	Downvotes    int    `json:"downvotes" example:"0"`
	IsLocal      bool   `json:"is_local" example:"false"`
	HasVoted     string `json:"has_voted" example:"upvote" enums:"upvote,downvote,"`
}

type ReviewsListResponseDTO struct {
	Reviews []ReviewResponseDTO `json:"reviews"`
	Total   int                 `json:"total"`
}

type AppSettingsResponseDTO struct {
	ThemeColor     string `json:"theme_color" example:"#0f1117"`
	AccentColor    string `json:"accent_color" example:"#e50914"`
	BackgroundLink string `json:"background_link" example:"https://images.cinetrove.io/bg/default.jpg"`
}

type StatsResponseDTO struct {
	IsInitialized bool `json:"is_initialized" example:"true"`
	Movies        int  `json:"movies" example:"42"`
	Genres        int  `json:"genres" example:"12"`
	Directors     int  `json:"directors" example:"18"`
	Actors        int  `json:"actors" example:"64"`
	Reviews       int  `json:"reviews" example:"133"`
}

func ConvertFromGenre(g model.Genre) GenreResponseDTO {
	return GenreResponseDTO{
		UID:         g.UID,
		Slug:        g.Slug,
		Name:        g.Name,
		Description: g.Description,
		ImageLink:   g.ImageLink,
	}
}

func ConvertFromMovie(m model.Movie) MovieResponseDTO {
	dto := MovieResponseDTO{
		UID:            m.UID,
		Title:          m.Title,
		Slug:           m.Slug,
		Description:    m.Description,
		ReleaseYear:    m.ReleaseYear,
		Duration:       m.Duration,
		Rating:         m.Rating,
		Featured:       m.Featured,
		PosterLink:     m.PosterLink,
		BannerLink:     m.BannerLink,
		Genres:         make([]GenreResponseDTO, 0, len(m.Genres)),
		Directors:      make([]DirectorSummaryDTO, 0, len(m.Directors)),
		StreamingLinks: make([]StreamingLinkDTO, 0, len(m.StreamingLinks)),
	}

	for _, g := range m.Genres {
		dto.Genres = append(dto.Genres, ConvertFromGenre(g))
	}
	for _, d := range m.Directors {
		dto.Directors = append(dto.Directors, DirectorSummaryDTO{
			UID:  d.UID,
			Slug: d.Slug,
			Name: d.Name,
		})
	}
	for _, s := range m.StreamingLinks {
		dto.StreamingLinks = append(dto.StreamingLinks, StreamingLinkDTO{
			Platform: s.Platform,
			URL:      s.URL,
		})
	}

	return dto
}

func ConvertFromMovieList(movies []model.Movie) []MovieResponseDTO {
	dtos := make([]MovieResponseDTO, len(movies))
	for i, m := range movies {
		dtos[i] = ConvertFromMovie(m)
	}
	return dtos
}

func ConvertFromDirector(d model.Director) DirectorResponseDTO {
	return DirectorResponseDTO{
		UID:            d.UID,
		Slug:           d.Slug,
		Name:           d.Name,
		Bio:            d.Bio,
		PhotoLink:      d.PhotoLink,
		MoviesDirected: ConvertFromMovieList(d.MoviesDirected),
	}
}

func ConvertFromActor(a model.Actor) ActorResponseDTO {
	return ActorResponseDTO{
		UID:         a.UID,
		Slug:        a.Slug,
		Name:        a.Name,
		Bio:         a.Bio,
		PhotoLink:   a.PhotoLink,
		Filmography: ConvertFromMovieList(a.Filmography),
	}
}

func ConvertFromReview(r model.Review, hasVoted model.VoteDirection) ReviewResponseDTO {
	return ReviewResponseDTO{
		UID:          r.UID,
		MovieUID:     r.MovieUID,
		ReviewerName: r.ReviewerName,
		Rating:       r.Rating,
		ReviewText:   r.Text,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		Upvotes:      r.Upvotes,
		Downvotes:    r.Downvotes,
		IsLocal:      r.IsLocal,
		HasVoted:     string(hasVoted),
	}
}

func ConvertFromSettings(s model.AppSettings) AppSettingsResponseDTO {
	return AppSettingsResponseDTO{
		ThemeColor:     s.ThemeColor,
		AccentColor:    s.AccentColor,
		BackgroundLink: s.BackgroundLink,
	}
}

func ConvertFromStats(s model.Stats) StatsResponseDTO {
	return StatsResponseDTO{
		IsInitialized: s.Ready,
		Movies:        s.Movies,
		Genres:        s.Genres,
		Directors:     s.Directors,
		Actors:        s.Actors,
		Reviews:       s.Reviews,
	}
}
