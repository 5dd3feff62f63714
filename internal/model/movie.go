package model

const EmptyTitle string = ""

type StreamingLink struct {
	Platform string
	URL      string
}

type Movie struct {
	UID         string
	Title       string
	Slug        string
	Description string
	ReleaseYear int
	Duration    int
	Rating      float64
	Featured    bool

	PosterLink string
	BannerLink string

	Genres         []Genre
	Directors      []Director
	StreamingLinks []StreamingLink
}
