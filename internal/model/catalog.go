package model

type Genre struct {
	UID         string
	Slug        string
	Name        string
	Description string
	ImageLink   string
}

type Director struct {
	UID       string
	Slug      string
	Name      string
	Bio       string
	PhotoLink string

	// Computed during snapshot assembly by joining against the movie slice.
	MoviesDirected []Movie
}

type Actor struct {
	UID       string
	Slug      string
	Name      string
	Bio       string
	PhotoLink string

	// Flattened, de-duplicated filmography. Credits without a title are dropped.
	Filmography []Movie
}

type AppSettings struct {
	ThemeColor     string
	AccentColor    string
	BackgroundLink string
}

// Snapshot is one immutable in-memory copy of the full catalog, produced by a
// single bulk load and replaced, never mutated, by the next successful one.
// Every slice may independently be empty: a failed per-type fetch degrades its
// slice rather than aborting the load.
type Snapshot struct {
	Movies    []Movie
	Genres    []Genre
	Directors []Director
	Actors    []Actor
	Reviews   []Review
	Settings  *AppSettings
}

type Stats struct {
	Ready     bool
	Movies    int
	Genres    int
	Directors int
	Actors    int
	Reviews   int
}
