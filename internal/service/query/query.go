package service_query

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cinetrove/core/internal/model"
)

// Relevance tiers for search results. Lower ranks first; ties break by
// descending rating.
const (
	tierExactTitle = iota
	tierTitlePrefix
	tierTitleSubstring
	tierOther
	tierNoMatch
)

// Terms of this length or shorter match only against titles, keeping noise
// words like "the" from flooding results via descriptions and genre names.
const shortTermLimit = 3

// SearchMovies performs a case-insensitive tiered search. Exact title matches
// rank first, then title prefixes, then any title substring, then matches on
// description words, genre/director names, or release year. Inputs are never
// mutated.
func SearchMovies(movies []model.Movie, term string) []model.Movie {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return append([]model.Movie(nil), movies...)
	}

	type ranked struct {
		movie model.Movie
		tier  int
	}

	matches := make([]ranked, 0, len(movies))
	for _, m := range movies {
		tier := matchTier(m, t)
		if tier == tierNoMatch {
			continue
		}
		matches = append(matches, ranked{movie: m, tier: tier})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].tier != matches[j].tier {
			return matches[i].tier < matches[j].tier
		}
		return matches[i].movie.Rating > matches[j].movie.Rating
	})

	out := make([]model.Movie, 0, len(matches))
	for _, r := range matches {
		out = append(out, r.movie)
	}
	return out
}

func matchTier(m model.Movie, term string) int {
	title := strings.ToLower(m.Title)

	switch {
	case title == term:
		return tierExactTitle
	case strings.HasPrefix(title, term):
		return tierTitlePrefix
	case strings.Contains(title, term):
		return tierTitleSubstring
	}

	if len(term) <= shortTermLimit {
		return tierNoMatch
	}

	if wordContains(m.Description, term) {
		return tierOther
	}
	for _, g := range m.Genres {
		if nameMatches(g.Name, term) {
			return tierOther
		}
	}
	for _, d := range m.Directors {
		if nameMatches(d.Name, term) {
			return tierOther
		}
	}
	if m.ReleaseYear > 0 && strings.Contains(strconv.Itoa(m.ReleaseYear), term) {
		return tierOther
	}

	return tierNoMatch
}

// wordContains reports whether any whitespace-separated word of text contains
// the term. Splitting first keeps the match from spanning word boundaries.
func wordContains(text, term string) bool {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if strings.Contains(word, term) {
			return true
		}
	}
	return false
}

// nameMatches is a substring match, or a prefix match on any single word of
// the name.
func nameMatches(name, term string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, term) {
		return true
	}
	for _, word := range strings.Fields(lower) {
		if strings.HasPrefix(word, term) {
			return true
		}
	}
	return false
}

// MoviesByGenreSlug joins on exact slug equality.
func MoviesByGenreSlug(movies []model.Movie, slug string) []model.Movie {
	out := make([]model.Movie, 0)
	for _, m := range movies {
		for _, g := range m.Genres {
			if g.Slug == slug {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// MoviesByGenreName matches genre display names case-insensitively by
// substring. Deliberately looser than the slug join; the two are not unified.
func MoviesByGenreName(movies []model.Movie, name string) []model.Movie {
	needle := strings.ToLower(strings.TrimSpace(name))
	out := make([]model.Movie, 0)
	for _, m := range movies {
		for _, g := range m.Genres {
			if strings.Contains(strings.ToLower(g.Name), needle) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

const (
	SortByTitle  = "title"
	SortByYear   = "year"
	SortByRating = "rating"
)

// SortMovies returns a sorted copy. Titles sort ascending with locale-aware
// collation; year and rating sort descending with missing values treated as 0.
func SortMovies(movies []model.Movie, key string) []model.Movie {
	out := append([]model.Movie(nil), movies...)

	switch key {
	case SortByTitle:
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[i].Title, out[j].Title) < 0
		})
	case SortByYear:
		sort.SliceStable(out, func(i, j int) bool {
			return yearOf(out[i]) > yearOf(out[j])
		})
	case SortByRating:
		sort.SliceStable(out, func(i, j int) bool {
			return ratingOf(out[i]) > ratingOf(out[j])
		})
	}

	return out
}

func yearOf(m model.Movie) int {
	if m.ReleaseYear < 0 {
		return 0
	}
	return m.ReleaseYear
}

func ratingOf(m model.Movie) float64 {
	if m.Rating < 0 {
		return 0
	}
	return m.Rating
}
