package infra_cms

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinetrove/core/internal/model"
)

// rawList tolerates the three shapes the CMS emits for reference and group
// fields: absent/null, a JSON array, or a bare object. Anything unparsable
// decodes as empty rather than failing the entry — broken references render
// as missing, never fatal.
type rawList []json.RawMessage

func (l *rawList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			*l = nil
			return nil
		}
		*l = items
		return nil
	}

	if trimmed[0] == '{' {
		*l = rawList{json.RawMessage(trimmed)}
		return nil
	}

	*l = nil
	return nil
}

func decodeList[T any](l rawList) []T {
	out := make([]T, 0, len(l))
	for _, raw := range l {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		out = append(out, item)
	}
	return out
}

// fileRef accepts both an asset object carrying a url and a bare url string.
type fileRef struct {
	URL string
}

func (f *fileRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			f.URL = s
		}
		return nil
	}

	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		f.URL = obj.URL
	}
	return nil
}

type genreEntry struct {
	UID         string  `json:"uid"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       fileRef `json:"image"`
}

func (e genreEntry) ToDomain() model.Genre {
	return model.Genre{
		UID:         e.UID,
		Slug:        e.Slug,
		Name:        e.Name,
		Description: e.Description,
		ImageLink:   e.Image.URL,
	}
}

type directorEntry struct {
	UID   string  `json:"uid"`
	Slug  string  `json:"slug"`
	Name  string  `json:"name"`
	Bio   string  `json:"bio"`
	Photo fileRef `json:"photo"`
}

func (e directorEntry) ToDomain() model.Director {
	return model.Director{
		UID:       e.UID,
		Slug:      e.Slug,
		Name:      e.Name,
		Bio:       e.Bio,
		PhotoLink: e.Photo.URL,
	}
}

type streamingLinkEntry struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type movieEntry struct {
	UID         string  `json:"uid"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	ReleaseYear int     `json:"release_year"`
	Duration    int     `json:"duration"`
	Rating      float64 `json:"rating"`
	Featured    bool    `json:"featured"`
	Poster      fileRef `json:"poster"`
	Banner      fileRef `json:"banner"`
	Genres      rawList `json:"genres"`
	Directors   rawList `json:"directors"`
	Streaming   rawList `json:"streaming_links"`
}

func (e movieEntry) ToDomain() model.Movie {
	m := model.Movie{
		UID:         e.UID,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		ReleaseYear: e.ReleaseYear,
		Duration:    e.Duration,
		Rating:      e.Rating,
		Featured:    e.Featured,
		PosterLink:  e.Poster.URL,
		BannerLink:  e.Banner.URL,
	}

	for _, g := range decodeList[genreEntry](e.Genres) {
		m.Genres = append(m.Genres, g.ToDomain())
	}
	for _, d := range decodeList[directorEntry](e.Directors) {
		m.Directors = append(m.Directors, d.ToDomain())
	}
	for _, s := range decodeList[streamingLinkEntry](e.Streaming) {
		m.StreamingLinks = append(m.StreamingLinks, model.StreamingLink{
			Platform: s.Platform,
			URL:      s.URL,
		})
	}

	return m
}

// filmographyCredit is one per-work credit inside an actor's group field.
// The movie reference arrives expanded when include[]=filmography.movie is set.
type filmographyCredit struct {
	Role  string  `json:"role"`
	Movie rawList `json:"movie"`
}

type actorEntry struct {
	UID         string  `json:"uid"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Bio         string  `json:"bio"`
	Photo       fileRef `json:"photo"`
	Filmography rawList `json:"filmography"`
}

func (e actorEntry) ToDomain() model.Actor {
	actor := model.Actor{
		UID:       e.UID,
		Slug:      e.Slug,
		Name:      e.Name,
		Bio:       e.Bio,
		PhotoLink: e.Photo.URL,
	}

	// Flatten nested credits into one de-duplicated movie list. Credits whose
	// reference did not hydrate to a titled movie are dropped.
	seen := make(map[string]bool)
	for _, credit := range decodeList[filmographyCredit](e.Filmography) {
		for _, m := range decodeList[movieEntry](credit.Movie) {
			if m.Title == model.EmptyTitle {
				continue
			}
			if m.UID != "" && seen[m.UID] {
				continue
			}
			seen[m.UID] = true
			actor.Filmography = append(actor.Filmography, m.ToDomain())
		}
	}

	return actor
}

type reviewEntry struct {
	UID          string  `json:"uid"`
	Movie        rawList `json:"movie"`
	ReviewerName string  `json:"reviewer_name"`
	Rating       int     `json:"rating"`
	ReviewText   string  `json:"review_text"`
	CreatedAt    string  `json:"created_at"`
	Upvotes      int     `json:"upvotes"`
	Downvotes    int     `json:"downvotes"`
}

func (e reviewEntry) ToDomain() model.Review {
	review := model.Review{
		UID:          e.UID,
		ReviewerName: e.ReviewerName,
		Rating:       e.Rating,
		Text:         e.ReviewText,
		Upvotes:      e.Upvotes,
		Downvotes:    e.Downvotes,
	}

	type refUID struct {
		UID string `json:"uid"`
	}
	if refs := decodeList[refUID](e.Movie); len(refs) > 0 {
		review.MovieUID = refs[0].UID
	}

	if ts, err := time.Parse(time.RFC3339, e.CreatedAt); err == nil {
		review.CreatedAt = ts
	}

	return review
}

func FromDomainReview(review model.Review) map[string]any {
	return map[string]any{
		"title":         review.ReviewerName,
		"movie":         []map[string]string{{"uid": review.MovieUID, "_content_type_uid": contentTypeMovie}},
		"reviewer_name": review.ReviewerName,
		"rating":        review.Rating,
		"review_text":   review.Text,
		"created_at":    review.CreatedAt.Format(time.RFC3339),
		"upvotes":       review.Upvotes,
		"downvotes":     review.Downvotes,
	}
}

type appSettingsEntry struct {
	UID         string  `json:"uid"`
	ThemeColor  string  `json:"theme_color"`
	AccentColor string  `json:"accent_color"`
	Background  fileRef `json:"background_image"`
}

func (e appSettingsEntry) ToDomain() model.AppSettings {
	return model.AppSettings{
		ThemeColor:     e.ThemeColor,
		AccentColor:    e.AccentColor,
		BackgroundLink: e.Background.URL,
	}
}
