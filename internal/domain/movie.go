package domain

import "strings"

// MovieSummary is one catalog entry as shown in the result list.
type MovieSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"` // YYYY-MM-DD, may be empty
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"` // Absolute image URL or empty
}

// Year returns the release year, or "" when the catalog has no date
func (m MovieSummary) Year() string {
	year, _, _ := strings.Cut(m.ReleaseDate, "-")
	if len(year) != 4 {
		return ""
	}
	return year
}

// DisplayYear is Year with an "n/a" placeholder for undated movies
func (m MovieSummary) DisplayYear() string {
	if y := m.Year(); y != "" {
		return y
	}
	return "n/a"
}

// ResultPage is a single page of search results
type ResultPage struct {
	Items      []MovieSummary
	TotalPages int
}

// IsEmpty reports whether the page carries no movies
func (p ResultPage) IsEmpty() bool {
	return len(p.Items) == 0
}
