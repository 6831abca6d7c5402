package models

import "fmt"

// Artwork represents one gallery item
type Artwork struct {
	ImageRef    string `json:"imageRef" yaml:"image_ref"`
	Description string `json:"description" yaml:"description"`
	Title       string `json:"title" yaml:"title"`
	Artist      string `json:"artist" yaml:"artist"`
	Year        string `json:"year" yaml:"year"`
}

// Caption returns the "artist (year)" line shown under the title
func (a Artwork) Caption() string {
	return Caption(a.Artist, a.Year)
}

// Caption formats an artist and a year for display
func Caption(artist, year string) string {
	return fmt.Sprintf("%s (%s)", artist, year)
}

// ArtworkView is everything a front end needs to render one screen
type ArtworkView struct {
	Artwork  Artwork `json:"artwork"`
	Position int     `json:"position"`
	Total    int     `json:"total"`
	Caption  string  `json:"caption"`
	ImageURL string  `json:"imageUrl"`
	Locale   string  `json:"locale"`

	Number        int    `json:"-"`
	PreviousLabel string `json:"-"`
	NextLabel     string `json:"-"`
	AppName       string `json:"-"`
}

// CatalogEntry is one row of the catalog page
type CatalogEntry struct {
	Artwork  Artwork
	Position int
	Caption  string
	ImageURL string
	Link     string
}

// CatalogPage represents the catalog page data
type CatalogPage struct {
	AppName string
	Locale  string
	Entries []CatalogEntry
}
