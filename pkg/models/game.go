package models

// GameRecord is the creation payload the import pipeline hands to the
// entity store. Relational references are resolved ids; enrichment
// fields stay empty when the detail page could not be read.
type GameRecord struct {
	Name             string
	Slug             string
	Price            float64
	ReleaseDate      string // ISO-8601, empty when the source gave no date
	Rating           string
	ShortDescription string
	Description      string
	PublisherID      *int64
	DeveloperIDs     []int64
	CategoryIDs      []int64
	PlatformIDs      []int64
}

// GameDB is the read model served by the catalog API.
type GameDB struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	Price            float64  `json:"price"`
	ReleaseDate      string   `json:"release_date,omitempty"`
	Rating           string   `json:"rating,omitempty"`
	ShortDescription string   `json:"short_description,omitempty"`
	Description      string   `json:"description,omitempty"`
	Publisher        string   `json:"publisher,omitempty"`
	Developers       []string `json:"developers,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	Platforms        []string `json:"platforms,omitempty"`
	CoverURL         string   `json:"cover_url,omitempty"`
	GalleryURLs      []string `json:"gallery_urls,omitempty"`
}
