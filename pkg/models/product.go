package models

import "encoding/json"

// ScrapedProduct is one entry of the storefront's filtered-search
// listing, exactly as the site returns it. It is transient: the import
// pipeline normalizes it into a GameRecord and never persists it as-is.
type ScrapedProduct struct {
	Title                     string       `json:"title"`
	Slug                      string       `json:"slug"`
	Price                     ProductPrice `json:"price"`
	GlobalReleaseDate         json.Number  `json:"globalReleaseDate"`
	Genres                    []string     `json:"genres"`
	SupportedOperatingSystems []string     `json:"supportedOperatingSystems"`
	Developer                 string       `json:"developer"`
	Publisher                 string       `json:"publisher"`
	Image                     string       `json:"image"`   // scheme-less partial URL
	Gallery                   []string     `json:"gallery"` // scheme-less partial URLs
}

type ProductPrice struct {
	Amount json.Number `json:"amount"`
}
