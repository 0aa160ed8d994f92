package models

// RefEntity is a lookup row (developer, publisher, category, platform).
// Name is unique within its collection; Slug is derived from it.
type RefEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// FileDB is a stored upload attached to an entity field
// (e.g. ref="game", field="cover").
type FileDB struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Ref   string `json:"ref"`
	RefID int64  `json:"ref_id"`
	Field string `json:"field"`
}
