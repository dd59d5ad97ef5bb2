package model

type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Category      string `json:"category,omitempty"`
	Description   string `json:"description,omitempty"`
	Rating        int    `json:"rating,omitempty"`
	PublishedDate int    `json:"published_date,omitempty"`
}

// BookFilter narrows a catalog listing. Zero values mean "any"; text fields
// compare case-insensitively.
type BookFilter struct {
	Rating        int
	PublishedDate int
	Author        string
	Category      string
}
