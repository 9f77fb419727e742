package models

// Topic is a subject articles are filed under
type Topic struct {
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

// TopicRecord represents a topic line from a seed NDJSON file
type TopicRecord struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
