package models

import (
	"time"
)

// Article represents an article in the system
type Article struct {
	ID        int       `json:"article_id" db:"article_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body,omitempty" db:"body"`
	Votes     int       `json:"votes" db:"votes"`
	Topic     string    `json:"topic" db:"topic"`
	Author    string    `json:"author" db:"author"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	// CommentCount is derived from the comments table, never stored
	CommentCount int `json:"comment_count" db:"comment_count"`
}

// ArticleRecord represents an article line from a seed NDJSON file.
// CreatedAt is epoch milliseconds.
type ArticleRecord struct {
	Title     string `json:"title"`
	Topic     string `json:"topic"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at"`
	Votes     int    `json:"votes"`
}
