package models

import (
	"time"
)

// Comment represents a comment on an article
type Comment struct {
	ID        int       `json:"comment_id" db:"comment_id"`
	Author    string    `json:"author" db:"author"`
	ArticleID int       `json:"article_id" db:"article_id"`
	Votes     int       `json:"votes" db:"votes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Body      string    `json:"body" db:"body"`
}

// CommentRecord represents a comment line from a seed NDJSON file.
// BelongsTo names the parent article by title; CreatedAt is epoch milliseconds.
type CommentRecord struct {
	Body      string `json:"body"`
	BelongsTo string `json:"belongs_to"`
	CreatedBy string `json:"created_by"`
	Votes     int    `json:"votes"`
	CreatedAt int64  `json:"created_at"`
}

// MaxCommentWords is the maximum allowed words in a comment body
const MaxCommentWords = 500
