package seed

import (
	"time"

	"github.com/news-api/internal/models"
)

// FormatDate converts epoch milliseconds to a UTC timestamp. Zero yields the zero time.
func FormatDate(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// FormatTopic converts a topic record
func FormatTopic(rec *models.TopicRecord) *models.Topic {
	return &models.Topic{Slug: rec.Slug, Description: rec.Description}
}

// FormatArticle converts an article record
func FormatArticle(rec *models.ArticleRecord) *models.Article {
	return &models.Article{
		Title:     rec.Title,
		Body:      rec.Body,
		Votes:     rec.Votes,
		Topic:     rec.Topic,
		Author:    rec.Author,
		CreatedAt: FormatDate(rec.CreatedAt),
	}
}

// FormatComment converts a comment record, resolving belongs_to through a
// title → article_id index. It reports false when the title is unknown.
func FormatComment(rec *models.CommentRecord, titleIndex map[string]int) (*models.Comment, bool) {
	articleID, ok := titleIndex[rec.BelongsTo]
	if !ok {
		return nil, false
	}
	return &models.Comment{
		Author:    rec.CreatedBy,
		ArticleID: articleID,
		Votes:     rec.Votes,
		CreatedAt: FormatDate(rec.CreatedAt),
		Body:      rec.Body,
	}, true
}
